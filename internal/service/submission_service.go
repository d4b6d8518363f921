package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"weekly-summary/internal/dto"
	"weekly-summary/internal/model"
	"weekly-summary/internal/report"
	"weekly-summary/internal/repository"
	apperrors "weekly-summary/pkg/errors"
	"weekly-summary/pkg/metrics"
)

// SubmissionService 周报提交业务接口
type SubmissionService interface {
	// Submit 提交周报
	// edit_id 指向本人本周记录时原地修改（保留 id）；否则分配新 id，
	// 并删除同一姓名、同一起止日期的旧记录。
	Submit(ctx context.Context, userID string, req *dto.SubmitRequest) (*dto.SubmitResponse, error)
	// FormDefaults 表单默认值：本周一至本周五，可编辑时回填原记录
	FormDefaults(ctx context.Context, userID, editID string) (*dto.FormResponse, error)
	// ListMine 本人历史提交，按提交时间倒序
	ListMine(ctx context.Context, userID string) ([]dto.SubmissionResponse, error)
	// ListAll 全部提交，按提交时间倒序分页
	ListAll(ctx context.Context, req *dto.SubmissionListRequest) (*dto.PageResponse[dto.SubmissionResponse], error)
}

type submissionService struct {
	repo   *repository.Repository
	clock  report.Clock
	logger *zap.Logger
}

// NewSubmissionService 创建 SubmissionService 实例
func NewSubmissionService(repo *repository.Repository, clock report.Clock, logger *zap.Logger) SubmissionService {
	return &submissionService{repo: repo, clock: clock, logger: logger}
}

func (s *submissionService) currentUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// ────────────────────── Submit ──────────────────────

func (s *submissionService) Submit(ctx context.Context, userID string, req *dto.SubmitRequest) (*dto.SubmitResponse, error) {
	rec, err := buildSubmission(req)
	if err != nil {
		return nil, err
	}

	user, err := s.currentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	rec.UserID = user.ID
	rec.SubmissionTime = now.Format(model.SubmissionTimeLayout)
	editID := strings.TrimSpace(req.EditID)

	resp := &dto.SubmitResponse{}
	err = s.repo.Submission.Update(ctx, func(records map[string]model.Submission) error {
		resp.Edited, resp.Replaced = false, 0

		if prev, ok := records[editID]; ok && editID != "" && canEdit(&prev, user, now) {
			rec.ID = editID
			resp.Edited = true
		} else {
			rec.ID = uuid.New().String()
		}

		for id, old := range records {
			if id != rec.ID && old.SamePeriod(rec.Name, rec.StartDate, rec.EndDate) {
				delete(records, id)
				resp.Replaced++
			}
		}
		records[rec.ID] = *rec
		return nil
	})
	if err != nil {
		s.logger.Error("保存周报失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	resp.ID = rec.ID
	mode := "create"
	if resp.Edited {
		mode = "edit"
	}
	metrics.SubmissionsTotal.WithLabelValues(mode).Inc()
	metrics.ReplacedSubmissionsTotal.Add(float64(resp.Replaced))

	s.logger.Info("周报已提交",
		zap.String("id", rec.ID),
		zap.String("mode", mode),
		zap.Int("replaced", resp.Replaced),
	)
	return resp, nil
}

// canEdit 记录属于当前用户（按姓名）且为本周一至本周五
func canEdit(rec *model.Submission, user *model.User, now time.Time) bool {
	return rec.Name == user.Name && report.IsCurrentWeek(rec.StartDate, rec.EndDate, now)
}

// buildSubmission 校验并规整提交内容
func buildSubmission(req *dto.SubmitRequest) (*model.Submission, error) {
	rec := &model.Submission{
		Name:         strings.TrimSpace(req.Name),
		Department:   strings.TrimSpace(req.Department),
		StartDate:    strings.TrimSpace(req.StartDate),
		EndDate:      strings.TrimSpace(req.EndDate),
		CoreWork:     strings.TrimSpace(req.CoreWork),
		Completion:   strings.TrimSpace(req.Completion),
		Problems:     strings.TrimSpace(req.Problems),
		NextWeekPlan: strings.TrimSpace(req.NextWeekPlan),
	}

	required := []struct{ field, value string }{
		{"name", rec.Name},
		{"department", rec.Department},
		{"start_date", rec.StartDate},
		{"end_date", rec.EndDate},
		{"core_work", rec.CoreWork},
		{"completion", rec.Completion},
		{"next_week_plan", rec.NextWeekPlan},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, &apperrors.ValidationError{Field: r.field, Message: "不能为空"}
		}
	}

	start, err := time.Parse(report.DateLayout, rec.StartDate)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "start_date", Message: "日期格式应为 YYYY-MM-DD"}
	}
	end, err := time.Parse(report.DateLayout, rec.EndDate)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "end_date", Message: "日期格式应为 YYYY-MM-DD"}
	}
	if end.Before(start) {
		return nil, &apperrors.ValidationError{Field: "end_date", Message: "结束日期不能早于开始日期"}
	}
	return rec, nil
}

// ────────────────────── FormDefaults ──────────────────────

func (s *submissionService) FormDefaults(ctx context.Context, userID, editID string) (*dto.FormResponse, error) {
	user, err := s.currentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	start, end := report.CurrentPeriod(now)
	form := &dto.FormResponse{
		Name:      user.Name,
		StartDate: start,
		EndDate:   end,
	}

	if editID == "" {
		return form, nil
	}
	rec, err := s.repo.Submission.GetByID(ctx, editID)
	if errors.Is(err, repository.ErrNotFound) {
		return form, nil
	}
	if err != nil {
		return nil, err
	}
	if !canEdit(rec, user, now) {
		return form, nil
	}

	form.EditID = rec.ID
	form.Editable = true
	form.Department = rec.Department
	form.CoreWork = rec.CoreWork
	form.Completion = rec.Completion
	form.Problems = rec.Problems
	form.NextWeekPlan = rec.NextWeekPlan
	return form, nil
}

// ────────────────────── List ──────────────────────

func (s *submissionService) ListMine(ctx context.Context, userID string) ([]dto.SubmissionResponse, error) {
	user, err := s.currentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	all, err := s.repo.Submission.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	mine := make([]dto.SubmissionResponse, 0)
	for i := range all {
		if all[i].Name == user.Name {
			mine = append(mine, toSubmissionResponse(&all[i], now))
		}
	}
	sortBySubmissionTimeDesc(mine)
	return mine, nil
}

func (s *submissionService) ListAll(ctx context.Context, req *dto.SubmissionListRequest) (*dto.PageResponse[dto.SubmissionResponse], error) {
	all, err := s.repo.Submission.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	list := make([]dto.SubmissionResponse, 0, len(all))
	for i := range all {
		list = append(list, toSubmissionResponse(&all[i], now))
	}
	sortBySubmissionTimeDesc(list)

	offset, size := req.GetOffset(), req.GetPageSize()
	page := &dto.PageResponse[dto.SubmissionResponse]{
		List:     []dto.SubmissionResponse{},
		Total:    len(list),
		Page:     req.GetPage(),
		PageSize: size,
	}
	if offset < len(list) {
		page.List = list[offset:min(offset+size, len(list))]
	}
	return page, nil
}

func sortBySubmissionTimeDesc(list []dto.SubmissionResponse) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].SubmissionTime > list[j].SubmissionTime
	})
}

func toSubmissionResponse(rec *model.Submission, now time.Time) dto.SubmissionResponse {
	return dto.SubmissionResponse{
		ID:             rec.ID,
		UserID:         rec.UserID,
		Name:           rec.Name,
		Department:     rec.Department,
		StartDate:      rec.StartDate,
		EndDate:        rec.EndDate,
		CoreWork:       rec.CoreWork,
		Completion:     rec.Completion,
		Problems:       rec.Problems,
		NextWeekPlan:   rec.NextWeekPlan,
		SubmissionTime: rec.SubmissionTime,
		IsCurrentWeek:  report.IsCurrentWeek(rec.StartDate, rec.EndDate, now),
	}
}
