package service

import (
	"context"

	"go.uber.org/zap"

	"weekly-summary/internal/dto"
	"weekly-summary/internal/model"
	"weekly-summary/internal/report"
	"weekly-summary/internal/repository"
)

// StatsService 提交统计业务接口
type StatsService interface {
	// CurrentWeek 本周（周一至周五）已提交与未提交的普通用户
	CurrentWeek(ctx context.Context) (*dto.SubmissionStatsResponse, error)
}

type statsService struct {
	repo   *repository.Repository
	clock  report.Clock
	logger *zap.Logger
}

// NewStatsService 创建 StatsService 实例
func NewStatsService(repo *repository.Repository, clock report.Clock, logger *zap.Logger) StatsService {
	return &statsService{repo: repo, clock: clock, logger: logger}
}

func (s *statsService) CurrentWeek(ctx context.Context) (*dto.SubmissionStatsResponse, error) {
	start, end := report.CurrentPeriod(s.clock())

	records, err := s.repo.Submission.List(ctx)
	if err != nil {
		s.logger.Error("读取提交记录失败", zap.Error(err))
		return nil, err
	}
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("读取用户失败", zap.Error(err))
		return nil, err
	}

	// 同名多条时取最晚的提交时间
	latest := make(map[string]string)
	for _, rec := range records {
		if rec.StartDate != start || rec.EndDate != end {
			continue
		}
		if t, ok := latest[rec.Name]; !ok || rec.SubmissionTime > t {
			latest[rec.Name] = rec.SubmissionTime
		}
	}

	names := make([]string, 0, len(latest))
	for name := range latest {
		names = append(names, name)
	}
	report.SortNames(names)

	submitted := make([]dto.SubmittedEntry, 0, len(names))
	for _, name := range names {
		submitted = append(submitted, dto.SubmittedEntry{Name: name, SubmissionTime: latest[name]})
	}

	seen := make(map[string]bool)
	notSubmitted := make([]string, 0)
	for _, u := range users {
		if u.Role != model.RoleUser || seen[u.Name] {
			continue
		}
		seen[u.Name] = true
		if _, ok := latest[u.Name]; !ok {
			notSubmitted = append(notSubmitted, u.Name)
		}
	}
	report.SortNames(notSubmitted)

	return &dto.SubmissionStatsResponse{
		PeriodStart:  start,
		PeriodEnd:    end,
		Submitted:    submitted,
		NotSubmitted: notSubmitted,
	}, nil
}
