package service

import (
	"context"
	"errors"
	"os"
	"sort"

	"go.uber.org/zap"

	"weekly-summary/config"
	"weekly-summary/internal/dto"
	"weekly-summary/internal/report"
	"weekly-summary/internal/repository"
	"weekly-summary/pkg/metrics"
)

// ErrReportNoData 没有可用于生成汇报的数据
var ErrReportNoData = errors.New("没有找到提交数据")

// ReportService 汇报生成业务接口
type ReportService interface {
	// GenerateFromStore 以已提交记录生成汇报；start/end 均非空时只取该周期
	GenerateFromStore(ctx context.Context, start, end string) (*dto.ReportResponse, error)
	// GenerateFromFile 以上传表格生成汇报，path 处的文件无论成败都会被删除
	GenerateFromFile(ctx context.Context, path, filename string) (*dto.ReportResponse, error)
}

type reportService struct {
	cfg       *config.ReportConfig
	repo      *repository.Repository
	artifacts *Artifacts
	clock     report.Clock
	logger    *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(
	cfg *config.ReportConfig,
	repo *repository.Repository,
	artifacts *Artifacts,
	clock report.Clock,
	logger *zap.Logger,
) ReportService {
	return &reportService{
		cfg:       cfg,
		repo:      repo,
		artifacts: artifacts,
		clock:     clock,
		logger:    logger,
	}
}

func (s *reportService) GenerateFromStore(ctx context.Context, start, end string) (*dto.ReportResponse, error) {
	records, err := s.repo.Submission.List(ctx)
	if err != nil {
		s.logger.Error("读取提交记录失败", zap.Error(err))
		return nil, err
	}

	// 按提交先后排列，周期取第一条记录
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SubmissionTime < records[j].SubmissionTime
	})

	rows := make([]report.Row, 0, len(records))
	for _, rec := range records {
		if start != "" && end != "" && (rec.StartDate != start || rec.EndDate != end) {
			continue
		}
		rows = append(rows, report.Row{
			Name:           rec.Name,
			Period:         rec.Period(),
			CoreWork:       rec.CoreWork,
			Completion:     rec.Completion,
			Problems:       rec.Problems,
			NextWeekPlan:   rec.NextWeekPlan,
			SubmissionTime: rec.SubmissionTime,
		})
	}
	return s.generate(rows, dto.DataSourceDatabase)
}

func (s *reportService) GenerateFromFile(ctx context.Context, path, filename string) (*dto.ReportResponse, error) {
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("清理上传文件失败", zap.String("path", path), zap.Error(err))
		}
	}()

	table, err := ParseSheet(path, filename)
	if err != nil {
		metrics.ReportsTotal.WithLabelValues(dto.DataSourceFile, "error").Inc()
		s.logger.Warn("读取上传文件失败", zap.String("filename", filename), zap.Error(err))
		return nil, err
	}

	rows, err := report.RowsFromTable(table)
	if err != nil {
		metrics.ReportsTotal.WithLabelValues(dto.DataSourceFile, "error").Inc()
		return nil, err
	}
	return s.generate(rows, dto.DataSourceFile)
}

func (s *reportService) generate(rows []report.Row, source string) (*dto.ReportResponse, error) {
	if len(rows) == 0 {
		metrics.ReportsTotal.WithLabelValues(source, "empty").Inc()
		return nil, ErrReportNoData
	}

	now := s.clock()
	period := report.ResolveOrFallback(rows[0].Period, now)
	if !period.Resolved() {
		s.logger.Info("工作周期无法解析，按原文输出", zap.String("period", rows[0].Period))
	}

	entries, err := report.Reconcile(rows, report.ByName)
	if err != nil {
		metrics.ReportsTotal.WithLabelValues(source, "error").Inc()
		return nil, err
	}

	content := report.Render(entries, s.cfg.Title, period)
	filename := report.ReportFilename(now)
	if _, err := s.artifacts.Save(filename, []byte(content)); err != nil {
		metrics.ReportsTotal.WithLabelValues(source, "error").Inc()
		s.logger.Error("保存汇报文件失败", zap.String("filename", filename), zap.Error(err))
		return nil, err
	}

	metrics.ReportsTotal.WithLabelValues(source, "success").Inc()
	s.logger.Info("汇报已生成",
		zap.String("source", source),
		zap.String("filename", filename),
		zap.Int("entries", len(entries)),
	)
	return &dto.ReportResponse{
		Content:  content,
		Filename: filename,
		Week:     period.WeekLabel(),
		Period:   period.Label,
		Entries:  len(entries),
	}, nil
}
