package service

import (
	"go.uber.org/zap"

	"weekly-summary/config"
	"weekly-summary/internal/report"
	"weekly-summary/internal/repository"
	"weekly-summary/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	User       UserService
	Submission SubmissionService
	Report     ReportService
	Export     ExportService
	Stats      StatsService
	Artifacts  *Artifacts
}

// NewService 创建 Service 聚合
// blacklist 为 nil 时登出仅由客户端丢弃 Token。
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	clock report.Clock,
	logger *zap.Logger,
) *Service {
	artifacts := NewArtifacts(cfg.Report.OutputDir)
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, blacklist, logger),
		User:       NewUserService(repo, logger),
		Submission: NewSubmissionService(repo, clock, logger),
		Report:     NewReportService(&cfg.Report, repo, artifacts, clock, logger),
		Export:     NewExportService(repo, artifacts, clock, logger),
		Stats:      NewStatsService(repo, clock, logger),
		Artifacts:  artifacts,
	}
}
