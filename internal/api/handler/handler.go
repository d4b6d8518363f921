package handler

import "weekly-summary/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Submission *SubmissionHandler
	Report     *ReportHandler
	Export     *ExportHandler
	Stats      *StatsHandler
}

// NewHandler 创建 Handler 聚合
// uploadDir 为上传文件的临时落盘目录。
func NewHandler(svc *service.Service, uploadDir string) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		User:       NewUserHandler(svc.User),
		Submission: NewSubmissionHandler(svc.Submission),
		Report:     NewReportHandler(svc.Report, svc.Artifacts, uploadDir),
		Export:     NewExportHandler(svc.Export),
		Stats:      NewStatsHandler(svc.Stats),
	}
}
