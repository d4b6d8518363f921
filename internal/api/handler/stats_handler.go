package handler

import (
	"github.com/gin-gonic/gin"

	"weekly-summary/internal/service"
	"weekly-summary/pkg/response"
)

// StatsHandler 提交统计 HTTP 处理器
type StatsHandler struct {
	statsSvc service.StatsService
}

// NewStatsHandler 创建 StatsHandler
func NewStatsHandler(statsSvc service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// Submissions 本周提交情况
// GET /api/v1/stats/submissions
func (h *StatsHandler) Submissions(c *gin.Context) {
	stats, err := h.statsSvc.CurrentWeek(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, stats)
}
