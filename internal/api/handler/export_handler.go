package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"weekly-summary/internal/service"
	"weekly-summary/pkg/response"
)

// ExportHandler 原始数据导出 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportExcel 导出全部提交为 Excel
// GET /api/v1/export/excel
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	file, err := h.exportSvc.ExportExcel(c.Request.Context())
	h.respond(c, file, err)
}

// ExportCSV 导出全部提交为 CSV
// GET /api/v1/export/csv
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	file, err := h.exportSvc.ExportCSV(c.Request.Context())
	h.respond(c, file, err)
}

func (h *ExportHandler) respond(c *gin.Context, file *service.ExportFile, err error) {
	if err != nil {
		if errors.Is(err, service.ErrExportNoData) {
			response.NotFound(c, 14001, "没有数据可以导出")
			return
		}
		response.InternalError(c)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}
