package handler

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"weekly-summary/internal/api/middleware"
	"weekly-summary/internal/dto"
	"weekly-summary/internal/service"
	apperrors "weekly-summary/pkg/errors"
	"weekly-summary/pkg/response"
)

// ReportHandler 汇报生成 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
	artifacts *service.Artifacts
	uploadDir string
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService, artifacts *service.Artifacts, uploadDir string) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc, artifacts: artifacts, uploadDir: uploadDir}
}

// Generate 生成汇报
// POST /api/v1/reports
//   - JSON / 表单 {data_source: database, start_date?, end_date?}
//   - multipart {data_source: file, file}
func (h *ReportHandler) Generate(c *gin.Context) {
	var req dto.GenerateReportRequest
	if err := c.ShouldBind(&req); err != nil {
		if middleware.IsBodyTooLarge(err) {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
			return
		}
		response.BadRequest(c, 10001, "请选择数据来源")
		return
	}

	var (
		result *dto.ReportResponse
		err    error
	)
	switch req.DataSource {
	case dto.DataSourceFile:
		result, err = h.fromUpload(c)
		if errors.Is(err, errUploadHandled) {
			return
		}
	default:
		result, err = h.reportSvc.GenerateFromStore(c.Request.Context(), req.StartDate, req.EndDate)
	}
	if err != nil {
		h.handleError(c, err)
		return
	}

	result.DownloadURL = "/api/v1/reports/files/" + result.Filename
	response.OK(c, result)
}

// errUploadHandled 上传阶段已写出响应
var errUploadHandled = errors.New("upload handled")

func (h *ReportHandler) fromUpload(c *gin.Context) (*dto.ReportResponse, error) {
	fh, err := c.FormFile("file")
	if err != nil || fh.Filename == "" {
		if err != nil && middleware.IsBodyTooLarge(err) {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
		} else {
			response.BadRequest(c, 10001, "请选择一个文件上传")
		}
		return nil, errUploadHandled
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(h.uploadDir, uuid.New().String()+"_"+filepath.Base(fh.Filename))
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	if err := saveUpload(path, src); err != nil {
		return nil, err
	}
	return h.reportSvc.GenerateFromFile(c.Request.Context(), path, fh.Filename)
}

// saveUpload 写入上传文件；写入失败时删除已写出的部分
func saveUpload(path string, src io.Reader) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

// Download 下载已生成的汇报文件
// GET /api/v1/reports/files/:filename
func (h *ReportHandler) Download(c *gin.Context) {
	name := c.Param("filename")
	path, err := h.artifacts.Path(name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidArtifactName):
			response.BadRequest(c, 10001, "文件名无效")
		case errors.Is(err, service.ErrArtifactNotFound):
			response.NotFound(c, 13004, "文件不存在")
		default:
			response.InternalError(c)
		}
		return
	}
	c.FileAttachment(path, name)
}

func (h *ReportHandler) handleError(c *gin.Context, err error) {
	if mf, ok := apperrors.AsMissingField(err); ok {
		response.BadRequest(c, 13002, mf.Error())
		return
	}
	if ie, ok := apperrors.AsIngestion(err); ok {
		response.ErrorWithDetails(c, http.StatusBadRequest, 13003, "文件读取失败", ie.Error())
		return
	}
	if errors.Is(err, service.ErrReportNoData) {
		response.NotFound(c, 13001, "没有找到提交数据")
		return
	}
	response.InternalError(c)
}
