package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"weekly-summary/internal/dto"
	"weekly-summary/internal/service"
	apperrors "weekly-summary/pkg/errors"
	"weekly-summary/pkg/response"
)

// SubmissionHandler 周报提交 HTTP 处理器
type SubmissionHandler struct {
	submissionSvc service.SubmissionService
}

// NewSubmissionHandler 创建 SubmissionHandler
func NewSubmissionHandler(submissionSvc service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc}
}

// Form 表单默认值
// GET /api/v1/submissions/form?edit_id=
func (h *SubmissionHandler) Form(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.FormRequest
	_ = c.ShouldBindQuery(&req)

	form, err := h.submissionSvc.FormDefaults(c.Request.Context(), userID, req.EditID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, form)
}

// Submit 提交或修改周报
// POST /api/v1/submissions
func (h *SubmissionHandler) Submit(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", err.Error())
		return
	}

	result, err := h.submissionSvc.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	message := "提交成功！"
	if result.Edited {
		message = "修改成功！"
	}
	response.OKMessage(c, message, result)
}

// ListMine 本人历史提交
// GET /api/v1/submissions/mine
func (h *SubmissionHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.submissionSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, list)
}

// ListAll 全部提交（管理员）
// GET /api/v1/submissions?page=&page_size=
func (h *SubmissionHandler) ListAll(c *gin.Context) {
	var req dto.SubmissionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "分页参数无效")
		return
	}

	page, err := h.submissionSvc.ListAll(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, page)
}

func (h *SubmissionHandler) handleError(c *gin.Context, err error) {
	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", ve.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.Unauthorized(c, 10002, "用户不存在")
	default:
		response.InternalError(c)
	}
}
