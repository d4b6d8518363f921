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

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// UpdateProfile 修改个人信息
// PUT /api/v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 10001, "姓名不能为空，密码长度至少为6位")
		return
	}

	user, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		var ve *apperrors.ValidationError
		switch {
		case errors.As(err, &ve):
			response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", ve.Error())
		case errors.Is(err, service.ErrPasswordMismatch):
			response.Error(c, http.StatusUnauthorized, 11003, "密码错误！")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 11002, "用户不存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OKMessage(c, "用户信息修改成功！", user)
}
