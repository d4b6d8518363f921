package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求（手机号不存在时自动注册）
type LoginRequest struct {
	Phone    string `json:"phone"    form:"phone"    binding:"required,len=11,numeric"`
	Password string `json:"password" form:"password" binding:"required,min=6,max=64"`
}
