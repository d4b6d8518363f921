package dto

// ── 用户模块 DTO ──

// UpdateProfileRequest 修改个人信息请求，需携带当前密码确认身份
type UpdateProfileRequest struct {
	Name        string `json:"name"         form:"name"         binding:"required,min=1,max=20"`
	Password    string `json:"password"     form:"password"     binding:"required,min=6,max=64"`
	NewPassword string `json:"new_password" form:"new_password" binding:"omitempty,min=6,max=64"`
}
