package model

// 角色
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User 用户，存于 users 文档（id → User）
// 密码以 bcrypt 哈希保存，仅在存储层序列化，不进入任何响应 DTO。
type User struct {
	ID           string `json:"id"`
	Phone        string `json:"phone"`
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash"`
	Role         string `json:"role"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
