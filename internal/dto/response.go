package dto

// ── 认证模块响应 ──

// TokenResponse 登录响应
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int          `json:"expires_in"` // 有效期（秒）
	Created     bool         `json:"created"`    // 本次登录是否自动注册
	User        UserResponse `json:"user"`
}

// ── 用户模块响应 ──

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID    string `json:"id"`
	Phone string `json:"phone"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// ── 周报模块响应 ──

// SubmissionResponse 周报记录
type SubmissionResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	Department     string `json:"department"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	CoreWork       string `json:"core_work"`
	Completion     string `json:"completion"`
	Problems       string `json:"problems"`
	NextWeekPlan   string `json:"next_week_plan"`
	SubmissionTime string `json:"submission_time"`
	IsCurrentWeek  bool   `json:"is_current_week"`
}

// SubmitResponse 提交结果
type SubmitResponse struct {
	ID       string `json:"id"`
	Edited   bool   `json:"edited"`   // 原地修改
	Replaced int    `json:"replaced"` // 因同人同周期被替换的旧记录数
}

// FormResponse 表单默认值；Editable 为 true 时 EditID 与内容已回填
type FormResponse struct {
	EditID       string `json:"edit_id,omitempty"`
	Editable     bool   `json:"editable"`
	Name         string `json:"name"`
	Department   string `json:"department"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	CoreWork     string `json:"core_work"`
	Completion   string `json:"completion"`
	Problems     string `json:"problems"`
	NextWeekPlan string `json:"next_week_plan"`
}

// ── 汇报模块响应 ──

// ReportResponse 生成的汇报
type ReportResponse struct {
	Content     string `json:"content"`
	Filename    string `json:"filename"`
	DownloadURL string `json:"download_url"`
	Week        string `json:"week"`
	Period      string `json:"period"`
	Entries     int    `json:"entries"`
}

// ── 统计模块响应 ──

// SubmittedEntry 已提交人员
type SubmittedEntry struct {
	Name           string `json:"name"`
	SubmissionTime string `json:"submission_time"`
}

// SubmissionStatsResponse 本周提交统计
type SubmissionStatsResponse struct {
	PeriodStart  string           `json:"period_start"`
	PeriodEnd    string           `json:"period_end"`
	Submitted    []SubmittedEntry `json:"submitted"`
	NotSubmitted []string         `json:"not_submitted"`
}

// ── 分页 ──

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=500"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 100
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// PageResponse 分页列表
type PageResponse[T any] struct {
	List     []T `json:"list"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}
