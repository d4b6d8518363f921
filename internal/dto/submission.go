package dto

// ── 周报提交模块 DTO ──

// SubmitRequest 提交/修改周报
// EditID 非空且记录属于本人、处于本周时原地修改，否则按新提交处理。
type SubmitRequest struct {
	EditID       string `json:"edit_id"        form:"edit_id"`
	Name         string `json:"name"           form:"name"           binding:"required,max=50"`
	Department   string `json:"department"     form:"department"     binding:"required,max=50"`
	StartDate    string `json:"start_date"     form:"start_date"     binding:"required"`
	EndDate      string `json:"end_date"       form:"end_date"       binding:"required"`
	CoreWork     string `json:"core_work"      form:"core_work"      binding:"required"`
	Completion   string `json:"completion"     form:"completion"     binding:"required"`
	Problems     string `json:"problems"       form:"problems"`
	NextWeekPlan string `json:"next_week_plan" form:"next_week_plan" binding:"required"`
}

// FormRequest 获取表单默认值
type FormRequest struct {
	EditID string `form:"edit_id"`
}

// SubmissionListRequest 管理员查看全部提交
type SubmissionListRequest struct {
	PaginationRequest
}
