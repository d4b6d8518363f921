package model

// SubmissionTimeLayout 提交时间格式，定长微秒，字符串序即时间序
const SubmissionTimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Submission 周报提交记录，存于 summaries 文档（id → Submission）
// 日期为 YYYY-MM-DD；SubmissionTime 按 SubmissionTimeLayout 格式化。
type Submission struct {
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
}

// Period 以 "start - end" 形式返回工作周期
func (s *Submission) Period() string {
	return s.StartDate + " - " + s.EndDate
}

// SamePeriod 姓名与起止日期均相同即视为同一人同一周期
func (s *Submission) SamePeriod(name, start, end string) bool {
	return s.Name == name && s.StartDate == start && s.EndDate == end
}
