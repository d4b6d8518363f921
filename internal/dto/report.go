package dto

// ── 汇报生成模块 DTO ──

// 数据来源
const (
	DataSourceDatabase = "database"
	DataSourceFile     = "file"
)

// GenerateReportRequest 生成汇报请求
// data_source=file 时以 multipart 上传 file 字段。
type GenerateReportRequest struct {
	DataSource string `json:"data_source" form:"data_source" binding:"required,oneof=database file"`
	// 仅 database 来源：按周期过滤，格式 YYYY-MM-DD
	StartDate string `json:"start_date" form:"start_date"`
	EndDate   string `json:"end_date"   form:"end_date"`
}

