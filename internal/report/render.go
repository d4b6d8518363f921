package report

import (
	"fmt"
	"strings"
	"time"
)

// Render 生成两段式汇报文本
// 不排序：行顺序由调用方（Reconcile）决定。
func Render(rows []Row, title string, period Period) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s第%s周工作总结（%s）\n\n", title, period.WeekLabel(), period.Label)

	b.WriteString("## 上周工作总结：\n\n")
	for i, r := range rows {
		fmt.Fprintf(&b, "(%d) %s：%s。\n", i+1, r.Name, summaryLine(r))
	}

	b.WriteString("\n## 本周工作计划：\n\n")
	for i, r := range rows {
		fmt.Fprintf(&b, "(%d) %s：%s。\n", i+1, r.Name, r.NextWeekPlan)
	}

	return b.String()
}

func summaryLine(r Row) string {
	line := r.CoreWork + "，" + Normalize(r.Completion)
	if strings.TrimSpace(r.Problems) != "" {
		line += "。遇到的问题：" + r.Problems
	}
	return line
}

// ReportFilename 汇报文件名，编码生成时间
func ReportFilename(now time.Time) string {
	return "report_" + now.Format("20060102_150405") + ".md"
}
