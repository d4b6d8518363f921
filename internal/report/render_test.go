package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_SingleRecordNoProblems(t *testing.T) {
	period, err := Resolve("2024-01-01 - 2024-01-05", date(2024, 1, 8))
	require.NoError(t, err)

	out := Render([]Row{{Name: "Bob", CoreWork: "Task X", Completion: "完成了", Problems: "", NextWeekPlan: "Task Y"}}, "研发", period)

	assert.Contains(t, out, "(1) Bob：Task X，已完成，完成度100%。\n")
	assert.NotContains(t, out, "遇到的问题：")
	assert.Contains(t, out, "(1) Bob：Task Y。\n")
	assert.True(t, strings.HasPrefix(out, "# 研发第2周工作总结（20240101-20240105）\n"))
}

func TestRender_FullLayout(t *testing.T) {
	rows := []Row{
		{Name: "李四", CoreWork: "文档", Completion: "刚起步", Problems: "缺少资料", NextWeekPlan: "补全文档"},
		{Name: "张三", CoreWork: "接口开发", Completion: "完成度80%", NextWeekPlan: "联调"},
	}
	out := Render(rows, "开源鸿蒙系统研发能力提升", Period{Label: "本周", Week: 0})

	want := "# 开源鸿蒙系统研发能力提升第X周工作总结（本周）\n\n" +
		"## 上周工作总结：\n\n" +
		"(1) 李四：文档，启动阶段，完成度10%。遇到的问题：缺少资料。\n" +
		"(2) 张三：接口开发，完成度80%。\n" +
		"\n## 本周工作计划：\n\n" +
		"(1) 李四：补全文档。\n" +
		"(2) 张三：联调。\n"
	assert.Equal(t, want, out)
}

func TestRender_Deterministic(t *testing.T) {
	rows := []Row{{Name: "A", CoreWork: "x", Completion: "完成了"}, {Name: "B", CoreWork: "y", Completion: "还没开始"}}
	p := Period{Label: "20240101-20240105", Week: 3}
	assert.Equal(t, Render(rows, "t", p), Render(rows, "t", p))
}

func TestRender_Empty(t *testing.T) {
	out := Render(nil, "t", Period{Label: "p", Week: 1})
	assert.Equal(t, "# t第1周工作总结（p）\n\n## 上周工作总结：\n\n\n## 本周工作计划：\n\n", out)
}

func TestReportFilename(t *testing.T) {
	now := time.Date(2024, 1, 8, 9, 5, 3, 0, time.UTC)
	assert.Equal(t, "report_20240108_090503.md", ReportFilename(now))
}
