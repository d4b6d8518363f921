package report

import (
	"strings"

	apperrors "weekly-summary/pkg/errors"
)

// 汇总数据列名（上传表格与数据库记录共用）
const (
	ColName           = "姓名"
	ColPeriod         = "本周工作周期"
	ColCoreWork       = "本周核心工作内容"
	ColCompletion     = "完成情况"
	ColProblems       = "遇到的问题"
	ColNextWeekPlan   = "下周工作计划"
	ColSubmissionTime = "提交时间"
)

// RequiredColumns 生成汇报必须具备的列
var RequiredColumns = []string{
	ColName,
	ColPeriod,
	ColCoreWork,
	ColCompletion,
	ColProblems,
	ColNextWeekPlan,
}

// Table 表格数据：首行列名 + 数据行
type Table struct {
	Columns []string
	Records [][]string
}

// Row 一条待汇总的周报
type Row struct {
	Name           string
	Period         string
	CoreWork       string
	Completion     string
	Problems       string
	NextWeekPlan   string
	SubmissionTime string
}

// RowsFromTable 将表格转换为汇总行
// 列名去除首尾空白；全空行忽略；缺少必需列时返回 MissingFieldError。
func RowsFromTable(t Table) ([]Row, error) {
	index := make(map[string]int, len(t.Columns))
	for i, col := range t.Columns {
		col = strings.TrimSpace(col)
		if _, dup := index[col]; !dup {
			index[col] = i
		}
	}
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &apperrors.MissingFieldError{Field: col}
		}
	}

	cell := func(rec []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	rows := make([]Row, 0, len(t.Records))
	for _, rec := range t.Records {
		if isBlank(rec) {
			continue
		}
		rows = append(rows, Row{
			Name:           cell(rec, ColName),
			Period:         cell(rec, ColPeriod),
			CoreWork:       cell(rec, ColCoreWork),
			Completion:     cell(rec, ColCompletion),
			Problems:       cell(rec, ColProblems),
			NextWeekPlan:   cell(rec, ColNextWeekPlan),
			SubmissionTime: cell(rec, ColSubmissionTime),
		})
	}
	return rows, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
