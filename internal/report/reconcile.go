package report

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	apperrors "weekly-summary/pkg/errors"
)

// KeyFunc 去重键
type KeyFunc func(Row) string

// ByName 按姓名去重：每人只保留最后一次提交
func ByName(r Row) string { return r.Name }

// ByNamePeriod 按 姓名+工作周期 去重
func ByNamePeriod(r Row) string { return r.Name + "\x00" + r.Period }

// submissionTimeLayouts 提交时间的可识别格式；无法识别时按原文比较
var submissionTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006/01/02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04",
	DateLayout,
}

// Reconcile 去重并排序
//
// 按提交时间升序稳定排序后按 key 保留最后一条，最终按姓名排序。
// 任一行缺少必填内容（遇到的问题除外）时整体失败，不返回部分结果。
func Reconcile(rows []Row, key KeyFunc) ([]Row, error) {
	for _, r := range rows {
		if field := missingField(r); field != "" {
			return nil, &apperrors.MissingFieldError{Field: field}
		}
	}

	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sortKeys := make(map[string]string, len(sorted))
	for _, r := range sorted {
		sortKeys[r.SubmissionTime] = submissionSortKey(r.SubmissionTime)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sortKeys[sorted[i].SubmissionTime] < sortKeys[sorted[j].SubmissionTime]
	})

	last := make(map[string]int, len(sorted))
	for i, r := range sorted {
		last[key(r)] = i
	}
	out := make([]Row, 0, len(last))
	for i, r := range sorted {
		if last[key(r)] == i {
			out = append(out, r)
		}
	}

	SortByName(out)
	return out, nil
}

// missingField 返回第一个为空的必填列名
func missingField(r Row) string {
	for _, f := range []struct{ col, val string }{
		{ColName, r.Name},
		{ColPeriod, r.Period},
		{ColCoreWork, r.CoreWork},
		{ColCompletion, r.Completion},
		{ColNextWeekPlan, r.NextWeekPlan},
	} {
		if strings.TrimSpace(f.val) == "" {
			return f.col
		}
	}
	return ""
}

// SortByName 按中文姓名排序（拼音序），同名保持原顺序
func SortByName(rows []Row) {
	c := collate.New(language.Chinese)
	sort.SliceStable(rows, func(i, j int) bool {
		return c.CompareString(rows[i].Name, rows[j].Name) < 0
	})
}

func submissionSortKey(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range submissionTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format("2006-01-02T15:04:05.000000000")
		}
	}
	return s
}

// SortNames 按与 SortByName 相同的规则排序姓名列表
func SortNames(names []string) {
	collate.New(language.Chinese).SortStrings(names)
}
