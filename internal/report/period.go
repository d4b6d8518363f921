package report

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrPeriodParse 工作周期无法解析；调用方应降级为原始文本 + 第X周
var ErrPeriodParse = errors.New("无法解析日期格式")

// UnknownWeek 周次未知时的占位
const UnknownWeek = "X"

// periodLayouts 候选日期格式，按顺序尝试
var periodLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"20060102",
}

// Period 解析后的工作周期
type Period struct {
	Start time.Time
	End   time.Time
	// Label 成功时为 YYYYMMDD-YYYYMMDD，失败时为原始文本
	Label string
	// Week 第几周，0 表示未知
	Week int
}

// WeekLabel 周次文本，未知时为 "X"
func (p Period) WeekLabel() string {
	if p.Week <= 0 {
		return UnknownWeek
	}
	return strconv.Itoa(p.Week)
}

// Resolved 是否成功解析出起止日期
func (p Period) Resolved() bool { return p.Week > 0 }

// Resolve 解析 "开始 - 结束" 形式的工作周期，并以 ref 为今天计算周次
func Resolve(period string, ref time.Time) (Period, error) {
	raw := strings.TrimSpace(period)
	if !strings.Contains(raw, "-") {
		return Period{Label: period}, ErrPeriodParse
	}

	for _, layout := range periodLayouts {
		for _, pair := range candidateSplits(raw) {
			start, err := time.ParseInLocation(layout, pair[0], ref.Location())
			if err != nil {
				continue
			}
			end, err := time.ParseInLocation(layout, pair[1], ref.Location())
			if err != nil {
				continue
			}
			return Period{
				Start: start,
				End:   end,
				Label: start.Format("20060102") + "-" + end.Format("20060102"),
				Week:  weekNumber(start, ref),
			}, nil
		}
	}
	return Period{Label: period}, ErrPeriodParse
}

// ResolveOrFallback 解析失败时返回原始文本与未知周次，不返回错误
func ResolveOrFallback(period string, ref time.Time) Period {
	p, err := Resolve(period, ref)
	if err != nil {
		return Period{Label: period}
	}
	return p
}

// candidateSplits 列出所有可能的 (开始, 结束) 切分
// 先取按 "-" 切开的前两段；再尝试在每个 "-" 处一分为二，
// 以支持 2024-01-01 - 2024-01-05 这类本身带横线的日期。
func candidateSplits(raw string) [][2]string {
	var out [][2]string
	tokens := strings.Split(raw, "-")
	if len(tokens) >= 2 {
		out = append(out, [2]string{strings.TrimSpace(tokens[0]), strings.TrimSpace(tokens[1])})
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] != '-' {
			continue
		}
		left := strings.TrimSpace(raw[:i])
		right := strings.TrimSpace(raw[i+1:])
		if left == "" || right == "" {
			continue
		}
		out = append(out, [2]string{left, right})
	}
	return out
}

// weekNumber floor((ref - start) / 7天) + 1，最小为 1
func weekNumber(start, ref time.Time) int {
	days := civilDays(ref) - civilDays(start)
	week := floorDiv(days, 7) + 1
	if week < 1 {
		week = 1
	}
	return week
}

func civilDays(t time.Time) int {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Unix() / 86400)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
