package report

import "time"

// DateLayout 表单与存储中使用的日期格式
const DateLayout = "2006-01-02"

// Clock 提供"当前时间"，所有依赖本周/今天的逻辑都从这里取值
type Clock func() time.Time

// SystemClock 返回指定时区下的系统时钟
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}

// FixedClock 返回固定时刻，用于测试与离线生成
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// WeekBounds 返回 now 所在周的周一与周五（零点，与 now 同时区）
func WeekBounds(now time.Time) (monday, friday time.Time) {
	offset := (int(now.Weekday()) + 6) % 7
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monday = day.AddDate(0, 0, -offset)
	friday = monday.AddDate(0, 0, 4)
	return monday, friday
}

// CurrentPeriod 返回 now 所在周的 (周一, 周五) 日期字符串
func CurrentPeriod(now time.Time) (start, end string) {
	monday, friday := WeekBounds(now)
	return monday.Format(DateLayout), friday.Format(DateLayout)
}

// IsCurrentWeek 判断 start/end 是否恰好是 now 所在周的周一到周五
// 日期无法解析时视为非本周。
func IsCurrentWeek(start, end string, now time.Time) bool {
	s, err := time.ParseInLocation(DateLayout, start, now.Location())
	if err != nil {
		return false
	}
	e, err := time.ParseInLocation(DateLayout, end, now.Location())
	if err != nil {
		return false
	}
	monday, friday := WeekBounds(now)
	return s.Equal(monday) && e.Equal(friday)
}
