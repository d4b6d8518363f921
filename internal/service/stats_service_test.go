package service

import (
	"context"
	"reflect"
	"testing"

	"weekly-summary/internal/model"
)

func TestStatsService_CurrentWeek(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "13800138000", "管理员", "123456", model.RoleAdmin)
	env.addUser(t, "13900000001", "张三", "secret1", model.RoleUser)
	env.addUser(t, "13900000002", "王五", "secret1", model.RoleUser)
	env.addUser(t, "13900000003", "李四", "secret1", model.RoleUser)
	env.putSubmissions(t,
		model.Submission{ID: "a", Name: "张三", StartDate: "2024-01-01", EndDate: "2024-01-05", SubmissionTime: "2024-01-02T09:00:00+08:00"},
		model.Submission{ID: "b", Name: "张三", StartDate: "2024-01-01", EndDate: "2024-01-05", SubmissionTime: "2024-01-03T09:00:00+08:00"},
		model.Submission{ID: "c", Name: "李四", StartDate: "2023-12-25", EndDate: "2023-12-29", SubmissionTime: "2023-12-29T09:00:00+08:00"},
	)

	stats, err := env.svc.Stats.CurrentWeek(context.Background())
	if err != nil {
		t.Fatalf("CurrentWeek 失败: %v", err)
	}
	if stats.PeriodStart != "2024-01-01" || stats.PeriodEnd != "2024-01-05" {
		t.Errorf("周期不符: %s ~ %s", stats.PeriodStart, stats.PeriodEnd)
	}
	if len(stats.Submitted) != 1 || stats.Submitted[0].Name != "张三" ||
		stats.Submitted[0].SubmissionTime != "2024-01-03T09:00:00+08:00" {
		t.Errorf("已提交列表不符: %+v", stats.Submitted)
	}
	if want := []string{"李四", "王五"}; !reflect.DeepEqual(stats.NotSubmitted, want) {
		t.Errorf("未提交列表期望 %v，实际 %v", want, stats.NotSubmitted)
	}
}
