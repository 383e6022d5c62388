package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/georgetown-analytics/webfolio/internal/dto"
)

func setupTestHolidayService(t *testing.T) (HolidayService, *mockEventRepo, *time.Location) {
	t.Helper()
	repo, _, _, _, _, eventRepo := newMockRepository()
	tz := testTZ(t)
	svc := NewHolidayService(repo, tz, zap.NewNop())
	return svc, eventRepo, tz
}

// ── NearestSaturday 测试 ──

func TestNearestSaturday_AllWeekdays(t *testing.T) {
	// 2024-01-06 是周六；一周内任意一天都应落到本周最近的周六
	cases := []struct {
		day  string
		want string
	}{
		{"2024-01-06", "2024-01-06"}, // 周六不动
		{"2024-01-07", "2024-01-06"}, // 周日回退一天
		{"2024-01-08", "2024-01-06"}, // 周一回退两天
		{"2024-01-09", "2024-01-06"}, // 周二回退三天
		{"2024-01-10", "2024-01-13"}, // 周三顺延到下周六
		{"2024-01-11", "2024-01-13"}, // 周四
		{"2024-01-12", "2024-01-13"}, // 周五
	}

	for _, tc := range cases {
		day, err := time.Parse("2006-01-02", tc.day)
		if err != nil {
			t.Fatalf("解析日期失败: %v", err)
		}
		got := NearestSaturday(day, true).Format("2006-01-02")
		if got != tc.want {
			t.Errorf("%s 期望平移到 %s，实际=%s", tc.day, tc.want, got)
		}
	}
}

func TestNearestSaturday_Idempotent(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	once := NearestSaturday(day, true)
	twice := NearestSaturday(once, true)
	if !once.Equal(twice) {
		t.Errorf("平移应幂等：一次=%v，两次=%v", once, twice)
	}
}

func TestNearestSaturday_NoConvert(t *testing.T) {
	day := time.Date(2024, 11, 28, 0, 0, 0, 0, time.UTC) // 周四
	got := NearestSaturday(day, false)
	if !got.Equal(day) {
		t.Errorf("convert=false 时日期应原样返回，实际=%v", got)
	}
}

// ── CreateHoliday 测试 ──

func TestHoliday_Create_ShiftsToSaturday(t *testing.T) {
	svc, eventRepo, _ := setupTestHolidayService(t)

	// 感恩节 2024-11-28 是周四，应顺延到周六 11-30
	resp, err := svc.CreateHoliday(context.Background(), &dto.CreateHolidayRequest{
		Date:  "2024-11-28",
		Title: "Thanksgiving Break",
	})
	if err != nil {
		t.Fatalf("CreateHoliday 应成功: %v", err)
	}
	if resp.Start != "2024-11-30" {
		t.Errorf("期望假日落在2024-11-30，实际=%s", resp.Start)
	}
	if !resp.IsHoliday {
		t.Error("期望 IsHoliday=true")
	}

	events, _ := eventRepo.List(context.Background(), true)
	if len(events) != 1 {
		t.Fatalf("期望落库1条假日，实际=%d", len(events))
	}
	if events[0].Summary != "Thanksgiving Break" {
		t.Errorf("期望Summary=Thanksgiving Break，实际=%s", events[0].Summary)
	}
}

func TestHoliday_Create_NoConvert(t *testing.T) {
	svc, _, _ := setupTestHolidayService(t)

	resp, err := svc.CreateHoliday(context.Background(), &dto.CreateHolidayRequest{
		Date:      "2024-11-28",
		Title:     "Thanksgiving",
		NoConvert: true,
	})
	if err != nil {
		t.Fatalf("CreateHoliday 应成功: %v", err)
	}
	if resp.Start != "2024-11-28" {
		t.Errorf("期望假日保持2024-11-28，实际=%s", resp.Start)
	}
}

func TestHoliday_Create_Duplicate(t *testing.T) {
	svc, _, _ := setupTestHolidayService(t)

	req := &dto.CreateHolidayRequest{Date: "2024-11-28", Title: "Thanksgiving Break"}
	if _, err := svc.CreateHoliday(context.Background(), req); err != nil {
		t.Fatalf("首次录入应成功: %v", err)
	}

	// 同一周内的另一天会平移到同一个周六，同样算重复
	_, err := svc.CreateHoliday(context.Background(), &dto.CreateHolidayRequest{
		Date:  "2024-11-29",
		Title: "Black Friday",
	})
	if !errors.Is(err, ErrHolidayExists) {
		t.Errorf("期望 ErrHolidayExists，实际: %v", err)
	}
}

func TestHoliday_Create_BadDate(t *testing.T) {
	svc, _, _ := setupTestHolidayService(t)

	_, err := svc.CreateHoliday(context.Background(), &dto.CreateHolidayRequest{
		Date:  "11/28/2024",
		Title: "Thanksgiving",
	})
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("期望 ErrInvalidDate，实际: %v", err)
	}
}
