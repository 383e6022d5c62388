package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/georgetown-analytics/webfolio/internal/model"
)

func TestFeed_BuildFeed(t *testing.T) {
	repo, _, _, _, _, eventRepo := newMockRepository()
	tz := testTZ(t)
	svc := NewFeedService(repo, tz, "georgetown.edu", zap.NewNop())

	pk := "course-1"
	_ = eventRepo.Create(context.Background(), &model.CalendarEvent{
		EventID:   "0a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9",
		Summary:   "XBUS-500-01",
		Location:  "640 Massachusetts Ave NW",
		StartTime: time.Date(2024, 1, 6, 9, 0, 0, 0, tz),
		EndTime:   time.Date(2024, 1, 6, 16, 0, 0, 0, tz),
		CoursePK:  &pk,
	})
	_ = eventRepo.Create(context.Background(), &model.CalendarEvent{
		EventID:   "1b2c3d4e-5f60-7182-93a4-b5c6d7e8f90a",
		Summary:   "Thanksgiving Break",
		StartTime: time.Date(2024, 11, 30, 0, 0, 0, 0, tz),
		EndTime:   time.Date(2024, 11, 30, 0, 0, 0, 0, tz),
		IsHoliday: true,
	})

	feed, err := svc.BuildFeed(context.Background())
	if err != nil {
		t.Fatalf("BuildFeed 应成功: %v", err)
	}

	if !strings.Contains(feed, "BEGIN:VCALENDAR") || !strings.Contains(feed, "END:VCALENDAR") {
		t.Error("期望完整的 VCALENDAR 包裹")
	}
	if strings.Count(feed, "BEGIN:VEVENT") != 2 {
		t.Errorf("期望2条 VEVENT，实际=%d", strings.Count(feed, "BEGIN:VEVENT"))
	}
	if !strings.Contains(feed, "SUMMARY:XBUS-500-01") {
		t.Error("期望含课程日程的 SUMMARY")
	}
	if !strings.Contains(feed, "Thanksgiving Break") {
		t.Error("期望含假日事件")
	}
}
