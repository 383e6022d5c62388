package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/georgetown-analytics/webfolio/internal/model"
)

// mockInserter 记录推送的事件
type mockInserter struct {
	events []*model.GoogleEvent
}

func (m *mockInserter) Insert(_ context.Context, event *model.GoogleEvent) error {
	m.events = append(m.events, event)
	return nil
}

func setupTestGcalService(t *testing.T) (GcalService, *mockCourseRepo, *mockFacultyRepo, *mockEventRepo) {
	t.Helper()
	repo, _, courseRepo, facultyRepo, _, eventRepo := newMockRepository()
	tz := testTZ(t)
	svc := NewGcalService(repo, tz, "georgetown.edu", zap.NewNop())
	return svc, courseRepo, facultyRepo, eventRepo
}

func TestGcal_SyncFaculty(t *testing.T) {
	svc, courseRepo, facultyRepo, eventRepo := setupTestGcalService(t)

	netid := "al123"
	first, last := "Ada", "Lovelace"
	faculty := &model.Faculty{NetID: &netid, FirstName: &first, LastName: &last}
	_ = facultyRepo.Create(context.Background(), faculty)

	// 未来一年后开课的课程
	start := time.Now().AddDate(1, 0, 0)
	course := &model.Course{CourseID: "XBUS-500", Section: 1, Title: "Foundations", Hours: 6, StartDate: &start, EndDate: &start}
	_ = courseRepo.Create(context.Background(), course)
	courseRepo.facultyCourses[faculty.FacultyID] = []string{course.CoursePK}

	_ = eventRepo.Create(context.Background(), &model.CalendarEvent{
		EventID:   "0a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9",
		Summary:   "XBUS-500-01",
		StartTime: start,
		EndTime:   start.Add(7 * time.Hour),
		CoursePK:  &course.CoursePK,
	})

	inserter := &mockInserter{}
	report, err := svc.SyncFaculty(context.Background(), "al123", inserter)
	if err != nil {
		t.Fatalf("SyncFaculty 应成功: %v", err)
	}
	if report.Courses != 1 || report.Events != 1 {
		t.Errorf("期望推送1课1事件，实际=%d/%d", report.Courses, report.Events)
	}
	if len(inserter.events) != 1 {
		t.Fatalf("期望写入1条事件，实际=%d", len(inserter.events))
	}
	if inserter.events[0].ID != "0a1b2c3d4e5f60718293a4b5c6d7e8f9" {
		t.Errorf("期望事件标识去掉连字符，实际=%s", inserter.events[0].ID)
	}
}

func TestGcal_SyncFaculty_SkipsUnscheduled(t *testing.T) {
	svc, courseRepo, facultyRepo, _ := setupTestGcalService(t)

	netid := "gh456"
	faculty := &model.Faculty{NetID: &netid}
	_ = facultyRepo.Create(context.Background(), faculty)

	start := time.Now().AddDate(1, 0, 0)
	course := &model.Course{CourseID: "XBUS-504", Section: 1, Title: "Applied", Hours: 12, StartDate: &start, EndDate: &start}
	_ = courseRepo.Create(context.Background(), course)
	courseRepo.facultyCourses[faculty.FacultyID] = []string{course.CoursePK}

	inserter := &mockInserter{}
	report, err := svc.SyncFaculty(context.Background(), "gh456", inserter)
	if err != nil {
		t.Fatalf("SyncFaculty 应成功: %v", err)
	}
	if report.Events != 0 {
		t.Errorf("未排课的课程不应推送事件，实际=%d", report.Events)
	}
	if len(report.Skipped) != 1 || report.Skipped[0] != "XBUS-504-01" {
		t.Errorf("期望跳过 XBUS-504-01，实际=%v", report.Skipped)
	}
}

func TestGcal_SyncFaculty_NotFound(t *testing.T) {
	svc, _, _, _ := setupTestGcalService(t)

	_, err := svc.SyncFaculty(context.Background(), "nobody", &mockInserter{})
	if !errors.Is(err, ErrFacultyNotFound) {
		t.Errorf("期望 ErrFacultyNotFound，实际: %v", err)
	}
}
