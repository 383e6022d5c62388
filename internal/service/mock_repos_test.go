package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/georgetown-analytics/webfolio/internal/model"
	"github.com/georgetown-analytics/webfolio/internal/repository"
)

// 可空字段相等性辅助

func datePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// ── Mock CohortRepository ──

type mockCohortRepo struct {
	cohorts map[string]*model.Cohort
	seq     int
}

func newMockCohortRepo() *mockCohortRepo {
	return &mockCohortRepo{cohorts: make(map[string]*model.Cohort)}
}

func (m *mockCohortRepo) Create(_ context.Context, cohort *model.Cohort) error {
	if cohort.CohortID == "" {
		m.seq++
		cohort.CohortID = fmt.Sprintf("cohort-%d", m.seq)
	}
	m.cohorts[cohort.CohortID] = cohort
	return nil
}

func (m *mockCohortRepo) GetByID(_ context.Context, id string) (*model.Cohort, error) {
	if c, ok := m.cohorts[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCohortRepo) GetByNumber(_ context.Context, number int) (*model.Cohort, error) {
	for _, c := range m.cohorts {
		if c.Cohort == number {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCohortRepo) List(_ context.Context) ([]model.Cohort, error) {
	var result []model.Cohort
	for _, c := range m.cohorts {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Cohort > result[j].Cohort })
	return result, nil
}

func (m *mockCohortRepo) GetOrCreate(ctx context.Context, cohort *model.Cohort) (bool, error) {
	for _, c := range m.cohorts {
		if c.Cohort == cohort.Cohort && c.Semester == cohort.Semester &&
			datePtrEqual(c.StartDate, cohort.StartDate) && datePtrEqual(c.EndDate, cohort.EndDate) {
			*cohort = *c
			return false, nil
		}
	}
	return true, m.Create(ctx, cohort)
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
	order   []string
	seq     int

	// instructors 按课程预置的任课教员，Instructors 直接返回
	instructors map[string][]model.Faculty
	// facultyCourses 教员 → 课程主键，供 ListUpcomingByFaculty 使用
	facultyCourses map[string][]string
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{
		courses:        make(map[string]*model.Course),
		instructors:    make(map[string][]model.Faculty),
		facultyCourses: make(map[string][]string),
	}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CoursePK == "" {
		m.seq++
		course.CoursePK = fmt.Sprintf("course-%d", m.seq)
	}
	m.courses[course.CoursePK] = course
	m.order = append(m.order, course.CoursePK)
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context, after, before *time.Time) ([]model.Course, error) {
	var result []model.Course
	for _, pk := range m.order {
		c := m.courses[pk]
		if after != nil && (c.StartDate == nil || c.StartDate.Before(*after)) {
			continue
		}
		if before != nil && (c.StartDate == nil || !c.StartDate.Before(*before)) {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCourseRepo) ListByCohort(_ context.Context, cohortID string) ([]model.Course, error) {
	var result []model.Course
	for _, pk := range m.order {
		if m.courses[pk].CohortID == cohortID {
			result = append(result, *m.courses[pk])
		}
	}
	return result, nil
}

func (m *mockCourseRepo) ListUpcomingByFaculty(_ context.Context, facultyID string, today time.Time) ([]model.Course, error) {
	var result []model.Course
	for _, pk := range m.facultyCourses[facultyID] {
		c, ok := m.courses[pk]
		if !ok || c.StartDate == nil || !c.StartDate.After(today) {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCourseRepo) Instructors(_ context.Context, coursePK string) ([]model.Faculty, error) {
	return m.instructors[coursePK], nil
}

func (m *mockCourseRepo) GetOrCreate(ctx context.Context, course *model.Course) (bool, error) {
	for _, c := range m.courses {
		if c.CohortID == course.CohortID && c.CourseID == course.CourseID &&
			c.Section == course.Section && c.Title == course.Title && c.Hours == course.Hours &&
			datePtrEqual(c.StartDate, course.StartDate) && datePtrEqual(c.EndDate, course.EndDate) {
			*course = *c
			return false, nil
		}
	}
	return true, m.Create(ctx, course)
}

// ── Mock CapstoneRepository ──

type mockCapstoneRepo struct {
	capstones map[string]*model.Capstone
	seq       int
}

func newMockCapstoneRepo() *mockCapstoneRepo {
	return &mockCapstoneRepo{capstones: make(map[string]*model.Capstone)}
}

func (m *mockCapstoneRepo) Create(_ context.Context, capstone *model.Capstone) error {
	if capstone.CapstoneID == "" {
		m.seq++
		capstone.CapstoneID = fmt.Sprintf("capstone-%d", m.seq)
	}
	m.capstones[capstone.CapstoneID] = capstone
	return nil
}

func (m *mockCapstoneRepo) List(_ context.Context) ([]model.Capstone, error) {
	var result []model.Capstone
	for _, c := range m.capstones {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCapstoneRepo) ListByCohort(_ context.Context, cohortID string) ([]model.Capstone, error) {
	var result []model.Capstone
	for _, c := range m.capstones {
		if c.CohortID == cohortID {
			result = append(result, *c)
		}
	}
	return result, nil
}

// ── Mock FacultyRepository ──

type mockFacultyRepo struct {
	faculty map[string]*model.Faculty
	seq     int
}

func newMockFacultyRepo() *mockFacultyRepo {
	return &mockFacultyRepo{faculty: make(map[string]*model.Faculty)}
}

func (m *mockFacultyRepo) Create(_ context.Context, faculty *model.Faculty) error {
	if faculty.FacultyID == "" {
		m.seq++
		faculty.FacultyID = fmt.Sprintf("fac-%d", m.seq)
	}
	m.faculty[faculty.FacultyID] = faculty
	return nil
}

func (m *mockFacultyRepo) GetByID(_ context.Context, id string) (*model.Faculty, error) {
	if f, ok := m.faculty[id]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFacultyRepo) GetByNetID(_ context.Context, netid string) (*model.Faculty, error) {
	for _, f := range m.faculty {
		if f.NetID != nil && *f.NetID == netid {
			return f, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFacultyRepo) List(_ context.Context, includeExcluded bool) ([]model.Faculty, error) {
	var result []model.Faculty
	for _, f := range m.faculty {
		if !includeExcluded && f.Exclude {
			continue
		}
		result = append(result, *f)
	}
	return result, nil
}

func (m *mockFacultyRepo) GetOrCreateByName(ctx context.Context, firstName, lastName string) (*model.Faculty, bool, error) {
	for _, f := range m.faculty {
		if strPtrEqual(f.FirstName, &firstName) && strPtrEqual(f.LastName, &lastName) {
			return f, false, nil
		}
	}
	faculty := &model.Faculty{FirstName: &firstName, LastName: &lastName}
	if err := m.Create(ctx, faculty); err != nil {
		return nil, false, err
	}
	return faculty, true, nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments []*model.Assignment
	seq         int
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{}
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	if assignment.AssignmentID == "" {
		m.seq++
		assignment.AssignmentID = fmt.Sprintf("assign-%d", m.seq)
	}
	m.assignments = append(m.assignments, assignment)
	return nil
}

func (m *mockAssignmentRepo) List(_ context.Context, filter repository.AssignmentFilter) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if filter.CohortID != "" && a.CohortID != filter.CohortID {
			continue
		}
		if filter.FacultyID != "" && a.FacultyID != filter.FacultyID {
			continue
		}
		if filter.Role != "" && a.Role != filter.Role {
			continue
		}
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAssignmentRepo) GetOrCreate(ctx context.Context, assignment *model.Assignment) (bool, error) {
	for _, a := range m.assignments {
		if a.FacultyID == assignment.FacultyID && a.CohortID == assignment.CohortID &&
			a.Role == assignment.Role && strPtrEqual(a.CoursePK, assignment.CoursePK) {
			*assignment = *a
			return false, nil
		}
	}
	return true, m.Create(ctx, assignment)
}

// ── Mock CalendarEventRepository ──

type mockEventRepo struct {
	events []*model.CalendarEvent
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{}
}

func (m *mockEventRepo) Create(_ context.Context, event *model.CalendarEvent) error {
	stored := *event
	stored.Attendees = nil
	m.events = append(m.events, &stored)
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.CalendarEvent, error) {
	for _, e := range m.events {
		if e.EventID == id {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) List(_ context.Context, holidaysOnly bool) ([]model.CalendarEvent, error) {
	var result []model.CalendarEvent
	for _, e := range m.events {
		if holidaysOnly && !e.IsHoliday {
			continue
		}
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result, nil
}

func (m *mockEventRepo) ListByCourse(_ context.Context, coursePK string) ([]model.CalendarEvent, error) {
	var result []model.CalendarEvent
	for _, e := range m.events {
		if e.CoursePK != nil && *e.CoursePK == coursePK {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result, nil
}

func (m *mockEventRepo) CountByCourse(_ context.Context, coursePK string) (int64, error) {
	var count int64
	for _, e := range m.events {
		if !e.IsHoliday && e.CoursePK != nil && *e.CoursePK == coursePK {
			count++
		}
	}
	return count, nil
}

func (m *mockEventRepo) AddAttendees(_ context.Context, event *model.CalendarEvent, attendees []model.Faculty) error {
	for _, e := range m.events {
		if e.EventID == event.EventID {
			e.Attendees = append(e.Attendees, attendees...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockEventRepo) HolidayExistsOn(_ context.Context, day time.Time) (bool, error) {
	for _, e := range m.events {
		if !e.IsHoliday {
			continue
		}
		y1, m1, d1 := e.StartTime.Date()
		y2, m2, d2 := day.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEventRepo) DeleteAll(_ context.Context) (int64, error) {
	deleted := int64(len(m.events))
	m.events = nil
	return deleted, nil
}

// newMockRepository 全 mock 的 Repository 聚合
func newMockRepository() (*repository.Repository, *mockCohortRepo, *mockCourseRepo, *mockFacultyRepo, *mockAssignmentRepo, *mockEventRepo) {
	cohortRepo := newMockCohortRepo()
	courseRepo := newMockCourseRepo()
	facultyRepo := newMockFacultyRepo()
	assignmentRepo := newMockAssignmentRepo()
	eventRepo := newMockEventRepo()
	repo := &repository.Repository{
		Cohort:     cohortRepo,
		Course:     courseRepo,
		Capstone:   newMockCapstoneRepo(),
		Faculty:    facultyRepo,
		Assignment: assignmentRepo,
		Event:      eventRepo,
	}
	return repo, cohortRepo, courseRepo, facultyRepo, assignmentRepo, eventRepo
}
