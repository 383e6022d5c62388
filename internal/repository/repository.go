package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Cohort     CohortRepository
	Course     CourseRepository
	Capstone   CapstoneRepository
	Faculty    FacultyRepository
	Assignment AssignmentRepository
	Event      CalendarEventRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Cohort:     NewCohortRepo(db),
		Course:     NewCourseRepo(db),
		Capstone:   NewCapstoneRepo(db),
		Faculty:    NewFacultyRepo(db),
		Assignment: NewAssignmentRepo(db),
		Event:      NewCalendarEventRepo(db),
	}
}
