package handler

import "github.com/georgetown-analytics/webfolio/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Cohort   *CohortHandler
	Course   *CourseHandler
	Faculty  *FacultyHandler
	Calendar *CalendarHandler
	Import   *ImportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Cohort:   NewCohortHandler(svc.Cohort),
		Course:   NewCourseHandler(svc.Course, svc.Scheduler),
		Faculty:  NewFacultyHandler(svc.Faculty),
		Calendar: NewCalendarHandler(svc.Holiday, svc.Scheduler, svc.Feed),
		Import:   NewImportHandler(svc.Importer, svc.Export),
	}
}
