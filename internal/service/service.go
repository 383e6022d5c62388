package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/georgetown-analytics/webfolio/config"
	"github.com/georgetown-analytics/webfolio/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Cohort    CohortService
	Course    CourseService
	Faculty   FacultyService
	Scheduler SchedulerService
	Holiday   HolidayService
	Importer  ImporterService
	Export    ExportService
	Feed      FeedService
	Gcal      GcalService
}

// NewService 创建 Service 聚合
// tz 为教学点时区，config.Load 已校验其有效性
func NewService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) *Service {
	tz, err := cfg.Calendar.TZ()
	if err != nil {
		// Validate 已拦截无效时区，此处仅兜底
		tz = time.UTC
	}

	return &Service{
		Cohort:    NewCohortService(repo, logger),
		Course:    NewCourseService(repo, tz, logger),
		Faculty:   NewFacultyService(repo, cfg.Calendar.EmailDomain, logger),
		Scheduler: NewSchedulerService(repo, tz, cfg.Calendar.Location, logger),
		Holiday:   NewHolidayService(repo, tz, logger),
		Importer:  NewImporterService(repo, logger),
		Export:    NewExportService(repo, cfg.Calendar.EmailDomain, logger),
		Feed:      NewFeedService(repo, tz, cfg.Calendar.EmailDomain, logger),
		Gcal:      NewGcalService(repo, tz, cfg.Calendar.EmailDomain, logger),
	}
}
