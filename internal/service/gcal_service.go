package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/georgetown-analytics/webfolio/internal/dto"
	"github.com/georgetown-analytics/webfolio/internal/model"
	"github.com/georgetown-analytics/webfolio/internal/repository"
)

// CalendarInserter 外部日历写入端
// 事件以固定 ID 写入，重复推送同一事件应当被实现方幂等处理
type CalendarInserter interface {
	Insert(ctx context.Context, event *model.GoogleEvent) error
}

// GcalService 外部日历推送服务接口
type GcalService interface {
	// SyncFaculty 把教员未来课程的全部日程推送到外部日历
	SyncFaculty(ctx context.Context, netid string, inserter CalendarInserter) (*dto.SyncReport, error)
}

type gcalService struct {
	repo        *repository.Repository
	tz          *time.Location
	emailDomain string
	logger      *zap.Logger
}

// NewGcalService 创建 GcalService 实例
func NewGcalService(repo *repository.Repository, tz *time.Location, emailDomain string, logger *zap.Logger) GcalService {
	return &gcalService{repo: repo, tz: tz, emailDomain: emailDomain, logger: logger}
}

// SyncFaculty 推送教员未来课程的日程
// 未排课的课程记入 Skipped 而不算失败，先 makeevents 再推送
func (s *gcalService) SyncFaculty(ctx context.Context, netid string, inserter CalendarInserter) (*dto.SyncReport, error) {
	faculty, err := s.repo.Faculty.GetByNetID(ctx, netid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		s.logger.Error("查询教员失败", zap.String("netid", netid), zap.Error(err))
		return nil, err
	}

	today := time.Now().In(s.tz)
	courses, err := s.repo.Course.ListUpcomingByFaculty(ctx, faculty.FacultyID, today)
	if err != nil {
		s.logger.Error("查询教员课程失败", zap.String("netid", netid), zap.Error(err))
		return nil, err
	}

	report := &dto.SyncReport{Faculty: faculty.FullName()}
	for i := range courses {
		course := &courses[i]

		events, err := s.repo.Event.ListByCourse(ctx, course.CoursePK)
		if err != nil {
			s.logger.Error("查询课程日程失败", zap.String("course_pk", course.CoursePK), zap.Error(err))
			return nil, err
		}
		if len(events) == 0 {
			report.Skipped = append(report.Skipped, course.Code())
			s.logger.Warn("课程未排课，跳过推送", zap.String("course", course.Code()))
			continue
		}

		for j := range events {
			if err := inserter.Insert(ctx, events[j].Google(s.tz, s.emailDomain)); err != nil {
				return nil, fmt.Errorf("推送日程 %s 失败: %w", events[j].Summary, err)
			}
			report.Events++
		}
		report.Courses++
	}

	s.logger.Info("日历推送完成",
		zap.String("faculty", report.Faculty),
		zap.Int("courses", report.Courses),
		zap.Int("events", report.Events))
	return report, nil
}
