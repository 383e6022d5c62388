package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/georgetown-analytics/webfolio/internal/dto"
	"github.com/georgetown-analytics/webfolio/internal/model"
	"github.com/georgetown-analytics/webfolio/internal/repository"
)

// 排课相关业务错误
var (
	ErrCourseNotFound   = errors.New("课程不存在")
	ErrMissingDate      = errors.New("课程缺少开课或结课日期，无法排课")
	ErrAlreadyScheduled = errors.New("课程日程已生成，须先删除才能重新生成")
	ErrUnsupportedHours = errors.New("不支持的课程学时，无法排课")
	ErrInvalidDayOfWeek = errors.New("课程日期不落在要求的星期，无法排课")
)

// 上课时段（教学点当地时间）
const (
	eveningStartHour   = 18 // 晚间课 18:30 - 21:30
	eveningStartMinute = 30
	eveningEndHour     = 21
	eveningEndMinute   = 30
	daytimeStartHour   = 9 // 全天课 09:00 - 16:00
	daytimeEndHour     = 16
)

// SchedulerService 排课服务接口
// 按课程学时与起止日期生成上课安排，任课教员自动挂为参与人
type SchedulerService interface {
	// GenerateEvents 为单门课程生成日程
	GenerateEvents(ctx context.Context, coursePK string) ([]dto.EventResponse, error)
	// GenerateAll 为全部（或指定开课窗口内的）课程批量生成日程
	GenerateAll(ctx context.Context, req *dto.GenerateEventsRequest) (*dto.GenerateReport, error)
}

type schedulerService struct {
	repo     *repository.Repository
	tz       *time.Location
	location string // 上课地点，写入日程 location 字段
	logger   *zap.Logger
}

// NewSchedulerService 创建 SchedulerService 实例
func NewSchedulerService(repo *repository.Repository, tz *time.Location, location string, logger *zap.Logger) SchedulerService {
	return &schedulerService{repo: repo, tz: tz, location: location, logger: logger}
}

// GenerateEvents 为单门课程生成日程
func (s *schedulerService) GenerateEvents(ctx context.Context, coursePK string) ([]dto.EventResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, coursePK)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("course_pk", coursePK), zap.Error(err))
		return nil, err
	}

	events, err := s.generateForCourse(ctx, course)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		resp = append(resp, toEventResponse(&events[i], s.tz))
	}
	return resp, nil
}

// GenerateAll 批量生成：单门课程失败不影响其余课程，
// 同类错误按消息汇总计数
func (s *schedulerService) GenerateAll(ctx context.Context, req *dto.GenerateEventsRequest) (*dto.GenerateReport, error) {
	report := &dto.GenerateReport{Errors: make(map[string]int)}

	if req.Delete {
		deleted, err := s.repo.Event.DeleteAll(ctx)
		if err != nil {
			s.logger.Error("清空日程失败", zap.Error(err))
			return nil, err
		}
		report.Deleted = deleted
		s.logger.Info("已清空全部日程", zap.Int64("deleted", deleted))
	}

	after, err := parseOptionalDate(req.After, s.tz)
	if err != nil {
		return nil, ErrInvalidDate
	}
	before, err := parseOptionalDate(req.Before, s.tz)
	if err != nil {
		return nil, ErrInvalidDate
	}

	courses, err := s.repo.Course.List(ctx, after, before)
	if err != nil {
		s.logger.Error("查询课程列表失败", zap.Error(err))
		return nil, err
	}

	for i := range courses {
		events, err := s.generateForCourse(ctx, &courses[i])
		if err != nil {
			report.Errors[err.Error()]++
			continue
		}
		report.Courses++
		report.Events += len(events)
	}

	s.logger.Info("批量排课完成",
		zap.Int("courses", report.Courses),
		zap.Int("events", report.Events),
		zap.Int("failed", len(report.Errors)))
	return report, nil
}

// generateForCourse 排课核心：先按学时推导全部上课时段，全部校验
// 通过后再逐条落库并挂参与人，失败的课程不会留下半截日程
func (s *schedulerService) generateForCourse(ctx context.Context, course *model.Course) ([]model.CalendarEvent, error) {
	if course.StartDate == nil || course.EndDate == nil {
		return nil, ErrMissingDate
	}

	count, err := s.repo.Event.CountByCourse(ctx, course.CoursePK)
	if err != nil {
		s.logger.Error("统计课程日程失败", zap.String("course_pk", course.CoursePK), zap.Error(err))
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyScheduled
	}

	slots, err := s.sessionSlots(course)
	if err != nil {
		return nil, err
	}

	instructors, err := s.repo.Course.Instructors(ctx, course.CoursePK)
	if err != nil {
		s.logger.Error("查询任课教员失败", zap.String("course_pk", course.CoursePK), zap.Error(err))
		return nil, err
	}

	events := make([]model.CalendarEvent, 0, len(slots))
	for _, slot := range slots {
		event := model.CalendarEvent{
			EventID:     uuid.NewString(),
			Summary:     course.Title,
			Location:    s.location,
			Description: course.Display(),
			StartTime:   slot.start,
			EndTime:     slot.end,
			CoursePK:    &course.CoursePK,
		}

		if err := s.repo.Event.Create(ctx, &event); err != nil {
			s.logger.Error("写入日程失败", zap.String("course_pk", course.CoursePK), zap.Error(err))
			return nil, err
		}
		if err := s.repo.Event.AddAttendees(ctx, &event, instructors); err != nil {
			s.logger.Error("关联参与人失败", zap.String("event_id", event.EventID), zap.Error(err))
			return nil, err
		}
		event.Attendees = instructors
		events = append(events, event)
	}

	s.logger.Info("课程排课完成",
		zap.String("course", course.Code()),
		zap.Int("events", len(events)))
	return events, nil
}

// sessionSlot 一次上课的起止时刻
type sessionSlot struct {
	start time.Time
	end   time.Time
}

// sessionSlots 按学时推导上课时段，全部时刻锚定教学点时区：
//
//	3  学时：单日晚间课，开课结课须为同一天
//	6  学时：单日周六全天课
//	12 学时：开课、结课两个周六全天课
//	18 学时：开课周五晚与次日周六全天、结课前一天周五晚与结课周六全天
func (s *schedulerService) sessionSlots(course *model.Course) ([]sessionSlot, error) {
	start := *course.StartDate
	end := *course.EndDate

	if sameDay(start, end) {
		switch course.Hours {
		case model.HoursSingleEvening:
			return []sessionSlot{s.eveningSlot(start)}, nil
		case model.HoursSingleSaturday:
			return []sessionSlot{s.daytimeSlot(start)}, nil
		default:
			return nil, ErrUnsupportedHours
		}
	}

	switch course.Hours {
	case model.HoursTwoSaturdays:
		if start.Weekday() != time.Saturday || end.Weekday() != time.Saturday {
			return nil, ErrInvalidDayOfWeek
		}
		return []sessionSlot{s.daytimeSlot(start), s.daytimeSlot(end)}, nil

	case model.HoursFourSessions:
		if start.Weekday() != time.Friday || end.Weekday() != time.Saturday {
			return nil, ErrInvalidDayOfWeek
		}
		slots := []sessionSlot{
			s.eveningSlot(start),                   // 开课周五晚
			s.daytimeSlot(start.AddDate(0, 0, 1)),  // 次日周六全天
			s.eveningSlot(end.AddDate(0, 0, -1)),   // 结课前一天周五晚
			s.daytimeSlot(end),                     // 结课周六全天
		}
		sort.Slice(slots, func(i, j int) bool { return slots[i].start.Before(slots[j].start) })
		return slots, nil

	default:
		return nil, ErrUnsupportedHours
	}
}

// eveningSlot 晚间课时段 18:30 - 21:30
func (s *schedulerService) eveningSlot(day time.Time) sessionSlot {
	return sessionSlot{
		start: time.Date(day.Year(), day.Month(), day.Day(), eveningStartHour, eveningStartMinute, 0, 0, s.tz),
		end:   time.Date(day.Year(), day.Month(), day.Day(), eveningEndHour, eveningEndMinute, 0, 0, s.tz),
	}
}

// daytimeSlot 全天课时段 09:00 - 16:00
func (s *schedulerService) daytimeSlot(day time.Time) sessionSlot {
	return sessionSlot{
		start: time.Date(day.Year(), day.Month(), day.Day(), daytimeStartHour, 0, 0, 0, s.tz),
		end:   time.Date(day.Year(), day.Month(), day.Day(), daytimeEndHour, 0, 0, 0, s.tz),
	}
}

// sameDay 比较两个日期是否为同一天（只看日期部分）
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// toEventResponse 渲染日程响应
func toEventResponse(e *model.CalendarEvent, tz *time.Location) dto.EventResponse {
	resp := dto.EventResponse{
		ID:          e.EventID,
		Summary:     e.Summary,
		Description: e.Description,
		Location:    e.Location,
		Start:       e.StartTime.In(tz).Format(time.RFC3339),
		End:         e.EndTime.In(tz).Format(time.RFC3339),
		IsHoliday:   e.IsHoliday,
	}
	if e.IsHoliday {
		resp.Start = e.StartTime.In(tz).Format("2006-01-02")
		resp.End = e.EndTime.In(tz).Format("2006-01-02")
	}
	if e.Course != nil {
		code := e.Course.Code()
		resp.Course = &code
	}
	for i := range e.Attendees {
		resp.Attendees = append(resp.Attendees, e.Attendees[i].FullName())
	}
	return resp
}
