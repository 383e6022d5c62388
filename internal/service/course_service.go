package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/georgetown-analytics/webfolio/internal/dto"
	"github.com/georgetown-analytics/webfolio/internal/model"
	"github.com/georgetown-analytics/webfolio/internal/repository"
)

// CourseService 课程服务接口
type CourseService interface {
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetCourse(ctx context.Context, id string) (*dto.CourseResponse, error)
	ListCourses(ctx context.Context, after, before *string) ([]dto.CourseResponse, error)
	// ListCourseEvents 列出课程已生成的日程
	ListCourseEvents(ctx context.Context, id string) ([]dto.EventResponse, error)
}

type courseService struct {
	repo   *repository.Repository
	tz     *time.Location
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, tz *time.Location, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, tz: tz, logger: logger}
}

// CreateCourse 创建课程开设记录
func (s *courseService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	cohort, err := s.repo.Cohort.GetByID(ctx, req.CohortID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCohortNotFound
		}
		s.logger.Error("查询梯队失败", zap.String("cohort_id", req.CohortID), zap.Error(err))
		return nil, err
	}

	start, err := parseOptionalDate(req.StartDate, time.UTC)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate(req.EndDate, time.UTC)
	if err != nil {
		return nil, err
	}

	course := model.Course{
		CohortID:  cohort.CohortID,
		CourseID:  req.CourseID,
		Section:   req.Section,
		Title:     req.Title,
		Hours:     req.Hours,
		StartDate: start,
		EndDate:   end,
	}
	if err := s.repo.Course.Create(ctx, &course); err != nil {
		s.logger.Error("创建课程失败", zap.String("course_id", req.CourseID), zap.Error(err))
		return nil, err
	}

	course.Cohort = cohort
	s.logger.Info("课程已创建", zap.String("course", course.Code()), zap.Int("cohort", cohort.Cohort))
	resp := toCourseResponse(&course)
	return &resp, nil
}

// GetCourse 按 ID 查询课程
func (s *courseService) GetCourse(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("course_pk", id), zap.Error(err))
		return nil, err
	}
	resp := toCourseResponse(course)
	return &resp, nil
}

// ListCourses 列出课程，可按开课日期窗口过滤
func (s *courseService) ListCourses(ctx context.Context, after, before *string) ([]dto.CourseResponse, error) {
	afterDay, err := parseOptionalDate(after, time.UTC)
	if err != nil {
		return nil, err
	}
	beforeDay, err := parseOptionalDate(before, time.UTC)
	if err != nil {
		return nil, err
	}

	courses, err := s.repo.Course.List(ctx, afterDay, beforeDay)
	if err != nil {
		s.logger.Error("查询课程列表失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		resp = append(resp, toCourseResponse(&courses[i]))
	}
	return resp, nil
}

// ListCourseEvents 列出课程日程
func (s *courseService) ListCourseEvents(ctx context.Context, id string) ([]dto.EventResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("course_pk", id), zap.Error(err))
		return nil, err
	}

	events, err := s.repo.Event.ListByCourse(ctx, course.CoursePK)
	if err != nil {
		s.logger.Error("查询课程日程失败", zap.String("course_pk", id), zap.Error(err))
		return nil, err
	}

	resp := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		events[i].Course = course
		resp = append(resp, toEventResponse(&events[i], s.tz))
	}
	return resp, nil
}

// toCourseResponse 渲染课程响应
func toCourseResponse(c *model.Course) dto.CourseResponse {
	resp := dto.CourseResponse{
		ID:        c.CoursePK,
		CourseID:  c.CourseID,
		Section:   c.Section,
		Title:     c.Title,
		Hours:     c.Hours,
		StartDate: formatDate(c.StartDate),
		EndDate:   formatDate(c.EndDate),
		Display:   c.Display(),
	}
	if c.Cohort != nil {
		resp.Cohort = c.Cohort.Cohort
	}
	return resp
}
