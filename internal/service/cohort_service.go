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

// 梯队相关业务错误
var (
	ErrCohortNotFound = errors.New("梯队不存在")
	ErrCohortExists   = errors.New("梯队编号已存在")
)

// CohortService 梯队服务接口
type CohortService interface {
	CreateCohort(ctx context.Context, req *dto.CreateCohortRequest) (*dto.CohortResponse, error)
	GetCohort(ctx context.Context, id string) (*dto.CohortResponse, error)
	ListCohorts(ctx context.Context) ([]dto.CohortResponse, error)
	// ListCohortCourses 列出梯队的全部课程开设记录
	ListCohortCourses(ctx context.Context, id string) ([]dto.CourseResponse, error)
	// ListCapstones 列出全部（或指定梯队的）毕业设计
	ListCapstones(ctx context.Context, cohortID string) ([]dto.CapstoneResponse, error)
}

type cohortService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCohortService 创建 CohortService 实例
func NewCohortService(repo *repository.Repository, logger *zap.Logger) CohortService {
	return &cohortService{repo: repo, logger: logger}
}

// CreateCohort 创建梯队
func (s *cohortService) CreateCohort(ctx context.Context, req *dto.CreateCohortRequest) (*dto.CohortResponse, error) {
	if _, err := s.repo.Cohort.GetByNumber(ctx, req.Cohort); err == nil {
		return nil, ErrCohortExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询梯队失败", zap.Int("cohort", req.Cohort), zap.Error(err))
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

	cohort := model.Cohort{
		Cohort:    req.Cohort,
		Semester:  req.Semester,
		Section:   req.Section,
		StartDate: start,
		EndDate:   end,
	}
	if err := s.repo.Cohort.Create(ctx, &cohort); err != nil {
		s.logger.Error("创建梯队失败", zap.Int("cohort", req.Cohort), zap.Error(err))
		return nil, err
	}

	s.logger.Info("梯队已创建", zap.Int("cohort", cohort.Cohort), zap.String("semester", cohort.Semester))
	resp := toCohortResponse(&cohort)
	return &resp, nil
}

// GetCohort 按 ID 查询梯队
func (s *cohortService) GetCohort(ctx context.Context, id string) (*dto.CohortResponse, error) {
	cohort, err := s.repo.Cohort.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCohortNotFound
		}
		s.logger.Error("查询梯队失败", zap.String("cohort_id", id), zap.Error(err))
		return nil, err
	}
	resp := toCohortResponse(cohort)
	return &resp, nil
}

// ListCohorts 按梯队编号倒序列出全部梯队
func (s *cohortService) ListCohorts(ctx context.Context) ([]dto.CohortResponse, error) {
	cohorts, err := s.repo.Cohort.List(ctx)
	if err != nil {
		s.logger.Error("查询梯队列表失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.CohortResponse, 0, len(cohorts))
	for i := range cohorts {
		resp = append(resp, toCohortResponse(&cohorts[i]))
	}
	return resp, nil
}

// ListCohortCourses 列出梯队的课程
func (s *cohortService) ListCohortCourses(ctx context.Context, id string) ([]dto.CourseResponse, error) {
	cohort, err := s.repo.Cohort.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCohortNotFound
		}
		s.logger.Error("查询梯队失败", zap.String("cohort_id", id), zap.Error(err))
		return nil, err
	}

	courses, err := s.repo.Course.ListByCohort(ctx, cohort.CohortID)
	if err != nil {
		s.logger.Error("查询梯队课程失败", zap.String("cohort_id", id), zap.Error(err))
		return nil, err
	}

	resp := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		courses[i].Cohort = cohort
		resp = append(resp, toCourseResponse(&courses[i]))
	}
	return resp, nil
}

// ListCapstones 列出毕业设计，cohortID 为空时列出全部
func (s *cohortService) ListCapstones(ctx context.Context, cohortID string) ([]dto.CapstoneResponse, error) {
	var (
		capstones []model.Capstone
		err       error
	)
	if cohortID == "" {
		capstones, err = s.repo.Capstone.List(ctx)
	} else {
		capstones, err = s.repo.Capstone.ListByCohort(ctx, cohortID)
	}
	if err != nil {
		s.logger.Error("查询毕业设计失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.CapstoneResponse, 0, len(capstones))
	for i := range capstones {
		r := dto.CapstoneResponse{
			ID:    capstones[i].CapstoneID,
			Title: capstones[i].Title,
		}
		if capstones[i].Cohort != nil {
			r.Cohort = capstones[i].Cohort.Cohort
		}
		resp = append(resp, r)
	}
	return resp, nil
}

// toCohortResponse 渲染梯队响应
func toCohortResponse(c *model.Cohort) dto.CohortResponse {
	return dto.CohortResponse{
		ID:           c.CohortID,
		Cohort:       c.Cohort,
		Semester:     c.Semester,
		SemesterName: c.SemesterName(),
		Section:      c.Section,
		StartDate:    formatDate(c.StartDate),
		EndDate:      formatDate(c.EndDate),
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    c.UpdatedAt.Format(time.RFC3339),
	}
}
