package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/georgetown-analytics/webfolio/internal/dto"
	"github.com/georgetown-analytics/webfolio/internal/model"
	"github.com/georgetown-analytics/webfolio/internal/repository"
)

// ErrFacultyNotFound 教员不存在
var ErrFacultyNotFound = errors.New("教员不存在")

// FacultyService 教员服务接口
type FacultyService interface {
	CreateFaculty(ctx context.Context, req *dto.CreateFacultyRequest) (*dto.FacultyResponse, error)
	GetFaculty(ctx context.Context, id string) (*dto.FacultyResponse, error)
	// ListFaculty 列出教员，includeExcluded 时包含已排除的教员
	ListFaculty(ctx context.Context, includeExcluded bool) ([]dto.FacultyResponse, error)
	// ListAssignments 按条件列出教员任务
	ListAssignments(ctx context.Context, filter repository.AssignmentFilter) ([]dto.AssignmentResponse, error)
}

type facultyService struct {
	repo        *repository.Repository
	emailDomain string
	logger      *zap.Logger
}

// NewFacultyService 创建 FacultyService 实例
func NewFacultyService(repo *repository.Repository, emailDomain string, logger *zap.Logger) FacultyService {
	return &facultyService{repo: repo, emailDomain: emailDomain, logger: logger}
}

// CreateFaculty 创建教员
func (s *facultyService) CreateFaculty(ctx context.Context, req *dto.CreateFacultyRequest) (*dto.FacultyResponse, error) {
	faculty := model.Faculty{
		NetID:        req.NetID,
		Prefix:       req.Prefix,
		FirstName:    &req.FirstName,
		LastName:     &req.LastName,
		Suffix:       req.Suffix,
		Email:        req.Email,
		Occupation:   req.Occupation,
		Organization: req.Organization,
		Bio:          req.Bio,
		GitHub:       req.GitHub,
		Twitter:      req.Twitter,
		LinkedIn:     req.LinkedIn,
		HourlyRate:   req.HourlyRate,
	}
	if err := s.repo.Faculty.Create(ctx, &faculty); err != nil {
		s.logger.Error("创建教员失败", zap.String("last_name", req.LastName), zap.Error(err))
		return nil, err
	}

	s.logger.Info("教员已创建", zap.String("name", faculty.FullName()))
	resp := s.toFacultyResponse(&faculty)
	return &resp, nil
}

// GetFaculty 按 ID 查询教员
func (s *facultyService) GetFaculty(ctx context.Context, id string) (*dto.FacultyResponse, error) {
	faculty, err := s.repo.Faculty.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		s.logger.Error("查询教员失败", zap.String("faculty_id", id), zap.Error(err))
		return nil, err
	}
	resp := s.toFacultyResponse(faculty)
	return &resp, nil
}

// ListFaculty 列出教员
func (s *facultyService) ListFaculty(ctx context.Context, includeExcluded bool) ([]dto.FacultyResponse, error) {
	faculty, err := s.repo.Faculty.List(ctx, includeExcluded)
	if err != nil {
		s.logger.Error("查询教员列表失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.FacultyResponse, 0, len(faculty))
	for i := range faculty {
		resp = append(resp, s.toFacultyResponse(&faculty[i]))
	}
	return resp, nil
}

// ListAssignments 按条件列出教员任务
func (s *facultyService) ListAssignments(ctx context.Context, filter repository.AssignmentFilter) ([]dto.AssignmentResponse, error) {
	assignments, err := s.repo.Assignment.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询任务列表失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		resp = append(resp, toAssignmentResponse(&assignments[i]))
	}
	return resp, nil
}

// toFacultyResponse 渲染教员响应
func (s *facultyService) toFacultyResponse(f *model.Faculty) dto.FacultyResponse {
	return dto.FacultyResponse{
		ID:           f.FacultyID,
		NetID:        f.NetID,
		FullName:     f.FullName(),
		FirstName:    f.FirstName,
		LastName:     f.LastName,
		Email:        f.ContactEmail(s.emailDomain),
		Occupation:   f.Occupation,
		Organization: f.Organization,
		Exclude:      f.Exclude,
	}
}

// toAssignmentResponse 渲染任务响应
func toAssignmentResponse(a *model.Assignment) dto.AssignmentResponse {
	resp := dto.AssignmentResponse{
		ID:        a.AssignmentID,
		Role:      a.Role,
		RoleName:  model.RoleDisplay[a.Role],
		StartDate: formatDate(a.StartDate),
		EndDate:   formatDate(a.EndDate),
		Hours:     a.Hours,
		Effort:    a.Effort,
		IsPrimary: a.IsPrimary,
		Display:   a.Display(),
	}
	if a.Faculty != nil {
		resp.Faculty = a.Faculty.FullName()
	}
	if a.Cohort != nil {
		resp.Cohort = a.Cohort.Cohort
	}
	if a.Course != nil {
		code := a.Course.Code()
		resp.Course = &code
	}
	return resp
}
