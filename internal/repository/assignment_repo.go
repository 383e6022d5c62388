package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/georgetown-analytics/webfolio/internal/model"
)

// AssignmentFilter 任务列表过滤条件
type AssignmentFilter struct {
	CohortID  string
	FacultyID string
	Role      string
}

// AssignmentRepository 教员任务数据访问接口
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	List(ctx context.Context, filter AssignmentFilter) ([]model.Assignment, error)
	// GetOrCreate 按自然键（教员、梯队、课程、角色）查找或创建
	GetOrCreate(ctx context.Context, assignment *model.Assignment) (bool, error)
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepo) List(ctx context.Context, filter AssignmentFilter) ([]model.Assignment, error) {
	q := r.db.WithContext(ctx).
		Preload("Faculty").
		Preload("Cohort").
		Preload("Course")

	if filter.CohortID != "" {
		q = q.Where("cohort_id = ?", filter.CohortID)
	}
	if filter.FacultyID != "" {
		q = q.Where("faculty_id = ?", filter.FacultyID)
	}
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}

	var assignments []model.Assignment
	err := q.
		Order("start_date DESC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) GetOrCreate(ctx context.Context, assignment *model.Assignment) (bool, error) {
	q := r.db.WithContext(ctx).
		Where("faculty_id = ? AND cohort_id = ? AND role = ?",
			assignment.FacultyID, assignment.CohortID, assignment.Role)
	q = whereNullableString(q, "course_pk", assignment.CoursePK)

	var existing model.Assignment
	err := q.First(&existing).Error
	if err == nil {
		*assignment = existing
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		return false, err
	}
	return true, nil
}
