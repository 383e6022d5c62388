package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/georgetown-analytics/webfolio/internal/model"
)

// CohortRepository 梯队数据访问接口
type CohortRepository interface {
	Create(ctx context.Context, cohort *model.Cohort) error
	GetByID(ctx context.Context, id string) (*model.Cohort, error)
	GetByNumber(ctx context.Context, number int) (*model.Cohort, error)
	List(ctx context.Context) ([]model.Cohort, error)
	// GetOrCreate 按自然键（梯队号、学期、起止日期）查找，不存在则创建；
	// 返回值指示是否新建
	GetOrCreate(ctx context.Context, cohort *model.Cohort) (bool, error)
}

type cohortRepo struct {
	db *gorm.DB
}

// NewCohortRepo 创建 CohortRepository 实例
func NewCohortRepo(db *gorm.DB) CohortRepository {
	return &cohortRepo{db: db}
}

func (r *cohortRepo) Create(ctx context.Context, cohort *model.Cohort) error {
	return r.db.WithContext(ctx).Create(cohort).Error
}

func (r *cohortRepo) GetByID(ctx context.Context, id string) (*model.Cohort, error) {
	var cohort model.Cohort
	err := r.db.WithContext(ctx).
		Where("cohort_id = ?", id).
		First(&cohort).Error
	if err != nil {
		return nil, err
	}
	return &cohort, nil
}

func (r *cohortRepo) GetByNumber(ctx context.Context, number int) (*model.Cohort, error) {
	var cohort model.Cohort
	err := r.db.WithContext(ctx).
		Where("cohort = ?", number).
		First(&cohort).Error
	if err != nil {
		return nil, err
	}
	return &cohort, nil
}

func (r *cohortRepo) List(ctx context.Context) ([]model.Cohort, error) {
	var cohorts []model.Cohort
	err := r.db.WithContext(ctx).
		Order("cohort DESC").
		Find(&cohorts).Error
	return cohorts, err
}

func (r *cohortRepo) GetOrCreate(ctx context.Context, cohort *model.Cohort) (bool, error) {
	q := r.db.WithContext(ctx).Where("cohort = ? AND semester = ?", cohort.Cohort, cohort.Semester)
	q = whereNullableDate(q, "start_date", cohort.StartDate)
	q = whereNullableDate(q, "end_date", cohort.EndDate)

	var existing model.Cohort
	err := q.First(&existing).Error
	if err == nil {
		*cohort = existing
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if err := r.db.WithContext(ctx).Create(cohort).Error; err != nil {
		return false, err
	}
	return true, nil
}
