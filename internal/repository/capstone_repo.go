package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/georgetown-analytics/webfolio/internal/model"
)

// CapstoneRepository 毕业设计数据访问接口
type CapstoneRepository interface {
	Create(ctx context.Context, capstone *model.Capstone) error
	List(ctx context.Context) ([]model.Capstone, error)
	ListByCohort(ctx context.Context, cohortID string) ([]model.Capstone, error)
}

type capstoneRepo struct {
	db *gorm.DB
}

// NewCapstoneRepo 创建 CapstoneRepository 实例
func NewCapstoneRepo(db *gorm.DB) CapstoneRepository {
	return &capstoneRepo{db: db}
}

func (r *capstoneRepo) Create(ctx context.Context, capstone *model.Capstone) error {
	return r.db.WithContext(ctx).Create(capstone).Error
}

func (r *capstoneRepo) List(ctx context.Context) ([]model.Capstone, error) {
	var capstones []model.Capstone
	err := r.db.WithContext(ctx).
		Preload("Cohort").
		Joins("JOIN cohorts ON cohorts.cohort_id = capstones.cohort_id").
		Order("cohorts.cohort DESC").
		Find(&capstones).Error
	return capstones, err
}

func (r *capstoneRepo) ListByCohort(ctx context.Context, cohortID string) ([]model.Capstone, error) {
	var capstones []model.Capstone
	err := r.db.WithContext(ctx).
		Where("cohort_id = ?", cohortID).
		Order("title").
		Find(&capstones).Error
	return capstones, err
}
