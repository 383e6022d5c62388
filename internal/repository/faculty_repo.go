package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/georgetown-analytics/webfolio/internal/model"
)

// FacultyRepository 教员数据访问接口
type FacultyRepository interface {
	Create(ctx context.Context, faculty *model.Faculty) error
	GetByID(ctx context.Context, id string) (*model.Faculty, error)
	GetByNetID(ctx context.Context, netid string) (*model.Faculty, error)
	List(ctx context.Context, includeExcluded bool) ([]model.Faculty, error)
	// GetOrCreateByName 按姓名查找教员，不存在则创建；花名册导入的匹配键
	GetOrCreateByName(ctx context.Context, firstName, lastName string) (*model.Faculty, bool, error)
}

type facultyRepo struct {
	db *gorm.DB
}

// NewFacultyRepo 创建 FacultyRepository 实例
func NewFacultyRepo(db *gorm.DB) FacultyRepository {
	return &facultyRepo{db: db}
}

func (r *facultyRepo) Create(ctx context.Context, faculty *model.Faculty) error {
	return r.db.WithContext(ctx).Create(faculty).Error
}

func (r *facultyRepo) GetByID(ctx context.Context, id string) (*model.Faculty, error) {
	var faculty model.Faculty
	err := r.db.WithContext(ctx).
		Where("faculty_id = ?", id).
		First(&faculty).Error
	if err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (r *facultyRepo) GetByNetID(ctx context.Context, netid string) (*model.Faculty, error) {
	var faculty model.Faculty
	err := r.db.WithContext(ctx).
		Where("netid = ?", netid).
		First(&faculty).Error
	if err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (r *facultyRepo) List(ctx context.Context, includeExcluded bool) ([]model.Faculty, error) {
	q := r.db.WithContext(ctx)
	if !includeExcluded {
		q = q.Where("exclude = ?", false)
	}

	var faculty []model.Faculty
	err := q.
		Order("last_name, first_name").
		Find(&faculty).Error
	return faculty, err
}

func (r *facultyRepo) GetOrCreateByName(ctx context.Context, firstName, lastName string) (*model.Faculty, bool, error) {
	var existing model.Faculty
	err := r.db.WithContext(ctx).
		Where("first_name = ? AND last_name = ?", firstName, lastName).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	faculty := &model.Faculty{FirstName: &firstName, LastName: &lastName}
	if err := r.db.WithContext(ctx).Create(faculty).Error; err != nil {
		return nil, false, err
	}
	return faculty, true, nil
}
