package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/georgetown-analytics/webfolio/internal/model"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	// List 返回全部课程，可选按开课日期窗口过滤（after <= start < before）
	List(ctx context.Context, after, before *time.Time) ([]model.Course, error)
	ListByCohort(ctx context.Context, cohortID string) ([]model.Course, error)
	// ListUpcomingByFaculty 返回某教员任课的、尚未开课的课程
	ListUpcomingByFaculty(ctx context.Context, facultyID string, today time.Time) ([]model.Course, error)
	// Instructors 返回课程的任课教员（角色 IN 的任务）
	Instructors(ctx context.Context, coursePK string) ([]model.Faculty, error)
	// GetOrCreate 按自然键（梯队、课程编号、班次、标题、学时、起止日期）查找或创建
	GetOrCreate(ctx context.Context, course *model.Course) (bool, error)
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Preload("Cohort").
		Where("course_pk = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) List(ctx context.Context, after, before *time.Time) ([]model.Course, error) {
	q := r.db.WithContext(ctx).Preload("Cohort")
	if after != nil {
		q = q.Where("start_date >= ?", after.Format("2006-01-02"))
	}
	if before != nil {
		q = q.Where("start_date < ?", before.Format("2006-01-02"))
	}

	var courses []model.Course
	err := q.
		Joins("JOIN cohorts ON cohorts.cohort_id = courses.cohort_id").
		Order("cohorts.cohort DESC, courses.start_date").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ListByCohort(ctx context.Context, cohortID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Preload("Cohort").
		Where("cohort_id = ?", cohortID).
		Order("start_date").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ListUpcomingByFaculty(ctx context.Context, facultyID string, today time.Time) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Preload("Cohort").
		Joins("JOIN assignments ON assignments.course_pk = courses.course_pk").
		Where("assignments.faculty_id = ? AND courses.start_date > ?", facultyID, today.Format("2006-01-02")).
		Order("courses.start_date").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) Instructors(ctx context.Context, coursePK string) ([]model.Faculty, error) {
	var faculty []model.Faculty
	err := r.db.WithContext(ctx).
		Joins("JOIN assignments ON assignments.faculty_id = faculty.faculty_id").
		Where("assignments.course_pk = ? AND assignments.role = ?", coursePK, model.RoleInstructor).
		Order("faculty.last_name, faculty.first_name").
		Find(&faculty).Error
	return faculty, err
}

func (r *courseRepo) GetOrCreate(ctx context.Context, course *model.Course) (bool, error) {
	q := r.db.WithContext(ctx).
		Where("cohort_id = ? AND course_id = ? AND section = ? AND title = ? AND hours = ?",
			course.CohortID, course.CourseID, course.Section, course.Title, course.Hours)
	q = whereNullableDate(q, "start_date", course.StartDate)
	q = whereNullableDate(q, "end_date", course.EndDate)

	var existing model.Course
	err := q.First(&existing).Error
	if err == nil {
		*course = existing
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return false, err
	}
	return true, nil
}
