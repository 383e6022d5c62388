package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/georgetown-analytics/webfolio/internal/model"
)

// CalendarEventRepository 课程日程数据访问接口
type CalendarEventRepository interface {
	Create(ctx context.Context, event *model.CalendarEvent) error
	GetByID(ctx context.Context, id string) (*model.CalendarEvent, error)
	List(ctx context.Context, holidaysOnly bool) ([]model.CalendarEvent, error)
	ListByCourse(ctx context.Context, coursePK string) ([]model.CalendarEvent, error)
	// CountByCourse 统计课程已生成的日程数（不含假日）
	CountByCourse(ctx context.Context, coursePK string) (int64, error)
	// AddAttendees 把教员挂到已持久化的日程上；日程必须已存在
	AddAttendees(ctx context.Context, event *model.CalendarEvent, attendees []model.Faculty) error
	// HolidayExistsOn 查询指定日期（时区本地日）是否已有假日；无唯一约束，靠查询防重
	HolidayExistsOn(ctx context.Context, day time.Time) (bool, error)
	// DeleteAll 删除全部日程，返回删除条数
	DeleteAll(ctx context.Context) (int64, error)
}

type calendarEventRepo struct {
	db *gorm.DB
}

// NewCalendarEventRepo 创建 CalendarEventRepository 实例
func NewCalendarEventRepo(db *gorm.DB) CalendarEventRepository {
	return &calendarEventRepo{db: db}
}

func (r *calendarEventRepo) Create(ctx context.Context, event *model.CalendarEvent) error {
	// 只插入日程本身，参与人由 AddAttendees 另行关联
	return r.db.WithContext(ctx).Omit("Attendees").Create(event).Error
}

func (r *calendarEventRepo) GetByID(ctx context.Context, id string) (*model.CalendarEvent, error) {
	var event model.CalendarEvent
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Course.Cohort").
		Preload("Attendees").
		Where("event_id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *calendarEventRepo) List(ctx context.Context, holidaysOnly bool) ([]model.CalendarEvent, error) {
	q := r.db.WithContext(ctx).Preload("Attendees")
	if holidaysOnly {
		q = q.Where("is_holiday = ?", true)
	}

	var events []model.CalendarEvent
	err := q.
		Order("start_time").
		Find(&events).Error
	return events, err
}

func (r *calendarEventRepo) ListByCourse(ctx context.Context, coursePK string) ([]model.CalendarEvent, error) {
	var events []model.CalendarEvent
	err := r.db.WithContext(ctx).
		Preload("Attendees").
		Where("course_pk = ?", coursePK).
		Order("start_time").
		Find(&events).Error
	return events, err
}

func (r *calendarEventRepo) CountByCourse(ctx context.Context, coursePK string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CalendarEvent{}).
		Where("course_pk = ? AND is_holiday = ?", coursePK, false).
		Count(&count).Error
	return count, err
}

func (r *calendarEventRepo) AddAttendees(ctx context.Context, event *model.CalendarEvent, attendees []model.Faculty) error {
	if len(attendees) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(event).
		Association("Attendees").
		Append(attendees)
}

func (r *calendarEventRepo) HolidayExistsOn(ctx context.Context, day time.Time) (bool, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CalendarEvent{}).
		Where("is_holiday = ? AND start_time >= ? AND start_time < ?", true, dayStart, dayEnd).
		Count(&count).Error
	return count > 0, err
}

func (r *calendarEventRepo) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&model.CalendarEvent{})
	return res.RowsAffected, res.Error
}
