package model

import (
	"fmt"
	"time"
)

// 受支持的课程总学时，决定排课模式
const (
	HoursSingleEvening  = 3  // 单日晚间课
	HoursSingleSaturday = 6  // 单日周六全天课
	HoursTwoSaturdays   = 12 // 两个周六
	HoursFourSessions   = 18 // 两个周五晚 + 两个周六
)

// DefaultCourseHours 学时未知时的数据库默认值，与 hours 列的 default 一致
const DefaultCourseHours = 12

// Course 课程表 — 对应 courses
// 一条记录是某一梯队的一次课程开设；course_id 在标题变化时仍可
// 用来归并同一门课的全部开设记录
type Course struct {
	CoursePK  string     `gorm:"column:course_pk;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CohortID  string     `gorm:"type:uuid;not null"          json:"cohort_id"`
	CourseID  string     `gorm:"type:varchar(55);not null;index" json:"course_id"` // 如 XBUS-500
	Section   int        `gorm:"type:smallint;not null"      json:"section"`
	Title     string     `gorm:"type:varchar(255);not null"  json:"title"`
	Hours     int        `gorm:"type:smallint;not null;default:12" json:"hours"`
	StartDate *time.Time `gorm:"column:start_date;type:date" json:"start_date,omitempty"`
	EndDate   *time.Time `gorm:"column:end_date;type:date"   json:"end_date,omitempty"`
	BaseModel

	// 关联
	Cohort *Cohort         `gorm:"foreignKey:CohortID;references:CohortID"  json:"cohort,omitempty"`
	Events []CalendarEvent `gorm:"foreignKey:CoursePK;references:CoursePK"  json:"events,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// Code 课程编号加班次，如 "XBUS-500-01"
func (c *Course) Code() string {
	return fmt.Sprintf("%s-%02d", c.CourseID, c.Section)
}

// Display 展示用课程描述，写入课程日程的 description 字段
func (c *Course) Display() string {
	s := fmt.Sprintf("%s %s", c.Code(), c.Title)
	if c.Cohort != nil {
		s += fmt.Sprintf(" (Cohort %d)", c.Cohort.Cohort)
	}
	return s
}
