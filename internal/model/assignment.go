package model

import (
	"fmt"
	"time"
)

// Assignment 教员任务表 — 对应 assignments
// 通过角色（如毕业设计指导）或课程（任课）把教员和一个梯队关联起来；
// 多名教员合上一门课时会有多条任课记录
type Assignment struct {
	AssignmentID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	FacultyID    string     `gorm:"type:uuid;not null"          json:"faculty_id"`
	CohortID     string     `gorm:"type:uuid;not null"          json:"cohort_id"`
	CoursePK     *string    `gorm:"column:course_pk;type:uuid"  json:"course_id,omitempty"`
	Role         string     `gorm:"type:varchar(2);not null;default:'IN'" json:"role"`
	StartDate    *time.Time `gorm:"column:start_date;type:date" json:"start_date,omitempty"`
	EndDate      *time.Time `gorm:"column:end_date;type:date"   json:"end_date,omitempty"`
	Hours        *int       `gorm:"type:smallint"               json:"hours,omitempty"`
	Effort       *int       `gorm:"type:smallint"               json:"effort,omitempty"` // 责任占比 1-100
	IsPrimary    bool       `gorm:"column:is_primary;not null;default:true" json:"is_primary"`
	BaseModel

	// 关联
	Faculty *Faculty `gorm:"foreignKey:FacultyID;references:FacultyID" json:"faculty,omitempty"`
	Cohort  *Cohort  `gorm:"foreignKey:CohortID;references:CohortID"   json:"cohort,omitempty"`
	Course  *Course  `gorm:"foreignKey:CoursePK;references:CoursePK"   json:"course,omitempty"`
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }

// IsInstructor 任何角色都可能参与教学，但只有挂了课程的任务才算任课任务
func (a *Assignment) IsInstructor() bool {
	return a.CoursePK != nil
}

// Display 展示用任务描述
func (a *Assignment) Display() string {
	var s string
	switch {
	case a.IsInstructor() && a.Faculty != nil && a.Course != nil:
		s = fmt.Sprintf("%s teaching %s", a.Faculty.FullName(), a.Course.Code())
	case a.Faculty != nil && a.Cohort != nil:
		s = fmt.Sprintf("%s Cohort %d %s", a.Faculty.FullName(), a.Cohort.Cohort, RoleDisplay[a.Role])
	default:
		s = RoleDisplay[a.Role]
	}

	if a.Effort != nil && *a.Effort != 100 {
		s += fmt.Sprintf(" (%d%%)", *a.Effort)
	}
	return s
}

// ApplyDefaults 按课程/梯队补全空缺字段：
// 梯队默认取课程梯队，起止日期默认取课程（其次梯队）起止，学时默认取课程学时
func (a *Assignment) ApplyDefaults(course *Course, cohort *Cohort) {
	if a.CohortID == "" && course != nil {
		a.CohortID = course.CohortID
	}

	if a.StartDate == nil {
		if course != nil && course.StartDate != nil {
			a.StartDate = course.StartDate
		} else if cohort != nil && cohort.StartDate != nil {
			a.StartDate = cohort.StartDate
		}
	}

	if a.EndDate == nil {
		if course != nil && course.EndDate != nil {
			a.EndDate = course.EndDate
		} else if cohort != nil && cohort.EndDate != nil {
			a.EndDate = cohort.EndDate
		}
	}

	if a.Hours == nil && course != nil {
		hours := course.Hours
		a.Hours = &hours
	}
}
