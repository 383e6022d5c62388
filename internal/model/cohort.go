package model

import (
	"fmt"
	"time"
)

// Cohort 梯队表 — 对应 cohorts
// 一个梯队是同一学期入学、共同完成全部课程与毕业设计的一批学员
type Cohort struct {
	CohortID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"cohort_id"`
	Cohort    int        `gorm:"column:cohort;not null;uniqueIndex"             json:"cohort"`
	Semester  string     `gorm:"type:varchar(2);not null"                       json:"semester"` // SP | SU | FA
	Section   *string    `gorm:"type:varchar(1)"                                json:"section,omitempty"`
	StartDate *time.Time `gorm:"column:start_date;type:date"                    json:"start_date,omitempty"`
	EndDate   *time.Time `gorm:"column:end_date;type:date"                      json:"end_date,omitempty"`
	BaseModel

	// 关联
	Courses []Course `gorm:"foreignKey:CohortID;references:CohortID" json:"courses,omitempty"`
}

// TableName 指定表名
func (Cohort) TableName() string { return "cohorts" }

// SemesterName 展示用学期名，如 "Spring 2020"
func (c *Cohort) SemesterName() string {
	name := SemesterDisplay[c.Semester]
	if c.StartDate == nil {
		return name
	}
	return fmt.Sprintf("%s %d", name, c.StartDate.Year())
}

// Display 展示用梯队名，如 "Cohort 23 (Spring 2020)"
func (c *Cohort) Display() string {
	return fmt.Sprintf("Cohort %d (%s)", c.Cohort, c.SemesterName())
}

// Capstone 毕业设计表 — 对应 capstones
type Capstone struct {
	CapstoneID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"capstone_id"`
	CohortID   string `gorm:"type:uuid;not null"                             json:"cohort_id"`
	Title      string `gorm:"type:varchar(255);not null"                     json:"title"`
	BaseModel

	// 关联
	Cohort *Cohort `gorm:"foreignKey:CohortID;references:CohortID" json:"cohort,omitempty"`
}

func (Capstone) TableName() string { return "capstones" }
