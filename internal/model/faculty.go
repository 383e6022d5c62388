package model

import (
	"fmt"
	"strings"
)

// Faculty 教员表 — 对应 faculty
type Faculty struct {
	FacultyID    string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"faculty_id"`
	NetID        *string  `gorm:"column:netid;type:varchar(24);index" json:"netid,omitempty"`
	Prefix       *string  `gorm:"type:varchar(4)"    json:"prefix,omitempty"` // Dr. / Mr. / Ms. 等
	FirstName    *string  `gorm:"type:varchar(255)"  json:"first_name,omitempty"`
	LastName     *string  `gorm:"type:varchar(255)"  json:"last_name,omitempty"`
	Suffix       *string  `gorm:"type:varchar(4)"    json:"suffix,omitempty"` // PhD / Jr. 等
	Email        *string  `gorm:"type:varchar(255)"  json:"email,omitempty"`
	Occupation   *string  `gorm:"type:varchar(255)"  json:"occupation,omitempty"`
	Organization *string  `gorm:"type:varchar(255)"  json:"organization,omitempty"`
	Bio          *string  `gorm:"type:varchar(1000)" json:"bio,omitempty"`
	GitHub       *string  `gorm:"column:github;type:varchar(100)"  json:"github,omitempty"`
	Twitter      *string  `gorm:"type:varchar(100)"  json:"twitter,omitempty"`
	LinkedIn     *string  `gorm:"column:linkedin;type:varchar(255)" json:"linkedin,omitempty"`
	HourlyRate   *float64 `gorm:"type:numeric(10,2)" json:"hourly_rate,omitempty"`
	Exclude      bool     `gorm:"not null;default:false" json:"exclude"`
	BaseModel
}

// TableName 指定表名
func (Faculty) TableName() string { return "faculty" }

// FullName 展示用全名，含前后缀
func (f *Faculty) FullName() string {
	parts := make([]string, 0, 2)
	if f.FirstName != nil && *f.FirstName != "" {
		parts = append(parts, *f.FirstName)
	}
	if f.LastName != nil && *f.LastName != "" {
		parts = append(parts, *f.LastName)
	}
	fn := strings.Join(parts, " ")

	if f.Prefix != nil && *f.Prefix != "" {
		fn = *f.Prefix + " " + fn
	}
	if f.Suffix != nil && *f.Suffix != "" {
		fn += ", " + *f.Suffix
	}
	return fn
}

// ContactEmail 按优先级确定联系邮箱：email 字段 > netid@域名
// 两者均缺失时返回空串
func (f *Faculty) ContactEmail(domain string) string {
	if f.Email != nil && *f.Email != "" {
		return *f.Email
	}
	if f.NetID != nil && *f.NetID != "" {
		return fmt.Sprintf("%s@%s", *f.NetID, domain)
	}
	return ""
}
