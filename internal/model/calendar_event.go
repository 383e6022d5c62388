package model

import (
	"strings"
	"time"
)

// CalendarEvent 课程日程表 — 对应 calendar_events
// 一条记录是一次具体的上课安排或一个教学假日；课程日程由课程生成，
// 假日由管理命令或管理界面录入
type CalendarEvent struct {
	EventID     string    `gorm:"column:event_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	Summary     string    `gorm:"type:varchar(255);not null" json:"summary"`
	Location    string    `gorm:"type:varchar(255)"          json:"location,omitempty"`
	Description string    `gorm:"type:varchar(512)"          json:"description,omitempty"`
	StartTime   time.Time `gorm:"column:start_time;not null" json:"start"`
	EndTime     time.Time `gorm:"column:end_time;not null"   json:"end"`
	IsHoliday   bool      `gorm:"not null;default:false"     json:"is_holiday"`
	CoursePK    *string   `gorm:"column:course_pk;type:uuid" json:"course_id,omitempty"`
	BaseModel

	// 关联
	Course    *Course   `gorm:"foreignKey:CoursePK;references:CoursePK" json:"course,omitempty"`
	Attendees []Faculty `gorm:"many2many:event_attendees"               json:"attendees,omitempty"`
}

// TableName 指定表名
func (CalendarEvent) TableName() string { return "calendar_events" }

// GoogleID 外部日历使用的事件标识：uuid 去掉连字符后的 32 位十六进制，
// 满足 Google Calendar 对 event id 字符集（base32hex）与唯一性的要求
func (e *CalendarEvent) GoogleID() string {
	return strings.ReplaceAll(e.EventID, "-", "")
}

// ── Google Calendar API v3 事件结构 ──

// GoogleEventTime 事件起止时间：全天事件用 date，定时事件用 dateTime + 时区
type GoogleEventTime struct {
	Date     string `json:"date,omitempty"`     // "2006-01-02"
	DateTime string `json:"dateTime,omitempty"` // RFC3339
	TimeZone string `json:"timeZone,omitempty"` // IANA 时区名
}

// GoogleAttendee 参与人
type GoogleAttendee struct {
	Email string `json:"email"`
}

// GoogleReminderOverride 提醒配置项
type GoogleReminderOverride struct {
	Method  string `json:"method"`
	Minutes int    `json:"minutes"`
}

// GoogleReminders 事件提醒配置
type GoogleReminders struct {
	UseDefault bool                     `json:"useDefault"`
	Overrides  []GoogleReminderOverride `json:"overrides,omitempty"`
}

// GoogleEvent Google Calendar API v3 的事件请求体
type GoogleEvent struct {
	ID          string           `json:"id"`
	Summary     string           `json:"summary"`
	Location    string           `json:"location,omitempty"`
	Description string           `json:"description,omitempty"`
	Start       GoogleEventTime  `json:"start"`
	End         GoogleEventTime  `json:"end"`
	Attendees   []GoogleAttendee `json:"attendees,omitempty"`
	Reminders   GoogleReminders  `json:"reminders"`
}

// Google 渲染 Google Calendar API 形状的事件记录
// 假日是全天事件（date 键），上课安排是定时事件（dateTime + 时区）
func (e *CalendarEvent) Google(tz *time.Location, emailDomain string) *GoogleEvent {
	ev := &GoogleEvent{
		ID:          e.GoogleID(),
		Summary:     e.Summary,
		Location:    e.Location,
		Description: e.Description,
		Reminders: GoogleReminders{
			UseDefault: false,
			Overrides: []GoogleReminderOverride{
				{Method: "popup", Minutes: 24 * 60}, // 提前一天提醒
			},
		},
	}

	if e.IsHoliday {
		ev.Start = GoogleEventTime{Date: e.StartTime.In(tz).Format("2006-01-02")}
		ev.End = GoogleEventTime{Date: e.EndTime.In(tz).Format("2006-01-02")}
	} else {
		ev.Start = GoogleEventTime{
			DateTime: e.StartTime.In(tz).Format(time.RFC3339),
			TimeZone: tz.String(),
		}
		ev.End = GoogleEventTime{
			DateTime: e.EndTime.In(tz).Format(time.RFC3339),
			TimeZone: tz.String(),
		}
	}

	for i := range e.Attendees {
		if email := e.Attendees[i].ContactEmail(emailDomain); email != "" {
			ev.Attendees = append(ev.Attendees, GoogleAttendee{Email: email})
		}
	}

	return ev
}
