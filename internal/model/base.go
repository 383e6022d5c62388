package model

import (
	"strings"
	"time"
)

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ── 学期枚举 ──

// 学期代码，对应招生季
const (
	SemesterSpring = "SP"
	SemesterSummer = "SU"
	SemesterFall   = "FA"
)

// SemesterDisplay 学期代码 → 展示名称
var SemesterDisplay = map[string]string{
	SemesterSpring: "Spring",
	SemesterSummer: "Summer",
	SemesterFall:   "Fall",
}

// ── 教员角色枚举 ──

// 教员在一个梯队中的角色
const (
	RoleInstructor = "IN" // 任课教员
	RoleTA         = "TA" // 助教
	RoleAdvisor    = "CA" // 毕业设计指导教员
	RoleDirector   = "FD" // 学术主任
	RoleSME        = "SE" // 领域专家
)

// RoleDisplay 角色代码 → 展示名称
var RoleDisplay = map[string]string{
	RoleInstructor: "Instructor",
	RoleTA:         "Teaching Assistant",
	RoleAdvisor:    "Capstone Advisor",
	RoleDirector:   "Faculty Director",
	RoleSME:        "Subject Matter Expert",
}

// advisoryRoles 花名册中非课程行的 Course Title → 角色代码
// 匹配时对标题做小写归一化
var advisoryRoles = map[string]string{
	"teaching assistant": RoleTA,
	"capstone advisor":   RoleAdvisor,
	"faculty advisor":    RoleDirector,
	"faculty director":   RoleDirector,
}

// AdvisoryRole 按 Course Title 查找顾问类角色代码（大小写不敏感）
func AdvisoryRole(title string) (string, bool) {
	role, ok := advisoryRoles[strings.ToLower(strings.TrimSpace(title))]
	return role, ok
}
