package dto

// ── 梯队模块 DTO ──

// CreateCohortRequest 创建梯队请求
type CreateCohortRequest struct {
	Cohort    int     `json:"cohort"     binding:"required,min=1"`
	Semester  string  `json:"semester"   binding:"required,oneof=SP SU FA"`
	Section   *string `json:"section"    binding:"omitempty,oneof=A B C"`
	StartDate *string `json:"start_date"` // "2020-01-11"
	EndDate   *string `json:"end_date"`
}

// CohortResponse 梯队信息响应
type CohortResponse struct {
	ID           string  `json:"id"`
	Cohort       int     `json:"cohort"`
	Semester     string  `json:"semester"`
	SemesterName string  `json:"semester_name"`
	Section      *string `json:"section,omitempty"`
	StartDate    *string `json:"start_date,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// CapstoneResponse 毕业设计响应
type CapstoneResponse struct {
	ID     string `json:"id"`
	Cohort int    `json:"cohort"`
	Title  string `json:"title"`
}
