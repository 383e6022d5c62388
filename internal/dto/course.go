package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	CohortID  string  `json:"cohort_id"  binding:"required,uuid"`
	CourseID  string  `json:"course_id"  binding:"required,max=55"` // 如 XBUS-500
	Section   int     `json:"section"    binding:"required,min=1"`
	Title     string  `json:"title"      binding:"required,max=255"`
	Hours     int     `json:"hours"      binding:"required,oneof=3 6 12 18"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID        string  `json:"id"`
	Cohort    int     `json:"cohort"`
	CourseID  string  `json:"course_id"`
	Section   int     `json:"section"`
	Title     string  `json:"title"`
	Hours     int     `json:"hours"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Display   string  `json:"display"`
}
