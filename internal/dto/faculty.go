package dto

// ── 教员模块 DTO ──

// CreateFacultyRequest 创建教员请求
type CreateFacultyRequest struct {
	NetID        *string  `json:"netid"        binding:"omitempty,max=24"`
	Prefix       *string  `json:"prefix"       binding:"omitempty,max=4"`
	FirstName    string   `json:"first_name"   binding:"required,max=255"`
	LastName     string   `json:"last_name"    binding:"required,max=255"`
	Suffix       *string  `json:"suffix"       binding:"omitempty,max=4"`
	Email        *string  `json:"email"        binding:"omitempty,email"`
	Occupation   *string  `json:"occupation"   binding:"omitempty,max=255"`
	Organization *string  `json:"organization" binding:"omitempty,max=255"`
	Bio          *string  `json:"bio"          binding:"omitempty,max=1000"`
	GitHub       *string  `json:"github"       binding:"omitempty,max=100"`
	Twitter      *string  `json:"twitter"      binding:"omitempty,max=100"`
	LinkedIn     *string  `json:"linkedin"     binding:"omitempty,url"`
	HourlyRate   *float64 `json:"hourly_rate"  binding:"omitempty,min=0"`
}

// FacultyResponse 教员信息响应
type FacultyResponse struct {
	ID           string  `json:"id"`
	NetID        *string `json:"netid,omitempty"`
	FullName     string  `json:"full_name"`
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Email        string  `json:"email,omitempty"`
	Occupation   *string `json:"occupation,omitempty"`
	Organization *string `json:"organization,omitempty"`
	Exclude      bool    `json:"exclude"`
}

// AssignmentResponse 教员任务响应
type AssignmentResponse struct {
	ID        string  `json:"id"`
	Faculty   string  `json:"faculty"`
	Cohort    int     `json:"cohort"`
	Course    *string `json:"course,omitempty"`
	Role      string  `json:"role"`
	RoleName  string  `json:"role_name"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Hours     *int    `json:"hours,omitempty"`
	Effort    *int    `json:"effort,omitempty"`
	IsPrimary bool    `json:"is_primary"`
	Display   string  `json:"display"`
}
