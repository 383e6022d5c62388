package dto

// ── 日程模块 DTO ──

// CreateHolidayRequest 创建教学假日请求
type CreateHolidayRequest struct {
	Date      string `json:"date"  binding:"required"` // "2024-11-28"
	Title     string `json:"title" binding:"required,max=255"`
	NoConvert bool   `json:"no_convert"` // 不平移到最近的周六
}

// GenerateEventsRequest 批量生成课程日程请求
type GenerateEventsRequest struct {
	Delete bool    `json:"delete"` // 生成前先删除全部日程
	After  *string `json:"after"`  // 仅处理开课日期 >= after 的课程
	Before *string `json:"before"` // 仅处理开课日期 < before 的课程
}

// EventResponse 日程信息响应
type EventResponse struct {
	ID          string   `json:"id"`
	Summary     string   `json:"summary"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	IsHoliday   bool     `json:"is_holiday"`
	Course      *string  `json:"course,omitempty"`
	Attendees   []string `json:"attendees,omitempty"`
}

// GenerateReport 批量生成结果：各课程错误按消息计数，单课失败不中断批次
type GenerateReport struct {
	Events  int            `json:"events"`
	Courses int            `json:"courses"`
	Deleted int64          `json:"deleted,omitempty"`
	Errors  map[string]int `json:"errors,omitempty"`
}

// SyncReport 外部日历推送结果
type SyncReport struct {
	Faculty string   `json:"faculty"`
	Courses int      `json:"courses"`
	Events  int      `json:"events"`
	Skipped []string `json:"skipped,omitempty"` // 未生成日程而跳过的课程
}

// ImportReport 花名册导入结果：按实体类型统计新建/命中，并附行级错误消息
type ImportReport struct {
	Created map[string]int `json:"created"`
	Fetched map[string]int `json:"fetched"`
	Errors  []string       `json:"errors,omitempty"`
}

// TotalCreated 新建记录总数
func (r *ImportReport) TotalCreated() int {
	n := 0
	for _, v := range r.Created {
		n += v
	}
	return n
}

// TotalFetched 命中已有记录总数
func (r *ImportReport) TotalFetched() int {
	n := 0
	for _, v := range r.Fetched {
		n += v
	}
	return n
}
