package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/georgetown-analytics/webfolio/internal/dto"
	"github.com/georgetown-analytics/webfolio/internal/service"
	"github.com/georgetown-analytics/webfolio/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc    service.CourseService
	schedulerSvc service.SchedulerService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService, schedulerSvc service.SchedulerService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc, schedulerSvc: schedulerSvc}
}

// ListCourses 获取课程列表，可按开课日期窗口过滤
// GET /api/v1/courses?after=2024-01-01&before=2024-06-01
func (h *CourseHandler) ListCourses(c *gin.Context) {
	var after, before *string
	if v := c.Query("after"); v != "" {
		after = &v
	}
	if v := c.Query("before"); v != "" {
		before = &v
	}

	courses, err := h.courseSvc.ListCourses(c.Request.Context(), after, before)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, gin.H{"list": courses})
}

// GetCourse 获取课程详情
// GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	course, err := h.courseSvc.GetCourse(c.Request.Context(), id)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// CreateCourse 创建课程
// POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	course, err := h.courseSvc.CreateCourse(c.Request.Context(), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.Created(c, course)
}

// ListCourseEvents 获取课程的日程列表
// GET /api/v1/courses/:id/events
func (h *CourseHandler) ListCourseEvents(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	events, err := h.courseSvc.ListCourseEvents(c.Request.Context(), id)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, gin.H{"list": events})
}

// GenerateCourseEvents 为课程生成日程
// POST /api/v1/courses/:id/events
func (h *CourseHandler) GenerateCourseEvents(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	events, err := h.schedulerSvc.GenerateEvents(c.Request.Context(), id)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.Created(c, gin.H{"list": events})
}

// handleCourseError 课程模块业务错误 → HTTP 响应
func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 12001, "课程不存在")
	case errors.Is(err, service.ErrCohortNotFound):
		response.NotFound(c, 11001, "梯队不存在")
	case errors.Is(err, service.ErrMissingDate):
		response.BadRequest(c, 12002, "课程缺少开课或结课日期，无法排课")
	case errors.Is(err, service.ErrAlreadyScheduled):
		response.Conflict(c, 12003, "课程日程已生成，须先删除才能重新生成")
	case errors.Is(err, service.ErrUnsupportedHours):
		response.BadRequest(c, 12004, "不支持的课程学时，无法排课")
	case errors.Is(err, service.ErrInvalidDayOfWeek):
		response.BadRequest(c, 12005, "课程日期不落在要求的星期，无法排课")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10002, "日期格式错误，应为 YYYY-MM-DD")
	default:
		response.InternalError(c)
	}
}
