package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/georgetown-analytics/webfolio/internal/dto"
	"github.com/georgetown-analytics/webfolio/internal/service"
	"github.com/georgetown-analytics/webfolio/pkg/response"
)

// CalendarHandler 日程模块 HTTP 处理器
type CalendarHandler struct {
	holidaySvc   service.HolidayService
	schedulerSvc service.SchedulerService
	feedSvc      service.FeedService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(holidaySvc service.HolidayService, schedulerSvc service.SchedulerService, feedSvc service.FeedService) *CalendarHandler {
	return &CalendarHandler{holidaySvc: holidaySvc, schedulerSvc: schedulerSvc, feedSvc: feedSvc}
}

// ListEvents 获取日程列表
// GET /api/v1/events?holidays=true
func (h *CalendarHandler) ListEvents(c *gin.Context) {
	holidaysOnly := c.Query("holidays") == "true"

	events, err := h.feedSvc.ListEvents(c.Request.Context(), holidaysOnly)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": events})
}

// GetEventGoogle 获取单条日程的 Google Calendar API 形状
// GET /api/v1/events/:id/google
func (h *CalendarHandler) GetEventGoogle(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "日程ID不能为空")
		return
	}

	event, err := h.feedSvc.EventGoogle(c.Request.Context(), id)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	// 直接输出 API 形状，不套统一响应壳
	c.JSON(http.StatusOK, event)
}

// CreateHoliday 录入教学假日
// POST /api/v1/events/holiday
func (h *CalendarHandler) CreateHoliday(c *gin.Context) {
	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	event, err := h.holidaySvc.CreateHoliday(c.Request.Context(), &req)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.Created(c, event)
}

// GenerateEvents 批量生成课程日程
// POST /api/v1/events/generate
func (h *CalendarHandler) GenerateEvents(c *gin.Context) {
	var req dto.GenerateEventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	report, err := h.schedulerSvc.GenerateAll(c.Request.Context(), &req)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, report)
}

// Feed 日历订阅流
// GET /calendar.ics
func (h *CalendarHandler) Feed(c *gin.Context) {
	feed, err := h.feedSvc.BuildFeed(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="webfolio.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

// handleCalendarError 日程模块业务错误 → HTTP 响应
func (h *CalendarHandler) handleCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 14001, "日程不存在")
	case errors.Is(err, service.ErrHolidayExists):
		response.Conflict(c, 14002, "该日期已有教学假日")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10002, "日期格式错误，应为 YYYY-MM-DD")
	default:
		response.InternalError(c)
	}
}
