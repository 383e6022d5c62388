package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/georgetown-analytics/webfolio/internal/dto"
	"github.com/georgetown-analytics/webfolio/internal/service"
	"github.com/georgetown-analytics/webfolio/pkg/response"
)

// CohortHandler 梯队模块 HTTP 处理器
type CohortHandler struct {
	cohortSvc service.CohortService
}

// NewCohortHandler 创建 CohortHandler
func NewCohortHandler(cohortSvc service.CohortService) *CohortHandler {
	return &CohortHandler{cohortSvc: cohortSvc}
}

// ListCohorts 获取梯队列表
// GET /api/v1/cohorts
func (h *CohortHandler) ListCohorts(c *gin.Context) {
	cohorts, err := h.cohortSvc.ListCohorts(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": cohorts})
}

// GetCohort 获取梯队详情
// GET /api/v1/cohorts/:id
func (h *CohortHandler) GetCohort(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "梯队ID不能为空")
		return
	}

	cohort, err := h.cohortSvc.GetCohort(c.Request.Context(), id)
	if err != nil {
		h.handleCohortError(c, err)
		return
	}

	response.OK(c, cohort)
}

// CreateCohort 创建梯队
// POST /api/v1/cohorts
func (h *CohortHandler) CreateCohort(c *gin.Context) {
	var req dto.CreateCohortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	cohort, err := h.cohortSvc.CreateCohort(c.Request.Context(), &req)
	if err != nil {
		h.handleCohortError(c, err)
		return
	}

	response.Created(c, cohort)
}

// ListCohortCourses 获取梯队的课程列表
// GET /api/v1/cohorts/:id/courses
func (h *CohortHandler) ListCohortCourses(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "梯队ID不能为空")
		return
	}

	courses, err := h.cohortSvc.ListCohortCourses(c.Request.Context(), id)
	if err != nil {
		h.handleCohortError(c, err)
		return
	}

	response.OK(c, gin.H{"list": courses})
}

// ListCapstones 获取毕业设计列表
// GET /api/v1/capstones?cohort_id=xxx
func (h *CohortHandler) ListCapstones(c *gin.Context) {
	capstones, err := h.cohortSvc.ListCapstones(c.Request.Context(), c.Query("cohort_id"))
	if err != nil {
		h.handleCohortError(c, err)
		return
	}

	response.OK(c, gin.H{"list": capstones})
}

// handleCohortError 梯队模块业务错误 → HTTP 响应
func (h *CohortHandler) handleCohortError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCohortNotFound):
		response.NotFound(c, 11001, "梯队不存在")
	case errors.Is(err, service.ErrCohortExists):
		response.Conflict(c, 11002, "梯队编号已存在")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10002, "日期格式错误，应为 YYYY-MM-DD")
	default:
		response.InternalError(c)
	}
}
