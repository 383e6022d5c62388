package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/georgetown-analytics/webfolio/internal/dto"
	"github.com/georgetown-analytics/webfolio/internal/repository"
	"github.com/georgetown-analytics/webfolio/internal/service"
	"github.com/georgetown-analytics/webfolio/pkg/response"
)

// FacultyHandler 教员模块 HTTP 处理器
type FacultyHandler struct {
	facultySvc service.FacultyService
}

// NewFacultyHandler 创建 FacultyHandler
func NewFacultyHandler(facultySvc service.FacultyService) *FacultyHandler {
	return &FacultyHandler{facultySvc: facultySvc}
}

// ListFaculty 获取教员列表，默认不含已排除的教员
// GET /api/v1/faculty?include_excluded=true
func (h *FacultyHandler) ListFaculty(c *gin.Context) {
	includeExcluded := c.Query("include_excluded") == "true"

	faculty, err := h.facultySvc.ListFaculty(c.Request.Context(), includeExcluded)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": faculty})
}

// GetFaculty 获取教员详情
// GET /api/v1/faculty/:id
func (h *FacultyHandler) GetFaculty(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "教员ID不能为空")
		return
	}

	faculty, err := h.facultySvc.GetFaculty(c.Request.Context(), id)
	if err != nil {
		h.handleFacultyError(c, err)
		return
	}

	response.OK(c, faculty)
}

// CreateFaculty 创建教员
// POST /api/v1/faculty
func (h *FacultyHandler) CreateFaculty(c *gin.Context) {
	var req dto.CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	faculty, err := h.facultySvc.CreateFaculty(c.Request.Context(), &req)
	if err != nil {
		h.handleFacultyError(c, err)
		return
	}

	response.Created(c, faculty)
}

// ListAssignments 获取任务列表，可按梯队、教员、角色过滤
// GET /api/v1/assignments?cohort_id=xxx&faculty_id=xxx&role=IN
func (h *FacultyHandler) ListAssignments(c *gin.Context) {
	filter := repository.AssignmentFilter{
		CohortID:  c.Query("cohort_id"),
		FacultyID: c.Query("faculty_id"),
		Role:      c.Query("role"),
	}

	assignments, err := h.facultySvc.ListAssignments(c.Request.Context(), filter)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": assignments})
}

// handleFacultyError 教员模块业务错误 → HTTP 响应
func (h *FacultyHandler) handleFacultyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFacultyNotFound):
		response.NotFound(c, 13001, "教员不存在")
	default:
		response.InternalError(c)
	}
}
