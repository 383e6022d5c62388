package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/georgetown-analytics/webfolio/internal/service"
	"github.com/georgetown-analytics/webfolio/pkg/response"
)

// ImportHandler 花名册导入与课表导出 HTTP 处理器
type ImportHandler struct {
	importerSvc service.ImporterService
	exportSvc   service.ExportService
}

// NewImportHandler 创建 ImportHandler
func NewImportHandler(importerSvc service.ImporterService, exportSvc service.ExportService) *ImportHandler {
	return &ImportHandler{importerSvc: importerSvc, exportSvc: exportSvc}
}

// ImportAssignments 导入花名册 CSV
// POST /api/v1/import/assignments  (multipart, file 字段)
func (h *ImportHandler) ImportAssignments(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 15001, "缺少上传文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 15001, "打开上传文件失败")
		return
	}
	defer file.Close()

	report, err := h.importerSvc.ImportCSV(c.Request.Context(), file)
	if err != nil {
		h.handleImportError(c, err)
		return
	}

	response.OK(c, report)
}

// ExportSchedule 导出梯队课表
// GET /api/v1/export/schedule?cohort=23
func (h *ImportHandler) ExportSchedule(c *gin.Context) {
	cohort, err := strconv.Atoi(c.Query("cohort"))
	if err != nil {
		response.BadRequest(c, 10001, "cohort 参数应为梯队编号")
		return
	}

	workbook, filename, err := h.exportSvc.ExportCohortSchedule(c.Request.Context(), cohort)
	if err != nil {
		h.handleImportError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		// 响应头已发出，只能断开
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

// handleImportError 导入导出业务错误 → HTTP 响应
func (h *ImportHandler) handleImportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingColumn):
		response.BadRequest(c, 15002, "花名册缺少必需列")
	case errors.Is(err, service.ErrCohortNotFound):
		response.NotFound(c, 11001, "梯队不存在")
	case errors.Is(err, service.ErrNothingToExport):
		response.NotFound(c, 15003, "梯队没有课程，无内容可导出")
	default:
		response.InternalError(c)
	}
}
