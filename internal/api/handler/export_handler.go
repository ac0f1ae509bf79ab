package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Vaclavbelo94/PendlerAPP-sub005/internal/dto"
	"github.com/Vaclavbelo94/PendlerAPP-sub005/internal/service"
	"github.com/Vaclavbelo94/PendlerAPP-sub005/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// monthPlanRequest 月度计划导出查询参数
type monthPlanRequest struct {
	Year  int `form:"year"  binding:"required,min=2000,max=2100"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// MonthPlan 导出某月全员班次计划为 Excel（仅管理员，路由层已限制）
// GET /api/v1/export/plan?year=2025&month=2
func (h *ExportHandler) MonthPlan(c *gin.Context) {
	var req monthPlanRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	buf, filename, err := h.exportSvc.ExportMonthPlan(c.Request.Context(), req.Year, req.Month)
	if err != nil {
		if errors.Is(err, service.ErrExportNoShifts) {
			response.NotFound(c, 15001, "该月份没有任何班次")
			return
		}
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}

// MyCalendar 导出当前用户日期范围内的班次为 iCalendar
// GET /api/v1/export/my-calendar?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ExportHandler) MyCalendar(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil || to.Before(from) {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	buf, filename, err := h.exportSvc.ExportMyCalendar(c.Request.Context(), userID, from, to)
	if err != nil {
		if errors.Is(err, service.ErrExportNoShifts) {
			response.NotFound(c, 15001, "该范围内没有任何班次")
			return
		}
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentTypeICS, buf.Bytes())
}

// [自证通过] internal/api/handler/export_handler.go
