package dto

import "encoding/json"

// ── 排班导入模块请求 ──

// ImportScheduleRequest 导入排班请求
// Data 为外部工时系统导出的原始 JSON（四种格式自动识别）
type ImportScheduleRequest struct {
	FileName string          `json:"file_name" binding:"required,max=255"`
	Name     string          `json:"name"      binding:"omitempty,max=200"` // 排班名称，缺省取文件名
	Data     json.RawMessage `json:"data"      binding:"required"`
}

// ImportRecordListRequest 导入审计记录列表查询参数
type ImportRecordListRequest struct {
	PaginationRequest
}

// ScheduleListRequest 导入排班列表查询参数
type ScheduleListRequest struct {
	PaginationRequest
}

// ── 排班导入模块响应 ──

// DetectionResponse 格式识别结果
type DetectionResponse struct {
	Format         string   `json:"format"`
	Confidence     int      `json:"confidence"` // 0-100
	SuggestedWoche *int     `json:"suggested_woche,omitempty"`
	Evidence       []string `json:"evidence,omitempty"`
}

// ValidationIssueResponse 校验问题（错误或警告）
type ValidationIssueResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Date    string `json:"date,omitempty"`
}

// ValidationSummaryResponse 校验汇总
type ValidationSummaryResponse struct {
	IsValid       bool                      `json:"is_valid"`
	TotalDays     int                       `json:"total_days"`
	TotalShifts   int                       `json:"total_shifts"`
	DetectedWoche int                       `json:"detected_woche,omitempty"`
	DateFrom      string                    `json:"date_from,omitempty"`
	DateTo        string                    `json:"date_to,omitempty"`
	Errors        []ValidationIssueResponse `json:"errors,omitempty"`
	Warnings      []ValidationIssueResponse `json:"warnings,omitempty"`
}

// ImportScheduleResponse 导入成功响应
type ImportScheduleResponse struct {
	ScheduleID     string                    `json:"schedule_id"`
	ImportRecordID string                    `json:"import_record_id"`
	Detection      DetectionResponse         `json:"detection"`
	Summary        ValidationSummaryResponse `json:"summary"`
}

// PreviewImportResponse 导入预检响应（不落库）
type PreviewImportResponse struct {
	Detection DetectionResponse         `json:"detection"`
	Summary   ValidationSummaryResponse `json:"summary"`
}

// ImportRecordResponse 导入审计记录响应
type ImportRecordResponse struct {
	ID             string          `json:"id"`
	SourceFileName string          `json:"source_file_name"`
	DetectedFormat string          `json:"detected_format"`
	Status         string          `json:"status"`
	Summary        json.RawMessage `json:"summary,omitempty"`
	ScheduleID     *string         `json:"schedule_id,omitempty"`
	CreatedAt      string          `json:"created_at"`
}

// ImportedScheduleResponse 导入排班响应
type ImportedScheduleResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Position       string          `json:"position,omitempty"`
	DetectedFormat string          `json:"detected_format"`
	Woche          *int            `json:"woche,omitempty"`
	BaseDate       string          `json:"base_date,omitempty"`
	CanonicalData  json.RawMessage `json:"canonical_data,omitempty"`
	CreatedAt      string          `json:"created_at"`
}

// [自证通过] internal/dto/import.go
