package service

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ── 四种外部导出格式 ──

const (
	FormatYearlyRotation = "yearly_rotation" // 全年轮换数组（A）
	FormatShiftsObject   = "shifts_object"   // shifts 对象（B）
	FormatEntriesObject  = "entries_object"  // entries 对象（C）
	FormatDateKeyed      = "date_keyed"      // 日期直键对象（D）
	FormatUnknown        = "unknown"
)

// CanonicalEntry 规范化后的单日排班
// StartTime/EndTime 统一为 "HH:MM"；字段名变体（start/start_time、end/end_time、ende）
// 在规范化阶段已消除。
type CanonicalEntry struct {
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Day           string `json:"day,omitempty"`           // 星期标签（源数据原样保留，小写化）
	Woche         int    `json:"woche,omitempty"`         // 该日所属轮换组（0 = 未知）
	Kalenderwoche string `json:"kalenderwoche,omitempty"` // 源数据的 "KW##" 标签（仅格式 A）
	Pause         string `json:"pause,omitempty"`
}

// CanonicalSchedule 规范化排班画布 — 所有导入格式的统一内部表示
//
// 单轮换组文件填 Entries（日期 → 条目）；
// 全年轮换数组可能含多个轮换组，按组分开填 Groups（woche → 日期 → 条目），
// 避免不同组的同一日期互相覆盖。两者不会同时为空（校验阶段保证）。
type CanonicalSchedule struct {
	Format      string                            `json:"format"`
	BaseDate    string                            `json:"base_date,omitempty"`
	Woche       *int                              `json:"woche,omitempty"`
	Position    string                            `json:"position,omitempty"`
	Description string                            `json:"description,omitempty"`
	Entries     map[string]CanonicalEntry         `json:"dated_entries,omitempty"`
	Groups      map[int]map[string]CanonicalEntry `json:"woche_groups,omitempty"`
	Notes       []string                          `json:"notes,omitempty"` // 规范化期间的残留数据说明
}

// EntryCount 统计全部规范化条目数（Entries + Groups）
func (c *CanonicalSchedule) EntryCount() int {
	n := len(c.Entries)
	for _, g := range c.Groups {
		n += len(g)
	}
	return n
}

// ── 星期标签与时间解析 ──

// 德语两字母缩写（格式 A 的 den 字段），周一为首
var germanDayIndex = map[string]int{
	"Mo": 0, "Di": 1, "Mi": 2, "Do": 3, "Fr": 4, "Sa": 5, "So": 6,
}

// 星期标签 → time.Weekday（校验阶段比对标签与日期是否一致）
var dayLabelWeekday = map[string]time.Weekday{
	"monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday, "sunday": time.Sunday,
	"montag": time.Monday, "dienstag": time.Tuesday, "mittwoch": time.Wednesday,
	"donnerstag": time.Thursday, "freitag": time.Friday, "samstag": time.Saturday, "sonntag": time.Sunday,
	"mo": time.Monday, "di": time.Tuesday, "mi": time.Wednesday,
	"do": time.Thursday, "fr": time.Friday, "sa": time.Saturday, "so": time.Sunday,
}

var (
	dateKeyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe    = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	kwRe      = regexp.MustCompile(`^KW(\d{1,2})$`)
)

// parseTimeOfDay 解析 "HH:MM" 为当日分钟数
func parseTimeOfDay(s string) (int, bool) {
	m := timeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	if h > 23 || min > 59 {
		return 0, false
	}
	return h*60 + min, true
}

// normalizeTime 补零规范化（"6:00" → "06:00"）；非法时间原样返回
func normalizeTime(s string) string {
	m := timeRe.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	h, _ := strconv.Atoi(m[1])
	return fmt.Sprintf("%02d:%s", h, m[2])
}

// [自证通过] internal/service/canonical.go
