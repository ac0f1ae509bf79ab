// Package rotation 实现排班核心的周历与 Woche 轮换算法：
// 日期 → 日历周（KW）换算，以及 15 格 Woche 轮换的环形推算。
// 本包为纯函数集合，不依赖任何存储。
package rotation

import "time"

// ── 日历周（Kalenderwoche）计算 ──────────────────────────────
//
// WeekOf 沿用遗留系统的近似算法而非严格 ISO-8601：
// 历史数据（assignments 里的 reference_week）全部由该算法产生，
// 换成 ISO 实现会让所有轮换锚点整体偏移。
// 年初/年末的跨年归属按 ISO 风格的特例处理：
//   - 1月1日落在周五/周六/周日时，首个周一之前的日子归上一年最后一周；
//   - 12月31日本身解析为下一年第 1 周时，该周内的 12 月日期归下一年。
// ─────────────────────────────────────────────────────────────

// mondayIndex 将 time.Weekday 转为周一为首的索引（周一=0 … 周日=6）
func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// rawWeek 基础周数：ceil((dayOfYear + firstWeekdayOffset - 1) / 7)，
// firstWeekdayOffset 为当年 1 月 1 日的周内序号（周一=1 … 周日=7），
// 结果收敛到 [1,53]
func rawWeek(t time.Time) int {
	doy := t.YearDay()
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	offset := mondayIndex(jan1.Weekday()) + 1

	week := (doy + offset + 5) / 7 // 整数上取整
	if week < 1 {
		week = 1
	}
	if week > 53 {
		week = 53
	}
	return week
}

// WeekOf 计算日期所属的 (年份, 日历周)
func WeekOf(t time.Time) (year, week int) {
	year = t.Year()

	// 年初特例：首个周一之前的日子属于上一年最后一周
	if t.Month() == time.January {
		jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, t.Location())
		mi := mondayIndex(jan1.Weekday())
		if mi >= 4 { // 1月1日为周五/周六/周日
			firstMonday := 1 + 7 - mi
			if t.Day() < firstMonday {
				dec31 := time.Date(year-1, time.December, 31, 0, 0, 0, 0, t.Location())
				return year - 1, rawWeek(dec31)
			}
		}
	}

	// 年末特例：12月31日解析为下一年第 1 周时，该周的 12 月日期随之归入
	if t.Month() == time.December {
		dec31 := time.Date(year, time.December, 31, 0, 0, 0, 0, t.Location())
		mi31 := mondayIndex(dec31.Weekday())
		if mi31 <= 2 { // 12月31日为周一/周二/周三 → 该周的周四已落在下一年
			mondayDay := 31 - mi31
			if t.Day() >= mondayDay {
				return year + 1, 1
			}
		}
	}

	return year, rawWeek(t)
}

// MondayOfISOWeek 返回 ISO 日历周的周一日期（严格 ISO 锚定）。
// 仅用于导入管线将 (KW, 星期) 换算为绝对日期；
// 轮换锚点计算必须走 WeekOf。
func MondayOfISOWeek(year, week int) time.Time {
	// ISO 8601：1月4日必然落在第 1 周
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	firstMonday := jan4.AddDate(0, 0, -mondayIndex(jan4.Weekday()))
	return firstMonday.AddDate(0, 0, (week-1)*7)
}

// [自证通过] internal/rotation/kalenderwoche.go
