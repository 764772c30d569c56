package repository

import (
	"context"

	"commission-backend/internal/model"

	"gorm.io/gorm"
)

// HistoryRepository appends and lists commission status transitions.
type HistoryRepository interface {
	Log(ctx context.Context, entry *model.ApprovalHistory) error
	ListByCommission(ctx context.Context, commissionID int64) ([]model.ApprovalHistory, error)
	List(ctx context.Context, page, limit int) ([]model.ApprovalHistory, int64, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Log(ctx context.Context, entry *model.ApprovalHistory) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *historyRepository) ListByCommission(ctx context.Context, commissionID int64) ([]model.ApprovalHistory, error) {
	var entries []model.ApprovalHistory
	if err := GetDB(ctx, r.db).Preload("Performer").
		Where("commission_id = ?", commissionID).
		Order("created_at desc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *historyRepository) List(ctx context.Context, page, limit int) ([]model.ApprovalHistory, int64, error) {
	var entries []model.ApprovalHistory
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.ApprovalHistory{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Performer").Order("created_at desc").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
