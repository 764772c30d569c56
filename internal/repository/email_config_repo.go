package repository

import (
	"context"

	"commission-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmailConfigRepository interface {
	FindActiveByType(ctx context.Context, recipientType string) (*model.EmailConfig, error)
	List(ctx context.Context) ([]model.EmailConfig, error)
	Upsert(ctx context.Context, cfg *model.EmailConfig) error
}

type emailConfigRepository struct {
	db *gorm.DB
}

func NewEmailConfigRepository(db *gorm.DB) EmailConfigRepository {
	return &emailConfigRepository{db: db}
}

func (r *emailConfigRepository) FindActiveByType(ctx context.Context, recipientType string) (*model.EmailConfig, error) {
	var cfg model.EmailConfig
	if err := GetDB(ctx, r.db).
		Where("recipient_type = ? AND active = ?", recipientType, true).
		First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *emailConfigRepository) List(ctx context.Context) ([]model.EmailConfig, error) {
	var configs []model.EmailConfig
	if err := GetDB(ctx, r.db).Order("recipient_type").Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

func (r *emailConfigRepository) Upsert(ctx context.Context, cfg *model.EmailConfig) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "recipient_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"emails", "active", "updated_by", "updated_at"}),
	}).Create(cfg).Error
}
