package repository

import (
	"context"

	"commission-backend/internal/model"

	"gorm.io/gorm"
)

type TriggerRuleRepository interface {
	Create(ctx context.Context, rule *model.TriggerRule) error
	Update(ctx context.Context, rule *model.TriggerRule) error
	FindByID(ctx context.Context, id int64) (*model.TriggerRule, error)
	ListActive(ctx context.Context) ([]model.TriggerRule, error)
	Deactivate(ctx context.Context, id int64) error
}

type triggerRuleRepository struct {
	db *gorm.DB
}

func NewTriggerRuleRepository(db *gorm.DB) TriggerRuleRepository {
	return &triggerRuleRepository{db: db}
}

func (r *triggerRuleRepository) Create(ctx context.Context, rule *model.TriggerRule) error {
	return GetDB(ctx, r.db).Create(rule).Error
}

func (r *triggerRuleRepository) Update(ctx context.Context, rule *model.TriggerRule) error {
	return GetDB(ctx, r.db).Save(rule).Error
}

func (r *triggerRuleRepository) FindByID(ctx context.Context, id int64) (*model.TriggerRule, error) {
	var rule model.TriggerRule
	if err := GetDB(ctx, r.db).First(&rule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *triggerRuleRepository) ListActive(ctx context.Context) ([]model.TriggerRule, error) {
	var rules []model.TriggerRule
	if err := GetDB(ctx, r.db).Where("active = ?", true).Order("name").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// Deactivate soft-deletes a rule so historical commissions keep
// resolving against it by name.
func (r *triggerRuleRepository) Deactivate(ctx context.Context, id int64) error {
	return GetDB(ctx, r.db).Model(&model.TriggerRule{}).Where("id = ?", id).
		Update("active", false).Error
}
