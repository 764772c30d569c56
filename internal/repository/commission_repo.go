package repository

import (
	"context"

	"commission-backend/internal/model"

	"gorm.io/gorm"
)

// CommissionRepository is the store surface the workflow engine and
// trigger service need: key-based reads, equality-filtered updates and
// the one hard delete the duplicate purge performs.
type CommissionRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Commission, error)
	FindByContract(ctx context.Context, contractNumber, buildingID string) (*model.Commission, error)
	List(ctx context.Context, approvalStatus string, triggerReached *bool) ([]model.Commission, error)
	ListAll(ctx context.Context) ([]model.Commission, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	DistinctInstallmentStatuses(ctx context.Context) ([]string, error)
}

type commissionRepository struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) FindByID(ctx context.Context, id int64) (*model.Commission, error) {
	var c model.Commission
	if err := GetDB(ctx, r.db).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commissionRepository) FindByContract(ctx context.Context, contractNumber, buildingID string) (*model.Commission, error) {
	var c model.Commission
	if err := GetDB(ctx, r.db).
		Where("contract_number = ? AND building_id = ?", contractNumber, buildingID).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commissionRepository) List(ctx context.Context, approvalStatus string, triggerReached *bool) ([]model.Commission, error) {
	var commissions []model.Commission
	query := GetDB(ctx, r.db).Model(&model.Commission{})
	if approvalStatus != "" {
		query = query.Where("approval_status = ?", approvalStatus)
	}
	if triggerReached != nil {
		query = query.Where("trigger_reached = ?", *triggerReached)
	}
	if err := query.Find(&commissions).Error; err != nil {
		return nil, err
	}
	return commissions, nil
}

func (r *commissionRepository) ListAll(ctx context.Context) ([]model.Commission, error) {
	var commissions []model.Commission
	if err := GetDB(ctx, r.db).Order("id").Find(&commissions).Error; err != nil {
		return nil, err
	}
	return commissions, nil
}

func (r *commissionRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return GetDB(ctx, r.db).Model(&model.Commission{}).Where("id = ?", id).Updates(fields).Error
}

func (r *commissionRepository) Delete(ctx context.Context, id int64) error {
	return GetDB(ctx, r.db).Delete(&model.Commission{}, "id = ?", id).Error
}

func (r *commissionRepository) DistinctInstallmentStatuses(ctx context.Context) ([]string, error) {
	var statuses []string
	if err := GetDB(ctx, r.db).Model(&model.Commission{}).
		Distinct("installment_status").
		Where("installment_status <> ''").
		Order("installment_status").
		Pluck("installment_status", &statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}
