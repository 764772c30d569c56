package repository

import (
	"context"

	"commission-backend/internal/model"

	"gorm.io/gorm"
)

// ContractRepository reads contract financial mirrors. The sync
// collaborator writes them; this service never does.
type ContractRepository interface {
	FindByKey(ctx context.Context, contractNumber, buildingID string) (*model.Contract, error)
	ListByBuilding(ctx context.Context, buildingID string) ([]model.Contract, error)
}

type contractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) FindByKey(ctx context.Context, contractNumber, buildingID string) (*model.Contract, error) {
	var contract model.Contract
	if err := GetDB(ctx, r.db).
		Where("contract_number = ? AND building_id = ?", contractNumber, buildingID).
		First(&contract).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) ListByBuilding(ctx context.Context, buildingID string) ([]model.Contract, error) {
	var contracts []model.Contract
	if err := GetDB(ctx, r.db).
		Where("building_id = ?", buildingID).
		Order("contract_number").
		Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}
