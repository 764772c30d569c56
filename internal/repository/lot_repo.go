package repository

import (
	"context"

	"commission-backend/internal/model"

	"gorm.io/gorm"
)

// LotRepository persists approval lots and their commission links. All
// callers treat these writes as best-effort bookkeeping.
type LotRepository interface {
	Create(ctx context.Context, lot *model.ApprovalLot) error
	Link(ctx context.Context, commissionID, lotID int64) error
	SetEmailSent(ctx context.Context, lotID int64, sent bool) error
	FindByID(ctx context.Context, id int64) (*model.ApprovalLot, error)
}

type lotRepository struct {
	db *gorm.DB
}

func NewLotRepository(db *gorm.DB) LotRepository {
	return &lotRepository{db: db}
}

func (r *lotRepository) Create(ctx context.Context, lot *model.ApprovalLot) error {
	return GetDB(ctx, r.db).Create(lot).Error
}

func (r *lotRepository) Link(ctx context.Context, commissionID, lotID int64) error {
	return GetDB(ctx, r.db).Create(&model.CommissionLot{CommissionID: commissionID, LotID: lotID}).Error
}

func (r *lotRepository) SetEmailSent(ctx context.Context, lotID int64, sent bool) error {
	return GetDB(ctx, r.db).Model(&model.ApprovalLot{}).Where("id = ?", lotID).
		Update("email_sent", sent).Error
}

func (r *lotRepository) FindByID(ctx context.Context, id int64) (*model.ApprovalLot, error) {
	var lot model.ApprovalLot
	if err := GetDB(ctx, r.db).First(&lot, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &lot, nil
}
