package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lot status constants
const (
	LotSubmitted = "SUBMITTED"
)

// ApprovalLot groups commissions submitted together for approval. It is
// bookkeeping only: the workflow must keep working when the insert fails
// (the engine falls back to a timestamp-derived lot id), so nothing else
// in the system treats a lot row as authoritative.
type ApprovalLot struct {
	ID               int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	SubmittedBy      *uuid.UUID      `gorm:"type:uuid" json:"submitted_by"`
	Submitter        *User           `gorm:"foreignKey:SubmittedBy" json:"submitter,omitempty"`
	TotalCommissions int             `gorm:"not null;default:0" json:"total_commissions"`
	TotalValue       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_value"`
	Status           string          `gorm:"type:varchar(20);not null;default:'SUBMITTED'" json:"status"`
	EmailSent        bool            `gorm:"not null;default:false" json:"email_sent"`
	CreatedAt        time.Time       `json:"created_at"`
}

// CommissionLot links a commission to the lot it was submitted under.
// Best-effort, like the lot itself.
type CommissionLot struct {
	ID           int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CommissionID int64 `gorm:"not null;index" json:"commission_id"`
	LotID        int64 `gorm:"not null;index" json:"lot_id"`
}
