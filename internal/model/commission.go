package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApprovalStatus enum constants
const (
	ApprovalPending         = "PENDING"
	ApprovalPendingApproval = "PENDING_APPROVAL"
	ApprovalApproved        = "APPROVED"
	ApprovalRejected        = "REJECTED"
	ApprovalPaid            = "PAID"
)

// Commission mirrors one ERP commission line. The external sync job owns
// the ERP-sourced columns (value, installment status, dates); the
// approval workflow only writes the approval-status block. Uniqueness is
// scoped to (contract_number, unit_name, building_id) — the ERP can and
// does emit duplicates, which MaintenanceService reconciles.
type Commission struct {
	ID             int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ErpID          *int64 `gorm:"index" json:"erp_id"`
	ContractNumber string `gorm:"type:varchar(50);not null;index:idx_commission_key" json:"contract_number"`
	UnitName       string `gorm:"type:varchar(100);index:idx_commission_key" json:"unit_name"`
	BuildingID     string `gorm:"type:varchar(20);not null;index:idx_commission_key" json:"building_id"`

	BrokerName     string `gorm:"type:varchar(255)" json:"broker_name"`
	CustomerName   string `gorm:"type:varchar(255)" json:"customer_name"`
	EnterpriseName string `gorm:"type:varchar(255)" json:"enterprise_name"`

	CommissionValue decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"commission_value"`
	TriggerRule     string          `gorm:"type:varchar(255)" json:"trigger_rule"` // free text, e.g. "10% + ITBI"
	TriggerValue    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"trigger_value"`
	AmountPaid      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"amount_paid"`
	TriggerReached  bool            `gorm:"not null;default:false;index" json:"trigger_reached"`

	// Raw ERP label, case-insensitive and multi-language. See
	// CanonicalInstallmentStatus for the enumerated mapping.
	InstallmentStatus string `gorm:"type:varchar(50)" json:"installment_status"`
	// ERP-sourced date string; may be empty. Listing sorts on it as text.
	CommissionDate string `gorm:"type:varchar(30)" json:"commission_date"`

	ApprovalStatus string     `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"approval_status"`
	SubmittedBy    *uuid.UUID `gorm:"type:uuid" json:"submitted_by"`
	Submitter      *User      `gorm:"foreignKey:SubmittedBy" json:"submitter,omitempty"`
	SubmittedAt    *time.Time `json:"submitted_at"`
	ApprovedBy     *uuid.UUID `gorm:"type:uuid" json:"approved_by"`
	Approver       *User      `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
	ApprovedAt     *time.Time `json:"approved_at"`
	Notes          string     `gorm:"type:text" json:"notes"` // approval notes or rejection reason

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Cancelled reports whether the ERP installment label maps to the
// cancelled canonical status. Cancelled commissions never reach APPROVED
// and are excluded from reporting and bulk operations.
func (c *Commission) Cancelled() bool {
	return CanonicalInstallmentStatus(c.InstallmentStatus) == InstallmentCancelled
}

// DedupKey identifies the uniqueness scope of a commission.
func (c *Commission) DedupKey() string {
	return c.ContractNumber + "|" + c.UnitName + "|" + c.BuildingID
}
