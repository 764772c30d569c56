package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RuleKind enum constants
const (
	RuleKindThreshold = "THRESHOLD"
	RuleKindRevenue   = "REVENUE"
)

// TriggerRule is a named commission-release rule. The percentage applies
// to the contract cash value; IncludeTransferTax adds the fixed ITBI
// transfer tax on top. Revenue-kind rules additionally carry a minimum
// revenue and an audit bonus percentage. Rules are soft-deleted via
// Active so historical commissions keep resolving.
type TriggerRule struct {
	ID                 int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name               string           `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Description        string           `gorm:"type:text" json:"description"`
	Percentage         decimal.Decimal  `gorm:"type:decimal(10,4);not null" json:"percentage"` // e.g. 0.10 = 10%
	IncludeTransferTax bool             `gorm:"not null;default:false" json:"include_transfer_tax"`
	RuleKind           string           `gorm:"type:varchar(20);not null;default:'THRESHOLD'" json:"rule_kind"`
	MinRevenue         *decimal.Decimal `gorm:"type:decimal(18,2)" json:"min_revenue"`
	AuditBonusPercent  *decimal.Decimal `gorm:"type:decimal(10,4)" json:"audit_bonus_percent"`
	Active             bool             `gorm:"not null;default:true;index" json:"active"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}
