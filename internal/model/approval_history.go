package model

import (
	"time"

	"github.com/google/uuid"
)

// Approval workflow action labels
const (
	ActionSubmitForApproval = "SUBMITTED_FOR_APPROVAL"
	ActionApprove           = "APPROVED_BY_DIRECTION"
	ActionReject            = "REJECTED_BY_DIRECTION"
	ActionMarkPaid          = "MARKED_PAID"
	ActionPurgeDuplicate    = "PURGED_DUPLICATE"
)

// ApprovalHistory is the append-only audit trail of commission status
// transitions: Who moved What from which status to which, and When.
// Writes are best-effort — a failed history insert never blocks the
// transition it records.
type ApprovalHistory struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	CommissionID   int64      `gorm:"not null;index" json:"commission_id"`
	PreviousStatus string     `gorm:"type:varchar(20)" json:"previous_status"`
	NewStatus      string     `gorm:"type:varchar(20);not null" json:"new_status"`
	Action         string     `gorm:"type:varchar(50);not null;index" json:"action"`
	PerformedBy    *uuid.UUID `gorm:"type:uuid;index" json:"performed_by"`
	Performer      *User      `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
	Notes          string     `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`
}
