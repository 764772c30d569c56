package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Recipient role tags. These categorize notification targets, not
// authentication roles.
const (
	RecipientDirection = "direction"
	RecipientFinance   = "finance"
)

// EmailConfig stores the recipient list for a notification role. Emails
// is a JSON array of addresses. When no active row exists (or the read
// fails) the mailer falls back to hardcoded defaults.
type EmailConfig struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipientType string         `gorm:"type:varchar(20);not null;uniqueIndex" json:"recipient_type"`
	Emails        datatypes.JSON `gorm:"type:jsonb" json:"emails"`
	Active        bool           `gorm:"not null;default:true" json:"active"`
	UpdatedBy     *uuid.UUID     `gorm:"type:uuid" json:"updated_by"`
	UpdatedAt     time.Time      `json:"updated_at"`
	CreatedAt     time.Time      `json:"created_at"`
}
