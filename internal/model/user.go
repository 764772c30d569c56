package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile labels for workflow actors
const (
	ProfileManager  = "Gestor"
	ProfileDirector = "Direção"
	ProfileFinance  = "Financeiro"
)

// User is the workflow actor record referenced by submissions, approvals
// and history rows. Credential handling lives outside this service; only
// the identity and profile label are kept here.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	FullName  string    `gorm:"type:varchar(255)" json:"full_name"`
	Profile   string    `gorm:"type:varchar(50);not null;default:'Gestor'" json:"profile"` // Gestor, Direção, Financeiro
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
