package database

import (
	"commission-backend/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string, log *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.User{},
		&model.Contract{},
		&model.Commission{},
		&model.TriggerRule{},
		&model.ApprovalLot{},
		&model.CommissionLot{},
		&model.ApprovalHistory{},
		&model.EmailConfig{},
	)
	if err != nil {
		log.WithError(err).Warn("failed to auto-migrate models")
	}

	return db, nil
}
