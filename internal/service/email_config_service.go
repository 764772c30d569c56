package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"commission-backend/internal/model"
	"commission-backend/internal/repository"

	"gorm.io/datatypes"
)

var (
	ErrRecipientTypeInvalid = errors.New("recipient type must be direction or finance")
	ErrEmailListEmpty       = errors.New("at least one e-mail address is required")
	ErrEmailInvalid         = errors.New("invalid e-mail address")
)

// EmailConfigService manages the per-role notification recipient lists.
type EmailConfigService interface {
	List(ctx context.Context) ([]model.EmailConfig, error)
	// SetRecipients replaces the address list for a role. The list must
	// be non-empty and every entry must look like an address.
	SetRecipients(ctx context.Context, recipientType string, emails []string, updatedBy string) (*model.EmailConfig, error)
}

type emailConfigService struct {
	configs repository.EmailConfigRepository
}

func NewEmailConfigService(configs repository.EmailConfigRepository) EmailConfigService {
	return &emailConfigService{configs: configs}
}

func (s *emailConfigService) List(ctx context.Context) ([]model.EmailConfig, error) {
	return s.configs.List(ctx)
}

func (s *emailConfigService) SetRecipients(ctx context.Context, recipientType string, emails []string, updatedBy string) (*model.EmailConfig, error) {
	switch recipientType {
	case model.RecipientDirection, model.RecipientFinance:
	default:
		return nil, ErrRecipientTypeInvalid
	}

	cleaned := make([]string, 0, len(emails))
	for _, e := range emails {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.Contains(e, "@") || strings.ContainsAny(e, " \t") {
			return nil, fmt.Errorf("%w: %s", ErrEmailInvalid, e)
		}
		cleaned = append(cleaned, e)
	}
	if len(cleaned) == 0 {
		return nil, ErrEmailListEmpty
	}

	raw, err := json.Marshal(cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to encode e-mail list: %w", err)
	}

	cfg := model.EmailConfig{
		RecipientType: recipientType,
		Emails:        datatypes.JSON(raw),
		Active:        true,
		UpdatedBy:     parseActor(updatedBy),
	}
	if err := s.configs.Upsert(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to save e-mail config: %w", err)
	}
	return &cfg, nil
}
