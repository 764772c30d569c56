package service

import (
	"context"
	"errors"
	"fmt"

	"commission-backend/internal/model"
	"commission-backend/internal/repository"

	"github.com/shopspring/decimal"
)

var (
	ErrRuleNameRequired   = errors.New("rule name is required")
	ErrRulePercentInvalid = errors.New("percentage must be greater than zero")
	ErrRuleKindInvalid    = errors.New("rule kind must be THRESHOLD or REVENUE")
	ErrRuleMinRevenue     = errors.New("revenue rules require a minimum revenue")
)

type CreateRuleRequest struct {
	Name               string           `json:"name" binding:"required"`
	Description        string           `json:"description"`
	Percentage         decimal.Decimal  `json:"percentage" binding:"required"`
	IncludeTransferTax bool             `json:"include_transfer_tax"`
	RuleKind           string           `json:"rule_kind"`
	MinRevenue         *decimal.Decimal `json:"min_revenue"`
	AuditBonusPercent  *decimal.Decimal `json:"audit_bonus_percent"`
}

type UpdateRuleRequest struct {
	Name               *string          `json:"name"`
	Description        *string          `json:"description"`
	Percentage         *decimal.Decimal `json:"percentage"`
	IncludeTransferTax *bool            `json:"include_transfer_tax"`
	MinRevenue         *decimal.Decimal `json:"min_revenue"`
	AuditBonusPercent  *decimal.Decimal `json:"audit_bonus_percent"`
}

// RuleService manages the configurable trigger rule catalogue.
type RuleService interface {
	Create(ctx context.Context, req CreateRuleRequest) (*model.TriggerRule, error)
	Update(ctx context.Context, id int64, req UpdateRuleRequest) (*model.TriggerRule, error)
	GetByID(ctx context.Context, id int64) (*model.TriggerRule, error)
	ListActive(ctx context.Context) ([]model.TriggerRule, error)
	Deactivate(ctx context.Context, id int64) error
}

type ruleService struct {
	rules repository.TriggerRuleRepository
}

func NewRuleService(rules repository.TriggerRuleRepository) RuleService {
	return &ruleService{rules: rules}
}

func (s *ruleService) Create(ctx context.Context, req CreateRuleRequest) (*model.TriggerRule, error) {
	if req.Name == "" {
		return nil, ErrRuleNameRequired
	}
	if !req.Percentage.IsPositive() {
		return nil, ErrRulePercentInvalid
	}

	kind := req.RuleKind
	if kind == "" {
		kind = model.RuleKindThreshold
	}
	switch kind {
	case model.RuleKindThreshold, model.RuleKindRevenue:
	default:
		return nil, ErrRuleKindInvalid
	}
	if kind == model.RuleKindRevenue && (req.MinRevenue == nil || !req.MinRevenue.IsPositive()) {
		return nil, ErrRuleMinRevenue
	}

	rule := model.TriggerRule{
		Name:               req.Name,
		Description:        req.Description,
		Percentage:         req.Percentage,
		IncludeTransferTax: req.IncludeTransferTax,
		RuleKind:           kind,
		MinRevenue:         req.MinRevenue,
		AuditBonusPercent:  req.AuditBonusPercent,
		Active:             true,
	}
	if err := s.rules.Create(ctx, &rule); err != nil {
		return nil, fmt.Errorf("failed to create trigger rule: %w", err)
	}
	return &rule, nil
}

func (s *ruleService) Update(ctx context.Context, id int64, req UpdateRuleRequest) (*model.TriggerRule, error) {
	rule, err := s.rules.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("trigger rule not found: %w", err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrRuleNameRequired
		}
		rule.Name = *req.Name
	}
	if req.Description != nil {
		rule.Description = *req.Description
	}
	if req.Percentage != nil {
		if !req.Percentage.IsPositive() {
			return nil, ErrRulePercentInvalid
		}
		rule.Percentage = *req.Percentage
	}
	if req.IncludeTransferTax != nil {
		rule.IncludeTransferTax = *req.IncludeTransferTax
	}
	if req.MinRevenue != nil {
		rule.MinRevenue = req.MinRevenue
	}
	if req.AuditBonusPercent != nil {
		rule.AuditBonusPercent = req.AuditBonusPercent
	}
	if rule.RuleKind == model.RuleKindRevenue && (rule.MinRevenue == nil || !rule.MinRevenue.IsPositive()) {
		return nil, ErrRuleMinRevenue
	}

	if err := s.rules.Update(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to update trigger rule: %w", err)
	}
	return rule, nil
}

func (s *ruleService) GetByID(ctx context.Context, id int64) (*model.TriggerRule, error) {
	rule, err := s.rules.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("trigger rule not found: %w", err)
	}
	return rule, nil
}

func (s *ruleService) ListActive(ctx context.Context) ([]model.TriggerRule, error) {
	return s.rules.ListActive(ctx)
}

func (s *ruleService) Deactivate(ctx context.Context, id int64) error {
	if _, err := s.rules.FindByID(ctx, id); err != nil {
		return fmt.Errorf("trigger rule not found: %w", err)
	}
	return s.rules.Deactivate(ctx, id)
}
