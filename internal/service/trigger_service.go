package service

import (
	"context"
	"fmt"

	"commission-backend/internal/model"
	"commission-backend/internal/repository"
	"commission-backend/internal/trigger"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ContractTriggerInfo is the read-model the dashboard shows for one
// contract: the financial figures next to the computed trigger state.
type ContractTriggerInfo struct {
	ContractNumber   string          `json:"contract_number"`
	BuildingID       string          `json:"building_id"`
	BuildingName     string          `json:"building_name"`
	CustomerName     string          `json:"customer_name"`
	UnitName         string          `json:"unit_name"`
	Status           string          `json:"status"`
	CashValue        decimal.Decimal `json:"cash_value"`
	TransferTaxValue decimal.Decimal `json:"transfer_tax_value"`
	AmountPaid       decimal.Decimal `json:"amount_paid"`
	TriggerRule      string          `json:"trigger_rule"`
	TriggerValue     decimal.Decimal `json:"trigger_value"`
	TriggerReached   bool            `json:"trigger_reached"`
	PercentPaid      decimal.Decimal `json:"percent_paid"`
}

// TriggerService recomputes trigger thresholds from the mirrored
// contract figures and answers per-contract trigger queries.
type TriggerService interface {
	// RefreshCommission recomputes trigger_value, amount_paid and
	// trigger_reached for one commission from its contract and persists
	// the result. A commission without a matching contract keeps a zero
	// threshold and an unset flag.
	RefreshCommission(ctx context.Context, commissionID int64) (*model.Commission, error)
	// RefreshAll recomputes every commission and returns the count of
	// records whose trigger flag flipped.
	RefreshAll(ctx context.Context) (int, error)
	ContractInfo(ctx context.Context, contractNumber, buildingID string) (*ContractTriggerInfo, error)
}

type triggerService struct {
	commissions repository.CommissionRepository
	contracts   repository.ContractRepository
	log         *logrus.Logger
}

func NewTriggerService(commissions repository.CommissionRepository, contracts repository.ContractRepository, log *logrus.Logger) TriggerService {
	return &triggerService{commissions: commissions, contracts: contracts, log: log}
}

func (s *triggerService) RefreshCommission(ctx context.Context, commissionID int64) (*model.Commission, error) {
	c, err := s.commissions.FindByID(ctx, commissionID)
	if err != nil {
		return nil, fmt.Errorf("commission not found: %w", err)
	}

	threshold, paid, reached := s.compute(ctx, c)
	err = s.commissions.UpdateFields(ctx, c.ID, map[string]interface{}{
		"trigger_value":   threshold,
		"amount_paid":     paid,
		"trigger_reached": reached,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update trigger state: %w", err)
	}

	c.TriggerValue = threshold
	c.AmountPaid = paid
	c.TriggerReached = reached
	return c, nil
}

func (s *triggerService) RefreshAll(ctx context.Context) (int, error) {
	commissions, err := s.commissions.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list commissions: %w", err)
	}

	flipped := 0
	for i := range commissions {
		c := &commissions[i]
		threshold, paid, reached := s.compute(ctx, c)
		err := s.commissions.UpdateFields(ctx, c.ID, map[string]interface{}{
			"trigger_value":   threshold,
			"amount_paid":     paid,
			"trigger_reached": reached,
		})
		if err != nil {
			s.log.WithError(err).WithField("commission_id", c.ID).Warn("trigger refresh skipped")
			continue
		}
		if reached != c.TriggerReached {
			flipped++
		}
	}
	return flipped, nil
}

// compute derives (threshold, amountPaid, reached) for a commission
// from its mirrored contract. Missing contract means zero figures, and
// a zero threshold is never considered reached.
func (s *triggerService) compute(ctx context.Context, c *model.Commission) (decimal.Decimal, decimal.Decimal, bool) {
	contract, err := s.contracts.FindByKey(ctx, c.ContractNumber, c.BuildingID)
	if err != nil {
		return decimal.Zero, decimal.Zero, false
	}
	threshold := trigger.Threshold(contract.CashValue, contract.TransferTaxValue, c.TriggerRule)
	return threshold, contract.AmountPaid, trigger.Reached(contract.AmountPaid, threshold)
}

func (s *triggerService) ContractInfo(ctx context.Context, contractNumber, buildingID string) (*ContractTriggerInfo, error) {
	contract, err := s.contracts.FindByKey(ctx, contractNumber, buildingID)
	if err != nil {
		return nil, fmt.Errorf("contract not found: %w", err)
	}

	// The rule text lives on the commission; a contract without a
	// commission yet falls back to the default rule.
	ruleText := trigger.DefaultRule
	if c, err := s.commissions.FindByContract(ctx, contractNumber, buildingID); err == nil && c.TriggerRule != "" {
		ruleText = c.TriggerRule
	}

	threshold := trigger.Threshold(contract.CashValue, contract.TransferTaxValue, ruleText)
	percent := decimal.Zero
	if threshold.IsPositive() {
		percent = contract.AmountPaid.Div(threshold).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &ContractTriggerInfo{
		ContractNumber:   contract.ContractNumber,
		BuildingID:       contract.BuildingID,
		BuildingName:     model.BuildingName(contract.BuildingID),
		CustomerName:     contract.CustomerName,
		UnitName:         contract.UnitName,
		Status:           contract.Status,
		CashValue:        contract.CashValue,
		TransferTaxValue: contract.TransferTaxValue,
		AmountPaid:       contract.AmountPaid,
		TriggerRule:      ruleText,
		TriggerValue:     threshold,
		TriggerReached:   trigger.Reached(contract.AmountPaid, threshold),
		PercentPaid:      percent,
	}, nil
}
