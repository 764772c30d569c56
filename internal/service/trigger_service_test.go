package service

import (
	"context"
	"testing"

	"commission-backend/internal/model"

	"github.com/shopspring/decimal"
)

func testContract(cash, tax, paid string) model.Contract {
	return model.Contract{
		ContractNumber:   "CT-100",
		BuildingID:       "2003",
		CustomerName:     "João Pereira",
		UnitName:         "Apto 101",
		Status:           "Ativo",
		CashValue:        decimal.RequireFromString(cash),
		TransferTaxValue: decimal.RequireFromString(tax),
		AmountPaid:       decimal.RequireFromString(paid),
	}
}

func TestRefreshCommissionComputesThreshold(t *testing.T) {
	c := pendingCommission(1, "5000.00")
	c.TriggerRule = "5%"
	repo := newFakeCommissionRepo(c)
	contracts := newFakeContractRepo(testContract("200000.00", "3000.00", "12000.00"))

	got, err := NewTriggerService(repo, contracts, testLogger()).RefreshCommission(context.Background(), 1)
	if err != nil {
		t.Fatalf("RefreshCommission: %v", err)
	}

	if !got.TriggerValue.Equal(decimal.RequireFromString("10000")) {
		t.Errorf("threshold = %s, want 10000 (5%% of cash, tax excluded)", got.TriggerValue)
	}
	if !got.TriggerReached {
		t.Error("12000 paid against a 10000 threshold should be reached")
	}
	if _, ok := repo.updates[1]; !ok {
		t.Error("expected the computed state to be persisted")
	}
}

func TestRefreshCommissionDefaultRuleIncludesTax(t *testing.T) {
	c := pendingCommission(1, "5000.00")
	c.TriggerRule = "" // falls back to 10% + ITBI
	repo := newFakeCommissionRepo(c)
	contracts := newFakeContractRepo(testContract("100000.00", "5000.00", "14999.99"))

	got, err := NewTriggerService(repo, contracts, testLogger()).RefreshCommission(context.Background(), 1)
	if err != nil {
		t.Fatalf("RefreshCommission: %v", err)
	}

	if !got.TriggerValue.Equal(decimal.RequireFromString("15000")) {
		t.Errorf("threshold = %s, want 15000 (10%% + tax)", got.TriggerValue)
	}
	if got.TriggerReached {
		t.Error("one cent short of the threshold must not be reached")
	}
}

func TestRefreshCommissionMissingContract(t *testing.T) {
	repo := newFakeCommissionRepo(pendingCommission(1, "5000.00"))

	got, err := NewTriggerService(repo, newFakeContractRepo(), testLogger()).RefreshCommission(context.Background(), 1)
	if err != nil {
		t.Fatalf("RefreshCommission: %v", err)
	}
	if !got.TriggerValue.IsZero() || got.TriggerReached {
		t.Errorf("missing contract should yield zero threshold and unset flag, got %s/%v",
			got.TriggerValue, got.TriggerReached)
	}
}

func TestContractInfo(t *testing.T) {
	c := pendingCommission(1, "5000.00")
	c.TriggerRule = "10%"
	repo := newFakeCommissionRepo(c)
	contracts := newFakeContractRepo(testContract("200000.00", "4000.00", "10000.00"))

	info, err := NewTriggerService(repo, contracts, testLogger()).
		ContractInfo(context.Background(), "CT-100", "2003")
	if err != nil {
		t.Fatalf("ContractInfo: %v", err)
	}

	if info.BuildingName != "Montecarlo" {
		t.Errorf("building name = %q, want Montecarlo", info.BuildingName)
	}
	if !info.TriggerValue.Equal(decimal.RequireFromString("20000")) {
		t.Errorf("threshold = %s, want 20000", info.TriggerValue)
	}
	if info.TriggerReached {
		t.Error("half-paid threshold must not be reached")
	}
	if !info.PercentPaid.Equal(decimal.RequireFromString("50")) {
		t.Errorf("percent paid = %s, want 50", info.PercentPaid)
	}
}

func TestContractInfoUnknownBuildingFallback(t *testing.T) {
	contract := testContract("100000.00", "0.00", "0.00")
	contract.BuildingID = "9999"
	contracts := newFakeContractRepo(contract)

	info, err := NewTriggerService(newFakeCommissionRepo(), contracts, testLogger()).
		ContractInfo(context.Background(), "CT-100", "9999")
	if err != nil {
		t.Fatalf("ContractInfo: %v", err)
	}
	if info.BuildingName != "Empreendimento 9999" {
		t.Errorf("building name = %q, want generic fallback", info.BuildingName)
	}
	if info.TriggerRule == "" {
		t.Error("expected the default rule when no commission exists")
	}
}
