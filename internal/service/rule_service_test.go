package service

import (
	"context"
	"errors"
	"testing"

	"commission-backend/internal/model"

	"github.com/shopspring/decimal"
)

type fakeRuleRepo struct {
	rules  map[int64]*model.TriggerRule
	nextID int64
}

func newFakeRuleRepo() *fakeRuleRepo {
	return &fakeRuleRepo{rules: make(map[int64]*model.TriggerRule)}
}

func (f *fakeRuleRepo) Create(ctx context.Context, rule *model.TriggerRule) error {
	f.nextID++
	rule.ID = f.nextID
	f.rules[rule.ID] = rule
	return nil
}

func (f *fakeRuleRepo) Update(ctx context.Context, rule *model.TriggerRule) error {
	f.rules[rule.ID] = rule
	return nil
}

func (f *fakeRuleRepo) FindByID(ctx context.Context, id int64) (*model.TriggerRule, error) {
	r, ok := f.rules[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRuleRepo) ListActive(ctx context.Context) ([]model.TriggerRule, error) {
	var out []model.TriggerRule
	for _, r := range f.rules {
		if r.Active {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRuleRepo) Deactivate(ctx context.Context, id int64) error {
	if r, ok := f.rules[id]; ok {
		r.Active = false
	}
	return nil
}

func TestCreateRuleValidation(t *testing.T) {
	svc := NewRuleService(newFakeRuleRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateRuleRequest{Percentage: decimal.NewFromInt(10)}); !errors.Is(err, ErrRuleNameRequired) {
		t.Errorf("missing name: got %v, want ErrRuleNameRequired", err)
	}
	if _, err := svc.Create(ctx, CreateRuleRequest{Name: "x", Percentage: decimal.Zero}); !errors.Is(err, ErrRulePercentInvalid) {
		t.Errorf("zero percentage: got %v, want ErrRulePercentInvalid", err)
	}
	if _, err := svc.Create(ctx, CreateRuleRequest{Name: "x", Percentage: decimal.NewFromInt(5), RuleKind: "WEIRD"}); !errors.Is(err, ErrRuleKindInvalid) {
		t.Errorf("bad kind: got %v, want ErrRuleKindInvalid", err)
	}
	if _, err := svc.Create(ctx, CreateRuleRequest{Name: "x", Percentage: decimal.NewFromInt(5), RuleKind: model.RuleKindRevenue}); !errors.Is(err, ErrRuleMinRevenue) {
		t.Errorf("revenue rule without minimum: got %v, want ErrRuleMinRevenue", err)
	}

	rule, err := svc.Create(ctx, CreateRuleRequest{Name: "10% + ITBI", Percentage: decimal.NewFromInt(10), IncludeTransferTax: true})
	if err != nil {
		t.Fatalf("valid create: %v", err)
	}
	if rule.RuleKind != model.RuleKindThreshold {
		t.Errorf("kind = %s, want default THRESHOLD", rule.RuleKind)
	}
	if !rule.Active {
		t.Error("new rule should be active")
	}
}

func TestDeactivateRuleKeepsRow(t *testing.T) {
	repo := newFakeRuleRepo()
	svc := NewRuleService(repo)
	ctx := context.Background()

	rule, err := svc.Create(ctx, CreateRuleRequest{Name: "5%", Percentage: decimal.NewFromInt(5)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Deactivate(ctx, rule.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	stored, err := repo.FindByID(ctx, rule.ID)
	if err != nil {
		t.Fatal("deactivated rule must remain readable by id")
	}
	if stored.Active {
		t.Error("rule still active after deactivation")
	}
}
