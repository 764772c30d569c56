package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"commission-backend/internal/model"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// --- commission repository fake ---

type fakeCommissionRepo struct {
	records   map[int64]*model.Commission
	updates   map[int64]map[string]interface{}
	failIDs   map[int64]bool
	deleted   []int64
	deleteErr error
}

func newFakeCommissionRepo(commissions ...model.Commission) *fakeCommissionRepo {
	f := &fakeCommissionRepo{
		records: make(map[int64]*model.Commission),
		updates: make(map[int64]map[string]interface{}),
		failIDs: make(map[int64]bool),
	}
	for i := range commissions {
		c := commissions[i]
		f.records[c.ID] = &c
	}
	return f
}

func (f *fakeCommissionRepo) FindByID(ctx context.Context, id int64) (*model.Commission, error) {
	c, ok := f.records[id]
	if !ok {
		return nil, fmt.Errorf("commission %d: not found", id)
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommissionRepo) FindByContract(ctx context.Context, contractNumber, buildingID string) (*model.Commission, error) {
	for _, c := range f.records {
		if c.ContractNumber == contractNumber && c.BuildingID == buildingID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeCommissionRepo) List(ctx context.Context, approvalStatus string, triggerReached *bool) ([]model.Commission, error) {
	var out []model.Commission
	for _, c := range f.records {
		if approvalStatus != "" && c.ApprovalStatus != approvalStatus {
			continue
		}
		if triggerReached != nil && c.TriggerReached != *triggerReached {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCommissionRepo) ListAll(ctx context.Context) ([]model.Commission, error) {
	var out []model.Commission
	for _, c := range f.records {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCommissionRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	if f.failIDs[id] {
		return errors.New("storage unavailable")
	}
	if _, ok := f.records[id]; !ok {
		return fmt.Errorf("commission %d: not found", id)
	}
	f.updates[id] = fields
	if v, ok := fields["approval_status"].(string); ok {
		f.records[id].ApprovalStatus = v
	}
	return nil
}

func (f *fakeCommissionRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.records, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCommissionRepo) DistinctInstallmentStatuses(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, c := range f.records {
		if !seen[c.InstallmentStatus] {
			seen[c.InstallmentStatus] = true
			out = append(out, c.InstallmentStatus)
		}
	}
	return out, nil
}

// --- transaction manager fake ---

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// --- lot repository fake ---

type fakeLotRepo struct {
	nextID    int64
	createErr error
	linkErr   error
	links     map[int64]int64 // commission -> lot
	emailSent map[int64]bool
	created   []*model.ApprovalLot
}

func newFakeLotRepo() *fakeLotRepo {
	return &fakeLotRepo{nextID: 100, links: make(map[int64]int64), emailSent: make(map[int64]bool)}
}

func (f *fakeLotRepo) Create(ctx context.Context, lot *model.ApprovalLot) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	lot.ID = f.nextID
	f.created = append(f.created, lot)
	return nil
}

func (f *fakeLotRepo) Link(ctx context.Context, commissionID, lotID int64) error {
	if f.linkErr != nil {
		return f.linkErr
	}
	f.links[commissionID] = lotID
	return nil
}

func (f *fakeLotRepo) SetEmailSent(ctx context.Context, lotID int64, sent bool) error {
	f.emailSent[lotID] = sent
	return nil
}

func (f *fakeLotRepo) FindByID(ctx context.Context, id int64) (*model.ApprovalLot, error) {
	for _, l := range f.created {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, errors.New("not found")
}

// --- history repository fake ---

type fakeHistoryRepo struct {
	entries []model.ApprovalHistory
	logErr  error
}

func (f *fakeHistoryRepo) Log(ctx context.Context, entry *model.ApprovalHistory) error {
	if f.logErr != nil {
		return f.logErr
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeHistoryRepo) ListByCommission(ctx context.Context, commissionID int64) ([]model.ApprovalHistory, error) {
	var out []model.ApprovalHistory
	for _, e := range f.entries {
		if e.CommissionID == commissionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeHistoryRepo) List(ctx context.Context, page, limit int) ([]model.ApprovalHistory, int64, error) {
	return f.entries, int64(len(f.entries)), nil
}

// --- mail fakes ---

type fakeRecipients struct {
	direction []string
	finance   []string
}

func (f *fakeRecipients) Resolve(ctx context.Context, recipientType string) []string {
	if recipientType == model.RecipientFinance {
		return f.finance
	}
	return f.direction
}

type sentMail struct {
	to      []string
	subject string
	body    string
}

type fakeMailer struct {
	sent    []sentMail
	sendErr error
}

func (f *fakeMailer) Send(to []string, subject, htmlBody string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

// --- contract repository fake ---

type fakeContractRepo struct {
	contracts map[string]*model.Contract
}

func newFakeContractRepo(contracts ...model.Contract) *fakeContractRepo {
	f := &fakeContractRepo{contracts: make(map[string]*model.Contract)}
	for i := range contracts {
		c := contracts[i]
		f.contracts[c.ContractNumber+"|"+c.BuildingID] = &c
	}
	return f
}

func (f *fakeContractRepo) FindByKey(ctx context.Context, contractNumber, buildingID string) (*model.Contract, error) {
	c, ok := f.contracts[contractNumber+"|"+buildingID]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *c
	return &cp, nil
}

func (f *fakeContractRepo) ListByBuilding(ctx context.Context, buildingID string) ([]model.Contract, error) {
	var out []model.Contract
	for _, c := range f.contracts {
		if c.BuildingID == buildingID {
			out = append(out, *c)
		}
	}
	return out, nil
}
