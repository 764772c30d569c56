package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"commission-backend/internal/mailer"
	"commission-backend/internal/model"
	"commission-backend/internal/repository"
	"commission-backend/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// WorkflowResult is the structured outcome of a batch operation. The
// engine never surfaces an error to the transport layer: validation
// problems, skipped records and side-channel failures all land here.
type WorkflowResult struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	LotID      int64           `json:"lot_id,omitempty"`
	Processed  int             `json:"processed"`
	Skipped    int             `json:"skipped"`
	Failed     int             `json:"failed"`
	TotalValue decimal.Decimal `json:"total_value"`
	EmailSent  bool            `json:"email_sent"`
}

// Recipients resolves a role tag to e-mail addresses.
// *mailer.RecipientResolver is the production implementation.
type Recipients interface {
	Resolve(ctx context.Context, recipientType string) []string
}

// EventPublisher pushes workflow events to connected dashboards.
// *websocket.Hub is the production implementation.
type EventPublisher interface {
	Publish(event websocket.WorkflowEvent)
}

// ApprovalService drives commissions through the approval state machine:
//
//	PENDING --Submit--> PENDING_APPROVAL --Approve--> APPROVED
//	                          |
//	                          +--------Reject-------> REJECTED
//
// Batches are partial-failure tolerant, not atomic: a storage failure on
// one record aborts that record's remaining steps and the loop moves on.
// There is no locking; two overlapping submissions can both count the
// same PENDING record (known gap).
type ApprovalService interface {
	Submit(ctx context.Context, ids []int64, actorID string) WorkflowResult
	Approve(ctx context.Context, ids []int64, actorID, notes string) WorkflowResult
	// Reject requires a non-empty reason. The handler layer enforces the
	// precondition; the engine records the reason as the commission notes.
	Reject(ctx context.Context, ids []int64, actorID, reason, notes string) WorkflowResult
	// MarkPaid is the finance closing step: only APPROVED records move
	// to PAID, everything else is skipped.
	MarkPaid(ctx context.Context, ids []int64, actorID string) WorkflowResult
	ListByStatus(ctx context.Context, approvalStatus string, triggerReached *bool) ([]model.Commission, error)
	InstallmentStatuses(ctx context.Context) ([]model.InstallmentStatusOption, error)
}

type approvalService struct {
	commissions repository.CommissionRepository
	lots        repository.LotRepository
	history     repository.HistoryRepository
	recipients  Recipients
	mail        mailer.Mailer
	events      EventPublisher
	baseURL     string
	log         *logrus.Logger
}

func NewApprovalService(
	commissions repository.CommissionRepository,
	lots repository.LotRepository,
	history repository.HistoryRepository,
	recipients Recipients,
	mail mailer.Mailer,
	events EventPublisher,
	baseURL string,
	log *logrus.Logger,
) ApprovalService {
	return &approvalService{
		commissions: commissions,
		lots:        lots,
		history:     history,
		recipients:  recipients,
		mail:        mail,
		events:      events,
		baseURL:     baseURL,
		log:         log,
	}
}

// --- Submit ---

func (s *approvalService) Submit(ctx context.Context, ids []int64, actorID string) WorkflowResult {
	if len(ids) == 0 {
		return WorkflowResult{Success: false, Message: "no commissions selected"}
	}

	actor := parseActor(actorID)
	now := time.Now()

	// Eligibility pass: only PENDING (or never-touched) records move
	// forward; everything else is silently skipped and counted.
	var eligible []model.Commission
	skipped := 0
	total := decimal.Zero
	for _, id := range ids {
		c, err := s.commissions.FindByID(ctx, id)
		if err != nil {
			skipped++
			continue
		}
		if c.Cancelled() {
			skipped++
			continue
		}
		if c.ApprovalStatus != model.ApprovalPending && c.ApprovalStatus != "" {
			skipped++
			continue
		}
		eligible = append(eligible, *c)
		total = total.Add(c.CommissionValue)
	}

	if len(eligible) == 0 {
		return WorkflowResult{
			Success: false,
			Message: "no eligible commissions to submit",
			Skipped: skipped,
		}
	}

	// Lot creation is bookkeeping: when it fails the batch keeps a
	// timestamp-derived identifier so the notification still references
	// a stable number.
	lotID := now.Unix()
	lotCreated := false
	lot := model.ApprovalLot{
		SubmittedBy:      actor,
		TotalCommissions: len(eligible),
		TotalValue:       total,
		Status:           model.LotSubmitted,
	}
	if err := s.lots.Create(ctx, &lot); err != nil {
		s.log.WithError(err).Warn("approval lot not created, using timestamp id")
	} else {
		lotID = lot.ID
		lotCreated = true
	}

	processed := 0
	failed := 0
	var submitted []model.Commission
	for _, c := range eligible {
		err := s.commissions.UpdateFields(ctx, c.ID, map[string]interface{}{
			"approval_status": model.ApprovalPendingApproval,
			"submitted_by":    actor,
			"submitted_at":    now,
		})
		if err != nil {
			// Primary mutation failed: count it and move to the next id.
			// The remaining best-effort steps for this id are skipped.
			failed++
			s.log.WithError(err).WithField("commission_id", c.ID).Error("failed to submit commission")
			continue
		}
		processed++
		submitted = append(submitted, c)

		s.writeHistory(ctx, c.ID, c.ApprovalStatus, model.ApprovalPendingApproval, model.ActionSubmitForApproval, actor, "")
		if err := s.lots.Link(ctx, c.ID, lotID); err != nil {
			s.log.WithError(err).WithField("commission_id", c.ID).Warn("lot link not recorded")
		}
	}

	if processed == 0 {
		return WorkflowResult{
			Success: false,
			Message: "no commissions could be submitted",
			LotID:   lotID,
			Skipped: skipped,
			Failed:  failed,
		}
	}

	// Exactly one consolidated e-mail for the whole batch.
	emailSent := s.sendDirectionEmail(ctx, lotID, submitted, total, now)
	if lotCreated {
		if err := s.lots.SetEmailSent(ctx, lotID, emailSent); err != nil {
			s.log.WithError(err).WithField("lot_id", lotID).Warn("lot e-mail flag not updated")
		}
	}

	s.publish("submitted", submitted, lotID, total, actorID, now)

	return WorkflowResult{
		Success:    true,
		Message:    fmt.Sprintf("%d commissions submitted for approval", processed),
		LotID:      lotID,
		Processed:  processed,
		Skipped:    skipped,
		Failed:     failed,
		TotalValue: total,
		EmailSent:  emailSent,
	}
}

// --- Approve ---

func (s *approvalService) Approve(ctx context.Context, ids []int64, actorID, notes string) WorkflowResult {
	if len(ids) == 0 {
		return WorkflowResult{Success: false, Message: "no commissions selected"}
	}

	actor := parseActor(actorID)
	now := time.Now()

	processed := 0
	skipped := 0
	failed := 0
	total := decimal.Zero
	var approved []model.Commission
	for _, id := range ids {
		c, err := s.commissions.FindByID(ctx, id)
		if err != nil {
			skipped++
			continue
		}
		// A cancelled installment must never reach APPROVED.
		if c.Cancelled() {
			skipped++
			continue
		}

		err = s.commissions.UpdateFields(ctx, c.ID, map[string]interface{}{
			"approval_status": model.ApprovalApproved,
			"approved_by":     actor,
			"approved_at":     now,
			"notes":           notes,
		})
		if err != nil {
			failed++
			s.log.WithError(err).WithField("commission_id", c.ID).Error("failed to approve commission")
			continue
		}
		processed++
		total = total.Add(c.CommissionValue)
		approved = append(approved, *c)

		s.writeHistory(ctx, c.ID, c.ApprovalStatus, model.ApprovalApproved, model.ActionApprove, actor, notes)
	}

	if processed == 0 {
		return WorkflowResult{
			Success: false,
			Message: "no eligible commissions to approve",
			Skipped: skipped,
			Failed:  failed,
		}
	}

	emailSent := s.sendFinanceEmail(ctx, approved, total, now)
	s.publish("approved", approved, 0, total, actorID, now)

	return WorkflowResult{
		Success:    true,
		Message:    fmt.Sprintf("%d commissions approved", processed),
		Processed:  processed,
		Skipped:    skipped,
		Failed:     failed,
		TotalValue: total,
		EmailSent:  emailSent,
	}
}

// --- Reject ---

func (s *approvalService) Reject(ctx context.Context, ids []int64, actorID, reason, notes string) WorkflowResult {
	if len(ids) == 0 {
		return WorkflowResult{Success: false, Message: "no commissions selected"}
	}

	actor := parseActor(actorID)
	now := time.Now()

	noteText := reason
	if notes != "" {
		noteText = reason + " / " + notes
	}

	processed := 0
	skipped := 0
	failed := 0
	var rejected []model.Commission
	for _, id := range ids {
		c, err := s.commissions.FindByID(ctx, id)
		if err != nil {
			skipped++
			continue
		}

		err = s.commissions.UpdateFields(ctx, c.ID, map[string]interface{}{
			"approval_status": model.ApprovalRejected,
			"approved_by":     actor,
			"approved_at":     now,
			"notes":           noteText,
		})
		if err != nil {
			failed++
			s.log.WithError(err).WithField("commission_id", c.ID).Error("failed to reject commission")
			continue
		}
		processed++
		rejected = append(rejected, *c)

		s.writeHistory(ctx, c.ID, c.ApprovalStatus, model.ApprovalRejected, model.ActionReject, actor, noteText)
	}

	if processed == 0 {
		return WorkflowResult{
			Success: false,
			Message: "no commissions could be rejected",
			Skipped: skipped,
			Failed:  failed,
		}
	}

	// Rejections carry no e-mail: they surface through queries, not push.
	s.publish("rejected", rejected, 0, decimal.Zero, actorID, now)

	return WorkflowResult{
		Success:   true,
		Message:   fmt.Sprintf("%d commissions rejected", processed),
		Processed: processed,
		Skipped:   skipped,
		Failed:    failed,
	}
}

// --- MarkPaid ---

func (s *approvalService) MarkPaid(ctx context.Context, ids []int64, actorID string) WorkflowResult {
	if len(ids) == 0 {
		return WorkflowResult{Success: false, Message: "no commissions selected"}
	}

	actor := parseActor(actorID)
	now := time.Now()

	processed := 0
	skipped := 0
	failed := 0
	total := decimal.Zero
	var paid []model.Commission
	for _, id := range ids {
		c, err := s.commissions.FindByID(ctx, id)
		if err != nil {
			skipped++
			continue
		}
		if c.ApprovalStatus != model.ApprovalApproved {
			skipped++
			continue
		}

		err = s.commissions.UpdateFields(ctx, c.ID, map[string]interface{}{
			"approval_status": model.ApprovalPaid,
		})
		if err != nil {
			failed++
			s.log.WithError(err).WithField("commission_id", c.ID).Error("failed to mark commission paid")
			continue
		}
		processed++
		total = total.Add(c.CommissionValue)
		paid = append(paid, *c)

		s.writeHistory(ctx, c.ID, c.ApprovalStatus, model.ApprovalPaid, model.ActionMarkPaid, actor, "")
	}

	if processed == 0 {
		return WorkflowResult{
			Success: false,
			Message: "no approved commissions to mark as paid",
			Skipped: skipped,
			Failed:  failed,
		}
	}

	s.publish("paid", paid, 0, total, actorID, now)

	return WorkflowResult{
		Success:    true,
		Message:    fmt.Sprintf("%d commissions marked as paid", processed),
		Processed:  processed,
		Skipped:    skipped,
		Failed:     failed,
		TotalValue: total,
	}
}

// --- Listing ---

// ListByStatus returns commissions filtered by approval status and
// trigger flag, cancelled records excluded, ordered by commission date
// descending. Dates are ERP text and compare as strings; empty dates
// sort last.
func (s *approvalService) ListByStatus(ctx context.Context, approvalStatus string, triggerReached *bool) ([]model.Commission, error) {
	commissions, err := s.commissions.List(ctx, approvalStatus, triggerReached)
	if err != nil {
		return nil, fmt.Errorf("failed to list commissions: %w", err)
	}

	filtered := commissions[:0]
	for _, c := range commissions {
		if c.Cancelled() {
			continue
		}
		filtered = append(filtered, c)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CommissionDate > filtered[j].CommissionDate
	})

	return filtered, nil
}

// InstallmentStatuses lists the distinct raw ERP labels currently in
// the database with their canonical mapping and display translation.
func (s *approvalService) InstallmentStatuses(ctx context.Context) ([]model.InstallmentStatusOption, error) {
	raws, err := s.commissions.DistinctInstallmentStatuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list installment statuses: %w", err)
	}

	options := make([]model.InstallmentStatusOption, 0, len(raws))
	for _, raw := range raws {
		if raw == "" {
			continue
		}
		options = append(options, model.InstallmentStatusOption{
			Raw:       raw,
			Canonical: model.CanonicalInstallmentStatus(raw),
			Label:     model.InstallmentStatusDisplay(raw),
		})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Raw < options[j].Raw })
	return options, nil
}

// --- Helpers ---

func parseActor(actorID string) *uuid.UUID {
	if actorID == "" {
		return nil
	}
	parsed, err := uuid.Parse(actorID)
	if err != nil {
		return nil
	}
	return &parsed
}

// writeHistory appends an audit trail entry. Best-effort: a failed
// insert is logged and never blocks the transition it records.
func (s *approvalService) writeHistory(ctx context.Context, commissionID int64, previous, next, action string, actor *uuid.UUID, notes string) {
	prev := previous
	if prev == "" {
		prev = model.ApprovalPending
	}
	entry := model.ApprovalHistory{
		CommissionID:   commissionID,
		PreviousStatus: prev,
		NewStatus:      next,
		Action:         action,
		PerformedBy:    actor,
		Notes:          notes,
	}
	if err := s.history.Log(ctx, &entry); err != nil {
		s.log.WithError(err).WithField("commission_id", commissionID).Warn("approval history not recorded")
	}
}

func (s *approvalService) sendDirectionEmail(ctx context.Context, lotID int64, commissions []model.Commission, total decimal.Decimal, now time.Time) bool {
	to := s.recipients.Resolve(ctx, model.RecipientDirection)
	if len(to) == 0 {
		s.log.Warn("no direction recipients configured, e-mail not sent")
		return false
	}

	subject, body, err := mailer.BuildDirectionEmail(lotID, emailRows(commissions), total, s.baseURL, now)
	if err != nil {
		s.log.WithError(err).Error("failed to build direction e-mail")
		return false
	}
	if err := s.mail.Send(to, subject, body); err != nil {
		s.log.WithError(err).Error("failed to send direction e-mail")
		return false
	}
	return true
}

func (s *approvalService) sendFinanceEmail(ctx context.Context, commissions []model.Commission, total decimal.Decimal, now time.Time) bool {
	to := s.recipients.Resolve(ctx, model.RecipientFinance)
	if len(to) == 0 {
		s.log.Warn("no finance recipients configured, e-mail not sent")
		return false
	}

	subject, body, err := mailer.BuildFinanceEmail(emailRows(commissions), total, now)
	if err != nil {
		s.log.WithError(err).Error("failed to build finance e-mail")
		return false
	}
	if err := s.mail.Send(to, subject, body); err != nil {
		s.log.WithError(err).Error("failed to send finance e-mail")
		return false
	}
	return true
}

func emailRows(commissions []model.Commission) []mailer.CommissionRow {
	rows := make([]mailer.CommissionRow, 0, len(commissions))
	for _, c := range commissions {
		rows = append(rows, mailer.CommissionRow{
			Broker:      orNA(c.BrokerName),
			Enterprise:  orNA(c.EnterpriseName),
			Unit:        orNA(c.UnitName),
			Value:       mailer.FormatMoney(c.CommissionValue),
			Installment: model.InstallmentStatusDisplay(c.InstallmentStatus),
		})
	}
	return rows
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func (s *approvalService) publish(event string, commissions []model.Commission, lotID int64, total decimal.Decimal, actorID string, at time.Time) {
	if s.events == nil {
		return
	}
	ids := make([]int64, 0, len(commissions))
	for _, c := range commissions {
		ids = append(ids, c.ID)
	}
	s.events.Publish(websocket.WorkflowEvent{
		Event:         event,
		CommissionIDs: ids,
		LotID:         lotID,
		TotalValue:    total.StringFixed(2),
		Actor:         actorID,
		At:            at,
	})
}
