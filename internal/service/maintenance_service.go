package service

import (
	"context"
	"fmt"

	"commission-backend/internal/model"
	"commission-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

// PurgeResult reports a duplicate cleanup run.
type PurgeResult struct {
	Groups  int     `json:"groups"`
	Removed int     `json:"removed"`
	Kept    []int64 `json:"kept"`
}

// MaintenanceService hosts the administrative cleanup operations.
// PurgeDuplicates is the only path that hard-deletes commissions.
type MaintenanceService interface {
	// PurgeDuplicates collapses commissions sharing the same
	// contract/unit/building key. The survivor is the first
	// non-cancelled record, ties broken by lowest ID; cancelled-only
	// groups keep the lowest ID.
	PurgeDuplicates(ctx context.Context) (*PurgeResult, error)
}

type maintenanceService struct {
	commissions repository.CommissionRepository
	history     repository.HistoryRepository
	tx          repository.TransactionManager
	log         *logrus.Logger
}

func NewMaintenanceService(commissions repository.CommissionRepository, history repository.HistoryRepository, tx repository.TransactionManager, log *logrus.Logger) MaintenanceService {
	return &maintenanceService{commissions: commissions, history: history, tx: tx, log: log}
}

func (s *maintenanceService) PurgeDuplicates(ctx context.Context) (*PurgeResult, error) {
	commissions, err := s.commissions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list commissions: %w", err)
	}

	groups := make(map[string][]model.Commission)
	for _, c := range commissions {
		key := c.DedupKey()
		groups[key] = append(groups[key], c)
	}

	result := &PurgeResult{}
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		result.Groups++

		survivor := pickSurvivor(group)
		result.Kept = append(result.Kept, survivor.ID)

		for _, c := range group {
			if c.ID == survivor.ID {
				continue
			}
			dup := c
			// Delete and its audit row commit together.
			err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
				if err := s.commissions.Delete(txCtx, dup.ID); err != nil {
					return err
				}
				entry := model.ApprovalHistory{
					CommissionID:   survivor.ID,
					PreviousStatus: dup.ApprovalStatus,
					NewStatus:      survivor.ApprovalStatus,
					Action:         model.ActionPurgeDuplicate,
					Notes:          fmt.Sprintf("removed duplicate #%d for %s", dup.ID, dup.ContractNumber),
				}
				return s.history.Log(txCtx, &entry)
			})
			if err != nil {
				s.log.WithError(err).WithField("commission_id", dup.ID).Warn("duplicate not removed")
				continue
			}
			result.Removed++
		}
	}
	return result, nil
}

// pickSurvivor prefers the first non-cancelled record in ID order; a
// group where every record is cancelled keeps the lowest ID.
func pickSurvivor(group []model.Commission) model.Commission {
	survivor := group[0]
	for _, c := range group[1:] {
		if c.ID < survivor.ID {
			survivor = c
		}
	}
	if !survivor.Cancelled() {
		return survivor
	}

	best := survivor
	for _, c := range group {
		if c.Cancelled() {
			continue
		}
		if best.Cancelled() || c.ID < best.ID {
			best = c
		}
	}
	return best
}
