package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stakehub-io/stakehub-client/internal/observability/metrics"
	"github.com/stakehub-io/stakehub-client/internal/types"
)

// StakePositionSnapshot is the display form of the stake record. Monetary
// fields are rendered in display units with fixed 4 decimal places; the
// integral source values never leave the ledger client layer otherwise.
type StakePositionSnapshot struct {
	Owner              string    `json:"owner"`
	StakedAmount       string    `json:"staked_amount"`
	UnclaimedReward    string    `json:"unclaimed_reward"`
	ClaimedReward      string    `json:"claimed_reward"`
	TotalDeposited     string    `json:"total_deposited"`
	TotalWithdrawn     string    `json:"total_withdrawn"`
	TotalRewardsEarned string    `json:"total_rewards_earned"`
	LastActivityTime   time.Time `json:"last_activity_time"`
}

// refresh fetches the authoritative record and replaces the snapshot
// wholesale. A record that does not exist yet is a recoverable condition:
// the prior snapshot (or its absence) stays untouched and only a
// notification is posted. Other fetch failures likewise retain the prior
// snapshot and surface as FetchFailed.
func (s *Service) refresh(ctx context.Context, manual bool) *types.Error {
	sess, err := s.currentSession()
	if err != nil {
		return err
	}

	start := time.Now()
	record, ferr := s.ledger.FetchRecord(ctx, sess.StakeAddress)
	metrics.ObserveRefreshDuration(time.Since(start), ferr != nil && !types.IsRecordNotFound(ferr))

	if ferr != nil {
		if types.IsRecordNotFound(ferr) {
			s.notifier.Post(msgNoDataYet)
			return nil
		}
		log.Warn().Err(ferr).Msg("reconciliation failed, keeping prior snapshot")
		s.notifier.Post(msgFetchError)
		return types.NewError(ferr.StatusCode, types.FetchFailed, ferr.Err)
	}

	s.snapMu.Lock()
	s.snapshot = record
	s.snapVersion++
	s.snapMu.Unlock()

	if manual {
		s.notifier.Post(msgDataFetched)
	}
	return nil
}

// ManualRefresh is the user-triggered reconciliation. It occupies the same
// single-flight slot as the submission operations.
func (s *Service) ManualRefresh(ctx context.Context) *types.Error {
	op, err := s.beginOperation(types.OperationManualRefresh)
	if err != nil {
		return err
	}
	defer s.finishOperation(op)

	if rerr := s.refresh(ctx, true); rerr != nil {
		op.State = types.StateFailed
		return rerr
	}
	op.State = types.StateSucceeded
	return nil
}

// BackgroundRefresh is the poll method for periodic reconciliation. It skips
// quietly before a session exists and while an operation is in flight, so it
// never competes with a user action. Failures go to the log, not to the
// notification slot, so a flaky endpoint does not drown user-facing messages.
//
// It does not hold the single-flight slot, so an operation can start while
// its fetch is still in the air. The fetch then carries pre-operation state,
// and applying it would roll the snapshot back behind the operation's own
// refresh. The version check catches exactly that: any write that lands
// between the fetch start and its return makes this result stale.
func (s *Service) BackgroundRefresh(ctx context.Context) *types.Error {
	sess, ok := s.Session()
	if !ok {
		return nil
	}
	if _, busy := s.Pending(); busy {
		log.Debug().Msg("skipping background refresh, operation in flight")
		return nil
	}

	s.snapMu.RLock()
	version := s.snapVersion
	s.snapMu.RUnlock()

	record, ferr := s.ledger.FetchRecord(ctx, sess.StakeAddress)
	if ferr != nil {
		if types.IsRecordNotFound(ferr) {
			return nil
		}
		return types.NewError(ferr.StatusCode, types.FetchFailed, ferr.Err)
	}

	s.snapMu.Lock()
	defer s.snapMu.Unlock()
	if s.snapVersion != version {
		log.Debug().Msg("discarding stale background refresh result")
		return nil
	}
	s.snapshot = record
	s.snapVersion++
	return nil
}

// Position returns the display snapshot of the last successful fetch, or
// absence when no fetch has succeeded yet.
func (s *Service) Position() (*StakePositionSnapshot, bool) {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()

	if s.snapshot == nil {
		return nil, false
	}

	record := s.snapshot
	return &StakePositionSnapshot{
		Owner:              record.Owner.String(),
		StakedAmount:       formatLamports(record.Amount),
		UnclaimedReward:    formatLamports(record.Reward),
		ClaimedReward:      formatLamports(record.ClaimedReward),
		TotalDeposited:     formatLamports(record.TotalDeposited),
		TotalWithdrawn:     formatLamports(record.TotalWithdrawn),
		TotalRewardsEarned: formatLamports(record.TotalRewardsEarned),
		LastActivityTime:   time.Unix(record.LastStakeTime, 0),
	}, true
}
