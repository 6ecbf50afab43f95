package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/stakehub-io/stakehub-client/internal/clients/ledgerclient"
	"github.com/stakehub-io/stakehub-client/internal/observability/metrics"
	"github.com/stakehub-io/stakehub-client/internal/types"
)

// PendingOperation exists only while one operation is in flight. Its
// presence is what serializes user actions: at most one instance exists at
// any instant.
type PendingOperation struct {
	ID        uuid.UUID             `json:"id"`
	Kind      types.OperationKind   `json:"kind"`
	StartedAt time.Time             `json:"started_at"`
	State     types.SubmissionState `json:"state"`
}

// SetupAccount initializes the stake record on the ledger.
func (s *Service) SetupAccount(ctx context.Context) *types.Error {
	return s.submit(ctx, types.OperationSetupAccount, "")
}

// Deposit stakes the given decimal amount.
func (s *Service) Deposit(ctx context.Context, amount string) *types.Error {
	return s.submit(ctx, types.OperationDeposit, amount)
}

// Withdraw unstakes the given decimal amount.
func (s *Service) Withdraw(ctx context.Context, amount string) *types.Error {
	return s.submit(ctx, types.OperationWithdraw, amount)
}

// ClaimReward claims all accrued rewards.
func (s *Service) ClaimReward(ctx context.Context) *types.Error {
	return s.submit(ctx, types.OperationClaimReward, "")
}

// Pending returns a copy of the in-flight operation, if any.
func (s *Service) Pending() (PendingOperation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return PendingOperation{}, false
	}
	return *s.pending, true
}

// beginOperation claims the single-flight slot. Concurrent attempts are
// rejected, not queued.
func (s *Service) beginOperation(kind types.OperationKind) (*PendingOperation, *types.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess == nil {
		return nil, types.NewErrorWithMsg(
			http.StatusPreconditionFailed,
			types.WalletUnavailable,
			"no session established, connect a wallet first",
		)
	}
	if s.pending != nil {
		return nil, types.NewError(
			http.StatusConflict,
			types.OperationInFlight,
			fmt.Errorf("%s is still in flight", s.pending.Kind),
		)
	}

	op := &PendingOperation{
		ID:        uuid.New(),
		Kind:      kind,
		StartedAt: time.Now(),
		State:     types.StateSubmitting,
	}
	s.pending = op
	return op, nil
}

// finishOperation releases the single-flight slot. It runs on every exit
// path regardless of outcome.
func (s *Service) finishOperation(op *PendingOperation) {
	metrics.RecordOperationOutcome(op.Kind.String(), op.State.String())

	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()

	log.Debug().
		Stringer("kind", op.Kind).
		Stringer("state", op.State).
		Dur("took", time.Since(op.StartedAt)).
		Msg("operation finished")
}

// submit runs one operation through the state machine:
// Submitting -> AwaitingConfirmation -> {Succeeded, AmbiguousFailure, Failed}.
func (s *Service) submit(ctx context.Context, kind types.OperationKind, rawAmount string) *types.Error {
	// amount validation happens before any state transition
	var lamports uint64
	if kind.RequiresAmount() {
		var verr *types.Error
		lamports, verr = parseLamports(rawAmount)
		if verr != nil {
			return verr
		}
	}

	op, err := s.beginOperation(kind)
	if err != nil {
		return err
	}
	defer s.finishOperation(op)

	sess, err := s.currentSession()
	if err != nil {
		op.State = types.StateFailed
		return err
	}

	receipt, serr := s.ledger.Submit(ctx, kind, ledgerclient.SubmitArgs{
		Owner:        sess.UserAddress,
		StakeAddress: sess.StakeAddress,
		Lamports:     lamports,
	}, sess.Authorizer)
	if serr != nil {
		if serr.ErrorCode == types.AmbiguousFailure {
			// the operation may have landed: report distinctly, but do not
			// append history or refresh on an unknown outcome
			op.State = types.StateAmbiguousFailure
			s.notifier.Post(ambiguousMessage(kind))
			return serr
		}
		op.State = types.StateFailed
		s.notifier.Post(failureMessage(kind))
		return serr
	}

	op.State = types.StateAwaitingConfirmation
	status, cerr := s.awaitConfirmation(ctx, receipt)
	if cerr != nil || status == ledgerclient.StatusStillPending {
		// confirmation budget exhausted or the check itself failed; the
		// transaction can still land after we stop looking
		op.State = types.StateAmbiguousFailure
		s.notifier.Post(ambiguousMessage(kind))
		return types.NewError(
			http.StatusConflict,
			types.AmbiguousFailure,
			fmt.Errorf("%s submitted but not confirmed in time", kind),
		)
	}
	if status == ledgerclient.StatusRejected {
		op.State = types.StateFailed
		s.notifier.Post(failureMessage(kind))
		return types.NewError(
			http.StatusBadGateway,
			types.SubmissionRejected,
			fmt.Errorf("%s rejected by the ledger", kind),
		)
	}

	op.State = types.StateSucceeded

	entry := HistoryEntry{Kind: kind.HistoryKind(), Timestamp: time.Now()}
	if kind.RequiresAmount() {
		entry.Amount = formatLamports(lamports)
	}
	s.history.Append(entry)

	if rerr := s.refresh(ctx, false); rerr != nil {
		// the operation itself succeeded; the stale snapshot is retried via
		// manual refresh
		log.Warn().Err(rerr).Msg("post-operation reconciliation failed")
	}

	s.notifier.Post(successMessage(kind))
	return nil
}

var errStillPending = errors.New("transaction still pending")

// awaitConfirmation polls the confirmation status on a fixed interval until
// the result is definite or the attempt budget runs out.
func (s *Service) awaitConfirmation(ctx context.Context, receipt ledgerclient.PendingReceipt) (ledgerclient.ConfirmationStatus, *types.Error) {
	cfg := &s.cfg.Ledger

	status, err := retry.DoWithData(
		func() (ledgerclient.ConfirmationStatus, error) {
			st, cerr := s.ledger.Confirm(ctx, receipt)
			if cerr != nil {
				// the client already retried transport errors internally
				return "", retry.Unrecoverable(cerr)
			}
			if st == ledgerclient.StatusStillPending {
				return st, errStillPending
			}
			return st, nil
		},
		retry.Attempts(cfg.ConfirmMaxAttempts),
		retry.Delay(cfg.ConfirmPollInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			log.Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.ConfirmMaxAttempts).
				Stringer("signature", receipt.Signature).
				Msg("awaiting confirmation")
		}),
	)

	if err != nil {
		if errors.Is(err, errStillPending) {
			return ledgerclient.StatusStillPending, nil
		}
		var terr *types.Error
		if errors.As(err, &terr) {
			return "", terr
		}
		return "", types.NewInternalServiceError(err)
	}
	return status, nil
}
