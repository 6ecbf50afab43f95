package ledgerclient

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/stakehub-io/stakehub-client/internal/clients/walletclient"
	"github.com/stakehub-io/stakehub-client/internal/observability/metrics"
	"github.com/stakehub-io/stakehub-client/internal/types"
)

type ledgerClientWithMetrics struct {
	ledger LedgerClient
}

func NewLedgerClientWithMetrics(ledger LedgerClient) LedgerClient {
	return &ledgerClientWithMetrics{ledger: ledger}
}

func (l *ledgerClientWithMetrics) FetchRecord(ctx context.Context, addr solana.PublicKey) (*StakeRecord, *types.Error) {
	return runLedgerClientMethodWithMetrics("FetchRecord", func() (*StakeRecord, *types.Error) {
		return l.ledger.FetchRecord(ctx, addr)
	})
}

func (l *ledgerClientWithMetrics) FetchRecentActivity(ctx context.Context, addr solana.PublicKey, limit int) ([]RawActivity, *types.Error) {
	return runLedgerClientMethodWithMetrics("FetchRecentActivity", func() ([]RawActivity, *types.Error) {
		return l.ledger.FetchRecentActivity(ctx, addr, limit)
	})
}

func (l *ledgerClientWithMetrics) Submit(ctx context.Context, kind types.OperationKind, args SubmitArgs, auth walletclient.Authorizer) (PendingReceipt, *types.Error) {
	return runLedgerClientMethodWithMetrics("Submit", func() (PendingReceipt, *types.Error) {
		return l.ledger.Submit(ctx, kind, args, auth)
	})
}

func (l *ledgerClientWithMetrics) Confirm(ctx context.Context, receipt PendingReceipt) (ConfirmationStatus, *types.Error) {
	return runLedgerClientMethodWithMetrics("Confirm", func() (ConfirmationStatus, *types.Error) {
		return l.ledger.Confirm(ctx, receipt)
	})
}

func runLedgerClientMethodWithMetrics[T any](method string, call func() (T, *types.Error)) (T, *types.Error) {
	start := time.Now()
	result, err := call()
	metrics.ObserveLedgerClientLatency(method, time.Since(start), err != nil)
	return result, err
}
