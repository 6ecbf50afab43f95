package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/stakehub-io/stakehub-client/internal/clients/ledgerclient"
	"github.com/stakehub-io/stakehub-client/internal/clients/walletclient"
	"github.com/stakehub-io/stakehub-client/internal/config"
	"github.com/stakehub-io/stakehub-client/internal/types"
	"github.com/stakehub-io/stakehub-client/testutil"
)

// fakeLedger is a scriptable in-memory LedgerClient.
type fakeLedger struct {
	mu sync.Mutex

	record      *ledgerclient.StakeRecord
	recordErr   *types.Error
	fetchGate   chan struct{} // when set, the next FetchRecord delivers late
	activities  []ledgerclient.RawActivity
	activityErr *types.Error

	submitErr   *types.Error
	submitGate  chan struct{} // when set, Submit blocks until it is closed
	confirmErr  *types.Error
	confirmSeq  []ledgerclient.ConfirmationStatus
	confirmIdx  int
	fetchCalls  int
	submitCalls int
}

func (f *fakeLedger) FetchRecord(ctx context.Context, addr solana.PublicKey) (*ledgerclient.StakeRecord, *types.Error) {
	f.mu.Lock()
	f.fetchCalls++
	gate := f.fetchGate
	f.fetchGate = nil
	recordErr := f.recordErr
	var record *ledgerclient.StakeRecord
	if f.record != nil {
		r := *f.record
		record = &r
	}
	f.mu.Unlock()

	// the response reflects the state at call time; a gated call delivers
	// it late, like an RPC round trip stalled on the wire
	if gate != nil {
		<-gate
	}
	if recordErr != nil {
		return nil, recordErr
	}
	return record, nil
}

func (f *fakeLedger) FetchRecentActivity(ctx context.Context, addr solana.PublicKey, limit int) ([]ledgerclient.RawActivity, *types.Error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.activityErr != nil {
		return nil, f.activityErr
	}
	return f.activities, nil
}

func (f *fakeLedger) Submit(ctx context.Context, kind types.OperationKind, args ledgerclient.SubmitArgs, auth walletclient.Authorizer) (ledgerclient.PendingReceipt, *types.Error) {
	f.mu.Lock()
	f.submitCalls++
	gate := f.submitGate
	submitErr := f.submitErr
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if submitErr != nil {
		return ledgerclient.PendingReceipt{}, submitErr
	}
	return ledgerclient.PendingReceipt{Signature: testutil.RandomSignature()}, nil
}

func (f *fakeLedger) Confirm(ctx context.Context, receipt ledgerclient.PendingReceipt) (ledgerclient.ConfirmationStatus, *types.Error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.confirmErr != nil {
		return "", f.confirmErr
	}
	if f.confirmIdx >= len(f.confirmSeq) {
		return ledgerclient.StatusStillPending, nil
	}
	status := f.confirmSeq[f.confirmIdx]
	f.confirmIdx++
	return status, nil
}

func (f *fakeLedger) submitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitCalls
}

func (f *fakeLedger) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchCalls
}

func (f *fakeLedger) setRecord(record *ledgerclient.StakeRecord) {
	f.mu.Lock()
	f.record = record
	f.mu.Unlock()
}

func (f *fakeLedger) gateNextFetch(gate chan struct{}) {
	f.mu.Lock()
	f.fetchGate = gate
	f.mu.Unlock()
}

type fakeWallet struct {
	identity *walletclient.Identity
	err      *types.Error
}

func (w *fakeWallet) Connect(ctx context.Context) (*walletclient.Identity, *types.Error) {
	return w.identity, w.err
}

type nopAuthorizer struct{}

func (nopAuthorizer) Sign(tx *solana.Transaction) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Ledger: config.LedgerConfig{
			RPCAddr:             "https://api.devnet.solana.com",
			Timeout:             time.Second,
			MaxRetryTimes:       1,
			RetryInterval:       time.Millisecond,
			ConfirmMaxAttempts:  3,
			ConfirmPollInterval: time.Millisecond,
		},
		Notifications: config.NotificationsConfig{
			TTL: time.Minute, // expiry behavior is tested separately
		},
	}
}

func testRecord(owner solana.PublicKey) *ledgerclient.StakeRecord {
	return &ledgerclient.StakeRecord{
		Owner:              owner,
		Amount:             2_500_000_000,
		Reward:             42_000_000,
		ClaimedReward:      10_000_000,
		LastStakeTime:      1_700_000_000,
		TotalDeposited:     5_000_000_000,
		TotalWithdrawn:     2_500_000_000,
		TotalRewardsEarned: 52_000_000,
	}
}

// connectedService returns a service with an established session and an
// initialized history, backed by the given fake ledger.
func connectedService(t *testing.T, ledger *fakeLedger) *Service {
	t.Helper()

	user := testutil.RandomPublicKey()
	if ledger.record == nil && ledger.recordErr == nil {
		ledger.record = testRecord(user)
	}

	svc := NewService(testConfig(), ledger, &fakeWallet{
		identity: &walletclient.Identity{UserAddress: user, Authorizer: nopAuthorizer{}},
	})
	require.Nil(t, svc.Connect(context.Background()))
	return svc
}
