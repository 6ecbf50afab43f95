package ledgerclient

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/stakehub-io/stakehub-client/internal/clients/walletclient"
	"github.com/stakehub-io/stakehub-client/internal/types"
)

// LedgerClient is the boundary to the remote ledger. It performs no business
// validation; record correctness is the remote program's responsibility. The
// boundary is untrusted for latency and ordering: a submission that appears
// to fail at the network layer may still land on the remote side.
type LedgerClient interface {
	// FetchRecord returns the authoritative stake record, or a RecordNotFound
	// error when the record has never been set up.
	FetchRecord(ctx context.Context, addr solana.PublicKey) (*StakeRecord, *types.Error)

	// FetchRecentActivity returns up to limit activity entries for the record
	// address, newest first.
	FetchRecentActivity(ctx context.Context, addr solana.PublicKey, limit int) ([]RawActivity, *types.Error)

	// Submit signs and sends one operation, returning a pending receipt.
	// Transport faults consistent with "already processed" are classified
	// AmbiguousFailure; definite faults are SubmissionRejected.
	Submit(ctx context.Context, kind types.OperationKind, args SubmitArgs, auth walletclient.Authorizer) (PendingReceipt, *types.Error)

	// Confirm performs a single confirmation check for the receipt.
	Confirm(ctx context.Context, receipt PendingReceipt) (ConfirmationStatus, *types.Error)
}
