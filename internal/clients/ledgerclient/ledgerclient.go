package ledgerclient

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog/log"

	"github.com/stakehub-io/stakehub-client/internal/clients/walletclient"
	"github.com/stakehub-io/stakehub-client/internal/config"
	"github.com/stakehub-io/stakehub-client/internal/types"
	"github.com/stakehub-io/stakehub-client/pkg"
)

type Client struct {
	rpc       *rpc.Client
	cfg       *config.LedgerConfig
	programID solana.PublicKey
}

func New(cfg *config.LedgerConfig) LedgerClient {
	return &Client{
		rpc:       rpc.New(cfg.RPCAddr),
		cfg:       cfg,
		programID: pkg.StakeProgramID,
	}
}

func (c *Client) FetchRecord(ctx context.Context, addr solana.PublicKey) (*StakeRecord, *types.Error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	// First try without retry to check for the not-found case
	res, err := c.rpc.GetAccountInfoWithOpts(ctx, addr, &rpc.GetAccountInfoOpts{
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, recordNotFoundError(addr)
		}

		// Only retry for other errors
		callForAccountInfo := func() (*rpc.GetAccountInfoResult, error) {
			return c.rpc.GetAccountInfoWithOpts(ctx, addr, &rpc.GetAccountInfoOpts{
				Commitment: rpc.CommitmentConfirmed,
			})
		}

		res, err = clientCallWithRetry(callForAccountInfo, c.cfg)
		if err != nil {
			if errors.Is(err, rpc.ErrNotFound) {
				return nil, recordNotFoundError(addr)
			}
			return nil, types.NewError(
				http.StatusBadGateway,
				types.FetchFailed,
				fmt.Errorf("failed to fetch stake record: %w", err),
			)
		}
	}

	if res.Value == nil || res.Value.Data == nil {
		return nil, recordNotFoundError(addr)
	}

	record, err := decodeStakeRecord(res.Value.Data.GetBinary())
	if err != nil {
		return nil, types.NewError(
			http.StatusBadGateway,
			types.FetchFailed,
			fmt.Errorf("failed to decode stake record %s: %w", addr, err),
		)
	}
	return record, nil
}

func (c *Client) FetchRecentActivity(ctx context.Context, addr solana.PublicKey, limit int) ([]RawActivity, *types.Error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	callForSignatures := func() ([]*rpc.TransactionSignature, error) {
		return c.rpc.GetSignaturesForAddressWithOpts(ctx, addr, &rpc.GetSignaturesForAddressOpts{
			Limit:      &limit,
			Commitment: rpc.CommitmentConfirmed,
		})
	}

	sigs, err := clientCallWithRetry(callForSignatures, c.cfg)
	if err != nil {
		return nil, types.NewError(
			http.StatusBadGateway,
			types.FetchFailed,
			fmt.Errorf("failed to fetch recent activity: %w", err),
		)
	}

	// signatures arrive newest first and stay that way
	activities := make([]RawActivity, 0, len(sigs))
	for _, sig := range sigs {
		activity := RawActivity{
			Signature: sig.Signature,
			Slot:      sig.Slot,
			Failed:    sig.Err != nil,
		}
		if sig.BlockTime != nil {
			blockTime := sig.BlockTime.Time()
			activity.BlockTime = &blockTime
		}
		if sig.Memo != nil {
			activity.Memo = *sig.Memo
		}
		activities = append(activities, activity)
	}
	return activities, nil
}

func (c *Client) Submit(ctx context.Context, kind types.OperationKind, args SubmitArgs, auth walletclient.Authorizer) (PendingReceipt, *types.Error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	callForBlockhash := func() (*rpc.GetLatestBlockhashResult, error) {
		return c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	}
	recent, err := clientCallWithRetry(callForBlockhash, c.cfg)
	if err != nil {
		return PendingReceipt{}, types.NewError(
			http.StatusBadGateway,
			types.SubmissionRejected,
			fmt.Errorf("failed to fetch recent blockhash: %w", err),
		)
	}

	instruction, err := c.buildInstruction(kind, args)
	if err != nil {
		return PendingReceipt{}, types.NewInternalServiceError(err)
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{instruction},
		recent.Value.Blockhash,
		solana.TransactionPayer(args.Owner),
	)
	if err != nil {
		return PendingReceipt{}, types.NewInternalServiceError(
			fmt.Errorf("failed to build transaction: %w", err),
		)
	}

	if err := auth.Sign(tx); err != nil {
		return PendingReceipt{}, types.NewError(
			http.StatusUnauthorized,
			types.SubmissionRejected,
			fmt.Errorf("failed to authorize transaction: %w", err),
		)
	}

	// sends are never retried: a resubmission is not idempotent
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: rpc.CommitmentProcessed,
	})
	if err != nil {
		if IsAlreadyProcessedError(err) {
			return PendingReceipt{}, types.NewError(
				http.StatusConflict,
				types.AmbiguousFailure,
				fmt.Errorf("%s may have already been applied: %w", kind, err),
			)
		}
		return PendingReceipt{}, types.NewError(
			http.StatusBadGateway,
			types.SubmissionRejected,
			fmt.Errorf("failed to send %s transaction: %w", kind, err),
		)
	}

	log.Debug().
		Stringer("kind", kind).
		Stringer("signature", sig).
		Msg("transaction submitted")

	return PendingReceipt{Signature: sig}, nil
}

func (c *Client) Confirm(ctx context.Context, receipt PendingReceipt) (ConfirmationStatus, *types.Error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	callForStatuses := func() (*rpc.GetSignatureStatusesResult, error) {
		return c.rpc.GetSignatureStatuses(ctx, true, receipt.Signature)
	}

	res, err := clientCallWithRetry(callForStatuses, c.cfg)
	if err != nil {
		return "", types.NewError(
			http.StatusBadGateway,
			types.FetchFailed,
			fmt.Errorf("failed to fetch signature status: %w", err),
		)
	}

	if len(res.Value) == 0 || res.Value[0] == nil {
		return StatusStillPending, nil
	}

	status := res.Value[0]
	if status.Err != nil {
		return StatusRejected, nil
	}
	switch status.ConfirmationStatus {
	case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
		return StatusConfirmed, nil
	default:
		return StatusStillPending, nil
	}
}

const (
	methodInitialize  = "initialize"
	methodStake       = "stake"
	methodUnstake     = "unstake"
	methodClaimReward = "claim_reward"
)

func (c *Client) buildInstruction(kind types.OperationKind, args SubmitArgs) (solana.Instruction, error) {
	var (
		method   string
		accounts solana.AccountMetaSlice
	)

	switch kind {
	case types.OperationSetupAccount:
		method = methodInitialize
		accounts = solana.AccountMetaSlice{
			solana.NewAccountMeta(args.StakeAddress, true, false),
			solana.NewAccountMeta(args.Owner, true, true),
			solana.NewAccountMeta(solana.SystemProgramID, false, false),
		}
	case types.OperationDeposit:
		method = methodStake
		accounts = stakeAccounts(args)
	case types.OperationWithdraw:
		method = methodUnstake
		accounts = stakeAccounts(args)
	case types.OperationClaimReward:
		method = methodClaimReward
		accounts = stakeAccounts(args)
	default:
		return nil, fmt.Errorf("operation %s cannot be submitted", kind)
	}

	data := instructionData(method, kind, args.Lamports)
	return solana.NewInstruction(c.programID, accounts, data), nil
}

func stakeAccounts(args SubmitArgs) solana.AccountMetaSlice {
	return solana.AccountMetaSlice{
		solana.NewAccountMeta(args.StakeAddress, true, false),
		solana.NewAccountMeta(args.Owner, false, true),
	}
}

// instructionData encodes the anchor method discriminator plus the borsh
// encoded amount argument, when the method takes one.
func instructionData(method string, kind types.OperationKind, lamports uint64) []byte {
	discriminator := sha256.Sum256([]byte("global:" + method))

	data := make([]byte, 8, 16)
	copy(data, discriminator[:8])
	if kind.RequiresAmount() {
		data = binary.LittleEndian.AppendUint64(data, lamports)
	}
	return data
}

func recordNotFoundError(addr solana.PublicKey) *types.Error {
	return types.NewError(
		http.StatusNotFound,
		types.RecordNotFound,
		fmt.Errorf("no stake record at %s", addr),
	)
}

func clientCallWithRetry[T any](
	call retry.RetryableFuncWithData[T], cfg *config.LedgerConfig,
) (T, error) {
	result, err := retry.DoWithData(call, retry.Attempts(cfg.MaxRetryTimes), retry.Delay(cfg.RetryInterval), retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("failed to call the ledger RPC")
		}))

	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
