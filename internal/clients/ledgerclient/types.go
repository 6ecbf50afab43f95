package ledgerclient

import (
	"fmt"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Enum values for a confirmation check result
type ConfirmationStatus string

const (
	StatusConfirmed    ConfirmationStatus = "CONFIRMED"
	StatusStillPending ConfirmationStatus = "STILL_PENDING"
	StatusRejected     ConfirmationStatus = "REJECTED"
)

func (s ConfirmationStatus) String() string {
	return string(s)
}

// PendingReceipt identifies a submitted but not yet confirmed operation.
type PendingReceipt struct {
	Signature solana.Signature
}

// SubmitArgs carries the addresses and the amount for one submission.
// Lamports is ignored for operations that take no amount.
type SubmitArgs struct {
	Owner        solana.PublicKey
	StakeAddress solana.PublicKey
	Lamports     uint64
}

// StakeRecord mirrors the on-chain stake account layout. All monetary fields
// are lamports; conversion to display units happens at the presentation
// boundary, never here.
// Reference field order matches the program's account struct.
type StakeRecord struct {
	Owner              solana.PublicKey
	Amount             uint64
	Reward             uint64
	ClaimedReward      uint64
	LastStakeTime      int64
	TotalDeposited     uint64
	TotalWithdrawn     uint64
	TotalRewardsEarned uint64
}

// anchor account data starts with an 8-byte discriminator
const accountDiscriminatorLen = 8

func decodeStakeRecord(data []byte) (*StakeRecord, error) {
	if len(data) <= accountDiscriminatorLen {
		return nil, fmt.Errorf("account data too short: %d bytes", len(data))
	}

	var record StakeRecord
	if err := bin.NewBorshDecoder(data[accountDiscriminatorLen:]).Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode stake record: %w", err)
	}
	return &record, nil
}

// RawActivity is one externally observed activity entry for the record
// address. Signature doubles as the external reference usable on a public
// explorer.
type RawActivity struct {
	Signature solana.Signature
	Slot      uint64
	BlockTime *time.Time
	Memo      string
	Failed    bool
}
