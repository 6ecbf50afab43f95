package types

// Enum values for the user-initiated operation kinds
type OperationKind string

const (
	OperationSetupAccount  OperationKind = "SETUP_ACCOUNT"
	OperationDeposit       OperationKind = "DEPOSIT"
	OperationWithdraw      OperationKind = "WITHDRAW"
	OperationClaimReward   OperationKind = "CLAIM_REWARD"
	OperationManualRefresh OperationKind = "MANUAL_REFRESH"
)

func (k OperationKind) String() string {
	return string(k)
}

// RequiresAmount reports whether the operation takes a user-entered amount.
func (k OperationKind) RequiresAmount() bool {
	return k == OperationDeposit || k == OperationWithdraw
}

// HistoryKind labels an activity log entry by the operation that produced it,
// or by external provenance for entries observed on the ledger.
type HistoryKind string

const (
	HistorySetupAccount     HistoryKind = "SETUP_ACCOUNT"
	HistoryDeposit          HistoryKind = "DEPOSIT"
	HistoryWithdraw         HistoryKind = "WITHDRAW"
	HistoryClaimReward      HistoryKind = "CLAIM_REWARD"
	HistoryExternalActivity HistoryKind = "EXTERNAL_ACTIVITY"
)

func (k HistoryKind) String() string {
	return string(k)
}

// HistoryKind maps a confirmed operation to its optimistic log label.
func (k OperationKind) HistoryKind() HistoryKind {
	switch k {
	case OperationSetupAccount:
		return HistorySetupAccount
	case OperationDeposit:
		return HistoryDeposit
	case OperationWithdraw:
		return HistoryWithdraw
	case OperationClaimReward:
		return HistoryClaimReward
	default:
		return HistoryExternalActivity
	}
}
