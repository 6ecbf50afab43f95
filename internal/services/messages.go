package services

import (
	"fmt"

	"github.com/stakehub-io/stakehub-client/internal/types"
)

const (
	msgWalletConnected = "Wallet connected ✅"
	msgDataFetched     = "Data Fetched ✅"
	msgFetchError      = "Fetch error ❌"
	msgNoDataYet       = "No stake data yet. Set up your account first"
)

func successMessage(kind types.OperationKind) string {
	switch kind {
	case types.OperationSetupAccount:
		return "Account Setup ✅"
	case types.OperationDeposit:
		return "Staked ✅"
	case types.OperationWithdraw:
		return "Unstaked ✅"
	case types.OperationClaimReward:
		return "Reward Claimed ✅"
	default:
		return msgDataFetched
	}
}

func failureMessage(kind types.OperationKind) string {
	switch kind {
	case types.OperationSetupAccount:
		return "Account setup error ❌"
	case types.OperationDeposit:
		return "Stake error ❌"
	case types.OperationWithdraw:
		return "Unstake error ❌"
	case types.OperationClaimReward:
		return "Claim error ❌"
	default:
		return msgFetchError
	}
}

// ambiguousMessage is deliberately distinct from both success and failure:
// the operation may have landed, but no confirmation was observed.
func ambiguousMessage(kind types.OperationKind) string {
	var verb string
	switch kind {
	case types.OperationSetupAccount:
		verb = "Account setup"
	case types.OperationDeposit:
		verb = "Stake"
	case types.OperationWithdraw:
		verb = "Unstake"
	case types.OperationClaimReward:
		verb = "Claim"
	default:
		verb = "Operation"
	}
	return fmt.Sprintf("%s may have succeeded (unconfirmed) ⚠️", verb)
}
