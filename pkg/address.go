package pkg

import (
	"github.com/gagliardetto/solana-go"
)

// StakeProgramID is the on-chain program that owns every stake record.
var StakeProgramID = solana.MustPublicKeyFromBase58("2wapyHPxoMmEgDT9RXWXrPARHbgAwVskHtu9LDjhMsT5")

// stakeSeed is the fixed PDA seed prefix used by the program.
const stakeSeed = "stake"

// DeriveStakeAddress computes the deterministic stake record address for the
// given owner. Derivation is pure and must not fail for a well-formed owner
// key; a failure here indicates a broken program id, not a runtime condition.
func DeriveStakeAddress(owner solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(stakeSeed), owner.Bytes()},
		StakeProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return addr, nil
}
