package testutil

import (
	"github.com/brianvoe/gofakeit/v6"
	"github.com/gagliardetto/solana-go"
)

// RandomPublicKey generates a fresh ed25519 public key.
func RandomPublicKey() solana.PublicKey {
	return solana.NewWallet().PublicKey()
}

// RandomSignature generates a random transaction signature.
func RandomSignature() solana.Signature {
	var sig solana.Signature
	copy(sig[:], []byte(gofakeit.LetterN(64)))
	return sig
}

// RandomLamports generates a plausible non-zero lamport amount.
func RandomLamports() uint64 {
	return uint64(gofakeit.UintRange(1, 1_000_000_000_000))
}
