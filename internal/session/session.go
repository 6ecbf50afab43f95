package session

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog/log"

	"github.com/stakehub-io/stakehub-client/internal/clients/walletclient"
	"github.com/stakehub-io/stakehub-client/internal/types"
	"github.com/stakehub-io/stakehub-client/pkg"
)

// Session holds the authenticated user identity and the derived stake record
// address. It is immutable once established and shared read-only by every
// component; exactly one exists per process lifetime.
type Session struct {
	UserAddress  solana.PublicKey
	StakeAddress solana.PublicKey
	Authorizer   walletclient.Authorizer
}

// Establish performs the wallet handshake and derives the stake record
// address for the connected user. The authorizer is held for the session
// only, never persisted.
func Establish(ctx context.Context, wallet walletclient.WalletClient) (*Session, *types.Error) {
	identity, err := wallet.Connect(ctx)
	if err != nil {
		return nil, err
	}

	stakeAddr, derr := pkg.DeriveStakeAddress(identity.UserAddress)
	if derr != nil {
		// derivation cannot fail for a well-formed key; treat as fatal config
		return nil, types.NewInternalServiceError(derr)
	}

	log.Info().
		Stringer("user_address", identity.UserAddress).
		Stringer("stake_address", stakeAddr).
		Msg("session established")

	return &Session{
		UserAddress:  identity.UserAddress,
		StakeAddress: stakeAddr,
		Authorizer:   identity.Authorizer,
	}, nil
}
