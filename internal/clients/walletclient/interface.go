package walletclient

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/stakehub-io/stakehub-client/internal/types"
)

// Authorizer is the opaque capability that signs submissions on behalf of the
// user. The core never inspects it beyond calling Sign.
type Authorizer interface {
	Sign(tx *solana.Transaction) error
}

// Identity is the result of a successful wallet handshake.
type Identity struct {
	UserAddress solana.PublicKey
	Authorizer  Authorizer
}

type WalletClient interface {
	// Connect performs the wallet handshake. It fails with WalletUnavailable
	// when no wallet capability can be reached.
	Connect(ctx context.Context) (*Identity, *types.Error)
}
