package walletclient

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog/log"

	"github.com/stakehub-io/stakehub-client/internal/config"
	"github.com/stakehub-io/stakehub-client/internal/types"
)

// KeypairWallet is a wallet capability backed by a local solana-keygen
// keypair file. The private key is loaded on Connect and held only for the
// session, never persisted anywhere else.
type KeypairWallet struct {
	cfg *config.WalletConfig
}

func NewKeypairWallet(cfg *config.WalletConfig) WalletClient {
	return &KeypairWallet{cfg: cfg}
}

func (w *KeypairWallet) Connect(ctx context.Context) (*Identity, *types.Error) {
	if _, err := os.Stat(w.cfg.KeypairPath); err != nil {
		return nil, types.NewError(
			http.StatusServiceUnavailable,
			types.WalletUnavailable,
			fmt.Errorf("wallet keypair not found at %s: %w", w.cfg.KeypairPath, err),
		)
	}

	key, err := solana.PrivateKeyFromSolanaKeygenFile(w.cfg.KeypairPath)
	if err != nil {
		return nil, types.NewError(
			http.StatusServiceUnavailable,
			types.WalletUnavailable,
			fmt.Errorf("failed to load wallet keypair: %w", err),
		)
	}

	log.Info().Stringer("user_address", key.PublicKey()).Msg("wallet connected")

	return &Identity{
		UserAddress: key.PublicKey(),
		Authorizer:  &keypairAuthorizer{key: key},
	}, nil
}

type keypairAuthorizer struct {
	key solana.PrivateKey
}

func (a *keypairAuthorizer) Sign(tx *solana.Transaction) error {
	_, err := tx.Sign(func(pub solana.PublicKey) *solana.PrivateKey {
		if pub.Equals(a.key.PublicKey()) {
			return &a.key
		}
		return nil
	})
	return err
}
