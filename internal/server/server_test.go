package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakehub-io/stakehub-client/internal/clients/ledgerclient"
	"github.com/stakehub-io/stakehub-client/internal/clients/walletclient"
	"github.com/stakehub-io/stakehub-client/internal/config"
	"github.com/stakehub-io/stakehub-client/internal/services"
	"github.com/stakehub-io/stakehub-client/internal/types"
)

type stubLedger struct{}

func (stubLedger) FetchRecord(ctx context.Context, addr solana.PublicKey) (*ledgerclient.StakeRecord, *types.Error) {
	return nil, types.NewErrorWithMsg(http.StatusNotFound, types.RecordNotFound, "no record")
}

func (stubLedger) FetchRecentActivity(ctx context.Context, addr solana.PublicKey, limit int) ([]ledgerclient.RawActivity, *types.Error) {
	return nil, nil
}

func (stubLedger) Submit(ctx context.Context, kind types.OperationKind, args ledgerclient.SubmitArgs, auth walletclient.Authorizer) (ledgerclient.PendingReceipt, *types.Error) {
	return ledgerclient.PendingReceipt{}, nil
}

func (stubLedger) Confirm(ctx context.Context, receipt ledgerclient.PendingReceipt) (ledgerclient.ConfirmationStatus, *types.Error) {
	return ledgerclient.StatusConfirmed, nil
}

type stubWallet struct{}

func (stubWallet) Connect(ctx context.Context) (*walletclient.Identity, *types.Error) {
	return &walletclient.Identity{
		UserAddress: solana.NewWallet().PublicKey(),
		Authorizer:  stubAuthorizer{},
	}, nil
}

type stubAuthorizer struct{}

func (stubAuthorizer) Sign(tx *solana.Transaction) error { return nil }

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		Ledger: config.LedgerConfig{
			RPCAddr:             "https://api.devnet.solana.com",
			Timeout:             time.Second,
			MaxRetryTimes:       1,
			RetryInterval:       time.Millisecond,
			ConfirmMaxAttempts:  1,
			ConfirmPollInterval: time.Millisecond,
		},
		Notifications: config.NotificationsConfig{TTL: time.Minute},
	}
	svc := services.NewService(cfg, stubLedger{}, stubWallet{})
	return New(&config.ServerConfig{Host: "127.0.0.1", Port: 8092}, svc)
}

func TestHandlers(t *testing.T) {
	srv := newTestServer(t)

	t.Run("healthcheck", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.handleHealthcheck(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("position absent before first fetch", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.handlePosition(rec, httptest.NewRequest(http.MethodGet, "/position", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), types.RecordNotFound.String())
	})

	t.Run("deposit without a session maps the typed error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/deposit", strings.NewReader(`{"amount":"2.5"}`))
		srv.handleDeposit(rec, req)
		assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
		assert.Contains(t, rec.Body.String(), types.WalletUnavailable.String())
	})

	t.Run("invalid amount maps to a 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/connect", nil)
		srv.handleConnect(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodPost, "/deposit", strings.NewReader(`{"amount":"abc"}`))
		srv.handleDeposit(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), types.InvalidAmount.String())
	})
}
