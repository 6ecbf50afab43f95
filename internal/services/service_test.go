package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakehub-io/stakehub-client/internal/clients/ledgerclient"
	"github.com/stakehub-io/stakehub-client/internal/clients/walletclient"
	"github.com/stakehub-io/stakehub-client/internal/types"
	"github.com/stakehub-io/stakehub-client/pkg"
	"github.com/stakehub-io/stakehub-client/testutil"
)

func TestConnect(t *testing.T) {
	ctx := context.Background()

	t.Run("establishes session, pulls history and reconciles", func(t *testing.T) {
		user := testutil.RandomPublicKey()
		now := time.Now()
		ledger := &fakeLedger{
			record: testRecord(user),
			activities: []ledgerclient.RawActivity{
				{Signature: testutil.RandomSignature(), BlockTime: &now},
				{Signature: testutil.RandomSignature(), BlockTime: &now},
			},
		}
		svc := NewService(testConfig(), ledger, &fakeWallet{
			identity: &walletclient.Identity{UserAddress: user, Authorizer: nopAuthorizer{}},
		})

		require.Nil(t, svc.Connect(ctx))

		sess, ok := svc.Session()
		require.True(t, ok)
		assert.Equal(t, user, sess.UserAddress)
		expected, err := pkg.DeriveStakeAddress(user)
		require.NoError(t, err)
		assert.Equal(t, expected, sess.StakeAddress)

		assert.Len(t, svc.History(), 2)
		_, ok = svc.Position()
		assert.True(t, ok)

		current, ok := svc.Notification()
		require.True(t, ok)
		assert.Equal(t, "Wallet connected ✅", current.Message)

		_, pending := svc.Pending()
		assert.False(t, pending)
	})

	t.Run("wallet unavailable is fatal for the session", func(t *testing.T) {
		svc := NewService(testConfig(), &fakeLedger{}, &fakeWallet{
			err: types.NewErrorWithMsg(http.StatusServiceUnavailable, types.WalletUnavailable, "no wallet"),
		})

		err := svc.Connect(ctx)
		require.NotNil(t, err)
		assert.Equal(t, types.WalletUnavailable, err.ErrorCode)

		_, ok := svc.Session()
		assert.False(t, ok)
	})

	t.Run("re-establishing a session is not supported", func(t *testing.T) {
		svc := connectedService(t, &fakeLedger{})

		err := svc.Connect(ctx)
		require.NotNil(t, err)
		assert.Equal(t, http.StatusConflict, err.StatusCode)
	})

	t.Run("missing record on first connect is tolerated", func(t *testing.T) {
		user := testutil.RandomPublicKey()
		ledger := &fakeLedger{
			recordErr: types.NewErrorWithMsg(http.StatusNotFound, types.RecordNotFound, "no record"),
		}
		svc := NewService(testConfig(), ledger, &fakeWallet{
			identity: &walletclient.Identity{UserAddress: user, Authorizer: nopAuthorizer{}},
		})

		require.Nil(t, svc.Connect(ctx))
		_, ok := svc.Position()
		assert.False(t, ok)
	})
}
