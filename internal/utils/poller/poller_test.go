package poller

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakehub-io/stakehub-client/internal/types"
)

func TestPoller(t *testing.T) {
	t.Run("keeps ticking past poll failures", func(t *testing.T) {
		var calls atomic.Int64
		p := NewPoller(time.Millisecond, func(ctx context.Context) *types.Error {
			if calls.Add(1) == 1 {
				return types.NewErrorWithMsg(http.StatusBadGateway, types.FetchFailed, "rpc down")
			}
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			p.Start(ctx)
			close(done)
		}()

		require.Eventually(t, func() bool {
			return calls.Load() >= 3
		}, time.Second, time.Millisecond)

		cancel()
		<-done
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		var calls atomic.Int64
		p := NewPoller(time.Millisecond, func(ctx context.Context) *types.Error {
			calls.Add(1)
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			p.Start(ctx)
			close(done)
		}()
		require.Eventually(t, func() bool {
			return calls.Load() >= 1
		}, time.Second, time.Millisecond)

		cancel()
		<-done

		settled := calls.Load()
		time.Sleep(10 * time.Millisecond)
		assert.Equal(t, settled, calls.Load())
	})
}
