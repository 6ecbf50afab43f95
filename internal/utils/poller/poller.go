package poller

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stakehub-io/stakehub-client/internal/types"
)

// Poller runs one poll method on a fixed interval until the context it was
// started with is cancelled. Poll failures are logged and the ticking
// continues; a flaky endpoint must not stop the loop.
type Poller struct {
	interval   time.Duration
	pollMethod func(ctx context.Context) *types.Error
}

func NewPoller(interval time.Duration, pollMethod func(ctx context.Context) *types.Error) *Poller {
	return &Poller{
		interval:   interval,
		pollMethod: pollMethod,
	}
}

func (p *Poller) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", p.interval).Msg("starting background reconciliation poller")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("background reconciliation poller stopped")
			return
		case <-ticker.C:
			if err := p.pollMethod(ctx); err != nil {
				log.Error().Err(err).Msg("background reconciliation poll failed")
			}
		}
	}
}
