package services

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stakehub-io/stakehub-client/internal/observability/metrics"
)

// Notification is one transient user-facing status message.
type Notification struct {
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationCenter holds at most one live message. A new post replaces the
// previous one and restarts the expiry window; each message self-expires
// after the configured TTL measured from its own creation.
type NotificationCenter struct {
	mu      sync.Mutex
	ttl     time.Duration
	timer   *time.Timer
	gen     uint64
	current *Notification
}

func NewNotificationCenter(ttl time.Duration) *NotificationCenter {
	return &NotificationCenter{ttl: ttl}
}

// Post replaces the visible message and schedules its expiry. The previous
// expiry timer is cancelled so it cannot clear the newer message.
func (n *NotificationCenter) Post(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}

	n.gen++
	gen := n.gen
	n.current = &Notification{Message: message, CreatedAt: time.Now()}
	n.timer = time.AfterFunc(n.ttl, func() {
		n.expire(gen)
	})

	metrics.RecordNotificationPosted()
	log.Debug().Str("message", message).Msg("notification posted")
}

// expire clears the message only if it is still the one this timer was
// scheduled for. Stop cannot race a timer that already fired, so the
// generation check catches that window.
func (n *NotificationCenter) expire(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.gen != gen {
		return
	}
	n.current = nil
	n.timer = nil
}

// Current returns the live message, if any.
func (n *NotificationCenter) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}
