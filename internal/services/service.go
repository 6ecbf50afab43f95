package services

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/stakehub-io/stakehub-client/internal/clients/ledgerclient"
	"github.com/stakehub-io/stakehub-client/internal/clients/walletclient"
	"github.com/stakehub-io/stakehub-client/internal/config"
	"github.com/stakehub-io/stakehub-client/internal/session"
	"github.com/stakehub-io/stakehub-client/internal/types"
)

// Service owns the client-side state of one user's stake position: the
// session identity, the single-flight pending operation slot, the last
// fetched record snapshot, the bounded activity log and the notification
// center. Each piece has exactly one writer; cross-component effects go
// through the methods here.
type Service struct {
	cfg    *config.Config
	ledger ledgerclient.LedgerClient
	wallet walletclient.WalletClient

	// mu guards sess and pending
	mu      sync.Mutex
	sess    *session.Session
	pending *PendingOperation

	// snapMu guards snapshot and snapVersion. The snapshot is only ever
	// replaced wholesale; snapVersion counts writes so a slow background
	// fetch can detect that newer data landed while it was in flight.
	snapMu      sync.RWMutex
	snapshot    *ledgerclient.StakeRecord
	snapVersion uint64

	history  *HistoryLog
	notifier *NotificationCenter
}

func NewService(
	cfg *config.Config,
	ledger ledgerclient.LedgerClient,
	wallet walletclient.WalletClient,
) *Service {
	return &Service{
		cfg:      cfg,
		ledger:   ledger,
		wallet:   wallet,
		history:  NewHistoryLog(ledger),
		notifier: NewNotificationCenter(cfg.Notifications.TTL),
	}
}

// Connect establishes the session, derives the stake record address and
// performs the initial history pull and reconciliation. Re-connecting an
// established session is not supported.
func (s *Service) Connect(ctx context.Context) *types.Error {
	s.mu.Lock()
	if s.sess != nil {
		s.mu.Unlock()
		return types.NewErrorWithMsg(
			http.StatusConflict,
			types.InternalServiceError,
			"session already established",
		)
	}
	s.mu.Unlock()

	sess, err := session.Establish(ctx, s.wallet)
	if err != nil {
		s.notifier.Post("Connect error ❌")
		return err
	}

	s.mu.Lock()
	if s.sess != nil {
		s.mu.Unlock()
		return types.NewErrorWithMsg(
			http.StatusConflict,
			types.InternalServiceError,
			"session already established",
		)
	}
	s.sess = sess
	s.mu.Unlock()

	// initial history pull; on failure the empty log is retained and the
	// user can retry via manual refresh
	if herr := s.history.Initialize(ctx, sess.StakeAddress); herr != nil {
		log.Warn().Err(herr).Msg("initial history pull failed")
		s.notifier.Post(msgFetchError)
	}

	// a record that does not exist yet is expected before account setup;
	// refresh handles that without clearing anything
	if rerr := s.refresh(ctx, false); rerr != nil {
		log.Warn().Err(rerr).Msg("initial reconciliation failed")
	}

	s.notifier.Post(msgWalletConnected)
	return nil
}

// Session returns the established session, if any.
func (s *Service) Session() (*session.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess, s.sess != nil
}

// History returns the current activity log, newest first.
func (s *Service) History() []HistoryEntry {
	return s.history.Entries()
}

// Notification returns the currently visible message, if any.
func (s *Service) Notification() (Notification, bool) {
	return s.notifier.Current()
}

func (s *Service) currentSession() (*session.Session, *types.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return nil, types.NewErrorWithMsg(
			http.StatusPreconditionFailed,
			types.WalletUnavailable,
			"no session established, connect a wallet first",
		)
	}
	return s.sess, nil
}
