package services

import (
	"context"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/stakehub-io/stakehub-client/internal/clients/ledgerclient"
	"github.com/stakehub-io/stakehub-client/internal/types"
)

// historyLimit is a hard bound on the activity log, not a display concern.
const historyLimit = 20

// HistoryEntry is one activity log row, newest first in the log. Two
// provenances coexist: externally observed entries carry an ExternalRef
// (ledger signature, usable on a public explorer) and no amount; optimistic
// entries appended on confirmed operations carry the amount and no
// ExternalRef. The two are intentionally not merged or de-duplicated.
type HistoryEntry struct {
	Kind        types.HistoryKind `json:"kind"`
	Amount      string            `json:"amount,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
	ExternalRef string            `json:"external_ref,omitempty"`
}

type HistoryLog struct {
	mu      sync.Mutex
	ledger  ledgerclient.LedgerClient
	entries []HistoryEntry
}

func NewHistoryLog(ledger ledgerclient.LedgerClient) *HistoryLog {
	return &HistoryLog{ledger: ledger}
}

// Initialize pulls the most recent externally observed activity for the
// record address and replaces the log wholesale. On failure the prior log is
// retained.
func (l *HistoryLog) Initialize(ctx context.Context, addr solana.PublicKey) *types.Error {
	activities, err := l.ledger.FetchRecentActivity(ctx, addr, historyLimit)
	if err != nil {
		return err
	}

	entries := make([]HistoryEntry, 0, len(activities))
	for _, activity := range activities {
		entry := HistoryEntry{
			Kind:        types.HistoryExternalActivity,
			ExternalRef: activity.Signature.String(),
		}
		if activity.BlockTime != nil {
			entry.Timestamp = *activity.BlockTime
		}
		entries = append(entries, entry)
	}
	if len(entries) > historyLimit {
		entries = entries[:historyLimit]
	}

	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()
	return nil
}

// Append inserts the entry at the front and truncates to the bound.
func (l *HistoryLog) Append(entry HistoryEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append([]HistoryEntry{entry}, l.entries...)
	if len(l.entries) > historyLimit {
		l.entries = l.entries[:historyLimit]
	}
}

// Entries returns a copy of the log, newest first.
func (l *HistoryLog) Entries() []HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := make([]HistoryEntry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

func (l *HistoryLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
