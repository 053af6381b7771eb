package tracker

import (
	"log/slog"
	"sync"
	"time"

	"github.com/armax-ru/umka-online-gateway/internal/registry"
)

// PendingRegistration tracks one accepted document until its callback or
// poll settles it.
type PendingRegistration struct {
	ExternalUUID string
	SubmittedAt  time.Time
	ResolvedAt   *time.Time
	Outcome      registry.Outcome
}

// Tracker remembers registrations awaiting their asynchronous outcome.
// The callback handler resolves entries; the host decides when to re-poll,
// so no scheduling happens here.
type Tracker struct {
	mu      sync.RWMutex
	pending map[string]*PendingRegistration
	logger  *slog.Logger
}

func New(logger *slog.Logger) *Tracker {
	return &Tracker{
		pending: make(map[string]*PendingRegistration),
		logger:  logger,
	}
}

// Add records an accepted registration waiting for its outcome.
func (t *Tracker) Add(externalUUID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.pending[externalUUID] = &PendingRegistration{
		ExternalUUID: externalUUID,
		SubmittedAt:  time.Now(),
		Outcome:      registry.Pending(externalUUID),
	}

	t.logger.Debug("awaiting registration outcome", "uuid", externalUUID)
}

// Resolve applies a settled outcome. Unknown uuids are reported false so
// the callback handler can answer accordingly.
func (t *Tracker) Resolve(externalUUID string, outcome registry.Outcome) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, exists := t.pending[externalUUID]
	if !exists {
		t.logger.Warn("outcome for unknown registration", "uuid", externalUUID)
		return false
	}

	now := time.Now()
	entry.ResolvedAt = &now
	entry.Outcome = outcome

	t.logger.Info("registration settled", "uuid", externalUUID, "state", outcome.State)
	return true
}

// Get returns the tracked registration, if any.
func (t *Tracker) Get(externalUUID string) (PendingRegistration, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entry, exists := t.pending[externalUUID]
	if !exists {
		return PendingRegistration{}, false
	}
	return *entry, true
}

// CleanupExpired drops entries older than maxAge and returns how many were
// removed.
func (t *Tracker) CleanupExpired(maxAge time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for uuid, entry := range t.pending {
		if entry.SubmittedAt.Before(cutoff) {
			delete(t.pending, uuid)
			removed++
		}
	}

	if removed > 0 {
		t.logger.Debug("expired registrations removed", "count", removed)
	}
	return removed
}
