// Package tracking implements the client half of the dashboard sync
// protocol: a fixed-interval poller over the read endpoints and a
// device-scoped store that lets a guest's device reattach to its in-flight
// order across page reloads, keyed by the table's public access token.
package tracking

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"go-restaurant-operations/models"
)

const defaultRetention = time.Hour

// OrderRecord is the persisted snapshot of the most recently placed order
// for one table.
type OrderRecord struct {
	Order_id     string             `json:"order_id"`
	Order_number int64              `json:"order_number"`
	Total        int64              `json:"total"`
	Status       models.OrderStatus `json:"status"`
	Terminal_at  *time.Time         `json:"terminal_at,omitempty"`
}

// RecoveryStore keeps one OrderRecord per table access token. Records are
// reconciled, not overwritten, on each poll, and a record whose order has
// reached a terminal status is kept for the retention window so the device
// can still show an order-complete state.
type RecoveryStore struct {
	mu        sync.RWMutex
	path      string // empty keeps records in memory only
	retention time.Duration
	now       func() time.Time
	records   map[string]OrderRecord
}

// NewRecoveryStore loads any records persisted at path; an empty path keeps
// the store memory-only.
func NewRecoveryStore(path string) *RecoveryStore {
	s := &RecoveryStore{
		path:      path,
		retention: defaultRetention,
		now:       time.Now,
		records:   make(map[string]OrderRecord),
	}
	s.load()
	return s
}

// Remember stores the record for token, replacing any previous one: a table
// tracks only its most recently placed order.
func (s *RecoveryStore) Remember(token string, rec OrderRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if models.IsTerminalStatus(rec.Status) && rec.Terminal_at == nil {
		now := s.now()
		rec.Terminal_at = &now
	}
	s.records[token] = rec
	s.persistLocked()
}

// Lookup returns the live record for token. Records past their retention
// window are swept on the way.
func (s *RecoveryStore) Lookup(token string) (OrderRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	rec, ok := s.records[token]
	return rec, ok
}

// Reconcile folds a freshly polled status into the stored record. Only the
// status (and the terminal timestamp, once) changes; identity, number and
// total stay as placed. Returns the updated record, or false when no record
// is held for token.
func (s *RecoveryStore) Reconcile(token string, status models.OrderStatus) (OrderRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	rec, ok := s.records[token]
	if !ok {
		return OrderRecord{}, false
	}
	rec.Status = status
	if models.IsTerminalStatus(status) && rec.Terminal_at == nil {
		now := s.now()
		rec.Terminal_at = &now
	}
	s.records[token] = rec
	s.persistLocked()
	return rec, true
}

func (s *RecoveryStore) Forget(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, token)
	s.persistLocked()
}

// sweepLocked drops records whose order has been terminal for longer than
// the retention window.
func (s *RecoveryStore) sweepLocked() {
	cutoff := s.now().Add(-s.retention)
	dirty := false
	for token, rec := range s.records {
		if rec.Terminal_at != nil && rec.Terminal_at.Before(cutoff) {
			delete(s.records, token)
			dirty = true
		}
	}
	if dirty {
		s.persistLocked()
	}
}

func (s *RecoveryStore) load() {
	if s.path == "" {
		return
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var records map[string]OrderRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return
	}
	s.records = records
}

// persistLocked writes the store to disk best-effort; a failed write leaves
// the in-memory state authoritative until the next one.
func (s *RecoveryStore) persistLocked() {
	if s.path == "" {
		return
	}
	data, err := json.Marshal(s.records)
	if err != nil {
		return
	}
	_ = os.WriteFile(s.path, data, 0o600)
}
