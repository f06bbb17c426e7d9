package helpers

import "sync"

// OrgLocker hands out one mutex per organization so that order creation for a
// tenant runs its read-increment-write numbering sequence serially in this
// process. The storage-level unique index stays the backstop for multi-process
// deployments.
type OrgLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewOrgLocker() *OrgLocker {
	return &OrgLocker{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for orgID and returns its unlock function.
func (l *OrgLocker) Lock(orgID string) func() {
	l.mu.Lock()
	m, ok := l.locks[orgID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[orgID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
