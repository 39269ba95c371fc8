package service

import (
	"sync"

	"github.com/google/uuid"
)

// GerenteLocks serializes ledger mutations per gerente. Liability is computed
// over a gerente's full entry set, so two writers for the same gerente must
// never interleave; writers for different gerentes proceed independently.
// Entries are never evicted — the gerente population is small and bounded.
type GerenteLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewGerenteLocks() *GerenteLocks {
	return &GerenteLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Lock acquires the gerente's mutex and returns the matching unlock.
// Usage: defer locks.Lock(id)()
func (g *GerenteLocks) Lock(id uuid.UUID) func() {
	g.mu.Lock()
	m, ok := g.locks[id]
	if !ok {
		m = &sync.Mutex{}
		g.locks[id] = m
	}
	g.mu.Unlock()

	m.Lock()
	return m.Unlock
}
