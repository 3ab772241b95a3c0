package storage

import (
	"encoding/json"

	"github.com/julianstephens/planhub/internal/logger"
	"github.com/julianstephens/planhub/internal/store"
)

// Persister writes a whole collection to its slot every time the store
// reports a change. Failures are logged and dropped.
type Persister struct {
	provider    Provider
	store       *store.Store
	unsubscribe func()
}

// Attach subscribes a Persister to s. Call Detach to stop writing.
func Attach(p Provider, s *store.Store) *Persister {
	ps := &Persister{provider: p, store: s}
	ps.unsubscribe = s.Subscribe(ps.persist)
	return ps
}

func (ps *Persister) Detach() {
	if ps.unsubscribe != nil {
		ps.unsubscribe()
		ps.unsubscribe = nil
	}
}

func (ps *Persister) persist(c store.Collection) {
	blob, err := json.Marshal(ps.store.Snapshot(c))
	if err != nil {
		logger.Error("Failed to encode collection", "slot", c.Slot(), "error", err)
		return
	}
	if err := ps.provider.Save(c.Slot(), blob); err != nil {
		logger.Error("Failed to persist collection", "slot", c.Slot(), "error", err)
		return
	}
	logger.Debug("Persisted collection", "slot", c.Slot(), "bytes", len(blob))
}

// Flush writes every collection, regardless of whether it changed.
func (ps *Persister) Flush() {
	for _, c := range store.AllCollections() {
		ps.persist(c)
	}
}
