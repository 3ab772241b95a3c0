package storage

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/planhub/internal/logger"
	"github.com/julianstephens/planhub/internal/models"
	"github.com/julianstephens/planhub/internal/store"
)

// Hydrate loads every slot from p into s. A slot that is absent, unreadable
// or malformed becomes an empty collection; the others are unaffected.
func Hydrate(p Provider, s *store.Store) {
	for _, c := range store.AllCollections() {
		blob, ok, err := p.Load(c.Slot())
		if err != nil {
			logger.Warn("Failed to read slot, starting empty", "slot", c.Slot(), "error", err)
			blob, ok = nil, false
		}
		if !ok {
			ApplySlot(s, c, nil)
			continue
		}
		if err := ApplySlot(s, c, blob); err != nil {
			logger.Warn("Malformed slot, starting empty", "slot", c.Slot(), "error", err)
		}
	}
}

// ApplySlot decodes blob and replaces collection c in s. An empty or
// undecodable blob leaves c empty; the decode error is returned.
func ApplySlot(s *store.Store, c store.Collection, blob []byte) error {
	var err error
	switch c {
	case store.Todos:
		todos := []models.Todo{}
		if len(blob) > 0 {
			if err = json.Unmarshal(blob, &todos); err != nil {
				todos = []models.Todo{}
			}
		}
		s.ReplaceTodos(todos)
	case store.Habits:
		habits := []models.Habit{}
		if len(blob) > 0 {
			if err = json.Unmarshal(blob, &habits); err != nil {
				habits = []models.Habit{}
			}
		}
		for i := range habits {
			if habits[i].CompletedDates == nil {
				habits[i].CompletedDates = []string{}
			}
		}
		s.ReplaceHabits(habits)
	case store.Resources:
		resources := []models.Resource{}
		if len(blob) > 0 {
			if err = json.Unmarshal(blob, &resources); err != nil {
				resources = []models.Resource{}
			}
		}
		s.ReplaceResources(resources)
	default:
		return fmt.Errorf("unknown collection %q", c)
	}
	return err
}
