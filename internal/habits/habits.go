// Package habits tracks daily habits: creation, marking today as done and the
// completion count shown next to each habit.
package habits

import (
	"strings"

	"github.com/julianstephens/planhub/internal/logger"
	"github.com/julianstephens/planhub/internal/models"
	"github.com/julianstephens/planhub/internal/store"
	"github.com/julianstephens/planhub/internal/utils"
)

type Tracker struct {
	store *store.Store
	clock utils.Clock
}

func New(s *store.Store, clock utils.Clock) *Tracker {
	if clock == nil {
		clock = utils.SystemClock
	}
	return &Tracker{store: s, clock: clock}
}

// Today is the device-local date that ToggleToday acts on.
func (t *Tracker) Today() string {
	return utils.Today(t.clock)
}

// AddHabit creates a habit with no completed days. A blank name is a no-op.
func (t *Tracker) AddHabit(name string) (models.Habit, bool) {
	if strings.TrimSpace(name) == "" {
		logger.Debug("Ignoring habit with empty name")
		return models.Habit{}, false
	}

	habit := models.Habit{
		ID:             t.store.NextID(),
		Name:           name,
		CompletedDates: []string{},
	}
	t.store.AppendHabit(habit)
	return habit, true
}

// ToggleToday marks today done, or unmarks it if it was already marked.
func (t *Tracker) ToggleToday(id int64) bool {
	today := t.Today()
	return t.store.MutateHabit(id, func(h *models.Habit) {
		h.CompletedDates = toggleDate(h.CompletedDates, today)
	})
}

// DeleteHabit removes the habit and its history.
func (t *Tracker) DeleteHabit(id int64) bool {
	return t.store.RemoveHabit(id)
}

func toggleDate(dates []string, day string) []string {
	out := make([]string, 0, len(dates)+1)
	removed := false
	for _, d := range dates {
		if d == day {
			removed = true
			continue
		}
		out = append(out, d)
	}
	if !removed {
		out = append(out, day)
	}
	return out
}

// Streak is the number of days the habit was ever marked. It counts every
// completed date and does not look for gaps.
func Streak(h models.Habit) int {
	return len(h.CompletedDates)
}

// CompletedOn reports whether the habit is marked for day.
func CompletedOn(h models.Habit, day string) bool {
	return h.HasDate(day)
}
