// Package scheduler mutates Todo entities: creation, completion, field
// updates, deletion and drag-and-drop rescheduling between calendar days.
package scheduler

import (
	"strings"

	"github.com/julianstephens/planhub/internal/constants"
	"github.com/julianstephens/planhub/internal/logger"
	"github.com/julianstephens/planhub/internal/models"
	"github.com/julianstephens/planhub/internal/store"
	"github.com/julianstephens/planhub/internal/utils"
)

type Controller struct {
	store *store.Store
}

func New(s *store.Store) *Controller {
	return &Controller{store: s}
}

// AddTodo creates a todo on date with the default priority, start time and
// duration. A blank title or a malformed date is a no-op and reports false.
func (c *Controller) AddTodo(title, date string) (models.Todo, bool) {
	return c.AddTodoWith(title, date, models.TodoPatch{})
}

// AddTodoWith is AddTodo with the valid fields of patch applied over the
// defaults before the todo is stored, so creation is a single write. The
// title and date always come from the arguments.
func (c *Controller) AddTodoWith(title, date string, patch models.TodoPatch) (models.Todo, bool) {
	if strings.TrimSpace(title) == "" {
		logger.Debug("Ignoring todo with empty title", "date", date)
		return models.Todo{}, false
	}
	if !utils.ValidateDateFormat(date) {
		logger.Debug("Ignoring todo with invalid date", "date", date)
		return models.Todo{}, false
	}

	todo := models.Todo{
		ID:        c.store.NextID(),
		Title:     title,
		Date:      date,
		Completed: false,
		Priority:  models.Priority(constants.DefaultPriority),
		StartTime: constants.DefaultStartTime,
		Duration:  constants.DefaultDurationMin,
	}
	patch.Title = nil
	patch.Date = nil
	apply(&todo, sanitize(todo.ID, patch))

	c.store.AppendTodo(todo)
	logger.Debug("Added todo", "id", todo.ID, "date", todo.Date)
	return todo, true
}

// ToggleTodo flips the completed flag. Unknown ids are ignored.
func (c *Controller) ToggleTodo(id int64) bool {
	return c.store.MutateTodo(id, func(t *models.Todo) {
		t.Completed = !t.Completed
	})
}

// UpdateTodo merges the set fields of patch into the todo. Fields that would
// break a Todo invariant are dropped; the rest still apply. It reports false
// when the id is unknown or nothing valid was left to apply.
func (c *Controller) UpdateTodo(id int64, patch models.TodoPatch) bool {
	patch = sanitize(id, patch)
	if patch.IsEmpty() {
		return false
	}
	return c.store.MutateTodo(id, func(t *models.Todo) {
		apply(t, patch)
	})
}

// DeleteTodo removes the todo. Deleting an absent id is a no-op.
func (c *Controller) DeleteTodo(id int64) bool {
	return c.store.RemoveTodo(id)
}

// RescheduleTodo moves a todo to another day. Only the date changes.
func (c *Controller) RescheduleTodo(id int64, date string) bool {
	return c.UpdateTodo(id, models.TodoPatch{Date: &date})
}

func apply(t *models.Todo, p models.TodoPatch) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.StartTime != nil {
		t.StartTime = *p.StartTime
	}
	if p.Duration != nil {
		t.Duration = *p.Duration
	}
}
