package scheduler

import (
	"github.com/google/uuid"

	"github.com/julianstephens/planhub/internal/logger"
)

// Token identifies one drag gesture.
type Token = uuid.UUID

// DragSession is the transient "task in hand" state of the interaction layer.
// At most one todo is dragged at a time. It is not part of the entity store.
type DragSession struct {
	active bool
	todoID int64
	token  Token
}

// Start picks up a todo, replacing any drag already in flight.
func (d *DragSession) Start(todoID int64) Token {
	if d.active {
		logger.Debug("Replacing in-flight drag", "token", d.token, "id", d.todoID)
	}
	d.active = true
	d.todoID = todoID
	d.token = uuid.New()
	logger.Debug("Drag started", "token", d.token, "id", todoID)
	return d.token
}

// Active reports the dragged todo, if any.
func (d *DragSession) Active() (int64, Token, bool) {
	return d.todoID, d.token, d.active
}

// Drop reschedules the dragged todo onto date. The session is cleared
// whether or not the drop changed anything; with no active drag it is a no-op.
func (d *DragSession) Drop(c *Controller, date string) bool {
	if !d.active {
		return false
	}
	id, token := d.todoID, d.token
	d.Cancel()

	moved := c.RescheduleTodo(id, date)
	logger.Debug("Drag dropped", "token", token, "id", id, "date", date, "moved", moved)
	return moved
}

// Cancel clears the session without touching any todo.
func (d *DragSession) Cancel() {
	d.active = false
	d.todoID = 0
	d.token = uuid.Nil
}
