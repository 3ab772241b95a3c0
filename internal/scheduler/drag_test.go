package scheduler

import (
	"testing"

	"github.com/google/uuid"
)

func TestDragDropReschedules(t *testing.T) {
	ctrl, s, _ := setupController(t)
	todo, _ := ctrl.AddTodo("Write report", "2024-03-15")

	var drag DragSession
	token := drag.Start(todo.ID)
	if token == uuid.Nil {
		t.Fatal("Start() returned nil token")
	}
	if id, active, ok := drag.Active(); !ok || id != todo.ID || active != token {
		t.Fatalf("Active() = %d, %v, %v", id, active, ok)
	}

	if !drag.Drop(ctrl, "2024-03-18") {
		t.Fatal("Drop() = false")
	}
	if got, _ := s.Todo(todo.ID); got.Date != "2024-03-18" {
		t.Errorf("date after drop = %q", got.Date)
	}
	if _, _, ok := drag.Active(); ok {
		t.Error("drag still active after drop")
	}
}

func TestDropWithoutDragIsNoop(t *testing.T) {
	ctrl, s, saves := setupController(t)
	ctrl.AddTodo("Write report", "2024-03-15")
	*saves = 0

	var drag DragSession
	if drag.Drop(ctrl, "2024-03-18") {
		t.Error("Drop() without drag = true")
	}
	if got := s.Todos()[0]; got.Date != "2024-03-15" {
		t.Errorf("todo moved without drag: %+v", got)
	}
	if *saves != 0 {
		t.Errorf("saves = %d, want 0", *saves)
	}
}

func TestStartReplacesInFlightDrag(t *testing.T) {
	ctrl, s, _ := setupController(t)
	first, _ := ctrl.AddTodo("first", "2024-03-15")
	second, _ := ctrl.AddTodo("second", "2024-03-15")

	var drag DragSession
	oldToken := drag.Start(first.ID)
	newToken := drag.Start(second.ID)
	if oldToken == newToken {
		t.Error("replacement drag reused token")
	}

	drag.Drop(ctrl, "2024-03-20")

	if got, _ := s.Todo(first.ID); got.Date != "2024-03-15" {
		t.Errorf("replaced drag still moved first todo: %+v", got)
	}
	if got, _ := s.Todo(second.ID); got.Date != "2024-03-20" {
		t.Errorf("second todo not moved: %+v", got)
	}
}

func TestDropClearsStateOnInvalidTarget(t *testing.T) {
	ctrl, s, _ := setupController(t)
	todo, _ := ctrl.AddTodo("Write report", "2024-03-15")

	var drag DragSession
	drag.Start(todo.ID)
	if drag.Drop(ctrl, "not-a-day") {
		t.Error("Drop() onto invalid target = true")
	}
	if _, _, ok := drag.Active(); ok {
		t.Error("drag not cleared after invalid drop")
	}

	// A later drop must not reuse the stale drag.
	if drag.Drop(ctrl, "2024-03-19") {
		t.Error("second Drop() reused stale drag")
	}
	if got, _ := s.Todo(todo.ID); got.Date != "2024-03-15" {
		t.Errorf("todo moved: %+v", got)
	}
}

func TestDropAfterDeleteClearsState(t *testing.T) {
	ctrl, s, _ := setupController(t)
	todo, _ := ctrl.AddTodo("Write report", "2024-03-15")

	var drag DragSession
	drag.Start(todo.ID)
	ctrl.DeleteTodo(todo.ID)

	if drag.Drop(ctrl, "2024-03-18") {
		t.Error("Drop() of deleted todo = true")
	}
	if _, _, ok := drag.Active(); ok {
		t.Error("drag not cleared")
	}
	if len(s.Todos()) != 0 {
		t.Error("drop resurrected deleted todo")
	}
}

func TestCancel(t *testing.T) {
	ctrl, _, _ := setupController(t)
	todo, _ := ctrl.AddTodo("Write report", "2024-03-15")

	var drag DragSession
	drag.Start(todo.ID)
	drag.Cancel()
	if id, token, ok := drag.Active(); ok || id != 0 || token != uuid.Nil {
		t.Errorf("Active() after Cancel = %d, %v, %v", id, token, ok)
	}
}
