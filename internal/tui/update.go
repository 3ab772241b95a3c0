package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/planhub/internal/logger"
	"github.com/julianstephens/planhub/internal/models"
	"github.com/julianstephens/planhub/internal/store"
	"github.com/julianstephens/planhub/internal/tui/components/habitlist"
	"github.com/julianstephens/planhub/internal/tui/components/monthview"
	"github.com/julianstephens/planhub/internal/tui/components/resourcelist"
	"github.com/julianstephens/planhub/internal/tui/components/todolist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
	}

	switch m.state {
	case StateForm:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if handled, cmd := m.handleComponentMsg(msg); handled {
		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Tab):
		m.switchTab(1)
		return m, nil
	case key.Matches(keyMsg, m.keys.ShiftTab):
		m.switchTab(-1)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case StateCalendar:
		return m.updateCalendar(keyMsg)
	case StateHabits:
		m.habitList, cmd = m.habitList.Update(keyMsg)
	case StateResources:
		m.resourceList, cmd = m.resourceList.Update(keyMsg)
	}
	return m, cmd
}

func (m *Model) switchTab(delta int) {
	if _, _, dragging := m.drag.Active(); dragging {
		m.cancelDrag()
	}
	m.focus = focusGrid
	m.state = SessionState((int(m.state) + delta + tabCount) % tabCount)
}

func (m Model) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.focus == focusDay {
		if key.Matches(msg, m.keys.Back) {
			m.focus = focusGrid
			return m, nil
		}
		m.dayList, cmd = m.dayList.Update(msg)
		return m, cmd
	}

	_, _, dragging := m.drag.Active()
	switch {
	case key.Matches(msg, m.keys.Enter):
		if dragging {
			m.dropOnSelected()
			return m, nil
		}
		m.focus = focusDay
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if dragging {
			m.cancelDrag()
		}
		return m, nil
	case key.Matches(msg, m.keys.Add):
		if dragging {
			return m, nil
		}
		return m, m.openTodoForm(formAddTodo, nil)
	}

	before := m.month.Selected()
	m.month, cmd = m.month.Update(msg)
	if m.month.Selected() != before {
		m.refresh()
	}
	return m, cmd
}

func (m *Model) dropOnSelected() {
	id, _, _ := m.drag.Active()
	date := m.month.Selected()
	if m.drag.Drop(m.deps.Scheduler, date) {
		m.status = fmt.Sprintf("Moved to %s", date)
	} else {
		m.status = "Nothing moved"
		logger.Debug("Drop had no effect", "id", id, "date", date)
	}
	m.month.SetDragging(false)
	m.refresh()
}

func (m *Model) cancelDrag() {
	m.drag.Cancel()
	m.month.SetDragging(false)
	m.status = "Move cancelled"
}

// handleComponentMsg applies the intents emitted by the panes.
func (m *Model) handleComponentMsg(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case monthview.SelectedMsg:
		m.refresh()
		return true, nil

	case todolist.AddTodoMsg:
		return true, m.openTodoForm(formAddTodo, nil)

	case todolist.EditTodoMsg:
		t := msg.Todo
		return true, m.openTodoForm(formEditTodo, &t)

	case todolist.ToggleTodoMsg:
		m.deps.Scheduler.ToggleTodo(msg.ID)
		m.refresh()
		return true, nil

	case todolist.DeleteTodoMsg:
		if t, ok := m.deps.Store.Todo(msg.ID); ok {
			m.confirmDelete(store.Todos, t.ID, t.Title)
		}
		return true, nil

	case todolist.PickUpTodoMsg:
		t, ok := m.deps.Store.Todo(msg.ID)
		if !ok {
			return true, nil
		}
		m.drag.Start(t.ID)
		m.month.SetDragging(true)
		m.focus = focusGrid
		m.status = fmt.Sprintf("Moving %q: pick a day, enter to drop, esc to cancel", t.Title)
		return true, nil

	case habitlist.AddHabitMsg:
		m.habitForm = &HabitFormModel{}
		return true, m.openForm(formAddHabit, NewHabitForm(m.habitForm))

	case habitlist.ToggleHabitMsg:
		m.deps.Habits.ToggleToday(msg.ID)
		m.refresh()
		return true, nil

	case habitlist.DeleteHabitMsg:
		if h, ok := m.deps.Store.Habit(msg.ID); ok {
			m.confirmDelete(store.Habits, h.ID, h.Name)
		}
		return true, nil

	case resourcelist.AddResourceMsg:
		m.resourceForm = &ResourceFormModel{}
		return true, m.openForm(formAddResource, NewResourceForm(m.resourceForm))

	case resourcelist.ToggleResourceMsg:
		m.deps.Resources.ToggleResource(msg.ID)
		m.refresh()
		return true, nil

	case resourcelist.DeleteResourceMsg:
		if r, ok := m.deps.Store.Resource(msg.ID); ok {
			m.confirmDelete(store.Resources, r.ID, r.Title)
		}
		return true, nil
	}
	return false, nil
}

func (m *Model) openTodoForm(kind formKind, editing *models.Todo) tea.Cmd {
	date := m.month.Selected()
	if editing != nil {
		m.todoForm = todoFormModelFrom(*editing)
		m.editingID = editing.ID
		date = editing.Date
	} else {
		m.todoForm = newTodoFormModel()
		m.editingID = 0
	}
	return m.openForm(kind, NewTodoForm(m.todoForm, date))
}

func (m *Model) openForm(kind formKind, form *huh.Form) tea.Cmd {
	m.previousState = m.state
	m.state = StateForm
	m.formKind = kind
	m.form = form
	return m.form.Init()
}

func (m *Model) closeForm() {
	m.state = m.previousState
	m.form = nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		m.submitForm()
		m.closeForm()
		m.refresh()
	case huh.StateAborted:
		m.closeForm()
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) submitForm() {
	switch m.formKind {
	case formAddTodo:
		t, ok := m.deps.Scheduler.AddTodoWith(strings.TrimSpace(m.todoForm.Title), m.month.Selected(), m.todoForm.patch())
		if !ok {
			return
		}
		m.status = fmt.Sprintf("Added %q", t.Title)
	case formEditTodo:
		if m.deps.Scheduler.UpdateTodo(m.editingID, m.todoForm.patch()) {
			m.status = "Todo updated"
		}
	case formAddHabit:
		if h, ok := m.deps.Habits.AddHabit(m.habitForm.Name); ok {
			m.status = fmt.Sprintf("Added habit %q", h.Name)
		}
	case formAddResource:
		if r, ok := m.deps.Resources.AddResource(m.resourceForm.URL, m.resourceForm.Title); ok {
			m.status = fmt.Sprintf("Added %s %q", r.Type, r.Title)
		}
	}
}

func (m *Model) confirmDelete(kind store.Collection, id int64, label string) {
	m.toDelete = pendingDelete{kind: kind, id: id, label: label}
	m.previousState = m.state
	m.state = StateConfirmDelete
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		m.deleteConfirmed()
		m.toDelete = pendingDelete{}
		m.state = m.previousState
		m.refresh()
	case "n", "N", "esc", "q":
		m.toDelete = pendingDelete{}
		m.state = m.previousState
	}
	return m, nil
}

func (m *Model) deleteConfirmed() {
	d := m.toDelete
	switch d.kind {
	case store.Todos:
		m.deps.Scheduler.DeleteTodo(d.id)
	case store.Habits:
		m.deps.Habits.DeleteHabit(d.id)
	case store.Resources:
		m.deps.Resources.DeleteResource(d.id)
	}
	m.status = fmt.Sprintf("Deleted %q", d.label)
}

func (m *Model) resize() {
	listHeight := m.height - 8
	if listHeight < 3 {
		listHeight = 3
	}
	m.dayList.SetSize(dayPaneWidth, listHeight)
	m.habitList.SetSize(m.width-4, listHeight)
	m.resourceList.SetSize(m.width-4, listHeight)
}
