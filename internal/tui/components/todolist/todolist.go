package todolist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/planhub/internal/models"
)

type AddTodoMsg struct{}

type ToggleTodoMsg struct {
	ID int64
}

type DeleteTodoMsg struct {
	ID int64
}

type EditTodoMsg struct {
	Todo models.Todo
}

// PickUpTodoMsg starts dragging a todo towards another day.
type PickUpTodoMsg struct {
	ID int64
}

type Item struct {
	Todo models.Todo
}

func (i Item) Title() string {
	if i.Todo.Completed {
		return "✓ " + i.Todo.Title
	}
	return i.Todo.Title
}

func (i Item) Description() string {
	return fmt.Sprintf("%s | %d min | %s", i.Todo.StartTime, i.Todo.Duration, i.Todo.Priority)
}

func (i Item) FilterValue() string { return i.Todo.Title }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Edit   key.Binding
	Delete key.Binding
	PickUp key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		PickUp: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move to day"),
		),
	}
}

func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.PickUp}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(todos []models.Todo, width, height int) Model {
	l := list.New(items(todos), list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	return Model{list: l, keys: DefaultKeyMap()}
}

func items(todos []models.Todo) []list.Item {
	out := make([]list.Item, len(todos))
	for i, t := range todos {
		out[i] = Item{Todo: t}
	}
	return out
}

func (m *Model) SetTodos(todos []models.Todo) {
	m.list.SetItems(items(todos))
}

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) Len() int { return len(m.list.Items()) }

// Selected returns the todo under the cursor.
func (m Model) Selected() (models.Todo, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Todo, true
	}
	return models.Todo{}, false
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddTodoMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if t, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ToggleTodoMsg{ID: t.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Edit):
			if t, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditTodoMsg{Todo: t} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if t, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteTodoMsg{ID: t.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.PickUp):
			if t, ok := m.Selected(); ok {
				return m, func() tea.Msg { return PickUpTodoMsg{ID: t.ID} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  Nothing scheduled.\n  Press 'a' to add a todo."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
