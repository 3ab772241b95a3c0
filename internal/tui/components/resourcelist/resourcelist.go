package resourcelist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/planhub/internal/models"
)

type AddResourceMsg struct{}

type ToggleResourceMsg struct {
	ID int64
}

type DeleteResourceMsg struct {
	ID int64
}

type Item struct {
	Resource models.Resource
}

func (i Item) Title() string {
	icon := "📘"
	if i.Resource.Type == models.ResourceVideo {
		icon = "▶"
	}
	title := icon + " " + i.Resource.Title
	if i.Resource.Completed {
		title = "✓ " + title
	}
	return title
}

func (i Item) Description() string { return i.Resource.URL }

func (i Item) FilterValue() string { return i.Resource.Title }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add link"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(rs []models.Resource, width, height int) Model {
	l := list.New(items(rs), list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	return Model{list: l, keys: DefaultKeyMap()}
}

func items(rs []models.Resource) []list.Item {
	out := make([]list.Item, len(rs))
	for i, r := range rs {
		out[i] = Item{Resource: r}
	}
	return out
}

func (m *Model) SetResources(rs []models.Resource) {
	m.list.SetItems(items(rs))
}

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddResourceMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleResourceMsg{ID: i.Resource.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteResourceMsg{ID: i.Resource.ID} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No resources yet.\n  Press 'a' to bookmark a link."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
