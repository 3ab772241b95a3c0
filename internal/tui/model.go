package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/planhub/internal/calendar"
	"github.com/julianstephens/planhub/internal/habits"
	"github.com/julianstephens/planhub/internal/models"
	"github.com/julianstephens/planhub/internal/resources"
	"github.com/julianstephens/planhub/internal/scheduler"
	"github.com/julianstephens/planhub/internal/store"
	"github.com/julianstephens/planhub/internal/tui/components/habitlist"
	"github.com/julianstephens/planhub/internal/tui/components/monthview"
	"github.com/julianstephens/planhub/internal/tui/components/resourcelist"
	"github.com/julianstephens/planhub/internal/tui/components/todolist"
	"github.com/julianstephens/planhub/internal/utils"
	"github.com/julianstephens/planhub/internal/validation"
)

type SessionState int

const (
	StateCalendar SessionState = iota
	StateHabits
	StateResources
	StateForm
	StateConfirmDelete
)

const tabCount = 3

var tabTitles = []string{"Calendar", "Habits", "Resources"}

type focus int

const (
	focusGrid focus = iota
	focusDay
)

type formKind int

const (
	formAddTodo formKind = iota
	formEditTodo
	formAddHabit
	formAddResource
)

type TodoFormModel struct {
	Title     string
	StartTime string
	Duration  string
	Priority  models.Priority
}

type HabitFormModel struct {
	Name string
}

type ResourceFormModel struct {
	URL   string
	Title string
}

// pendingDelete names the entity awaiting confirmation.
type pendingDelete struct {
	kind  store.Collection
	id    int64
	label string
}

// Deps are the controllers the TUI drives. All mutations go through them.
type Deps struct {
	Store     *store.Store
	Scheduler *scheduler.Controller
	Habits    *habits.Tracker
	Resources *resources.Classifier
	Validator *validation.Validator
	Clock     utils.Clock
}

type Model struct {
	deps          Deps
	state         SessionState
	previousState SessionState
	focus         focus
	keys          KeyMap
	help          help.Model
	month         monthview.Model
	dayList       todolist.Model
	habitList     habitlist.Model
	resourceList  resourcelist.Model
	drag          scheduler.DragSession
	form          *huh.Form
	formKind      formKind
	todoForm      *TodoFormModel
	habitForm     *HabitFormModel
	resourceForm  *ResourceFormModel
	editingID     int64
	toDelete      pendingDelete
	status        string
	warning       string
	quitting      bool
	width         int
	height        int
}

func NewModel(deps Deps) Model {
	if deps.Clock == nil {
		deps.Clock = utils.SystemClock
	}
	if deps.Validator == nil {
		deps.Validator = validation.New()
	}
	today := utils.Today(deps.Clock)

	m := Model{
		deps:         deps,
		state:        StateCalendar,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		month:        monthview.New(today, today),
		dayList:      todolist.New(nil, 0, 0),
		habitList:    habitlist.New(nil, today, 0, 0),
		resourceList: resourcelist.New(nil, 0, 0),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Selected returns the date under the calendar cursor.
func (m Model) Selected() string { return m.month.Selected() }

func (m Model) State() SessionState { return m.state }

// Dragging reports the todo currently picked up, if any.
func (m Model) Dragging() (int64, bool) {
	id, _, ok := m.drag.Active()
	return id, ok
}

// refresh re-reads every collection from the store into the panes and
// re-runs validation.
func (m *Model) refresh() {
	today := utils.Today(m.deps.Clock)
	m.month.SetToday(today)

	todos := m.deps.Store.Todos()
	m.dayList.SetTodos(calendar.SortByStartTime(calendar.TodosForDate(todos, m.month.Selected())))
	m.habitList.SetHabits(m.deps.Store.Habits(), today)
	m.resourceList.SetResources(m.deps.Store.Resources())

	m.updateValidationStatus(todos)
}

func (m *Model) updateValidationStatus(todos []models.Todo) {
	result := m.deps.Validator.Validate(todos, m.deps.Store.Habits(), m.deps.Store.Resources())
	if result.HasConflicts() {
		m.warning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	} else {
		m.warning = ""
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateCalendar:
		if m.focus == focusDay {
			keys = append(keys, m.keys.Back)
			keys = append(keys, m.dayList.Keys().Bindings()...)
		} else {
			keys = append(keys, m.keys.Enter, m.keys.Add)
		}
	case StateHabits:
		keys = append(keys, m.habitList.Keys().Bindings()...)
	case StateResources:
		keys = append(keys, m.resourceList.Keys().Bindings()...)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}

	var actions []key.Binding
	switch m.state {
	case StateCalendar:
		actions = append([]key.Binding{m.keys.Enter, m.keys.Back, m.keys.Add}, m.dayList.Keys().Bindings()...)
		return [][]key.Binding{global, m.month.Keys().Bindings(), actions}
	case StateHabits:
		actions = m.habitList.Keys().Bindings()
	case StateResources:
		actions = m.resourceList.Keys().Bindings()
	}
	return [][]key.Binding{global, actions}
}
