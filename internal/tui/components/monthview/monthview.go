package monthview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/planhub/internal/calendar"
	"github.com/julianstephens/planhub/internal/models"
)

const (
	cellWidth    = 14
	cellTodoRows = 3
)

var (
	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Height(cellTodoRows+1).
			Border(lipgloss.NormalBorder(), false, true, true, false).
			BorderForeground(lipgloss.Color("240"))
	selectedCellStyle = cellStyle.
				BorderForeground(lipgloss.Color("205")).
				Bold(true)
	dropTargetStyle = cellStyle.
			BorderForeground(lipgloss.Color("214")).
			Bold(true)
	todayDayStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	doneTodoStyle  = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	headerStyle    = lipgloss.NewStyle().Width(cellWidth + 1).Bold(true).Align(lipgloss.Center)
	monthNameStyle = lipgloss.NewStyle().Bold(true).Underline(true).MarginBottom(1)
)

// SelectedMsg is emitted whenever the cursor lands on a new date.
type SelectedMsg struct {
	Date string
}

type KeyMap struct {
	PrevDay   key.Binding
	NextDay   key.Binding
	PrevWeek  key.Binding
	NextWeek  key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevDay: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		PrevWeek: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev week"),
		),
		NextWeek: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next week"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next month"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
	}
}

func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.PrevDay, k.NextDay, k.PrevWeek, k.NextWeek, k.PrevMonth, k.NextMonth, k.Today}
}

// Model is a month grid with a day cursor. The viewed month always follows
// the selected date.
type Model struct {
	selected string
	today    string
	dragging bool
	keys     KeyMap
}

func New(selected, today string) Model {
	return Model{selected: selected, today: today, keys: DefaultKeyMap()}
}

func (m Model) Selected() string { return m.selected }

func (m Model) Keys() KeyMap { return m.keys }

func (m *Model) SetToday(today string) { m.today = today }

// SetDragging switches the cursor to drop-target styling.
func (m *Model) SetDragging(dragging bool) { m.dragging = dragging }

func (m *Model) Select(date string) {
	m.selected = date
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	next := m.selected
	switch {
	case key.Matches(keyMsg, m.keys.PrevDay):
		next = calendar.AddDays(m.selected, -1)
	case key.Matches(keyMsg, m.keys.NextDay):
		next = calendar.AddDays(m.selected, 1)
	case key.Matches(keyMsg, m.keys.PrevWeek):
		next = calendar.AddDays(m.selected, -7)
	case key.Matches(keyMsg, m.keys.NextWeek):
		next = calendar.AddDays(m.selected, 7)
	case key.Matches(keyMsg, m.keys.PrevMonth):
		next = calendar.PrevMonth(m.selected)
	case key.Matches(keyMsg, m.keys.NextMonth):
		next = calendar.NextMonth(m.selected)
	case key.Matches(keyMsg, m.keys.Today):
		next = m.today
	}

	if next == m.selected {
		return m, nil
	}
	m.selected = next
	return m, func() tea.Msg { return SelectedMsg{Date: next} }
}

// View renders the month containing the selected date.
func (m Model) View(todos []models.Todo) string {
	g := calendar.Grid(m.selected)
	cells := calendar.Cells(g, m.selected, m.today, todos)
	if m.dragging {
		return render(g, cells, dropTargetStyle)
	}
	return render(g, cells, selectedCellStyle)
}

// Render draws the month grid with each day's todos in stored order.
func Render(g calendar.MonthGrid, cells []calendar.Cell) string {
	return render(g, cells, selectedCellStyle)
}

func render(g calendar.MonthGrid, cells []calendar.Cell, selected lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(monthNameStyle.Render(g.Title()))
	b.WriteString("\n")

	headers := make([]string, 0, 7)
	for _, h := range calendar.WeekdayHeaders() {
		headers = append(headers, headerStyle.Render(h))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, headers...))
	b.WriteString("\n")

	for start := 0; start < len(cells); start += 7 {
		end := start + 7
		if end > len(cells) {
			end = len(cells)
		}
		row := make([]string, 0, 7)
		for _, cell := range cells[start:end] {
			row = append(row, renderCell(cell, selected))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		b.WriteString("\n")
	}
	return b.String()
}

func renderCell(cell calendar.Cell, selected lipgloss.Style) string {
	if cell.Blank {
		return cellStyle.Render("")
	}

	day := fmt.Sprintf("%2d", cell.Day)
	if cell.Today {
		day = todayDayStyle.Render(day)
	}
	lines := []string{day}

	for i, t := range cell.Todos {
		if i == cellTodoRows-1 && len(cell.Todos) > cellTodoRows {
			lines = append(lines, fmt.Sprintf("+%d more", len(cell.Todos)-i))
			break
		}
		title := Truncate(t.Title, cellWidth-1)
		if t.Completed {
			title = doneTodoStyle.Render(title)
		}
		lines = append(lines, title)
	}

	style := cellStyle
	if cell.Selected {
		style = selected
	}
	return style.Render(strings.Join(lines, "\n"))
}

// Truncate shortens s to n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
