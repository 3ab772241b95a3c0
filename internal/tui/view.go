package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/planhub/internal/calendar"
	"github.com/julianstephens/planhub/internal/utils"
)

const dayPaneWidth = 40

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateCalendar:
		content = m.viewCalendar()
	case StateHabits:
		content = docStyle.Render(m.viewHabits())
	case StateResources:
		content = docStyle.Render(m.resourceList.View())
	case StateForm:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
	return ui
}

func (m Model) viewTabs() string {
	var tabs []string
	active := m.state
	if m.state == StateForm || m.state == StateConfirmDelete {
		active = m.previousState
	}
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewCalendar() string {
	grid := m.month.View(m.deps.Store.Todos())

	pane := dayPaneStyle
	if m.focus == focusDay {
		pane = focusedPaneStyle
	}
	day := pane.Width(dayPaneWidth).Render(lipgloss.JoinVertical(
		lipgloss.Left,
		dayTitleStyle.Render(calendar.LongDate(m.month.Selected())),
		m.dayList.View(),
	))

	return docStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, grid, "  ", day))
}

func (m Model) viewHabits() string {
	today := utils.Today(m.deps.Clock)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		dayTitleStyle.Render("Today · "+calendar.LongDate(today)),
		m.habitList.View(),
	)
}

func (m Model) viewStatus() string {
	var parts []string
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	if m.warning != "" {
		parts = append(parts, warningStyle.Render(m.warning+" (run 'planhub validate')"))
	}
	if len(parts) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joinWithSpace(parts)...)
}

func joinWithSpace(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, p)
	}
	return out
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %q?", m.toDelete.label)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
