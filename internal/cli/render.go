package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/julianstephens/planhub/internal/habits"
	"github.com/julianstephens/planhub/internal/models"
)

var priorityColors = map[models.Priority]*color.Color{
	models.PriorityHigh:   color.New(color.FgRed, color.Bold),
	models.PriorityMedium: color.New(color.FgYellow),
	models.PriorityLow:    color.New(color.FgGreen),
}

func priorityLabel(p models.Priority) string {
	if c, ok := priorityColors[p]; ok {
		return c.Sprint(string(p))
	}
	return string(p)
}

func checkbox(done bool) string {
	if done {
		return color.New(color.FgGreen).Sprint("[x]")
	}
	return "[ ]"
}

func heading(w io.Writer, title string) {
	fmt.Fprintln(w, color.New(color.Bold, color.Underline).Sprint(title))
}

func printTodos(w io.Writer, todos []models.Todo) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", "ID", "DATE", "TIME", "MIN", "PRIORITY", "TITLE")
	for _, t := range todos {
		title := t.Title
		if t.Completed {
			title = color.New(color.Faint, color.CrossedOut).Sprint(title)
		}
		tbl.AddRow(checkbox(t.Completed), t.ID, t.Date, t.StartTime, t.Duration, priorityLabel(t.Priority), title)
	}
	fmt.Fprintln(w, tbl)
}

func printHabits(w io.Writer, hs []models.Habit, today string) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", "ID", "STREAK", "NAME")
	for _, h := range hs {
		tbl.AddRow(checkbox(habits.CompletedOn(h, today)), h.ID, habits.Streak(h), h.Name)
	}
	fmt.Fprintln(w, tbl)
}

func printResources(w io.Writer, rs []models.Resource) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow("", "ID", "TYPE", "TITLE", "URL")
	for _, r := range rs {
		kind := color.New(color.FgCyan).Sprint(string(r.Type))
		if r.Type == models.ResourceVideo {
			kind = color.New(color.FgMagenta).Sprint(string(r.Type))
		}
		tbl.AddRow(checkbox(r.Completed), r.ID, kind, r.Title, r.URL)
	}
	fmt.Fprintln(w, tbl)
}
