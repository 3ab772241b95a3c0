package cli

import (
	"fmt"

	"github.com/julianstephens/planhub/internal/calendar"
	"github.com/julianstephens/planhub/internal/tui/components/monthview"
)

type CalendarCmd struct {
	Date string `short:"d" help:"Selected day (YYYY-MM-DD or 'today')." default:"today"`
	Next int    `help:"Show N months after the selected one." xor:"shift"`
	Prev int    `help:"Show N months before the selected one." xor:"shift"`
}

func (c *CalendarCmd) Run(ctx *Context) error {
	selected, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	if c.Next != 0 {
		selected = calendar.AddMonths(selected, c.Next)
	}
	if c.Prev != 0 {
		selected = calendar.AddMonths(selected, -c.Prev)
	}

	g := calendar.Grid(selected)
	cells := calendar.Cells(g, selected, ctx.Today(), ctx.Store.Todos())
	fmt.Fprint(ctx.Out, monthview.Render(g, cells))
	return nil
}

type DayCmd struct {
	Date string `short:"d" help:"Day to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	heading(ctx.Out, calendar.LongDate(date))
	todos := calendar.SortByStartTime(calendar.TodosForDate(ctx.Store.Todos(), date))
	if len(todos) == 0 {
		fmt.Fprintln(ctx.Out, "No todos scheduled.")
	} else {
		printTodos(ctx.Out, todos)
	}

	if date == ctx.Today() {
		if hs := ctx.Store.Habits(); len(hs) > 0 {
			fmt.Fprintln(ctx.Out)
			heading(ctx.Out, "Habits")
			printHabits(ctx.Out, hs, date)
		}
	}
	return nil
}
