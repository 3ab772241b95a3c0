package cli

import (
	"fmt"

	"github.com/julianstephens/planhub/internal/habits"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a habit."`
	List   HabitListCmd   `cmd:"" help:"List habits with today's status."`
	Toggle HabitToggleCmd `cmd:"" help:"Mark or unmark a habit as done today."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
}

type HabitAddCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	habit, ok := ctx.Habits.AddHabit(c.Name)
	if !ok {
		fmt.Fprintln(ctx.Out, "Name is empty; nothing added.")
		return nil
	}
	fmt.Fprintf(ctx.Out, "Added habit %d: %s\n", habit.ID, habit.Name)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	hs := ctx.Store.Habits()
	if len(hs) == 0 {
		fmt.Fprintln(ctx.Out, "No habits found.")
		return nil
	}
	heading(ctx.Out, "Habits for "+ctx.Habits.Today())
	printHabits(ctx.Out, hs, ctx.Habits.Today())
	return nil
}

type HabitToggleCmd struct {
	ID string `arg:"" help:"Habit ID."`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	id, err := ParseID(c.ID)
	if err != nil {
		return err
	}
	if !ctx.Habits.ToggleToday(id) {
		return ctx.notFound("habit", id)
	}

	habit, _ := ctx.Store.Habit(id)
	today := ctx.Habits.Today()
	if habits.CompletedOn(habit, today) {
		fmt.Fprintf(ctx.Out, "%s done for %s (streak %d).\n", habit.Name, today, habits.Streak(habit))
	} else {
		fmt.Fprintf(ctx.Out, "%s unmarked for %s (streak %d).\n", habit.Name, today, habits.Streak(habit))
	}
	return nil
}

type HabitDeleteCmd struct {
	ID string `arg:"" help:"Habit ID."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	id, err := ParseID(c.ID)
	if err != nil {
		return err
	}
	if !ctx.Habits.DeleteHabit(id) {
		return ctx.notFound("habit", id)
	}
	fmt.Fprintf(ctx.Out, "Deleted habit %d.\n", id)
	return nil
}
