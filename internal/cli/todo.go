package cli

import (
	"fmt"

	"github.com/julianstephens/planhub/internal/calendar"
	"github.com/julianstephens/planhub/internal/models"
)

type TodoCmd struct {
	Add    TodoAddCmd    `cmd:"" help:"Add a todo."`
	List   TodoListCmd   `cmd:"" help:"List todos."`
	Toggle TodoToggleCmd `cmd:"" help:"Toggle a todo's completed flag."`
	Edit   TodoEditCmd   `cmd:"" help:"Edit fields of a todo."`
	Delete TodoDeleteCmd `cmd:"" help:"Delete a todo."`
	Move   TodoMoveCmd   `cmd:"" help:"Move a todo to another day."`
}

type TodoAddCmd struct {
	Title    string  `arg:"" help:"Todo title."`
	Date     string  `short:"d" help:"Day (YYYY-MM-DD or 'today')." default:"today"`
	Priority *string `short:"p" help:"Priority (low|medium|high)."`
	Start    *string `short:"s" help:"Start time (HH:MM)."`
	Duration *int    `short:"m" help:"Duration in minutes (15 or more)."`
}

func (c *TodoAddCmd) Run(ctx *Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	patch := models.TodoPatch{StartTime: c.Start, Duration: c.Duration}
	if c.Priority != nil {
		p := models.Priority(*c.Priority)
		patch.Priority = &p
	}

	todo, ok := ctx.Scheduler.AddTodoWith(c.Title, date, patch)
	if !ok {
		fmt.Fprintln(ctx.Out, "Title is empty; nothing added.")
		return nil
	}

	fmt.Fprintf(ctx.Out, "Added todo %d: %s on %s at %s (%dm, %s)\n",
		todo.ID, todo.Title, todo.Date, todo.StartTime, todo.Duration, todo.Priority)
	return nil
}

type TodoListCmd struct {
	Date    string `short:"d" help:"Only show todos on this day (YYYY-MM-DD or 'today')."`
	Pending bool   `help:"Hide completed todos."`
}

func (c *TodoListCmd) Run(ctx *Context) error {
	todos := ctx.Store.Todos()
	if c.Date != "" {
		date, err := ctx.ResolveDate(c.Date)
		if err != nil {
			return err
		}
		todos = calendar.TodosForDate(todos, date)
	}

	if c.Pending {
		open := todos[:0:0]
		for _, t := range todos {
			if !t.Completed {
				open = append(open, t)
			}
		}
		todos = open
	}

	if len(todos) == 0 {
		fmt.Fprintln(ctx.Out, "No todos found.")
		return nil
	}
	printTodos(ctx.Out, todos)
	return nil
}

type TodoToggleCmd struct {
	ID string `arg:"" help:"Todo ID."`
}

func (c *TodoToggleCmd) Run(ctx *Context) error {
	id, err := ParseID(c.ID)
	if err != nil {
		return err
	}
	if !ctx.Scheduler.ToggleTodo(id) {
		return ctx.notFound("todo", id)
	}
	todo, _ := ctx.Store.Todo(id)
	state := "open"
	if todo.Completed {
		state = "done"
	}
	fmt.Fprintf(ctx.Out, "Todo %d is now %s.\n", id, state)
	return nil
}

type TodoEditCmd struct {
	ID        string  `arg:"" help:"Todo ID."`
	Title     *string `short:"t" help:"New title."`
	Date      *string `short:"d" help:"New day (YYYY-MM-DD)."`
	Priority  *string `short:"p" help:"New priority (low|medium|high)."`
	Start     *string `short:"s" help:"New start time (HH:MM)."`
	Duration  *int    `short:"m" help:"New duration in minutes (15 or more)."`
	Completed *bool   `help:"Set completed flag."`
}

func (c *TodoEditCmd) Run(ctx *Context) error {
	id, err := ParseID(c.ID)
	if err != nil {
		return err
	}
	if _, ok := ctx.Store.Todo(id); !ok {
		return ctx.notFound("todo", id)
	}

	patch := models.TodoPatch{
		Title:     c.Title,
		Date:      c.Date,
		StartTime: c.Start,
		Duration:  c.Duration,
		Completed: c.Completed,
	}
	if c.Priority != nil {
		p := models.Priority(*c.Priority)
		patch.Priority = &p
	}
	if patch.IsEmpty() {
		fmt.Fprintln(ctx.Out, "No fields given; nothing changed.")
		return nil
	}

	if !ctx.Scheduler.UpdateTodo(id, patch) {
		fmt.Fprintln(ctx.Out, "No valid fields given; nothing changed.")
		return nil
	}

	todo, _ := ctx.Store.Todo(id)
	fmt.Fprintf(ctx.Out, "Updated todo %d: %s on %s at %s (%dm, %s)\n",
		todo.ID, todo.Title, todo.Date, todo.StartTime, todo.Duration, todo.Priority)
	return nil
}

type TodoDeleteCmd struct {
	ID string `arg:"" help:"Todo ID."`
}

func (c *TodoDeleteCmd) Run(ctx *Context) error {
	id, err := ParseID(c.ID)
	if err != nil {
		return err
	}
	if !ctx.Scheduler.DeleteTodo(id) {
		return ctx.notFound("todo", id)
	}
	fmt.Fprintf(ctx.Out, "Deleted todo %d.\n", id)
	return nil
}

type TodoMoveCmd struct {
	ID   string `arg:"" help:"Todo ID."`
	Date string `arg:"" help:"Target day (YYYY-MM-DD or 'today')."`
}

func (c *TodoMoveCmd) Run(ctx *Context) error {
	id, err := ParseID(c.ID)
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	if !ctx.Scheduler.RescheduleTodo(id, date) {
		return ctx.notFound("todo", id)
	}
	fmt.Fprintf(ctx.Out, "Moved todo %d to %s.\n", id, date)
	return nil
}
