package calendar

import "github.com/julianstephens/planhub/internal/models"

// Cell is one square of the month grid. Leading cells before the 1st are blank.
type Cell struct {
	Blank    bool
	Day      int
	Date     string
	Selected bool
	Today    bool
	Todos    []models.Todo
}

// Cells lays out the grid for rendering: StartingDayOfWeek blank cells
// followed by one cell per day carrying that day's todos.
func Cells(g MonthGrid, selected, today string, todos []models.Todo) []Cell {
	cells := make([]Cell, 0, g.StartingDayOfWeek+g.DaysInMonth)
	for i := 0; i < g.StartingDayOfWeek; i++ {
		cells = append(cells, Cell{Blank: true})
	}
	for day := 1; day <= g.DaysInMonth; day++ {
		date := g.Date(day)
		cells = append(cells, Cell{
			Day:      day,
			Date:     date,
			Selected: date == selected,
			Today:    date == today,
			Todos:    TodosForDate(todos, date),
		})
	}
	return cells
}
