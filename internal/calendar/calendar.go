// Package calendar derives month grids and per-day task groupings from a
// selected date. Everything here is a pure function of its arguments.
package calendar

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/planhub/internal/constants"
	"github.com/julianstephens/planhub/internal/models"
)

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var weekdayHeaders = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// MonthGrid describes the month containing a selected date. Month is 0-based.
type MonthGrid struct {
	Year              int
	Month             int
	DaysInMonth       int
	StartingDayOfWeek int // 0=Sunday
}

// Grid derives the month grid for an ISO date. Only the year and month
// components are read. Malformed input yields an unspecified grid.
func Grid(date string) MonthGrid {
	parts := strings.Split(date, "-")
	year, _ := strconv.Atoi(parts[0])
	month := 0
	if len(parts) > 1 {
		m, _ := strconv.Atoi(parts[1])
		month = m - 1
	}

	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC)

	return MonthGrid{
		Year:              year,
		Month:             month,
		DaysInMonth:       last.Day(),
		StartingDayOfWeek: int(first.Weekday()),
	}
}

// DateString formats a 0-based month and a day of month as YYYY-MM-DD.
func DateString(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month+1, day)
}

// Date returns the ISO date of day in the grid's month.
func (g MonthGrid) Date(day int) string {
	return DateString(g.Year, g.Month, day)
}

// Title renders the grid heading, e.g. "March 2024".
func (g MonthGrid) Title() string {
	return fmt.Sprintf("%s %d", MonthName(g.Month), g.Year)
}

// Weeks returns the number of rows the grid needs.
func (g MonthGrid) Weeks() int {
	cells := g.StartingDayOfWeek + g.DaysInMonth
	return (cells + 6) / 7
}

// MonthName returns the English name of a 0-based month.
func MonthName(month int) string {
	if month < 0 || month >= len(monthNames) {
		return ""
	}
	return monthNames[month]
}

// WeekdayHeaders returns the column labels, Sunday first.
func WeekdayHeaders() []string {
	out := make([]string, len(weekdayHeaders))
	copy(out, weekdayHeaders)
	return out
}

// TodosForDate returns the todos whose date equals date exactly, in the order
// they appear in todos. It never sorts.
func TodosForDate(todos []models.Todo, date string) []models.Todo {
	out := []models.Todo{}
	for _, t := range todos {
		if t.Date == date {
			out = append(out, t)
		}
	}
	return out
}

// SortByStartTime orders todos for display. Ties keep their stored order.
func SortByStartTime(todos []models.Todo) []models.Todo {
	sorted := make([]models.Todo, len(todos))
	copy(sorted, todos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})
	return sorted
}

// AddMonths moves date by delta months using Go's date normalisation, which
// rolls overflowing days into the following month (Jan 31 + 1 -> Mar 2/3).
// An unparseable date is returned unchanged.
func AddMonths(date string, delta int) string {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, delta, 0).Format(constants.DateFormat)
}

// AddDays moves date by delta days. An unparseable date is returned unchanged.
func AddDays(date string, delta int) string {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, delta).Format(constants.DateFormat)
}

func NextMonth(date string) string {
	return AddMonths(date, 1)
}

func PrevMonth(date string) string {
	return AddMonths(date, -1)
}

// LongDate renders date like "Friday, Mar 15, 2024".
func LongDate(date string) string {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return date
	}
	return t.Format("Monday, Jan 2, 2006")
}
