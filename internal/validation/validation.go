package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/planhub/internal/constants"
	"github.com/julianstephens/planhub/internal/models"
	"github.com/julianstephens/planhub/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictInvalidStartTime   ConflictType = "invalid_start_time"
	ConflictShortDuration      ConflictType = "short_duration"
	ConflictUnknownPriority    ConflictType = "unknown_priority"
	ConflictDuplicateHabitDate ConflictType = "duplicate_habit_date"
	ConflictOverlappingTodos   ConflictType = "overlapping_todos"
	ConflictDuplicateID        ConflictType = "duplicate_id"
	ConflictEmptyField         ConflictType = "empty_field"
)

// Conflict is one integrity problem found in the stored collections.
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string  // YYYY-MM-DD (if applicable)
	IDs         []int64 // entities involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator inspects collections without changing them. Nothing it reports
// blocks an operation; entities that fail a check stay in the store.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// Validate runs every check across the three collections.
func (v *Validator) Validate(todos []models.Todo, habits []models.Habit, resources []models.Resource) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	result.Conflicts = append(result.Conflicts, v.ValidateTodos(todos).Conflicts...)
	result.Conflicts = append(result.Conflicts, v.ValidateHabits(habits).Conflicts...)
	result.Conflicts = append(result.Conflicts, v.ValidateResources(resources).Conflicts...)
	return result
}

func (v *Validator) ValidateTodos(todos []models.Todo) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	result.Conflicts = append(result.Conflicts, duplicateIDs("todo", todoIDs(todos))...)

	for _, todo := range todos {
		if strings.TrimSpace(todo.Title) == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyField,
				Description: fmt.Sprintf("Todo %d has an empty title", todo.ID),
				Date:        todo.Date,
				IDs:         []int64{todo.ID},
			})
		}
		if !utils.ValidateDateFormat(todo.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Todo \"%s\" has invalid date: %s", todo.Title, todo.Date),
				IDs:         []int64{todo.ID},
			})
		}
		if !utils.ValidateTimeFormat(todo.StartTime) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidStartTime,
				Description: fmt.Sprintf("Todo \"%s\" has invalid start time: %s", todo.Title, todo.StartTime),
				Date:        todo.Date,
				IDs:         []int64{todo.ID},
			})
		}
		if todo.Duration < constants.MinDurationMin {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictShortDuration,
				Description: fmt.Sprintf("Todo \"%s\" lasts %d min, minimum is %d", todo.Title, todo.Duration, constants.MinDurationMin),
				Date:        todo.Date,
				IDs:         []int64{todo.ID},
			})
		}
		if !todo.Priority.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownPriority,
				Description: fmt.Sprintf("Todo \"%s\" has unknown priority: %q", todo.Title, todo.Priority),
				Date:        todo.Date,
				IDs:         []int64{todo.ID},
			})
		}
	}

	result.Conflicts = append(result.Conflicts, overlappingTodos(todos)...)
	return result
}

func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	ids := make([]int64, len(habits))
	for i, h := range habits {
		ids[i] = h.ID
	}
	result.Conflicts = append(result.Conflicts, duplicateIDs("habit", ids)...)

	for _, habit := range habits {
		if strings.TrimSpace(habit.Name) == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyField,
				Description: fmt.Sprintf("Habit %d has an empty name", habit.ID),
				IDs:         []int64{habit.ID},
			})
		}

		seen := make(map[string]bool, len(habit.CompletedDates))
		for _, day := range habit.CompletedDates {
			if !utils.ValidateDateFormat(day) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidDate,
					Description: fmt.Sprintf("Habit \"%s\" has invalid completion date: %s", habit.Name, day),
					IDs:         []int64{habit.ID},
				})
			}
			if seen[day] {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictDuplicateHabitDate,
					Description: fmt.Sprintf("Habit \"%s\" is marked done twice on %s", habit.Name, day),
					Date:        day,
					IDs:         []int64{habit.ID},
				})
			}
			seen[day] = true
		}
	}
	return result
}

func (v *Validator) ValidateResources(resources []models.Resource) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	ids := make([]int64, len(resources))
	for i, r := range resources {
		ids[i] = r.ID
	}
	result.Conflicts = append(result.Conflicts, duplicateIDs("resource", ids)...)

	for _, r := range resources {
		if strings.TrimSpace(r.URL) == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyField,
				Description: fmt.Sprintf("Resource %d (\"%s\") has an empty url", r.ID, r.Title),
				IDs:         []int64{r.ID},
			})
		}
	}
	return result
}

func todoIDs(todos []models.Todo) []int64 {
	ids := make([]int64, len(todos))
	for i, t := range todos {
		ids[i] = t.ID
	}
	return ids
}

func duplicateIDs(kind string, ids []int64) []Conflict {
	count := make(map[int64]int, len(ids))
	var order []int64
	for _, id := range ids {
		if count[id] == 0 {
			order = append(order, id)
		}
		count[id]++
	}

	var conflicts []Conflict
	for _, id := range order {
		if count[id] > 1 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictDuplicateID,
				Description: fmt.Sprintf("%d %ss share id %d", count[id], kind, id),
				IDs:         []int64{id},
			})
		}
	}
	return conflicts
}

type span struct {
	todo       models.Todo
	start, end int
}

// overlappingTodos reports open todos on the same day whose time ranges
// intersect. Todos with an unparseable date or start time are skipped.
func overlappingTodos(todos []models.Todo) []Conflict {
	byDate := make(map[string][]span)
	for _, todo := range todos {
		if todo.Completed || !utils.ValidateDateFormat(todo.Date) {
			continue
		}
		start, err := utils.ParseTimeToMinutes(todo.StartTime)
		if err != nil {
			continue
		}
		byDate[todo.Date] = append(byDate[todo.Date], span{todo: todo, start: start, end: start + todo.Duration})
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var conflicts []Conflict
	for _, date := range dates {
		spans := byDate[date]
		sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

		for i := 0; i < len(spans); i++ {
			for j := i + 1; j < len(spans) && spans[j].start < spans[i].end; j++ {
				a, b := spans[i], spans[j]
				conflicts = append(conflicts, Conflict{
					Type: ConflictOverlappingTodos,
					Description: fmt.Sprintf("%s: \"%s\" (%s, %d min) overlaps \"%s\" (%s, %d min)",
						date, a.todo.Title, a.todo.StartTime, a.todo.Duration, b.todo.Title, b.todo.StartTime, b.todo.Duration),
					Date: date,
					IDs:  []int64{a.todo.ID, b.todo.ID},
				})
			}
		}
	}
	return conflicts
}
