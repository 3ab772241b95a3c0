package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/planhub/internal/constants"
	"github.com/julianstephens/planhub/internal/models"
	"github.com/julianstephens/planhub/internal/utils"
)

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

func newTodoFormModel() *TodoFormModel {
	return &TodoFormModel{
		StartTime: constants.DefaultStartTime,
		Duration:  strconv.Itoa(constants.DefaultDurationMin),
		Priority:  models.Priority(constants.DefaultPriority),
	}
}

func todoFormModelFrom(t models.Todo) *TodoFormModel {
	return &TodoFormModel{
		Title:     t.Title,
		StartTime: t.StartTime,
		Duration:  strconv.Itoa(t.Duration),
		Priority:  t.Priority,
	}
}

// NewTodoForm creates a form for adding or editing a todo on date.
func NewTodoForm(fm *TodoFormModel, date string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Description(date).
				Value(&fm.Title).
				Validate(notBlank("title")),
			huh.NewInput().
				Title("Start (HH:MM)").
				Value(&fm.StartTime).
				Validate(func(s string) error {
					if !utils.ValidateTimeFormat(s) {
						return fmt.Errorf("invalid time format, use HH:MM")
					}
					return nil
				}),
			huh.NewInput().
				Title("Duration (min)").
				Value(&fm.Duration).
				Validate(func(s string) error {
					i, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return err
					}
					if i < constants.MinDurationMin {
						return fmt.Errorf("duration must be at least %d minutes", constants.MinDurationMin)
					}
					return nil
				}),
			huh.NewSelect[models.Priority]().
				Title("Priority").
				Options(
					huh.NewOption("Low", models.PriorityLow),
					huh.NewOption("Medium", models.PriorityMedium),
					huh.NewOption("High", models.PriorityHigh),
				).
				Value(&fm.Priority),
		),
	).WithTheme(huh.ThemeDracula())
}

// patch converts the submitted form into an update for the scheduler.
func (fm *TodoFormModel) patch() models.TodoPatch {
	title := strings.TrimSpace(fm.Title)
	start := strings.TrimSpace(fm.StartTime)
	p := models.TodoPatch{
		Title:     &title,
		StartTime: &start,
		Priority:  &fm.Priority,
	}
	if d, err := strconv.Atoi(strings.TrimSpace(fm.Duration)); err == nil {
		p.Duration = &d
	}
	return p
}

// NewHabitForm creates a new form for adding habits
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(notBlank("habit name")),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewResourceForm creates a form for bookmarking a link. The type is
// decided from the URL when the resource is added.
func NewResourceForm(fm *ResourceFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("URL").
				Value(&fm.URL).
				Validate(notBlank("url")),
			huh.NewInput().
				Title("Title").
				Description("Leave empty for \""+constants.DefaultResourceName+"\"").
				Value(&fm.Title),
		),
	).WithTheme(huh.ThemeDracula())
}
