package scheduler

import (
	"strings"

	"github.com/julianstephens/planhub/internal/constants"
	"github.com/julianstephens/planhub/internal/logger"
	"github.com/julianstephens/planhub/internal/models"
	"github.com/julianstephens/planhub/internal/utils"
)

// sanitize drops patch fields that would leave the todo invalid.
func sanitize(id int64, p models.TodoPatch) models.TodoPatch {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		logger.Warn("Dropping empty title from todo update", "id", id)
		p.Title = nil
	}
	if p.Date != nil && !utils.ValidateDateFormat(*p.Date) {
		logger.Warn("Dropping invalid date from todo update", "id", id, "date", *p.Date)
		p.Date = nil
	}
	if p.Priority != nil && !p.Priority.Valid() {
		logger.Warn("Dropping unknown priority from todo update", "id", id, "priority", *p.Priority)
		p.Priority = nil
	}
	if p.StartTime != nil && !utils.ValidateTimeFormat(*p.StartTime) {
		logger.Warn("Dropping invalid start time from todo update", "id", id, "start", *p.StartTime)
		p.StartTime = nil
	}
	if p.Duration != nil && *p.Duration < constants.MinDurationMin {
		logger.Warn("Dropping short duration from todo update", "id", id, "duration", *p.Duration)
		p.Duration = nil
	}
	return p
}
