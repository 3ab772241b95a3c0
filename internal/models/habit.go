package models

// Habit represents a daily practice to track
type Habit struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	CompletedDates []string `json:"completedDates"` // YYYY-MM-DD, set semantics, insertion order kept
}

// HasDate reports whether day is in the habit's completed set.
func (h Habit) HasDate(day string) bool {
	for _, d := range h.CompletedDates {
		if d == day {
			return true
		}
	}
	return false
}
