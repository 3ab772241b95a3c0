package models

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Todo struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Date      string   `json:"date"` // YYYY-MM-DD format
	Completed bool     `json:"completed"`
	Priority  Priority `json:"priority"`
	StartTime string   `json:"startTime"` // HH:MM format
	Duration  int      `json:"duration"`  // minutes
}

// TodoPatch carries the fields of an update. Nil fields are left untouched.
type TodoPatch struct {
	Title     *string
	Date      *string
	Completed *bool
	Priority  *Priority
	StartTime *string
	Duration  *int
}

// IsEmpty reports whether the patch sets no fields.
func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Date == nil && p.Completed == nil &&
		p.Priority == nil && p.StartTime == nil && p.Duration == nil
}
