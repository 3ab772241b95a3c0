package models

type ResourceType string

const (
	ResourceVideo  ResourceType = "video"
	ResourceCourse ResourceType = "course"
)

// Resource is a bookmarked learning link. Type is fixed at creation.
type Resource struct {
	ID        int64        `json:"id"`
	Title     string       `json:"title"`
	URL       string       `json:"url"`
	Type      ResourceType `json:"type"`
	Completed bool         `json:"completed"`
	AddedAt   string       `json:"addedAt"` // RFC3339 instant with milliseconds
}
