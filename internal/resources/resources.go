// Package resources manages bookmarked learning links and classifies each
// one as a video or a course from its URL.
package resources

import (
	"strings"

	"github.com/julianstephens/planhub/internal/constants"
	"github.com/julianstephens/planhub/internal/logger"
	"github.com/julianstephens/planhub/internal/models"
	"github.com/julianstephens/planhub/internal/store"
	"github.com/julianstephens/planhub/internal/utils"
)

type Classifier struct {
	store *store.Store
	clock utils.Clock
}

func New(s *store.Store, clock utils.Clock) *Classifier {
	if clock == nil {
		clock = utils.SystemClock
	}
	return &Classifier{store: s, clock: clock}
}

// Classify reports video when url contains a known video-host marker
// (case-sensitive), course otherwise.
func Classify(url string) models.ResourceType {
	for _, marker := range constants.VideoMarkers {
		if strings.Contains(url, marker) {
			return models.ResourceVideo
		}
	}
	return models.ResourceCourse
}

// AddResource bookmarks url. A blank url is a no-op; a blank title becomes
// "Untitled Resource". The type is decided here and never recomputed.
func (c *Classifier) AddResource(url, title string) (models.Resource, bool) {
	if strings.TrimSpace(url) == "" {
		logger.Debug("Ignoring resource with empty url")
		return models.Resource{}, false
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = constants.DefaultResourceName
	}

	resource := models.Resource{
		ID:        c.store.NextID(),
		Title:     title,
		URL:       url,
		Type:      Classify(url),
		Completed: false,
		AddedAt:   utils.FormatTimestamp(c.clock()),
	}
	c.store.AppendResource(resource)
	return resource, true
}

func (c *Classifier) ToggleResource(id int64) bool {
	return c.store.MutateResource(id, func(r *models.Resource) {
		r.Completed = !r.Completed
	})
}

func (c *Classifier) DeleteResource(id int64) bool {
	return c.store.RemoveResource(id)
}
