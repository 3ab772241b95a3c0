package store

import (
	"sync"

	"github.com/julianstephens/planhub/internal/utils"
)

// IDSource hands out creation-timestamp ids (Unix milliseconds). Ids are
// strictly increasing even when the clock stalls or steps backwards.
type IDSource struct {
	mu    sync.Mutex
	clock utils.Clock
	last  int64
}

func NewIDSource(clock utils.Clock) *IDSource {
	if clock == nil {
		clock = utils.SystemClock
	}
	return &IDSource{clock: clock}
}

// Next returns a fresh id.
func (s *IDSource) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.clock().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

// Observe records an id that already exists so Next never reissues it.
func (s *IDSource) Observe(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id > s.last {
		s.last = id
	}
}
