// Package store holds the in-memory Todo, Habit and Resource collections and
// notifies subscribers after every mutation.
package store

import (
	"sync"

	"github.com/julianstephens/planhub/internal/constants"
	"github.com/julianstephens/planhub/internal/models"
	"github.com/julianstephens/planhub/internal/utils"
)

// Collection names one of the three entity collections.
type Collection string

const (
	Todos     Collection = "todos"
	Habits    Collection = "habits"
	Resources Collection = "resources"
)

// AllCollections returns the collections in load/save order.
func AllCollections() []Collection {
	return []Collection{Todos, Habits, Resources}
}

// Slot returns the persistence slot name backing c.
func (c Collection) Slot() string {
	switch c {
	case Todos:
		return constants.SlotTodos
	case Habits:
		return constants.SlotHabits
	case Resources:
		return constants.SlotResources
	}
	return ""
}

// Listener is called after a collection changed. It runs outside the store lock.
type Listener func(Collection)

type subscription struct {
	id int
	fn Listener
}

type Store struct {
	mu        sync.RWMutex
	todos     []models.Todo
	habits    []models.Habit
	resources []models.Resource

	ids *IDSource

	subMu  sync.Mutex
	subs   []subscription
	nextID int
}

// New returns an empty store whose ids come from clock.
func New(clock utils.Clock) *Store {
	return &Store{
		todos:     []models.Todo{},
		habits:    []models.Habit{},
		resources: []models.Resource{},
		ids:       NewIDSource(clock),
	}
}

// NextID returns a fresh entity id.
func (s *Store) NextID() int64 {
	return s.ids.Next()
}

// Subscribe registers l for change notifications and returns a func that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: l})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(c Collection) {
	s.subMu.Lock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(c)
	}
}

// Todos

func (s *Store) Todos() []models.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Todo, len(s.todos))
	copy(out, s.todos)
	return out
}

func (s *Store) Todo(id int64) (models.Todo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.todos {
		if t.ID == id {
			return t, true
		}
	}
	return models.Todo{}, false
}

func (s *Store) AppendTodo(todo models.Todo) {
	s.mu.Lock()
	s.todos = append(s.todos, todo)
	s.mu.Unlock()

	s.ids.Observe(todo.ID)
	s.notify(Todos)
}

// MutateTodo applies fn to the todo with the given id. It reports false and
// notifies nobody when the id is unknown.
func (s *Store) MutateTodo(id int64, fn func(*models.Todo)) bool {
	s.mu.Lock()
	found := false
	for i := range s.todos {
		if s.todos[i].ID == id {
			fn(&s.todos[i])
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.notify(Todos)
	}
	return found
}

func (s *Store) RemoveTodo(id int64) bool {
	s.mu.Lock()
	found := false
	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.notify(Todos)
	}
	return found
}

func (s *Store) ReplaceTodos(todos []models.Todo) {
	cp := make([]models.Todo, len(todos))
	copy(cp, todos)

	s.mu.Lock()
	s.todos = cp
	s.mu.Unlock()

	for _, t := range cp {
		s.ids.Observe(t.ID)
	}
	s.notify(Todos)
}

// Habits

func (s *Store) Habits() []models.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Habit, len(s.habits))
	for i, h := range s.habits {
		out[i] = cloneHabit(h)
	}
	return out
}

func (s *Store) Habit(id int64) (models.Habit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, h := range s.habits {
		if h.ID == id {
			return cloneHabit(h), true
		}
	}
	return models.Habit{}, false
}

func (s *Store) AppendHabit(habit models.Habit) {
	s.mu.Lock()
	s.habits = append(s.habits, cloneHabit(habit))
	s.mu.Unlock()

	s.ids.Observe(habit.ID)
	s.notify(Habits)
}

func (s *Store) MutateHabit(id int64, fn func(*models.Habit)) bool {
	s.mu.Lock()
	found := false
	for i := range s.habits {
		if s.habits[i].ID == id {
			fn(&s.habits[i])
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.notify(Habits)
	}
	return found
}

func (s *Store) RemoveHabit(id int64) bool {
	s.mu.Lock()
	found := false
	for i := range s.habits {
		if s.habits[i].ID == id {
			s.habits = append(s.habits[:i], s.habits[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.notify(Habits)
	}
	return found
}

func (s *Store) ReplaceHabits(habits []models.Habit) {
	cp := make([]models.Habit, len(habits))
	for i, h := range habits {
		cp[i] = cloneHabit(h)
	}

	s.mu.Lock()
	s.habits = cp
	s.mu.Unlock()

	for _, h := range cp {
		s.ids.Observe(h.ID)
	}
	s.notify(Habits)
}

func cloneHabit(h models.Habit) models.Habit {
	dates := make([]string, len(h.CompletedDates))
	copy(dates, h.CompletedDates)
	h.CompletedDates = dates
	return h
}

// Resources

func (s *Store) Resources() []models.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Resource, len(s.resources))
	copy(out, s.resources)
	return out
}

func (s *Store) Resource(id int64) (models.Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.resources {
		if r.ID == id {
			return r, true
		}
	}
	return models.Resource{}, false
}

func (s *Store) AppendResource(resource models.Resource) {
	s.mu.Lock()
	s.resources = append(s.resources, resource)
	s.mu.Unlock()

	s.ids.Observe(resource.ID)
	s.notify(Resources)
}

func (s *Store) MutateResource(id int64, fn func(*models.Resource)) bool {
	s.mu.Lock()
	found := false
	for i := range s.resources {
		if s.resources[i].ID == id {
			fn(&s.resources[i])
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.notify(Resources)
	}
	return found
}

func (s *Store) RemoveResource(id int64) bool {
	s.mu.Lock()
	found := false
	for i := range s.resources {
		if s.resources[i].ID == id {
			s.resources = append(s.resources[:i], s.resources[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.notify(Resources)
	}
	return found
}

func (s *Store) ReplaceResources(resources []models.Resource) {
	cp := make([]models.Resource, len(resources))
	copy(cp, resources)

	s.mu.Lock()
	s.resources = cp
	s.mu.Unlock()

	for _, r := range cp {
		s.ids.Observe(r.ID)
	}
	s.notify(Resources)
}

// Snapshot returns a copy of the named collection, suitable for serialization.
func (s *Store) Snapshot(c Collection) any {
	switch c {
	case Todos:
		return s.Todos()
	case Habits:
		return s.Habits()
	case Resources:
		return s.Resources()
	}
	return nil
}
