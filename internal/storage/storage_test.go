package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/planhub/internal/constants"
	"github.com/julianstephens/planhub/internal/models"
	"github.com/julianstephens/planhub/internal/store"
)

func fixedClock() time.Time {
	return time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
}

func setupDiskv(t *testing.T) (Provider, func()) {
	s := NewDiskvStore(filepath.Join(t.TempDir(), "slots"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return s, func() { s.Close() }
}

func setupSQLite(t *testing.T) (Provider, func()) {
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "planhub.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return s, func() { s.Close() }
}

func setupMemory(t *testing.T) (Provider, func()) {
	return NewMemoryStore(), func() {}
}

var providers = map[string]func(*testing.T) (Provider, func()){
	"diskv":  setupDiskv,
	"sqlite": setupSQLite,
	"memory": setupMemory,
}

func TestProviderRoundTrip(t *testing.T) {
	for name, setup := range providers {
		t.Run(name, func(t *testing.T) {
			p, cleanup := setup(t)
			defer cleanup()

			if _, ok, err := p.Load(constants.SlotTodos); err != nil || ok {
				t.Fatalf("Load on empty provider = ok %v, err %v", ok, err)
			}

			if err := p.Save(constants.SlotTodos, []byte(`[{"id":1}]`)); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			if err := p.Save(constants.SlotTodos, []byte(`[]`)); err != nil {
				t.Fatalf("second Save failed: %v", err)
			}
			if err := p.Save(constants.SlotHabits, []byte(`[]`)); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			blob, ok, err := p.Load(constants.SlotTodos)
			if err != nil || !ok {
				t.Fatalf("Load = ok %v, err %v", ok, err)
			}
			if string(blob) != `[]` {
				t.Errorf("Load = %s, want overwritten blob", blob)
			}

			slots, err := p.Slots()
			if err != nil {
				t.Fatalf("Slots failed: %v", err)
			}
			want := []string{constants.SlotHabits, constants.SlotTodos}
			if !reflect.DeepEqual(slots, want) {
				t.Errorf("Slots = %v, want %v", slots, want)
			}
		})
	}
}

func TestSQLiteReopenKeepsSlots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planhub.db")

	first := NewSQLiteStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := first.Save(constants.SlotResources, []byte(`[{"id":7}]`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	first.Close()

	second := NewSQLiteStore(path)
	if err := second.Init(); err != nil {
		t.Fatalf("reopen Init failed: %v", err)
	}
	defer second.Close()

	blob, ok, err := second.Load(constants.SlotResources)
	if err != nil || !ok || string(blob) != `[{"id":7}]` {
		t.Errorf("Load after reopen = %s, %v, %v", blob, ok, err)
	}
}

func TestSQLiteSchemaVersion(t *testing.T) {
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "planhub.db"))
	if _, _, err := s.SchemaVersion(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("SchemaVersion before Init error = %v, want ErrNotInitialized", err)
	}
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer s.Close()

	var p Provider = s
	reporter, ok := p.(SchemaReporter)
	if !ok {
		t.Fatal("SQLiteStore should report its schema version")
	}
	current, latest, err := reporter.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if current != 1 || latest != 1 {
		t.Errorf("SchemaVersion = %d, %d; want 1, 1", current, latest)
	}
}

func TestDiskvLayout(t *testing.T) {
	base := filepath.Join(t.TempDir(), "slots")
	s := NewDiskvStore(base)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.Save(constants.SlotHabits, []byte(`[]`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, constants.SlotHabits)); err != nil {
		t.Errorf("expected slot file under base path: %v", err)
	}
}

func TestUninitializedProvider(t *testing.T) {
	for _, p := range []Provider{NewDiskvStore(t.TempDir()), NewSQLiteStore(filepath.Join(t.TempDir(), "x.db"))} {
		if err := p.Save(constants.SlotTodos, nil); !errors.Is(err, ErrNotInitialized) {
			t.Errorf("%T.Save before Init = %v", p, err)
		}
		if _, _, err := p.Load(constants.SlotTodos); !errors.Is(err, ErrNotInitialized) {
			t.Errorf("%T.Load before Init = %v", p, err)
		}
	}
}

func TestHydrate(t *testing.T) {
	p := NewMemoryStore()
	p.Save(constants.SlotTodos, []byte(`[{"id":1,"title":"Read","date":"2024-03-15","completed":false,"priority":"high","startTime":"08:00","duration":30}]`))
	p.Save(constants.SlotHabits, []byte(`{not json`))
	p.Save(constants.SlotResources, []byte(`null`))

	s := store.New(fixedClock)
	Hydrate(p, s)

	todos := s.Todos()
	if len(todos) != 1 || todos[0].Title != "Read" || todos[0].Priority != models.PriorityHigh {
		t.Errorf("todos = %+v", todos)
	}
	if got := s.Habits(); len(got) != 0 {
		t.Errorf("malformed habits slot should hydrate empty, got %+v", got)
	}
	if got := s.Resources(); got == nil || len(got) != 0 {
		t.Errorf("null resources slot should hydrate empty, got %#v", got)
	}

	// ids continue past what was loaded
	if id := s.NextID(); id <= 1 {
		t.Errorf("NextID = %d after hydrating id 1", id)
	}
}

func TestHydrateDoesNotWrite(t *testing.T) {
	p := NewMemoryStore()
	p.Save(constants.SlotHabits, []byte(`garbage`))

	s := store.New(fixedClock)
	Hydrate(p, s)
	Attach(p, s)

	blob, _, _ := p.Load(constants.SlotHabits)
	if string(blob) != "garbage" {
		t.Errorf("hydrate overwrote slot: %s", blob)
	}
	if _, ok, _ := p.Load(constants.SlotTodos); ok {
		t.Error("hydrate created an absent slot")
	}
}

type failingProvider struct {
	*MemoryStore
	loadErr error
	saveErr error
	saves   int
}

func (f *failingProvider) Load(slot string) ([]byte, bool, error) {
	if f.loadErr != nil {
		return nil, false, f.loadErr
	}
	return f.MemoryStore.Load(slot)
}

func (f *failingProvider) Save(slot string, blob []byte) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.MemoryStore.Save(slot, blob)
}

func TestHydrateUnreadableProvider(t *testing.T) {
	p := &failingProvider{MemoryStore: NewMemoryStore(), loadErr: errors.New("disk on fire")}
	s := store.New(fixedClock)
	Hydrate(p, s)

	if len(s.Todos()) != 0 || len(s.Habits()) != 0 || len(s.Resources()) != 0 {
		t.Error("unreadable provider should hydrate empty collections")
	}
}

func TestPersisterWritesThrough(t *testing.T) {
	p := NewMemoryStore()
	s := store.New(fixedClock)
	ps := Attach(p, s)

	s.AppendHabit(models.Habit{ID: 5, Name: "Read", CompletedDates: []string{}})

	reloaded := store.New(fixedClock)
	Hydrate(p, reloaded)
	if got := reloaded.Habits(); len(got) != 1 || got[0].Name != "Read" {
		t.Errorf("reloaded habits = %+v", got)
	}
	if _, ok, _ := p.Load(constants.SlotTodos); ok {
		t.Error("untouched collection was written")
	}

	ps.Detach()
	s.RemoveHabit(5)
	blob, _, _ := p.Load(constants.SlotHabits)
	if string(blob) == "[]" {
		t.Error("detached persister still wrote")
	}
}

func TestPersisterSwallowsSaveErrors(t *testing.T) {
	p := &failingProvider{MemoryStore: NewMemoryStore(), saveErr: errors.New("read-only")}
	s := store.New(fixedClock)
	Attach(p, s)

	s.AppendTodo(models.Todo{ID: 1, Title: "a"})
	s.AppendTodo(models.Todo{ID: 2, Title: "b"})

	if p.saves != 2 {
		t.Errorf("saves attempted = %d, want 2", p.saves)
	}
	if len(s.Todos()) != 2 {
		t.Error("in-memory state should survive save failures")
	}
}

func TestPersisterFlush(t *testing.T) {
	p := NewMemoryStore()
	s := store.New(fixedClock)
	Attach(p, s).Flush()

	slots, _ := p.Slots()
	if len(slots) != 3 {
		t.Errorf("Flush wrote %v", slots)
	}
	blob, _, _ := p.Load(constants.SlotResources)
	if string(blob) != "[]" {
		t.Errorf("empty collection serialized as %s", blob)
	}
}
