package cli

import (
	"strings"
	"testing"

	"github.com/julianstephens/planhub/internal/constants"
)

func TestDoctorHealthyStore(t *testing.T) {
	ctx, out := setupTestContext(t)
	ctx.Scheduler.AddTodo("Dentist", "2024-03-15")

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor failed on a healthy store: %v\n%s", err, out.String())
	}
	s := out.String()
	for _, want := range []string{
		"✓ Storage reachable: OK",
		"✓ Schema version: OK",
		"✓ Slots decodable: OK",
		"⚠ Backups present: WARNING",
		"✓ Data validation: OK",
		"All diagnostics passed!",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}
}

func TestDoctorMalformedSlot(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := ctx.Provider.Save(constants.SlotResources, []byte(`{"id":1}`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("doctor should fail on a malformed slot")
	}
	if !strings.Contains(out.String(), "❌ Slots decodable: FAIL") {
		t.Errorf("output = %q", out.String())
	}
}

func TestDoctorConflictsAreWarnings(t *testing.T) {
	ctx, out := setupTestContext(t)
	ctx.Scheduler.AddTodo("A", "2024-03-15")
	ctx.Scheduler.AddTodo("B", "2024-03-15")

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("conflicts should not fail doctor: %v", err)
	}
	if !strings.Contains(out.String(), "⚠ Data validation: WARNING") {
		t.Errorf("output = %q", out.String())
	}
}
