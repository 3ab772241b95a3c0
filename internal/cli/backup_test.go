package cli

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestBackupCreateListRestore(t *testing.T) {
	ctx, out := setupTestContext(t)
	todo, _ := ctx.Scheduler.AddTodo("Keep me", "2024-03-15")

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	backups, err := ctx.Backups.ListBackups()
	if err != nil || len(backups) != 1 {
		t.Fatalf("ListBackups = %v, %v", backups, err)
	}
	name := filepath.Base(backups[0].Path)
	if !strings.Contains(out.String(), name) {
		t.Errorf("output = %q, want backup name %s", out.String(), name)
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out.String(), name) {
		t.Errorf("list output = %q", out.String())
	}

	ctx.Scheduler.DeleteTodo(todo.ID)

	out.Reset()
	if err := (&BackupRestoreCmd{BackupFile: name, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("backup restore failed: %v", err)
	}
	if _, ok := ctx.Store.Todo(todo.ID); !ok {
		t.Error("restore should bring back the deleted todo")
	}
	if !strings.Contains(out.String(), "Restored from") {
		t.Errorf("restore output = %q", out.String())
	}
}

func TestBackupRestoreDeclined(t *testing.T) {
	ctx, out := setupTestContext(t)
	todo, _ := ctx.Scheduler.AddTodo("Keep me", "2024-03-15")
	path, err := ctx.Backups.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	ctx.Scheduler.DeleteTodo(todo.ID)

	ctx.In = strings.NewReader("n\n")
	if err := (&BackupRestoreCmd{BackupFile: path}).Run(ctx); err != nil {
		t.Fatalf("declined restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("output = %q", out.String())
	}
	if _, ok := ctx.Store.Todo(todo.ID); ok {
		t.Error("declined restore should not change the store")
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _ := setupTestContext(t)

	if err := (&BackupRestoreCmd{BackupFile: "planhub-20000101-0000.json", Yes: true}).Run(ctx); err == nil {
		t.Error("restoring a missing file should fail")
	}
}

func TestBackupListEmpty(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("output = %q", out.String())
	}
}

func TestPerformAutomaticBackup(t *testing.T) {
	ctx, _ := setupTestContext(t)

	ctx.PerformAutomaticBackup()
	if backups, _ := ctx.Backups.ListBackups(); len(backups) != 0 {
		t.Fatalf("empty store should not be backed up, got %d", len(backups))
	}

	ctx.Habits.AddHabit("Read")
	ctx.PerformAutomaticBackup()
	ctx.PerformAutomaticBackup()
	if backups, _ := ctx.Backups.ListBackups(); len(backups) != 1 {
		t.Errorf("want one backup per day, got %d", len(backups))
	}
}
