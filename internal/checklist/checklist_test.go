package checklist

import (
	"testing"
	"time"

	"estatekeeper/internal/store"
	"estatekeeper/internal/types"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testProfile() *types.EstateProfile {
	return &types.EstateProfile{
		DecedentFullName:       "Jane Doe",
		DateOfDeath:            "2024-01-01",
		County:                 "Chester",
		State:                  "PA",
		LettersGrantedDate:     "2024-02-01",
		FirstAdvertisementDate: "2024-02-15",
	}
}

func taskByTemplateKey(t *testing.T, s *store.Store, key string) *types.Task {
	t.Helper()
	tasks, err := s.ListTasks()
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	for i := range tasks {
		if tasks[i].TemplateKey == key {
			return &tasks[i]
		}
	}
	return nil
}

func TestSaveProfile_SeedsCatalog(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := SaveProfile(s, testProfile(), now); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	tasks, err := s.ListTasks()
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != len(Catalog) {
		t.Fatalf("Expected %d seeded tasks, got %d", len(Catalog), len(tasks))
	}

	meta, _ := s.Metadata()
	if !meta.ChecklistSeeded {
		t.Error("Seeded flag not set after first save")
	}

	profile, _ := s.Profile()
	if profile == nil || profile.DecedentFullName != "Jane Doe" {
		t.Errorf("Profile not stored: %+v", profile)
	}

	// Derived due dates
	if task := taskByTemplateKey(t, s, "rule105"); task.DueDate != "2024-05-01" {
		t.Errorf("rule105 due = %q, want 2024-05-01", task.DueDate)
	}
	if task := taskByTemplateKey(t, s, "inheritanceTax"); task.DueDate != "2024-10-01" {
		t.Errorf("inheritanceTax due = %q, want 2024-10-01", task.DueDate)
	}
	if task := taskByTemplateKey(t, s, "newspaperNotice-2"); task.DueDate != "2024-02-22" {
		t.Errorf("newspaperNotice-2 due = %q, want 2024-02-22", task.DueDate)
	}
	if task := taskByTemplateKey(t, s, "ein"); task.DueDate != "" {
		t.Errorf("ein should have no due date, got %q", task.DueDate)
	}
}

func TestSaveProfile_Idempotent(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := SaveProfile(s, testProfile(), now); err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	first, _ := s.ListTasks()

	if err := SaveProfile(s, testProfile(), now.Add(time.Hour)); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}
	second, _ := s.ListTasks()

	if len(first) != len(second) {
		t.Errorf("Task count changed on identical re-save: %d -> %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("Task id changed on re-save: %s -> %s", first[i].ID, second[i].ID)
		}
		if first[i].CreatedAt != second[i].CreatedAt {
			t.Errorf("Task createdAt changed on re-save: %s", first[i].TemplateKey)
		}
	}
}

func TestSaveProfile_DeletedTaskStaysDeleted(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := SaveProfile(s, testProfile(), now); err != nil {
		t.Fatalf("First save failed: %v", err)
	}

	ein := taskByTemplateKey(t, s, "ein")
	if ein == nil {
		t.Fatal("ein task missing after seed")
	}
	if err := s.DeleteTask(ein.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	if err := SaveProfile(s, testProfile(), now.Add(time.Hour)); err != nil {
		t.Fatalf("Re-save failed: %v", err)
	}

	if taskByTemplateKey(t, s, "ein") != nil {
		t.Error("Deleted template task resurrected by re-save")
	}
	tasks, _ := s.ListTasks()
	if len(tasks) != len(Catalog)-1 {
		t.Errorf("Expected %d tasks after delete + re-save, got %d", len(Catalog)-1, len(tasks))
	}
}

func TestSaveProfile_DueDatesPropagateOnEdit(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := SaveProfile(s, testProfile(), now); err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	before := taskByTemplateKey(t, s, "lawReporterNotice-2")
	if before.DueDate != "2024-02-22" {
		t.Fatalf("Initial due = %q, want 2024-02-22", before.DueDate)
	}

	edited := testProfile()
	edited.FirstAdvertisementDate = "2024-03-01"
	if err := SaveProfile(s, edited, now.Add(time.Hour)); err != nil {
		t.Fatalf("Re-save failed: %v", err)
	}

	after := taskByTemplateKey(t, s, "lawReporterNotice-2")
	if after.DueDate != "2024-03-08" {
		t.Errorf("Due date did not propagate: %q, want 2024-03-08", after.DueDate)
	}
	if after.ID != before.ID {
		t.Errorf("Task id changed on due-date propagation")
	}
	if after.CreatedAt != before.CreatedAt {
		t.Errorf("CreatedAt changed on due-date propagation")
	}
}

func TestSaveProfile_UserEditsSurviveReseed(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := SaveProfile(s, testProfile(), now); err != nil {
		t.Fatalf("First save failed: %v", err)
	}

	task := taskByTemplateKey(t, s, "bankAccount")
	task.Status = types.StatusInProgress
	task.AssignedTo = []string{"Pat"}
	task.UpdatedAt = now.Format(time.RFC3339)
	if err := s.UpdateTask(*task); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	if err := SaveProfile(s, testProfile(), now.Add(time.Hour)); err != nil {
		t.Fatalf("Re-save failed: %v", err)
	}

	after := taskByTemplateKey(t, s, "bankAccount")
	if after.Status != types.StatusInProgress {
		t.Errorf("Status reset by re-seed: %s", after.Status)
	}
	if len(after.AssignedTo) != 1 || after.AssignedTo[0] != "Pat" {
		t.Errorf("Assignees reset by re-seed: %v", after.AssignedTo)
	}
}

func TestBuildDrafts_CatalogShape(t *testing.T) {
	drafts := BuildDrafts(nil)
	if len(drafts) != len(Catalog) {
		t.Fatalf("Expected %d drafts, got %d", len(Catalog), len(drafts))
	}

	seen := make(map[string]bool)
	for _, d := range drafts {
		if d.TemplateKey == "" {
			t.Error("Draft with empty template key")
		}
		if seen[d.TemplateKey] {
			t.Errorf("Duplicate template key %s", d.TemplateKey)
		}
		seen[d.TemplateKey] = true
		if d.DueDate != "" {
			t.Errorf("Draft %s has a due date with no profile", d.TemplateKey)
		}
	}
}
