package store

import (
	"errors"
	"fmt"
	"testing"

	"estatekeeper/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleTask(id, createdAt string) types.Task {
	return types.Task{
		ID:        id,
		Title:     "Task " + id,
		Category:  types.CategoryLegal,
		Tags:      []string{"Notice"},
		Status:    types.StatusTodo,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestTaskCRUD(t *testing.T) {
	s := newTestStore(t)

	task := sampleTask("t1", "2024-01-01T00:00:00Z")
	task.DueDate = "2024-04-01"
	if err := s.AddTask(task); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	got, err := s.GetTask("t1")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected task, got nil")
	}
	if got.Title != "Task t1" || got.DueDate != "2024-04-01" || len(got.Tags) != 1 {
		t.Errorf("Round-tripped task mismatch: %+v", got)
	}

	got.Status = types.StatusDone
	got.UpdatedAt = "2024-02-01T00:00:00Z"
	if err := s.UpdateTask(*got); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	updated, _ := s.GetTask("t1")
	if updated.Status != types.StatusDone {
		t.Errorf("Status = %s, want Done", updated.Status)
	}
	if updated.CreatedAt != task.CreatedAt {
		t.Errorf("CreatedAt changed on update: %s", updated.CreatedAt)
	}

	if err := s.DeleteTask("t1"); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if gone, _ := s.GetTask("t1"); gone != nil {
		t.Error("Task should be gone after delete")
	}
}

func TestTaskOrdering(t *testing.T) {
	s := newTestStore(t)

	// Insert out of creation order
	for _, spec := range []struct{ id, created string }{
		{"b", "2024-02-01T00:00:00Z"},
		{"a", "2024-01-01T00:00:00Z"},
		{"c", "2024-03-01T00:00:00Z"},
	} {
		if err := s.AddTask(sampleTask(spec.id, spec.created)); err != nil {
			t.Fatalf("AddTask failed: %v", err)
		}
	}

	tasks, err := s.ListTasks()
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("Expected 3 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != "a" || tasks[1].ID != "b" || tasks[2].ID != "c" {
		t.Errorf("Tasks not ordered by creation time: %s %s %s", tasks[0].ID, tasks[1].ID, tasks[2].ID)
	}
}

func TestTemplateKeyUnique(t *testing.T) {
	s := newTestStore(t)

	first := sampleTask("t1", "2024-01-01T00:00:00Z")
	first.TemplateKey = "ein"
	if err := s.AddTask(first); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	dup := sampleTask("t2", "2024-01-02T00:00:00Z")
	dup.TemplateKey = "ein"
	if err := s.AddTask(dup); err == nil {
		t.Error("Expected duplicate template key insert to fail")
	}

	// Tasks without template keys are unconstrained
	for i := 0; i < 3; i++ {
		plain := sampleTask(fmt.Sprintf("p%d", i), "2024-01-03T00:00:00Z")
		if err := s.AddTask(plain); err != nil {
			t.Fatalf("Plain task insert failed: %v", err)
		}
	}
}

func TestTransactionRollback(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddTask(sampleTask("keep", "2024-01-01T00:00:00Z")); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	boom := errors.New("simulated failure")
	err := s.RunInTx(func(tx *Tx) error {
		if err := tx.InsertTask(sampleTask("gone1", "2024-01-02T00:00:00Z")); err != nil {
			return err
		}
		if err := tx.InsertAsset(types.AssetRecord{
			ID: "gone2", Category: types.AssetBank, Description: "checking",
			CreatedAt: "2024-01-02T00:00:00Z", UpdatedAt: "2024-01-02T00:00:00Z",
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected simulated failure, got %v", err)
	}

	tasks, _ := s.ListTasks()
	if len(tasks) != 1 || tasks[0].ID != "keep" {
		t.Errorf("Task collection mutated by failed transaction: %+v", tasks)
	}
	assets, _ := s.ListAssets()
	if len(assets) != 0 {
		t.Errorf("Asset collection mutated by failed transaction: %+v", assets)
	}
}

func TestDocumentWithBlob(t *testing.T) {
	s := newTestStore(t)

	payload := []byte("deed of trust, scanned")
	doc := types.DocumentRecord{
		ID:        "d1",
		Filename:  "deed.pdf",
		MimeType:  "application/pdf",
		Size:      int64(len(payload)),
		Tags:      []types.DocumentTag{types.DocTagProperty},
		CreatedAt: "2024-01-01T00:00:00Z",
		BlobRef:   "d1",
	}
	if err := s.AddDocument(doc, payload); err != nil {
		t.Fatalf("AddDocument failed: %v", err)
	}

	data, err := s.GetBlob("d1")
	if err != nil {
		t.Fatalf("GetBlob failed: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("Blob bytes mismatch: %q", data)
	}

	// Dangling reference is a lookup miss, not an error
	missing, err := s.GetBlob("no-such-blob")
	if err != nil {
		t.Fatalf("GetBlob on missing id errored: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for missing blob, got %d bytes", len(missing))
	}

	// Delete removes metadata and blob together
	if err := s.DeleteDocument("d1"); err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}
	if data, _ := s.GetBlob("d1"); data != nil {
		t.Error("Blob should be gone after document delete")
	}
	docs, _ := s.ListDocuments()
	if len(docs) != 0 {
		t.Errorf("Expected no documents, got %d", len(docs))
	}
}

func TestDocumentOrderingNewestFirst(t *testing.T) {
	s := newTestStore(t)

	for _, spec := range []struct{ id, created string }{
		{"old", "2024-01-01T00:00:00Z"},
		{"new", "2024-03-01T00:00:00Z"},
		{"mid", "2024-02-01T00:00:00Z"},
	} {
		doc := types.DocumentRecord{
			ID: spec.id, Filename: spec.id + ".pdf", MimeType: "application/pdf",
			CreatedAt: spec.created, BlobRef: spec.id,
		}
		if err := s.AddDocument(doc, []byte(spec.id)); err != nil {
			t.Fatalf("AddDocument failed: %v", err)
		}
	}

	docs, err := s.ListDocuments()
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if docs[0].ID != "new" || docs[1].ID != "mid" || docs[2].ID != "old" {
		t.Errorf("Documents not newest-first: %s %s %s", docs[0].ID, docs[1].ID, docs[2].ID)
	}
}

func TestExpenseOrderingByDateDesc(t *testing.T) {
	s := newTestStore(t)

	for _, spec := range []struct{ id, date string }{
		{"e1", "2024-01-15"},
		{"e2", "2024-03-10"},
		{"e3", "2024-02-20"},
	} {
		e := types.ExpenseRecord{
			ID: spec.id, Date: spec.date, Payee: "vendor", Description: "x",
			Category: types.ExpenseUtilities, Amount: 10, PaidFrom: "Estate",
			CreatedAt: "2024-01-01T00:00:00Z", UpdatedAt: "2024-01-01T00:00:00Z",
		}
		if err := s.AddExpense(e); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}
	}

	expenses, err := s.ListExpenses()
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if expenses[0].ID != "e2" || expenses[1].ID != "e3" || expenses[2].ID != "e1" {
		t.Errorf("Expenses not date-descending: %s %s %s", expenses[0].ID, expenses[1].ID, expenses[2].ID)
	}
}

func TestKVDefaults(t *testing.T) {
	s := newTestStore(t)

	profile, err := s.Profile()
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if profile != nil {
		t.Errorf("Expected nil profile on fresh store, got %+v", profile)
	}

	settings, err := s.Settings()
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	if settings.Theme != "system" {
		t.Errorf("Default theme = %q, want system", settings.Theme)
	}

	meta, err := s.Metadata()
	if err != nil {
		t.Fatalf("Metadata failed: %v", err)
	}
	if meta.ChecklistSeeded {
		t.Error("Fresh store should not be checklist-seeded")
	}

	if err := s.SetProfile(&types.EstateProfile{DecedentFullName: "Jane Doe", DateOfDeath: "2024-01-01"}); err != nil {
		t.Fatalf("SetProfile failed: %v", err)
	}
	profile, _ = s.Profile()
	if profile == nil || profile.DecedentFullName != "Jane Doe" {
		t.Errorf("Profile round-trip failed: %+v", profile)
	}
}

func TestClearAll(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddTask(sampleTask("t1", "2024-01-01T00:00:00Z")); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if err := s.SetSettings(types.AppSettings{Theme: "dark"}); err != nil {
		t.Fatalf("SetSettings failed: %v", err)
	}

	if err := s.ClearAll(); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	tasks, _ := s.ListTasks()
	if len(tasks) != 0 {
		t.Errorf("Tasks survived ClearAll: %+v", tasks)
	}
	// kv is cleared too: settings revert to defaults
	settings, _ := s.Settings()
	if settings.Theme != "system" {
		t.Errorf("Settings survived ClearAll: %+v", settings)
	}
}

func TestSubscriptions(t *testing.T) {
	s := newTestStore(t)

	taskCh, cancelTasks := s.Subscribe(Tasks)
	assetCh, cancelAssets := s.Subscribe(Assets)
	defer cancelTasks()
	defer cancelAssets()

	if err := s.AddTask(sampleTask("t1", "2024-01-01T00:00:00Z")); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	select {
	case ev := <-taskCh:
		if ev.Collection != Tasks {
			t.Errorf("Event collection = %s, want tasks", ev.Collection)
		}
	default:
		t.Fatal("Expected task change notification after commit")
	}

	select {
	case <-assetCh:
		t.Fatal("Asset subscriber notified for task-only transaction")
	default:
	}

	// Failed transactions notify nobody
	boom := errors.New("fail")
	_ = s.RunInTx(func(tx *Tx) error {
		if err := tx.InsertTask(sampleTask("t2", "2024-01-02T00:00:00Z")); err != nil {
			return err
		}
		return boom
	})
	select {
	case <-taskCh:
		t.Fatal("Subscriber notified for rolled-back transaction")
	default:
	}
}

func TestMigrationsOnExistingDatabase(t *testing.T) {
	s := newTestStore(t)

	// Simulate an old schema missing a newer column, then re-run migrate.
	if _, err := s.db.Exec(`ALTER TABLE tasks DROP COLUMN related_ids`); err != nil {
		t.Skipf("sqlite build lacks DROP COLUMN: %v", err)
	}
	if err := s.migrate(); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	exists, err := s.columnExists("tasks", "related_ids")
	if err != nil {
		t.Fatalf("columnExists failed: %v", err)
	}
	if !exists {
		t.Error("Expected related_ids column after migration")
	}
}
