package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/today/internal/model"
)

var testNow = time.Date(2026, 2, 19, 12, 0, 0, 0, time.UTC)

func sampleTasks() []model.Task {
	exp := testNow.Add(2 * time.Hour)
	done := model.NewTask("Done already", testNow.Add(-time.Hour), nil)
	done.IsCompleted = true
	return []model.Task{
		model.NewTask("Write schema", testNow, nil),
		model.NewTask("Café ☕ with \"quotes\"", testNow.Add(time.Minute), &exp),
		done,
		model.NewTask("", testNow.Add(2*time.Minute), nil),
	}
}

func assertSameTasks(t *testing.T, got, want []model.Task) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("task %d mismatch:\n got  %#v\n want %#v", i, got[i], want[i])
		}
	}
}

// storeContract runs the behaviour every Store implementation must share.
func storeContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	empty, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty store, got %d", len(empty))
	}

	tasks := sampleTasks()
	if err := store.Save(ctx, tasks); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertSameTasks(t, got, tasks)

	if err := store.Save(ctx, tasks[2:3]); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("load after overwrite: %v", err)
	}
	assertSameTasks(t, got, tasks[2:3])

	if err := store.Save(ctx, nil); err != nil {
		t.Fatalf("save empty: %v", err)
	}
	got, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("load after empty save: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty after empty save, got %d", len(got))
	}
}

func TestFileStoreContract(t *testing.T) {
	storeContract(t, NewFileStore(filepath.Join(t.TempDir(), "nested", "tasks.json")))
}

func TestMemoryStoreContract(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestSQLiteStoreContract(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "today-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	storeContract(t, store)
}

func TestFileStoreWritesExplicitNullExpiry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	store := NewFileStore(path)
	if err := store.Save(context.Background(), []model.Task{model.NewTask("a", testNow, nil)}); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), `"expiresAt": null`) {
		t.Fatalf("expected explicit null expiry in %s", raw)
	}
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected temp file to be renamed away, stat err=%v", err)
	}
}

func TestFileStoreLoadEdgeCases(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name    string
		content string
		wantErr error
		wantLen int
	}{
		{name: "blank file", content: "  \n", wantLen: 0},
		{name: "empty array", content: "[]", wantLen: 0},
		{name: "json null", content: "null", wantLen: 0},
		{name: "garbage", content: "{not json", wantErr: ErrCorrupt},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tc.name, " ", "_")+".json")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}
			got, err := NewFileStore(path).Load(context.Background())
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if len(got) != tc.wantLen {
				t.Fatalf("expected %d tasks, got %d", tc.wantLen, len(got))
			}
		})
	}
}

func TestMemoryStoreLoadReturnsIndependentCopy(t *testing.T) {
	store := NewMemoryStore(sampleTasks()...)
	first, _ := store.Load(context.Background())
	first[0].Title = "mutated"
	*first[1].ExpiresAt = testNow
	second, _ := store.Load(context.Background())
	if second[0].Title != "Write schema" || second[1].ExpiresAt.Equal(testNow) {
		t.Fatalf("store handed out shared memory: %#v", second[:2])
	}
}

func TestSQLiteStoreLargeCollectionKeepsOrder(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "large.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	tasks := make([]model.Task, 0, 250)
	for i := 0; i < 250; i++ {
		// Creation times go backwards so ordering by time would fail.
		tasks = append(tasks, model.NewTask("task", testNow.Add(-time.Duration(i)*time.Second), nil))
	}
	if err := store.Save(context.Background(), tasks); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertSameTasks(t, got, tasks)
}
