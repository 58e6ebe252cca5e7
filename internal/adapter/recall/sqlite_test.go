package recall

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "history.db")
	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_AppendRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, cmd := range []string{"agents", "greeks", "agents"} {
		if err := store.Append(ctx, "console", cmd); err != nil {
			t.Fatalf("Append(%q): %v", cmd, err)
		}
	}
	if err := store.Append(ctx, "other", "capital"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := store.Recent(ctx, "console", 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	want := []string{"agents", "greeks", "agents"}
	if len(got) != len(want) {
		t.Fatalf("Recent = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Recent[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	got, err = store.Recent(ctx, "console", 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 || got[0] != "greeks" || got[1] != "agents" {
		t.Errorf("Recent(limit 2) = %v, want newest two oldest first", got)
	}
}

func TestSQLiteStore_RecentEmpty(t *testing.T) {
	store := newTestStore(t)
	got, err := store.Recent(context.Background(), "console", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Recent = %v, want empty", got)
	}
}

func TestSQLiteStore_Prune(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	for _, cmd := range []string{"a", "b", "c", "d"} {
		if err := store.Append(ctx, "console", cmd); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	n, err := store.Prune(ctx, "console", 2)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if n != 2 {
		t.Errorf("pruned = %d, want 2", n)
	}
	got, _ := store.Recent(ctx, "console", 0)
	if len(got) != 2 || got[0] != "c" || got[1] != "d" {
		t.Errorf("after prune = %v, want [c d]", got)
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := store.Append(ctx, "console", "workflow"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	store.Close()

	store, err = NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()
	got, _ := store.Recent(ctx, "console", 0)
	if len(got) != 1 || got[0] != "workflow" {
		t.Errorf("Recent after reopen = %v", got)
	}
}
