package cli

import (
	"path/filepath"
	"testing"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := openHistoryAt(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func TestHistory_AppendAndEntries(t *testing.T) {
	h := openTestHistory(t)

	stmts := []string{"SELECT 1", "SHOW tables", "SELECT * FROM orders"}
	for _, s := range stmts {
		if err := h.Append(s); err != nil {
			t.Fatal(err)
		}
	}

	got := h.Entries()
	if len(got) != len(stmts) {
		t.Fatalf("Entries() returned %d statements, want %d", len(got), len(stmts))
	}
	for i, want := range stmts {
		if got[i] != want {
			t.Errorf("entry %d = %q, want %q", i, got[i], want)
		}
	}
}

func TestHistory_Empty(t *testing.T) {
	h := openTestHistory(t)

	if got := h.Entries(); len(got) != 0 {
		t.Errorf("Entries() on a fresh database = %v, want none", got)
	}
}

func TestHistory_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	h, err := openHistoryAt(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Append("SELECT 1"); err != nil {
		t.Fatal(err)
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}

	h, err = openHistoryAt(path)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	got := h.Entries()
	if len(got) != 1 || got[0] != "SELECT 1" {
		t.Errorf("Entries() after reopen = %v", got)
	}
}
