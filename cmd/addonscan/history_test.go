package main

import (
	"testing"

	"github.com/fcaddons/addonscan/internal/model"
)

func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "history [addons-root]" {
			t.Errorf("expected use 'history [addons-root]', got %q", cmd.Use)
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"list", "with-run-id", "json"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected flag %q", name)
			}
		}
	})
}

func TestDiffRecords(t *testing.T) {
	t.Parallel()

	t.Run("detects added, removed and changed addons", func(t *testing.T) {
		t.Parallel()

		base := []model.Record{
			{Name: "stays", OldLayout: true},
			{Name: "migrates", OldLayout: true},
			{Name: "vanishes"},
		}
		head := []model.Record{
			{Name: "stays", OldLayout: true},
			{Name: "migrates", OldLayout: true, NewLayout: true},
			{Name: "appears", NewLayout: true},
		}

		diff := diffRecords(base, head)

		if len(diff.Added) != 1 || diff.Added[0] != "appears" {
			t.Errorf("unexpected added list: %v", diff.Added)
		}
		if len(diff.Removed) != 1 || diff.Removed[0] != "vanishes" {
			t.Errorf("unexpected removed list: %v", diff.Removed)
		}
		if len(diff.Changed) != 1 {
			t.Fatalf("expected 1 change, got %d", len(diff.Changed))
		}
		c := diff.Changed[0]
		if c.Name != "migrates" || c.From != "old" || c.To != "mixed" {
			t.Errorf("unexpected change: %+v", c)
		}
		if diff.Unchanged != 1 {
			t.Errorf("expected 1 unchanged, got %d", diff.Unchanged)
		}
	})

	t.Run("identical runs produce empty diff", func(t *testing.T) {
		t.Parallel()

		records := []model.Record{
			{Name: "a", OldLayout: true},
			{Name: "b", NewLayout: true},
		}

		diff := diffRecords(records, records)
		if len(diff.Added) != 0 || len(diff.Removed) != 0 || len(diff.Changed) != 0 {
			t.Errorf("expected empty diff, got %+v", diff)
		}
		if diff.Unchanged != 2 {
			t.Errorf("expected 2 unchanged, got %d", diff.Unchanged)
		}
	})

	t.Run("output lists are sorted by name", func(t *testing.T) {
		t.Parallel()

		head := []model.Record{
			{Name: "zeta"},
			{Name: "alpha"},
		}

		diff := diffRecords(nil, head)
		if len(diff.Added) != 2 || diff.Added[0] != "alpha" || diff.Added[1] != "zeta" {
			t.Errorf("expected sorted added list, got %v", diff.Added)
		}
	})
}
