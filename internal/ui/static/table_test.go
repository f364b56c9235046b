package static

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/raphi011/nestedfolder/internal/resolve"
)

func TestResultRow(t *testing.T) {
	t.Parallel()

	t.Run("descended", func(t *testing.T) {
		t.Parallel()
		row := ResultRow(resolve.Result{Input: "a", Path: "a/b/c", Depth: 2, Reason: resolve.ReasonMultipleEntries})
		if len(row) != len(ResultHeaders) {
			t.Fatalf("expected %d columns, got %d", len(ResultHeaders), len(row))
		}
		if row[0] != "a" {
			t.Errorf("INPUT = %q, want %q", row[0], "a")
		}
		// Descended paths are highlighted
		if row[1] == "a/b/c" || !strings.Contains(row[1], "a/b/c") {
			t.Errorf("RESOLVED = %q, want styled a/b/c", row[1])
		}
		if row[2] != "2" {
			t.Errorf("DEPTH = %q, want %q", row[2], "2")
		}
		if !strings.Contains(row[3], "multiple-entries") {
			t.Errorf("STOP = %q, want multiple-entries", row[3])
		}
	})

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()
		row := ResultRow(resolve.Result{Input: "a", Path: "a", Reason: resolve.ReasonEmpty})
		if row[1] != "a" {
			t.Errorf("RESOLVED = %q, want plain %q", row[1], "a")
		}
		if row[2] != "0" {
			t.Errorf("DEPTH = %q, want %q", row[2], "0")
		}
	})

	t.Run("failed", func(t *testing.T) {
		t.Parallel()
		err := &resolve.Error{
			Op:   "open",
			Path: "missing",
			Kind: resolve.KindNotFound,
			Err:  &fs.PathError{Op: "open", Path: "missing", Err: fs.ErrNotExist},
		}
		row := ResultRow(resolve.Result{Input: "missing", Err: err})
		if !strings.Contains(row[1], "open missing: file does not exist") {
			t.Errorf("RESOLVED = %q, want error text", row[1])
		}
		if row[2] != "-" {
			t.Errorf("DEPTH = %q, want -", row[2])
		}
		if !strings.Contains(row[3], "not-found") {
			t.Errorf("STOP = %q, want not-found", row[3])
		}
	})

	t.Run("unclassified error", func(t *testing.T) {
		t.Parallel()
		row := ResultRow(resolve.Result{Input: "x", Err: errors.New("boom")})
		if !strings.Contains(row[3], "io") {
			t.Errorf("STOP = %q, want io", row[3])
		}
	})
}

func TestRenderResults(t *testing.T) {
	t.Parallel()

	out := RenderResults([]resolve.Result{
		{Input: "first", Path: "first/inner", Depth: 1},
		{Input: "second", Path: "second"},
	})
	for _, want := range []string{"INPUT", "RESOLVED", "DEPTH", "STOP", "first/inner", "second"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("table should end with a newline")
	}
}

func TestRenderTable_Empty(t *testing.T) {
	t.Parallel()

	if got := RenderTable([]string{"A"}, nil); got != "" {
		t.Errorf("RenderTable with no rows = %q, want empty", got)
	}
}
