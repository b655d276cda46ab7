package result

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type queryResult struct {
	cols []string
	rows [][]any
}

func (q queryResult) Columns() []string { return q.cols }
func (q queryResult) Records() [][]any  { return q.rows }

func TestGridRendererPreemptsShapeHeuristics(t *testing.T) {
	t.Parallel()

	value := queryResult{
		cols: []string{"id", "status"},
		rows: [][]any{{1, "pass"}, {2, "fail"}},
	}

	rendered, err := NewRegistry().Render(value, "")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if rendered.Type != TypeTable {
		t.Fatalf("Type = %q, want %q", rendered.Type, TypeTable)
	}

	data := rendered.Data.(map[string]any)
	if diff := cmp.Diff([]string{"id", "status"}, data["columns"]); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if got := rendered.Options["count"]; got != 2 {
		t.Fatalf("count = %v, want 2", got)
	}
}

func TestGridRendererCopiesRows(t *testing.T) {
	t.Parallel()

	source := queryResult{
		cols: []string{"id"},
		rows: [][]any{{1}},
	}
	rendered, err := GridRenderer{}.Render(source)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	source.rows[0][0] = 99
	rows := rendered.Data.(map[string]any)["rows"].([][]any)
	if rows[0][0] != 1 {
		t.Fatalf("rendered rows alias the source records")
	}
}
