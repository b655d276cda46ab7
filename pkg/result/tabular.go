package result

// TabularData is the capability probe for column-oriented values: anything
// that can report its column names and row records renders as a table without
// going through the list-of-mappings detection. Query results, CSV readers,
// and dataframe-style wrappers satisfy it.
type TabularData interface {
	Columns() []string
	Records() [][]any
}

// GridRenderer renders TabularData values. It sits at the front of the
// default probe order so structured tabular types never fall through to the
// shape heuristics.
type GridRenderer struct{}

// Name implements Renderer.
func (GridRenderer) Name() string { return "grid" }

// CanRender accepts any value implementing TabularData.
func (GridRenderer) CanRender(value any) bool {
	_, ok := value.(TabularData)
	return ok
}

// Render emits a table-tagged result with explicit column order.
func (GridRenderer) Render(value any) (RenderedResult, error) {
	tab := value.(TabularData)
	columns := append([]string(nil), tab.Columns()...)
	records := tab.Records()
	rows := make([][]any, 0, len(records))
	for _, record := range records {
		rows = append(rows, append([]any(nil), record...))
	}
	return RenderedResult{
		Type: TypeTable,
		Data: map[string]any{
			"columns": columns,
			"rows":    rows,
		},
		Options: map[string]any{"count": len(rows)},
	}, nil
}
