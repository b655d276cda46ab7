package result

import (
	"encoding/json"
	"fmt"
	"sort"
)

// TableRenderer handles non-empty homogeneous lists of mappings. Its
// CanRender domain overlaps ChartRenderer's on purpose; registration order
// resolves the tie in favour of tables (see NewRegistry).
type TableRenderer struct{}

// Name implements Renderer.
func (TableRenderer) Name() string { return "table" }

// CanRender accepts non-empty lists whose every element is a string-keyed
// mapping.
func (TableRenderer) CanRender(value any) bool {
	_, ok := asRecordList(value)
	return ok
}

// Render derives the column set from the first record (sorted for
// determinism) and projects every record onto it.
func (TableRenderer) Render(value any) (RenderedResult, error) {
	records, ok := asRecordList(value)
	if !ok {
		return RenderedResult{}, fmt.Errorf("result: table renderer received a non-tabular value %T", value)
	}

	columns := recordColumns(records[0])
	rows := make([][]any, 0, len(records))
	for _, record := range records {
		row := make([]any, len(columns))
		for i, col := range columns {
			row[i] = record[col]
		}
		rows = append(rows, row)
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

// ChartRenderer handles the same record-list shape as TableRenderer but
// additionally requires at least one numeric value among the first record's
// values. Under the default order it is only reachable through an explicit
// rendererType request.
type ChartRenderer struct{}

// Name implements Renderer.
func (ChartRenderer) Name() string { return "chart" }

// CanRender accepts record lists whose first record carries a numeric value.
func (ChartRenderer) CanRender(value any) bool {
	records, ok := asRecordList(value)
	if !ok {
		return false
	}
	for _, v := range records[0] {
		if _, ok := asNumber(v); ok {
			return true
		}
	}
	return false
}

// Render splits the first record's columns into label and series columns:
// numeric columns become series, the first non-numeric column provides
// labels.
func (ChartRenderer) Render(value any) (RenderedResult, error) {
	records, ok := asRecordList(value)
	if !ok {
		return RenderedResult{}, fmt.Errorf("result: chart renderer received a non-tabular value %T", value)
	}

	columns := recordColumns(records[0])
	labelColumn := ""
	var seriesColumns []string
	for _, col := range columns {
		if _, numeric := asNumber(records[0][col]); numeric {
			seriesColumns = append(seriesColumns, col)
		} else if labelColumn == "" {
			labelColumn = col
		}
	}

	labels := make([]string, 0, len(records))
	series := make(map[string][]float64, len(seriesColumns))
	for _, record := range records {
		if labelColumn != "" {
			labels = append(labels, fmt.Sprint(record[labelColumn]))
		}
		for _, col := range seriesColumns {
			n, _ := asNumber(record[col])
			series[col] = append(series[col], n)
		}
	}

	return RenderedResult{
		Type: TypeChart,
		Data: map[string]any{
			"labels": labels,
			"series": series,
		},
		Options: map[string]any{"chart": "bar"},
	}, nil
}

// JSONRenderer is the generic fallback: it accepts anything the standard
// JSON encoder can marshal, which in practice is every value the registry
// sees.
type JSONRenderer struct{}

// Name implements Renderer.
func (JSONRenderer) Name() string { return "json" }

// CanRender accepts any JSON-serializable value.
func (JSONRenderer) CanRender(value any) bool {
	_, err := json.Marshal(value)
	return err == nil
}

// Render passes the value through untouched; serialisation happens when the
// enclosing RenderedResult is encoded.
func (JSONRenderer) Render(value any) (RenderedResult, error) {
	return RenderedResult{Type: TypeJSON, Data: value}, nil
}

func asRecordList(value any) ([]map[string]any, bool) {
	switch v := value.(type) {
	case []map[string]any:
		if len(v) == 0 {
			return nil, false
		}
		return v, true
	case []any:
		if len(v) == 0 {
			return nil, false
		}
		records := make([]map[string]any, 0, len(v))
		for _, item := range v {
			record, ok := item.(map[string]any)
			if !ok {
				return nil, false
			}
			records = append(records, record)
		}
		return records, true
	default:
		return nil, false
	}
}

func recordColumns(record map[string]any) []string {
	columns := make([]string, 0, len(record))
	for col := range record {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return columns
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
