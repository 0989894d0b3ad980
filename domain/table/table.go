package table

import (
	"fmt"
	"math"
	"strconv"
)

// Kind tags a column as numeric or categorical. The tag is resolved once at
// ingestion and never re-inferred downstream.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
)

// Field describes a single column: its name and resolved kind.
type Field struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Schema is the ordered set of fields in a table. Every column belongs to
// exactly one kind.
type Schema []Field

// Table is a two-dimensional table of named, typed columns. Numeric columns
// use NaN as the missing sentinel; categorical columns use the empty string.
// Pipeline stages mutate a Table in place.
type Table struct {
	Fields      Schema
	Numeric     map[string][]float64
	Categorical map[string][]string
	rows        int
}

// New creates an empty table expecting the given number of rows.
func New(rows int) *Table {
	return &Table{
		Numeric:     make(map[string][]float64),
		Categorical: make(map[string][]string),
		rows:        rows,
	}
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int {
	return t.rows
}

// AddNumeric appends a numeric column. The values slice must have NumRows
// entries, with NaN marking missing cells.
func (t *Table) AddNumeric(name string, values []float64) error {
	if len(values) != t.rows {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), t.rows)
	}
	if t.hasColumn(name) {
		return fmt.Errorf("duplicate column %q", name)
	}
	t.Fields = append(t.Fields, Field{Name: name, Kind: KindNumeric})
	t.Numeric[name] = values
	return nil
}

// AddCategorical appends a categorical column. The values slice must have
// NumRows entries, with "" marking missing cells.
func (t *Table) AddCategorical(name string, values []string) error {
	if len(values) != t.rows {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), t.rows)
	}
	if t.hasColumn(name) {
		return fmt.Errorf("duplicate column %q", name)
	}
	t.Fields = append(t.Fields, Field{Name: name, Kind: KindCategorical})
	t.Categorical[name] = values
	return nil
}

func (t *Table) hasColumn(name string) bool {
	for _, f := range t.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// NumericFields returns the numeric field names in schema order.
func (t *Table) NumericFields() []string {
	var names []string
	for _, f := range t.Fields {
		if f.Kind == KindNumeric {
			names = append(names, f.Name)
		}
	}
	return names
}

// CategoricalFields returns the categorical field names in schema order.
func (t *Table) CategoricalFields() []string {
	var names []string
	for _, f := range t.Fields {
		if f.Kind == KindCategorical {
			names = append(names, f.Name)
		}
	}
	return names
}

// ColumnNames returns all field names in schema order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}

// MissingCount returns the number of missing cells in the named column.
func (t *Table) MissingCount(name string) int {
	count := 0
	if vals, ok := t.Numeric[name]; ok {
		for _, v := range vals {
			if math.IsNaN(v) {
				count++
			}
		}
		return count
	}
	for _, v := range t.Categorical[name] {
		if v == "" {
			count++
		}
	}
	return count
}

// MissingCounts returns per-column missing-cell counts in schema order.
func (t *Table) MissingCounts() map[string]int {
	counts := make(map[string]int, len(t.Fields))
	for _, f := range t.Fields {
		counts[f.Name] = t.MissingCount(f.Name)
	}
	return counts
}

// FilterRows keeps only the rows where keep[i] is true, across every column.
func (t *Table) FilterRows(keep []bool) error {
	if len(keep) != t.rows {
		return fmt.Errorf("keep mask has %d entries, table has %d rows", len(keep), t.rows)
	}
	kept := 0
	for _, k := range keep {
		if k {
			kept++
		}
	}
	for name, vals := range t.Numeric {
		out := make([]float64, 0, kept)
		for i, v := range vals {
			if keep[i] {
				out = append(out, v)
			}
		}
		t.Numeric[name] = out
	}
	for name, vals := range t.Categorical {
		out := make([]string, 0, kept)
		for i, v := range vals {
			if keep[i] {
				out = append(out, v)
			}
		}
		t.Categorical[name] = out
	}
	t.rows = kept
	return nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := New(t.rows)
	c.Fields = append(Schema(nil), t.Fields...)
	for name, vals := range t.Numeric {
		c.Numeric[name] = append([]float64(nil), vals...)
	}
	for name, vals := range t.Categorical {
		c.Categorical[name] = append([]string(nil), vals...)
	}
	return c
}

// Cell renders the cell at (row, col name) as a string. Missing cells render
// empty; numeric cells use the shortest round-trip representation.
func (t *Table) Cell(row int, name string) string {
	if vals, ok := t.Numeric[name]; ok {
		v := vals[row]
		if math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return t.Categorical[name][row]
}

// Records renders the table as a header row followed by one string row per
// data row, in schema order.
func (t *Table) Records() [][]string {
	records := make([][]string, 0, t.rows+1)
	records = append(records, t.ColumnNames())
	for i := 0; i < t.rows; i++ {
		row := make([]string, len(t.Fields))
		for j, f := range t.Fields {
			row[j] = t.Cell(i, f.Name)
		}
		records = append(records, row)
	}
	return records
}
