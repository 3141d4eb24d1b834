// Package texttable implements an ordered header+rows table (§4.5): CSV
// ingest, sort, superkey-based extend, and terminal-width-aware rendering.
package texttable

import (
	"fmt"
	"sort"
	"strings"
)

// Row is one record in a Table. Values holds each cell in header order;
// scalars other than strings (ints, nil, lists) are preserved for display
// and only stringified in string contexts (§4.5).
type Row struct {
	table  *Table
	Row    int // 1-based position, maintained by every mutator
	Values []any
}

// Table returns the owning Table.
func (r *Row) Table() *Table { return r.table }

// Strings renders every cell via its printable form.
func (r *Row) Strings() []string {
	out := make([]string, len(r.Values))
	for i, v := range r.Values {
		out[i] = printable(v)
	}
	return out
}

func printable(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = fmt.Sprint(e)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(t)
	}
}

// Table is an ordered header plus an ordered list of Rows. Superkey holds
// the columns (by name) that uniquely address a row for extend and sort.
type Table struct {
	header   []string
	index    map[string]int
	rows     []*Row
	Superkey []string
}

// New builds an empty Table over header. Duplicate header names are a
// caller error and produce a Table that cannot be reliably indexed.
func New(header []string) *Table {
	t := &Table{header: append([]string(nil), header...)}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.header))
	for i, name := range t.header {
		t.index[name] = i
	}
}

// Header returns the column names in declared order.
func (t *Table) Header() []string { return append([]string(nil), t.header...) }

// ColumnIndex returns the 0-based index of name, or -1.
func (t *Table) ColumnIndex(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// Rows returns the live rows in table order.
func (t *Table) Rows() []*Row { return t.rows }

// Len is the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Append accepts either an ordered slice (length equal to the header) or a
// map keyed by header name (every header key must be present; extra keys
// are ignored). Returns the appended Row.
func (t *Table) Append(record any) (*Row, error) {
	values, err := t.materialize(record)
	if err != nil {
		return nil, err
	}
	row := &Row{table: t, Row: len(t.rows) + 1, Values: values}
	t.rows = append(t.rows, row)
	return row, nil
}

func (t *Table) materialize(record any) ([]any, error) {
	switch rec := record.(type) {
	case []any:
		if len(rec) != len(t.header) {
			return nil, newMutationError("row has %d values, table has %d columns", len(rec), len(t.header))
		}
		return append([]any(nil), rec...), nil
	case map[string]any:
		values := make([]any, len(t.header))
		for i, name := range t.header {
			v, ok := rec[name]
			if !ok {
				return nil, newMutationError("row is missing required column %q", name)
			}
			values[i] = v
		}
		return values, nil
	default:
		return nil, newMutationError("unsupported row type %T", record)
	}
}

// Remove deletes the row at 1-based index, re-indexing subsequent rows.
func (t *Table) Remove(index int) error {
	if index < 1 || index > len(t.rows) {
		return newMutationError("row index %d out of range [1,%d]", index, len(t.rows))
	}
	t.rows = append(t.rows[:index-1], t.rows[index:]...)
	for i := index - 1; i < len(t.rows); i++ {
		t.rows[i].Row = i + 1
	}
	return nil
}

// AddColumn inserts a new column at colIndex (negative counts from the end,
// as with Python slicing) and widens every existing row with defaultValue.
// Duplicate names are rejected.
func (t *Table) AddColumn(name string, defaultValue any, colIndex int) error {
	if _, dup := t.index[name]; dup {
		return newMutationError("column %q already exists", name)
	}
	pos := colIndex
	if pos < 0 {
		pos = len(t.header) + pos + 1
	}
	if pos < 0 || pos > len(t.header) {
		pos = len(t.header)
	}

	header := make([]string, 0, len(t.header)+1)
	header = append(header, t.header[:pos]...)
	header = append(header, name)
	header = append(header, t.header[pos:]...)
	t.header = header
	t.reindex()

	for _, row := range t.rows {
		values := make([]any, 0, len(row.Values)+1)
		values = append(values, row.Values[:pos]...)
		values = append(values, defaultValue)
		values = append(values, row.Values[pos:]...)
		row.Values = values
	}
	return nil
}

// RowWith returns the first row whose column equals value.
func (t *Table) RowWith(column string, value any) (*Row, error) {
	i := t.ColumnIndex(column)
	if i < 0 {
		return nil, newLookupError("no such column %q", column)
	}
	for _, row := range t.rows {
		if row.Values[i] == value {
			return row, nil
		}
	}
	return nil, newLookupError("no row with %s = %v", column, value)
}

// String serializes the table as comma-separated text, header first.
func (t *Table) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(t.header, ", "))
	for _, row := range t.rows {
		b.WriteString("\n")
		b.WriteString(strings.Join(row.Strings(), ", "))
	}
	return b.String()
}

// Sort orders rows by superkey columns (if declared and key is nil) or by
// the full row, breaking ties by original position. A custom key function
// may be supplied to sort by an arbitrary projection.
func (t *Table) Sort(key func(*Row) []string, reverse bool) {
	if key == nil {
		cols := t.Superkey
		if len(cols) == 0 {
			cols = t.header
		}
		idxs := make([]int, len(cols))
		for i, c := range cols {
			idxs[i] = t.ColumnIndex(c)
		}
		key = func(r *Row) []string {
			out := make([]string, len(idxs))
			for i, ci := range idxs {
				if ci >= 0 {
					out[i] = printable(r.Values[ci])
				}
			}
			return out
		}
	}

	orig := make(map[*Row]int, len(t.rows))
	for i, r := range t.rows {
		orig[r] = i
	}

	sort.SliceStable(t.rows, func(i, j int) bool {
		a, b := key(t.rows[i]), key(t.rows[j])
		cmp := compareStringSlices(a, b)
		if cmp == 0 {
			return orig[t.rows[i]] < orig[t.rows[j]]
		}
		if reverse {
			return cmp > 0
		}
		return cmp < 0
	})

	for i, r := range t.rows {
		r.Row = i + 1
	}
}

func compareStringSlices(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}

// LabelValueTable renders §4.5's label-value form: a `# LABEL <keys>` line
// followed by one `<key-values joined by .>.<column> <value>` line per row
// per non-key column. keys defaults to the table's Superkey and is
// normalized to the table's header-declared order regardless of the order
// passed in (`['c','a']` and `['a','c']` both render as `# LABEL a.c`, per
// upstream's testTableWithLabels).
func (t *Table) LabelValueTable(keys []string) string {
	if keys == nil {
		keys = t.Superkey
	}
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}

	keyIdx := make(map[int]bool, len(keys))
	idxs := make([]int, 0, len(keys))
	ordered := make([]string, 0, len(keys))
	for i, name := range t.header {
		if want[name] {
			keyIdx[i] = true
			idxs = append(idxs, i)
			ordered = append(ordered, name)
		}
	}

	var b strings.Builder
	b.WriteString("# LABEL " + strings.Join(ordered, ".") + "\n")
	for _, row := range t.rows {
		keyParts := make([]string, len(idxs))
		for i, ci := range idxs {
			keyParts[i] = printable(row.Values[ci])
		}
		prefix := strings.Join(keyParts, ".")
		for i, name := range t.header {
			if keyIdx[i] {
				continue
			}
			if prefix != "" {
				b.WriteString(prefix + "." + name + " " + printable(row.Values[i]) + "\n")
			} else {
				b.WriteString(name + " " + printable(row.Values[i]) + "\n")
			}
		}
	}
	return b.String()
}
