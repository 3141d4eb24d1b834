package texttable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendOrderedAndMap(t *testing.T) {
	tbl := New([]string{"a", "b"})
	_, err := tbl.Append([]any{"1", "2"})
	require.NoError(t, err)
	_, err = tbl.Append(map[string]any{"a": "3", "b": "4", "c": "ignored"})
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, []any{"1", "2"}, tbl.Rows()[0].Values)
	assert.Equal(t, []any{"3", "4"}, tbl.Rows()[1].Values)
}

func TestAppendWrongLengthFails(t *testing.T) {
	tbl := New([]string{"a", "b"})
	_, err := tbl.Append([]any{"1"})
	require.Error(t, err)
}

func TestAppendMapMissingColumnFails(t *testing.T) {
	tbl := New([]string{"a", "b"})
	_, err := tbl.Append(map[string]any{"a": "1"})
	require.Error(t, err)
}

func TestRemoveReindexes(t *testing.T) {
	tbl := New([]string{"a"})
	_, _ = tbl.Append([]any{"1"})
	_, _ = tbl.Append([]any{"2"})
	_, _ = tbl.Append([]any{"3"})

	require.NoError(t, tbl.Remove(1))
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, 1, tbl.Rows()[0].Row)
	assert.Equal(t, 2, tbl.Rows()[1].Row)
	assert.Equal(t, []any{"2"}, tbl.Rows()[0].Values)
}

func TestAddColumnWidensRows(t *testing.T) {
	tbl := New([]string{"a"})
	_, _ = tbl.Append([]any{"1"})

	require.NoError(t, tbl.AddColumn("b", "x", -1))
	assert.Equal(t, []string{"a", "b"}, tbl.Header())
	assert.Equal(t, []any{"1", "x"}, tbl.Rows()[0].Values)
}

func TestAddColumnDuplicateFails(t *testing.T) {
	tbl := New([]string{"a"})
	require.Error(t, tbl.AddColumn("a", "", -1))
}

func TestRowWith(t *testing.T) {
	tbl := New([]string{"a", "b"})
	_, _ = tbl.Append([]any{"1", "x"})
	_, _ = tbl.Append([]any{"2", "y"})

	row, err := tbl.RowWith("b", "y")
	require.NoError(t, err)
	assert.Equal(t, []any{"2", "y"}, row.Values)

	_, err = tbl.RowWith("b", "z")
	require.Error(t, err)
}

func TestInvariantRowTrackingAfterMutations(t *testing.T) {
	tbl := New([]string{"a"})
	_, _ = tbl.Append([]any{"1"})
	_, _ = tbl.Append([]any{"2"})
	_, _ = tbl.Append([]any{"3"})
	_ = tbl.Remove(2)
	_ = tbl.AddColumn("b", "", -1)

	for _, r := range tbl.Rows() {
		assert.Same(t, tbl, r.Table())
		assert.Equal(t, len(tbl.Header()), len(r.Values))
	}
}

func TestSortBySuperkeyThenOriginalOrderTiebreak(t *testing.T) {
	tbl := New([]string{"a", "b"})
	tbl.Superkey = []string{"a"}
	_, _ = tbl.Append([]any{"2", "first"})
	_, _ = tbl.Append([]any{"1", "x"})
	_, _ = tbl.Append([]any{"1", "y"})

	tbl.Sort(nil, false)

	assert.Equal(t, []any{"1", "x"}, tbl.Rows()[0].Values)
	assert.Equal(t, []any{"1", "y"}, tbl.Rows()[1].Values)
	assert.Equal(t, []any{"2", "first"}, tbl.Rows()[2].Values)
}

func TestExtendByRowNumber(t *testing.T) {
	tbl := New([]string{"a"})
	_, _ = tbl.Append([]any{"1"})
	_, _ = tbl.Append([]any{"2"})

	other := New([]string{"c"})
	_, _ = other.Append([]any{"x"})
	_, _ = other.Append([]any{"y"})

	require.NoError(t, tbl.Extend(other, nil))
	assert.Equal(t, []string{"a", "c"}, tbl.Header())
	assert.Equal(t, []any{"1", "x"}, tbl.Rows()[0].Values)
	assert.Equal(t, []any{"2", "y"}, tbl.Rows()[1].Values)
}

func TestExtendByKeysLeavesUnmatchedDefault(t *testing.T) {
	tbl := New([]string{"id", "name"})
	_, _ = tbl.Append([]any{"1", "alice"})
	_, _ = tbl.Append([]any{"2", "bob"})

	other := New([]string{"id", "age"})
	_, _ = other.Append([]any{"1", "30"})

	require.NoError(t, tbl.Extend(other, []string{"id"}))
	assert.Equal(t, []any{"1", "alice", "30"}, tbl.Rows()[0].Values)
	assert.Equal(t, []any{"2", "bob", ""}, tbl.Rows()[1].Values)
}

func TestCsvToTable(t *testing.T) {
	src := "# a comment\na, b\n1, 2\n\n3, 4\n"
	tbl, err := CsvToTable(src)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, tbl.Header())
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, []any{"1", "2"}, tbl.Rows()[0].Values)
	assert.Equal(t, []any{"3", "4"}, tbl.Rows()[1].Values)
}

func TestLabelValueTable(t *testing.T) {
	tbl := New([]string{"host", "version"})
	tbl.Superkey = []string{"host"}
	_, _ = tbl.Append([]any{"r1", "15.1"})

	out := tbl.LabelValueTable(nil)
	assert.Contains(t, out, "# LABEL host")
	assert.Contains(t, out, "r1.version 15.1")
}

func TestFormattedTableRespectsMinimumWidth(t *testing.T) {
	tbl := New([]string{"name"})
	_, _ = tbl.Append([]any{"supercalifragilisticexpialidocious"})

	_, err := tbl.FormattedTable(5, true, nil, nil)
	require.Error(t, err)
}

func TestFormattedTableMultilineCellsGetDivider(t *testing.T) {
	tbl := New([]string{"a"})
	_, _ = tbl.Append([]any{"line1\nline2"})
	_, _ = tbl.Append([]any{"single"})

	out, err := tbl.FormattedTable(0, false, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "line1")
	assert.Contains(t, out, "line2")
	assert.Contains(t, out, "---")
}
