package textfsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleParse(t *testing.T) {
	tmpl, err := ParseString("Value boo (.*)\n\nStart\n  ^$boo -> Next.Record\n\nEOF\n")
	require.NoError(t, err)

	f := New(tmpl)
	rows, err := f.ParseText("Matching text\nAnd again", true)
	require.NoError(t, err)

	assert.Equal(t, [][]any{{"Matching text"}, {"And again"}}, rows)
}

func TestRequiredAndFilldown(t *testing.T) {
	src := "Value Required boo (one)\nValue Filldown hoo (two)\n\nStart\n  ^$boo -> Next.Record\n  ^$hoo -> Next.Record\n"
	tmpl, err := ParseString(src)
	require.NoError(t, err)

	f := New(tmpl)
	rows, err := f.ParseText("two\none", true)
	require.NoError(t, err)

	assert.Equal(t, [][]any{{"one", "two"}}, rows)
}

func TestListWithNestedGroups(t *testing.T) {
	src := "Value List people ((?P<name>\\w+):\\s+(?P<age>\\d+)\\s+(?P<state>\\w{2}))\n" +
		"Value solo (\\w+)\n\n" +
		"Start\n" +
		"  ^${people} -> Next\n" +
		"  ^$solo -> Next.Record\n"
	tmpl, err := ParseString(src)
	require.NoError(t, err)

	f := New(tmpl)
	rows, err := f.ParseText("Bob: 32 NY\nAnn: 41 CA\nJoe: 19 TX\nlonewolf", true)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	people, ok := rows[0][0].([]any)
	require.True(t, ok)
	require.Len(t, people, 3)
	assert.Equal(t, map[string]string{"name": "Bob", "age": "32", "state": "NY"}, people[0])
	assert.Equal(t, map[string]string{"name": "Joe", "age": "19", "state": "TX"}, people[2])
	assert.Equal(t, "lonewolf", rows[0][1])
}

func TestFillup(t *testing.T) {
	src := "Value Col1 (\\d)\nValue Fillup Col2 (\\w+)\nValue Fillup Col3 (\\w+)\n\n" +
		"Start\n" +
		"  ^$Col1\\s+--\\s+$Col3 -> Next.Record\n" +
		"  ^$Col1\\s+$Col2\\s+-- -> Next.Record\n"
	tmpl, err := ParseString(src)
	require.NoError(t, err)

	f := New(tmpl)
	rows, err := f.ParseText("1 -- B1\n2 A2 --\n3 -- B3", true)
	require.NoError(t, err)

	assert.Equal(t, [][]any{
		{"1", "A2", "B1"},
		{"2", "A2", "B3"},
		{"3", "", "B3"},
	}, rows)
}

func TestErrorOperator(t *testing.T) {
	tmpl, err := ParseString("Value boo (.*)\n\nStart\n  ^$boo -> Error \"hello\"\n")
	require.NoError(t, err)

	f := New(tmpl)
	_, err = f.ParseText("oops", true)
	require.Error(t, err)

	var runtimeErr *RuntimeError
	require.ErrorAs(t, err, &runtimeErr)
	assert.Contains(t, runtimeErr.Error(), "hello")
	assert.Equal(t, "oops", runtimeErr.Input)
}

func TestResetClearsStateAndResult(t *testing.T) {
	tmpl, err := ParseString("Value boo (.*)\n\nStart\n  ^$boo -> Next.Record\n")
	require.NoError(t, err)

	f := New(tmpl)
	_, err = f.ParseText("hi", true)
	require.NoError(t, err)

	f.Reset()
	assert.Equal(t, "Start", f.CurrentState())

	rows, err := f.ParseText("", true)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseTextToDictsMatchesZip(t *testing.T) {
	tmpl, err := ParseString("Value boo (.*)\n\nStart\n  ^$boo -> Next.Record\n")
	require.NoError(t, err)

	f1 := New(tmpl)
	rows, err := f1.ParseText("a\nb", true)
	require.NoError(t, err)

	f2 := New(tmpl)
	dicts, err := f2.ParseTextToDicts("a\nb", true)
	require.NoError(t, err)

	header := tmpl.Header()
	require.Len(t, dicts, len(rows))
	for i, row := range rows {
		for j, name := range header {
			assert.Equal(t, row[j], dicts[i][name])
		}
	}
}

func TestCanonicalSerializationIsIdempotent(t *testing.T) {
	src := "Value Required,Filldown boo (one)\n\nStart\n  ^$boo -> Next.Record\n\nEnd\n"
	tmpl, err := ParseString(src)
	require.NoError(t, err)

	once := tmpl.String()
	reparsed, err := ParseString(once)
	require.NoError(t, err)

	assert.Equal(t, once, reparsed.String())
}

func TestMissingStartIsTemplateError(t *testing.T) {
	_, err := ParseString("Value boo (.*)\n\nNotStart\n  ^$boo -> Next.Record\n")
	require.Error(t, err)
	var tmplErr *TemplateError
	require.ErrorAs(t, err, &tmplErr)
}

func TestNonEmptyEndIsRejected(t *testing.T) {
	_, err := ParseString("Value boo (.*)\n\nStart\n  ^$boo -> Next.Record\n\nEnd\n  ^$boo -> Next.Record\n")
	require.Error(t, err)
}

func TestUndeclaredTargetStateIsRejected(t *testing.T) {
	_, err := ParseString("Value boo (.*)\n\nStart\n  ^$boo -> Next.Record Nowhere\n")
	require.Error(t, err)
}

func TestUnknownOptionIsTemplateError(t *testing.T) {
	_, err := ParseString("Value Bogus boo (.*)\n\nStart\n  ^$boo -> Next.Record\n")
	require.Error(t, err)
}

func TestDuplicateOptionIsTemplateError(t *testing.T) {
	_, err := ParseString("Value Required,Required boo (.*)\n\nStart\n  ^$boo -> Next.Record\n")
	require.Error(t, err)
}

func TestPatternMustBeWrappedInOuterParens(t *testing.T) {
	_, err := ParseString("Value boo .*\n\nStart\n  ^$boo -> Next.Record\n")
	require.Error(t, err)
}

func TestPatternBracketClassDoesNotCountAsGroup(t *testing.T) {
	_, err := ParseString("Value boo ([a-z)]+)\n\nStart\n  ^$boo -> Next.Record\n")
	require.NoError(t, err)
}
