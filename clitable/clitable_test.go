package clitable

import (
	"path/filepath"
	"testing"

	"github.com/ntctemplates/gotextfsm/fsmtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandCompletionWrapsEachGroupRightNested(t *testing.T) {
	assert.Equal(t, "sh(o(w)?)? ve(r(s(i(o(n)?)?)?)?)?", expandCompletion("sh[[ow]] ve[[rsion]]"))
}

func TestCompletionExpansion(t *testing.T) {
	dir, _ := fsmtest.WriteTemplateDir(t, map[string]string{
		"version.template": "Value version (\\S+)\n\nStart\n  ^$version -> Next.Record\n",
		"index.csv": "Template, Command\n" +
			"version.template, sh[[ow]] ve[[rsion]]\n",
	})

	idx, err := LoadIndexTable(
		func(column, value string) string {
			if column == "Command" {
				return expandCompletion(value)
			}
			return value
		},
		func(column, value string) (string, bool) {
			if column == "Template" {
				return "", false
			}
			return value, true
		},
		filepath.Join(dir, "index.csv"),
	)
	require.NoError(t, err)

	assert.NotEqual(t, 0, idx.GetRowMatch(map[string]string{"Command": "sho vers"}))
	assert.NotEqual(t, 0, idx.GetRowMatch(map[string]string{"Command": "show version"}))
	assert.Equal(t, 0, idx.GetRowMatch(map[string]string{"Command": "shw version"}))
}

func TestIndexMatchAndMultiTemplateMerge(t *testing.T) {
	dir, _ := fsmtest.WriteTemplateDir(t, map[string]string{
		"a.template": "Value Key host (\\S+)\nValue ver (\\S+)\n\nStart\n  ^$host\\s+$ver -> Next.Record\n",
		"b.template": "Value Key host (\\S+)\nValue vendor (\\S+)\n\nStart\n  ^$host\\s+$vendor -> Next.Record\n",
		"index.csv": "Template, Command, Vendor\n" +
			"a.template:b.template, sh ver, VendorA\n",
	})

	loader, err := NewIndexLoader(
		func(column, value string) string { return value },
		func(column, value string) (string, bool) {
			if column == "Template" {
				return "", false
			}
			return value, true
		},
	)
	require.NoError(t, err)
	defer loader.Close()

	ct, err := Open(loader, filepath.Join(dir, "index.csv"))
	require.NoError(t, err)

	err = ct.ParseCmd("r1 15.1\n", map[string]string{"Command": "sh ver", "Vendor": "VendorA"}, "")
	require.NoError(t, err)

	tbl := ct.Table()
	require.NotNil(t, tbl)
	assert.ElementsMatch(t, []string{"host", "ver", "vendor"}, tbl.Header())
	assert.Equal(t, []string{"host"}, ct.Superkey())

	require.Equal(t, 1, tbl.Len())
	row := tbl.Rows()[0]
	assert.Equal(t, "r1", row.Values[tbl.ColumnIndex("host")])
	assert.Equal(t, "15.1", row.Values[tbl.ColumnIndex("ver")])
}

func TestOpenMissingIndexFails(t *testing.T) {
	dir := t.TempDir()

	loader, err := NewIndexLoader(nil, nil)
	require.NoError(t, err)
	defer loader.Close()

	ct, err := Open(loader, filepath.Join(dir, "nonexistent-index.csv"))
	assert.Error(t, err)
	assert.Nil(t, ct)
}

func TestParseCmdNoIndexMatchFails(t *testing.T) {
	dir, _ := fsmtest.WriteTemplateDir(t, map[string]string{
		"a.template": "Value host (\\S+)\n\nStart\n  ^$host -> Next.Record\n",
		"index.csv":  "Template, Command\na.template, sh ver\n",
	})

	loader, err := NewIndexLoader(nil, nil)
	require.NoError(t, err)
	defer loader.Close()

	ct, err := Open(loader, filepath.Join(dir, "index.csv"))
	require.NoError(t, err)

	err = ct.ParseCmd("r1\n", map[string]string{"Command": "nope"}, "")
	assert.Error(t, err)
}

func TestAddKeysRejectsUnknownColumn(t *testing.T) {
	dir, _ := fsmtest.WriteTemplateDir(t, map[string]string{
		"a.template": "Value host (\\S+)\n\nStart\n  ^$host -> Next.Record\n",
		"index.csv":  "Template, Command\na.template, sh ver\n",
	})

	loader, err := NewIndexLoader(nil, nil)
	require.NoError(t, err)
	defer loader.Close()

	ct, err := Open(loader, filepath.Join(dir, "index.csv"))
	require.NoError(t, err)
	require.NoError(t, ct.ParseCmd("r1\n", nil, "a.template"))

	require.Error(t, ct.AddKeys([]string{"nosuch"}))
	require.NoError(t, ct.AddKeys([]string{"host"}))
	assert.Equal(t, []string{"host"}, ct.Superkey())
}
