// Package clitable builds on texttable with index-driven template
// auto-selection and multi-template merging (§4.6): CliTable picks one or
// more templates via an IndexTable lookup, parses command output through
// each, and left-extends the results together on their shared superkey.
package clitable

import (
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/ntctemplates/gotextfsm/textfsm"
	"github.com/ntctemplates/gotextfsm/texttable"
	"github.com/pkg/errors"
)

// CliTable is a TextTable fed by ParseCmd instead of Append: it resolves
// one or more templates (directly or via an index lookup), parses command
// output through each, and merges the results on their superkey.
type CliTable struct {
	table    *texttable.Table
	superkey []string
	index    *IndexTable
	indexDir string
}

// Open loads the index at indexPath through loader and returns a CliTable
// ready for ParseCmd. Template filenames found via index lookup are
// resolved relative to indexPath's directory.
func Open(loader *IndexLoader, indexPath string) (*CliTable, error) {
	idx, err := loader.Load(indexPath)
	if err != nil {
		return nil, err
	}
	return &CliTable{index: idx, indexDir: filepath.Dir(indexPath)}, nil
}

// Table returns the current merged result table.
func (c *CliTable) Table() *texttable.Table { return c.table }

// Superkey returns the ordered union of Key columns from the most recently
// parsed templates, plus any manual AddKeys additions.
func (c *CliTable) Superkey() []string { return append([]string(nil), c.superkey...) }

// AddKeys extends the superkey with additional column names, rejecting any
// name not present in the current table's header.
func (c *CliTable) AddKeys(names []string) error {
	if c.table == nil {
		return newLookupError("AddKeys: no template has been parsed yet")
	}
	for _, name := range names {
		if c.table.ColumnIndex(name) < 0 {
			return newLookupError("AddKeys: no such column %q", name)
		}
		if !containsString(c.superkey, name) {
			c.superkey = append(c.superkey, name)
		}
	}
	return nil
}

// KeyValue returns the superkey column values for rowNum, or [rowNum] as a
// single-element fallback when no keys are defined.
func (c *CliTable) KeyValue(rowNum int) ([]any, error) {
	if c.table == nil {
		return nil, newLookupError("KeyValue: no template has been parsed yet")
	}
	if rowNum < 1 || rowNum > c.table.Len() {
		return nil, newLookupError("KeyValue: row %d out of range", rowNum)
	}
	row := c.table.Rows()[rowNum-1]
	if len(c.superkey) == 0 {
		return []any{rowNum}, nil
	}
	values := make([]any, len(c.superkey))
	for i, name := range c.superkey {
		ci := c.table.ColumnIndex(name)
		if ci < 0 {
			return nil, newLookupError("KeyValue: superkey column %q missing from table", name)
		}
		values[i] = row.Values[ci]
	}
	return values, nil
}

// LabelValueTable renders the merged table keyed by the superkey.
func (c *CliTable) LabelValueTable() (string, error) {
	if c.table == nil {
		return "", newLookupError("LabelValueTable: no template has been parsed yet")
	}
	return c.table.LabelValueTable(c.superkey), nil
}

type parsedTemplate struct {
	table *texttable.Table
	keys  []string
}

// ParseCmd runs data through one or more templates and replaces the
// CliTable's content with the merged result. If templates is non-empty it
// is used directly (a ":"-joined list of filenames, as the index format
// stores it, is split automatically); otherwise attributes drives an index
// lookup via GetRowMatch.
func (c *CliTable) ParseCmd(data string, attributes map[string]string, templates string) error {
	var names []string
	if templates != "" {
		names = strings.Split(templates, ":")
	} else {
		if c.index == nil {
			return newLookupError("ParseCmd: no index loaded and no templates given")
		}
		rowNum := c.index.GetRowMatch(attributes)
		if rowNum == 0 {
			return newLookupError("ParseCmd: no index row matches the given attributes")
		}
		row, err := c.index.RawRow(rowNum)
		if err != nil {
			return err
		}
		ti := colIndex(c.index.Header(), "Template")
		names = strings.Split(asString(row.Values[ti]), ":")
	}
	if len(names) == 0 {
		return newLookupError("ParseCmd: empty template list")
	}

	parsed := make([]parsedTemplate, 0, len(names))
	var keys []string
	for _, name := range names {
		tbl, tplKeys, err := c.parseOneTemplate(name, data)
		if err != nil {
			return err
		}
		parsed = append(parsed, parsedTemplate{table: tbl, keys: tplKeys})
		for _, k := range tplKeys {
			if !containsString(keys, k) {
				keys = append(keys, k)
			}
		}
	}

	acc := parsed[0].table
	for _, p := range parsed[1:] {
		if err := acc.Extend(p.table, keys); err != nil {
			return errors.Wrap(err, "clitable: merging template results")
		}
	}

	c.table = acc
	c.superkey = keys
	return nil
}

func (c *CliTable) parseOneTemplate(name, data string) (*texttable.Table, []string, error) {
	path := name
	if c.indexDir != "" {
		joined, err := securejoin.SecureJoin(c.indexDir, name)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "clitable: resolving template path %q", name)
		}
		path = joined
	}

	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, newLookupError("clitable: template %s not found", path)
		}
		return nil, nil, errors.Wrapf(err, "clitable: reading template %s", path)
	}

	tmpl, err := textfsm.ParseString(string(src))
	if err != nil {
		return nil, nil, err
	}

	fsm := textfsm.New(tmpl)
	rows, err := fsm.ParseText(data, true)
	if err != nil {
		return nil, nil, err
	}

	header := tmpl.Header()
	tbl := texttable.New(header)
	for _, row := range rows {
		if _, err := tbl.Append(row); err != nil {
			return nil, nil, err
		}
	}

	var keys []string
	for _, v := range tmpl.Values {
		if v.HasOption(textfsm.Key) {
			keys = append(keys, v.Name)
		}
	}

	return tbl, keys, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
