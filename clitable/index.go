package clitable

import (
	"os"

	"github.com/ntctemplates/gotextfsm/regexcell"
	"github.com/ntctemplates/gotextfsm/texttable"
	"github.com/pkg/errors"
)

// PreParseFunc transforms a raw index cell's text before storage.
type PreParseFunc func(column, value string) string

// PreCompileFunc returns the text to compile for a cell, or ok=false to
// mark the column as "do not match" for that row (the skip sentinel).
type PreCompileFunc func(column, value string) (pattern string, ok bool)

// IndexTable is a CSV-backed mapping of attribute patterns to template
// filenames (§4.6). index holds the preParse'd raw text; compiled holds a
// parallel grid of regexcell.Cell (or nil where preCompile opted the
// column out of matching for that row).
type IndexTable struct {
	index    *texttable.Table
	compiled *texttable.Table
}

// LoadIndexTable reads path as a CSV index file, applying preParse to every
// cell as it's stored and preCompile to derive the matcher grid.
func LoadIndexTable(preParse PreParseFunc, preCompile PreCompileFunc, path string) (*IndexTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "clitable: reading index %s", path)
	}
	return parseIndexTable(preParse, preCompile, string(data))
}

func parseIndexTable(preParse PreParseFunc, preCompile PreCompileFunc, src string) (*IndexTable, error) {
	raw, err := texttable.CsvToTable(src)
	if err != nil {
		return nil, errors.Wrap(err, "clitable: parsing index")
	}

	header := raw.Header()
	if colIndex(header, "Template") < 0 || colIndex(header, "Command") < 0 {
		return nil, newLookupError("index header must include Template and Command, got %v", header)
	}

	if preParse != nil {
		for _, row := range raw.Rows() {
			for i, name := range header {
				row.Values[i] = preParse(name, asString(row.Values[i]))
			}
		}
	}

	compiled := texttable.New(header)
	for _, row := range raw.Rows() {
		values := make([]any, len(header))
		for i, name := range header {
			text := asString(row.Values[i])
			pattern, ok := text, true
			if preCompile != nil {
				pattern, ok = preCompile(name, text)
			}
			if !ok {
				values[i] = nil
				continue
			}
			cell, err := regexcell.New("^" + pattern)
			if err != nil {
				return nil, errors.Wrapf(err, "clitable: compiling column %q on row %d", name, row.Row)
			}
			values[i] = cell
		}
		if _, err := compiled.Append(values); err != nil {
			return nil, err
		}
	}

	return &IndexTable{index: raw, compiled: compiled}, nil
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func colIndex(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

// GetRowMatch iterates rows in order and returns the 1-based number of the
// first row whose non-skipped, present-in-attributes columns all match, or
// 0 if none do.
func (idx *IndexTable) GetRowMatch(attributes map[string]string) int {
	header := idx.index.Header()
	for _, crow := range idx.compiled.Rows() {
		matched := true
		for i, name := range header {
			val, present := attributes[name]
			if !present {
				continue
			}
			cell, ok := crow.Values[i].(regexcell.Cell)
			if !ok {
				continue // skipped column: does not participate
			}
			if !cell.MatchString(val) {
				matched = false
				break
			}
		}
		if matched {
			return crow.Row
		}
	}
	return 0
}

// RawRow returns the 1-based raw (preParse'd, uncompiled) row, typically to
// read its Template/Command cell.
func (idx *IndexTable) RawRow(rowNum int) (*texttable.Row, error) {
	if rowNum < 1 || rowNum > idx.index.Len() {
		return nil, newLookupError("row %d out of range", rowNum)
	}
	return idx.index.Rows()[rowNum-1], nil
}

// Header returns the index's column names.
func (idx *IndexTable) Header() []string { return idx.index.Header() }

// Clone deep-copies the IndexTable: every RegexCell is recompiled rather
// than shared, so mutating or dropping one copy never affects another.
func (idx *IndexTable) Clone() (*IndexTable, error) {
	rawCopy := texttable.New(idx.index.Header())
	for _, row := range idx.index.Rows() {
		if _, err := rawCopy.Append(append([]any(nil), row.Values...)); err != nil {
			return nil, err
		}
	}

	compiledCopy := texttable.New(idx.compiled.Header())
	for _, row := range idx.compiled.Rows() {
		values := make([]any, len(row.Values))
		for i, v := range row.Values {
			if cell, ok := v.(regexcell.Cell); ok {
				cloned, err := cell.Clone()
				if err != nil {
					return nil, err
				}
				values[i] = cloned
			}
		}
		if _, err := compiledCopy.Append(values); err != nil {
			return nil, err
		}
	}

	return &IndexTable{index: rawCopy, compiled: compiledCopy}, nil
}
