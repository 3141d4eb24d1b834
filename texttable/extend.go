package texttable

// Extend performs §4.5's row-wise left join: columns present in other but
// not in t are appended to t's header (default-empty), then for each row
// of t a matching row of other is located — by equal values at keys, or by
// matching 1-based row number when keys is nil — and used to fill those new
// columns. Unmatched rows keep the default-empty fill.
func (t *Table) Extend(other *Table, keys []string) error {
	var newCols []string
	for _, name := range other.header {
		if t.ColumnIndex(name) < 0 {
			newCols = append(newCols, name)
		}
	}
	for _, name := range newCols {
		if err := t.AddColumn(name, "", -1); err != nil {
			return err
		}
	}

	selfKeyIdx := make([]int, len(keys))
	otherKeyIdx := make([]int, len(keys))
	for i, k := range keys {
		selfKeyIdx[i] = t.ColumnIndex(k)
		otherKeyIdx[i] = other.ColumnIndex(k)
	}

	for _, row := range t.rows {
		var match *Row
		if len(keys) == 0 {
			if row.Row >= 1 && row.Row <= len(other.rows) {
				match = other.rows[row.Row-1]
			}
		} else {
			match = findKeyedMatch(other, selfKeyIdx, otherKeyIdx, row)
		}
		if match == nil {
			continue
		}
		for _, name := range newCols {
			ti, oi := t.ColumnIndex(name), other.ColumnIndex(name)
			if ti >= 0 && oi >= 0 {
				row.Values[ti] = match.Values[oi]
			}
		}
	}
	return nil
}

func findKeyedMatch(other *Table, selfKeyIdx, otherKeyIdx []int, row *Row) *Row {
	for _, orow := range other.rows {
		matched := true
		for i := range selfKeyIdx {
			if selfKeyIdx[i] < 0 || otherKeyIdx[i] < 0 {
				matched = false
				break
			}
			if printable(row.Values[selfKeyIdx[i]]) != printable(orow.Values[otherKeyIdx[i]]) {
				matched = false
				break
			}
		}
		if matched {
			return orow
		}
	}
	return nil
}
