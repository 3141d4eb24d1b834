package texttable

import "strings"

// CsvToTable ingests src as a simplified CSV: `#...` comments and blank
// lines are stripped, fields are split on commas and whitespace-trimmed.
// The first surviving line is the header. This intentionally does not
// support quoted commas (§9 Open Questions); callers needing that should
// pre-process before calling CsvToTable.
func CsvToTable(src string) (*Table, error) {
	var header []string
	var t *Table

	for _, line := range strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n") {
		if hash := strings.IndexByte(line, '#'); hash >= 0 {
			line = line[:hash]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := splitTrim(line)
		if header == nil {
			header = fields
			t = New(header)
			continue
		}

		if len(fields) != len(header) {
			// A row with the wrong field count is dropped, not padded or
			// truncated to fit.
			continue
		}

		values := make([]any, len(fields))
		for i, f := range fields {
			values[i] = f
		}
		if _, err := t.Append(values); err != nil {
			return nil, err
		}
	}

	if t == nil {
		return nil, newMutationError("empty CSV input: no header row found")
	}
	return t, nil
}

func splitTrim(line string) []string {
	parts := strings.Split(line, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}
