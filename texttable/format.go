package texttable

import (
	"regexp"
	"strings"

	runewidth "github.com/mattn/go-runewidth"
)

var ansiSeqRe = regexp.MustCompile("\x1b\\[[0-9;]*m")

func displayWidth(s string) int {
	return runewidth.StringWidth(ansiSeqRe.ReplaceAllString(s, ""))
}

// RowColor, when non-empty, wraps a row's rendered line in an SGR
// start/reset pair. It is an ANSI graphics-rendition code (e.g. "31" for
// red), not a full sequence.
type RowColor func(row *Row) string

const ansiReset = "\x1b[0m"

func colorize(code, s string) string {
	if code == "" {
		return s
	}
	return "\x1b[" + code + "m" + s + ansiReset
}

// FormattedTable renders the table for terminal display (§4.5). width=0
// means unconstrained. columns, if non-nil, restricts and orders the
// rendered columns. ANSI color sequences inserted by color are never
// counted toward column widths.
func (t *Table) FormattedTable(width int, displayHeader bool, columns []string, color RowColor) (string, error) {
	cols := columns
	if cols == nil {
		cols = t.header
	}
	colIdx := make([]int, len(cols))
	for i, c := range cols {
		colIdx[i] = t.ColumnIndex(c)
	}

	widths := make([]int, len(cols))
	minWidths := make([]int, len(cols))
	for i, name := range cols {
		widths[i] = displayWidth(name)
		minWidths[i] = longestWord(name)
	}
	for _, row := range t.rows {
		for i, ci := range colIdx {
			if ci < 0 {
				continue
			}
			for _, line := range strings.Split(printable(row.Values[ci]), "\n") {
				if w := displayWidth(line); w > widths[i] {
					widths[i] = w
				}
				if w := longestWord(line); w > minWidths[i] {
					minWidths[i] = w
				}
			}
		}
	}
	for i := range widths {
		widths[i] += 2 // 1 char padding each side
		minWidths[i] += 2
	}

	if width > 0 {
		if err := shrinkToFit(widths, minWidths, width); err != nil {
			return "", err
		}
	}

	var b strings.Builder
	if displayHeader {
		b.WriteString(formatLine(cols, widths))
		b.WriteString("\n")
	}
	for r, row := range t.rows {
		lines := [][]string{}
		maxLines := 1
		cells := make([][]string, len(cols))
		for i, ci := range colIdx {
			if ci < 0 {
				cells[i] = []string{""}
				continue
			}
			cells[i] = strings.Split(printable(row.Values[ci]), "\n")
			if len(cells[i]) > maxLines {
				maxLines = len(cells[i])
			}
		}
		for ln := 0; ln < maxLines; ln++ {
			parts := make([]string, len(cols))
			for i := range cols {
				if ln < len(cells[i]) {
					parts[i] = cells[i][ln]
				}
			}
			lines = append(lines, parts)
		}
		for _, parts := range lines {
			line := formatLine(parts, widths)
			if color != nil {
				line = colorize(color(row), line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		if maxLines > 1 && r != len(t.rows)-1 {
			b.WriteString(strings.Repeat("-", sumWidths(widths)))
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

func formatLine(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		pad := widths[i] - displayWidth(c) - 1
		if pad < 0 {
			pad = 0
		}
		parts[i] = " " + c + strings.Repeat(" ", pad)
	}
	return strings.Join(parts, "")
}

func sumWidths(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	return total
}

func longestWord(s string) int {
	longest := 0
	for _, word := range strings.Fields(s) {
		if w := displayWidth(word); w > longest {
			longest = w
		}
	}
	return longest
}

// shrinkToFit proportionally reduces widths down to minWidths (never below)
// so the total fits in width. Columns whose content has no multi-word
// cells (minWidth == content width already) cannot shrink further; space is
// taken only from columns with slack relative to their minimum.
func shrinkToFit(widths, minWidths []int, width int) error {
	minTotal := sumWidths(minWidths)
	if minTotal > width {
		return newMutationError("minimum column widths (%d) exceed requested width (%d)", minTotal, width)
	}

	total := sumWidths(widths)
	if total <= width {
		return nil
	}

	slack := make([]int, len(widths))
	slackTotal := 0
	for i := range widths {
		slack[i] = widths[i] - minWidths[i]
		slackTotal += slack[i]
	}
	excess := total - width
	if slackTotal == 0 {
		return newMutationError("columns cannot be narrowed to fit width %d", width)
	}

	for i := range widths {
		if slack[i] == 0 {
			continue
		}
		reduce := excess * slack[i] / slackTotal
		if reduce > slack[i] {
			reduce = slack[i]
		}
		widths[i] -= reduce
	}

	// Rounding may leave us slightly over; trim remaining excess from the
	// columns with the most remaining slack.
	for sumWidths(widths) > width {
		progressed := false
		for i := range widths {
			if widths[i] > minWidths[i] {
				widths[i]--
				progressed = true
				if sumWidths(widths) <= width {
					break
				}
			}
		}
		if !progressed {
			break
		}
	}
	return nil
}
