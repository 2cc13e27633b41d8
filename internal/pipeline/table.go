package pipeline

import (
	"regexp"
	"strings"
)

// Separator row: dashes, colons, pipes and spaces only
var tableSeparatorPattern = regexp.MustCompile(`^[ \t|:-]+$`)

// transformTables replaces every header + separator + body rows run with a
// <table>. Rows are not checked against the header's cell count.
func transformTables(lines []string) []string {
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		if !isTableStart(lines, i) {
			out = append(out, lines[i])
			continue
		}

		header := splitTableRow(lines[i])
		aligns := parseAlignments(lines[i+1])

		end := i + 2
		for end < len(lines) && isTableRow(lines[end]) {
			end++
		}

		out = append(out, "<table>", "<thead>", renderTableRow(header, aligns, "th"), "</thead>", "<tbody>")
		for _, row := range lines[i+2 : end] {
			out = append(out, renderTableRow(splitTableRow(row), aligns, "td"))
		}
		out = append(out, "</tbody>", "</table>")

		i = end - 1
	}

	return out
}

// isTableStart reports whether lines[i] opens a table: a row, a separator
// and at least one body row.
func isTableStart(lines []string, i int) bool {
	return i+2 < len(lines) &&
		isTableRow(lines[i]) &&
		isTableSeparator(lines[i+1]) &&
		isTableRow(lines[i+2])
}

func isTableRow(line string) bool {
	return strings.Contains(line, "|") &&
		!isTableSeparator(line) &&
		!placeholderLine.MatchString(strings.TrimSpace(line))
}

func isTableSeparator(line string) bool {
	return tableSeparatorPattern.MatchString(line) &&
		strings.Contains(line, "|") &&
		strings.Contains(line, "-")
}

// splitTableRow splits a row on pipes and trims each cell. The empty cells
// produced by a leading or trailing pipe are dropped; interior empty cells
// are kept.
func splitTableRow(line string) []string {
	line = strings.TrimSpace(line)
	cells := strings.Split(line, "|")

	if strings.HasPrefix(line, "|") {
		cells = cells[1:]
	}
	if strings.HasSuffix(line, "|") && len(cells) > 0 {
		cells = cells[:len(cells)-1]
	}

	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// parseAlignments reads column alignment from the colons of a separator row.
// Columns without colons get an empty alignment.
func parseAlignments(separator string) []string {
	cells := splitTableRow(separator)
	aligns := make([]string, len(cells))
	for i, cell := range cells {
		left := strings.HasPrefix(cell, ":")
		right := strings.HasSuffix(cell, ":")
		switch {
		case left && right:
			aligns[i] = "center"
		case right:
			aligns[i] = "right"
		case left:
			aligns[i] = "left"
		}
	}
	return aligns
}

func renderTableRow(cells, aligns []string, tag string) string {
	var b strings.Builder
	b.WriteString("<tr>")
	for i, cell := range cells {
		b.WriteString("<" + tag)
		if i < len(aligns) && aligns[i] != "" {
			b.WriteString(` style="text-align:` + aligns[i] + `"`)
		}
		b.WriteString(">" + cell + "</" + tag + ">")
	}
	b.WriteString("</tr>")
	return b.String()
}
