package csvimport

import "strings"

// bom is the UTF-8 byte order mark some spreadsheet exports prepend.
const bom = "\uFEFF"

// Tokenize splits one CSV line into cells.
//
// A doubled quote inside a quoted field emits one literal quote, any other
// quote toggles quoted mode, and a comma separates cells only outside quoted
// mode. Cells are returned verbatim (not trimmed) with their quotes removed.
func Tokenize(line string) []string {
	var (
		cells   []string
		field   strings.Builder
		inQuote bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"' && inQuote && i+1 < len(line) && line[i+1] == '"':
			field.WriteByte('"')
			i++
		case c == '"':
			inQuote = !inQuote
		case c == ',' && !inQuote:
			cells = append(cells, field.String())
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}
	return append(cells, field.String())
}

// SplitRows splits uploaded text into non-blank lines.
// Both "\n" and "\r\n" endings are accepted and a leading BOM is dropped.
func SplitRows(text string) []string {
	text = strings.TrimPrefix(text, bom)

	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, line)
	}
	return rows
}
