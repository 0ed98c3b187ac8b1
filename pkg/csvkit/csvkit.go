// Package csvkit implements the dashboard's CSV dialect.
//
// The encoder is RFC4180-lite: only cells containing a comma or newline are
// quoted, with internal quotes doubled. The decoder splits rows on literal
// commas and does not honor quoting, so embedded commas desynchronize
// columns. The asymmetry is part of the wire contract; importers that need
// commas inside cells must strip them before export.
package csvkit

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Row is one record keyed by header name. Decoded cells are float64 when the
// text parses as a number, otherwise string.
type Row map[string]any

// Formatter renders one cell value for a named field.
type Formatter func(value any) string

// Encoder renders rows using an optional per-field formatter registry.
type Encoder struct {
	formatters map[string]Formatter
}

// NewEncoder returns an encoder with an empty formatter registry.
func NewEncoder() *Encoder {
	return &Encoder{formatters: make(map[string]Formatter)}
}

// Register installs a formatter for the named field.
func (e *Encoder) Register(field string, f Formatter) {
	if f == nil {
		return
	}
	e.formatters[field] = f
}

// Encode renders the header line plus one line per row, joined by newlines.
// Header order defines column order; missing row values render empty.
func (e *Encoder) Encode(headers []string, rows []Row) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(headers, ","))

	for _, row := range rows {
		cells := make([]string, 0, len(headers))
		for _, header := range headers {
			cells = append(cells, e.renderCell(header, row[header]))
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	return strings.Join(lines, "\n")
}

func (e *Encoder) renderCell(field string, value any) string {
	var text string
	if f, ok := e.formatters[field]; ok {
		text = f(value)
	} else {
		text = defaultRender(value)
	}

	if strings.Contains(text, ",") || strings.Contains(text, "\n") {
		return `"` + strings.ReplaceAll(text, `"`, `""`) + `"`
	}
	return text
}

func defaultRender(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Decode parses CSV text back into rows. Splitting is newline/comma literal:
// quoted cells survive only when they contain no comma. Cells that parse as
// numbers come back as float64.
func Decode(text string) []Row {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return []Row{}
	}

	headers := make([]string, 0, 8)
	for _, h := range strings.Split(lines[0], ",") {
		headers = append(headers, stripQuotes(strings.TrimSpace(h)))
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, ",")
		row := make(Row, len(headers))
		for i, header := range headers {
			var cell string
			if i < len(cells) {
				cell = strings.TrimSpace(cells[i])
			}
			if cell != "" {
				if n, err := strconv.ParseFloat(cell, 64); err == nil {
					row[header] = n
					continue
				}
			}
			row[header] = stripQuotes(cell)
		}
		rows = append(rows, row)
	}

	return rows
}

func stripQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}

// Filename names a download for the collection: {collection}_{YYYY-MM-DD}.csv.
func Filename(collection string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", collection, now.UTC().Format("2006-01-02"))
}
