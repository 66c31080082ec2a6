package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Table represents a simple table for displaying tabular data
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]string
	noColor bool
}

// TableOptions configures table behavior
type TableOptions struct {
	NoColor bool
}

// NewTable creates a new table with the given headers
func NewTable(w io.Writer, headers []string, opts *TableOptions) *Table {
	t := &Table{writer: w, headers: headers}
	if opts != nil {
		t.noColor = opts.NoColor
	}
	return t
}

// AddRow adds a row to the table. Missing cells render empty and extra
// cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Render renders the table to the writer
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, header := range t.headers {
		widths[i] = utf8.RuneCountInString(header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	bold := color.New(color.Bold, color.FgCyan)
	gray := color.New(color.FgHiBlack)
	if t.noColor {
		bold.DisableColor()
		gray.DisableColor()
	}

	last := len(t.headers) - 1
	for i, header := range t.headers {
		bold.Fprint(t.writer, pad(header, widths[i], i == last))
		if i < last {
			fmt.Fprint(t.writer, "  ")
		}
	}
	fmt.Fprintln(t.writer)

	for i, width := range widths {
		gray.Fprint(t.writer, strings.Repeat("─", width))
		if i < last {
			gray.Fprint(t.writer, "  ")
		}
	}
	fmt.Fprintln(t.writer)

	for _, row := range t.rows {
		for i, cell := range row {
			fmt.Fprint(t.writer, pad(cell, widths[i], i == last))
			if i < last {
				fmt.Fprint(t.writer, "  ")
			}
		}
		fmt.Fprintln(t.writer)
	}
}

// pad pads s with spaces to width runes; the last column is left unpadded
func pad(s string, width int, last bool) string {
	n := utf8.RuneCountInString(s)
	if last || n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// KeyValueTable renders a simple key-value table (2 columns)
type KeyValueTable struct {
	writer  io.Writer
	keys    []string
	values  []string
	noColor bool
}

// NewKeyValueTable creates a new key-value table
func NewKeyValueTable(w io.Writer, noColor bool) *KeyValueTable {
	return &KeyValueTable{writer: w, noColor: noColor}
}

// AddRow adds a key-value pair to the table
func (t *KeyValueTable) AddRow(key, value string) {
	t.keys = append(t.keys, key)
	t.values = append(t.values, value)
}

// Render renders the key-value table
func (t *KeyValueTable) Render() {
	maxKeyWidth := 0
	for _, key := range t.keys {
		maxKeyWidth = max(maxKeyWidth, utf8.RuneCountInString(key))
	}

	cyan := color.New(color.FgCyan)
	if t.noColor {
		cyan.DisableColor()
	}
	for i, key := range t.keys {
		cyan.Fprint(t.writer, pad(key+":", maxKeyWidth+1, false))
		fmt.Fprintf(t.writer, " %s\n", t.values[i])
	}
}

// Section represents a titled block of indented lines
type Section struct {
	writer  io.Writer
	title   string
	lines   []string
	noColor bool
}

// NewSection creates a new section
func NewSection(w io.Writer, title string, noColor bool) *Section {
	return &Section{writer: w, title: title, noColor: noColor}
}

// AddLine adds a line to the section content
func (s *Section) AddLine(line string) {
	s.lines = append(s.lines, line)
}

// Render renders the section followed by a blank line. An empty section
// shows "(none)".
func (s *Section) Render() {
	bold := color.New(color.Bold, color.FgCyan)
	if s.noColor {
		bold.DisableColor()
	}
	bold.Fprintln(s.writer, s.title)

	if len(s.lines) == 0 {
		fmt.Fprintln(s.writer, "  (none)")
	}
	for _, line := range s.lines {
		fmt.Fprintf(s.writer, "  %s\n", line)
	}
	fmt.Fprintln(s.writer)
}
