package listing

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/creatordesk/internal/collection"
)

// Render writes the current page of h as a table followed by a footer line.
// maxWidth truncates lines; zero disables truncation.
func Render(w io.Writer, h collection.Handle, maxWidth int) error {
	snap := h.Snapshot()
	lines := Lines(h.Columns(), snap)
	for _, line := range TruncateLines(lines, maxWidth) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// Lines builds the table and footer for snap. Placeholder rows are skipped.
func Lines(columns []collection.Column, snap collection.Snapshot) []string {
	headers := make([]string, len(columns))
	right := map[int]bool{}
	for i, col := range columns {
		headers[i] = col.Title
		if col.Right {
			right[i] = true
		}
	}
	headers = append([]string{" "}, headers...)
	shifted := map[int]bool{}
	for i := range right {
		shifted[i+1] = true
	}

	rows := make([][]string, 0, len(snap.Rows))
	for _, row := range snap.Rows {
		if row.Placeholder {
			continue
		}
		mark := " "
		if row.Selected {
			mark = "*"
		}
		rows = append(rows, append([]string{mark}, row.Cells...))
	}

	var lines []string
	if snap.Empty {
		lines = append(lines, EmptyMessage(snap))
	} else {
		lines = FormatTable(headers, rows, shifted)
	}
	return append(lines, Footer(snap))
}

// Footer summarises the window, e.g. "Page 2/3 · shown 11-20 of 25".
func Footer(snap collection.Snapshot) string {
	shown := "shown 0 of 0"
	if snap.Filtered > 0 {
		shown = fmt.Sprintf("shown %d-%d of %d", snap.Start+1, snap.End, snap.Filtered)
	}
	parts := []string{fmt.Sprintf("Page %d/%d", snap.Page, snap.TotalPages), shown}
	if snap.Filtered != snap.Total {
		parts = append(parts, fmt.Sprintf("%d total", snap.Total))
	}
	if snap.Selected > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", snap.Selected))
	}
	if snap.HasMore && !snap.CanNext {
		parts = append(parts, "more available")
	}
	return strings.Join(parts, " · ")
}

// EmptyMessage is the explicit empty-state text, with a suggestion when known.
func EmptyMessage(snap collection.Snapshot) string {
	var b strings.Builder
	switch {
	case snap.Total == 0:
		b.WriteString("No records yet.")
	case snap.Search != "" && snap.Filters.Count() > 0:
		fmt.Fprintf(&b, "No results for %q with %s.", snap.Search, describeFilters(snap))
	case snap.Search != "":
		fmt.Fprintf(&b, "No results for %q.", snap.Search)
	default:
		fmt.Fprintf(&b, "No records match %s.", describeFilters(snap))
	}
	if snap.Suggestion != "" {
		fmt.Fprintf(&b, " Did you mean %q?", snap.Suggestion)
	}
	return b.String()
}

func describeFilters(snap collection.Snapshot) string {
	keys := make([]string, 0, len(snap.Filters))
	for k := range snap.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+strings.Join(snap.Filters[k], "|"))
	}
	if len(parts) == 0 {
		return "the current filters"
	}
	return strings.Join(parts, ", ")
}

// TerminalWidth returns the width of f when it is a terminal, otherwise 0.
func TerminalWidth(f *os.File) int {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return width
}
