package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// FormatTime renders an elapsed duration in seconds as a compact
// human-readable string: "0.23s", "5m 45.03s", "1h 0m 0.32s". The hours
// segment is omitted when zero; minutes appear whenever hours or minutes
// are nonzero; seconds always carry two decimals.
func FormatTime(seconds float64) string {
	hours := int(seconds / 3600)
	seconds -= float64(hours) * 3600
	minutes := int(seconds / 60)
	seconds -= float64(minutes) * 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %.2fs", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %.2fs", minutes, seconds)
	default:
		return fmt.Sprintf("%.2fs", seconds)
	}
}

// FormatGrid renders a result set as a boxed, padded table with a header
// row.
func FormatGrid(columns []string, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sep strings.Builder
	sep.WriteString("+")
	for _, w := range widths {
		sep.WriteString(strings.Repeat("-", w+2))
		sep.WriteString("+")
	}
	sepLine := sep.String()

	var out strings.Builder
	out.WriteString(sepLine)
	out.WriteString("\n|")
	for i, col := range columns {
		fmt.Fprintf(&out, " %-*s |", widths[i], col)
	}
	out.WriteString("\n")
	out.WriteString(sepLine)

	for _, row := range rows {
		out.WriteString("\n|")
		for i, cell := range row {
			if i < len(widths) {
				fmt.Fprintf(&out, " %-*s |", widths[i], cell)
			}
		}
	}
	if len(rows) > 0 {
		out.WriteString("\n")
		out.WriteString(sepLine)
	}

	return out.String()
}

// WriteCSV writes a header row followed by the data rows with standard CSV
// quoting.
func WriteCSV(w io.Writer, columns []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(columns); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}
