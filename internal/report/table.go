package report

import (
	"strconv"
	"strings"

	"github.com/cor1nthian/wincontentseeker/pkg/models"
)

// EmptyMarker is printed when the scan produced zero matches
const EmptyMarker = "---"

// Render renders the report rows as a plain-text table with columns
// {Path, Size-<unit>, Algo, Hash}. Zero rows render as the empty marker.
func (b *Builder) Render(results *models.ScanResults) string {
	if len(results.Rows) == 0 {
		return EmptyMarker + "\n"
	}

	headers := []string{"Path", b.config.SizeLabel(), "Algo", "Hash"}

	cells := make([][]string, 0, len(results.Rows))
	for _, row := range results.Rows {
		cells = append(cells, []string{
			row.Path,
			strconv.FormatFloat(row.ScaledSize, 'f', b.config.FractionDigits, 64),
			string(row.Algorithm),
			row.Hash,
		})
	}

	// Column widths from content
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range cells {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(cell)
			if i < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	total := len(headers)*2 - 2
	for _, w := range widths {
		total += w
	}
	sb.WriteString(strings.Repeat("-", total) + "\n")
	for _, row := range cells {
		writeRow(row)
	}

	return sb.String()
}
