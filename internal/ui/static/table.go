// Package static provides non-interactive terminal output components.
package static

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/nestedfolder/internal/resolve"
	"github.com/raphi011/nestedfolder/internal/ui/styles"
)

// ResultHeaders are the column headers of RenderResults.
var ResultHeaders = []string{"INPUT", "RESOLVED", "DEPTH", "STOP"}

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which calculates
// column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Bold.PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// ResultRow formats one result as table cells matching ResultHeaders.
// Failed inputs show the error in the RESOLVED column.
func ResultRow(r resolve.Result) []string {
	if r.Err != nil {
		return []string{
			r.Input,
			styles.ErrorStyle.Render(r.Err.Error()),
			"-",
			styles.ErrorStyle.Render(resolve.KindOf(r.Err).String()),
		}
	}

	resolved := r.Path
	if r.Depth > 0 {
		resolved = styles.SuccessStyle.Render(r.Path)
	}
	return []string{r.Input, resolved, strconv.Itoa(r.Depth), styles.MutedStyle.Render(r.Reason.String())}
}

// RenderResults renders resolution results as a table.
func RenderResults(results []resolve.Result) string {
	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = ResultRow(r)
	}
	return RenderTable(ResultHeaders, rows)
}
