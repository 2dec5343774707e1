package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorCyan  = lipgloss.Color("36")  // Teal - titles
	colorAmber = lipgloss.Color("220") // Amber - active records
	colorRed   = lipgloss.Color("167") // Soft red - expired records
	colorGray  = lipgloss.Color("245") // Gray - headers
	colorDim   = lipgloss.Color("240") // Dim gray - pending records, borders

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	headerStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(colorDim)

	stateStyles = map[string]lipgloss.Style{
		"pending": lipgloss.NewStyle().Foreground(colorDim),
		"active":  lipgloss.NewStyle().Foreground(colorAmber),
		"expired": lipgloss.NewStyle().Foreground(colorRed),
	}
)

// RenderTable writes the report as a bordered terminal table, one row per
// record, colored by lifecycle state.
func RenderTable(w io.Writer, r Report) error {
	title := titleStyle.Render(fmt.Sprintf("Deprecations for %s (v%s)", r.Package, r.Version))

	if len(r.Rows) == 0 {
		_, err := fmt.Fprintf(w, "%s\n%s\n", title, dimStyle.Render("no deprecations to show"))
		return err
	}

	rows := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = []string{row.State, row.Message, row.WarnIn, row.GoneIn, row.Locator}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Type", "Message", "Warn In", "Gone In", "Locator").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= 0 && row < len(r.Rows) {
				if s, ok := stateStyles[r.Rows[row].State]; ok {
					return s
				}
			}
			return lipgloss.NewStyle()
		})

	_, err := fmt.Fprintf(w, "%s\n%s\n", title, t.Render())
	return err
}
