package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/sunset/pkg/report"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// RecordBrowserModel - Interactive deprecation browsing
// =============================================================================

// recordItem is one browsable deprecation with its package context.
type recordItem struct {
	pkg     string
	version string
	row     report.Row
}

// RecordBrowserModel is the bubbletea model for browsing deprecation records
// across packages, with a detail pane for the highlighted record.
type RecordBrowserModel struct {
	Items  []recordItem
	Cursor int
	Height int
	Offset int
}

// NewRecordBrowserModel flattens the reports into a single browsable list.
func NewRecordBrowserModel(reports []report.Report) RecordBrowserModel {
	var items []recordItem
	for _, r := range reports {
		for _, row := range r.Rows {
			items = append(items, recordItem{pkg: r.Package, version: r.Version, row: row})
		}
	}
	return RecordBrowserModel{
		Items:  items,
		Cursor: 0,
		Height: 12,
		Offset: 0,
	}
}

func (m RecordBrowserModel) Init() tea.Cmd {
	return nil
}

func (m RecordBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		// Leave room for the title, key hints and the detail pane.
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m RecordBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Deprecations"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	if len(m.Items) == 0 {
		b.WriteString(listDimStyle.Render("  nothing to show"))
		b.WriteString("\n")
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(m.Items) {
		end = len(m.Items)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		item := m.Items[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			item.pkg,
			item.row.State,
			truncate(firstLine(item.row.Message), 48),
			item.row.GoneIn,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("", "Package", "Type", "Message", "Gone In").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Items) {
				return lipgloss.NewStyle()
			}
			if actualIdx == m.Cursor {
				return listSelectedStyle
			}
			if col == 2 {
				return stateStyle(m.Items[actualIdx].row.State)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(m.detailView())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Items))))

	return b.String()
}

// detailView renders the highlighted record in full.
func (m RecordBrowserModel) detailView() string {
	item := m.Items[m.Cursor]

	var b strings.Builder
	b.WriteString(StyleHighlight.Render(fmt.Sprintf("%s v%s", item.pkg, item.version)))
	b.WriteString("  ")
	b.WriteString(stateStyle(item.row.State).Render(item.row.State))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("warn %s  gone %s  locator %s",
		item.row.WarnIn, item.row.GoneIn, item.row.Locator)))
	b.WriteString("\n")
	for _, line := range strings.Split(item.row.Message, "\n") {
		b.WriteString("  ")
		b.WriteString(StyleValue.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// browseReports runs the interactive browser over the given reports.
func browseReports(reports []report.Report) error {
	p := tea.NewProgram(NewRecordBrowserModel(reports))
	_, err := p.Run()
	return err
}

// firstLine returns the text up to the first newline.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// truncate shortens s to at most max runes, ellipsized.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
