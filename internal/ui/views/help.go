package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpEntry struct {
	key  string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Search", []helpEntry{
		{"/", "Search events by location"},
		{"Enter", "Submit search (loads every page)"},
		{"Esc", "Cancel search input"},
		{"m", "Load more / retry failed page"},
	}},
	{"Navigation", []helpEntry{
		{"↑/↓, j/k", "Navigate up/down"},
		{"PgUp/PgDn", "Page up/down"},
		{"g/G", "Go to top/bottom"},
	}},
	{"Events", []helpEntry{
		{"v, Enter", "Open event details in pager"},
	}},
	{"Other", []helpEntry{
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}},
}

// buildHelp renders the help text with the given styles
func buildHelp(titleStyle, sectionStyle, keyStyle, descStyle lipgloss.Style) string {
	var help strings.Builder

	help.WriteString(titleStyle.Render("disasterwatch Help"))
	help.WriteString("\n")

	for i, section := range helpSections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, e := range section.entries {
			help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-10s", e.key)), descStyle.Render(e.desc)))
		}
		if i < len(helpSections)-1 {
			help.WriteString("\n")
		}
	}

	help.WriteString("\n")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).Render("  Only events in the \"disasters\" category are shown."))

	return help.String()
}

func helpStyles() (lipgloss.Style, lipgloss.Style, lipgloss.Style, lipgloss.Style) {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)
	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	return titleStyle, sectionStyle, keyStyle, descStyle
}

// RenderHelpContent renders the help popup body, scrolled to fit height
func RenderHelpContent(height int, scrollOffset int) string {
	content := buildHelp(helpStyles())
	lines := strings.Split(content, "\n")
	totalLines := len(lines)

	// Popup border and padding
	visibleHeight := height - 4
	if visibleHeight < 5 {
		visibleHeight = 5
	}

	if totalLines <= visibleHeight {
		return content
	}

	maxOffset := totalLines - visibleHeight
	if scrollOffset > maxOffset {
		scrollOffset = maxOffset
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}

	endLine := scrollOffset + visibleHeight
	visibleLines := append([]string(nil), lines[scrollOffset:endLine]...)

	scrollStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if scrollOffset > 0 {
		visibleLines[0] = scrollStyle.Render("↑ (more above)")
	}
	if endLine < totalLines {
		visibleLines[len(visibleLines)-1] = scrollStyle.Render("↓ (more below)")
	}

	return strings.Join(visibleLines, "\n")
}
