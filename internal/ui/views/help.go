package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpContent returns the key reference shown in the help popup
func HelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	entry := func(key, desc string) string {
		return fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-10s", key)), descStyle.Render(desc))
	}

	var help strings.Builder
	help.WriteString(titleStyle.Render("pixgrip help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Search"))
	help.WriteString("\n")
	help.WriteString(entry("/, s", "New search (Enter submits, Esc cancels)"))
	help.WriteString(entry("m, n", "Load more results"))
	help.WriteString(entry("r", "Run the current query again"))

	help.WriteString(sectionStyle.Render("Grid"))
	help.WriteString("\n")
	help.WriteString(entry("←↑↓→, hjkl", "Move between images"))
	help.WriteString(entry("PgUp/PgDn", "Page up/down"))
	help.WriteString(entry("gg/G", "First/last image"))
	help.WriteString(entry("Enter, Spc", "Open image"))
	help.WriteString(entry("click", "Open image, or load more on the last line"))

	help.WriteString(sectionStyle.Render("Image"))
	help.WriteString("\n")
	help.WriteString(entry("Esc, q", "Close"))
	help.WriteString(entry("Enter, ⌫", "Close"))
	help.WriteString(entry("click", "Close when outside the image"))

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(entry("L", "Activity log"))
	help.WriteString(entry("?", "Toggle this help"))
	help.WriteString(strings.TrimSuffix(entry("q, Ctrl+C", "Quit"), "\n"))

	return help.String()
}

// renderHelpContent renders the help information with scrolling
func (r *Renderer) renderHelpContent(height int, scrollOffset int) string {
	lines := strings.Split(HelpContent(), "\n")
	totalLines := len(lines)

	// Calculate visible window (account for popup border and padding)
	visibleHeight := height - 4
	if visibleHeight < 5 {
		visibleHeight = 5
	}

	if totalLines > visibleHeight {
		maxOffset := totalLines - visibleHeight
		if scrollOffset > maxOffset {
			scrollOffset = maxOffset
		}
		if scrollOffset < 0 {
			scrollOffset = 0
		}

		endLine := scrollOffset + visibleHeight
		lines = lines[scrollOffset:endLine]

		if scrollOffset > 0 {
			lines[0] = r.styles.Scroll.Render("↑ (more above)")
		}
		if endLine < totalLines {
			lines[len(lines)-1] = r.styles.Scroll.Render("↓ (more below)")
		}
	}

	return strings.Join(lines, "\n")
}
