package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Rect is a screen region in cells
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// Place centres a rendered box of the given size in a width x height screen
func Place(box string, width, height int) Rect {
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	x := (width - w) / 2
	y := (height - h) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return Rect{X: x, Y: y, W: w, H: h}
}

// RenderPopupOverlay renders a popup on top of the main content, which is dimmed to grey
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	box := popupStyle.Render(popupContent)
	return pr.Overlay(mainContent, box, Place(box, width, height), height)
}

// Overlay composites box at rect over a desaturated base
func (pr *PopupRenderer) Overlay(base, box string, rect Rect, height int) string {
	baseLines := strings.Split(base, "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	boxLines := strings.Split(box, "\n")

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	out := make([]string, len(baseLines))
	for i, line := range baseLines {
		plain := ansi.Strip(line)
		row := i - rect.Y
		if row < 0 || row >= len(boxLines) {
			out[i] = dim.Render(plain)
			continue
		}

		left := ansi.Truncate(plain, rect.X, "")
		if gap := rect.X - ansi.StringWidth(left); gap > 0 {
			left += strings.Repeat(" ", gap)
		}
		right := ansi.TruncateLeft(plain, rect.X+rect.W, "")
		out[i] = dim.Render(left) + boxLines[row] + dim.Render(right)
	}
	return strings.Join(out, "\n")
}
