package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"pixgrip/internal/domain"
)

// Tile geometry in terminal cells, borders included
const (
	TileWidth  = 30
	TileHeight = 5
	tileGap    = 1
	tileInner  = TileWidth - 4
)

// Screen geometry shared by the renderer and mouse hit testing
const (
	padTop      = 1
	padLeft     = 2
	headerLines = 3 // title, search line, blank
	footerLines = 3 // load more, status, help hint
)

// GridColumns returns how many tiles fit across width; preferred > 0 caps it
func GridColumns(width, preferred int) int {
	avail := width - 2*padLeft
	cols := (avail + tileGap) / (TileWidth + tileGap)
	if preferred > 0 && preferred < cols {
		cols = preferred
	}
	if cols < 1 {
		cols = 1
	}
	return cols
}

// GridRows returns how many tile rows fit vertically
func GridRows(height int) int {
	avail := height - 2*padTop - headerLines - footerLines
	rows := avail / TileHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}

// Layout locates the grid and the load-more line on screen
type Layout struct {
	Left, Top   int
	Columns     int
	VisibleRows int
	RowOffset   int
	Count       int

	LoadMoreY     int // -1 when the line is hidden
	LoadMoreWidth int
}

// NewLayout computes the layout for state
func NewLayout(state ViewState) Layout {
	l := Layout{
		Left:        padLeft,
		Top:         padTop + headerLines,
		Columns:     GridColumns(state.Width, state.Columns),
		VisibleRows: GridRows(state.Height),
		RowOffset:   state.RowOffset,
		Count:       len(state.Session.Results),
		LoadMoreY:   -1,
	}
	if ShowLoadMore(state) {
		l.LoadMoreY = l.Top + l.ShownRows()*TileHeight
		l.LoadMoreWidth = lipgloss.Width(loadMoreLabel)
	}
	return l
}

// TotalRows returns the number of grid rows across all results
func (l Layout) TotalRows() int {
	return (l.Count + l.Columns - 1) / l.Columns
}

// ShownRows returns the number of rows drawn in the viewport
func (l Layout) ShownRows() int {
	rows := l.TotalRows() - l.RowOffset
	if rows > l.VisibleRows {
		rows = l.VisibleRows
	}
	if rows < 0 {
		rows = 0
	}
	return rows
}

// TileAt returns the result index under the cell (x, y)
func (l Layout) TileAt(x, y int) (int, bool) {
	dx, dy := x-l.Left, y-l.Top
	if dx < 0 || dy < 0 {
		return 0, false
	}
	col := dx / (TileWidth + tileGap)
	if col >= l.Columns || dx%(TileWidth+tileGap) >= TileWidth {
		return 0, false
	}
	row := dy / TileHeight
	if row >= l.ShownRows() {
		return 0, false
	}
	index := (l.RowOffset+row)*l.Columns + col
	if index >= l.Count {
		return 0, false
	}
	return index, true
}

// OnLoadMore reports whether (x, y) hits the load-more line
func (l Layout) OnLoadMore(x, y int) bool {
	return l.LoadMoreY >= 0 && y == l.LoadMoreY && x >= l.Left && x < l.Left+l.LoadMoreWidth
}

// ShowLoadMore reports whether the load-more affordance is rendered
func ShowLoadMore(state ViewState) bool {
	s := state.Session
	return len(s.Results) > 0 && !s.IsLoading && s.HasMore
}

const loadMoreLabel = "▼ Load more (m)"

// GridRenderer draws result tiles
type GridRenderer struct {
	styles *Styles
}

// NewGridRenderer creates a new grid renderer
func NewGridRenderer(styles *Styles) *GridRenderer {
	return &GridRenderer{styles: styles}
}

// Render draws the visible rows of the grid
func (g *GridRenderer) Render(state ViewState, layout Layout) string {
	results := state.Session.Results
	rows := make([]string, 0, layout.ShownRows())
	for r := 0; r < layout.ShownRows(); r++ {
		start := (layout.RowOffset + r) * layout.Columns
		end := start + layout.Columns
		if end > len(results) {
			end = len(results)
		}
		tiles := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				tiles = append(tiles, strings.Repeat(" ", tileGap))
			}
			tiles = append(tiles, g.RenderTile(results[i], i == state.Cursor, state.ShowAuthor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return strings.Join(rows, "\n")
}

// RenderTile draws one image summary
func (g *GridRenderer) RenderTile(img domain.Image, selected, showAuthor bool) string {
	header := fmt.Sprintf("#%d", img.ID)
	if img.Width > 0 && img.Height > 0 {
		header = fmt.Sprintf("#%d  %d×%d", img.ID, img.Width, img.Height)
	}

	tags := img.Tags
	if tags == "" {
		tags = "untagged"
	}

	meta := fmt.Sprintf("♥ %d  ↓ %d", img.Likes, img.Downloads)
	if showAuthor && img.User != "" {
		meta = fmt.Sprintf("by %s  ♥ %d", img.User, img.Likes)
	}

	lines := []string{
		g.styles.TileHeader.Render(ansi.Truncate(header, tileInner, "…")),
		ansi.Truncate(tags, tileInner, "…"),
		g.styles.TileMeta.Render(ansi.Truncate(meta, tileInner, "…")),
	}

	style := g.styles.Tile
	if selected {
		style = g.styles.TileSelected
	}
	return style.Render(strings.Join(lines, "\n"))
}
