package logic

// Navigator moves the cursor over the result grid and keeps the viewport on it.
// Tiles are laid out row-major, Columns per row, with Rows rows visible at once.
type Navigator struct {
	Columns int
	Rows    int
}

// NewNavigator creates a navigator for a grid of columns x rows visible tiles
func NewNavigator(columns, rows int) Navigator {
	if columns < 1 {
		columns = 1
	}
	if rows < 1 {
		rows = 1
	}
	return Navigator{Columns: columns, Rows: rows}
}

// Move returns the cursor after moving in direction over total tiles.
// Vertical moves that would leave the grid are ignored; page moves stop at the edges.
func (n Navigator) Move(cursor, total int, direction string) int {
	if total <= 0 {
		return 0
	}
	page := n.Columns * n.Rows

	switch direction {
	case "up":
		if cursor-n.Columns >= 0 {
			cursor -= n.Columns
		}
	case "down":
		if cursor+n.Columns < total {
			cursor += n.Columns
		}
	case "left":
		if cursor > 0 {
			cursor--
		}
	case "right":
		if cursor < total-1 {
			cursor++
		}
	case "pageup":
		cursor -= page
	case "pagedown":
		cursor += page
	case "home":
		cursor = 0
	case "end":
		cursor = total - 1
	}
	return n.clamp(cursor, total)
}

// TotalRows returns the number of tile rows needed for total tiles
func (n Navigator) TotalRows(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + n.Columns - 1) / n.Columns
}

// EnsureVisible returns a row offset that shows the cursor's row
func (n Navigator) EnsureVisible(cursor, rowOffset, total int) int {
	row := n.clamp(cursor, total) / n.Columns

	// If the cursor is above the viewport, scroll up
	if row < rowOffset {
		rowOffset = row
	}
	// If it is below, scroll just far enough
	if row >= rowOffset+n.Rows {
		rowOffset = row - n.Rows + 1
	}

	// Never leave empty rows at the bottom after a resize
	if maxOffset := n.TotalRows(total) - n.Rows; rowOffset > maxOffset {
		rowOffset = maxOffset
	}
	if rowOffset < 0 {
		rowOffset = 0
	}
	return rowOffset
}

func (n Navigator) clamp(cursor, total int) int {
	if cursor >= total {
		cursor = total - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
