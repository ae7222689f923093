package input

import (
	"pixgrip/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State *state.AppState
}

// CurrentIndex returns the highlighted tile index
func (c *ModelContext) CurrentIndex() int {
	return c.State.Cursor
}

// TotalItems returns the number of tiles in the grid
func (c *ModelContext) TotalItems() int {
	return len(c.State.Results())
}

// CurrentImageURL returns the full-size URL of the highlighted tile, "" when the grid is empty
func (c *ModelContext) CurrentImageURL() string {
	img, ok := c.State.CurrentImage()
	if !ok {
		return ""
	}
	return img.FullImageURL
}

// CanLoadMore reports whether another page can be requested
func (c *ModelContext) CanLoadMore() bool {
	return c.State.CanLoadMore()
}

// ModalOpen reports whether an image is open
func (c *ModelContext) ModalOpen() bool {
	return c.State.Session.ModalOpen()
}

// Query returns the last submitted query
func (c *ModelContext) Query() string {
	return c.State.Session.Query
}
