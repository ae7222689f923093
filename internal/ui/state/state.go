package state

import (
	"pixgrip/internal/domain"
	"pixgrip/internal/session"
)

// PreviewState tracks the rendered image shown in the modal
type PreviewState struct {
	Seq     uint64 // request the modal is waiting for
	URL     string // full-size URL being previewed
	Key     string // cache key of the requested render
	Content string // rendered cells, "" until loaded
	Err     error
	Loading bool
}

// AppState contains all the application state
type AppState struct {
	// Search data, a snapshot of the controller's session taken after every transition
	Session session.Session

	// Grid state
	Cursor    int // index of the highlighted tile
	RowOffset int // first visible grid row

	// UI state
	Width            int
	Height           int
	ShowHelp         bool
	HelpScrollOffset int // scroll offset for help popup
	ShowLog          bool
	LogContent       string
	StatusMessage    string // status bar message, cleared on the next key
	InPagerMode      bool   // an external pager owns the terminal

	Preview PreviewState
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{}
}

// Results returns the images currently shown in the grid
func (s *AppState) Results() []domain.Image {
	return s.Session.Results
}

// CurrentImage returns the image under the cursor
func (s *AppState) CurrentImage() (domain.Image, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Session.Results) {
		return domain.Image{}, false
	}
	return s.Session.Results[s.Cursor], true
}

// ClampCursor keeps the cursor inside the result list
func (s *AppState) ClampCursor() {
	if n := len(s.Session.Results); s.Cursor >= n {
		s.Cursor = n - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
}

// ResetGrid moves the cursor and viewport back to the first tile
func (s *AppState) ResetGrid() {
	s.Cursor = 0
	s.RowOffset = 0
}

// CanLoadMore reports whether the load-more affordance is active
func (s *AppState) CanLoadMore() bool {
	return len(s.Session.Results) > 0 && !s.Session.IsLoading && s.Session.HasMore
}

// ClearPreview forgets the modal render
func (s *AppState) ClearPreview() {
	s.Preview = PreviewState{}
}
