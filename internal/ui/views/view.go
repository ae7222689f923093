package views

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"pixgrip/internal/session"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width            int
	Height           int
	Session          session.Session
	Cursor           int
	RowOffset        int
	Columns          int // preferred columns, 0 fits the width
	ShowAuthor       bool
	InputMode        string
	Prompt           string
	TextInput        string
	StatusMessage    string
	ShowHelp         bool
	HelpScrollOffset int
	ShowLog          bool
	LogContent       string
	PreviewContent   string
	PreviewErr       error
	PreviewLoading   bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	gridRender  *GridRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		gridRender:  NewGridRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func spinner() string {
	return spinnerFrames[int(time.Now().UnixMilli()/80)%len(spinnerFrames)]
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	layout := NewLayout(state)
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n")
	content.WriteString(r.renderSearchLine(state))
	content.WriteString("\n\n")

	if len(state.Session.Results) == 0 {
		content.WriteString(r.renderEmpty(state))
		content.WriteString("\n")
	} else {
		content.WriteString(r.gridRender.Render(state, layout))
		content.WriteString("\n")
	}

	if layout.LoadMoreY >= 0 {
		content.WriteString(r.styles.LoadMore.Render(loadMoreLabel))
	}
	content.WriteString("\n")
	content.WriteString(r.renderStatus(state, layout))

	helpText := ""
	if !state.ShowHelp && !state.ShowLog && !state.Session.ModalOpen() {
		helpText = r.styles.Help.Render("Press ? for help")
	}
	if helpText != "" {
		currentLines := strings.Count(content.String(), "\n") + 1
		availableLines := state.Height - 2*padTop
		if availableLines <= 0 {
			availableLines = 22
		}
		if paddingNeeded := availableLines - currentLines - 1; paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(helpText)
	}

	mainStyle := r.styles.Main.MaxHeight(state.Height)
	finalContent := mainStyle.Render(content.String())

	// Overlay popups on top of main content
	if state.Session.ModalOpen() {
		box := r.RenderModal(state)
		return r.popupRender.Overlay(finalContent, box, Place(box, state.Width, state.Height), state.Height)
	}

	if state.ShowLog && state.LogContent != "" {
		return r.popupRender.RenderPopupOverlay(finalContent, state.LogContent, state.Height, state.Width, r.styles.LogBox)
	}

	if state.ShowHelp {
		helpContent := r.renderHelpContent(state.Height, state.HelpScrollOffset)
		return r.popupRender.RenderPopupOverlay(finalContent, helpContent, state.Height, state.Width, r.styles.InfoBox)
	}

	return finalContent
}

func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("pixgrip")

	var indicators []string
	s := state.Session
	if s.IsLoading {
		if s.Page <= 1 {
			indicators = append(indicators, fmt.Sprintf("%s Searching %q", spinner(), s.Query))
		} else {
			indicators = append(indicators, fmt.Sprintf("%s Loading page %d", spinner(), s.Page+1))
		}
	}
	if state.PreviewLoading {
		indicators = append(indicators, fmt.Sprintf("%s Loading image", spinner()))
	}
	if len(indicators) == 0 {
		return logo
	}

	right := r.styles.Dim.Render(strings.Join(indicators, " | "))
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	paddingWidth := termWidth - 2*padLeft - lipgloss.Width(logo) - lipgloss.Width(right)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	return logo + strings.Repeat(" ", paddingWidth) + right
}

func (r *Renderer) renderSearchLine(state ViewState) string {
	if state.InputMode == "search" {
		return r.styles.Prompt.Render(state.Prompt) + state.TextInput
	}
	s := state.Session
	if s.Generation == 0 {
		return r.styles.Dim.Render("Press / to search")
	}
	line := r.styles.Dim.Render("Query: ") + r.styles.Query.Render(s.Query)
	if s.TotalHits > 0 {
		line += r.styles.Dim.Render(fmt.Sprintf("  · %d hits", s.TotalHits))
	}
	return line
}

func (r *Renderer) renderEmpty(state ViewState) string {
	s := state.Session
	switch {
	case s.Generation == 0:
		return r.styles.Dim.Render("Search free images. Press / and type a query.")
	case s.IsLoading:
		return r.styles.Dim.Render("Searching...")
	case s.Err != nil:
		return r.styles.Dim.Render("Nothing to show. Press r to retry.")
	default:
		return r.styles.Dim.Render(fmt.Sprintf("No images found for %q.", s.Query))
	}
}

func (r *Renderer) renderStatus(state ViewState, layout Layout) string {
	s := state.Session
	if s.Err != nil {
		return r.styles.StatusError.Render(fmt.Sprintf("Search failed (%s): %v · r to retry", session.ErrorKind(s.Err), rootCause(s.Err)))
	}
	if state.StatusMessage != "" {
		return r.styles.StatusSuccess.Render(state.StatusMessage)
	}
	if len(s.Results) == 0 {
		return ""
	}

	status := fmt.Sprintf("%d of %d images · page %d", len(s.Results), s.TotalHits, s.Page)
	if total := layout.TotalRows(); total > layout.VisibleRows {
		last := layout.RowOffset + layout.ShownRows()
		status += fmt.Sprintf(" · rows %d-%d of %d", layout.RowOffset+1, last, total)
	}
	if !s.HasMore && !s.IsLoading {
		status += " · end of results"
	}
	return r.styles.StatusLoading.Render(status)
}

// rootCause drops the wrapping context so the status line stays short
func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
