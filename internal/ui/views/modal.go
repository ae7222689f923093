package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// modalChrome is the space the modal frame and caption take around the preview
const (
	modalChromeCols = 8
	modalChromeRows = 9
)

// PreviewBox returns the largest preview, in cells, that fits the modal on a width x height screen
func PreviewBox(width, height int) (int, int) {
	cols := width - modalChromeCols
	rows := height - modalChromeRows
	if cols < 10 {
		cols = 10
	}
	if rows < 4 {
		rows = 4
	}
	return cols, rows
}

// RenderModal draws the open image with its caption
func (r *Renderer) RenderModal(state ViewState) string {
	maxCols, _ := PreviewBox(state.Width, state.Height)
	s := state.Session

	var body string
	switch {
	case state.PreviewContent != "":
		body = state.PreviewContent
	case state.PreviewErr != nil:
		body = r.styles.StatusError.Render(fmt.Sprintf("Preview unavailable: %v", rootCause(state.PreviewErr)))
	default:
		body = r.styles.Dim.Render(spinner() + " Loading image...")
	}

	var caption []string
	if img, ok := s.SelectedImage(); ok {
		tags := img.Tags
		if tags == "" {
			tags = fmt.Sprintf("#%d", img.ID)
		}
		caption = append(caption, r.styles.ModalTitle.Render(ansi.Truncate(tags, maxCols, "…")))

		var meta []string
		if img.User != "" {
			meta = append(meta, "by "+img.User)
		}
		if img.Width > 0 && img.Height > 0 {
			meta = append(meta, fmt.Sprintf("%d×%d", img.Width, img.Height))
		}
		meta = append(meta, fmt.Sprintf("♥ %d", img.Likes), fmt.Sprintf("↓ %d", img.Downloads))
		caption = append(caption, r.styles.TileMeta.Render(ansi.Truncate(strings.Join(meta, " · "), maxCols, "…")))
		if img.PageURL != "" {
			caption = append(caption, r.styles.Dim.Render(ansi.Truncate(img.PageURL, maxCols, "…")))
		}
	} else {
		caption = append(caption, r.styles.Dim.Render(ansi.Truncate(s.Selected, maxCols, "…")))
	}
	caption = append(caption, r.styles.Help.Render("esc/q/enter close · click outside to dismiss"))

	return r.styles.Modal.Render(body + "\n\n" + strings.Join(caption, "\n"))
}

// ModalRect returns where the modal box is drawn
func (r *Renderer) ModalRect(state ViewState) Rect {
	return Place(r.RenderModal(state), state.Width, state.Height)
}
