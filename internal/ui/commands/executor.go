package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"pixgrip/internal/preview"
	"pixgrip/internal/session"
)

// Executor handles command execution
type Executor struct {
	ctx  *CommandContext
	root context.Context

	previewCancel context.CancelFunc
	previewSeq    uint64
}

// PreviewRequest identifies a started preview
type PreviewRequest struct {
	Seq uint64
	Key string
}

// NewExecutor creates a new command executor; loader and previews may be nil
func NewExecutor(root context.Context, controller *session.Controller, loader PreviewLoader, previews *preview.Cache) *Executor {
	return &Executor{
		root: root,
		ctx: &CommandContext{
			Controller: controller,
			Loader:     loader,
			Previews:   previews,
		},
		previewCancel: func() {},
	}
}

// ExecuteSearch creates and executes a search command
func (e *Executor) ExecuteSearch(query string) tea.Cmd {
	cmd := NewSearchCommand(e.ctx, query)
	return cmd.Execute()
}

// ExecuteLoadMore creates and executes a load-more command
func (e *Executor) ExecuteLoadMore() tea.Cmd {
	cmd := NewLoadMoreCommand(e.ctx)
	return cmd.Execute()
}

// ExecutePreview cancels any preview still loading and starts a new one.
// Only a PreviewLoadedMsg carrying the returned Seq belongs to this request.
func (e *Executor) ExecutePreview(url string, cols, rows int) (PreviewRequest, tea.Cmd) {
	e.CancelPreview()
	ctx, cancel := context.WithCancel(e.root)
	e.previewCancel = cancel
	e.previewSeq++
	cmd := NewPreviewCommand(e.ctx, ctx, e.previewSeq, url, cols, rows)
	return PreviewRequest{Seq: e.previewSeq, Key: cmd.Key()}, cmd.Execute()
}

// CancelPreview stops the preview download in flight, if any
func (e *Executor) CancelPreview() {
	e.previewCancel()
}
