package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"pixgrip/internal/preview"
	"pixgrip/internal/session"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// PageFetchedMsg carries a settled gateway call back to the update loop
type PageFetchedMsg struct {
	Result session.Result
}

// PreviewLoadedMsg carries a rendered modal image
type PreviewLoadedMsg struct {
	Seq     uint64 // request number from the executor, newer requests supersede older ones
	URL     string
	Key     string
	Content string
	Err     error
}

// PreviewLoader renders a remote image into a cell box
type PreviewLoader interface {
	Load(ctx context.Context, url string, maxCols, maxRows int) (string, error)
}

// CommandContext provides context for command execution
type CommandContext struct {
	Controller *session.Controller
	Loader     PreviewLoader
	Previews   *preview.Cache
}

// SearchCommand starts a new query
type SearchCommand struct {
	ctx   *CommandContext
	query string
}

// NewSearchCommand creates a new search command
func NewSearchCommand(ctx *CommandContext, query string) *SearchCommand {
	return &SearchCommand{ctx: ctx, query: query}
}

// Execute resets the session and fetches page 1 in the background
func (c *SearchCommand) Execute() tea.Cmd {
	return fetch(c.ctx.Controller, c.ctx.Controller.SubmitQuery(c.query))
}

// LoadMoreCommand requests the next page
type LoadMoreCommand struct {
	ctx *CommandContext
}

// NewLoadMoreCommand creates a new load-more command
func NewLoadMoreCommand(ctx *CommandContext) *LoadMoreCommand {
	return &LoadMoreCommand{ctx: ctx}
}

// Execute returns nil when a fetch is already in flight or no pages remain
func (c *LoadMoreCommand) Execute() tea.Cmd {
	call, ok := c.ctx.Controller.LoadMore()
	if !ok {
		return nil
	}
	return fetch(c.ctx.Controller, call)
}

func fetch(controller *session.Controller, call session.Call) tea.Cmd {
	return func() tea.Msg {
		return PageFetchedMsg{Result: controller.Fetch(call)}
	}
}

// PreviewCommand renders the full-size image of the open modal
type PreviewCommand struct {
	ctx        *CommandContext
	runCtx     context.Context
	seq        uint64
	url        string
	cols, rows int
}

// NewPreviewCommand creates preview request seq bound to runCtx
func NewPreviewCommand(ctx *CommandContext, runCtx context.Context, seq uint64, url string, cols, rows int) *PreviewCommand {
	return &PreviewCommand{ctx: ctx, runCtx: runCtx, seq: seq, url: url, cols: cols, rows: rows}
}

// Key identifies the render this command produces
func (c *PreviewCommand) Key() string {
	return preview.Key(c.url, c.cols, c.rows)
}

// Execute serves the render from the cache or loads it in the background
func (c *PreviewCommand) Execute() tea.Cmd {
	key := c.Key()
	if c.ctx.Previews != nil {
		if content, ok := c.ctx.Previews.Get(key); ok {
			return func() tea.Msg {
				return PreviewLoadedMsg{Seq: c.seq, URL: c.url, Key: key, Content: content}
			}
		}
	}
	if c.ctx.Loader == nil {
		return nil
	}
	return func() tea.Msg {
		content, err := c.ctx.Loader.Load(c.runCtx, c.url, c.cols, c.rows)
		if err == nil && c.ctx.Previews != nil {
			c.ctx.Previews.Add(key, content)
		}
		return PreviewLoadedMsg{Seq: c.seq, URL: c.url, Key: key, Content: content, Err: err}
	}
}
