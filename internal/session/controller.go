package session

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"pixgrip/internal/domain"
	"pixgrip/internal/eventbus"
	"pixgrip/internal/gateway"
)

// Call is a request bound to the context of its generation
type Call struct {
	Request
	ctx context.Context
}

// Result is the settled outcome of a Call
type Result struct {
	Request Request
	Page    domain.Page
	Err     error
}

// Controller owns the Session and is the only code that mutates it.
// It is not safe for concurrent use; Fetch is the only method meant to run off the owning goroutine.
type Controller struct {
	session  Session
	searcher gateway.Searcher
	bus      eventbus.EventBus
	logger   *zap.Logger

	root   context.Context
	live   context.Context    // context of the live generation's requests
	cancel context.CancelFunc // cancels live
}

// NewController creates a controller; bus may be nil
func NewController(ctx context.Context, searcher gateway.Searcher, bus eventbus.EventBus, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		searcher: searcher,
		bus:      bus,
		logger:   logger.Named("session"),
		root:     ctx,
		live:     ctx,
		cancel:   func() {},
	}
}

// Session returns the current state for rendering
func (c *Controller) Session() Session {
	return c.session
}

// SubmitQuery resets the session for q and returns the page-1 call.
// Requests still in flight for the previous query are cancelled.
func (c *Controller) SubmitQuery(q string) Call {
	c.cancel()
	ctx, cancel := context.WithCancel(c.root)
	c.live, c.cancel = ctx, cancel

	req := c.session.Submit(q)
	c.logger.Info("search submitted", zap.String("q", q), zap.Uint64("generation", req.Generation))
	c.publish(eventbus.SearchSubmittedEvent{Query: q, Generation: req.Generation})
	return Call{Request: req, ctx: ctx}
}

// LoadMore returns the call for the next page, or false when a fetch is in flight or nothing remains
func (c *Controller) LoadMore() (Call, bool) {
	req, ok := c.session.LoadMore()
	if !ok {
		c.logger.Debug("load more ignored",
			zap.Bool("loading", c.session.IsLoading),
			zap.Bool("has_more", c.session.HasMore),
		)
		return Call{}, false
	}
	c.publish(eventbus.PageRequestedEvent{Query: req.Query, Page: req.Page})
	return Call{Request: req, ctx: c.live}, true
}

// Fetch performs the gateway call. It does not touch the session and may run on any goroutine.
func (c *Controller) Fetch(call Call) Result {
	ctx := call.ctx
	if ctx == nil {
		ctx = c.root
	}
	page, err := c.searcher.Search(ctx, call.Query, call.Page)
	return Result{Request: call.Request, Page: page, Err: err}
}

// Settle applies a result to the session. Failures are logged and downgraded to "nothing returned".
// It reports false for results of a superseded query.
func (c *Controller) Settle(res Result) bool {
	req := res.Request
	if res.Err != nil {
		if !c.session.Fail(req, res.Err) {
			c.logger.Debug("stale failure dropped", zap.String("q", req.Query), zap.Int("page", req.Page), zap.Error(res.Err))
			return false
		}
		c.logger.Warn("search failed",
			zap.String("q", req.Query),
			zap.Int("page", req.Page),
			zap.String("kind", ErrorKind(res.Err)),
			zap.Error(res.Err),
		)
		c.publish(eventbus.SearchFailedEvent{Query: req.Query, Page: req.Page, Err: res.Err})
		return true
	}

	if !c.session.Apply(req, res.Page) {
		c.logger.Debug("stale page dropped", zap.String("q", req.Query), zap.Int("page", req.Page))
		return false
	}
	c.logger.Info("page loaded",
		zap.String("q", req.Query),
		zap.Int("page", req.Page),
		zap.Int("items", len(res.Page.Items)),
		zap.Int("total_hits", res.Page.TotalHits),
		zap.Bool("has_more", c.session.HasMore),
	)
	c.publish(eventbus.PageLoadedEvent{
		Query:     req.Query,
		Page:      req.Page,
		Items:     len(res.Page.Items),
		TotalHits: res.Page.TotalHits,
		HasMore:   c.session.HasMore,
	})
	return true
}

// SelectImage opens the modal on the given full-size URL
func (c *Controller) SelectImage(url string) {
	if url == "" {
		return
	}
	c.session.Select(url)
	c.publish(eventbus.ImageOpenedEvent{URL: url})
}

// Dismiss closes the modal
func (c *Controller) Dismiss() {
	if !c.session.ModalOpen() {
		return
	}
	url := c.session.Selected
	c.session.Dismiss()
	c.publish(eventbus.ModalClosedEvent{URL: url})
}

// Close cancels any request still in flight
func (c *Controller) Close() {
	c.cancel()
}

func (c *Controller) publish(e eventbus.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}

// ErrorKind classifies a fetch failure for logs and the status line
func ErrorKind(err error) string {
	var netErr *gateway.NetworkError
	var upErr *gateway.UpstreamError
	switch {
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.As(err, &netErr):
		return "network"
	case errors.As(err, &upErr):
		return "upstream"
	default:
		return "unknown"
	}
}
