package gateway

import (
	"context"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"pixgrip/internal/domain"
)

// CachedSearcher keeps successful pages for a while and collapses identical in-flight requests.
// Failures are never cached.
type CachedSearcher struct {
	next   Searcher
	ttl    time.Duration
	pages  *cache.Cache
	group  singleflight.Group
	logger *zap.Logger
}

// NewCachedSearcher wraps next with a TTL cache; a non-positive ttl disables caching but keeps de-duplication
func NewCachedSearcher(next Searcher, ttl time.Duration, logger *zap.Logger) *CachedSearcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	pages := cache.New(cache.NoExpiration, 0)
	if ttl > 0 {
		pages = cache.New(ttl, 2*ttl)
	}
	return &CachedSearcher{
		next:   next,
		ttl:    ttl,
		pages:  pages,
		logger: logger,
	}
}

func pageKey(query string, page int) string {
	return query + "|" + strconv.Itoa(page)
}

// Search returns a cached page when present, otherwise asks the wrapped searcher
func (s *CachedSearcher) Search(ctx context.Context, query string, page int) (domain.Page, error) {
	key := pageKey(query, page)
	if v, ok := s.pages.Get(key); ok {
		s.logger.Debug("page cache hit", zap.String("q", query), zap.Int("page", page))
		return clonePage(v.(domain.Page)), nil
	}

	// The shared call is not bound to a single caller's context
	ch := s.group.DoChan(key, func() (any, error) {
		p, err := s.next.Search(context.WithoutCancel(ctx), query, page)
		if err != nil {
			return nil, err
		}
		if s.cacheEnabled() {
			s.pages.SetDefault(key, p)
		}
		return p, nil
	})

	select {
	case <-ctx.Done():
		return domain.Page{}, &NetworkError{Op: "search", Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return domain.Page{}, res.Err
		}
		return clonePage(res.Val.(domain.Page)), nil
	}
}

func (s *CachedSearcher) cacheEnabled() bool {
	return s.ttl > 0
}

// Flush drops every cached page
func (s *CachedSearcher) Flush() {
	s.pages.Flush()
}

// Len returns the number of cached pages
func (s *CachedSearcher) Len() int {
	return s.pages.ItemCount()
}

// clonePage copies the item slice so callers can append without aliasing cached data
func clonePage(p domain.Page) domain.Page {
	items := make([]domain.Image, len(p.Items))
	copy(items, p.Items)
	p.Items = items
	return p
}
