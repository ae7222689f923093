// Package session holds the search session state and the transitions that mutate it.
//
// A Session only changes through Submit, LoadMore, Apply, Fail, Select and Dismiss. Apply and Fail settle a
// Request; requests from an older generation (a query that has since been replaced) are ignored, so results
// never mix two queries.
package session

import (
	"pixgrip/internal/domain"
)

// Request identifies one gateway call issued by the session
type Request struct {
	Generation uint64
	Query      string
	Page       int
}

// Session is the single search session owned by the controller
type Session struct {
	Query     string
	Page      int
	Results   []domain.Image
	IsLoading bool
	HasMore   bool
	Selected  string // full-size URL of the open image, "" when closed
	Err       error  // last fetch failure, nil after a successful fetch

	TotalHits  int
	Generation uint64
}

// Submit starts a fresh search for q. Empty queries are not rejected.
func (s *Session) Submit(q string) Request {
	s.Generation++
	s.Query = q
	s.Page = 1
	s.Results = nil
	s.HasMore = false
	s.TotalHits = 0
	s.IsLoading = true
	s.Err = nil
	return Request{Generation: s.Generation, Query: q, Page: 1}
}

// LoadMore requests the next page. It is a no-op while a fetch is in flight or when no pages remain.
func (s *Session) LoadMore() (Request, bool) {
	if s.IsLoading || !s.HasMore {
		return Request{}, false
	}
	s.IsLoading = true
	return Request{Generation: s.Generation, Query: s.Query, Page: s.Page + 1}, true
}

// Current reports whether req belongs to the live query
func (s Session) Current(req Request) bool {
	return req.Generation == s.Generation
}

// Apply merges a successful page. Page 1 replaces the results, later pages append in arrival order.
func (s *Session) Apply(req Request, page domain.Page) bool {
	if !s.Current(req) {
		return false
	}
	if req.Page <= 1 {
		s.Results = append([]domain.Image(nil), page.Items...)
	} else {
		s.Results = append(s.Results, page.Items...)
	}
	s.Page = req.Page
	s.HasMore = page.HasMore && len(page.Items) > 0
	s.TotalHits = page.TotalHits
	s.IsLoading = false
	s.Err = nil
	return true
}

// Fail settles a failed request: results, page and hasMore stay as they were
func (s *Session) Fail(req Request, err error) bool {
	if !s.Current(req) {
		return false
	}
	s.IsLoading = false
	s.Err = err
	return true
}

// Select opens the modal on url, replacing any image already open
func (s *Session) Select(url string) {
	s.Selected = url
}

// Dismiss closes the modal
func (s *Session) Dismiss() {
	s.Selected = ""
}

// ModalOpen reports whether an image is selected
func (s Session) ModalOpen() bool {
	return s.Selected != ""
}

// SelectedImage returns the first result whose full-size URL is selected
func (s Session) SelectedImage() (domain.Image, bool) {
	if s.Selected == "" {
		return domain.Image{}, false
	}
	for _, img := range s.Results {
		if img.FullImageURL == s.Selected {
			return img, true
		}
	}
	return domain.Image{}, false
}
