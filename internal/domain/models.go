package domain

import (
	"strings"
)

// Image describes one search hit
type Image struct {
	ID           int
	ThumbnailURL string
	FullImageURL string

	// Display metadata carried through from the upstream hit
	PageURL   string
	Tags      string
	User      string
	Width     int
	Height    int
	Likes     int
	Downloads int
}

// TagList returns the comma separated tags as a slice
func (i Image) TagList() []string {
	if i.Tags == "" {
		return nil
	}
	parts := strings.Split(i.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// Page is one normalized page of search results
type Page struct {
	Items     []Image
	HasMore   bool
	TotalHits int
}
