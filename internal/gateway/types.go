package gateway

import "pixgrip/internal/domain"

// searchResponse is the JSON body of the search endpoint
type searchResponse struct {
	Total     int   `json:"total"`
	TotalHits int   `json:"totalHits"`
	Hits      []hit `json:"hits"`
}

type hit struct {
	ID            int    `json:"id"`
	PageURL       string `json:"pageURL"`
	Tags          string `json:"tags"`
	WebformatURL  string `json:"webformatURL"`
	LargeImageURL string `json:"largeImageURL"`
	ImageWidth    int    `json:"imageWidth"`
	ImageHeight   int    `json:"imageHeight"`
	Likes         int    `json:"likes"`
	Downloads     int    `json:"downloads"`
	User          string `json:"user"`
}

func (h hit) toImage() domain.Image {
	return domain.Image{
		ID:           h.ID,
		ThumbnailURL: h.WebformatURL,
		FullImageURL: h.LargeImageURL,
		PageURL:      h.PageURL,
		Tags:         h.Tags,
		User:         h.User,
		Width:        h.ImageWidth,
		Height:       h.ImageHeight,
		Likes:        h.Likes,
		Downloads:    h.Downloads,
	}
}
