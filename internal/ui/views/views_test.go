package views

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixgrip/internal/domain"
	"pixgrip/internal/session"
)

func results(n int) []domain.Image {
	out := make([]domain.Image, n)
	for i := range out {
		out[i] = domain.Image{
			ID:           i + 1,
			Tags:         fmt.Sprintf("tag%d, cat", i+1),
			User:         "alice",
			Width:        640,
			Height:       427,
			FullImageURL: fmt.Sprintf("https://cdn/%d_1280.jpg", i+1),
		}
	}
	return out
}

func loaded(n, total int, hasMore bool) session.Session {
	return session.Session{
		Query:      "cats",
		Page:       1,
		Results:    results(n),
		HasMore:    hasMore,
		TotalHits:  total,
		Generation: 1,
	}
}

func TestGridColumns(t *testing.T) {
	assert.Equal(t, 1, GridColumns(20, 0))
	assert.Equal(t, 3, GridColumns(100, 0))
	assert.Equal(t, 2, GridColumns(100, 2))
	assert.Equal(t, 3, GridColumns(100, 9), "preference cannot exceed the width")
}

func TestLayoutTileAt(t *testing.T) {
	l := NewLayout(ViewState{Width: 100, Height: 40, Session: loaded(7, 30, true)})
	require.Equal(t, 3, l.Columns)

	idx, ok := l.TileAt(padLeft, l.Top)
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = l.TileAt(padLeft+TileWidth+tileGap+3, l.Top+TileHeight+2)
	require.True(t, ok)
	assert.Equal(t, 4, idx)

	_, ok = l.TileAt(padLeft+TileWidth, l.Top) // gap column
	assert.False(t, ok)

	_, ok = l.TileAt(padLeft+TileWidth+tileGap, l.Top+2*TileHeight) // third row only has index 6
	assert.False(t, ok)

	idx, ok = l.TileAt(padLeft, l.Top+2*TileHeight)
	require.True(t, ok)
	assert.Equal(t, 6, idx)

	_, ok = l.TileAt(0, 0)
	assert.False(t, ok)
}

func TestLayoutLoadMoreLine(t *testing.T) {
	l := NewLayout(ViewState{Width: 100, Height: 40, Session: loaded(7, 30, true)})
	assert.Equal(t, l.Top+3*TileHeight, l.LoadMoreY)
	assert.True(t, l.OnLoadMore(padLeft+1, l.LoadMoreY))
	assert.False(t, l.OnLoadMore(padLeft+1, l.LoadMoreY+1))

	for name, s := range map[string]session.Session{
		"no results": {Generation: 1, HasMore: true},
		"loading":    {Generation: 1, Results: results(3), HasMore: true, IsLoading: true},
		"exhausted":  {Generation: 1, Results: results(3)},
	} {
		l := NewLayout(ViewState{Width: 100, Height: 40, Session: s})
		assert.Equal(t, -1, l.LoadMoreY, name)
		assert.False(t, ShowLoadMore(ViewState{Session: s}), name)
	}
}

func TestRenderLoadMoreMatchesLayout(t *testing.T) {
	state := ViewState{Width: 100, Height: 40, Session: loaded(7, 30, true)}
	lines := strings.Split(ansi.Strip(NewRenderer().Render(state)), "\n")
	l := NewLayout(state)
	require.Greater(t, len(lines), l.LoadMoreY)
	assert.Contains(t, lines[l.LoadMoreY], "Load more")
	assert.Contains(t, lines[l.Top+1], "#1")
}

func TestRenderHidesLoadMore(t *testing.T) {
	out := ansi.Strip(NewRenderer().Render(ViewState{Width: 100, Height: 40, Session: loaded(5, 5, false)}))
	assert.NotContains(t, out, "Load more")
	assert.Contains(t, out, "end of results")
}

func TestRenderEmptyStates(t *testing.T) {
	r := NewRenderer()

	out := ansi.Strip(r.Render(ViewState{Width: 80, Height: 24}))
	assert.Contains(t, out, "Press / to search")

	out = ansi.Strip(r.Render(ViewState{Width: 80, Height: 24, Session: session.Session{Query: "zzz", Generation: 1}}))
	assert.Contains(t, out, `No images found for "zzz"`)

	out = ansi.Strip(r.Render(ViewState{Width: 80, Height: 24, Session: session.Session{Query: "cats", Generation: 1, IsLoading: true, Page: 1}}))
	assert.Contains(t, out, `Searching "cats"`)
}

func TestRenderError(t *testing.T) {
	s := loaded(3, 30, true)
	s.Err = fmt.Errorf("searching %q page %d: %w", "cats", 2, errors.New("connection refused"))
	out := ansi.Strip(NewRenderer().Render(ViewState{Width: 100, Height: 30, Session: s}))
	assert.Contains(t, out, "Search failed (unknown): connection refused")
}

func TestRenderModal(t *testing.T) {
	s := loaded(3, 30, true)
	s.Selected = s.Results[1].FullImageURL
	state := ViewState{Width: 100, Height: 40, Session: s, PreviewContent: "IMAGE"}

	r := NewRenderer()
	out := ansi.Strip(r.Render(state))
	assert.Contains(t, out, "IMAGE")
	assert.Contains(t, out, "tag2, cat")
	assert.Contains(t, out, "by alice · 640×427")
	assert.NotContains(t, out, "Press ? for help")

	rect := r.ModalRect(state)
	assert.True(t, rect.Contains(rect.X+1, rect.Y+1))
	assert.False(t, rect.Contains(0, 0))
	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[rect.Y+1], "IMAGE")
}

func TestRenderModalPreviewError(t *testing.T) {
	s := loaded(1, 1, false)
	s.Selected = s.Results[0].FullImageURL
	out := ansi.Strip(NewRenderer().Render(ViewState{Width: 80, Height: 30, Session: s, PreviewErr: errors.New("unexpected status 404")}))
	assert.Contains(t, out, "Preview unavailable: unexpected status 404")
}

func TestOverlayKeepsBaseAroundBox(t *testing.T) {
	pr := NewPopupRenderer(NewStyles())
	base := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"
	out := ansi.Strip(pr.Overlay(base, "XX\nYY", Rect{X: 3, Y: 1, W: 2, H: 2}, 3))
	assert.Equal(t, "aaaaaaaaaa\nbbbXXbbbbb\ncccYYccccc", out)
}

func TestHelpScrolls(t *testing.T) {
	r := NewRenderer()
	full := r.renderHelpContent(100, 0)
	assert.Contains(t, ansi.Strip(full), "Load more results")

	short := ansi.Strip(r.renderHelpContent(10, 3))
	assert.Contains(t, short, "(more above)")
	assert.Contains(t, short, "(more below)")
}
