// Package preview turns a downloaded image into terminal cells for the modal.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// upperHalf paints the top pixel as foreground and the bottom pixel as background
const upperHalf = "▀"

// Fit returns the largest cols x rows cell box that keeps the image aspect ratio inside maxCols x maxRows.
// One cell is two pixels tall.
func Fit(imgW, imgH, maxCols, maxRows int) (int, int) {
	if imgW <= 0 || imgH <= 0 || maxCols <= 0 || maxRows <= 0 {
		return 0, 0
	}
	cols := maxCols
	rows := (cols*imgH + imgW) / (2 * imgW) // rounded
	if rows > maxRows {
		rows = maxRows
		cols = (rows*2*imgW + imgH/2) / imgH
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// Render draws img into cols x rows cells using area-averaged samples
func Render(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	b := img.Bounds()
	if b.Empty() {
		return ""
	}

	var out strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := average(img, cellRect(b, x, 2*y, cols, 2*rows))
			bottom := average(img, cellRect(b, x, 2*y+1, cols, 2*rows))
			out.WriteString(lipgloss.NewStyle().
				Foreground(hex(top)).
				Background(hex(bottom)).
				Render(upperHalf))
		}
		if y < rows-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

// cellRect maps grid cell (x, y) of a w x h grid onto the source bounds
func cellRect(b image.Rectangle, x, y, w, h int) image.Rectangle {
	x0 := b.Min.X + x*b.Dx()/w
	x1 := b.Min.X + (x+1)*b.Dx()/w
	y0 := b.Min.Y + y*b.Dy()/h
	y1 := b.Min.Y + (y+1)*b.Dy()/h
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return image.Rect(x0, y0, x1, y1).Intersect(b)
}

// maxSamples bounds the work per cell for very large sources
const maxSamples = 8

func average(img image.Image, r image.Rectangle) color.RGBA {
	if r.Empty() {
		return color.RGBA{}
	}
	stepX := r.Dx()/maxSamples + 1
	stepY := r.Dy()/maxSamples + 1

	var rs, gs, bs, n uint64
	for y := r.Min.Y; y < r.Max.Y; y += stepY {
		for x := r.Min.X; x < r.Max.X; x += stepX {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			rs += uint64(cr >> 8)
			gs += uint64(cg >> 8)
			bs += uint64(cb >> 8)
			n++
		}
	}
	return color.RGBA{R: uint8(rs / n), G: uint8(gs / n), B: uint8(bs / n), A: 0xff}
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
