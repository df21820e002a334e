// Package cellart renders Braille cells and graphemes as large block art
// using half-block characters.
package cellart

import (
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/f3rmion/braille/internal/braille"
)

const (
	// supersample is the rasterizer resolution per output pixel.
	supersample = 4
	// threshold is the brightness above which a half cell is lit.
	threshold = 96
	// kappa places cubic control points for a quarter circle.
	kappa = 0.5523
)

// Cell renders dots as a cols×rows block. Raised dots are filled discs,
// flat positions are drawn as rings when rings is set.
func Cell(dots braille.DotSet, cols, rows int, rings bool) string {
	if cols < 2 || rows < 3 {
		return ""
	}
	w, h := cols*supersample, rows*2*supersample
	r := vector.NewRasterizer(w, h)

	cw, ch := float32(w)/2, float32(h)/3
	radius := 0.32 * min(cw, ch)
	for d := braille.MinDot; d <= braille.MaxDot; d++ {
		col, row := position(d)
		cx := cw*float32(col) + cw/2
		cy := ch*float32(row) + ch/2
		switch {
		case dots.Has(d):
			circle(r, cx, cy, radius, false)
		case rings:
			circle(r, cx, cy, radius, false)
			circle(r, cx, cy, radius*0.6, true)
		}
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return halfBlocks(downsample(mask, cols, rows*2), cols, rows)
}

// position returns the column (0 or 1) and row (0-2) of a dot.
func position(d int) (col, row int) {
	return (d - 1) / 3, (d - 1) % 3
}

// circle adds a closed circle path. Reversed circles cut holes.
func circle(r *vector.Rasterizer, cx, cy, radius float32, reverse bool) {
	k := radius * kappa
	r.MoveTo(cx+radius, cy)
	if !reverse {
		r.CubeTo(cx+radius, cy+k, cx+k, cy+radius, cx, cy+radius)
		r.CubeTo(cx-k, cy+radius, cx-radius, cy+k, cx-radius, cy)
		r.CubeTo(cx-radius, cy-k, cx-k, cy-radius, cx, cy-radius)
		r.CubeTo(cx+k, cy-radius, cx+radius, cy-k, cx+radius, cy)
	} else {
		r.CubeTo(cx+radius, cy-k, cx+k, cy-radius, cx, cy-radius)
		r.CubeTo(cx-k, cy-radius, cx-radius, cy-k, cx-radius, cy)
		r.CubeTo(cx-radius, cy+k, cx-k, cy+radius, cx, cy+radius)
		r.CubeTo(cx+k, cy+radius, cx+radius, cy+k, cx+radius, cy)
	}
	r.ClosePath()
}

// downsample box-filters src to w×h and returns its brightness, with
// transparent pixels counted as black.
func downsample(src image.Image, w, h int) *image.Gray {
	small := imaging.Resize(src, w, h, imaging.Box)
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := small.NRGBAAt(x, y)
			dst.SetGray(x, y, color.Gray{Y: uint8(int(c.R) * int(c.A) / 255)})
		}
	}
	return dst
}

// halfBlocks turns a cols×(rows*2) image into rows lines of ▀▄█ art.
func halfBlocks(img *image.Gray, cols, rows int) string {
	lit := func(x, y int) bool {
		if x >= img.Bounds().Dx() || y >= img.Bounds().Dy() {
			return false
		}
		return img.GrayAt(x, y).Y > threshold
	}

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top, bottom := lit(col, row*2), lit(col, row*2+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		if row < rows-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// Grid renders dots as three lines of ● (raised) and ○ (flat).
func Grid(dots braille.DotSet) string {
	mark := func(d int) string {
		if dots.Has(d) {
			return "●"
		}
		return "○"
	}
	lines := make([]string, 3)
	for row := 0; row < 3; row++ {
		lines[row] = mark(row+1) + " " + mark(row+4)
	}
	return strings.Join(lines, "\n")
}

var (
	faceOnce sync.Once
	face     font.Face
)

func loadFace() font.Face {
	faceOnce.Do(func() {
		fnt, err := opentype.Parse(gobold.TTF)
		if err != nil {
			return
		}
		face, _ = opentype.NewFace(fnt, &opentype.FaceOptions{Size: 64, DPI: 72})
	})
	return face
}

// Glyph renders text, typically a grapheme, in the Go Bold font.
func Glyph(text string, cols, rows int) string {
	f := loadFace()
	if text == "" || f == nil || cols < 1 || rows < 1 {
		return ""
	}

	bounds, advance := font.BoundString(f, text)
	gw := advance.Ceil()
	gh := (bounds.Max.Y - bounds.Min.Y).Ceil()
	const pad = 4
	w, h := max(gw+pad*2, 64), max(gh+pad*2, 64)

	img := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.Black}, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: f,
		Dot:  fixed.P((w-gw)/2, h-pad-bounds.Max.Y.Ceil()),
	}
	d.DrawString(text)

	return halfBlocks(downsample(img, cols, rows*2), cols, rows)
}

type cacheKey struct {
	text       string
	cols, rows int
}

var glyphCache sync.Map

// CachedGlyph memoizes Glyph.
func CachedGlyph(text string, cols, rows int) string {
	k := cacheKey{text, cols, rows}
	if v, ok := glyphCache.Load(k); ok {
		return v.(string)
	}
	s := Glyph(text, cols, rows)
	glyphCache.Store(k, s)
	return s
}
