package trellis

import "unicode/utf8"

// Text shaping. A text region turns its string into one quad per glyph
// through a TextShaper, so the engine stays ignorant of font formats and
// the renderer sees ordinary textured quads. GridShaper covers the common
// case of a monospaced glyph sheet; hosts with a real font stack implement
// the interface themselves.

// GlyphQuad is one shaped glyph: a destination rect relative to the text
// region's top-left in UI units, and the texture subrect to sample.
type GlyphQuad struct {
	Dst     Rect
	Texture string
	UV      Rect
}

// TextShaper lays out a string at a given size. Shape appends glyph quads
// to dst and returns it; a wrapWidth above zero breaks lines at that
// width. Measure reports the extent Shape would cover without wrapping.
type TextShaper interface {
	Shape(dst []GlyphQuad, text string, size, wrapWidth float64) []GlyphQuad
	Measure(text string, size float64) (w, h float64)
}

// GridShaper shapes text against a uniform glyph sheet: one texture
// holding Cols by Rows cells of equal size, indexed by rune offset from
// First. Runes outside the sheet advance the cursor without emitting a
// quad, so missing glyphs leave a gap instead of shifting the line.
type GridShaper struct {
	Texture    string
	Cols, Rows int
	First      rune

	// Advance is the cursor step per glyph as a multiple of size; zero
	// means one full glyph width. LineHeight is the baseline step as a
	// multiple of size; zero means one.
	Advance    float64
	LineHeight float64
}

func (g *GridShaper) advance() float64 {
	if g.Advance > 0 {
		return g.Advance
	}
	return 1
}

func (g *GridShaper) lineHeight() float64 {
	if g.LineHeight > 0 {
		return g.LineHeight
	}
	return 1
}

// Shape appends one size-square quad per mapped rune, breaking on newlines
// and wrapping per rune once the cursor would pass wrapWidth.
func (g *GridShaper) Shape(dst []GlyphQuad, text string, size, wrapWidth float64) []GlyphQuad {
	if g.Cols <= 0 || g.Rows <= 0 || size <= 0 {
		return dst
	}
	adv := size * g.advance()
	lh := size * g.lineHeight()
	cellW := 1.0 / float64(g.Cols)
	cellH := 1.0 / float64(g.Rows)
	total := g.Cols * g.Rows

	var x, y float64
	for i := 0; i < len(text); {
		r, n := utf8.DecodeRuneInString(text[i:])
		i += n

		if r == '\n' {
			x = 0
			y += lh
			continue
		}
		if wrapWidth > 0 && x > 0 && x+adv > wrapWidth {
			x = 0
			y += lh
		}

		idx := int(r - g.First)
		if idx >= 0 && idx < total {
			dst = append(dst, GlyphQuad{
				Dst:     Rect{X: x, Y: y, Width: size, Height: size},
				Texture: g.Texture,
				UV: Rect{
					X:      float64(idx%g.Cols) * cellW,
					Y:      float64(idx/g.Cols) * cellH,
					Width:  cellW,
					Height: cellH,
				},
			})
		}
		x += adv
	}
	return dst
}

// Measure returns the unwrapped extent of the text.
func (g *GridShaper) Measure(text string, size float64) (w, h float64) {
	if g.Cols <= 0 || g.Rows <= 0 || size <= 0 {
		return 0, 0
	}
	adv := size * g.advance()
	lh := size * g.lineHeight()

	var maxW, cursorX float64
	lines := 1
	for i := 0; i < len(text); {
		r, n := utf8.DecodeRuneInString(text[i:])
		i += n

		if r == '\n' {
			if cursorX > maxW {
				maxW = cursorX
			}
			cursorX = 0
			lines++
			continue
		}
		cursorX += adv
	}
	if cursorX > maxW {
		maxW = cursorX
	}
	return maxW, float64(lines) * lh
}
