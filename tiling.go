package trellis

import "math"

// Texture tiling. A tiled region repeats its sampled subrect across its
// rect instead of stretching it, with the final row and column cropped in
// both destination and UV space so partial tiles keep the texel density of
// full ones. Raw four-corner UV coordinates can additionally encode repeat
// counts greater than one; analyzeUVRepeat classifies which axis repeats
// and whether the artwork is stored rotated a quarter turn.

// tileSize picks the edge length of one tile. The widget's explicit size
// wins when meaningful; otherwise the size derives from the UV extent at a
// nominal 128 px texture scale, floored so degenerate coords cannot spin
// the emitter.
func tileSize(explicit, uvExtent float64) float64 {
	if explicit > 1 {
		return explicit
	}
	return math.Max(uvExtent*128, 8)
}

// repeatTileSize picks tile dimensions for raw-UV repeat emission from the
// widget's explicit size. Rotated artwork is square per tile, so a single
// meaningful dimension serves both axes.
func repeatTileSize(w, h float64) (tw, th float64) {
	switch {
	case w > 1 && h > 1:
		return w, h
	case h > 1:
		return h, h
	case w > 1:
		return w, w
	}
	return 32, 32
}

type repeatMode int

const (
	repeatNone repeatMode = iota
	repeatHoriz
	repeatVert
	repeatGrid
)

// uvRepeat is the classification of a raw UV quad with repeat counts.
type uvRepeat struct {
	mode               repeatMode
	uMin, uMax, vStart float64
}

// analyzeUVRepeat inspects raw corner coords in UL, LL, UR, LR order.
// A value above one on a corner marks its edge as repeating. One repeating
// vertical edge with no horizontal repeat means the artwork is stored
// rotated and tiles along X; top or bottom alone tiles along Y; anything
// else tiles as a grid. Coordinates at or below one mean no repeat at all.
func analyzeUVRepeat(raw [8]float64) uvRepeat {
	ulx, uly := raw[0], raw[1]
	llx, lly := raw[2], raw[3]
	urx, ury := raw[4], raw[5]
	lrx, lry := raw[6], raw[7]

	leftRepeats := uly > 1 || lly > 1
	rightRepeats := ury > 1 || lry > 1
	bottomRepeats := lly > 1 || lry > 1
	topRepeats := uly > 1 || ury > 1
	anyXRepeats := ulx > 1 || llx > 1 || urx > 1 || lrx > 1

	r := uvRepeat{
		uMin:   math.Min(math.Min(ulx, llx), math.Min(urx, lrx)),
		uMax:   math.Min(math.Max(math.Max(ulx, llx), math.Max(urx, lrx)), 1),
		vStart: math.Min(math.Min(uly, lly), math.Min(ury, lry)),
	}

	switch {
	case !leftRepeats && !rightRepeats && !topRepeats && !anyXRepeats:
		r.mode = repeatNone
	case (leftRepeats != rightRepeats) && !anyXRepeats:
		r.mode = repeatHoriz
	case (bottomRepeats != topRepeats) && !anyXRepeats:
		r.mode = repeatVert
	default:
		r.mode = repeatGrid
	}
	return r
}

// emitTiledQuads fills dst with axis-aligned tiles sampling uv, cropping
// the trailing partial row and column proportionally. Quads carry pending
// texture slots and source-fraction UVs for later atlas patching.
func emitTiledQuads(b *QuadBatch, dst, uv Rect, tileW, tileH float64, tint rgba, blend BlendMode) {
	if tileW <= 0 {
		tileW = dst.Width
	}
	if tileH <= 0 {
		tileH = dst.Height
	}
	if tileW <= 0 || tileH <= 0 {
		return
	}

	for y := 0.0; y < dst.Height; y += tileH {
		h := math.Min(tileH, dst.Height-y)
		vExt := uv.Height * (h / tileH)
		for x := 0.0; x < dst.Width; x += tileW {
			w := math.Min(tileW, dst.Width-x)
			uExt := uv.Width * (w / tileW)
			b.pushRect(
				Rect{X: dst.X + x, Y: dst.Y + y, Width: w, Height: h},
				Rect{X: uv.X, Y: uv.Y, Width: uExt, Height: vExt},
				tint, TexPending, blend,
			)
		}
	}
}

// emitRepeatQuads expands a classified raw-UV repeat into tiles.
func emitRepeatQuads(b *QuadBatch, dst Rect, rep uvRepeat, tileW, tileH float64, tint rgba, blend BlendMode) {
	switch rep.mode {
	case repeatHoriz:
		emitRotatedRow(b, dst, rep, tileW, tint, blend)
	case repeatVert:
		emitTiledQuads(b, dst,
			Rect{X: rep.uMin, Y: rep.vStart, Width: rep.uMax - rep.uMin, Height: 1 - rep.vStart},
			dst.Width, tileH, tint, blend)
	default:
		emitTiledQuads(b, dst,
			Rect{X: rep.uMin, Y: rep.vStart, Width: rep.uMax - rep.uMin, Height: 1 - rep.vStart},
			tileW, tileH, tint, blend)
	}
}

// emitRotatedRow tiles quarter-turn artwork along X. Screen X advances
// through the texture's V axis, so each tile samples V backwards across
// its width and U down its height; a partial final tile shortens the V
// span by the width it covers.
func emitRotatedRow(b *QuadBatch, dst Rect, rep uvRepeat, tileW float64, tint rgba, blend BlendMode) {
	if tileW <= 0 {
		tileW = dst.Width
	}
	if tileW <= 0 {
		return
	}
	vFull := 1 - rep.vStart

	for x := 0.0; x < dst.Width; x += tileW {
		w := math.Min(tileW, dst.Width-x)
		vExt := vFull * (w / tileW)
		b.pushQuad(
			Rect{X: dst.X + x, Y: dst.Y, Width: w, Height: dst.Height},
			[4]Point{
				{X: rep.uMin, Y: rep.vStart + vExt},
				{X: rep.uMin, Y: rep.vStart},
				{X: rep.uMax, Y: rep.vStart},
				{X: rep.uMax, Y: rep.vStart + vExt},
			},
			tint, TexPending, blend,
		)
	}
}
