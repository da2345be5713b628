package trellis

// Nine-slice backdrops. A frame border is authored as up to nine pieces:
// four corners drawn at native size, four edges tiled along their run, and
// an optional center that is either a stretched texture or a flat color.
// The color variant can extend past the inner rect by an overlap margin so
// edge artwork with transparent fringes still sits on solid fill.

// SlicePiece is one piece of a nine-slice backdrop: a texture subrect and
// its authored pixel size. A piece with no texture or a non-positive size
// is skipped.
type SlicePiece struct {
	Texture string
	UV      Rect
	Width   float64
	Height  float64
}

func (p SlicePiece) empty() bool {
	return p.Texture == "" || p.Width <= 0 || p.Height <= 0
}

// NineSlice describes a sliced backdrop. CenterColor, when set, replaces
// the center texture with a solid quad grown by CenterOverlap on each side;
// otherwise the center piece is stretched across the inner rect only when
// StretchCenter is set.
type NineSlice struct {
	TopLeft, Top, TopRight          SlicePiece
	Left, Center, Right             SlicePiece
	BottomLeft, Bottom, BottomRight SlicePiece

	StretchCenter bool
	CenterColor   *Color
	CenterOverlap float64
}

func pieceDims(p SlicePiece, pxScale float64) (w, h float64) {
	if p.empty() {
		return 0, 0
	}
	return p.Width * pxScale, p.Height * pxScale
}

// emitNineSlice pushes a nine-slice backdrop into the batch. dst is the
// frame rect in screen pixels; pxScale converts authored piece sizes to
// screen pixels. The center goes first so the border pieces paint over it.
func (e *Engine) emitNineSlice(dst Rect, ns *NineSlice, pxScale float64, tint, centerTint rgba, blend BlendMode) {
	right := dst.X + dst.Width
	bottom := dst.Y + dst.Height

	tlW, tlH := pieceDims(ns.TopLeft, pxScale)
	trW, trH := pieceDims(ns.TopRight, pxScale)
	blW, blH := pieceDims(ns.BottomLeft, pxScale)
	brW, brH := pieceDims(ns.BottomRight, pxScale)

	x0 := dst.X + tlW
	x1 := right - trW
	y0 := dst.Y + tlH
	y1 := bottom - blH

	if ns.CenterColor != nil {
		o := ns.CenterOverlap * pxScale
		cx0, cy0 := x0-o, y0-o
		cx1, cy1 := x1+o, y1+o
		if cx1 > cx0 && cy1 > cy0 {
			e.batch.pushSolid(Rect{X: cx0, Y: cy0, Width: cx1 - cx0, Height: cy1 - cy0}, centerTint, blend)
		}
	} else if ns.StretchCenter && !ns.Center.empty() && x1 > x0 && y1 > y0 {
		v := e.batch.pushRect(Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, ns.Center.UV, tint, TexPending, blend)
		e.stampTexture(ns.Center.Texture, v)
	}

	e.emitSlicePiece(ns.TopLeft, Rect{X: dst.X, Y: dst.Y, Width: tlW, Height: tlH}, tint, blend)
	e.emitSlicePiece(ns.TopRight, Rect{X: right - trW, Y: dst.Y, Width: trW, Height: trH}, tint, blend)
	e.emitSlicePiece(ns.BottomLeft, Rect{X: dst.X, Y: bottom - blH, Width: blW, Height: blH}, tint, blend)
	e.emitSlicePiece(ns.BottomRight, Rect{X: right - brW, Y: bottom - brH, Width: brW, Height: brH}, tint, blend)

	if !ns.Top.empty() {
		span := x1 - x0
		if span > 0 {
			h := ns.Top.Height * pxScale
			mark := len(e.batch.Verts)
			emitTiledQuads(&e.batch,
				Rect{X: x0, Y: dst.Y, Width: span, Height: h},
				ns.Top.UV, ns.Top.Width*pxScale, h, tint, blend)
			e.stampRange(ns.Top.Texture, mark)
		}
	}
	if !ns.Bottom.empty() {
		span := (right - brW) - (dst.X + blW)
		if span > 0 {
			h := ns.Bottom.Height * pxScale
			mark := len(e.batch.Verts)
			emitTiledQuads(&e.batch,
				Rect{X: dst.X + blW, Y: bottom - h, Width: span, Height: h},
				ns.Bottom.UV, ns.Bottom.Width*pxScale, h, tint, blend)
			e.stampRange(ns.Bottom.Texture, mark)
		}
	}
	if !ns.Left.empty() {
		span := y1 - y0
		if span > 0 {
			w := ns.Left.Width * pxScale
			mark := len(e.batch.Verts)
			emitTiledQuads(&e.batch,
				Rect{X: dst.X, Y: y0, Width: w, Height: span},
				ns.Left.UV, w, ns.Left.Height*pxScale, tint, blend)
			e.stampRange(ns.Left.Texture, mark)
		}
	}
	if !ns.Right.empty() {
		span := (bottom - brH) - (dst.Y + trH)
		if span > 0 {
			w := ns.Right.Width * pxScale
			mark := len(e.batch.Verts)
			emitTiledQuads(&e.batch,
				Rect{X: right - w, Y: dst.Y + trH, Width: w, Height: span},
				ns.Right.UV, w, ns.Right.Height*pxScale, tint, blend)
			e.stampRange(ns.Right.Texture, mark)
		}
	}
}

func (e *Engine) emitSlicePiece(p SlicePiece, dst Rect, tint rgba, blend BlendMode) {
	if p.empty() || dst.Width <= 0 || dst.Height <= 0 {
		return
	}
	v := e.batch.pushRect(dst, p.UV, tint, TexPending, blend)
	e.stampTexture(p.Texture, v)
}
