package trellis

// Batch building. Each build walks the sorted item list once and emits
// quads per widget kind: frames contribute only their nine-slice backdrop,
// texture regions a stretched, tiled, or repeated quad set, text regions
// one quad per shaped glyph. Geometry leaves here in screen pixels with
// the UI scale folded in; texture UVs leave as source fractions and are
// stamped with atlas coordinates afterwards.

func (e *Engine) buildBatch() {
	e.batch.Reset()
	clear(e.alphaCache)

	for i := range e.sorted {
		w := e.Widget(e.sorted[i].id)
		if w == nil {
			continue
		}
		alpha := e.effectiveAlpha(w)
		if alpha <= 0 {
			continue
		}
		switch w.kind {
		case KindFrame:
			e.emitFrame(w, alpha)
		case KindTexture:
			e.emitTexture(w, alpha)
		case KindText:
			e.emitText(w, alpha)
		}
	}
}

// effectiveAlpha multiplies the widget's alpha down its parent chain,
// memoized per build. Items in the sorted list are already known shown.
func (e *Engine) effectiveAlpha(w *Widget) float64 {
	if a, ok := e.alphaCache[w.id]; ok {
		return a
	}
	a := w.alpha
	if p := e.Widget(w.parent); p != nil {
		a *= e.effectiveAlpha(p)
	}
	e.alphaCache[w.id] = a
	return a
}

// screenRect converts a resolved rect from UI units to screen pixels.
func (e *Engine) screenRect(r Rect) Rect {
	ui := e.cfg.UIScale
	return Rect{X: r.X * ui, Y: r.Y * ui, Width: r.Width * ui, Height: r.Height * ui}
}

func (e *Engine) emitFrame(w *Widget, alpha float64) {
	if w.NineSlice == nil {
		return
	}
	dst := e.screenRect(e.resolveRect(w))
	if dst.Width <= 0 || dst.Height <= 0 {
		return
	}
	tint := premultiply(w.Color, alpha)
	var centerTint rgba
	if w.NineSlice.CenterColor != nil {
		centerTint = premultiply(*w.NineSlice.CenterColor, alpha)
	}
	e.emitNineSlice(dst, w.NineSlice, w.scale*e.cfg.UIScale, tint, centerTint, w.Blend)
}

func (e *Engine) emitTexture(w *Widget, alpha float64) {
	dst := e.screenRect(e.resolveRect(w))
	if dst.Width <= 0 || dst.Height <= 0 {
		return
	}
	tint := premultiply(w.Color, alpha)

	if w.Texture == "" {
		if w.hasColor {
			e.batch.pushSolid(dst, tint, w.Blend)
		}
		return
	}

	mark := len(e.batch.Verts)
	switch {
	case w.RawTexCoords != nil:
		raw := *w.RawTexCoords
		rep := analyzeUVRepeat(raw)
		if rep.mode == repeatNone {
			// Corner order on the wire is UL, LL, UR, LR.
			e.batch.pushQuad(dst, [4]Point{
				{X: raw[0], Y: raw[1]},
				{X: raw[4], Y: raw[5]},
				{X: raw[6], Y: raw[7]},
				{X: raw[2], Y: raw[3]},
			}, tint, TexPending, w.Blend)
		} else {
			tw, th := repeatTileSize(w.width*w.scale, w.height*w.scale)
			ui := e.cfg.UIScale
			emitRepeatQuads(&e.batch, dst, rep, tw*ui, th*ui, tint, w.Blend)
		}

	case w.TileHoriz || w.TileVert:
		uv := w.TexCoords
		tileW := dst.Width
		tileH := dst.Height
		if w.TileHoriz {
			tileW = tileSize(w.width*w.scale, uv.Width) * e.cfg.UIScale
		}
		if w.TileVert {
			tileH = tileSize(w.height*w.scale, uv.Height) * e.cfg.UIScale
		}
		emitTiledQuads(&e.batch, dst, uv, tileW, tileH, tint, w.Blend)

	default:
		e.batch.pushRect(dst, w.TexCoords, tint, TexPending, w.Blend)
	}

	if w.mask != 0 {
		if m := e.Widget(w.mask); m != nil && m.Texture != "" {
			e.projectMask(mark, e.screenRect(e.resolveRect(m)), m.Texture)
		}
	}
	e.stampRange(w.Texture, mark)
}

func (e *Engine) emitText(w *Widget, alpha float64) {
	if w.Text == "" || e.shaper == nil {
		return
	}
	r := e.resolveRect(w)
	size := w.TextSize * w.scale
	e.glyphBuf = e.shaper.Shape(e.glyphBuf[:0], w.Text, size, r.Width)
	if len(e.glyphBuf) == 0 {
		return
	}

	tint := premultiply(w.Color, alpha)
	ui := e.cfg.UIScale
	for _, g := range e.glyphBuf {
		dst := Rect{
			X:      (r.X + g.Dst.X) * ui,
			Y:      (r.Y + g.Dst.Y) * ui,
			Width:  g.Dst.Width * ui,
			Height: g.Dst.Height * ui,
		}
		v := e.batch.pushRect(dst, g.UV, tint, TexPending, w.Blend)
		e.stampTexture(g.Texture, v)
	}
}

// --- Atlas stamping ---

// stampTexture resolves a quad's texture against the atlas: placed
// textures are patched in immediately, unknown ones are queued for load
// and left pending.
func (e *Engine) stampTexture(texture string, vert int) {
	if entry, ok := e.atlas.Entry(texture); ok {
		e.batch.patchQuadUV(vert, entry)
		return
	}
	e.batch.requestTexture(texture, vert)
	e.queueTextureLoad(texture)
}

// stampRange stamps every textured quad pushed since from with one texture.
func (e *Engine) stampRange(texture string, from int) {
	for v := from; v < len(e.batch.Verts); v += 4 {
		if e.batch.Verts[v].Tex == TexSolid {
			continue
		}
		e.stampTexture(texture, v)
	}
}

func (e *Engine) queueTextureLoad(texture string) {
	if _, ok := e.texWanted[texture]; ok {
		return
	}
	e.texWanted[texture] = struct{}{}
	e.texQueue = append(e.texQueue, texture)
}
