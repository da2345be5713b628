package trellis

// Quad batch. A build pass flattens the widget tree into one Vertex slice,
// four vertices per quad in TL, TR, BR, BL order, plus the shared index
// pattern 0-1-2 / 0-2-3. Vertex colors are premultiplied, positions are
// final screen pixels, and UVs are atlas coordinates once a texture has an
// atlas entry. Quads pushed before their texture (or mask) is placed carry
// source-fraction UVs and a pending sentinel; patch records remap them in
// place when the atlas assigns a slot.

// Vertex is one corner of a batched quad. Tex selects the atlas tier to
// sample, or a sentinel for solid and pending quads. MaskTex, MaskU, and
// MaskV carry the optional second sampler.
type Vertex struct {
	X, Y       float32
	U, V       float32
	R, G, B, A float32

	Tex     int16
	Blend   BlendMode
	MaskTex int16

	MaskU, MaskV float32
}

// QuadBatch is the output of a build pass. Verts and Indices are ready for
// a triangle renderer; consecutive quads sharing a texture tier, blend
// mode, and mask tier can be drawn in one call.
type QuadBatch struct {
	Verts   []Vertex
	Indices []uint32

	texPatches  []patchRef
	maskPatches []patchRef
}

// patchRef points at the first vertex of a quad waiting on an atlas entry.
type patchRef struct {
	texture string
	vert    int
}

// Reset empties the batch for the next build, keeping capacity.
func (b *QuadBatch) Reset() {
	b.Verts = b.Verts[:0]
	b.Indices = b.Indices[:0]
	b.texPatches = b.texPatches[:0]
	b.maskPatches = b.maskPatches[:0]
}

// QuadCount reports how many quads the batch holds.
func (b *QuadBatch) QuadCount() int { return len(b.Verts) / 4 }

// rgba is a premultiplied vertex color.
type rgba struct {
	r, g, b, a float32
}

// premultiply folds an effective alpha into a widget color and premultiplies
// the channels for the renderer's blend modes.
func premultiply(c Color, alpha float64) rgba {
	a := c.A * alpha
	return rgba{
		r: float32(c.R * a),
		g: float32(c.G * a),
		b: float32(c.B * a),
		a: float32(a),
	}
}

// pushQuad appends one quad with per-corner UVs in TL, TR, BR, BL order and
// returns the index of its first vertex.
func (b *QuadBatch) pushQuad(dst Rect, uv [4]Point, tint rgba, tex int16, blend BlendMode) int {
	start := len(b.Verts)
	x0 := float32(dst.X)
	y0 := float32(dst.Y)
	x1 := float32(dst.X + dst.Width)
	y1 := float32(dst.Y + dst.Height)

	corner := func(x, y float32, p Point) Vertex {
		return Vertex{
			X: x, Y: y,
			U: float32(p.X), V: float32(p.Y),
			R: tint.r, G: tint.g, B: tint.b, A: tint.a,
			Tex:     tex,
			Blend:   blend,
			MaskTex: MaskNone,
		}
	}
	b.Verts = append(b.Verts,
		corner(x0, y0, uv[0]),
		corner(x1, y0, uv[1]),
		corner(x1, y1, uv[2]),
		corner(x0, y1, uv[3]),
	)

	base := uint32(start)
	b.Indices = append(b.Indices, base, base+1, base+2, base, base+2, base+3)
	return start
}

// pushRect appends a quad sampling an axis-aligned UV subrect.
func (b *QuadBatch) pushRect(dst, uv Rect, tint rgba, tex int16, blend BlendMode) int {
	return b.pushQuad(dst, [4]Point{
		{X: uv.X, Y: uv.Y},
		{X: uv.X + uv.Width, Y: uv.Y},
		{X: uv.X + uv.Width, Y: uv.Y + uv.Height},
		{X: uv.X, Y: uv.Y + uv.Height},
	}, tint, tex, blend)
}

// pushSolid appends an untextured quad.
func (b *QuadBatch) pushSolid(dst Rect, tint rgba, blend BlendMode) int {
	return b.pushQuad(dst, [4]Point{}, tint, TexSolid, blend)
}

// requestTexture records that the quad at vert needs its UVs remapped once
// the named texture has an atlas entry.
func (b *QuadBatch) requestTexture(texture string, vert int) {
	b.texPatches = append(b.texPatches, patchRef{texture: texture, vert: vert})
}

// requestMask records that the quad at vert needs its mask UVs remapped once
// the mask texture has an atlas entry.
func (b *QuadBatch) requestMask(texture string, vert int) {
	b.maskPatches = append(b.maskPatches, patchRef{texture: texture, vert: vert})
}

// patchQuadUV remaps a quad's source-fraction UVs into an atlas entry's
// subrect and stamps its tier.
func (b *QuadBatch) patchQuadUV(vert int, entry AtlasEntry) {
	for i := vert; i < vert+4; i++ {
		v := &b.Verts[i]
		v.U = float32(entry.UV.X + float64(v.U)*entry.UV.Width)
		v.V = float32(entry.UV.Y + float64(v.V)*entry.UV.Height)
		v.Tex = entry.Tier
	}
}

// patchQuadMask remaps a quad's mask fractions into the mask's atlas subrect.
func (b *QuadBatch) patchQuadMask(vert int, entry AtlasEntry) {
	for i := vert; i < vert+4; i++ {
		v := &b.Verts[i]
		v.MaskU = float32(entry.UV.X + float64(v.MaskU)*entry.UV.Width)
		v.MaskV = float32(entry.UV.Y + float64(v.MaskV)*entry.UV.Height)
		v.MaskTex = entry.Tier
	}
}

// dropQuadMask clears a pending mask, leaving the quad to draw unmasked.
func (b *QuadBatch) dropQuadMask(vert int) {
	for i := vert; i < vert+4; i++ {
		b.Verts[i].MaskTex = MaskNone
	}
}

// solidFallback turns a quad into an untextured magenta placeholder so a
// missing texture is visible on screen.
func (b *QuadBatch) solidFallback(vert int) {
	for i := vert; i < vert+4; i++ {
		v := &b.Verts[i]
		alpha := v.A
		v.R, v.G, v.B = alpha, 0, alpha
		v.Tex = TexSolid
		v.MaskTex = MaskNone
	}
}
