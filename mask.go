package trellis

// Mask projection. A masked region multiplies its texture by the alpha of
// a second image stretched over the mask widget's rect. Each vertex maps
// to the fraction of the mask rect it sits at, clamped to the edge, so
// geometry protruding past the mask samples the border texel. Quads that
// do not overlap the mask rect at all are cut from the batch instead;
// clamping would smear the mask's edge pixels across them.

// projectMask rewrites every textured quad pushed since mark with mask
// coordinates for maskTexture projected through maskRect (screen pixels),
// dropping quads fully outside the rect. Solid quads pass through
// untouched. Must run before the quads' texture UVs are stamped, since
// dropping compacts the range and moves vertex offsets.
func (e *Engine) projectMask(mark int, maskRect Rect, maskTexture string) {
	b := &e.batch
	entry, have := e.atlas.Entry(maskTexture)
	degenerate := maskRect.Width <= 0 || maskRect.Height <= 0

	out := mark
	for q := mark; q < len(b.Verts); q += 4 {
		if b.Verts[q].Tex == TexSolid {
			if out != q {
				copy(b.Verts[out:out+4], b.Verts[q:q+4])
			}
			out += 4
			continue
		}

		x0 := float64(b.Verts[q].X)
		y0 := float64(b.Verts[q].Y)
		x1 := float64(b.Verts[q+1].X)
		y1 := float64(b.Verts[q+3].Y)
		if degenerate || x1 <= maskRect.X || x0 >= maskRect.X+maskRect.Width ||
			y1 <= maskRect.Y || y0 >= maskRect.Y+maskRect.Height {
			continue
		}

		if out != q {
			copy(b.Verts[out:out+4], b.Verts[q:q+4])
		}
		for i := out; i < out+4; i++ {
			v := &b.Verts[i]
			v.MaskU = float32(clamp01((float64(v.X) - maskRect.X) / maskRect.Width))
			v.MaskV = float32(clamp01((float64(v.Y) - maskRect.Y) / maskRect.Height))
			v.MaskTex = MaskPending
		}
		if have {
			b.patchQuadMask(out, entry)
		} else {
			b.requestMask(maskTexture, out)
			e.queueTextureLoad(maskTexture)
		}
		out += 4
	}

	b.Verts = b.Verts[:out]
	b.Indices = b.Indices[:out/4*6]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
