package trellis

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
)

// Ebitengine renderer. One GPU texture per atlas tier, all the same size
// so the mask shader can pair any two of them. Drawing walks the batch
// once, coalescing consecutive quads that share a texture tier, blend
// mode, and mask tier into a single DrawTriangles call. Quads still
// waiting on a texture are skipped; quads waiting on a mask draw unmasked.

// maskShaderSrc multiplies the sampled texture by the mask's alpha. Mask
// pixel coordinates arrive per vertex in Custom0/Custom1.
const maskShaderSrc = `//kage:unit pixels

package main

func Fragment(dst vec4, src vec2, color vec4, custom vec4) vec4 {
	return imageSrc0At(src) * color * imageSrc1At(custom.xy).a
}
`

// white placeholder singleton for untextured quads. The 3x3 image is
// sampled at its center texel so filtering never bleeds an edge.
var whiteImage *ebiten.Image

func ensureWhiteImage() *ebiten.Image {
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
	}
	return whiteImage
}

// Renderer draws QuadBatches to an Ebitengine image and owns the atlas
// tier textures the engine's UploadRequests land in.
type Renderer struct {
	tiers      []*ebiten.Image
	white      *ebiten.Image
	maskShader *ebiten.Shader
	texSize    float32

	verts   []ebiten.Vertex
	indices []uint32
}

// NewRenderer allocates tier textures per the config and compiles the
// mask shader. The config must match the engine's.
func NewRenderer(cfg Config) (*Renderer, error) {
	cfg = cfg.withDefaults()
	shader, err := ebiten.NewShader([]byte(maskShaderSrc))
	if err != nil {
		return nil, fmt.Errorf("trellis: compile mask shader: %w", err)
	}
	r := &Renderer{
		maskShader: shader,
		texSize:    float32(cfg.AtlasTexSize),
	}
	for range cfg.AtlasCellSizes {
		r.tiers = append(r.tiers, ebiten.NewImage(cfg.AtlasTexSize, cfg.AtlasTexSize))
	}
	r.white = ensureWhiteImage().SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	return r, nil
}

// Dispose releases the tier textures.
func (r *Renderer) Dispose() {
	for _, t := range r.tiers {
		t.Deallocate()
	}
	r.tiers = nil
}

// ProcessUploads copies engine upload requests into the tier textures,
// downscaling sources that were placed scaled.
func (r *Renderer) ProcessUploads(reqs []UploadRequest) {
	for i := range reqs {
		req := &reqs[i]
		if req.Img == nil || int(req.Tier) < 0 || int(req.Tier) >= len(r.tiers) {
			continue
		}
		w, h := req.Dst.Dx(), req.Dst.Dy()
		if w <= 0 || h <= 0 {
			continue
		}

		rgba := image.NewRGBA(image.Rect(0, 0, w, h))
		sb := req.Img.Bounds()
		if sb.Dx() == w && sb.Dy() == h {
			draw.Draw(rgba, rgba.Bounds(), req.Img, sb.Min, draw.Src)
		} else {
			draw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), req.Img, sb, draw.Src, nil)
		}
		r.tiers[req.Tier].SubImage(req.Dst).(*ebiten.Image).WritePixels(rgba.Pix)
	}
}

// runKey groups quads that can be submitted in a single draw call.
type runKey struct {
	tex   int16
	blend BlendMode
	mask  int16
}

// Draw submits the batch to screen, coalescing same-key runs.
func (r *Renderer) Draw(screen *ebiten.Image, b *QuadBatch) {
	n := b.QuadCount()
	start := -1
	var key runKey

	flush := func(end int) {
		if start >= 0 {
			r.flushRun(screen, b, start, end, key)
			start = -1
		}
	}

	for q := 0; q < n; q++ {
		v := &b.Verts[q*4]
		if v.Tex == TexPending {
			flush(q)
			continue
		}
		k := runKey{tex: v.Tex, blend: v.Blend, mask: v.MaskTex}
		if k.mask == MaskPending || k.tex == TexSolid || int(k.mask) >= len(r.tiers) {
			k.mask = MaskNone
		}
		if start < 0 {
			start, key = q, k
		} else if k != key {
			flush(q)
			start, key = q, k
		}
	}
	flush(n)
}

func (r *Renderer) flushRun(dst *ebiten.Image, b *QuadBatch, q0, q1 int, key runKey) {
	if key.tex >= 0 && int(key.tex) >= len(r.tiers) {
		return
	}
	masked := key.mask >= 0

	r.verts = r.verts[:0]
	r.indices = r.indices[:0]
	for q := q0; q < q1; q++ {
		base := uint32(len(r.verts))
		for i := q * 4; i < q*4+4; i++ {
			v := &b.Verts[i]
			ev := ebiten.Vertex{
				DstX:   v.X,
				DstY:   v.Y,
				ColorR: v.R,
				ColorG: v.G,
				ColorB: v.B,
				ColorA: v.A,
			}
			if key.tex == TexSolid {
				ev.SrcX, ev.SrcY = 1, 1
			} else {
				ev.SrcX = v.U * r.texSize
				ev.SrcY = v.V * r.texSize
			}
			if masked {
				ev.Custom0 = v.MaskU * r.texSize
				ev.Custom1 = v.MaskV * r.texSize
			}
			r.verts = append(r.verts, ev)
		}
		r.indices = append(r.indices, base, base+1, base+2, base, base+2, base+3)
	}

	blend := key.blend.EbitenBlend()
	if masked {
		op := &ebiten.DrawTrianglesShaderOptions{Blend: blend}
		op.Images[0] = r.tiers[key.tex]
		op.Images[1] = r.tiers[key.mask]
		dst.DrawTrianglesShader32(r.verts, r.indices, r.maskShader, op)
		return
	}

	src := r.white
	if key.tex >= 0 {
		src = r.tiers[key.tex]
	}
	op := &ebiten.DrawTrianglesOptions{
		Blend:          blend,
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
	}
	dst.DrawTriangles32(r.verts, r.indices, src, op)
}
