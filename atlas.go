package trellis

import "image"

// Tiered texture atlas. Each tier is one backing texture split into a
// uniform grid of square cells, with a bump cursor handing out cells in
// order. All tiers share the same backing texture dimensions so a renderer
// can pair any two tiers in a single two-sampler shader. Cells are never
// freed: UI texture sets are small and stable, so eviction is not worth
// its bookkeeping.

// AtlasEntry locates a placed texture. Value type, cached per texture name.
type AtlasEntry struct {
	Tier   int16 // tier index; doubles as the Vertex.Tex slot
	Slot   int   // cell index within the tier grid
	UV     Rect  // texture-fraction subrect covering the placed pixels
	Scaled bool  // source exceeded the cell and fills it downscaled
}

// UploadRequest asks the renderer to copy source pixels into a tier
// texture. When Dst is smaller than the source bounds the renderer scales
// the image down to fit.
type UploadRequest struct {
	Texture string
	Tier    int16
	Dst     image.Rectangle
	Img     image.Image
}

type atlasTier struct {
	cell  int // cell edge in pixels
	slots int // total cells in the grid
	next  int // bump cursor
}

// Atlas assigns textures to tier cells and remembers every placement by
// name, so repeated requests for the same texture dedup to one cell.
type Atlas struct {
	texSize int
	tiers   []atlasTier
	entries map[string]AtlasEntry

	warnf func(format string, args ...any)
}

// NewAtlas builds an atlas over texSize-square backing textures, one tier
// per cell size. Cell sizes must be ascending divisors of texSize.
func NewAtlas(texSize int, cellSizes []int) *Atlas {
	a := &Atlas{
		texSize: texSize,
		entries: make(map[string]AtlasEntry),
	}
	for _, c := range cellSizes {
		per := texSize / c
		a.tiers = append(a.tiers, atlasTier{cell: c, slots: per * per})
	}
	return a
}

// TierCount reports how many tier textures back the atlas.
func (a *Atlas) TierCount() int { return len(a.tiers) }

// TexSize reports the edge length of every backing texture.
func (a *Atlas) TexSize() int { return a.texSize }

// Entry returns the placement for a texture already in the atlas.
func (a *Atlas) Entry(id string) (AtlasEntry, bool) {
	e, ok := a.entries[id]
	return e, ok
}

// Place assigns a cell for a w by h source and returns its entry along with
// the pixel rect the source must be uploaded to. The tier chosen is the
// smallest whose cells both fit the source and still have room. Sources
// larger than the largest cell are downscaled to fill one. Placing a name
// twice returns the original entry with an empty upload rect.
func (a *Atlas) Place(id string, w, h int) (AtlasEntry, image.Rectangle) {
	if e, ok := a.entries[id]; ok {
		return e, image.Rectangle{}
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	longest := max(w, h)
	ti := -1
	for i := range a.tiers {
		t := &a.tiers[i]
		if t.cell >= longest && t.next < t.slots {
			ti = i
			break
		}
	}
	scaled := false
	if ti < 0 {
		ti = len(a.tiers) - 1
		t := &a.tiers[ti]
		if t.next >= t.slots {
			// Grid exhausted. Reuse the final cell and accept the overdraw
			// rather than failing the frame.
			if a.warnf != nil {
				a.warnf("atlas: all tiers exhausted, reusing last %dpx cell for %q", t.cell, id)
			}
			t.next = t.slots - 1
		}
		if longest > t.cell {
			scaled = true
		}
	}

	t := &a.tiers[ti]
	slot := t.next
	t.next++

	ox, oy := a.slotOrigin(ti, slot)
	ts := float64(a.texSize)

	var dst image.Rectangle
	var uv Rect
	if scaled {
		dst = image.Rect(ox, oy, ox+t.cell, oy+t.cell)
		uv = Rect{
			X:      float64(ox) / ts,
			Y:      float64(oy) / ts,
			Width:  float64(t.cell) / ts,
			Height: float64(t.cell) / ts,
		}
	} else {
		dst = image.Rect(ox, oy, ox+w, oy+h)
		uv = Rect{
			X:      float64(ox) / ts,
			Y:      float64(oy) / ts,
			Width:  float64(w) / ts,
			Height: float64(h) / ts,
		}
	}

	e := AtlasEntry{Tier: int16(ti), Slot: slot, UV: uv, Scaled: scaled}
	a.entries[id] = e
	return e, dst
}

func (a *Atlas) slotOrigin(ti, slot int) (x, y int) {
	t := a.tiers[ti]
	per := a.texSize / t.cell
	return (slot % per) * t.cell, (slot / per) * t.cell
}
