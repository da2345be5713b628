package trellis

import "github.com/hajimehoshi/ebiten/v2"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when quads are pushed into a batch.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Point is a 2D position in UI coordinates. The origin is the top-left of the
// canvas, with Y increasing downward.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// WidgetID identifies a widget in an Engine's arena. IDs are assigned
// sequentially starting at 1 and are never reused. The zero value means
// "no widget"; as an anchor target it selects the implicit parent.
type WidgetID uint32

// WidgetKind distinguishes containers from paint regions.
type WidgetKind uint8

const (
	KindFrame   WidgetKind = iota // container; paints only through a nine-slice kit
	KindTexture                   // leaf paint region: image or solid color
	KindText                      // leaf paint region: shaped text glyphs
)

// IsRegion reports whether the kind is a leaf paint region rather than a
// container. Regions sort on their parent's level and draw above it.
func (k WidgetKind) IsRegion() bool { return k != KindFrame }

// Strata is the coarse global z-tier. All widgets in a higher strata render
// above (and hit-test before) everything in a lower one, regardless of level.
type Strata uint8

const (
	StrataWorld Strata = iota
	StrataBackground
	StrataLow
	StrataMedium // default for new frames without a parent
	StrataHigh
	StrataDialog
	StrataFullscreen
	StrataFullscreenDialog
	StrataTooltip
)

var strataNames = [...]string{
	"WORLD", "BACKGROUND", "LOW", "MEDIUM", "HIGH",
	"DIALOG", "FULLSCREEN", "FULLSCREEN_DIALOG", "TOOLTIP",
}

// String returns the platform-style name, e.g. "MEDIUM".
func (s Strata) String() string {
	if int(s) < len(strataNames) {
		return strataNames[s]
	}
	return "MEDIUM"
}

// ParseStrata converts a platform-style name to a Strata.
// Unknown names return (StrataMedium, false).
func ParseStrata(name string) (Strata, bool) {
	for i, n := range strataNames {
		if n == name {
			return Strata(i), true
		}
	}
	return StrataMedium, false
}

// DrawLayer is the paint-order tier for leaf regions within a single parent.
// Regions on a higher layer draw above regions on a lower one.
type DrawLayer uint8

const (
	LayerBackground DrawLayer = iota
	LayerBorder
	LayerArtwork // default for new regions
	LayerOverlay
	LayerHighlight
)

var layerNames = [...]string{
	"BACKGROUND", "BORDER", "ARTWORK", "OVERLAY", "HIGHLIGHT",
}

// String returns the platform-style name, e.g. "ARTWORK".
func (l DrawLayer) String() string {
	if int(l) < len(layerNames) {
		return layerNames[l]
	}
	return "ARTWORK"
}

// ParseDrawLayer converts a platform-style name to a DrawLayer.
// Unknown names return (LayerArtwork, false).
func ParseDrawLayer(name string) (DrawLayer, bool) {
	for i, n := range layerNames {
		if n == name {
			return DrawLayer(i), true
		}
	}
	return LayerArtwork, false
}

// AnchorPoint names one of the nine positions on a rectangle that an anchor
// can bind: the four corners, the four edge midpoints, and the center.
type AnchorPoint uint8

const (
	AnchorCenter AnchorPoint = iota // default
	AnchorTop
	AnchorBottom
	AnchorLeft
	AnchorRight
	AnchorTopLeft
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

var anchorNames = [...]string{
	"CENTER", "TOP", "BOTTOM", "LEFT", "RIGHT",
	"TOPLEFT", "TOPRIGHT", "BOTTOMLEFT", "BOTTOMRIGHT",
}

// String returns the platform-style name, e.g. "TOPLEFT".
func (p AnchorPoint) String() string {
	if int(p) < len(anchorNames) {
		return anchorNames[p]
	}
	return "CENTER"
}

// ParseAnchorPoint converts a platform-style name to an AnchorPoint.
// Unknown names return (AnchorCenter, false).
func ParseAnchorPoint(name string) (AnchorPoint, bool) {
	for i, n := range anchorNames {
		if n == name {
			return AnchorPoint(i), true
		}
	}
	return AnchorCenter, false
}

// BlendMode selects the GPU compositing configuration for a quad. Alpha and
// additive content are submitted through distinct blend states; the batch
// never approximates additive output inside the alpha pipeline.
type BlendMode uint8

const (
	BlendAlpha    BlendMode = iota // source-over (standard alpha blending)
	BlendAdditive                  // additive / lighter
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdditive:
		return ebiten.BlendLighter
	default:
		return ebiten.BlendSourceOver
	}
}

// Texture slot sentinels used in Vertex.Tex and Vertex.MaskTex. Non-negative
// values are atlas tier indices.
const (
	TexSolid    int16 = -1 // untextured quad; color only
	TexPending  int16 = -2 // texture not yet placed in the atlas; patched later
	MaskNone    int16 = -1 // no mask sampling for this vertex
	MaskPending int16 = -2 // mask texture not yet placed; drawn unmasked until patched
)
