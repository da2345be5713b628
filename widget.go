package trellis

// Widget is one record in the Engine's arena. Every UI element (container
// frame, image region, or text region) is a Widget. Widgets are created
// through the Engine (CreateFrame, CreateTexture, CreateText) and referenced
// by WidgetID; anchors target ids, never pointers, so the reference graph
// stays explicit and cycle-checkable.
//
// Most state is mutated through setter methods, which maintain the Engine's
// dirty sets. The exported paint fields may be written directly for bulk
// setup, followed by a single MarkPaintDirty call.
type Widget struct {
	// --- Identity & hierarchy ---

	id        WidgetID
	name      string
	kind      WidgetKind
	parent    WidgetID
	children  []WidgetID
	eng       *Engine
	destroyed bool

	// --- Layout ---

	anchors       []Anchor
	width, height float64
	scale         float64
	rect          Rect
	rectValid     bool

	// --- Compositing ---

	shown    bool
	alpha    float64
	strata   Strata
	level    int
	layer    DrawLayer
	subLayer int
	toplevel bool

	// --- Paint ---
	// Read during batch builds. Direct writes require MarkPaintDirty.

	// Texture is the texture identifier (atlas key). Empty means no image.
	Texture string
	// Color tints textured output, fills solid regions set via SetColor,
	// and colors text glyphs.
	Color Color
	// TexCoords is the normalized source sub-rectangle, default (0,0,1,1).
	TexCoords Rect
	// RawTexCoords holds per-corner UVs in UL,LL,UR,LR pair order when the
	// host supplied eight explicit values. Values above 1.0 encode tile
	// repeat counts.
	RawTexCoords *[8]float64
	// TileHoriz and TileVert repeat the texture instead of stretching it.
	TileHoriz bool
	TileVert  bool
	// Blend selects the GPU blend configuration for this widget's quads.
	Blend BlendMode
	// NineSlice, when set on a frame, paints a bordered backdrop.
	NineSlice *NineSlice
	// Text is the content of a KindText region.
	Text string
	// TextSize is the text pixel size passed to the shaper.
	TextSize float64

	hasColor bool
	mask     WidgetID

	// --- Input ---

	mouseEnabled bool
	insetLeft    float64
	insetRight   float64
	insetTop     float64
	insetBottom  float64
}

// --- Creation & destruction ---

func (e *Engine) newWidget(name string, kind WidgetKind, parent *Widget) *Widget {
	w := &Widget{
		id:        WidgetID(len(e.widgets)),
		name:      name,
		kind:      kind,
		eng:       e,
		scale:     1,
		shown:     true,
		alpha:     1,
		strata:    StrataMedium,
		Color:     ColorWhite,
		TexCoords: Rect{0, 0, 1, 1},
		TextSize:  defaultTextSize,
	}
	if parent != nil && !parent.destroyed {
		w.parent = parent.id
		w.strata = parent.strata
		w.level = parent.level + 1
		parent.children = append(parent.children, w.id)
	}
	e.widgets = append(e.widgets, w)
	if name != "" {
		e.names[name] = w
	}
	e.markOrderDirty()
	return w
}

// CreateFrame creates a container widget. A nil parent places it at the top
// of the tree, resolving against the canvas rect. Named frames are reachable
// via WidgetByName. New frames inherit the parent's strata and sit one level
// above it.
func (e *Engine) CreateFrame(name string, parent *Widget) *Widget {
	return e.newWidget(name, KindFrame, parent)
}

// CreateTexture creates an image paint region on the given draw layer.
func (e *Engine) CreateTexture(name string, parent *Widget, layer DrawLayer) *Widget {
	w := e.newWidget(name, KindTexture, parent)
	w.layer = layer
	return w
}

// CreateText creates a text paint region on the given draw layer. Its glyphs
// come from the Engine's TextShaper; without a shaper it emits nothing.
func (e *Engine) CreateText(name string, parent *Widget, layer DrawLayer) *Widget {
	w := e.newWidget(name, KindText, parent)
	w.layer = layer
	return w
}

// Destroy removes a widget and its entire subtree from the Engine. Anchors
// held by other widgets that target a destroyed id become dangling and
// resolve against their owner's parent. Destroying an already-destroyed
// widget is a no-op.
func (e *Engine) Destroy(w *Widget) {
	if w == nil || w.destroyed {
		return
	}

	// Depth-first teardown; copy the list since destroy mutates it.
	kids := make([]WidgetID, len(w.children))
	copy(kids, w.children)
	for _, cid := range kids {
		e.Destroy(e.Widget(cid))
	}

	// Widgets anchored to this one must re-resolve against their parents.
	e.invalidateLayout(w.id)
	e.removeDependencyEdges(w)
	delete(e.dependents, w.id)

	if p := e.Widget(w.parent); p != nil {
		p.removeChild(w.id)
	}
	if w.name != "" && e.names[w.name] == w {
		delete(e.names, w.name)
	}
	delete(e.dirtyRects, w.id)

	e.widgets[w.id] = nil
	w.destroyed = true
	w.children = nil
	w.anchors = nil
	e.markOrderDirty()
}

func (w *Widget) removeChild(id WidgetID) {
	for i, cid := range w.children {
		if cid == id {
			copy(w.children[i:], w.children[i+1:])
			w.children = w.children[:len(w.children)-1]
			return
		}
	}
}

// --- Identity accessors ---

// ID returns the widget's arena id.
func (w *Widget) ID() WidgetID { return w.id }

// Name returns the widget's name, or "" if anonymous.
func (w *Widget) Name() string { return w.name }

// Kind returns the widget kind.
func (w *Widget) Kind() WidgetKind { return w.kind }

// IsDestroyed reports whether the widget has been removed from its Engine.
func (w *Widget) IsDestroyed() bool { return w.destroyed }

// ParentID returns the parent's id, or 0 for top-of-tree widgets.
func (w *Widget) ParentID() WidgetID { return w.parent }

// Parent returns the parent widget, or nil.
func (w *Widget) Parent() *Widget { return w.eng.Widget(w.parent) }

// Children returns the child ids in creation order.
// The returned slice must not be modified.
func (w *Widget) Children() []WidgetID { return w.children }

// NumChildren returns the number of children.
func (w *Widget) NumChildren() int { return len(w.children) }

// SetParent moves the widget under a new parent (nil for top-of-tree) and
// places it one level above it. A move that would make the widget its own
// ancestor is rejected as a no-op.
func (w *Widget) SetParent(parent *Widget) {
	debugCheckDestroyed(w, "SetParent")
	newID := WidgetID(0)
	if parent != nil && !parent.destroyed {
		if parent == w || w.eng.isAncestor(w.id, parent.id) {
			w.eng.debugWarnf("SetParent: %q would become its own ancestor", w.name)
			return
		}
		newID = parent.id
	}
	if newID == w.parent {
		return
	}
	if old := w.eng.Widget(w.parent); old != nil {
		old.removeChild(w.id)
	}
	w.parent = newID
	if parent != nil && newID != 0 {
		parent.children = append(parent.children, w.id)
		w.level = parent.level + 1
	}
	w.eng.invalidateLayout(w.id)
	w.eng.markOrderDirty()
}

// isAncestor reports whether ancestor appears on id's parent chain.
func (e *Engine) isAncestor(ancestor, id WidgetID) bool {
	for p := e.Widget(id); p != nil; p = e.Widget(p.parent) {
		if p.id == ancestor {
			return true
		}
	}
	return false
}

// --- Layout state ---

// SetSize sets the explicit width and height, in UI units before scaling.
// Anchors that pin both opposite edges override the explicit size.
func (w *Widget) SetSize(width, height float64) {
	debugCheckDestroyed(w, "SetSize")
	if w.width == width && w.height == height {
		return
	}
	w.width = width
	w.height = height
	w.eng.invalidateLayout(w.id)
}

// SetWidth sets the explicit width only.
func (w *Widget) SetWidth(width float64) { w.SetSize(width, w.height) }

// SetHeight sets the explicit height only.
func (w *Widget) SetHeight(height float64) { w.SetSize(w.width, height) }

// ExplicitSize returns the explicit width and height as set by the host,
// unscaled and independent of anchors. See Size for the resolved dimensions.
func (w *Widget) ExplicitSize() (width, height float64) { return w.width, w.height }

// SetScale sets the widget's scale factor, applied to its explicit size
// during resolution.
func (w *Widget) SetScale(s float64) {
	debugCheckDestroyed(w, "SetScale")
	if w.scale == s {
		return
	}
	w.scale = s
	w.eng.invalidateLayout(w.id)
}

// Scale returns the widget's scale factor.
func (w *Widget) Scale() float64 { return w.scale }

// Rect resolves and returns the widget's absolute rectangle in UI
// coordinates. Results are cached until an anchor, size, scale, or
// dependency change invalidates them.
func (w *Widget) Rect() Rect {
	return w.eng.resolveRect(w)
}

// Size returns the resolved width and height.
func (w *Widget) Size() (width, height float64) {
	r := w.Rect()
	return r.Width, r.Height
}

// --- Visibility ---

// SetShown shows or hides the widget and its subtree.
func (w *Widget) SetShown(shown bool) {
	debugCheckDestroyed(w, "SetShown")
	if w.shown == shown {
		return
	}
	w.shown = shown
	w.eng.markOrderDirty()
	if shown && w.toplevel {
		w.eng.raiseWidget(w)
	}
}

// Show makes the widget visible. Showing a toplevel widget raises it above
// its same-strata siblings.
func (w *Widget) Show() { w.SetShown(true) }

// Hide makes the widget (and, effectively, its subtree) invisible.
func (w *Widget) Hide() { w.SetShown(false) }

// IsShown reports the widget's own visibility flag, ignoring ancestors.
func (w *Widget) IsShown() bool { return w.shown }

// IsVisible reports whether the widget and every ancestor is shown.
func (w *Widget) IsVisible() bool {
	for p := w; p != nil; p = p.eng.Widget(p.parent) {
		if !p.shown {
			return false
		}
	}
	return true
}

// SetAlpha sets the widget's own opacity in [0, 1].
func (w *Widget) SetAlpha(a float64) {
	debugCheckDestroyed(w, "SetAlpha")
	if w.alpha == a {
		return
	}
	w.alpha = a
	w.eng.markPaintDirty()
}

// Alpha returns the widget's own opacity.
func (w *Widget) Alpha() float64 { return w.alpha }

// EffectiveAlpha returns the product of the widget's alpha and every
// ancestor's alpha. Returns 0 when the widget is not effectively visible.
func (w *Widget) EffectiveAlpha() float64 {
	a := 1.0
	for p := w; p != nil; p = p.eng.Widget(p.parent) {
		if !p.shown {
			return 0
		}
		a *= p.alpha
	}
	return a
}

// --- Compositing state ---

// SetStrata moves the widget to another global z-tier.
func (w *Widget) SetStrata(s Strata) {
	debugCheckDestroyed(w, "SetStrata")
	if w.strata == s {
		return
	}
	w.strata = s
	w.eng.markOrderDirty()
}

// Strata returns the widget's strata.
func (w *Widget) Strata() Strata { return w.strata }

// SetLevel sets the z-order among same-strata siblings. Negative levels
// clamp to zero.
func (w *Widget) SetLevel(level int) {
	debugCheckDestroyed(w, "SetLevel")
	if level < 0 {
		level = 0
	}
	if w.level == level {
		return
	}
	w.level = level
	w.eng.markOrderDirty()
}

// Level returns the widget's level.
func (w *Widget) Level() int { return w.level }

// SetDrawLayer sets the paint layer and sub-layer for a region. Sub-layer
// orders regions within the same layer.
func (w *Widget) SetDrawLayer(layer DrawLayer, subLayer int) {
	debugCheckDestroyed(w, "SetDrawLayer")
	if w.layer == layer && w.subLayer == subLayer {
		return
	}
	w.layer = layer
	w.subLayer = subLayer
	w.eng.markOrderDirty()
}

// DrawLayer returns the region's layer and sub-layer.
func (w *Widget) DrawLayer() (DrawLayer, int) { return w.layer, w.subLayer }

// SetToplevel marks the widget to auto-raise above same-strata siblings
// whenever it is shown.
func (w *Widget) SetToplevel(t bool) {
	debugCheckDestroyed(w, "SetToplevel")
	w.toplevel = t
}

// IsToplevel reports whether the widget auto-raises on show.
func (w *Widget) IsToplevel() bool { return w.toplevel }

// Raise lifts the widget one level above the highest same-strata sibling,
// shifting its descendants by the same amount. Raising never lowers.
func (w *Widget) Raise() {
	debugCheckDestroyed(w, "Raise")
	w.eng.raiseWidget(w)
}

// --- Paint state ---

// SetTexture assigns a texture identifier. The image is placed into the
// atlas on the next batch build.
func (w *Widget) SetTexture(texture string) {
	debugCheckDestroyed(w, "SetTexture")
	if w.Texture == texture {
		return
	}
	w.Texture = texture
	w.eng.markPaintDirty()
}

// SetColor sets the widget's color. On an untextured region this paints a
// solid fill; on textured output and text it acts as a tint.
func (w *Widget) SetColor(c Color) {
	debugCheckDestroyed(w, "SetColor")
	w.Color = c
	w.hasColor = true
	w.eng.markPaintDirty()
}

// SetTexCoords sets the normalized source sub-rectangle from edge
// coordinates, in left, right, top, bottom order.
func (w *Widget) SetTexCoords(left, right, top, bottom float64) {
	debugCheckDestroyed(w, "SetTexCoords")
	w.TexCoords = Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
	w.RawTexCoords = nil
	w.eng.markPaintDirty()
}

// SetRawTexCoords sets all four UV corners independently, in UL, LL, UR, LR
// pair order. Values above 1.0 encode tile repeat counts and switch the
// region to repeat tiling, including rotated-UV edges where U maps to the
// vertical screen axis.
func (w *Widget) SetRawTexCoords(ulx, uly, llx, lly, urx, ury, lrx, lry float64) {
	debugCheckDestroyed(w, "SetRawTexCoords")
	w.RawTexCoords = &[8]float64{ulx, uly, llx, lly, urx, ury, lrx, lry}
	w.eng.markPaintDirty()
}

// SetTiling enables horizontal and/or vertical tiling of the texture across
// the region instead of stretching.
func (w *Widget) SetTiling(horiz, vert bool) {
	debugCheckDestroyed(w, "SetTiling")
	w.TileHoriz = horiz
	w.TileVert = vert
	w.eng.markPaintDirty()
}

// SetBlendMode selects alpha or additive compositing for the widget's quads.
func (w *Widget) SetBlendMode(b BlendMode) {
	debugCheckDestroyed(w, "SetBlendMode")
	if w.Blend == b {
		return
	}
	w.Blend = b
	w.eng.markPaintDirty()
}

// SetMask clips the widget's textured quads to the alpha of another texture
// region. The mask's resolved rect defines the sampling area: the widget's
// quads project into it, so only the mask's interior is sampled. Pass nil
// to clear. Non-texture widgets are ignored.
func (w *Widget) SetMask(mask *Widget) {
	debugCheckDestroyed(w, "SetMask")
	if mask == nil {
		if w.mask != 0 {
			w.mask = 0
			w.eng.markPaintDirty()
		}
		return
	}
	if mask.kind != KindTexture || mask.destroyed {
		w.eng.debugWarnf("SetMask: %q is not a texture region", mask.name)
		return
	}
	w.mask = mask.id
	w.eng.markPaintDirty()
}

// Mask returns the id of the mask region, or 0.
func (w *Widget) Mask() WidgetID { return w.mask }

// SetNineSlice assigns a nine-slice kit to a frame. Pass nil to clear.
func (w *Widget) SetNineSlice(ns *NineSlice) {
	debugCheckDestroyed(w, "SetNineSlice")
	w.NineSlice = ns
	w.eng.markPaintDirty()
}

// SetText sets a text region's content.
func (w *Widget) SetText(text string) {
	debugCheckDestroyed(w, "SetText")
	if w.Text == text {
		return
	}
	w.Text = text
	w.eng.markPaintDirty()
}

// SetTextSize sets the pixel size passed to the text shaper.
func (w *Widget) SetTextSize(size float64) {
	debugCheckDestroyed(w, "SetTextSize")
	if w.TextSize == size {
		return
	}
	w.TextSize = size
	w.eng.markPaintDirty()
}

// MarkPaintDirty forces a batch and hit-grid rebuild on the next BuildFrame.
// Call it after writing exported paint fields directly.
func (w *Widget) MarkPaintDirty() { w.eng.markPaintDirty() }

// --- Input state ---

// EnableMouse includes or excludes the widget from hit-testing.
func (w *Widget) EnableMouse(enabled bool) {
	debugCheckDestroyed(w, "EnableMouse")
	if w.mouseEnabled == enabled {
		return
	}
	w.mouseEnabled = enabled
	w.eng.markPaintDirty()
}

// IsMouseEnabled reports whether the widget participates in hit-testing.
func (w *Widget) IsMouseEnabled() bool { return w.mouseEnabled }

// SetHitRectInsets shrinks the widget's hit rectangle inward per edge.
// Dimensions clamp to zero when insets exceed the rect.
func (w *Widget) SetHitRectInsets(left, right, top, bottom float64) {
	debugCheckDestroyed(w, "SetHitRectInsets")
	w.insetLeft = left
	w.insetRight = right
	w.insetTop = top
	w.insetBottom = bottom
	w.eng.markPaintDirty()
}

// HitRectInsets returns the per-edge hit-rect insets.
func (w *Widget) HitRectInsets() (left, right, top, bottom float64) {
	return w.insetLeft, w.insetRight, w.insetTop, w.insetBottom
}

const defaultTextSize = 12
