package trellis

// Anchor resolution. A widget's absolute rectangle is derived entirely from
// its anchors, explicit size, and scale against the rects of its anchor
// targets (or its parent, or the canvas). Results are memoized per widget
// and invalidated along both tree edges and anchor dependency edges, so a
// resolve pass costs no more than the set of widgets actually affected.

// anchorPosition returns the coordinates of a named point on a rectangle:
// corners at the extremities, edges at their midpoints, center at both
// midpoints.
func anchorPosition(p AnchorPoint, r Rect) (x, y float64) {
	switch p {
	case AnchorTopLeft:
		return r.X, r.Y
	case AnchorTop:
		return r.X + r.Width/2, r.Y
	case AnchorTopRight:
		return r.X + r.Width, r.Y
	case AnchorLeft:
		return r.X, r.Y + r.Height/2
	case AnchorCenter:
		return r.X + r.Width/2, r.Y + r.Height/2
	case AnchorRight:
		return r.X + r.Width, r.Y + r.Height/2
	case AnchorBottomLeft:
		return r.X, r.Y + r.Height
	case AnchorBottom:
		return r.X + r.Width/2, r.Y + r.Height
	case AnchorBottomRight:
		return r.X + r.Width, r.Y + r.Height
	}
	return r.X, r.Y
}

// originFromAnchor inverts anchorPosition: given where a widget's own point
// must land and the widget's dimensions, it returns the top-left origin.
func originFromAnchor(p AnchorPoint, anchorX, anchorY, w, h float64) (x, y float64) {
	switch p {
	case AnchorTopLeft:
		return anchorX, anchorY
	case AnchorTop:
		return anchorX - w/2, anchorY
	case AnchorTopRight:
		return anchorX - w, anchorY
	case AnchorLeft:
		return anchorX, anchorY - h/2
	case AnchorCenter:
		return anchorX - w/2, anchorY - h/2
	case AnchorRight:
		return anchorX - w, anchorY - h/2
	case AnchorBottomLeft:
		return anchorX, anchorY - h
	case AnchorBottom:
		return anchorX - w/2, anchorY - h
	case AnchorBottomRight:
		return anchorX - w, anchorY - h
	}
	return anchorX, anchorY
}

// canvasRect is the implicit parent rect for top-of-tree widgets.
func (e *Engine) canvasRect() Rect {
	return Rect{Width: e.cfg.Width, Height: e.cfg.Height}
}

// parentRect resolves the widget's implicit parent rect.
func (e *Engine) parentRect(w *Widget) Rect {
	if p := e.Widget(w.parent); p != nil {
		return e.resolveRect(p)
	}
	return e.canvasRect()
}

// anchorTargetRect resolves the rect an anchor measures against. A dangling
// or destroyed target falls back to the implicit parent.
func (e *Engine) anchorTargetRect(w *Widget, a Anchor) Rect {
	if a.Target != 0 {
		if t := e.Widget(a.Target); t != nil {
			return e.resolveRect(t)
		}
	}
	return e.parentRect(w)
}

// resolveRect returns the widget's absolute rectangle, computing and caching
// it if stale. Safe for any anchor configuration: malformed combinations
// resolve to a degenerate rect rather than failing.
func (e *Engine) resolveRect(w *Widget) Rect {
	if w == nil || w.destroyed {
		return Rect{}
	}
	if w.rectValid {
		return w.rect
	}
	// Mutation-time cycle rejection covers the explicit anchor graph; a
	// parent chain threaded through an anchor target can still re-enter.
	// Degrade to a zero rect instead of recursing forever.
	if _, busy := e.resolving[w.id]; busy {
		e.debugWarnf("layout: re-entrant resolve of %q, degrading to zero rect", w.name)
		return Rect{}
	}
	e.resolving[w.id] = struct{}{}
	r := e.computeRect(w)
	delete(e.resolving, w.id)

	w.rect = r
	w.rectValid = true
	return r
}

func (e *Engine) computeRect(w *Widget) Rect {
	parent := e.parentRect(w)
	scale := w.scale

	if len(w.anchors) == 0 {
		return Rect{
			X:      parent.X,
			Y:      parent.Y,
			Width:  w.width * scale,
			Height: w.height * scale,
		}
	}

	if len(w.anchors) >= 2 {
		return e.computeConstrainedRect(w, parent, scale)
	}

	a := w.anchors[0]
	width := w.width * scale
	height := w.height * scale

	target := e.anchorTargetRect(w, a)
	px, py := anchorPosition(a.TargetPoint, target)
	// Offsets are authored Y-up; screen Y grows downward.
	tx := px + a.OffsetX
	ty := py - a.OffsetY

	x, y := originFromAnchor(a.Point, tx, ty, width, height)
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// coord is an optional coordinate accumulated by the constraint merge.
type coord struct {
	v   float64
	set bool
}

func (c *coord) put(v float64) { c.v, c.set = v, true }

// computeConstrainedRect merges two or more anchors into six independent
// constraints and derives the rect from them. Anchors pinning both opposite
// edges override the explicit size; inverted edge pairs are swapped to keep
// dimensions positive. Origin fallback order is left, right, center, then
// parent-center per axis.
func (e *Engine) computeConstrainedRect(w *Widget, parent Rect, scale float64) Rect {
	var leftX, rightX, topY, bottomY, centerX, centerY coord

	for _, a := range w.anchors {
		target := e.anchorTargetRect(w, a)
		px, py := anchorPosition(a.TargetPoint, target)
		tx := px + a.OffsetX
		ty := py - a.OffsetY

		switch a.Point {
		case AnchorTopLeft:
			leftX.put(tx)
			topY.put(ty)
		case AnchorTopRight:
			rightX.put(tx)
			topY.put(ty)
		case AnchorBottomLeft:
			leftX.put(tx)
			bottomY.put(ty)
		case AnchorBottomRight:
			rightX.put(tx)
			bottomY.put(ty)
		case AnchorTop:
			topY.put(ty)
			centerX.put(tx)
		case AnchorBottom:
			bottomY.put(ty)
			centerX.put(tx)
		case AnchorLeft:
			leftX.put(tx)
			centerY.put(ty)
		case AnchorRight:
			rightX.put(tx)
			centerY.put(ty)
		case AnchorCenter:
			centerX.put(tx)
			centerY.put(ty)
		}
	}

	if leftX.set && rightX.set && leftX.v > rightX.v {
		leftX.v, rightX.v = rightX.v, leftX.v
	}
	if topY.set && bottomY.set && topY.v > bottomY.v {
		topY.v, bottomY.v = bottomY.v, topY.v
	}

	var width float64
	switch {
	case leftX.set && rightX.set:
		width = rightX.v - leftX.v
	case w.width > 0:
		width = w.width * scale
	}

	var height float64
	switch {
	case topY.set && bottomY.set:
		height = bottomY.v - topY.v
	case w.height > 0:
		height = w.height * scale
	}

	var x float64
	switch {
	case leftX.set:
		x = leftX.v
	case rightX.set:
		x = rightX.v - width
	case centerX.set:
		x = centerX.v - width/2
	default:
		x = parent.X + (parent.Width-width)/2
	}

	var y float64
	switch {
	case topY.set:
		y = topY.v
	case bottomY.set:
		y = bottomY.v - height
	case centerY.set:
		y = centerY.v - height/2
	default:
		y = parent.Y + (parent.Height-height)/2
	}

	return Rect{X: x, Y: y, Width: width, Height: height}
}

// --- Invalidation ---

// invalidateLayout marks a widget's cached rect stale, together with its
// subtree and everything reachable through the reverse anchor-dependents
// index. A visited set bounds the walk on diamond-shaped dependency graphs.
func (e *Engine) invalidateLayout(id WidgetID) {
	clear(e.visitSeen)
	e.invalidateWalk(id)
}

func (e *Engine) invalidateWalk(id WidgetID) {
	if _, ok := e.visitSeen[id]; ok {
		return
	}
	e.visitSeen[id] = struct{}{}

	if w := e.Widget(id); w != nil {
		w.rectValid = false
		e.dirtyRects[id] = struct{}{}
		for _, c := range w.children {
			e.invalidateWalk(c)
		}
	}
	for dep := range e.dependents[id] {
		e.invalidateWalk(dep)
	}
}
