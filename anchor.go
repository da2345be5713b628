package trellis

// Anchor binds one named point of a widget to a named point of a target
// widget, plus a pixel offset. Offsets are authored with Y growing upward
// (the emulated platform's convention); resolution flips them into screen
// space. A zero Target selects the widget's implicit parent.
type Anchor struct {
	Point       AnchorPoint
	Target      WidgetID
	TargetPoint AnchorPoint
	OffsetX     float64
	OffsetY     float64
}

// --- Anchor mutation API ---

// SetPoint adds or replaces an anchor. A nil target anchors to the implicit
// parent. An anchor for the same own point replaces the existing one; an
// exact duplicate is a no-op. A target that would make the anchor-reference
// graph cyclic (including self-targeting) is rejected silently, leaving all
// prior anchors intact.
func (w *Widget) SetPoint(point AnchorPoint, target *Widget, targetPoint AnchorPoint, offsetX, offsetY float64) {
	debugCheckDestroyed(w, "SetPoint")
	targetID := WidgetID(0)
	if target != nil && !target.destroyed {
		targetID = target.id
	}
	if w.eng.wouldCreateAnchorCycle(w.id, targetID) {
		w.eng.debugWarnf("SetPoint: anchoring %q to %d would create a cycle", w.name, targetID)
		return
	}

	next := Anchor{
		Point:       point,
		Target:      targetID,
		TargetPoint: targetPoint,
		OffsetX:     offsetX,
		OffsetY:     offsetY,
	}

	for i := range w.anchors {
		if w.anchors[i].Point != point {
			continue
		}
		if w.anchors[i] == next {
			return
		}
		old := w.anchors[i].Target
		w.anchors[i] = next
		if old != targetID {
			w.eng.removeDependencyEdge(old, w)
			w.eng.addDependencyEdge(targetID, w.id)
		}
		w.eng.invalidateLayout(w.id)
		return
	}

	w.anchors = append(w.anchors, next)
	w.eng.addDependencyEdge(targetID, w.id)
	w.eng.invalidateLayout(w.id)
	debugCheckAnchorCount(w)
}

// SetAllPoints pins the widget to the target's full rectangle: TOPLEFT to
// TOPLEFT and BOTTOMRIGHT to BOTTOMRIGHT, both with zero offsets. Existing
// anchors are cleared first. Cycle-creating targets reject the whole call.
func (w *Widget) SetAllPoints(target *Widget) {
	debugCheckDestroyed(w, "SetAllPoints")
	targetID := WidgetID(0)
	if target != nil && !target.destroyed {
		targetID = target.id
	}
	if w.eng.wouldCreateAnchorCycle(w.id, targetID) {
		w.eng.debugWarnf("SetAllPoints: anchoring %q to %d would create a cycle", w.name, targetID)
		return
	}
	w.ClearAllPoints()
	w.anchors = append(w.anchors,
		Anchor{Point: AnchorTopLeft, Target: targetID, TargetPoint: AnchorTopLeft},
		Anchor{Point: AnchorBottomRight, Target: targetID, TargetPoint: AnchorBottomRight},
	)
	w.eng.addDependencyEdge(targetID, w.id)
	w.eng.invalidateLayout(w.id)
}

// ClearAllPoints removes every anchor. The widget then resolves as a
// zero-anchor rect at its parent's origin.
func (w *Widget) ClearAllPoints() {
	debugCheckDestroyed(w, "ClearAllPoints")
	if len(w.anchors) == 0 {
		return
	}
	w.eng.removeDependencyEdges(w)
	w.anchors = w.anchors[:0]
	w.eng.invalidateLayout(w.id)
}

// ClearPoint removes the anchor for one own point, if present.
func (w *Widget) ClearPoint(point AnchorPoint) {
	debugCheckDestroyed(w, "ClearPoint")
	for i := range w.anchors {
		if w.anchors[i].Point != point {
			continue
		}
		target := w.anchors[i].Target
		copy(w.anchors[i:], w.anchors[i+1:])
		w.anchors = w.anchors[:len(w.anchors)-1]
		w.eng.removeDependencyEdge(target, w)
		w.eng.invalidateLayout(w.id)
		return
	}
}

// AdjustPointsOffset shifts every anchor's offset by (dx, dy), in the same
// Y-up convention the offsets are authored in.
func (w *Widget) AdjustPointsOffset(dx, dy float64) {
	debugCheckDestroyed(w, "AdjustPointsOffset")
	if len(w.anchors) == 0 || (dx == 0 && dy == 0) {
		return
	}
	for i := range w.anchors {
		w.anchors[i].OffsetX += dx
		w.anchors[i].OffsetY += dy
	}
	w.eng.invalidateLayout(w.id)
}

// --- Anchor queries ---

// NumPoints returns the number of anchors on the widget.
func (w *Widget) NumPoints() int { return len(w.anchors) }

// Point returns the i-th anchor in insertion order.
func (w *Widget) Point(i int) (Anchor, bool) {
	if i < 0 || i >= len(w.anchors) {
		return Anchor{}, false
	}
	return w.anchors[i], true
}

// PointByName returns the anchor whose own point matches, if any.
func (w *Widget) PointByName(point AnchorPoint) (Anchor, bool) {
	for _, a := range w.anchors {
		if a.Point == point {
			return a, true
		}
	}
	return Anchor{}, false
}

// --- Cycle detection ---

// wouldCreateAnchorCycle reports whether anchoring w to target would make
// the explicit anchor-target graph cyclic. Runs a breadth-first search from
// the proposed target through existing anchor targets looking for w.
// Called before any mutation so rejected calls leave no trace.
func (e *Engine) wouldCreateAnchorCycle(w, target WidgetID) bool {
	if target == 0 {
		return false
	}
	if target == w {
		return true
	}

	queue := e.bfsQueue[:0]
	clear(e.bfsSeen)
	queue = append(queue, target)
	e.bfsSeen[target] = struct{}{}

	for head := 0; head < len(queue); head++ {
		cw := e.Widget(queue[head])
		if cw == nil {
			continue
		}
		for _, a := range cw.anchors {
			if a.Target == 0 {
				continue
			}
			if a.Target == w {
				e.bfsQueue = queue[:0]
				return true
			}
			if _, seen := e.bfsSeen[a.Target]; !seen {
				e.bfsSeen[a.Target] = struct{}{}
				queue = append(queue, a.Target)
			}
		}
	}
	e.bfsQueue = queue[:0]
	return false
}

// --- Reverse dependency index ---
// dependents maps a target id to the set of widgets holding at least one
// anchor against it, so layout invalidation can follow dependency edges
// instead of only tree edges.

func (e *Engine) addDependencyEdge(target WidgetID, owner WidgetID) {
	if target == 0 {
		return
	}
	set := e.dependents[target]
	if set == nil {
		set = make(map[WidgetID]struct{})
		e.dependents[target] = set
	}
	set[owner] = struct{}{}
}

// removeDependencyEdge drops owner from target's dependent set, unless
// another of owner's anchors still references the same target.
func (e *Engine) removeDependencyEdge(target WidgetID, owner *Widget) {
	if target == 0 {
		return
	}
	for _, a := range owner.anchors {
		if a.Target == target {
			return
		}
	}
	if set := e.dependents[target]; set != nil {
		delete(set, owner.id)
		if len(set) == 0 {
			delete(e.dependents, target)
		}
	}
}

// removeDependencyEdges drops every edge owned by w. Used by ClearAllPoints
// and Destroy, which empty the anchor list wholesale.
func (e *Engine) removeDependencyEdges(w *Widget) {
	for _, a := range w.anchors {
		if a.Target == 0 {
			continue
		}
		if set := e.dependents[a.Target]; set != nil {
			delete(set, w.id)
			if len(set) == 0 {
				delete(e.dependents, a.Target)
			}
		}
	}
}
