package trellis

// Draw ordering. Every shown widget maps to a sort item whose composite key
// fixes its paint position: strata, then level, then sibling group, with a
// container always preceding its own regions and regions ordered by draw
// layer, sub-layer, and kind. The final tiebreak is creation id; whether
// newer ids sort above or below older ones is a Config choice.

type sortItem struct {
	id       WidgetID
	strata   Strata
	level    int
	groupID  WidgetID
	region   bool
	layer    DrawLayer
	subLayer int
	kindRank int
}

// itemFor builds the sort item for a widget. Containers key on their own
// strata, level, and id. Regions composite with their parent container:
// they inherit its strata, level, and group id so they sort adjacent to it,
// then order among themselves by layer, sub-layer, and kind. Text draws
// after textures within the same sub-layer.
func (e *Engine) itemFor(w *Widget) sortItem {
	it := sortItem{id: w.id}
	if w.kind.IsRegion() {
		it.region = true
		it.layer = w.layer
		it.subLayer = w.subLayer
		if w.kind == KindText {
			it.kindRank = 1
		}
		if p := e.Widget(w.parent); p != nil {
			it.strata = p.strata
			it.level = p.level
			it.groupID = p.id
			return it
		}
	}
	it.strata = w.strata
	it.level = w.level
	it.groupID = w.id
	return it
}

// idLess orders creation ids by the configured stacking policy. With
// NewestOnTop, higher ids sort later and therefore paint on top.
func (e *Engine) idLess(a, b WidgetID) bool {
	if e.cfg.NewestOnTop {
		return a < b
	}
	return a > b
}

func (e *Engine) itemLess(a, b *sortItem) bool {
	if a.strata != b.strata {
		return a.strata < b.strata
	}
	if a.level != b.level {
		return a.level < b.level
	}
	if a.groupID != b.groupID {
		return e.idLess(a.groupID, b.groupID)
	}
	if a.region != b.region {
		return !a.region
	}
	if a.layer != b.layer {
		return a.layer < b.layer
	}
	if a.subLayer != b.subLayer {
		return a.subLayer < b.subLayer
	}
	if a.kindRank != b.kindRank {
		return a.kindRank < b.kindRank
	}
	return e.idLess(a.id, b.id)
}

// rebuildOrder regenerates the sorted item list from the live tree.
func (e *Engine) rebuildOrder() {
	e.collectItems()
	e.sortItems()
	e.orderDirty = false
}

// collectItems gathers sort items for every effectively shown widget,
// walking roots in creation order and pruning hidden subtrees.
func (e *Engine) collectItems() {
	e.sorted = e.sorted[:0]
	for _, w := range e.widgets {
		if w == nil || w.destroyed || w.parent != 0 {
			continue
		}
		e.collectSubtree(w)
	}
}

func (e *Engine) collectSubtree(w *Widget) {
	if !w.shown {
		return
	}
	e.sorted = append(e.sorted, e.itemFor(w))
	for _, cid := range w.children {
		if c := e.Widget(cid); c != nil {
			e.collectSubtree(c)
		}
	}
}

// sortItems sorts e.sorted with a bottom-up merge over a reused scratch
// buffer. The composite key ends on a unique id, so the order is total and
// deterministic regardless of collection order.
func (e *Engine) sortItems() {
	items := e.sorted
	n := len(items)
	if n < 2 {
		return
	}
	if cap(e.sortBuf) < n {
		e.sortBuf = make([]sortItem, n)
	}
	buf := e.sortBuf[:n]

	src, dst := items, buf
	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			e.mergeRuns(dst, src, lo, mid, hi)
		}
		src, dst = dst, src
	}
	if &src[0] != &items[0] {
		copy(items, src)
	}
	e.sortBuf = buf
}

func (e *Engine) mergeRuns(dst, src []sortItem, lo, mid, hi int) {
	i, j := lo, mid
	for k := lo; k < hi; k++ {
		if i < mid && (j >= hi || !e.itemLess(&src[j], &src[i])) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
	}
}

// --- Raising ---

// raiseWidget lifts a widget above every sibling in the same strata by
// bumping its level past the current maximum and shifting its subtree with
// it. Raising never lowers: a widget already on top stays where it is.
func (e *Engine) raiseWidget(w *Widget) {
	if w == nil || w.destroyed {
		return
	}
	highest := w.level
	found := false
	e.eachSibling(w, func(s *Widget) {
		if s.strata != w.strata {
			return
		}
		if !found || s.level > highest {
			highest = s.level
			found = true
		}
	})
	if !found || highest < w.level {
		return
	}
	e.shiftLevels(w, highest+1-w.level)
	e.markOrderDirty()
}

// eachSibling visits every live widget sharing w's parent, excluding w.
func (e *Engine) eachSibling(w *Widget, fn func(*Widget)) {
	if p := e.Widget(w.parent); p != nil {
		for _, cid := range p.children {
			if c := e.Widget(cid); c != nil && c != w {
				fn(c)
			}
		}
		return
	}
	for _, c := range e.widgets {
		if c == nil || c.destroyed || c.parent != 0 || c == w {
			continue
		}
		fn(c)
	}
}

func (e *Engine) shiftLevels(w *Widget, delta int) {
	w.level += delta
	for _, cid := range w.children {
		if c := e.Widget(cid); c != nil {
			e.shiftLevels(c, delta)
		}
	}
}
