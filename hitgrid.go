package trellis

// Hit testing. After each build the engine scatters the hit rect of every
// mouse-enabled, effectively visible widget into a uniform screen-space
// grid, appended in draw order. A point query touches one cell and scans
// it backwards, so the widget painted last wins without walking the tree.

type hitGrid struct {
	cellSize   float64
	cols, rows int
	cells      [][]WidgetID
	rects      map[WidgetID]Rect
}

func newHitGrid() *hitGrid {
	return &hitGrid{rects: make(map[WidgetID]Rect)}
}

// reset sizes the grid for a screen of w by h pixels, keeping cell slice
// capacity across frames.
func (g *hitGrid) reset(w, h, cellSize float64) {
	if cellSize <= 0 {
		cellSize = 64
	}
	g.cellSize = cellSize
	g.cols = int(w/cellSize) + 1
	g.rows = int(h/cellSize) + 1
	if g.cols < 1 {
		g.cols = 1
	}
	if g.rows < 1 {
		g.rows = 1
	}

	need := g.cols * g.rows
	for len(g.cells) < need {
		g.cells = append(g.cells, nil)
	}
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	clear(g.rects)
}

// insert registers a hit rect in every cell it covers.
func (g *hitGrid) insert(id WidgetID, r Rect) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	g.rects[id] = r

	c0 := clampInt(int(r.X/g.cellSize), 0, g.cols-1)
	c1 := clampInt(int(r.Right()/g.cellSize), 0, g.cols-1)
	r0 := clampInt(int(r.Y/g.cellSize), 0, g.rows-1)
	r1 := clampInt(int(r.Bottom()/g.cellSize), 0, g.rows-1)

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			i := row*g.cols + col
			g.cells[i] = append(g.cells[i], id)
		}
	}
}

// topmostAt returns the last-drawn widget whose hit rect contains the
// point, or zero. Points outside the grid clamp to the border cell, where
// the rect test still decides.
func (g *hitGrid) topmostAt(x, y float64) WidgetID {
	if g.cols == 0 || g.rows == 0 {
		return 0
	}
	col := clampInt(int(x/g.cellSize), 0, g.cols-1)
	row := clampInt(int(y/g.cellSize), 0, g.rows-1)

	cell := g.cells[row*g.cols+col]
	for i := len(cell) - 1; i >= 0; i-- {
		id := cell[i]
		if r, ok := g.rects[id]; ok && r.Contains(x, y) {
			return id
		}
	}
	return 0
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// --- Engine queries ---

// rebuildHitGrid reindexes hit rects from the current sorted order.
// Widgets excluded by name in the config never enter the grid.
func (e *Engine) rebuildHitGrid() {
	ui := e.cfg.UIScale
	e.grid.reset(e.cfg.Width*ui, e.cfg.Height*ui, e.cfg.HitCellSize)

	for i := range e.sorted {
		w := e.Widget(e.sorted[i].id)
		if w == nil || !w.mouseEnabled {
			continue
		}
		if e.effectiveAlpha(w) <= 0 {
			continue
		}
		if _, off := e.hitExcluded[w.name]; off {
			continue
		}
		r := e.screenRect(e.resolveRect(w))
		l := w.insetLeft * ui
		t := w.insetTop * ui
		hr := Rect{
			X:      r.X + l,
			Y:      r.Y + t,
			Width:  r.Width - l - w.insetRight*ui,
			Height: r.Height - t - w.insetBottom*ui,
		}
		e.grid.insert(w.id, hr)
	}
}

// TopmostAt returns the topmost mouse-enabled widget under the screen
// point, or nil. Valid for the state as of the last BuildFrame.
func (e *Engine) TopmostAt(x, y float64) *Widget {
	return e.Widget(e.grid.topmostAt(x, y))
}

// WidgetAt returns the most specific widget under the screen point: the
// topmost hit, refined into its deepest hittable descendant. Overlapping
// siblings resolve by the configured stacking policy, so the child painted
// last wins.
func (e *Engine) WidgetAt(x, y float64) *Widget {
	w := e.TopmostAt(x, y)
	for w != nil {
		deeper := e.hitChildAt(w, x, y)
		if deeper == nil {
			break
		}
		w = deeper
	}
	return w
}

// hitChildAt picks the topmost hittable child of w containing the point.
func (e *Engine) hitChildAt(w *Widget, x, y float64) *Widget {
	var best *Widget
	for _, cid := range w.children {
		c := e.Widget(cid)
		if c == nil {
			continue
		}
		r, ok := e.grid.rects[c.id]
		if !ok || !r.Contains(x, y) {
			continue
		}
		if best == nil || e.idLess(best.id, c.id) {
			best = c
		}
	}
	return best
}
