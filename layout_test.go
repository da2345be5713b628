package trellis

import "testing"

// --- Anchor point geometry ---

func TestAnchorPositionAllPoints(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 60}
	tests := []struct {
		p    AnchorPoint
		x, y float64
	}{
		{AnchorTopLeft, 10, 20},
		{AnchorTop, 60, 20},
		{AnchorTopRight, 110, 20},
		{AnchorLeft, 10, 50},
		{AnchorCenter, 60, 50},
		{AnchorRight, 110, 50},
		{AnchorBottomLeft, 10, 80},
		{AnchorBottom, 60, 80},
		{AnchorBottomRight, 110, 80},
	}
	for _, tt := range tests {
		x, y := anchorPosition(tt.p, r)
		if x != tt.x || y != tt.y {
			t.Errorf("%s position = (%v, %v), want (%v, %v)", tt.p, x, y, tt.x, tt.y)
		}
	}
}

func TestOriginFromAnchorInverts(t *testing.T) {
	r := Rect{X: 15, Y: 25, Width: 40, Height: 30}
	for p := AnchorCenter; p <= AnchorBottomRight; p++ {
		ax, ay := anchorPosition(p, r)
		x, y := originFromAnchor(p, ax, ay, r.Width, r.Height)
		if !approxEqual(x, r.X, 0.001) || !approxEqual(y, r.Y, 0.001) {
			t.Errorf("%s round trip origin = (%v, %v), want (%v, %v)", p, x, y, r.X, r.Y)
		}
	}
}

// --- Zero anchors ---

func TestZeroAnchorsRootAtCanvasOrigin(t *testing.T) {
	e := newTestEngine()
	w := e.CreateFrame("w", nil)
	w.SetSize(30, 20)
	assertRect(t, w.Rect(), Rect{X: 0, Y: 0, Width: 30, Height: 20})
}

func TestZeroAnchorsChildAtParentOrigin(t *testing.T) {
	e := newTestEngine()
	p := e.CreateFrame("p", nil)
	p.SetSize(200, 100)
	p.SetPoint(AnchorTopLeft, nil, AnchorTopLeft, 100, -50)

	c := e.CreateFrame("c", p)
	c.SetSize(30, 20)

	assertRect(t, c.Rect(), Rect{X: 100, Y: 50, Width: 30, Height: 20})
}

// --- Single anchor ---

func TestSingleAnchorCenterOffset(t *testing.T) {
	e := newTestEngine() // canvas 1280x720
	w := e.CreateFrame("w", nil)
	w.SetSize(100, 50)
	w.SetPoint(AnchorCenter, nil, AnchorCenter, 10, -20)

	// Offsets are Y-up: -20 moves the widget 20 px down on screen.
	assertRect(t, w.Rect(), Rect{X: 600, Y: 355, Width: 100, Height: 50})
}

func TestPositiveOffsetYMovesUpOnScreen(t *testing.T) {
	e := newTestEngine()
	w := e.CreateFrame("w", nil)
	w.SetSize(10, 10)
	w.SetPoint(AnchorTopLeft, nil, AnchorTopLeft, 0, 30)

	if got := w.Rect().Y; !approxEqual(got, -30, 0.001) {
		t.Errorf("Y = %v, want -30 (positive offset moves up)", got)
	}
}

func TestSingleAnchorToSiblingEdge(t *testing.T) {
	e := newTestEngine()
	a := e.CreateFrame("a", nil)
	a.SetSize(100, 50)
	a.SetPoint(AnchorTopLeft, nil, AnchorTopLeft, 0, 0)

	b := e.CreateFrame("b", nil)
	b.SetSize(60, 30)
	b.SetPoint(AnchorLeft, a, AnchorRight, 4, 0)

	assertRect(t, b.Rect(), Rect{X: 104, Y: 10, Width: 60, Height: 30})
}

// --- Multiple anchors ---

func TestTopLeftBottomRightFillsParent(t *testing.T) {
	e := newTestEngine()
	p := e.CreateFrame("p", nil)
	p.SetSize(200, 100)
	p.SetPoint(AnchorTopLeft, nil, AnchorTopLeft, 40, -60)

	c := e.CreateFrame("c", p)
	c.SetSize(10, 10) // overridden by the pinned edges
	c.SetAllPoints(nil)

	assertRect(t, c.Rect(), p.Rect())
}

func TestInvertedEdgePairSwaps(t *testing.T) {
	e := newTestEngine()
	w := e.CreateFrame("w", nil)
	w.SetPoint(AnchorTopLeft, nil, AnchorTopLeft, 300, 0)
	w.SetPoint(AnchorBottomRight, nil, AnchorTopLeft, 100, -50)

	assertRect(t, w.Rect(), Rect{X: 100, Y: 0, Width: 200, Height: 50})
}

func TestExplicitSizeWhenOneEdgePinned(t *testing.T) {
	e := newTestEngine()
	w := e.CreateFrame("w", nil)
	w.SetSize(80, 40)
	w.SetPoint(AnchorTopLeft, nil, AnchorTopLeft, 10, 0)
	w.SetPoint(AnchorBottom, nil, AnchorTop, 0, -100)

	// Width stays explicit; height spans topY to bottomY.
	assertRect(t, w.Rect(), Rect{X: 10, Y: 0, Width: 80, Height: 100})
}

func TestUnpinnedAxisWithoutSizeIsZero(t *testing.T) {
	e := newTestEngine()
	w := e.CreateFrame("w", nil)
	w.SetPoint(AnchorTopLeft, nil, AnchorTopLeft, 0, 0)
	w.SetPoint(AnchorBottomLeft, nil, AnchorBottomLeft, 0, 0)

	r := w.Rect()
	if r.Width != 0 {
		t.Errorf("Width = %v, want 0 (no explicit size, one x edge)", r.Width)
	}
	if !approxEqual(r.Height, 720, 0.001) {
		t.Errorf("Height = %v, want 720", r.Height)
	}
}

// --- Scale ---

func TestScaleMultipliesExplicitSize(t *testing.T) {
	e := newTestEngine()
	w := e.CreateFrame("w", nil)
	w.SetSize(100, 50)
	w.SetScale(2)
	w.SetPoint(AnchorTopLeft, nil, AnchorTopLeft, 0, 0)

	r := w.Rect()
	if r.Width != 200 || r.Height != 100 {
		t.Errorf("size = %vx%v, want 200x100", r.Width, r.Height)
	}
}

func TestScaleIgnoredWhenEdgesPinned(t *testing.T) {
	e := newTestEngine()
	p := e.CreateFrame("p", nil)
	p.SetSize(200, 100)
	p.SetPoint(AnchorTopLeft, nil, AnchorTopLeft, 0, 0)

	c := e.CreateFrame("c", p)
	c.SetScale(2)
	c.SetAllPoints(nil)

	r := c.Rect()
	if r.Width != 200 || r.Height != 100 {
		t.Errorf("size = %vx%v, want parent 200x100", r.Width, r.Height)
	}
}

// --- Dangling anchors ---

func TestDanglingAnchorFallsBackToParent(t *testing.T) {
	e := newTestEngine()
	p := e.CreateFrame("p", nil)
	p.SetSize(200, 100)
	p.SetPoint(AnchorTopLeft, nil, AnchorTopLeft, 40, -60)

	target := e.CreateFrame("target", nil)
	target.SetSize(10, 10)
	target.SetPoint(AnchorTopLeft, nil, AnchorTopLeft, 500, -500)

	c := e.CreateFrame("c", p)
	c.SetSize(20, 20)
	c.SetPoint(AnchorTopLeft, target, AnchorTopLeft, 5, 0)

	e.Destroy(target)

	// The dead target's point is measured against the parent instead.
	assertRect(t, c.Rect(), Rect{X: 45, Y: 60, Width: 20, Height: 20})
}

// --- Invalidation ---

func TestInvalidationThroughAnchorChain(t *testing.T) {
	e := newTestEngine()
	a := e.CreateFrame("a", nil)
	a.SetSize(10, 10)
	a.SetPoint(AnchorTopLeft, nil, AnchorTopLeft, 0, 0)

	b := e.CreateFrame("b", nil)
	b.SetSize(10, 10)
	b.SetPoint(AnchorTopLeft, a, AnchorTopRight, 0, 0)

	c := e.CreateFrame("c", nil)
	c.SetSize(10, 10)
	c.SetPoint(AnchorTopLeft, b, AnchorTopRight, 0, 0)

	if got := c.Rect().X; !approxEqual(got, 20, 0.001) {
		t.Fatalf("c.X = %v, want 20", got)
	}

	a.AdjustPointsOffset(5, 0)

	if got := c.Rect().X; !approxEqual(got, 25, 0.001) {
		t.Errorf("c.X = %v after moving a, want 25", got)
	}
}

func TestResolveMemoized(t *testing.T) {
	e := newTestEngine()
	w := e.CreateFrame("w", nil)
	w.SetSize(10, 10)

	w.Rect()
	if !w.rectValid {
		t.Error("rect should be cached after resolve")
	}
	w.SetSize(20, 20)
	if w.rectValid {
		t.Error("size change should invalidate the cache")
	}
}

func TestDestroyedWidgetResolvesZero(t *testing.T) {
	e := newTestEngine()
	w := e.CreateFrame("w", nil)
	w.SetSize(10, 10)
	e.Destroy(w)
	if w.Rect() != (Rect{}) {
		t.Errorf("destroyed rect = %v, want zero", w.Rect())
	}
}

func TestReentrantResolveDegrades(t *testing.T) {
	e := newTestEngine()
	p := e.CreateFrame("p", nil)
	p.SetSize(20, 20)
	c := e.CreateFrame("c", p)
	c.SetSize(50, 50)

	// The anchor graph is acyclic, but c's implicit parent chain loops
	// back into p's resolve. The inner resolve degrades to a zero rect
	// instead of recursing forever.
	p.SetPoint(AnchorTopLeft, c, AnchorBottomRight, 0, 0)

	assertRect(t, p.Rect(), Rect{X: 50, Y: 50, Width: 20, Height: 20})
}
