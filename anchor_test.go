package trellis

import "testing"

// --- SetPoint ---

func TestSetPointAddsAnchor(t *testing.T) {
	e := newTestEngine()
	p := e.CreateFrame("p", nil)
	w := e.CreateFrame("w", p)

	w.SetPoint(AnchorTopLeft, nil, AnchorCenter, 5, -3)

	if w.NumPoints() != 1 {
		t.Fatalf("NumPoints = %d, want 1", w.NumPoints())
	}
	a, ok := w.PointByName(AnchorTopLeft)
	if !ok {
		t.Fatal("PointByName(TOPLEFT) should find the anchor")
	}
	if a.Target != 0 {
		t.Errorf("Target = %d, want 0 (implicit parent)", a.Target)
	}
	if a.TargetPoint != AnchorCenter || a.OffsetX != 5 || a.OffsetY != -3 {
		t.Errorf("anchor = %+v, want CENTER target point with offset (5, -3)", a)
	}
}

func TestSetPointReplacesSameOwnPoint(t *testing.T) {
	e := newTestEngine()
	w := e.CreateFrame("w", nil)
	other := e.CreateFrame("other", nil)

	w.SetPoint(AnchorCenter, nil, AnchorCenter, 0, 0)
	w.SetPoint(AnchorCenter, other, AnchorTopLeft, 10, 20)

	if w.NumPoints() != 1 {
		t.Fatalf("NumPoints = %d, want 1 after replacement", w.NumPoints())
	}
	a, _ := w.PointByName(AnchorCenter)
	if a.Target != other.ID() || a.TargetPoint != AnchorTopLeft {
		t.Errorf("anchor = %+v, want replaced target", a)
	}
}

func TestSetPointDistinctPointsAccumulate(t *testing.T) {
	e := newTestEngine()
	w := e.CreateFrame("w", nil)
	w.SetPoint(AnchorTopLeft, nil, AnchorTopLeft, 0, 0)
	w.SetPoint(AnchorBottomRight, nil, AnchorBottomRight, 0, 0)
	if w.NumPoints() != 2 {
		t.Errorf("NumPoints = %d, want 2", w.NumPoints())
	}
}

func TestPointIndexedAccess(t *testing.T) {
	e := newTestEngine()
	w := e.CreateFrame("w", nil)
	w.SetPoint(AnchorTop, nil, AnchorTop, 0, 0)

	if _, ok := w.Point(0); !ok {
		t.Error("Point(0) should exist")
	}
	if _, ok := w.Point(1); ok {
		t.Error("Point(1) should not exist")
	}
	if _, ok := w.Point(-1); ok {
		t.Error("Point(-1) should not exist")
	}
}

// --- Clearing ---

func TestClearPoint(t *testing.T) {
	e := newTestEngine()
	w := e.CreateFrame("w", nil)
	w.SetPoint(AnchorTopLeft, nil, AnchorTopLeft, 0, 0)
	w.SetPoint(AnchorBottomRight, nil, AnchorBottomRight, 0, 0)

	w.ClearPoint(AnchorTopLeft)

	if w.NumPoints() != 1 {
		t.Fatalf("NumPoints = %d, want 1", w.NumPoints())
	}
	if _, ok := w.PointByName(AnchorTopLeft); ok {
		t.Error("cleared point should be gone")
	}
	if _, ok := w.PointByName(AnchorBottomRight); !ok {
		t.Error("other point should survive")
	}
}

func TestClearAllPoints(t *testing.T) {
	e := newTestEngine()
	w := e.CreateFrame("w", nil)
	w.SetPoint(AnchorTopLeft, nil, AnchorTopLeft, 0, 0)
	w.SetPoint(AnchorCenter, nil, AnchorCenter, 0, 0)

	w.ClearAllPoints()

	if w.NumPoints() != 0 {
		t.Errorf("NumPoints = %d, want 0", w.NumPoints())
	}
}

// --- SetAllPoints ---

func TestSetAllPointsPinsCorners(t *testing.T) {
	e := newTestEngine()
	p := e.CreateFrame("p", nil)
	w := e.CreateFrame("w", p)
	w.SetPoint(AnchorCenter, nil, AnchorCenter, 0, 0)

	w.SetAllPoints(nil)

	if w.NumPoints() != 2 {
		t.Fatalf("NumPoints = %d, want 2", w.NumPoints())
	}
	tl, ok1 := w.PointByName(AnchorTopLeft)
	br, ok2 := w.PointByName(AnchorBottomRight)
	if !ok1 || !ok2 {
		t.Fatal("SetAllPoints should pin TOPLEFT and BOTTOMRIGHT")
	}
	if tl.TargetPoint != AnchorTopLeft || br.TargetPoint != AnchorBottomRight {
		t.Error("anchors should pin matching corners")
	}
	if tl.OffsetX != 0 || tl.OffsetY != 0 || br.OffsetX != 0 || br.OffsetY != 0 {
		t.Error("SetAllPoints offsets should be zero")
	}
}

// --- AdjustPointsOffset ---

func TestAdjustPointsOffsetShiftsAll(t *testing.T) {
	e := newTestEngine()
	w := e.CreateFrame("w", nil)
	w.SetPoint(AnchorTopLeft, nil, AnchorTopLeft, 10, 5)
	w.SetPoint(AnchorBottomRight, nil, AnchorBottomRight, -10, -5)

	w.AdjustPointsOffset(3, -2)

	tl, _ := w.PointByName(AnchorTopLeft)
	br, _ := w.PointByName(AnchorBottomRight)
	if tl.OffsetX != 13 || tl.OffsetY != 3 {
		t.Errorf("TOPLEFT offset = (%v, %v), want (13, 3)", tl.OffsetX, tl.OffsetY)
	}
	if br.OffsetX != -7 || br.OffsetY != -7 {
		t.Errorf("BOTTOMRIGHT offset = (%v, %v), want (-7, -7)", br.OffsetX, br.OffsetY)
	}
}

// --- Cycle rejection ---

func TestAnchorSelfRejected(t *testing.T) {
	e := newTestEngine()
	w := e.CreateFrame("w", nil)
	w.SetPoint(AnchorCenter, w, AnchorCenter, 0, 0)
	if w.NumPoints() != 0 {
		t.Error("self-targeting anchor should be rejected")
	}
}

func TestAnchorCycleRejected(t *testing.T) {
	e := newTestEngine()
	a := e.CreateFrame("a", nil)
	b := e.CreateFrame("b", nil)

	a.SetPoint(AnchorTopLeft, b, AnchorBottomRight, 0, 0)
	b.SetPoint(AnchorTopLeft, a, AnchorBottomRight, 0, 0)

	if a.NumPoints() != 1 {
		t.Errorf("a.NumPoints = %d, want 1", a.NumPoints())
	}
	if b.NumPoints() != 0 {
		t.Error("cycle-closing anchor should be rejected, leaving b untouched")
	}
}

func TestAnchorCycleTransitiveRejected(t *testing.T) {
	e := newTestEngine()
	a := e.CreateFrame("a", nil)
	b := e.CreateFrame("b", nil)
	c := e.CreateFrame("c", nil)

	a.SetPoint(AnchorTopLeft, b, AnchorTopLeft, 0, 0)
	b.SetPoint(AnchorTopLeft, c, AnchorTopLeft, 0, 0)
	c.SetPoint(AnchorTopLeft, a, AnchorTopLeft, 0, 0)

	if c.NumPoints() != 0 {
		t.Error("transitive cycle should be rejected")
	}
}

func TestSetAllPointsCycleRejected(t *testing.T) {
	e := newTestEngine()
	a := e.CreateFrame("a", nil)
	b := e.CreateFrame("b", nil)

	a.SetPoint(AnchorCenter, b, AnchorCenter, 0, 0)
	b.SetPoint(AnchorTop, nil, AnchorTop, 0, 0)
	b.SetAllPoints(a)

	if b.NumPoints() != 1 {
		t.Errorf("b.NumPoints = %d, want 1 (rejected call leaves prior anchors)", b.NumPoints())
	}
	if _, ok := b.PointByName(AnchorTop); !ok {
		t.Error("prior anchor should survive a rejected SetAllPoints")
	}
}

// --- Dependency edges ---

func TestDependentInvalidatedOnTargetResize(t *testing.T) {
	e := newTestEngine()
	a := e.CreateFrame("a", nil)
	a.SetSize(100, 50)
	a.SetPoint(AnchorTopLeft, nil, AnchorTopLeft, 0, 0)

	b := e.CreateFrame("b", nil)
	b.SetSize(20, 20)
	b.SetPoint(AnchorTopLeft, a, AnchorTopRight, 0, 0)

	if got := b.Rect().X; !approxEqual(got, 100, 0.001) {
		t.Fatalf("b.X = %v, want 100", got)
	}

	a.SetSize(200, 50)

	if got := b.Rect().X; !approxEqual(got, 200, 0.001) {
		t.Errorf("b.X = %v after a resized, want 200", got)
	}
}

func TestClearAllPointsDropsDependency(t *testing.T) {
	e := newTestEngine()
	a := e.CreateFrame("a", nil)
	b := e.CreateFrame("b", nil)
	b.SetPoint(AnchorTopLeft, a, AnchorTopLeft, 0, 0)

	if len(e.dependents[a.ID()]) != 1 {
		t.Fatalf("dependents = %d, want 1", len(e.dependents[a.ID()]))
	}

	b.ClearAllPoints()

	if len(e.dependents[a.ID()]) != 0 {
		t.Error("clearing anchors should drop the dependency edge")
	}
}

func TestRetargetMovesDependency(t *testing.T) {
	e := newTestEngine()
	a := e.CreateFrame("a", nil)
	b := e.CreateFrame("b", nil)
	w := e.CreateFrame("w", nil)

	w.SetPoint(AnchorCenter, a, AnchorCenter, 0, 0)
	w.SetPoint(AnchorCenter, b, AnchorCenter, 0, 0)

	if len(e.dependents[a.ID()]) != 0 {
		t.Error("old target should lose the dependency edge")
	}
	if len(e.dependents[b.ID()]) != 1 {
		t.Error("new target should gain the dependency edge")
	}
}
