package trellis

import "testing"

func sortedIDs(e *Engine) []WidgetID {
	e.rebuildOrder()
	ids := make([]WidgetID, len(e.sorted))
	for i, it := range e.sorted {
		ids[i] = it.id
	}
	return ids
}

func assertOrder(t *testing.T, e *Engine, want ...*Widget) {
	t.Helper()
	got := sortedIDs(e)
	if len(got) != len(want) {
		t.Fatalf("sorted %d widgets, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i] != w.ID() {
			t.Fatalf("position %d = %q (id %d), want %q (id %d)",
				i, e.Widget(got[i]).Name(), got[i], w.Name(), w.ID())
		}
	}
}

// --- Strata and level ---

func TestStrataOrdersFirst(t *testing.T) {
	e := newTestEngine()
	high := e.CreateFrame("high", nil)
	high.SetStrata(StrataHigh)
	bg := e.CreateFrame("bg", nil)
	bg.SetStrata(StrataBackground)
	med := e.CreateFrame("med", nil)

	assertOrder(t, e, bg, med, high)
}

func TestLevelOrdersWithinStrata(t *testing.T) {
	e := newTestEngine()
	a := e.CreateFrame("a", nil)
	a.SetLevel(2)
	b := e.CreateFrame("b", nil)

	assertOrder(t, e, b, a)
}

// --- Stacking policy ---

func TestNewestOnTopPaintsLater(t *testing.T) {
	e := newTestEngine()
	a := e.CreateFrame("a", nil)
	b := e.CreateFrame("b", nil)

	assertOrder(t, e, a, b)
}

func TestOldestOnTopPaintsLater(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NewestOnTop = false
	e := NewEngine(cfg)
	a := e.CreateFrame("a", nil)
	b := e.CreateFrame("b", nil)

	assertOrder(t, e, b, a)
}

// --- Regions ---

func TestRegionsFollowTheirContainer(t *testing.T) {
	e := newTestEngine()
	f := e.CreateFrame("f", nil)
	tex := e.CreateTexture("tex", f, LayerArtwork)
	g := e.CreateFrame("g", nil)

	// tex sorts inside f's group, ahead of the later sibling frame.
	assertOrder(t, e, f, tex, g)
}

func TestContainerPrecedesItsRegions(t *testing.T) {
	e := newTestEngine()
	f := e.CreateFrame("f", nil)
	tex := e.CreateTexture("tex", f, LayerBackground)

	assertOrder(t, e, f, tex)
}

func TestRegionDrawLayerOrder(t *testing.T) {
	e := newTestEngine()
	f := e.CreateFrame("f", nil)
	over := e.CreateTexture("over", f, LayerOverlay)
	art := e.CreateTexture("art", f, LayerArtwork)
	bg := e.CreateTexture("bg", f, LayerBackground)

	assertOrder(t, e, f, bg, art, over)
}

func TestRegionSubLayerOrder(t *testing.T) {
	e := newTestEngine()
	f := e.CreateFrame("f", nil)
	hi := e.CreateTexture("hi", f, LayerArtwork)
	hi.SetDrawLayer(LayerArtwork, 1)
	lo := e.CreateTexture("lo", f, LayerArtwork)

	assertOrder(t, e, f, lo, hi)
}

func TestTextDrawsAfterTextureInSameSubLayer(t *testing.T) {
	e := newTestEngine()
	f := e.CreateFrame("f", nil)
	txt := e.CreateText("txt", f, LayerArtwork)
	tex := e.CreateTexture("tex", f, LayerArtwork)

	// The text was created first but still paints above the texture.
	assertOrder(t, e, f, tex, txt)
}

func TestRegionGroupsAreNotInterleaved(t *testing.T) {
	e := newTestEngine()
	f := e.CreateFrame("f", nil)
	ftex := e.CreateTexture("ftex", f, LayerOverlay)
	g := e.CreateFrame("g", nil)
	gtex := e.CreateTexture("gtex", g, LayerBackground)

	assertOrder(t, e, f, ftex, g, gtex)
}

// --- Visibility pruning ---

func TestHiddenWidgetOmitted(t *testing.T) {
	e := newTestEngine()
	a := e.CreateFrame("a", nil)
	b := e.CreateFrame("b", nil)
	b.Hide()

	assertOrder(t, e, a)

	b.Show()
	assertOrder(t, e, a, b)
}

func TestHiddenSubtreePruned(t *testing.T) {
	e := newTestEngine()
	f := e.CreateFrame("f", nil)
	e.CreateTexture("tex", f, LayerArtwork)
	c := e.CreateFrame("c", f)
	e.CreateTexture("ctex", c, LayerArtwork)
	f.Hide()

	if got := len(sortedIDs(e)); got != 0 {
		t.Errorf("sorted %d widgets under a hidden root, want 0", got)
	}
}

// --- Nested frames ---

func TestChildFrameSortsAfterParentGroup(t *testing.T) {
	e := newTestEngine()
	f := e.CreateFrame("f", nil)
	tex := e.CreateTexture("tex", f, LayerOverlay)
	c := e.CreateFrame("c", f)

	// c is level 1 so it clears f's whole group, regions included.
	assertOrder(t, e, f, tex, c)
}

// --- Raise ---

func TestRaiseReordersSiblings(t *testing.T) {
	e := newTestEngine()
	a := e.CreateFrame("a", nil)
	b := e.CreateFrame("b", nil)

	assertOrder(t, e, a, b)

	a.Raise()
	assertOrder(t, e, b, a)
}

func TestRaiseCarriesSubtree(t *testing.T) {
	e := newTestEngine()
	a := e.CreateFrame("a", nil)
	ac := e.CreateFrame("ac", a)
	b := e.CreateFrame("b", nil)

	a.Raise()

	// a jumps above b and its child keeps its relative level.
	assertOrder(t, e, b, a, ac)
}
