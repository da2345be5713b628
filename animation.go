package trellis

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 values on a Widget simultaneously.
// Create one via the convenience constructors (TweenAlpha, TweenScale,
// TweenColor, TweenOffset) and call Update(dt) each frame. Values are
// applied through the widget's setters so dirty tracking stays correct.
// If the target widget is destroyed, the group stops immediately.
//
// There is no global animation manager; hosts call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	target *Widget
	apply  func(w *Widget, vals [4]float64)
	Done   bool
}

// Update advances all tweens by dt seconds and applies the values to the
// target widget. If the target has been destroyed, Done is set to true and
// no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDestroyed() {
		g.Done = true
		return
	}

	var vals [4]float64
	allDone := true
	for i := 0; i < g.count; i++ {
		v, finished := g.tweens[i].Update(dt)
		vals[i] = float64(v)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil && g.apply != nil {
		g.apply(g.target, vals)
	}
}

// TweenAlpha creates a TweenGroup that animates the widget's alpha to the
// target value over the specified duration using the easing function.
func TweenAlpha(w *Widget, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: w}
	g.tweens[0] = gween.New(float32(w.Alpha()), float32(to), duration, fn)
	g.apply = func(w *Widget, vals [4]float64) {
		w.SetAlpha(vals[0])
	}
	return g
}

// TweenScale creates a TweenGroup that animates the widget's scale to the
// target value over the specified duration using the easing function.
func TweenScale(w *Widget, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: w}
	g.tweens[0] = gween.New(float32(w.Scale()), float32(to), duration, fn)
	g.apply = func(w *Widget, vals [4]float64) {
		w.SetScale(vals[0])
	}
	return g
}

// TweenColor creates a TweenGroup that animates all four components of the
// widget's color to the target color over the specified duration.
func TweenColor(w *Widget, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4, target: w}
	g.tweens[0] = gween.New(float32(w.Color.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(w.Color.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(w.Color.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(w.Color.A), float32(to.A), duration, fn)
	g.apply = func(w *Widget, vals [4]float64) {
		w.SetColor(Color{R: vals[0], G: vals[1], B: vals[2], A: vals[3]})
	}
	return g
}

// TweenOffset creates a TweenGroup that slides all of the widget's anchor
// offsets by (dx, dy) over the specified duration. Deltas are in authored
// offset space, so positive dy moves the widget up on screen.
func TweenOffset(w *Widget, dx, dy float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	var prevX, prevY float64
	g := &TweenGroup{count: 2, target: w}
	g.tweens[0] = gween.New(0, float32(dx), duration, fn)
	g.tweens[1] = gween.New(0, float32(dy), duration, fn)
	g.apply = func(w *Widget, vals [4]float64) {
		w.AdjustPointsOffset(vals[0]-prevX, vals[1]-prevY)
		prevX, prevY = vals[0], vals[1]
	}
	return g
}
