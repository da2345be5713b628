// Package trellis is a retained-mode UI layout and compositing engine for
// [Ebitengine].
//
// Trellis provides the anchored widget tree, draw-order resolution, texture
// atlasing, quad batching, masking, and hit testing that a WoW-style
// interface layer needs, without owning the window or the game loop.
//
// Full documentation and examples are available at:
//
// https://phanxgames.github.io/trellis/
//
// # Quick start
//
// Create an [Engine], build a widget tree, and submit the batch each frame
// from your [ebiten.Game]:
//
//	eng := trellis.NewEngine(trellis.DefaultConfig())
//	ren, _ := trellis.NewRenderer(eng.Config())
//
//	frame := eng.CreateFrame("root", nil)
//	frame.SetSize(200, 100)
//	frame.SetPoint(trellis.AnchorCenter, nil, trellis.AnchorCenter, 0, 0)
//
//	bg := eng.CreateTexture("bg", frame, trellis.LayerBackground)
//	bg.SetAllPoints(nil)
//	bg.SetColor(trellis.Color{R: 0.1, G: 0.1, B: 0.2, A: 0.9})
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		batch := g.eng.BuildFrame()
//		g.ren.ProcessUploads(g.eng.DrainUploads())
//		g.ren.Draw(screen, batch)
//	}
//
// # Widgets and anchors
//
// Every element is a [Widget]: a frame (container), a texture region, or a
// text region. Widgets position themselves with anchors rather than absolute
// coordinates: each anchor binds a point on the widget to a point on another
// widget, and a widget with anchors on opposing edges stretches between
// them. Anchor offsets are authored Y-up, matching the platform the layout
// model comes from.
//
//	child.SetPoint(trellis.AnchorTopLeft, parent, trellis.AnchorTopLeft, 8, -8)
//
// # Draw order
//
// Paint order is strata, then frame level, then draw layer. Frames marked
// top-level raise to the top of their strata whenever shown; regions always
// draw with (and just above) their parent frame. The sorted order also
// drives hit testing, so the widget you see on top is the widget the mouse
// hits first.
//
// # Textures
//
// Texture regions name their images; the engine resolves names through an
// [ImageSource], packs pixels into fixed-size atlas tiers, and patches
// already-emitted quads when uploads land. Solid colors, tiled fills,
// nine-slice borders, and alpha masks all flow through the same quad batch.
//
// Tweens for alpha, scale, color, and offset animation are provided via
// [gween].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package trellis
