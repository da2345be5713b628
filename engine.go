package trellis

import (
	"image"
	"time"
)

// Engine owns the widget tree and turns it into frame batches. Widgets
// live in an append-only arena indexed by id; destroyed slots are
// tombstoned and ids never reused, so a stale handle can only miss, not
// alias. All methods are single-goroutine, matching a game loop.
type Engine struct {
	cfg Config

	widgets    []*Widget
	names      map[string]*Widget
	dependents map[WidgetID]map[WidgetID]struct{}

	// Dirty tracking. Layout edits collect in dirtyRects, stacking edits
	// set orderDirty, paint-only edits set paintDirty. All three clean
	// means BuildFrame returns the cached batch untouched.
	dirtyRects map[WidgetID]struct{}
	orderDirty bool
	paintDirty bool

	sorted  []sortItem
	sortBuf []sortItem

	batch      QuadBatch
	alphaCache map[WidgetID]float64
	glyphBuf   []GlyphQuad
	shaper     TextShaper

	atlas     *Atlas
	src       ImageSource
	texQueue  []string
	texWanted map[string]struct{}
	texFailed map[string]struct{}
	uploads   []UploadRequest

	grid        *hitGrid
	hitExcluded map[string]struct{}

	// Reused scratch for graph walks.
	bfsQueue  []WidgetID
	bfsSeen   map[WidgetID]struct{}
	visitSeen map[WidgetID]struct{}
	resolving map[WidgetID]struct{}
}

// ImageSource loads texture pixels by name. Load is called at most once
// per name: a success is placed in the atlas, a failure is remembered and
// the texture's quads fall back to a magenta placeholder.
type ImageSource interface {
	Load(name string) (image.Image, error)
}

// ImageSourceFunc adapts a function to the ImageSource interface.
type ImageSourceFunc func(name string) (image.Image, error)

func (f ImageSourceFunc) Load(name string) (image.Image, error) { return f(name) }

// NewEngine creates an empty engine for the given configuration.
func NewEngine(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	e := &Engine{
		cfg:         cfg,
		widgets:     make([]*Widget, 1),
		names:       make(map[string]*Widget),
		dependents:  make(map[WidgetID]map[WidgetID]struct{}),
		dirtyRects:  make(map[WidgetID]struct{}),
		alphaCache:  make(map[WidgetID]float64),
		texWanted:   make(map[string]struct{}),
		texFailed:   make(map[string]struct{}),
		grid:        newHitGrid(),
		hitExcluded: make(map[string]struct{}),
		bfsSeen:     make(map[WidgetID]struct{}),
		visitSeen:   make(map[WidgetID]struct{}),
		resolving:   make(map[WidgetID]struct{}),
		orderDirty:  true,
	}
	e.atlas = NewAtlas(cfg.AtlasTexSize, cfg.AtlasCellSizes)
	e.atlas.warnf = e.debugWarnf
	for _, n := range cfg.HitTestExcluded {
		e.hitExcluded[n] = struct{}{}
	}
	return e
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Atlas exposes the texture atlas, mainly for renderers and tests.
func (e *Engine) Atlas() *Atlas { return e.atlas }

// Widget returns the live widget with the given id, or nil.
func (e *Engine) Widget(id WidgetID) *Widget {
	if id == 0 || int(id) >= len(e.widgets) {
		return nil
	}
	return e.widgets[id]
}

// WidgetByName returns the widget registered under name, or nil. When
// names collide the most recently created widget wins.
func (e *Engine) WidgetByName(name string) *Widget {
	return e.names[name]
}

// WidgetCount reports the number of live widgets.
func (e *Engine) WidgetCount() int {
	n := 0
	for _, w := range e.widgets {
		if w != nil {
			n++
		}
	}
	return n
}

// SetTextShaper installs the shaper used by text regions. Without one,
// text regions emit nothing.
func (e *Engine) SetTextShaper(s TextShaper) {
	e.shaper = s
	e.markPaintDirty()
}

// SetImageSource installs the texture loader. Textures referenced before a
// source exists stay pending and resolve on the first build after one is
// set.
func (e *Engine) SetImageSource(src ImageSource) {
	e.src = src
	e.markPaintDirty()
}

func (e *Engine) markOrderDirty() { e.orderDirty = true }
func (e *Engine) markPaintDirty() { e.paintDirty = true }

// BuildFrame returns the quad batch for the current tree state. When
// nothing changed since the last call it returns the cached batch without
// touching a vertex; otherwise it reorders as needed, rebuilds the batch,
// resolves texture placements, and reindexes the hit grid. The returned
// batch is owned by the engine and valid until the next call.
func (e *Engine) BuildFrame() *QuadBatch {
	if !e.orderDirty && !e.paintDirty && len(e.dirtyRects) == 0 {
		return &e.batch
	}

	debug := e.cfg.Debug
	var stats debugStats
	var t time.Time
	if debug {
		t = time.Now()
	}

	if e.orderDirty {
		e.rebuildOrder()
	}
	if debug {
		stats.orderTime = time.Since(t)
		t = time.Now()
	}

	e.buildBatch()
	pending := e.resolvePending()
	if debug {
		stats.batchTime = time.Since(t)
		t = time.Now()
	}

	e.rebuildHitGrid()

	clear(e.dirtyRects)
	e.paintDirty = false

	if debug {
		stats.hitTime = time.Since(t)
		stats.widgetCount = len(e.sorted)
		stats.quadCount = e.batch.QuadCount()
		stats.pendingCount = pending
		e.debugLog(stats)
	}
	return &e.batch
}

// resolvePending loads queued textures, places them in the atlas, and
// patches every quad waiting on them. Returns how many quads remain
// pending, which can only be nonzero without an image source.
func (e *Engine) resolvePending() int {
	if e.src != nil {
		for _, name := range e.texQueue {
			if _, ok := e.atlas.Entry(name); ok {
				continue
			}
			if _, bad := e.texFailed[name]; bad {
				continue
			}
			img, err := e.src.Load(name)
			if err != nil || img == nil {
				e.texFailed[name] = struct{}{}
				e.debugWarnf("texture %q failed to load: %v", name, err)
				continue
			}
			b := img.Bounds()
			entry, dst := e.atlas.Place(name, b.Dx(), b.Dy())
			if !dst.Empty() {
				e.uploads = append(e.uploads, UploadRequest{
					Texture: name,
					Tier:    entry.Tier,
					Dst:     dst,
					Img:     img,
				})
			}
		}
	}
	e.texQueue = e.texQueue[:0]
	clear(e.texWanted)

	pending := 0
	for _, p := range e.batch.texPatches {
		if entry, ok := e.atlas.Entry(p.texture); ok {
			e.batch.patchQuadUV(p.vert, entry)
		} else if _, bad := e.texFailed[p.texture]; bad {
			e.batch.solidFallback(p.vert)
		} else {
			pending++
		}
	}
	for _, p := range e.batch.maskPatches {
		if entry, ok := e.atlas.Entry(p.texture); ok {
			e.batch.patchQuadMask(p.vert, entry)
		} else if _, bad := e.texFailed[p.texture]; bad {
			e.batch.dropQuadMask(p.vert)
		} else {
			pending++
		}
	}
	return pending
}

// DrainUploads hands off the upload requests accumulated since the last
// drain. The caller owns the returned slice.
func (e *Engine) DrainUploads() []UploadRequest {
	u := e.uploads
	e.uploads = nil
	return u
}
