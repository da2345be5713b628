package trellis

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-build timing and output metrics.
// Only populated when Config.Debug is set.
type debugStats struct {
	orderTime time.Duration
	batchTime time.Duration
	hitTime   time.Duration

	widgetCount  int
	quadCount    int
	pendingCount int
}

// debugLog prints build stats to stderr.
func (e *Engine) debugLog(stats debugStats) {
	if !e.cfg.Debug {
		return
	}
	total := stats.orderTime + stats.batchTime + stats.hitTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[trellis] order: %v | batch: %v | hit: %v | total: %v\n",
		stats.orderTime, stats.batchTime, stats.hitTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[trellis] widgets: %d | quads: %d | pending textures: %d\n",
		stats.widgetCount, stats.quadCount, stats.pendingCount)
}

// debugWarnf prints a warning to stderr in debug mode. Used where the API
// contract is a silent no-op, so misuse stays discoverable during
// development without changing behavior.
func (e *Engine) debugWarnf(format string, args ...any) {
	if e == nil || !e.cfg.Debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[trellis] warning: "+format+"\n", args...)
}

// debugCheckDestroyed panics with a descriptive message when a destroyed
// widget is mutated. Only fires in debug mode; elsewhere the mutation
// lands on the tombstoned struct and has no visible effect.
func debugCheckDestroyed(w *Widget, op string) {
	if w == nil || !w.destroyed || w.eng == nil || !w.eng.cfg.Debug {
		return
	}
	panic(fmt.Sprintf("trellis debug: %s on destroyed widget %q (id %d)", op, w.name, w.id))
}

// debugCheckAnchorCount warns when a widget accumulates more anchors than
// there are distinct points to pin.
const debugMaxAnchors = 9

func debugCheckAnchorCount(w *Widget) {
	if w.eng == nil || !w.eng.cfg.Debug {
		return
	}
	if len(w.anchors) > debugMaxAnchors {
		_, _ = fmt.Fprintf(os.Stderr, "[trellis] warning: widget %q has %d anchors\n",
			w.name, len(w.anchors))
	}
}
