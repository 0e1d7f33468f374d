package ptnetwork

import (
	"github.com/rs/zerolog"

	"github.com/theoremus-urban-solutions/pt-network-browser/highlight"
)

// CommandRenderer implements highlight.Renderer at the HTTP boundary:
// it records the currently drawn overlay and the pending view-refresh
// signals so the rendering surface can poll them. The actual drawing
// happens client-side.
type CommandRenderer struct {
	log       zerolog.Logger
	overlay   *highlight.Overlay
	refreshes []highlight.ViewKind
}

func NewCommandRenderer(log zerolog.Logger) *CommandRenderer {
	return &CommandRenderer{log: log.With().Str("component", "renderer").Logger()}
}

// DrawOverlay replaces the held overlay wholesale.
func (r *CommandRenderer) DrawOverlay(o highlight.Overlay) {
	r.overlay = &o
	r.log.Debug().Int("markers", len(o.Markers)).Int("lines", len(o.Lines)).Msg("overlay drawn")
}

// ClearOverlay drops the held overlay.
func (r *CommandRenderer) ClearOverlay() {
	r.overlay = nil
	r.log.Debug().Msg("overlay cleared")
}

// RefreshView queues a view-refresh signal.
func (r *CommandRenderer) RefreshView(kind highlight.ViewKind) {
	r.refreshes = append(r.refreshes, kind)
}

// Overlay returns the currently held overlay, if any.
func (r *CommandRenderer) Overlay() (highlight.Overlay, bool) {
	if r.overlay == nil {
		return highlight.Overlay{}, false
	}
	return *r.overlay, true
}

// DrainRefreshes returns and clears the queued refresh signals.
func (r *CommandRenderer) DrainRefreshes() []highlight.ViewKind {
	out := r.refreshes
	r.refreshes = nil
	return out
}
