package ptnetwork

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/theoremus-urban-solutions/pt-network-browser/config"
	"github.com/theoremus-urban-solutions/pt-network-browser/geo"
	"github.com/theoremus-urban-solutions/pt-network-browser/highlight"
	"github.com/theoremus-urban-solutions/pt-network-browser/osm"
	"github.com/theoremus-urban-solutions/pt-network-browser/store"
	"github.com/theoremus-urban-solutions/pt-network-browser/suggest"
	"github.com/theoremus-urban-solutions/pt-network-browser/workspace"
)

// App wires the core together: the primary entity store with its
// highlight machine, the discovery workspace, and the suggestion
// engine. The core itself is single-threaded and lock-free; the
// mutex serializes events arriving through the HTTP boundary only.
type App struct {
	Log       zerolog.Logger
	Store     *store.EntityStore
	Highlight *highlight.StateMachine
	Workspace *workspace.Workspace
	Engine    *suggest.Engine
	Renderer  *CommandRenderer

	bounds geo.Bounds

	// lastStopResponse is the freshest workspace stop-query response,
	// the "newly downloaded" half of a suggestion run.
	lastStopResponse []osm.RawElement

	mu sync.Mutex
}

// NewApp builds a ready application from configuration.
func NewApp(cfg config.AppConfig, log zerolog.Logger) *App {
	renderer := NewCommandRenderer(log)
	st := store.NewEntityStore(log)

	var bounds geo.Bounds
	if b := cfg.Map.Bounds; len(b) == 4 {
		bounds = geo.NewBounds(b[0], b[1], b[2], b[3])
	}

	return &App{
		Log:       log,
		Store:     st,
		Highlight: highlight.NewStateMachine(st, renderer, log),
		Workspace: workspace.New(NewCommandRenderer(log), log),
		Engine:    suggest.NewEngine(log),
		Renderer:  renderer,
		bounds:    bounds,
	}
}

// SetBounds updates the visible rectangle used by suggestion runs.
func (a *App) SetBounds(south, west, north, east float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.bounds = geo.NewBounds(south, west, north, east)
}

// VisibleBounds implements geo.BoundsProvider.
func (a *App) VisibleBounds() geo.Bounds { return a.bounds }
