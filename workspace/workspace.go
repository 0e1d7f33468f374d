package workspace

import (
	"github.com/rs/zerolog"

	"github.com/theoremus-urban-solutions/pt-network-browser/highlight"
	"github.com/theoremus-urban-solutions/pt-network-browser/osm"
	"github.com/theoremus-urban-solutions/pt-network-browser/store"
)

// Workspace is the isolated entity store used during route-group
// discovery. It accumulates its own query responses in arrival order
// and replays them into the primary store when the discovery view
// closes. Until then it is owned exclusively by the discovery flow;
// the two stores are never merged any other way.
type Workspace struct {
	log   zerolog.Logger
	store *store.EntityStore
	hl    *highlight.StateMachine

	stopResponses   [][]osm.RawElement
	nodeResponses   [][]osm.RawElement
	masterResponses [][]osm.RawElement
}

// New creates an empty workspace with its own store and highlight
// machine rendering through r.
func New(r highlight.Renderer, log zerolog.Logger) *Workspace {
	wlog := log.With().Str("component", "workspace").Logger()
	st := store.NewEntityStore(wlog)
	return &Workspace{
		log:   wlog,
		store: st,
		hl:    highlight.NewStateMachine(st, r, wlog),
	}
}

// Store exposes the workspace's own entity store.
func (w *Workspace) Store() *store.EntityStore { return w.store }

// Highlight exposes the workspace's own selection machine.
func (w *Workspace) Highlight() *highlight.StateMachine { return w.hl }

// RecordStopResponse ingests a stop-query response into the workspace
// store and logs it for replay on close.
func (w *Workspace) RecordStopResponse(elements []osm.RawElement) store.IngestSummary {
	w.stopResponses = append(w.stopResponses, elements)
	return w.store.Ingest(elements)
}

// RecordNodeDetailResponse ingests a node-detail response and logs it
// for replay on close.
func (w *Workspace) RecordNodeDetailResponse(elements []osm.RawElement) store.IngestSummary {
	w.nodeResponses = append(w.nodeResponses, elements)
	return w.store.IngestNodeDetails(elements)
}

// RecordMasterResponse ingests a route-group query response and logs
// it for replay on close.
func (w *Workspace) RecordMasterResponse(elements []osm.RawElement) store.IngestSummary {
	w.masterResponses = append(w.masterResponses, elements)
	return w.store.IngestMasters(elements)
}

// Close replays every accumulated response through the primary store's
// ingestion path — stop queries first, then node details, then group
// queries — exactly once, then clears the workspace-local selection
// state. Ingestion idempotence guarantees the replay cannot duplicate
// entities the primary store already knows, and it never removes or
// rewrites anything there: the merge is monotonic.
func (w *Workspace) Close(primary *store.EntityStore) {
	replayed := 0
	for _, res := range w.stopResponses {
		primary.Ingest(res)
		replayed++
	}
	for _, res := range w.nodeResponses {
		primary.IngestNodeDetails(res)
		replayed++
	}
	for _, res := range w.masterResponses {
		primary.IngestMasters(res)
		replayed++
	}
	w.stopResponses = nil
	w.nodeResponses = nil
	w.masterResponses = nil

	w.hl.Clear()
	w.log.Info().Int("responses", replayed).Int("primary_entities", primary.Len()).Msg("workspace reconciled")
}
