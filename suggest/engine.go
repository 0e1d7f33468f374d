package suggest

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/theoremus-urban-solutions/pt-network-browser/geo"
	"github.com/theoremus-urban-solutions/pt-network-browser/osm"
	"github.com/theoremus-urban-solutions/pt-network-browser/store"
)

// ErrNoSuggestions signals that a completed suggestion run produced
// nothing actionable. Callers must surface this distinctly from
// "not yet computed".
var ErrNoSuggestions = errors.New("no route group suggestions available")

// CoverageRecord pairs a candidate route with its coverage score.
type CoverageRecord struct {
	RouteID         int64   `json:"routeId"`
	PercentCoverage float64 `json:"percentCoverage"`
}

// Group is one proposed route grouping: routes sharing a reference
// code that have no existing parent group.
type Group struct {
	Ref    string           `json:"ref"`
	Routes []CoverageRecord `json:"routes"`
}

// Engine detects route relations that should belong to a route group
// but currently don't, and proposes groupings.
type Engine struct {
	log zerolog.Logger
}

func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{log: log.With().Str("component", "suggest").Logger()}
}

// FindCandidateRoutes returns the union of (a) freshly downloaded
// route relations with at least one member and (b) previously known
// workspace route relations that carry a ref code, have members, and
// have at least one member node inside the current bounds. Bounds
// membership is re-checked against the store on every call, not
// cached. The result is deduplicated by ID; fresh routes come first.
func (e *Engine) FindCandidateRoutes(fresh []osm.RawElement, ws *store.EntityStore, bounds geo.Bounds) []*osm.Entity {
	var out []*osm.Entity
	seen := map[int64]struct{}{}

	for _, raw := range fresh {
		if raw.Type != osm.TypeRelation || len(raw.Members) == 0 {
			continue
		}
		if osm.Classify(raw) != osm.Route {
			continue
		}
		rel, ok := ws.Get(osm.TypeRelation, raw.ID)
		if !ok {
			rel = osm.NewEntity(raw)
		}
		if _, dup := seen[rel.ID]; dup {
			continue
		}
		seen[rel.ID] = struct{}{}
		out = append(out, rel)
	}

	for _, rel := range ws.Routes() {
		if _, dup := seen[rel.ID]; dup {
			continue
		}
		if rel.Tag("ref") == "" || len(rel.Members) == 0 {
			continue
		}
		if !e.membersInBounds(rel, ws, bounds) {
			continue
		}
		seen[rel.ID] = struct{}{}
		out = append(out, rel)
	}

	e.log.Debug().Int("candidates", len(out)).Msg("candidate routes collected")
	return out
}

// membersInBounds reports whether any member node of the relation that
// is already downloaded lies within the visible bounds. Empty bounds
// do not restrict.
func (e *Engine) membersInBounds(rel *osm.Entity, ws *store.EntityStore, bounds geo.Bounds) bool {
	if bounds.IsEmpty() {
		return true
	}
	for _, m := range rel.Members {
		if m.Type != osm.TypeNode {
			continue
		}
		lat, lon, ok := ws.Coordinates(m.Ref)
		if ok && bounds.Contains(lat, lon) {
			return true
		}
	}
	return false
}

// GroupByReferenceCode groups candidate routes by their ref tag,
// excluding routes whose ref already names an existing route group
// and routes without a ref. Reference codes accumulate in first-seen
// order; routes within a code keep the candidate order. Codes with
// fewer than two distinct routes are dropped: a singleton is not a
// missing group, it is just one route.
func (e *Engine) GroupByReferenceCode(routes []*osm.Entity, coverage map[int64]float64, existingGroupRefs map[string]struct{}) ([]Group, error) {
	var order []string
	byRef := map[string][]CoverageRecord{}

	for _, rel := range routes {
		code := rel.Tag("ref")
		if code == "" {
			continue
		}
		if _, exists := existingGroupRefs[code]; exists {
			continue
		}
		if _, seen := byRef[code]; !seen {
			order = append(order, code)
		}
		byRef[code] = append(byRef[code], CoverageRecord{
			RouteID:         rel.ID,
			PercentCoverage: coverage[rel.ID],
		})
	}

	var out []Group
	for _, code := range order {
		if recs := byRef[code]; len(recs) >= 2 {
			out = append(out, Group{Ref: code, Routes: recs})
		}
	}
	if len(out) == 0 {
		return nil, ErrNoSuggestions
	}
	e.log.Info().Int("groups", len(out)).Msg("route group suggestions computed")
	return out, nil
}

// Run performs a full suggestion pass against the workspace store:
// candidate collection, coverage scoring, and grouping.
func (e *Engine) Run(fresh []osm.RawElement, ws *store.EntityStore, bounds geo.Bounds) ([]Group, error) {
	candidates := e.FindCandidateRoutes(fresh, ws, bounds)
	coverage := ComputeCoverage(candidates, ws.NodeIDSet(), ws.FullyDownloadedSet())
	return e.GroupByReferenceCode(candidates, coverage, ws.GroupRefCodes())
}
