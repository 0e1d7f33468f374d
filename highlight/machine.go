package highlight

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/theoremus-urban-solutions/pt-network-browser/osm"
	"github.com/theoremus-urban-solutions/pt-network-browser/store"
)

// State is the current selection state of the machine.
type State int

const (
	Idle State = iota
	StopSelected
	RouteSelected
	GroupSelected
)

func (s State) String() string {
	switch s {
	case StopSelected:
		return "stop_selected"
	case RouteSelected:
		return "route_selected"
	case GroupSelected:
		return "group_selected"
	default:
		return "idle"
	}
}

// Filter chooses which member role forms a route's highlight line.
type Filter string

const (
	FilterStops     Filter = "Stops"
	FilterPlatforms Filter = "Platforms"
)

// ErrNotFound signals a selection event referencing an entity absent
// from the store. The caller decides the user-facing behavior.
var ErrNotFound = errors.New("element not found")

// DegenerateRouteError reports a route with more than one member but
// fewer than two members resolving to known coordinates, which cannot
// form a line. The overlay state is left unchanged.
type DegenerateRouteError struct {
	RouteID  int64
	Resolved int
}

func (e *DegenerateRouteError) Error() string {
	return fmt.Sprintf("degenerate route %d: %d resolvable coordinates", e.RouteID, e.Resolved)
}

// StateMachine owns the "what is highlighted" state and guarantees
// exactly one consistent overlay at a time: every transition into a
// non-idle state first releases every overlay of the previous state.
//
// Not safe for concurrent use; selection events arrive one at a time.
type StateMachine struct {
	log      zerolog.Logger
	store    *store.EntityStore
	renderer Renderer

	state   State
	filter  Filter
	active  bool
	current *osm.Entity

	routesForStop     []int64
	stopsForRoute     []int64
	platformsForRoute []int64
	waysForRoute      []int64
	relationsForRoute []int64
}

// NewStateMachine creates an idle machine over the given store.
func NewStateMachine(st *store.EntityStore, r Renderer, log zerolog.Logger) *StateMachine {
	return &StateMachine{
		log:      log.With().Str("component", "highlight").Logger(),
		store:    st,
		renderer: r,
		state:    Idle,
		filter:   FilterStops,
	}
}

// Select dispatches a selection event carrying an entity reference.
// Stops, routes, and route groups transition the machine; any other
// known entity only refreshes the tag view.
func (m *StateMachine) Select(t osm.ElementType, id int64) error {
	e, ok := m.store.Get(t, id)
	if !ok {
		return fmt.Errorf("%w: %s/%d", ErrNotFound, t, id)
	}
	switch e.Class {
	case osm.Stop:
		m.SelectStop(e)
		return nil
	case osm.Route:
		return m.SelectRoute(e)
	case osm.RouteGroup:
		m.SelectGroup(e)
		return nil
	default:
		m.current = e
		m.renderer.RefreshView(ViewTag)
		return nil
	}
}

// SelectStop highlights a stop: its marker plus the full set of routes
// referencing it, one line per route with its own color.
func (m *StateMachine) SelectStop(stop *osm.Entity) {
	m.release()

	ov := Overlay{
		Markers: []Marker{{At: Point{Lat: stop.Lat, Lon: stop.Lon}, Label: stop.Tag("name")}},
	}
	m.routesForStop = m.store.Indexer().RoutesForStop(stop.ID)
	for _, rid := range m.routesForStop {
		rel, ok := m.store.Get(osm.TypeRelation, rid)
		if !ok {
			continue
		}
		pts := m.resolvePoints(m.store.Indexer().StopsForRoute(rel))
		if len(pts) == 0 {
			continue
		}
		ov.Lines = append(ov.Lines, Polyline{Points: pts, Color: routeColor(rel), Name: rel.Tag("name")})
	}

	m.draw(ov, StopSelected, stop)
	m.renderer.RefreshView(ViewRoute)
	m.renderer.RefreshView(ViewTag)
	m.log.Debug().Int64("stop", stop.ID).Int("routes", len(m.routesForStop)).Msg("stop selected")
}

// SelectRoute highlights a single route as a stroke+fill line pair
// with labeled from/to endpoint markers. A route whose active member
// list resolves to fewer than two coordinates cannot form a line and
// fails with DegenerateRouteError, leaving the overlay untouched —
// unless the relation has at most one member, in which case it is a
// newly created relation and nothing is drawn or reported.
func (m *StateMachine) SelectRoute(rel *osm.Entity) error {
	part := store.PartitionMembers(rel)
	refs := part.Stops
	if m.filter == FilterPlatforms {
		refs = part.Platforms
	}
	pts := m.resolvePoints(refs)
	if len(pts) < 2 {
		if len(rel.Members) <= 1 {
			m.current = rel
			m.renderer.RefreshView(ViewTag)
			return nil
		}
		return &DegenerateRouteError{RouteID: rel.ID, Resolved: len(pts)}
	}

	m.release()
	m.stopsForRoute = part.Stops
	m.platformsForRoute = part.Platforms
	m.waysForRoute = part.Ways
	m.relationsForRoute = part.Relations

	name := rel.Tag("name")
	ov := Overlay{
		Lines: []Polyline{
			{Points: pts, Color: strokeColor, Name: name, Stroke: true},
			{Points: pts, Color: routeColor(rel), Name: name},
		},
	}
	ov.Markers = append(ov.Markers, m.fromToMarkers(rel, pts)...)

	m.draw(ov, RouteSelected, rel)
	m.renderer.RefreshView(ViewStop)
	m.renderer.RefreshView(ViewTag)
	m.log.Debug().Int64("route", rel.ID).Int("points", len(pts)).Msg("route selected")
	return nil
}

// SelectGroup highlights every member route of a route group under a
// single combined overlay. Members that are missing or cannot form a
// line are skipped quietly.
func (m *StateMachine) SelectGroup(group *osm.Entity) {
	m.release()

	var ov Overlay
	drawn := 0
	for _, mem := range group.Members {
		if mem.Type != osm.TypeRelation {
			continue
		}
		rel, ok := m.store.Get(osm.TypeRelation, mem.Ref)
		if !ok {
			continue
		}
		pts := m.resolvePoints(m.store.Indexer().StopsForRoute(rel))
		if len(pts) < 2 {
			continue
		}
		name := rel.Tag("name")
		ov.Lines = append(ov.Lines,
			Polyline{Points: pts, Color: strokeColor, Name: name, Stroke: true},
			Polyline{Points: pts, Color: routeColor(rel), Name: name},
		)
		ov.Markers = append(ov.Markers, m.fromToMarkers(rel, pts)...)
		drawn++
	}

	m.draw(ov, GroupSelected, group)
	m.renderer.RefreshView(ViewRelation)
	m.renderer.RefreshView(ViewTag)
	m.log.Debug().Int64("group", group.ID).Int("drawn", drawn).Msg("group selected")
}

// Clear transitions to Idle: releases all overlays, clears the side
// lists, and resets the highlight filter to its default.
func (m *StateMachine) Clear() {
	m.release()
	m.filter = FilterStops
	m.state = Idle
	m.current = nil
}

// release defensively drops the previous selection's overlays and side
// lists. Overlays are never reused across selections: if a relation's
// member list changed shape, incremental reuse would show stale
// visuals. The filter survives; only a full Clear resets it.
func (m *StateMachine) release() {
	if m.active {
		m.renderer.ClearOverlay()
		m.active = false
	}
	m.routesForStop = nil
	m.stopsForRoute = nil
	m.platformsForRoute = nil
	m.waysForRoute = nil
	m.relationsForRoute = nil
}

func (m *StateMachine) draw(ov Overlay, st State, e *osm.Entity) {
	m.renderer.DrawOverlay(ov)
	m.active = true
	m.state = st
	m.current = e
}

// fromToMarkers builds the labeled endpoint markers of a route from
// its from/to/route/ref tags. Missing tags fall back to placeholder
// tokens, never blank labels. Marker positions come from the route's
// first and last stop-role coordinates, falling back to the highlight
// line's endpoints.
func (m *StateMachine) fromToMarkers(rel *osm.Entity, line []Point) []Marker {
	from := tagOr(rel, "from", "#FROM")
	to := tagOr(rel, "to", "#TO")
	route := tagOr(rel, "route", "#ROUTE")
	ref := tagOr(rel, "ref", "#REF")

	stopPts := m.resolvePoints(m.store.Indexer().StopsForRoute(rel))
	if len(stopPts) == 0 {
		stopPts = line
	}
	return []Marker{
		{At: stopPts[0], Label: fmt.Sprintf("From: %s (%s %s)", from, route, ref)},
		{At: stopPts[len(stopPts)-1], Label: fmt.Sprintf("To: %s (%s %s)", to, route, ref)},
	}
}

// resolvePoints maps node IDs to coordinates, skipping nodes not yet
// downloaded.
func (m *StateMachine) resolvePoints(ids []int64) []Point {
	var pts []Point
	for _, id := range ids {
		if lat, lon, ok := m.store.Coordinates(id); ok {
			pts = append(pts, Point{Lat: lat, Lon: lon})
		}
	}
	return pts
}

func tagOr(e *osm.Entity, key, placeholder string) string {
	if v := e.Tag(key); v != "" {
		return v
	}
	return placeholder
}

// IsActive reports whether any overlay is currently held.
func (m *StateMachine) IsActive() bool { return m.active }

// State returns the current selection state.
func (m *StateMachine) State() State { return m.state }

// Current returns the currently selected entity, nil when idle.
func (m *StateMachine) Current() *osm.Entity { return m.current }

// Filter returns the active highlight-type filter.
func (m *StateMachine) Filter() Filter { return m.filter }

// SetFilter switches the highlight-type filter. It takes effect on
// the next route selection.
func (m *StateMachine) SetFilter(f Filter) { m.filter = f }

// RoutesForStop returns the side list built by the last stop selection.
func (m *StateMachine) RoutesForStop() []int64 { return m.routesForStop }

// StopsForRoute returns the side list built by the last route selection.
func (m *StateMachine) StopsForRoute() []int64 { return m.stopsForRoute }

// PlatformsForRoute returns the side list built by the last route selection.
func (m *StateMachine) PlatformsForRoute() []int64 { return m.platformsForRoute }
