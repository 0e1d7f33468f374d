package highlight_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/pt-network-browser/highlight"
	"github.com/theoremus-urban-solutions/pt-network-browser/osm"
	"github.com/theoremus-urban-solutions/pt-network-browser/store"
)

// fakeRenderer records the commands the machine emits.
type fakeRenderer struct {
	overlay   *highlight.Overlay
	draws     int
	clears    int
	refreshes []highlight.ViewKind
}

func (f *fakeRenderer) DrawOverlay(o highlight.Overlay) {
	f.overlay = &o
	f.draws++
}

func (f *fakeRenderer) ClearOverlay() {
	f.overlay = nil
	f.clears++
}

func (f *fakeRenderer) RefreshView(kind highlight.ViewKind) {
	f.refreshes = append(f.refreshes, kind)
}

func stopNode(id int64, lat, lon float64, name string) osm.RawElement {
	return osm.RawElement{
		Type: osm.TypeNode, ID: id, Lat: lat, Lon: lon,
		Tags: map[string]string{"public_transport": "stop_position", "name": name},
	}
}

func busRoute(id int64, tags map[string]string, members ...osm.Member) osm.RawElement {
	base := map[string]string{"type": "route", "route": "bus"}
	for k, v := range tags {
		base[k] = v
	}
	return osm.RawElement{Type: osm.TypeRelation, ID: id, Tags: base, Members: members}
}

func stopMember(ref int64) osm.Member {
	return osm.Member{Type: osm.TypeNode, Ref: ref, Role: "stop"}
}

func newMachine(t *testing.T) (*highlight.StateMachine, *store.EntityStore, *fakeRenderer) {
	t.Helper()
	st := store.NewEntityStore(zerolog.Nop())
	r := &fakeRenderer{}
	return highlight.NewStateMachine(st, r, zerolog.Nop()), st, r
}

func seedNetwork(t *testing.T, st *store.EntityStore) {
	t.Helper()
	st.Ingest([]osm.RawElement{
		stopNode(1, 42.70, 23.32, "First"),
		stopNode(2, 42.71, 23.33, "Second"),
		stopNode(3, 42.72, 23.34, "Third"),
		busRoute(10, map[string]string{"ref": "12", "from": "First", "to": "Third", "name": "Bus 12"},
			stopMember(1), stopMember(2), stopMember(3)),
		busRoute(11, map[string]string{"ref": "12"},
			stopMember(1), stopMember(2)),
	})
}

func TestSelectStopDrawsRoutesForStop(t *testing.T) {
	m, st, r := newMachine(t)
	seedNetwork(t, st)

	require.NoError(t, m.Select(osm.TypeNode, 1))
	assert.Equal(t, highlight.StopSelected, m.State())
	assert.True(t, m.IsActive())
	assert.Equal(t, []int64{10, 11}, m.RoutesForStop())

	require.NotNil(t, r.overlay)
	assert.Len(t, r.overlay.Markers, 1)
	assert.Len(t, r.overlay.Lines, 2) // one line per referencing route
	assert.Contains(t, r.refreshes, highlight.ViewRoute)
	assert.Contains(t, r.refreshes, highlight.ViewTag)
}

func TestHighlightExclusivity(t *testing.T) {
	m, st, r := newMachine(t)
	seedNetwork(t, st)

	require.NoError(t, m.Select(osm.TypeNode, 1))
	require.True(t, m.IsActive())
	drawsAfterStop := r.draws

	require.NoError(t, m.Select(osm.TypeRelation, 10))
	assert.Equal(t, highlight.RouteSelected, m.State())
	assert.True(t, m.IsActive())
	// the stop overlay was released before the route overlay was drawn
	assert.Equal(t, 1, r.clears)
	assert.Equal(t, drawsAfterStop+1, r.draws)
	// the held overlay is the route's stroke+fill pair, no residue
	require.NotNil(t, r.overlay)
	assert.Len(t, r.overlay.Lines, 2)
	assert.True(t, r.overlay.Lines[0].Stroke)
	assert.Len(t, r.overlay.Markers, 2) // from/to only, stop marker gone
}

func TestSelectRouteBuildsFromToMarkers(t *testing.T) {
	m, st, r := newMachine(t)
	seedNetwork(t, st)

	require.NoError(t, m.Select(osm.TypeRelation, 10))
	require.NotNil(t, r.overlay)
	require.Len(t, r.overlay.Markers, 2)
	assert.Equal(t, "From: First (bus 12)", r.overlay.Markers[0].Label)
	assert.Equal(t, "To: Third (bus 12)", r.overlay.Markers[1].Label)
	assert.Equal(t, []int64{1, 2, 3}, m.StopsForRoute())
}

func TestSelectRoutePlaceholderLabels(t *testing.T) {
	m, st, r := newMachine(t)
	st.Ingest([]osm.RawElement{
		stopNode(1, 42.70, 23.32, "A"),
		stopNode(2, 42.71, 23.33, "B"),
		{Type: osm.TypeRelation, ID: 10, Tags: map[string]string{"type": "route"},
			Members: []osm.Member{stopMember(1), stopMember(2)}},
	})

	require.NoError(t, m.Select(osm.TypeRelation, 10))
	require.NotNil(t, r.overlay)
	assert.Equal(t, "From: #FROM (#ROUTE #REF)", r.overlay.Markers[0].Label)
	assert.Equal(t, "To: #TO (#ROUTE #REF)", r.overlay.Markers[1].Label)
}

func TestDegenerateRouteLeavesOverlayUnchanged(t *testing.T) {
	m, st, r := newMachine(t)
	seedNetwork(t, st)
	// route with two members but only one resolvable coordinate
	st.Ingest([]osm.RawElement{
		busRoute(12, nil, stopMember(1), stopMember(99)),
	})

	require.NoError(t, m.Select(osm.TypeNode, 1))
	overlayBefore := r.overlay
	clearsBefore := r.clears

	err := m.Select(osm.TypeRelation, 12)
	var degenerate *highlight.DegenerateRouteError
	require.ErrorAs(t, err, &degenerate)
	assert.Equal(t, int64(12), degenerate.RouteID)
	assert.Equal(t, 1, degenerate.Resolved)

	// previous overlay still held, untouched
	assert.Equal(t, highlight.StopSelected, m.State())
	assert.True(t, m.IsActive())
	assert.Equal(t, overlayBefore, r.overlay)
	assert.Equal(t, clearsBefore, r.clears)
}

func TestEmptyRouteIsNotAnError(t *testing.T) {
	m, st, r := newMachine(t)
	st.Ingest([]osm.RawElement{
		busRoute(12, nil, stopMember(99)), // single member: newly created
	})

	require.NoError(t, m.Select(osm.TypeRelation, 12))
	assert.Equal(t, highlight.Idle, m.State())
	assert.False(t, m.IsActive())
	assert.Nil(t, r.overlay)
	assert.Contains(t, r.refreshes, highlight.ViewTag)
}

func TestSelectGroupAggregatesMemberRoutes(t *testing.T) {
	m, st, r := newMachine(t)
	seedNetwork(t, st)
	st.IngestMasters([]osm.RawElement{{
		Type: osm.TypeRelation, ID: 20,
		Tags: map[string]string{"type": "route_master", "ref": "12"},
		Members: []osm.Member{
			{Type: osm.TypeRelation, Ref: 10},
			{Type: osm.TypeRelation, Ref: 11},
			{Type: osm.TypeRelation, Ref: 99}, // missing: skipped
		},
	}})

	require.NoError(t, m.Select(osm.TypeRelation, 20))
	assert.Equal(t, highlight.GroupSelected, m.State())
	require.NotNil(t, r.overlay)
	assert.Len(t, r.overlay.Lines, 4)   // stroke+fill per drawable member
	assert.Len(t, r.overlay.Markers, 4) // from/to per drawable member
	assert.Contains(t, r.refreshes, highlight.ViewRelation)
}

func TestClearResetsEverything(t *testing.T) {
	m, st, r := newMachine(t)
	seedNetwork(t, st)

	m.SetFilter(highlight.FilterPlatforms)
	require.NoError(t, m.Select(osm.TypeNode, 1))

	m.Clear()
	assert.Equal(t, highlight.Idle, m.State())
	assert.False(t, m.IsActive())
	assert.Nil(t, r.overlay)
	assert.Empty(t, m.RoutesForStop())
	assert.Empty(t, m.StopsForRoute())
	assert.Equal(t, highlight.FilterStops, m.Filter())
	assert.Nil(t, m.Current())
}

func TestFilterSurvivesSelectionButNotClear(t *testing.T) {
	m, st, _ := newMachine(t)
	seedNetwork(t, st)

	m.SetFilter(highlight.FilterPlatforms)
	require.NoError(t, m.Select(osm.TypeNode, 1))
	assert.Equal(t, highlight.FilterPlatforms, m.Filter())
}

func TestSelectUnknownEntity(t *testing.T) {
	m, _, _ := newMachine(t)
	err := m.Select(osm.TypeNode, 404)
	assert.ErrorIs(t, err, highlight.ErrNotFound)
}

func TestPlatformFilterDrawsPlatformLine(t *testing.T) {
	m, st, r := newMachine(t)
	st.Ingest([]osm.RawElement{
		stopNode(1, 42.70, 23.32, "A"),
		stopNode(2, 42.71, 23.33, "B"),
		{Type: osm.TypeNode, ID: 5, Lat: 42.701, Lon: 23.321, Tags: map[string]string{"public_transport": "platform"}},
		{Type: osm.TypeNode, ID: 6, Lat: 42.711, Lon: 23.331, Tags: map[string]string{"public_transport": "platform"}},
		busRoute(10, nil,
			stopMember(1), stopMember(2),
			osm.Member{Type: osm.TypeNode, Ref: 5, Role: "platform"},
			osm.Member{Type: osm.TypeNode, Ref: 6, Role: "platform"},
		),
	})

	m.SetFilter(highlight.FilterPlatforms)
	require.NoError(t, m.Select(osm.TypeRelation, 10))
	require.NotNil(t, r.overlay)
	require.Len(t, r.overlay.Lines, 2)
	require.Len(t, r.overlay.Lines[1].Points, 2)
	assert.InDelta(t, 42.701, r.overlay.Lines[1].Points[0].Lat, 0.0001)
	assert.Equal(t, []int64{5, 6}, m.PlatformsForRoute())
}
