package store

import (
	"github.com/theoremus-urban-solutions/pt-network-browser/osm"
)

// Member roles that mark a node as a passenger boarding point of a
// route, and as a platform. Other roles never enter the stop index.
var (
	stopRoles = map[string]struct{}{
		"stop":            {},
		"stop_entry_only": {},
		"stop_exit_only":  {},
	}
	platformRoles = map[string]struct{}{
		"platform":            {},
		"platform_entry_only": {},
		"platform_exit_only":  {},
	}
)

// IsStopRole reports whether a member role marks a stop position.
func IsStopRole(role string) bool {
	_, ok := stopRoles[role]
	return ok
}

// IsPlatformRole reports whether a member role marks a platform.
func IsPlatformRole(role string) bool {
	_, ok := platformRoles[role]
	return ok
}

// RelationIndexer maintains the stop -> routes membership index,
// incrementally updated as route relations are ingested. The index
// never references a node absent from the store: dangling member refs
// skip index contribution and are not retried when the node arrives
// later (reads that need full fidelity re-derive from members).
type RelationIndexer struct {
	store         *EntityStore
	routesForStop map[int64][]int64
	indexed       map[int64]map[int64]struct{}
}

func newRelationIndexer(s *EntityStore) *RelationIndexer {
	return &RelationIndexer{
		store:         s,
		routesForStop: map[int64][]int64{},
		indexed:       map[int64]map[int64]struct{}{},
	}
}

// IndexStop appends the route's ID to the membership list of each of
// its stop-role node members already present in the store. Indexing
// the same route twice for the same stop is de-duplicated.
func (ix *RelationIndexer) IndexStop(route *osm.Entity) {
	for _, m := range route.Members {
		if m.Type != osm.TypeNode || !IsStopRole(m.Role) {
			continue
		}
		if _, present := ix.store.Get(osm.TypeNode, m.Ref); !present {
			continue
		}
		seen := ix.indexed[m.Ref]
		if seen == nil {
			seen = map[int64]struct{}{}
			ix.indexed[m.Ref] = seen
		}
		if _, dup := seen[route.ID]; dup {
			continue
		}
		seen[route.ID] = struct{}{}
		ix.routesForStop[m.Ref] = append(ix.routesForStop[m.Ref], route.ID)
	}
}

// RoutesForStop returns the IDs of routes referencing the stop as a
// stop-role member, in discovery order.
func (ix *RelationIndexer) RoutesForStop(stopID int64) []int64 {
	return ix.routesForStop[stopID]
}

// StopsForRoute walks the route's members in order and returns its
// stop-role node refs. It is re-derived per call, never cached, so it
// always reflects the current member order of the relation.
func (ix *RelationIndexer) StopsForRoute(route *osm.Entity) []int64 {
	var out []int64
	for _, m := range route.Members {
		if m.Type == osm.TypeNode && IsStopRole(m.Role) {
			out = append(out, m.Ref)
		}
	}
	return out
}

// MemberPartition splits a route's members by role and type. Stops
// feed the membership index; platforms, ways, and nested relations are
// tracked in parallel for coverage and rendering only.
type MemberPartition struct {
	Stops     []int64
	Platforms []int64
	Ways      []int64
	Relations []int64
}

// PartitionMembers sorts a route relation's members into the four
// parallel sequences, preserving member order within each.
func PartitionMembers(route *osm.Entity) MemberPartition {
	var p MemberPartition
	for _, m := range route.Members {
		switch {
		case m.Type == osm.TypeNode && IsStopRole(m.Role):
			p.Stops = append(p.Stops, m.Ref)
		case m.Type == osm.TypeNode && IsPlatformRole(m.Role):
			p.Platforms = append(p.Platforms, m.Ref)
		case m.Type == osm.TypeWay:
			p.Ways = append(p.Ways, m.Ref)
		case m.Type == osm.TypeRelation:
			p.Relations = append(p.Relations, m.Ref)
		}
	}
	return p
}

func (ix *RelationIndexer) clear() {
	ix.routesForStop = map[int64][]int64{}
	ix.indexed = map[int64]map[int64]struct{}{}
}
