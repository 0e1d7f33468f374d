package store

import (
	"github.com/rs/zerolog"

	"github.com/theoremus-urban-solutions/pt-network-browser/osm"
)

// IngestSummary reports what one ingestion batch added to the store.
type IngestSummary struct {
	Stops       int `json:"stops"`
	Routes      int `json:"routes"`
	RouteGroups int `json:"routeGroups"`
	Areas       int `json:"areas"`
	Other       int `json:"other"`
	Malformed   int `json:"malformed"`
	Skipped     int `json:"skipped"`
}

// Added is the number of entities the batch inserted, any class.
func (s IngestSummary) Added() int {
	return s.Stops + s.Routes + s.RouteGroups + s.Areas + s.Other
}

// EntityStore is the single source of truth mapping (type, id) to an
// entity record. Entities are created only through ingestion and never
// deleted in-session; callers hold an explicit reference to the store
// instance they operate on (primary vs. workspace).
//
// Not safe for concurrent use. All mutation happens in response to
// discrete external events on one goroutine.
type EntityStore struct {
	log zerolog.Logger

	entities map[osm.Ref]*osm.Entity
	order    []osm.Ref

	stops       []osm.Ref
	routes      []osm.Ref
	routeGroups []osm.Ref
	areas       []osm.Ref

	// fullyDownloaded holds node IDs whose complete record arrived
	// through a node-detail query, not just a stub reference.
	fullyDownloaded map[int64]struct{}

	// groupRefs holds the ref codes of every known route group, used
	// to suppress duplicate grouping suggestions.
	groupRefs map[string]struct{}

	idx *RelationIndexer
}

// NewEntityStore creates an empty store with its own relation indexer.
func NewEntityStore(log zerolog.Logger) *EntityStore {
	s := &EntityStore{
		log:             log.With().Str("component", "store").Logger(),
		entities:        map[osm.Ref]*osm.Entity{},
		fullyDownloaded: map[int64]struct{}{},
		groupRefs:       map[string]struct{}{},
	}
	s.idx = newRelationIndexer(s)
	return s
}

// Ingest merges one batch of raw elements into the store. Already
// known (type, id) pairs are skipped, so re-ingesting an overlapping
// payload is a no-op for identity; first-seen tags are authoritative.
// Malformed elements are counted and skipped, the rest of the batch
// continues. Insertion order is preserved for all list consumers.
func (s *EntityStore) Ingest(elements []osm.RawElement) IngestSummary {
	var sum IngestSummary
	for _, raw := range elements {
		if err := raw.Validate(); err != nil {
			sum.Malformed++
			s.log.Warn().Err(err).Int64("id", raw.ID).Str("type", string(raw.Type)).Msg("element rejected")
			continue
		}
		if !s.insert(raw, &sum) {
			sum.Skipped++
		}
	}
	s.log.Debug().
		Int("stops", sum.Stops).
		Int("routes", sum.Routes).
		Int("routeGroups", sum.RouteGroups).
		Int("areas", sum.Areas).
		Int("malformed", sum.Malformed).
		Int("skipped", sum.Skipped).
		Msg("batch ingested")
	return sum
}

// IngestNodeDetails ingests a node-detail response and marks every
// node in it as fully downloaded. Nodes already known keep their
// first-seen tags but still gain the fully-downloaded flag.
func (s *EntityStore) IngestNodeDetails(elements []osm.RawElement) IngestSummary {
	var sum IngestSummary
	for _, raw := range elements {
		if err := raw.Validate(); err != nil {
			sum.Malformed++
			continue
		}
		if raw.Type == osm.TypeNode {
			s.fullyDownloaded[raw.ID] = struct{}{}
		}
		if !s.insert(raw, &sum) {
			sum.Skipped++
		}
	}
	return sum
}

// IngestMasters ingests a route-group query response and then applies
// master membership for every known route group. Applying twice is
// harmless: HasMaster is monotonic.
func (s *EntityStore) IngestMasters(elements []osm.RawElement) IngestSummary {
	sum := s.Ingest(elements)
	for _, ref := range s.routeGroups {
		if group, ok := s.entities[ref]; ok {
			s.ApplyMasterMembership(group)
		}
	}
	return sum
}

func (s *EntityStore) insert(raw osm.RawElement, sum *IngestSummary) bool {
	ref := osm.Ref{Type: raw.Type, ID: raw.ID}
	if _, known := s.entities[ref]; known {
		return false
	}
	e := osm.NewEntity(raw)
	s.entities[ref] = e
	s.order = append(s.order, ref)

	switch e.Class {
	case osm.Stop:
		s.stops = append(s.stops, ref)
		sum.Stops++
	case osm.Route:
		s.routes = append(s.routes, ref)
		s.idx.IndexStop(e)
		sum.Routes++
	case osm.RouteGroup:
		s.routeGroups = append(s.routeGroups, ref)
		if code := e.Tag("ref"); code != "" {
			s.groupRefs[code] = struct{}{}
		}
		sum.RouteGroups++
	case osm.Area:
		s.areas = append(s.areas, ref)
		sum.Areas++
	default:
		sum.Other++
	}
	return true
}

// ApplyMasterMembership sets HasMaster on every present member of a
// route-group relation. Members not yet downloaded are silently
// skipped; arrival of such a member later does not retrigger this.
func (s *EntityStore) ApplyMasterMembership(group *osm.Entity) {
	for _, m := range group.Members {
		if e, ok := s.entities[osm.Ref{Type: m.Type, ID: m.Ref}]; ok {
			e.HasMaster = true
		}
	}
	if code := group.Tag("ref"); code != "" {
		s.groupRefs[code] = struct{}{}
	}
}

// Get looks an entity up by its composite key.
func (s *EntityStore) Get(t osm.ElementType, id int64) (*osm.Entity, bool) {
	e, ok := s.entities[osm.Ref{Type: t, ID: id}]
	return e, ok
}

// GetRef looks an entity up by ref.
func (s *EntityStore) GetRef(ref osm.Ref) (*osm.Entity, bool) {
	e, ok := s.entities[ref]
	return e, ok
}

// Len is the number of entities currently known.
func (s *EntityStore) Len() int { return len(s.entities) }

// All returns every entity in insertion order.
func (s *EntityStore) All() []*osm.Entity { return s.resolve(s.order) }

// Stops returns the stop view in insertion order.
func (s *EntityStore) Stops() []*osm.Entity { return s.resolve(s.stops) }

// Routes returns the route view in insertion order.
func (s *EntityStore) Routes() []*osm.Entity { return s.resolve(s.routes) }

// RouteGroups returns the route-group ("master") view in insertion order.
func (s *EntityStore) RouteGroups() []*osm.Entity { return s.resolve(s.routeGroups) }

// Areas returns the stop-area view in insertion order.
func (s *EntityStore) Areas() []*osm.Entity { return s.resolve(s.areas) }

func (s *EntityStore) resolve(refs []osm.Ref) []*osm.Entity {
	out := make([]*osm.Entity, 0, len(refs))
	for _, ref := range refs {
		if e, ok := s.entities[ref]; ok {
			out = append(out, e)
		}
	}
	return out
}

// IsFullyDownloaded reports whether a node's complete record arrived.
func (s *EntityStore) IsFullyDownloaded(nodeID int64) bool {
	_, ok := s.fullyDownloaded[nodeID]
	return ok
}

// FullyDownloadedSet returns a copy of the fully-downloaded node IDs.
func (s *EntityStore) FullyDownloadedSet() map[int64]struct{} {
	out := make(map[int64]struct{}, len(s.fullyDownloaded))
	for id := range s.fullyDownloaded {
		out[id] = struct{}{}
	}
	return out
}

// NodeIDSet returns the IDs of every node currently in the store.
func (s *EntityStore) NodeIDSet() map[int64]struct{} {
	out := map[int64]struct{}{}
	for ref := range s.entities {
		if ref.Type == osm.TypeNode {
			out[ref.ID] = struct{}{}
		}
	}
	return out
}

// GroupRefCodes returns the ref codes of every known route group.
func (s *EntityStore) GroupRefCodes() map[string]struct{} {
	out := make(map[string]struct{}, len(s.groupRefs))
	for code := range s.groupRefs {
		out[code] = struct{}{}
	}
	return out
}

// Indexer exposes the store's relation membership indexer.
func (s *EntityStore) Indexer() *RelationIndexer { return s.idx }

// Coordinates resolves a node ID to its position. The bool is false
// for nodes not yet downloaded.
func (s *EntityStore) Coordinates(nodeID int64) (lat, lon float64, ok bool) {
	e, found := s.entities[osm.Ref{Type: osm.TypeNode, ID: nodeID}]
	if !found {
		return 0, 0, false
	}
	return e.Lat, e.Lon, true
}

// Clear tears the store down. The membership index is rebuilt only
// from scratch after a clear, never recomputed in-session.
func (s *EntityStore) Clear() {
	s.entities = map[osm.Ref]*osm.Entity{}
	s.order = nil
	s.stops = nil
	s.routes = nil
	s.routeGroups = nil
	s.areas = nil
	s.fullyDownloaded = map[int64]struct{}{}
	s.groupRefs = map[string]struct{}{}
	s.idx.clear()
}
