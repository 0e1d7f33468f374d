package osm

import (
	"errors"
	"fmt"
)

// ElementType is the type namespace of an element. IDs are only unique
// within one namespace, so lookups always key on (type, id).
type ElementType string

const (
	TypeNode     ElementType = "node"
	TypeWay      ElementType = "way"
	TypeRelation ElementType = "relation"
)

// Ref is the composite key of an element.
type Ref struct {
	Type ElementType
	ID   int64
}

func (r Ref) String() string { return fmt.Sprintf("%s/%d", r.Type, r.ID) }

// Member is one entry of a relation's ordered member list. Order is
// semantically meaningful (it defines the path of a route) and is
// preserved through every transform.
type Member struct {
	Type ElementType `json:"type"`
	Ref  int64       `json:"ref"`
	Role string      `json:"role"`
}

// RawElement is the wire shape of a single query-response element.
type RawElement struct {
	Type    ElementType       `json:"type"`
	ID      int64             `json:"id"`
	Tags    map[string]string `json:"tags,omitempty"`
	Lat     float64           `json:"lat,omitempty"`
	Lon     float64           `json:"lon,omitempty"`
	Members []Member          `json:"members,omitempty"`
}

// QueryResponse is the envelope of a geographic query response.
type QueryResponse struct {
	Elements []RawElement `json:"elements"`
}

// ErrMalformedElement marks an element that cannot enter the store.
// The element is skipped and ingestion of the batch continues.
var ErrMalformedElement = errors.New("malformed element")

// Validate rejects elements missing an id or carrying an unknown type.
func (e RawElement) Validate() error {
	if e.ID == 0 {
		return fmt.Errorf("%w: missing id", ErrMalformedElement)
	}
	switch e.Type {
	case TypeNode, TypeWay, TypeRelation:
		return nil
	default:
		return fmt.Errorf("%w: unknown type %q", ErrMalformedElement, e.Type)
	}
}

// Entity is a stored element plus the store-assigned derived fields.
type Entity struct {
	Type    ElementType
	ID      int64
	Tags    map[string]string
	Lat     float64
	Lon     float64
	Members []Member

	// Class is computed once at ingestion, never re-derived ad hoc.
	Class Class

	// HasMaster is monotonic: set once the relation is found as a
	// member of some route-group relation, never reset in-session.
	HasMaster bool
}

// Ref returns the composite key of the entity.
func (e *Entity) Ref() Ref { return Ref{Type: e.Type, ID: e.ID} }

// Tag returns the value of a tag key, or "" when absent. Absence means
// "no opinion"; values are never defaulted here.
func (e *Entity) Tag(key string) string {
	if e.Tags == nil {
		return ""
	}
	return e.Tags[key]
}

// NewEntity builds a stored entity from a validated raw element.
func NewEntity(raw RawElement) *Entity {
	return &Entity{
		Type:    raw.Type,
		ID:      raw.ID,
		Tags:    raw.Tags,
		Lat:     raw.Lat,
		Lon:     raw.Lon,
		Members: raw.Members,
		Class:   Classify(raw),
	}
}
