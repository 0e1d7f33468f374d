package osm

// Class is the closed classification an element receives at ingestion.
type Class int

const (
	Unclassified Class = iota
	Stop
	Route
	RouteGroup
	Area
)

func (c Class) String() string {
	switch c {
	case Stop:
		return "stop"
	case Route:
		return "route"
	case RouteGroup:
		return "route_group"
	case Area:
		return "area"
	default:
		return "unclassified"
	}
}

// Tag keys and values that drive classification.
const (
	tagPublicTransport = "public_transport"
	tagRelationType    = "type"
	tagBus             = "bus"

	valRouteMaster = "route_master"
	valStopArea    = "stop_area"
)

// Classify maps a raw element to its categorical class:
//   - a node is a stop iff it carries a public-transport tag or bus=yes
//   - a relation marked route_master is a route group
//   - a relation marked public_transport=stop_area is an area
//   - every other tagged relation is a route
//
// Ways and untagged relations stay unclassified; they are stored but
// contribute to no categorical view.
func Classify(el RawElement) Class {
	switch el.Type {
	case TypeNode:
		if el.Tags == nil {
			return Unclassified
		}
		if el.Tags[tagBus] == "yes" || el.Tags[tagPublicTransport] != "" {
			return Stop
		}
		return Unclassified
	case TypeRelation:
		if el.Tags == nil || len(el.Tags) == 0 {
			return Unclassified
		}
		if el.Tags[tagRelationType] == valRouteMaster || el.Tags[tagPublicTransport] == valRouteMaster {
			return RouteGroup
		}
		if el.Tags[tagPublicTransport] == valStopArea {
			return Area
		}
		return Route
	default:
		return Unclassified
	}
}
