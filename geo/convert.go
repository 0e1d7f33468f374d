package geo

import (
	"github.com/theoremus-urban-solutions/pt-network-browser/osm"
)

// Geometry is the opaque overlay-geometry collection produced by the
// external conversion layer. The core passes it to the rendering
// surface untouched and never inspects it.
type Geometry any

// Converter turns a raw query response into overlay geometry. It is a
// pure function supplied by the external geometry layer; the core
// never parses raw geographic payload formats itself.
type Converter func(resp osm.QueryResponse) Geometry
