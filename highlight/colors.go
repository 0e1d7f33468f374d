package highlight

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/theoremus-urban-solutions/pt-network-browser/osm"
)

const strokeColor = "#FF0000"

// routeColor picks the highlight color of a route: the relation's
// colour/color tag when present, otherwise a deterministic fallback
// hashed from the relation's composite key. The low bits are or-ed up
// so the fallback never lands on near-black.
func routeColor(rel *osm.Entity) string {
	if c := rel.Tag("colour"); c != "" {
		return c
	}
	if c := rel.Tag("color"); c != "" {
		return c
	}
	h := xxhash.Sum64String(rel.Ref().String())
	return fmt.Sprintf("#%06x", uint32(h)&0xffffff|0x0f0f0f)
}
