package geo

import (
	"github.com/golang/geo/s2"
)

// Bounds is the currently visible map rectangle. The core never
// computes map projection itself; it only asks whether a point lies
// inside the rectangle. The zero value is empty and contains nothing.
type Bounds struct {
	rect s2.Rect
	set  bool
}

// NewBounds builds a bounds rectangle from its south-west and
// north-east corners, in degrees.
func NewBounds(south, west, north, east float64) Bounds {
	r := s2.RectFromLatLng(s2.LatLngFromDegrees(south, west))
	r = r.AddPoint(s2.LatLngFromDegrees(north, east))
	return Bounds{rect: r, set: true}
}

// Contains reports whether the point lies within the bounds.
func (b Bounds) Contains(lat, lon float64) bool {
	return b.set && b.rect.ContainsLatLng(s2.LatLngFromDegrees(lat, lon))
}

// IsEmpty reports whether the bounds contain no points.
func (b Bounds) IsEmpty() bool { return !b.set || b.rect.IsEmpty() }

// BoundsProvider is the externally-owned source of the current
// visible bounds (the map widget in practice).
type BoundsProvider interface {
	VisibleBounds() Bounds
}

// FixedBounds is a BoundsProvider returning a constant rectangle,
// used by the HTTP boundary and by tests.
type FixedBounds struct {
	B Bounds
}

func (f FixedBounds) VisibleBounds() Bounds { return f.B }
