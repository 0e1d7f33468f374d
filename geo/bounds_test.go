package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theoremus-urban-solutions/pt-network-browser/geo"
)

func TestBoundsContains(t *testing.T) {
	b := geo.NewBounds(42.62, 23.25, 42.75, 23.45)

	assert.True(t, b.Contains(42.70, 23.32))
	assert.True(t, b.Contains(42.62, 23.25)) // corners are inclusive
	assert.True(t, b.Contains(42.75, 23.45))
	assert.False(t, b.Contains(42.50, 23.32))
	assert.False(t, b.Contains(42.70, 24.00))
}

func TestEmptyBounds(t *testing.T) {
	var b geo.Bounds
	assert.True(t, b.IsEmpty())
	assert.False(t, b.Contains(42.70, 23.32))

	assert.False(t, geo.NewBounds(42.62, 23.25, 42.75, 23.45).IsEmpty())
}

func TestFixedBoundsProvider(t *testing.T) {
	b := geo.NewBounds(42.62, 23.25, 42.75, 23.45)
	var p geo.BoundsProvider = geo.FixedBounds{B: b}
	assert.True(t, p.VisibleBounds().Contains(42.70, 23.32))
}
