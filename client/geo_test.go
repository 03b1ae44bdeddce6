package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	// Seattle to Portland is roughly 235 km
	d := HaversineKm(47.6062, -122.3321, 45.5152, -122.6784)
	assert.InDelta(t, 235, d, 15)
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{North: 48, South: 47, East: -122, West: -123}

	assert.True(t, b.Contains(47.6062, -122.3321))
	assert.False(t, b.Contains(45.5152, -122.6784))
	assert.False(t, b.Contains(47.5, -121.9))
}

func TestBoundsContainsAcrossAntimeridian(t *testing.T) {
	b := Bounds{North: 10, South: -10, East: -170, West: 170}

	assert.True(t, b.Contains(0, 175))
	assert.True(t, b.Contains(0, -175))
	assert.False(t, b.Contains(0, 0))
}

func TestBoundsRadius(t *testing.T) {
	b := Bounds{North: 48, South: 47, East: -122, West: -123}
	r := b.RadiusKm()
	assert.Greater(t, r, 0.0)
	assert.Less(t, r, 100.0)
}
