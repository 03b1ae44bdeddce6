package client

import "math"

const earthRadiusKm = 6371.0

// Bounds is a map viewport expressed as its corner latitudes and longitudes.
type Bounds struct {
	North float64
	South float64
	East  float64
	West  float64
}

// Contains reports whether a point lies inside the viewport.
func (b Bounds) Contains(lat, lng float64) bool {
	if lat > b.North || lat < b.South {
		return false
	}
	if b.West <= b.East {
		return lng >= b.West && lng <= b.East
	}
	// viewport crosses the antimeridian
	return lng >= b.West || lng <= b.East
}

// Center returns the midpoint of the viewport.
func (b Bounds) Center() (lat, lng float64) {
	lat = (b.North + b.South) / 2
	lng = (b.West + b.East) / 2
	if b.West > b.East {
		lng = math.Mod(lng+180, 360)
	}
	return lat, lng
}

// RadiusKm returns the distance from the viewport center to its
// north-east corner.
func (b Bounds) RadiusKm() float64 {
	lat, lng := b.Center()
	return HaversineKm(lat, lng, b.North, b.East)
}

// HaversineKm computes the great-circle distance between two points
// in kilometers.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const degToRad = math.Pi / 180
	dLat := (lat2 - lat1) * degToRad
	dLng := (lng2 - lng1) * degToRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
