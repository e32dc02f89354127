// Package geo provides the coarse distance math used by the nearby-user
// locator. A degree of latitude is treated as 111 km; longitude degrees
// shrink with the cosine of the latitude.
package geo

import "math"

const (
	earthRadiusKm = 6371.0
	kmPerDegree   = 111.0
)

// BoundingBox is a lat/lon rectangle around a center point.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// BoxAround returns the bounding box covering radiusKm around the center.
// Near the poles the longitude range degenerates; the box is clamped to
// the full longitude span in that case.
func BoxAround(lat, lon, radiusKm float64) BoundingBox {
	latRange := radiusKm / kmPerDegree

	cosLat := math.Cos(lat * math.Pi / 180)
	var lonRange float64
	if cosLat < 1e-6 {
		lonRange = 180
	} else {
		lonRange = radiusKm / (kmPerDegree * cosLat)
	}

	return BoundingBox{
		MinLat: lat - latRange,
		MaxLat: lat + latRange,
		MinLon: lon - lonRange,
		MaxLon: lon + lonRange,
	}
}

// Contains reports whether the point falls inside the box.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// HaversineKm returns the great-circle distance between two points in
// kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
