package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxAround(t *testing.T) {
	box := BoxAround(34.03, -5.0, 50)

	assert.InDelta(t, 34.03, (box.MinLat+box.MaxLat)/2, 1e-9)
	assert.InDelta(t, -5.0, (box.MinLon+box.MaxLon)/2, 1e-9)
	assert.InDelta(t, 50.0/111.0, (box.MaxLat-box.MinLat)/2, 1e-9)

	// Longitude degrees shrink with latitude, so the lon half-range must
	// exceed the lat half-range away from the equator.
	assert.Greater(t, (box.MaxLon-box.MinLon)/2, (box.MaxLat-box.MinLat)/2)
}

func TestBoxAround_PoleClamp(t *testing.T) {
	box := BoxAround(90, 0, 10)
	assert.Equal(t, -180.0, box.MinLon)
	assert.Equal(t, 180.0, box.MaxLon)
}

func TestBoundingBox_Contains(t *testing.T) {
	box := BoxAround(34.03, -5.0, 50)

	assert.True(t, box.Contains(34.03, -5.0))
	assert.True(t, box.Contains(34.2, -5.1))
	assert.False(t, box.Contains(48.85, 2.35))
	assert.False(t, box.Contains(34.03, -6.5))
}

func TestHaversineKm(t *testing.T) {
	assert.Zero(t, HaversineKm(34.03, -5.0, 34.03, -5.0))

	// Fès to Meknès is roughly 53 km.
	d := HaversineKm(34.03, -5.0, 33.89, -5.55)
	assert.InDelta(t, 53, d, 3)

	// One degree of latitude is about 111 km.
	assert.InDelta(t, 111, HaversineKm(0, 0, 1, 0), 1)
}
