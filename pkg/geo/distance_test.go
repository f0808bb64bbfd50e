package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversine(t *testing.T) {
	testCases := []struct {
		name string
		a, b Coordinate
		want float64 // meter
	}{
		{name: "same point", a: NewCoordinate(2.17, 41.38), b: NewCoordinate(2.17, 41.38), want: 0},
		{name: "0.001 degree of longitude at the equator", a: NewCoordinate(0, 0), b: NewCoordinate(0.001, 0), want: 111.19},
		{name: "0.001 degree of latitude", a: NewCoordinate(0, 0), b: NewCoordinate(0, 0.001), want: 111.19},
		{name: "half meridian", a: NewCoordinate(0, -90), b: NewCoordinate(0, 90), want: math.Pi * earthRadiusM},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, HaversineMeters(tt.a, tt.b), 0.01)
			assert.InDelta(t, HaversineMeters(tt.a, tt.b), HaversineMeters(tt.b, tt.a), 1e-9)
			assert.InDelta(t, tt.want, GreatCircleDistance(tt.a, tt.b), 0.01)
		})
	}
}

func TestCoordinateIsValid(t *testing.T) {
	assert.True(t, NewCoordinate(2.17, 41.38).IsValid())
	assert.True(t, NewCoordinate(-180, -90).IsValid())
	assert.False(t, NewCoordinate(0, 91).IsValid())
	assert.False(t, NewCoordinate(181, 0).IsValid())
	assert.False(t, NewCoordinate(math.NaN(), 0).IsValid())
	assert.False(t, NewCoordinate(0, math.Inf(-1)).IsValid())
}

func TestBoundingBox(t *testing.T) {
	bb := NewBoundingBox(41.30, 2.05, 41.48, 2.25)
	assert.True(t, bb.Contains(NewCoordinate(2.17, 41.38)))
	assert.False(t, bb.Contains(NewCoordinate(2.17, 40.0)))
	assert.False(t, bb.Contains(NewCoordinate(math.NaN(), 41.38)))
	assert.True(t, WorldBoundingBox().Contains(NewCoordinate(0, 0)))
}

func TestPolyline(t *testing.T) {
	path := []Coordinate{
		NewCoordinate(-120.2, 38.5),
		NewCoordinate(-120.95, 40.7),
		NewCoordinate(-126.453, 43.252),
	}
	encoded := PolylineFromCoords(path)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", encoded)

	decoded, err := CoordsFromPolyline(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, len(path))
	for i := range path {
		assert.InDelta(t, path[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, path[i].Lon, decoded[i].Lon, 1e-5)
	}
}
