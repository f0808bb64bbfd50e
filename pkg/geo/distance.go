package geo

import (
	"math"

	"github.com/lintang-b-s/metronav/pkg/util"
)

// Coordinate. (longitude, latitude) in decimal degrees.
type Coordinate struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func NewCoordinate(lon, lat float64) Coordinate {
	return Coordinate{
		Lon: lon,
		Lat: lat,
	}
}

// IsValid. false for NaN/Inf or values outside the lat/lon ranges.
func (c Coordinate) IsValid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

const (
	earthRadiusKM = 6371.0
	earthRadiusM  = earthRadiusKM * 1000
)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

// CalculateHaversineDistance. calculate haversine distance in km
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = util.DegreeToRadians(latOne)
	longOne = util.DegreeToRadians(longOne)
	latTwo = util.DegreeToRadians(latTwo)
	longTwo = util.DegreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusKM * c
}

// HaversineMeters. haversine distance between two coordinates in meter
func HaversineMeters(a, b Coordinate) float64 {
	return CalculateHaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon) * 1000
}
