package geo

import (
	"github.com/golang/geo/s2"
)

// GreatCircleDistance. great-circle distance in meter on the unit sphere scaled by the earth radius.
func GreatCircleDistance(a, b Coordinate) float64 {
	la := s2.LatLngFromDegrees(a.Lat, a.Lon)
	lb := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return la.Distance(lb).Radians() * earthRadiusM
}
