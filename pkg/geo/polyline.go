package geo

import (
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords. google encoded polyline, points in (lat, lon) order.
func PolylineFromCoords(path []Coordinate) string {
	coords := make([][]float64, 0, len(path))
	for _, c := range path {
		coords = append(coords, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}

func CoordsFromPolyline(encoded string) ([]Coordinate, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	path := make([]Coordinate, 0, len(coords))
	for _, c := range coords {
		path = append(path, NewCoordinate(c[1], c[0]))
	}
	return path, nil
}
