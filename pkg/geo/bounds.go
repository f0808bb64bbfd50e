package geo

// BoundingBox. city bounds in decimal degrees.
type BoundingBox struct {
	minLat, minLon float64
	maxLat, maxLon float64
}

func NewBoundingBox(minLat, minLon, maxLat, maxLon float64) BoundingBox {
	return BoundingBox{minLat: minLat,
		minLon: minLon,
		maxLat: maxLat,
		maxLon: maxLon}
}

// WorldBoundingBox. accepts every valid coordinate.
func WorldBoundingBox() BoundingBox {
	return NewBoundingBox(-90, -180, 90, 180)
}

func (b BoundingBox) Contains(c Coordinate) bool {
	if !c.IsValid() {
		return false
	}
	return c.Lat >= b.minLat && c.Lat <= b.maxLat && c.Lon >= b.minLon && c.Lon <= b.maxLon
}

func (b BoundingBox) GetMinLat() float64 {
	return b.minLat
}

func (b BoundingBox) GetMinLon() float64 {
	return b.minLon
}

func (b BoundingBox) GetMaxLat() float64 {
	return b.maxLat
}

func (b BoundingBox) GetMaxLon() float64 {
	return b.maxLon
}
