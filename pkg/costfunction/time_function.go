package costfunction

import "github.com/lintang-b-s/metronav/pkg"

type TimeFunction struct {
}

func NewTimeCostFunction() *TimeFunction {
	return &TimeFunction{}
}

// GetWeight. traversal time in seconds
func (tf *TimeFunction) GetWeight(e EdgeAttributes) float64 {
	return TravelTime(e.GetKind(), e.GetLength())
}

func TravelTime(kind pkg.EdgeKind, dist float64) float64 {
	return dist / Speed(kind)
}
