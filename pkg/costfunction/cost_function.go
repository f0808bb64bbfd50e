package costfunction

import (
	"github.com/lintang-b-s/metronav/pkg"
)

type EdgeAttributes interface {
	GetKind() pkg.EdgeKind
	GetLength() float64
}

type CostFunction interface {
	GetWeight(e EdgeAttributes) float64
}

// Speed. walking/riding speed in meter/second for an edge kind.
func Speed(kind pkg.EdgeKind) float64 {
	switch kind {
	case pkg.RAILWAY_EDGE:
		return pkg.RAILWAY_SPEED
	case pkg.LINK_EDGE:
		return pkg.LINK_SPEED
	default:
		return pkg.WALK_SPEED
	}
}
