package controllers

import (
	"context"

	"github.com/lintang-b-s/metronav/pkg/datastructure"
)

type RoutingService interface {
	ShortestPath(ctx context.Context, origLat, origLon, dstLat, dstLon float64) (*datastructure.Path, string, error)
}
