package routing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lintang-b-s/metronav/pkg/costfunction"
	da "github.com/lintang-b-s/metronav/pkg/datastructure"
	"github.com/lintang-b-s/metronav/pkg/geo"
	"github.com/lintang-b-s/metronav/pkg/spatialindex"
	"github.com/lintang-b-s/metronav/pkg/util"
	"go.uber.org/zap"
)

// PathEngine. answers fastest foot+transit path queries over one long-lived CityGraph.
// every query works on its own QueryOverlay, so FindPath is safe for concurrent use.
type PathEngine struct {
	graph        *da.CityGraph
	streetIndex  *spatialindex.Rtree
	costFunction costfunction.CostFunction
	bounds       geo.BoundingBox
	registry     *da.EndpointRegistry
	bufPool      sync.Pool
	logger       *zap.Logger
}

func NewPathEngine(graph *da.CityGraph, streetIndex *spatialindex.Rtree, costFunction costfunction.CostFunction,
	bounds geo.BoundingBox, logger *zap.Logger) *PathEngine {
	return &PathEngine{
		graph:        graph,
		streetIndex:  streetIndex,
		costFunction: costFunction,
		bounds:       bounds,
		registry:     da.NewEndpointRegistry(),
		bufPool: sync.Pool{
			New: func() any {
				return newSearchStorage()
			},
		},
		logger: logger,
	}
}

func (pe *PathEngine) GetGraph() *da.CityGraph {
	return pe.graph
}

func (pe *PathEngine) GetStreetIndex() *spatialindex.Rtree {
	return pe.streetIndex
}

// ActiveEndpoints. endpoint pairs currently attached by running queries.
func (pe *PathEngine) ActiveEndpoints() int64 {
	return pe.registry.Active()
}

// RenewEndpoints. p with a fresh endpoint identity pair, for a result served again to another caller.
func (pe *PathEngine) RenewEndpoints(p *da.Path) *da.Path {
	src, dst := pe.registry.NextEndpointIDs()
	return p.WithEndpointIDs(src, dst)
}

// FindPath. fastest path from src to dst and its travel time in seconds.
// errors carry util.ErrInvalidCoordinate, util.ErrNoRouteFound or util.ErrInternalSearch.
// the query endpoints are detached on every return path.
func (pe *PathEngine) FindPath(ctx context.Context, src, dst geo.Coordinate) (path *da.Path, travelTime float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			pe.logger.Error("path search panicked", zap.Any("panic", r))
			path, travelTime = nil, 0
			err = util.WrapErrorf(fmt.Errorf("%v", r), util.ErrInternalSearch, "path search failed")
		}
	}()

	for _, c := range [2]geo.Coordinate{src, dst} {
		if !c.IsValid() || !pe.bounds.Contains(c) {
			return nil, 0, util.WrapErrorf(nil, util.ErrInvalidCoordinate,
				"coordinate (%v, %v) is outside the city bounds", c.Lon, c.Lat)
		}
	}

	// index 0 is the source, index 1 the destination
	nearest, err := pe.streetIndex.NearestMany(ctx, []geo.Coordinate{src, dst})
	if err != nil {
		if errors.Is(err, util.ErrInvalidCoordinate) {
			return nil, 0, err
		}
		return nil, 0, util.WrapErrorf(err, util.ErrInternalSearch, "nearest street node search failed")
	}
	srcNearest, dstNearest := nearest[0], nearest[1]

	overlay := pe.registry.Acquire(pe.graph, pe.costFunction,
		da.Attachment{Location: src, StreetNode: srcNearest.GetIndex(), Distance: srcNearest.GetDistance()},
		da.Attachment{Location: dst, StreetNode: dstNearest.GetIndex(), Distance: dstNearest.GetDistance()},
	)
	defer overlay.Release()

	if !pe.graph.Connected(srcNearest.GetIndex(), dstNearest.GetIndex()) {
		pe.logger.Debug("source and destination are in different components",
			zap.Float64("src_lon", src.Lon), zap.Float64("src_lat", src.Lat),
			zap.Float64("dst_lon", dst.Lon), zap.Float64("dst_lat", dst.Lat))
		return nil, 0, util.WrapErrorf(nil, util.ErrNoRouteFound, "no route from (%v, %v) to (%v, %v)",
			src.Lon, src.Lat, dst.Lon, dst.Lat)
	}

	storage := pe.bufPool.Get().(*searchStorage)
	defer func() {
		storage.reset()
		pe.bufPool.Put(storage)
	}()

	s, t := overlay.SourceIndex(), overlay.DestinationIndex()
	dijkstra := NewDijkstra(overlay, storage)
	found, err := dijkstra.ShortestPath(ctx, s, t)
	if err != nil {
		return nil, 0, util.WrapErrorf(err, util.ErrInternalSearch, "path search aborted")
	}
	if !found {
		return nil, 0, util.WrapErrorf(nil, util.ErrNoRouteFound, "no route from (%v, %v) to (%v, %v)",
			src.Lon, src.Lat, dst.Lon, dst.Lat)
	}

	path = dijkstra.RetrievePath(s, t)
	pe.logger.Debug("path found", zap.Int("settled", dijkstra.GetNumSettledNodes()),
		zap.Int("nodes", len(path.GetNodes())), zap.Float64("travel_time", path.GetTravelTime()))
	return path, path.GetTravelTime(), nil
}
