package main

import (
	"context"
	"errors"
	"flag"
	"sync/atomic"
	"time"

	"github.com/lintang-b-s/metronav/pkg/engine"
	"github.com/lintang-b-s/metronav/pkg/geo"
	"github.com/lintang-b-s/metronav/pkg/logger"
	"github.com/lintang-b-s/metronav/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

var (
	numQueries = flag.Int("n", 10000, "number of random queries")
	parallel   = flag.Int("parallel", 16, "concurrent queries")
	seed       = flag.Uint64("seed", 0, "random seed, 0 uses the current time")
)

type query struct {
	src geo.Coordinate
	dst geo.Coordinate
}

func RandomCoordinate(bb geo.BoundingBox, rd *rand.Rand) geo.Coordinate {
	lat := bb.GetMinLat() + rd.Float64()*(bb.GetMaxLat()-bb.GetMinLat())
	lon := bb.GetMinLon() + rd.Float64()*(bb.GetMaxLon()-bb.GetMinLon())
	return geo.NewCoordinate(lon, lat)
}

// issues random concurrent queries against the city graph, reports throughput and checks that
// no query endpoint outlives its query.
func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	if err := util.ReadConfig(); err != nil {
		logger.Fatal("reading config", zap.Error(err))
	}

	bounds := geo.NewBoundingBox(viper.GetFloat64("CITY_MIN_LAT"), viper.GetFloat64("CITY_MIN_LON"),
		viper.GetFloat64("CITY_MAX_LAT"), viper.GetFloat64("CITY_MAX_LON"))
	ctx := context.Background()
	re, err := engine.NewEngine(ctx, engine.Config{
		StreetOsmPath:   viper.GetString("STREET_OSM_PATH"),
		StreetCachePath: viper.GetString("STREET_CACHE_PATH"),
		StationsCsvPath: viper.GetString("STATIONS_CSV_PATH"),
		AccessesCsvPath: viper.GetString("ACCESSES_CSV_PATH"),
		NearestWorkers:  viper.GetInt("NEAREST_WORKERS"),
		CityBounds:      bounds,
	}, logger)
	if err != nil {
		logger.Fatal("building city graph", zap.Error(err))
	}
	pe := re.GetPathEngine()
	g := pe.GetGraph()
	nodesBefore, edgesBefore := g.NumberOfNodes(), g.NumberOfEdges()

	s := *seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	rd := rand.New(rand.NewSource(s))
	queries := make([]query, *numQueries)
	for i := range queries {
		queries[i] = query{src: RandomCoordinate(bounds, rd), dst: RandomCoordinate(bounds, rd)}
	}

	var (
		found, noRoute, failed atomic.Int64
		totalTravelTime        atomic.Int64 // seconds
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(*parallel)

	start := time.Now()
	for _, q := range queries {
		q := q
		eg.Go(func() error {
			_, travelTime, err := pe.FindPath(egCtx, q.src, q.dst)
			switch {
			case err == nil:
				found.Add(1)
				totalTravelTime.Add(int64(travelTime))
			case errors.Is(err, util.ErrNoRouteFound):
				noRoute.Add(1)
			default:
				failed.Add(1)
				logger.Warn("query failed", zap.Error(err))
			}
			return nil
		})
	}
	_ = eg.Wait()
	elapsed := time.Since(start)

	avgTravelTime := 0.0
	if found.Load() > 0 {
		avgTravelTime = float64(totalTravelTime.Load()) / float64(found.Load())
	}
	logger.Info("random queries done",
		zap.Int("queries", len(queries)),
		zap.Int64("found", found.Load()),
		zap.Int64("no_route", noRoute.Load()),
		zap.Int64("failed", failed.Load()),
		zap.Duration("elapsed", elapsed),
		zap.Float64("queries_per_second", float64(len(queries))/elapsed.Seconds()),
		zap.Float64("avg_travel_time_minutes", util.SecondsToMinutes(avgTravelTime)))

	if pe.ActiveEndpoints() != 0 || g.NumberOfNodes() != nodesBefore || g.NumberOfEdges() != edgesBefore {
		logger.Fatal("city graph changed by queries",
			zap.Int64("active_endpoints", pe.ActiveEndpoints()),
			zap.Int("nodes", g.NumberOfNodes()), zap.Int("nodes_before", nodesBefore),
			zap.Int("edges", g.NumberOfEdges()), zap.Int("edges_before", edgesBefore))
	}
}
