package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/bluele/gcache"
	"github.com/lintang-b-s/metronav/pkg/datastructure"
	"github.com/lintang-b-s/metronav/pkg/geo"
	"github.com/lintang-b-s/metronav/pkg/util"
	"go.uber.org/zap"
)

// cacheKeyPrecision. coordinates are rounded to ~0.1 m before they key the route cache.
const cacheKeyPrecision = 6

type PathFinder interface {
	FindPath(ctx context.Context, src, dst geo.Coordinate) (*datastructure.Path, float64, error)
	RenewEndpoints(p *datastructure.Path) *datastructure.Path
}

type routeKey struct {
	origLat, origLon, dstLat, dstLon float64
}

type routeEntry struct {
	path     *datastructure.Path
	polyline string
}

type RoutingService struct {
	log        *zap.Logger
	pathFinder PathFinder
	cache      gcache.Cache
}

// NewRoutingService. cacheSize <= 0 disables the route cache. entries are evicted lru and expire after ttl
// (ttl <= 0 keeps them until evicted).
func NewRoutingService(log *zap.Logger, pathFinder PathFinder, cacheSize int, ttl time.Duration) *RoutingService {
	rs := &RoutingService{
		log:        log,
		pathFinder: pathFinder,
	}
	if cacheSize > 0 {
		builder := gcache.New(cacheSize).LRU()
		if ttl > 0 {
			builder = builder.Expiration(ttl)
		}
		rs.cache = builder.Build()
	}
	return rs
}

// ShortestPath. fastest path plus its encoded polyline. successful results are cached, failures never are.
func (rs *RoutingService) ShortestPath(ctx context.Context, origLat, origLon, dstLat, dstLon float64) (*datastructure.Path, string, error) {
	key := routeKey{
		origLat: util.RoundFloat(origLat, cacheKeyPrecision),
		origLon: util.RoundFloat(origLon, cacheKeyPrecision),
		dstLat:  util.RoundFloat(dstLat, cacheKeyPrecision),
		dstLon:  util.RoundFloat(dstLon, cacheKeyPrecision),
	}
	if rs.cache != nil {
		if cached, err := rs.cache.Get(key); err == nil {
			entry := cached.(routeEntry)
			// every caller gets its own endpoint identities
			return rs.pathFinder.RenewEndpoints(entry.path), entry.polyline, nil
		}
	}

	path, _, err := rs.pathFinder.FindPath(ctx, geo.NewCoordinate(origLon, origLat), geo.NewCoordinate(dstLon, dstLat))
	if err != nil {
		if errors.Is(err, util.ErrInternalSearch) {
			rs.log.Error("path search failed", zap.Error(err))
		} else {
			rs.log.Debug("no path", zap.Float64("origin_lat", origLat), zap.Float64("origin_lon", origLon),
				zap.Float64("destination_lat", dstLat), zap.Float64("destination_lon", dstLon), zap.Error(err))
		}
		return nil, "", err
	}

	polyline := geo.PolylineFromCoords(path.GetCoordinates())
	if rs.cache != nil {
		_ = rs.cache.Set(key, routeEntry{path: path, polyline: polyline})
	}
	return path, polyline, nil
}
