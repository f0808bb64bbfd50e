package spatialindex

import (
	"context"
	"math"

	"github.com/lintang-b-s/metronav/pkg"
	"github.com/lintang-b-s/metronav/pkg/concurrent"
	da "github.com/lintang-b-s/metronav/pkg/datastructure"
	"github.com/lintang-b-s/metronav/pkg/geo"
	"github.com/lintang-b-s/metronav/pkg/util"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

const (
	initialSearchRadius = 50.0      // meter
	maxSearchRadius     = 2_000_000 // meter, past this a linear scan is cheaper
	earthRadiusM        = 6371000.0
	parallelThreshold   = 64
)

// NodePoint. a graph node stored in the index.
type NodePoint struct {
	Index    da.Index
	ID       da.NodeID
	Location geo.Coordinate
}

type NearestResult struct {
	index da.Index
	id    da.NodeID
	dist  float64 // meter
}

func (r NearestResult) GetIndex() da.Index {
	return r.index
}

func (r NearestResult) GetID() da.NodeID {
	return r.id
}

func (r NearestResult) GetDistance() float64 {
	return r.dist
}

// Rtree. NearestNodeIndex over one node set (e.g. the street nodes of the city graph). read-only after Build.
type Rtree struct {
	tr         *rtree.RTreeG[NodePoint]
	points     []NodePoint
	numWorkers int
}

func NewRtree(numWorkers int) *Rtree {
	var tr rtree.RTreeG[NodePoint]
	return &Rtree{
		tr:         &tr,
		points:     make([]NodePoint, 0),
		numWorkers: numWorkers,
	}
}

// Build. inserts every point as a degenerate rectangle.
func (rt *Rtree) Build(points []NodePoint, log *zap.Logger) {
	log.Info("Building R-tree spatial index...", zap.Int("points", len(points)))
	for _, p := range points {
		pt := [2]float64{p.Location.Lon, p.Location.Lat}
		rt.tr.Insert(pt, pt, p)
		rt.points = append(rt.points, p)
	}
	log.Info("R-tree spatial index built.")
}

func (rt *Rtree) Len() int {
	return len(rt.points)
}

// better. strictly closer, or equally close within NEAREST_TIE_EPSILON and a lower id.
func better(dist float64, id da.NodeID, best NearestResult, found bool) bool {
	if !found {
		return true
	}
	if dist < best.dist-pkg.NEAREST_TIE_EPSILON {
		return true
	}
	return math.Abs(dist-best.dist) <= pkg.NEAREST_TIE_EPSILON && id < best.id
}

// searchBox. lon/lat rectangle enclosing the spherical cap of radius meter around q.
func searchBox(q geo.Coordinate, radius float64) ([2]float64, [2]float64) {
	delta := radius / earthRadiusM
	dLat := util.RadiansToDegree(delta) * 1.001
	minLat := math.Max(q.Lat-dLat, -90)
	maxLat := math.Min(q.Lat+dLat, 90)

	minLon, maxLon := -180.0, 180.0
	cosLat := math.Cos(util.DegreeToRadians(q.Lat))
	if delta < math.Pi/2 && cosLat > 0 && math.Sin(delta)/cosLat < 1 && maxLat < 90 && minLat > -90 {
		dLon := util.RadiansToDegree(math.Asin(math.Sin(delta)/cosLat)) * 1.001
		if q.Lon-dLon >= -180 && q.Lon+dLon <= 180 {
			minLon, maxLon = q.Lon-dLon, q.Lon+dLon
		}
	}
	return [2]float64{minLon, minLat}, [2]float64{maxLon, maxLat}
}

// Nearest. closest indexed node to q by haversine distance. ties go to the lowest node id.
func (rt *Rtree) Nearest(q geo.Coordinate) (NearestResult, error) {
	if len(rt.points) == 0 {
		return NearestResult{}, util.WrapErrorf(nil, util.ErrInvalidCoordinate, "nearest node search on an empty network")
	}
	if !q.IsValid() {
		return NearestResult{}, util.WrapErrorf(nil, util.ErrInvalidCoordinate, "invalid coordinate (%v, %v)", q.Lon, q.Lat)
	}

	radius := initialSearchRadius
	for radius <= maxSearchRadius {
		best, found := rt.searchWithinRadius(q, radius)
		if found && best.dist <= radius {
			return best, nil
		}
		if found {
			// something closer than best.dist may sit outside the current box but inside the cap of best.dist
			radius = best.dist
			continue
		}
		radius *= 4
	}
	return rt.linearNearest(q), nil
}

func (rt *Rtree) searchWithinRadius(q geo.Coordinate, radius float64) (NearestResult, bool) {
	lower, upper := searchBox(q, radius)
	var (
		best  NearestResult
		found bool
	)
	rt.tr.Search(lower, upper, func(min, max [2]float64, p NodePoint) bool {
		d := geo.HaversineMeters(q, p.Location)
		if better(d, p.ID, best, found) {
			best = NearestResult{index: p.Index, id: p.ID, dist: d}
			found = true
		}
		return true
	})
	return best, found
}

func (rt *Rtree) linearNearest(q geo.Coordinate) NearestResult {
	var (
		best  NearestResult
		found bool
	)
	for _, p := range rt.points {
		d := geo.HaversineMeters(q, p.Location)
		if better(d, p.ID, best, found) {
			best = NearestResult{index: p.Index, id: p.ID, dist: d}
			found = true
		}
	}
	return best
}

type nearestJob struct {
	res NearestResult
	err error
}

// NearestMany. out[i] is Nearest(points[i]). the first failing point aborts the batch.
func (rt *Rtree) NearestMany(ctx context.Context, points []geo.Coordinate) ([]NearestResult, error) {
	out := make([]NearestResult, len(points))
	if len(points) < parallelThreshold || rt.numWorkers <= 1 {
		for i, p := range points {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			res, err := rt.Nearest(p)
			if err != nil {
				return nil, err
			}
			out[i] = res
		}
		return out, nil
	}

	jobs, err := concurrent.MapOrdered(ctx, rt.numWorkers, points, func(p geo.Coordinate) nearestJob {
		res, err := rt.Nearest(p)
		return nearestJob{res: res, err: err}
	})
	if err != nil {
		return nil, err
	}
	for i, job := range jobs {
		if job.err != nil {
			return nil, job.err
		}
		out[i] = job.res
	}
	return out, nil
}
