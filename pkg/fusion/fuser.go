package fusion

import (
	"context"
	"errors"
	"math"

	"github.com/lintang-b-s/metronav/pkg"
	"github.com/lintang-b-s/metronav/pkg/costfunction"
	da "github.com/lintang-b-s/metronav/pkg/datastructure"
	"github.com/lintang-b-s/metronav/pkg/geo"
	"github.com/lintang-b-s/metronav/pkg/network"
	"github.com/lintang-b-s/metronav/pkg/spatialindex"
	"github.com/lintang-b-s/metronav/pkg/util"
	"go.uber.org/zap"
)

// Fuser. merges a StreetNetwork and a TransitNetwork into one CityGraph.
type Fuser struct {
	costFunction costfunction.CostFunction
	numWorkers   int
	log          *zap.Logger
}

func NewFuser(costFunction costfunction.CostFunction, numWorkers int, log *zap.Logger) *Fuser {
	return &Fuser{
		costFunction: costFunction,
		numWorkers:   numWorkers,
		log:          log,
	}
}

// Fuse. builds the CityGraph and the nearest-node index over its street nodes. every access gets one
// street-kind link edge to its nearest street node. all errors are util.ErrBuild.
func (f *Fuser) Fuse(ctx context.Context, street *network.StreetNetwork,
	transit *network.TransitNetwork) (*da.CityGraph, *spatialindex.Rtree, error) {
	if street.IsEmpty() {
		return nil, nil, util.WrapErrorf(nil, util.ErrBuild, "street network is empty")
	}
	if transit.IsEmpty() {
		return nil, nil, util.WrapErrorf(nil, util.ErrBuild, "transit network is empty")
	}

	b := da.NewGraphBuilder(f.costFunction)

	f.log.Info("Fusing street network...", zap.Int("nodes", street.NumberOfNodes()),
		zap.Int("edges", street.NumberOfEdges()))
	streetPoints := make([]spatialindex.NodePoint, 0, len(street.Nodes))
	for _, n := range street.Nodes {
		if !n.Location.IsValid() {
			return nil, nil, util.WrapErrorf(nil, util.ErrBuild, "street node %d has an invalid location", n.ID)
		}
		id := da.StreetNodeID(n.ID)
		if _, ok := b.GetNodeIndex(id); ok {
			continue
		}
		u := b.AddNode(da.NewStreetNode(id, n.Location))
		streetPoints = append(streetPoints, spatialindex.NodePoint{Index: u, ID: id, Location: n.Location})
	}

	dropped := 0
	for _, e := range street.Edges {
		u, okU := b.GetNodeIndex(da.StreetNodeID(e.From))
		v, okV := b.GetNodeIndex(da.StreetNodeID(e.To))
		if !okU || !okV {
			return nil, nil, util.WrapErrorf(nil, util.ErrBuild, "street edge (%d,%d) references an unknown node", e.From, e.To)
		}
		ok, err := f.addEdge(b, u, v, pkg.STREET_EDGE, e.Length, pkg.STREET_EDGE_COLOUR)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			dropped++
		}
	}

	f.log.Info("Fusing transit network...", zap.Int("stations", len(transit.Stations)),
		zap.Int("accesses", len(transit.Accesses)), zap.Int("edges", len(transit.Edges)))
	for _, s := range transit.Stations {
		if !s.Location.IsValid() {
			return nil, nil, util.WrapErrorf(nil, util.ErrBuild, "station %s has an invalid location", s.ID)
		}
		b.AddNode(da.NewStationNode(s.NodeID(), s.Location, s.Name, s.Line, s.Order, s.Colour))
	}
	stationCodes := make(map[string]struct{}, len(transit.Stations))
	for _, s := range transit.Stations {
		stationCodes[s.Code] = struct{}{}
	}
	accessIdx := make([]da.Index, 0, len(transit.Accesses))
	accessLocs := make([]geo.Coordinate, 0, len(transit.Accesses))
	for _, a := range transit.Accesses {
		if !a.Location.IsValid() {
			return nil, nil, util.WrapErrorf(nil, util.ErrBuild, "access %s has an invalid location", a.ID)
		}
		if _, ok := stationCodes[a.StationCode]; !ok {
			return nil, nil, util.WrapErrorf(nil, util.ErrBuild, "access %s has no matching station %s", a.ID, a.StationCode)
		}
		if _, ok := b.GetNodeIndex(a.NodeID()); ok {
			continue
		}
		accessIdx = append(accessIdx, b.AddNode(da.NewAccessNode(a.NodeID(), a.Location, a.Name, a.StationCode, a.Accessibility)))
		accessLocs = append(accessLocs, a.Location)
	}

	for _, e := range transit.Edges {
		u, okU := b.GetNodeIndex(e.From)
		v, okV := b.GetNodeIndex(e.To)
		if !okU || !okV {
			return nil, nil, util.WrapErrorf(nil, util.ErrBuild, "transit edge (%s,%s) references an unknown node", e.From, e.To)
		}
		dist := e.Distance
		if dist <= 0 {
			dist = geo.GreatCircleDistance(b.GetNode(u).GetLocation(), b.GetNode(v).GetLocation())
		}
		// co-located transfers and accesses sitting on their station are kept
		dist = math.Max(dist, pkg.MIN_LINK_DISTANCE)
		ok, err := f.addEdge(b, u, v, e.Kind, dist, e.Colour)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			dropped++
		}
	}

	streetIndex := spatialindex.NewRtree(f.numWorkers)
	streetIndex.Build(streetPoints, f.log)

	f.log.Info("Linking accesses to the street network...", zap.Int("accesses", len(accessIdx)))
	nearest, err := streetIndex.NearestMany(ctx, accessLocs)
	if err != nil {
		return nil, nil, util.WrapErrorf(err, util.ErrBuild, "access has no street match")
	}
	for i, u := range accessIdx {
		dist := math.Max(nearest[i].GetDistance(), pkg.MIN_LINK_DISTANCE)
		if _, err := b.AddEdge(u, nearest[i].GetIndex(), pkg.STREET_EDGE, dist, pkg.LINK_STREET_COLOUR); err != nil {
			return nil, nil, util.WrapErrorf(err, util.ErrBuild, "linking access %s", b.GetNode(u).GetID())
		}
	}

	if dropped > 0 {
		f.log.Warn("dropped degenerate edges", zap.Int("count", dropped))
	}

	g := b.Build()
	if err := ValidateCityGraph(g); err != nil {
		return nil, nil, err
	}

	f.log.Info("City graph built.", zap.Int("nodes", g.NumberOfNodes()),
		zap.Int("edges", g.NumberOfEdges()), zap.Int("components", g.NumberOfComponents()))
	return g, streetIndex, nil
}

// addEdge. false if the edge was a self-loop or had zero length and got dropped.
func (f *Fuser) addEdge(b *da.GraphBuilder, u, v da.Index, kind pkg.EdgeKind, dist float64, colour string) (bool, error) {
	_, err := b.AddEdge(u, v, kind, dist, colour)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, da.ErrSelfLoop), errors.Is(err, da.ErrZeroDistance):
		f.log.Debug("dropping edge", zap.String("kind", kind.String()), zap.Error(err))
		return false, nil
	default:
		return false, util.WrapErrorf(err, util.ErrBuild, "adding %s edge", kind)
	}
}
