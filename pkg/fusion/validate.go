package fusion

import (
	"math"

	"github.com/lintang-b-s/metronav/pkg"
	"github.com/lintang-b-s/metronav/pkg/costfunction"
	da "github.com/lintang-b-s/metronav/pkg/datastructure"
	"github.com/lintang-b-s/metronav/pkg/util"
)

const weightTolerance = 1e-9

// ValidateCityGraph. checks the build invariants of a fused graph:
//   - every edge has positive length, no self-loop, and weight == length/speed(kind).
//   - every access has an access edge to a station and a street-kind edge to a street node.
//   - every station has at least one edge inside the transit network.
func ValidateCityGraph(g *da.CityGraph) error {
	var err error
	g.ForEdges(func(e *da.Edge) {
		if err != nil {
			return
		}
		if e.GetFrom() == e.GetTo() {
			err = util.WrapErrorf(nil, util.ErrBuild, "self-loop at %s", g.GetNode(e.GetFrom()).GetID())
			return
		}
		if !(e.GetLength() > 0) {
			err = util.WrapErrorf(nil, util.ErrBuild, "edge %d has non-positive length", e.GetEdgeId())
			return
		}
		want := costfunction.TravelTime(e.GetKind(), e.GetLength())
		if math.Abs(e.GetWeight()-want) > weightTolerance*math.Max(1, want) {
			err = util.WrapErrorf(nil, util.ErrBuild, "edge %d weight %v, want %v", e.GetEdgeId(), e.GetWeight(), want)
		}
	})
	if err != nil {
		return err
	}

	g.ForNodes(func(u da.Index, n *da.Node) {
		if err != nil {
			return
		}
		switch n.GetKind() {
		case pkg.ACCESS_NODE:
			toStation, toStreet := false, false
			g.ForOutEdgesOf(u, func(e *da.Edge, head da.Index) {
				headKind := g.GetNode(head).GetKind()
				if e.GetKind() == pkg.ACCESS_EDGE && headKind == pkg.STATION_NODE {
					toStation = true
				}
				if e.GetKind() == pkg.STREET_EDGE && headKind == pkg.STREET_NODE {
					toStreet = true
				}
			})
			if !toStation {
				err = util.WrapErrorf(nil, util.ErrBuild, "access %s has no access edge to its station", n.GetID())
			} else if !toStreet {
				err = util.WrapErrorf(nil, util.ErrBuild, "access %s has no street match", n.GetID())
			}
		case pkg.STATION_NODE:
			transit := false
			g.ForOutEdgesOf(u, func(e *da.Edge, head da.Index) {
				if g.GetNode(head).GetKind() != pkg.STREET_NODE {
					transit = true
				}
			})
			if !transit {
				err = util.WrapErrorf(nil, util.ErrBuild, "station %s has no edges", n.GetID())
			}
		}
	})
	return err
}
