package osmparser

import (
	"context"
	"io"
	"os"

	"github.com/lintang-b-s/metronav/pkg/geo"
	"github.com/lintang-b-s/metronav/pkg/network"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

var (
	// https://wiki.openstreetmap.org/wiki/Key:highway , ways a pedestrian may walk on
	walkableHighway = map[string]struct{}{
		"primary":        {},
		"primary_link":   {},
		"secondary":      {},
		"secondary_link": {},
		"tertiary":       {},
		"tertiary_link":  {},
		"residential":    {},
		"living_street":  {},
		"unclassified":   {},
		"service":        {},
		"road":           {},
		"track":          {},
		"pedestrian":     {},
		"footway":        {},
		"path":           {},
		"steps":          {},
		"corridor":       {},
		"cycleway":       {},
		"bridleway":      {},
		"elevator":       {},
	}

	forbiddenAccess = map[string]struct{}{
		"no":      {},
		"private": {},
	}
)

type edgeKey struct {
	from int64
	to   int64
}

type OsmParser struct {
	wayNodes     [][]int64
	neededNodes  map[int64]struct{}
	acceptedNode map[int64]geo.Coordinate
}

func NewOsmParser() *OsmParser {
	return &OsmParser{
		wayNodes:     make([][]int64, 0),
		neededNodes:  make(map[int64]struct{}),
		acceptedNode: make(map[int64]geo.Coordinate),
	}
}

// Parse. reads a .osm.pbf extract into an undirected pedestrian StreetNetwork. edge length is the
// haversine length of each way segment. a segment that repeats keeps its shortest length.
func (p *OsmParser) Parse(ctx context.Context, mapFile string, logger *zap.Logger) (*network.StreetNetwork, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// pbf stores nodes before ways, so first collect the walkable ways, then their node coordinates.
	scanner := osmpbf.New(ctx, f, 0)
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	countWays := 0
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok || len(way.Nodes) < 2 || !acceptOsmWay(way) {
			continue
		}
		if (countWays+1)%50000 == 0 {
			logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
		}
		countWays++

		nodes := make([]int64, 0, len(way.Nodes))
		for _, n := range way.Nodes {
			nodes = append(nodes, int64(n.ID))
			p.neededNodes[int64(n.ID)] = struct{}{}
		}
		p.wayNodes = append(p.wayNodes, nodes)
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, err
	}
	scanner.Close()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	scanner = osmpbf.New(ctx, f, 0)
	scanner.SkipWays = true
	scanner.SkipRelations = true
	defer scanner.Close()
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := p.neededNodes[int64(node.ID)]; needed {
			p.acceptedNode[int64(node.ID)] = geo.NewCoordinate(node.Lon, node.Lat)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sn := p.buildStreetNetwork()
	logger.Info("street network parsed",
		zap.Int("ways", countWays),
		zap.Int("nodes", sn.NumberOfNodes()),
		zap.Int("edges", sn.NumberOfEdges()))
	return sn, nil
}

func (p *OsmParser) buildStreetNetwork() *network.StreetNetwork {
	nodes := make([]network.StreetNode, 0, len(p.acceptedNode))
	used := make(map[int64]struct{}, len(p.acceptedNode))
	edgeIndex := make(map[edgeKey]int)
	edges := make([]network.StreetEdge, 0)

	for _, way := range p.wayNodes {
		for i := 1; i < len(way); i++ {
			from, to := way[i-1], way[i]
			fromLoc, okFrom := p.acceptedNode[from]
			toLoc, okTo := p.acceptedNode[to]
			if !okFrom || !okTo || from == to {
				// node outside the extract bounds
				continue
			}

			length := geo.HaversineMeters(fromLoc, toLoc)
			key := edgeKey{from: min(from, to), to: max(from, to)}
			if idx, ok := edgeIndex[key]; ok {
				if length < edges[idx].Length {
					edges[idx].Length = length
				}
				continue
			}
			edgeIndex[key] = len(edges)
			edges = append(edges, network.StreetEdge{From: from, To: to, Length: length})

			for _, id := range [2]int64{from, to} {
				if _, ok := used[id]; !ok {
					used[id] = struct{}{}
					nodes = append(nodes, network.StreetNode{ID: id, Location: p.acceptedNode[id]})
				}
			}
		}
	}
	return network.NewStreetNetwork(nodes, edges)
}

func acceptOsmWay(way *osm.Way) bool {
	if way.Tags.Find("area") == "yes" {
		return false
	}
	if _, ok := forbiddenAccess[way.Tags.Find("foot")]; ok {
		return false
	}
	if _, ok := forbiddenAccess[way.Tags.Find("access")]; ok && way.Tags.Find("foot") == "" {
		return false
	}
	highway := way.Tags.Find("highway")
	if highway == "" {
		return false
	}
	_, ok := walkableHighway[highway]
	return ok
}
