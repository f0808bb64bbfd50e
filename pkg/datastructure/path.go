package datastructure

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/metronav/pkg"
	"github.com/lintang-b-s/metronav/pkg/geo"
)

var ErrNotAdjacent = errors.New("consecutive path nodes are not adjacent")

// Path. ordered node sequence from the source endpoint to the destination endpoint. edges[i] joins
// nodes[i] and nodes[i+1]. it stays valid after the query overlay is released.
type Path struct {
	nodes      []*Node
	edges      []*Edge
	travelTime float64 // second
	distance   float64 // meter
}

func NewPath(nodes []*Node, edges []*Edge) *Path {
	p := &Path{nodes: nodes, edges: edges}
	for _, e := range edges {
		p.travelTime += e.weight
		p.distance += e.dist
	}
	return p
}

func (p *Path) GetNodes() []*Node {
	return p.nodes
}

func (p *Path) GetEdges() []*Edge {
	return p.edges
}

func (p *Path) GetNodeIDs() []NodeID {
	ids := make([]NodeID, len(p.nodes))
	for i, n := range p.nodes {
		ids[i] = n.id
	}
	return ids
}

func (p *Path) GetTravelTime() float64 {
	return p.travelTime
}

func (p *Path) GetDistance() float64 {
	return p.distance
}

func (p *Path) GetCoordinates() []geo.Coordinate {
	coords := make([]geo.Coordinate, len(p.nodes))
	for i, n := range p.nodes {
		coords[i] = n.location
	}
	return coords
}

func (p *Path) Source() *Node {
	return p.nodes[0]
}

func (p *Path) Destination() *Node {
	return p.nodes[len(p.nodes)-1]
}

// WithEndpointIDs. copy of p whose endpoint nodes carry src and dst. edges and inner nodes are shared.
func (p *Path) WithEndpointIDs(src, dst NodeID) *Path {
	nodes := make([]*Node, len(p.nodes))
	copy(nodes, p.nodes)
	renew := func(i int, id NodeID) {
		if n := nodes[i]; n.kind == pkg.ENDPOINT_NODE {
			nodes[i] = NewEndpointNode(id, n.location)
		}
	}
	if len(nodes) > 0 {
		renew(0, src)
		renew(len(nodes)-1, dst)
	}
	return &Path{
		nodes:      nodes,
		edges:      p.edges,
		travelTime: p.travelTime,
		distance:   p.distance,
	}
}

// PathTime. sum of edge travel times along ids in g.
func PathTime(g Graph, ids []NodeID) (float64, error) {
	total := 0.0
	for i := 1; i < len(ids); i++ {
		u, ok := g.GetNodeIndex(ids[i-1])
		if !ok {
			return 0, fmt.Errorf("node %s: %w", ids[i-1], ErrUnknownNode)
		}
		v, ok := g.GetNodeIndex(ids[i])
		if !ok {
			return 0, fmt.Errorf("node %s: %w", ids[i], ErrUnknownNode)
		}
		e, ok := g.FindEdge(u, v)
		if !ok {
			return 0, fmt.Errorf("%s -> %s: %w", ids[i-1], ids[i], ErrNotAdjacent)
		}
		total += e.weight
	}
	return total, nil
}
