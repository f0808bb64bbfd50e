package datastructure

import (
	"github.com/lintang-b-s/metronav/pkg"
)

// Graph. read view used by the path search. implemented by the frozen CityGraph and by QueryOverlay.
type Graph interface {
	NumberOfNodes() int
	NumberOfEdges() int
	GetNode(u Index) *Node
	GetEdge(e Index) *Edge
	GetNodeIndex(id NodeID) (Index, bool)
	FindEdge(u, v Index) (*Edge, bool)
	ForOutEdgesOf(u Index, handle func(e *Edge, head Index))
}

// CityGraph. fused, undirected, simple graph of street and transit nodes. static once built
// (i.e. can't add new nodes or edges), safe for concurrent reads.
type CityGraph struct {
	nodes     []*Node
	nodeIndex map[NodeID]Index
	edges     []*Edge

	firstOut []Index // firstOut[u]..firstOut[u+1] is the adjacency of u in arcs
	arcs     []Arc

	// connected components
	components    []Index // nodeId -> componentId
	numComponents int
}

func (g *CityGraph) NumberOfNodes() int {
	return len(g.nodes)
}

func (g *CityGraph) NumberOfEdges() int {
	return len(g.edges)
}

func (g *CityGraph) GetNode(u Index) *Node {
	return g.nodes[u]
}

func (g *CityGraph) GetEdge(e Index) *Edge {
	return g.edges[e]
}

func (g *CityGraph) GetNodeIndex(id NodeID) (Index, bool) {
	u, ok := g.nodeIndex[id]
	return u, ok
}

func (g *CityGraph) GetDegree(u Index) Index {
	return g.firstOut[u+1] - g.firstOut[u]
}

func (g *CityGraph) ForOutEdgesOf(u Index, handle func(e *Edge, head Index)) {
	for i := g.firstOut[u]; i < g.firstOut[u+1]; i++ {
		arc := g.arcs[i]
		handle(g.edges[arc.edgeId], arc.head)
	}
}

// FindEdge. adjacency of u is sorted by head, so this is a binary search.
func (g *CityGraph) FindEdge(u, v Index) (*Edge, bool) {
	if int(u) >= len(g.nodes) || int(v) >= len(g.nodes) {
		return nil, false
	}
	lo, hi := g.firstOut[u], g.firstOut[u+1]
	for lo < hi {
		mid := lo + (hi-lo)/2
		if g.arcs[mid].head < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < g.firstOut[u+1] && g.arcs[lo].head == v {
		return g.edges[g.arcs[lo].edgeId], true
	}
	return nil, false
}

func (g *CityGraph) ForNodes(handle func(u Index, n *Node)) {
	for u, n := range g.nodes {
		handle(Index(u), n)
	}
}

func (g *CityGraph) ForEdges(handle func(e *Edge)) {
	for _, e := range g.edges {
		handle(e)
	}
}

func (g *CityGraph) NodesOfKind(kind pkg.NodeKind) []Index {
	ids := make([]Index, 0)
	for u, n := range g.nodes {
		if n.kind == kind {
			ids = append(ids, Index(u))
		}
	}
	return ids
}

func (g *CityGraph) GetComponent(u Index) Index {
	return g.components[u]
}

func (g *CityGraph) NumberOfComponents() int {
	return g.numComponents
}

// Connected. true if u and v are in the same connected component.
func (g *CityGraph) Connected(u, v Index) bool {
	return g.components[u] == g.components[v]
}
