package datastructure

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/lintang-b-s/metronav/pkg"
	"github.com/lintang-b-s/metronav/pkg/costfunction"
)

var (
	ErrSelfLoop     = errors.New("self-loop edge")
	ErrZeroDistance = errors.New("zero-distance edge")
	ErrUnknownNode  = errors.New("unknown node")
)

// GraphBuilder. mutable adjacency used while fusing the networks. Build freezes it into a CityGraph.
type GraphBuilder struct {
	costFunction costfunction.CostFunction
	nodes        []*Node
	nodeIndex    map[NodeID]Index
	edges        []*Edge
	adj          []map[Index]Index // u -> (v -> edgeId)
}

func NewGraphBuilder(costFunction costfunction.CostFunction) *GraphBuilder {
	return &GraphBuilder{
		costFunction: costFunction,
		nodes:        make([]*Node, 0),
		nodeIndex:    make(map[NodeID]Index),
		edges:        make([]*Edge, 0),
		adj:          make([]map[Index]Index, 0),
	}
}

// AddNode. adds n and returns its index. an already known id keeps its first node.
func (b *GraphBuilder) AddNode(n *Node) Index {
	if u, ok := b.nodeIndex[n.id]; ok {
		return u
	}
	u := Index(len(b.nodes))
	b.nodes = append(b.nodes, n)
	b.nodeIndex[n.id] = u
	b.adj = append(b.adj, make(map[Index]Index))
	return u
}

func (b *GraphBuilder) GetNodeIndex(id NodeID) (Index, bool) {
	u, ok := b.nodeIndex[id]
	return u, ok
}

func (b *GraphBuilder) GetNode(u Index) *Node {
	return b.nodes[u]
}

func (b *GraphBuilder) NumberOfNodes() int {
	return len(b.nodes)
}

func (b *GraphBuilder) NumberOfEdges() int {
	return len(b.edges)
}

// AddEdge. adds the undirected edge (u,v). the graph stays simple: an existing (u,v) edge is replaced
// only if the new one is faster. self-loops and non-positive distances are rejected.
func (b *GraphBuilder) AddEdge(u, v Index, kind pkg.EdgeKind, dist float64, colour string) (Index, error) {
	if int(u) >= len(b.nodes) || int(v) >= len(b.nodes) {
		return INVALID_INDEX, fmt.Errorf("edge (%d,%d): %w", u, v, ErrUnknownNode)
	}
	if u == v {
		return INVALID_INDEX, fmt.Errorf("edge at %s: %w", b.nodes[u].id, ErrSelfLoop)
	}
	if math.IsNaN(dist) || math.IsInf(dist, 0) || dist <= 0 {
		return INVALID_INDEX, fmt.Errorf("edge (%s,%s) distance %v: %w", b.nodes[u].id, b.nodes[v].id, dist, ErrZeroDistance)
	}

	e := &Edge{
		from:   u,
		to:     v,
		kind:   kind,
		dist:   dist,
		colour: colour,
	}
	e.weight = b.costFunction.GetWeight(e)

	if old, ok := b.adj[u][v]; ok {
		if e.weight < b.edges[old].weight {
			e.edgeId = old
			b.edges[old] = e
		}
		return old, nil
	}

	e.edgeId = Index(len(b.edges))
	b.edges = append(b.edges, e)
	b.adj[u][v] = e.edgeId
	b.adj[v][u] = e.edgeId
	return e.edgeId, nil
}

func (b *GraphBuilder) HasEdge(u, v Index) bool {
	_, ok := b.adj[u][v]
	return ok
}

// Build. freezes the builder into a CityGraph. node indices are preserved.
func (b *GraphBuilder) Build() *CityGraph {
	n := len(b.nodes)
	firstOut := make([]Index, n+1)
	for u := 0; u < n; u++ {
		firstOut[u+1] = firstOut[u] + Index(len(b.adj[u]))
	}

	arcs := make([]Arc, firstOut[n])
	for u := 0; u < n; u++ {
		row := arcs[firstOut[u]:firstOut[u+1]]
		i := 0
		for head, edgeId := range b.adj[u] {
			row[i] = Arc{head: head, edgeId: edgeId}
			i++
		}
		sort.Slice(row, func(i, j int) bool {
			return row[i].head < row[j].head
		})
	}

	g := &CityGraph{
		nodes:     b.nodes,
		nodeIndex: b.nodeIndex,
		edges:     b.edges,
		firstOut:  firstOut,
		arcs:      arcs,
	}
	g.computeComponents()
	return g
}
