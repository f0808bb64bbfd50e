package datastructure

import (
	"sync/atomic"

	"github.com/lintang-b-s/metronav/pkg"
	"github.com/lintang-b-s/metronav/pkg/costfunction"
	"github.com/lintang-b-s/metronav/pkg/geo"
)

const (
	SOURCE_ROLE      = "source"
	DESTINATION_ROLE = "destination"
)

// Attachment. where a query coordinate joins the street network.
type Attachment struct {
	Location   geo.Coordinate
	StreetNode Index
	Distance   float64 // meter, from Location to StreetNode
}

// EndpointRegistry. hands out unique endpoint identities and counts the overlays still attached.
type EndpointRegistry struct {
	seq    atomic.Uint64
	active atomic.Int64
}

func NewEndpointRegistry() *EndpointRegistry {
	return &EndpointRegistry{}
}

// Active. number of endpoint pairs acquired and not yet released.
func (r *EndpointRegistry) Active() int64 {
	return r.active.Load()
}

// NextEndpointIDs. a fresh source/destination identity pair that is not attached to any overlay.
func (r *EndpointRegistry) NextEndpointIDs() (NodeID, NodeID) {
	seq := r.seq.Add(1)
	return EndpointNodeID(SOURCE_ROLE, seq), EndpointNodeID(DESTINATION_ROLE, seq)
}

// Acquire. builds a QueryOverlay over base with a fresh source/destination endpoint pair.
// the caller must Release it on every exit path.
func (r *EndpointRegistry) Acquire(base *CityGraph, cf costfunction.CostFunction, src, dst Attachment) *QueryOverlay {
	srcID, dstID := r.NextEndpointIDs()
	n := Index(base.NumberOfNodes())
	m := Index(base.NumberOfEdges())

	o := &QueryOverlay{
		base:      base,
		registry:  r,
		srcStreet: src.StreetNode,
		dstStreet: dst.StreetNode,
	}
	o.nodes[0] = NewEndpointNode(srcID, src.Location)
	o.nodes[1] = NewEndpointNode(dstID, dst.Location)
	o.edges[0] = newEndpointEdge(m, n, src.StreetNode, src.Distance, cf)
	o.edges[1] = newEndpointEdge(m+1, n+1, dst.StreetNode, dst.Distance, cf)

	r.active.Add(1)
	return o
}

func newEndpointEdge(edgeId, endpoint, street Index, dist float64, cf costfunction.CostFunction) *Edge {
	e := &Edge{
		edgeId: edgeId,
		from:   endpoint,
		to:     street,
		kind:   pkg.STREET_EDGE,
		dist:   dist,
		colour: pkg.ENDPOINT_EDGE_COLOUR,
	}
	e.weight = cf.GetWeight(e)
	return e
}

// QueryOverlay. read-only view of a CityGraph plus one query's two endpoint nodes (indices n and n+1)
// and their two street-kind edges (ids m and m+1). nothing in base is mutated, so concurrent queries
// never see each other's endpoints.
type QueryOverlay struct {
	base      *CityGraph
	registry  *EndpointRegistry
	nodes     [2]*Node
	edges     [2]*Edge
	srcStreet Index
	dstStreet Index
	released  atomic.Bool
}

func (o *QueryOverlay) SourceIndex() Index {
	return Index(o.base.NumberOfNodes())
}

func (o *QueryOverlay) DestinationIndex() Index {
	return Index(o.base.NumberOfNodes()) + 1
}

func (o *QueryOverlay) SourceID() NodeID {
	return o.nodes[0].id
}

func (o *QueryOverlay) DestinationID() NodeID {
	return o.nodes[1].id
}

// Release. detaches the endpoints. safe to call more than once.
func (o *QueryOverlay) Release() {
	if o.released.CompareAndSwap(false, true) {
		o.registry.active.Add(-1)
	}
}

func (o *QueryOverlay) Released() bool {
	return o.released.Load()
}

func (o *QueryOverlay) NumberOfNodes() int {
	return o.base.NumberOfNodes() + 2
}

func (o *QueryOverlay) NumberOfEdges() int {
	return o.base.NumberOfEdges() + 2
}

func (o *QueryOverlay) GetNode(u Index) *Node {
	n := Index(o.base.NumberOfNodes())
	if u >= n {
		return o.nodes[u-n]
	}
	return o.base.GetNode(u)
}

func (o *QueryOverlay) GetEdge(e Index) *Edge {
	m := Index(o.base.NumberOfEdges())
	if e >= m {
		return o.edges[e-m]
	}
	return o.base.GetEdge(e)
}

func (o *QueryOverlay) GetNodeIndex(id NodeID) (Index, bool) {
	switch id {
	case o.nodes[0].id:
		return o.SourceIndex(), true
	case o.nodes[1].id:
		return o.DestinationIndex(), true
	}
	return o.base.GetNodeIndex(id)
}

func (o *QueryOverlay) FindEdge(u, v Index) (*Edge, bool) {
	for _, e := range o.edges {
		if (e.from == u && e.to == v) || (e.from == v && e.to == u) {
			return e, true
		}
	}
	n := Index(o.base.NumberOfNodes())
	if u >= n || v >= n {
		return nil, false
	}
	return o.base.FindEdge(u, v)
}

func (o *QueryOverlay) ForOutEdgesOf(u Index, handle func(e *Edge, head Index)) {
	n := Index(o.base.NumberOfNodes())
	if u >= n {
		e := o.edges[u-n]
		handle(e, e.to)
		return
	}

	o.base.ForOutEdgesOf(u, handle)
	if u == o.srcStreet {
		handle(o.edges[0], o.edges[0].from)
	}
	if u == o.dstStreet {
		handle(o.edges[1], o.edges[1].from)
	}
}
