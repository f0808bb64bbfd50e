package datastructure

import (
	"github.com/lintang-b-s/metronav/pkg"
)

// Edge. undirected edge between from and to. weight is the traversal time in seconds, derived once from
// dist and the speed of kind when the edge is created.
type Edge struct {
	edgeId Index
	from   Index
	to     Index
	kind   pkg.EdgeKind
	dist   float64 // meter
	weight float64 // second
	colour string
}

func (e *Edge) GetEdgeId() Index {
	return e.edgeId
}

func (e *Edge) GetFrom() Index {
	return e.from
}

func (e *Edge) GetTo() Index {
	return e.to
}

// GetOther. the endpoint of e that is not u.
func (e *Edge) GetOther(u Index) Index {
	if e.from == u {
		return e.to
	}
	return e.from
}

func (e *Edge) GetKind() pkg.EdgeKind {
	return e.kind
}

func (e *Edge) GetLength() float64 {
	return e.dist
}

func (e *Edge) GetWeight() float64 {
	return e.weight
}

func (e *Edge) GetColour() string {
	return e.colour
}

// Arc. adjacency entry of a vertex, head is the neighbour reached through edgeId.
type Arc struct {
	head   Index
	edgeId Index
}

func (a Arc) GetHead() Index {
	return a.head
}

func (a Arc) GetEdgeId() Index {
	return a.edgeId
}
