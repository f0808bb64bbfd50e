package network

import (
	"github.com/lintang-b-s/metronav/pkg/geo"
)

// StreetNode. pedestrian-walkable node, ID is the osm node id.
type StreetNode struct {
	ID       int64
	Location geo.Coordinate
}

// StreetEdge. undirected walkable segment, Length in meter.
type StreetEdge struct {
	From   int64
	To     int64
	Length float64
}

type StreetNetwork struct {
	Nodes []StreetNode
	Edges []StreetEdge
}

func NewStreetNetwork(nodes []StreetNode, edges []StreetEdge) *StreetNetwork {
	return &StreetNetwork{
		Nodes: nodes,
		Edges: edges,
	}
}

func (sn *StreetNetwork) IsEmpty() bool {
	return sn == nil || len(sn.Nodes) == 0
}

func (sn *StreetNetwork) NumberOfNodes() int {
	return len(sn.Nodes)
}

func (sn *StreetNetwork) NumberOfEdges() int {
	return len(sn.Edges)
}
