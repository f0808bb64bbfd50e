package routing

import (
	"github.com/lintang-b-s/metronav/pkg"
	da "github.com/lintang-b-s/metronav/pkg/datastructure"
)

type vertexEdgePair struct {
	vertex da.Index
	edge   da.Index
}

func newVertexEdgePair(vertex, edge da.Index) vertexEdgePair {
	return vertexEdgePair{vertex: vertex, edge: edge}
}

func (ve vertexEdgePair) getVertex() da.Index {
	return ve.vertex
}

func (ve vertexEdgePair) getEdge() da.Index {
	return ve.edge
}

// VertexInfo. tentative travel time of a labelled vertex, its parent and its heap node.
type VertexInfo struct {
	travelTime float64
	parent     vertexEdgePair
	heapNode   *da.PriorityQueueNode[da.Index]
	settled    bool
}

func (vi *VertexInfo) GetTravelTime() float64 {
	return vi.travelTime
}

func (vi *VertexInfo) GetParent() vertexEdgePair {
	return vi.parent
}

// searchStorage. sparse labels of one search, only the vertices the search touched get an entry.
// reused across queries through a sync.Pool.
type searchStorage struct {
	info map[da.Index]*VertexInfo
	pq   *da.MinHeap[da.Index]
}

func newSearchStorage() *searchStorage {
	return &searchStorage{
		info: make(map[da.Index]*VertexInfo, 1024),
		pq:   da.NewFourAryHeap[da.Index](),
	}
}

func (s *searchStorage) get(u da.Index) (*VertexInfo, bool) {
	vi, ok := s.info[u]
	return vi, ok
}

func (s *searchStorage) travelTime(u da.Index) float64 {
	if vi, ok := s.info[u]; ok {
		return vi.travelTime
	}
	return pkg.INF_WEIGHT
}

func (s *searchStorage) reset() {
	clear(s.info)
	s.pq.Clear()
}
