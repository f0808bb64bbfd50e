package routing

import (
	"context"
	"fmt"

	"github.com/lintang-b-s/metronav/pkg"
	da "github.com/lintang-b-s/metronav/pkg/datastructure"
	"github.com/lintang-b-s/metronav/pkg/util"
)

const ctxCheckInterval = 1024

type Dijkstra struct {
	graph   da.Graph
	storage *searchStorage

	numSettledNodes int
}

func NewDijkstra(graph da.Graph, storage *searchStorage) *Dijkstra {
	return &Dijkstra{
		graph:   graph,
		storage: storage,
	}
}

func (d *Dijkstra) GetNumSettledNodes() int {
	return d.numSettledNodes
}

// ShortestPath. single pair dijkstra over edge travel times, stops when t is settled.
// returns false if t is unreachable from s. ctx is checked every ctxCheckInterval settled vertices.
func (d *Dijkstra) ShortestPath(ctx context.Context, s, t da.Index) (bool, error) {
	sNode := da.NewPriorityQueueNode(0, s)
	d.storage.info[s] = &VertexInfo{travelTime: 0, parent: newVertexEdgePair(da.INVALID_INDEX, da.INVALID_INDEX), heapNode: sNode}
	d.storage.pq.Insert(sNode)

	for !d.storage.pq.IsEmpty() {
		if d.numSettledNodes%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return false, err
			}
		}

		minNode, err := d.storage.pq.ExtractMin()
		if err != nil {
			return false, err
		}
		u := minNode.GetItem()
		uInfo := d.storage.info[u]
		uInfo.settled = true
		uInfo.heapNode = nil
		d.numSettledNodes++

		if u == t {
			return true, nil
		}

		var relaxErr error
		d.graph.ForOutEdgesOf(u, func(e *da.Edge, v da.Index) {
			if relaxErr != nil {
				return
			}
			newTravelTime := uInfo.travelTime + e.GetWeight()
			if newTravelTime >= pkg.INF_WEIGHT {
				return
			}

			vInfo, labelled := d.storage.get(v)
			if !labelled {
				vNode := da.NewPriorityQueueNode(newTravelTime, v)
				d.storage.info[v] = &VertexInfo{
					travelTime: newTravelTime,
					parent:     newVertexEdgePair(u, e.GetEdgeId()),
					heapNode:   vNode,
				}
				d.storage.pq.Insert(vNode)
				return
			}
			if vInfo.settled || newTravelTime >= vInfo.travelTime {
				return
			}

			vInfo.travelTime = newTravelTime
			vInfo.parent = newVertexEdgePair(u, e.GetEdgeId())
			if err := d.storage.pq.DecreaseKey(vInfo.heapNode, newTravelTime); err != nil {
				relaxErr = fmt.Errorf("decrease key of vertex %d: %w", v, err)
			}
		})
		if relaxErr != nil {
			return false, relaxErr
		}
	}
	return false, nil
}

// RetrievePath. nodes and edges from s to t by following parents back from t.
func (d *Dijkstra) RetrievePath(s, t da.Index) *da.Path {
	nodes := make([]*da.Node, 0)
	edges := make([]*da.Edge, 0)

	cur := t
	for cur != s {
		nodes = append(nodes, d.graph.GetNode(cur))
		parent := d.storage.info[cur].GetParent()
		edges = append(edges, d.graph.GetEdge(parent.getEdge()))
		cur = parent.getVertex()
	}
	nodes = append(nodes, d.graph.GetNode(s))

	return da.NewPath(util.ReverseG(nodes), util.ReverseG(edges))
}
