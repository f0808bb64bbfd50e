package datastructure

import (
	"errors"

	"github.com/lintang-b-s/metronav/pkg"
)

var ErrEmptyHeap = errors.New("heap is empty")

type PriorityQueueNode[T comparable] struct {
	rank    float64
	seq     uint64 // insertion order, breaks rank ties
	item    T
	itemPos int
}

func NewPriorityQueueNode[T comparable](rank float64, item T) *PriorityQueueNode[T] {
	return &PriorityQueueNode[T]{rank: rank, item: item}
}

func (p *PriorityQueueNode[T]) GetItem() T {
	return p.item
}

func (p *PriorityQueueNode[T]) GetRank() float64 {
	return p.rank
}

func (p *PriorityQueueNode[T]) GetPos() int {
	return p.itemPos
}

// MinHeap. d-ary min-heap keyed on rank. equal ranks pop in insertion order.
type MinHeap[T comparable] struct {
	heap    []*PriorityQueueNode[T]
	d       int
	nextSeq uint64
}

func NewBinaryHeap[T comparable]() *MinHeap[T] {
	return NewdAryHeap[T](2)
}

func NewFourAryHeap[T comparable]() *MinHeap[T] {
	return NewdAryHeap[T](4)
}

func NewdAryHeap[T comparable](d int) *MinHeap[T] {
	return &MinHeap[T]{
		heap: make([]*PriorityQueueNode[T], 0),
		d:    d,
	}
}

func (h *MinHeap[T]) Preallocate(maxSearchSize int) {
	h.heap = make([]*PriorityQueueNode[T], 0, maxSearchSize)
}

func (h *MinHeap[T]) less(i, j int) bool {
	a, b := h.heap[i], h.heap[j]
	if a.rank != b.rank {
		return a.rank < b.rank
	}
	return a.seq < b.seq
}

func (h *MinHeap[T]) parent(index int) int {
	return (index - 1) / h.d
}

func (h *MinHeap[T]) heapifyUp(index int) {
	for index != 0 && h.less(index, h.parent(index)) {
		h.swap(index, h.parent(index))
		index = h.parent(index)
	}
}

func (h *MinHeap[T]) heapifyDown(index int) {
	for {
		leftMostChild := index*h.d + 1
		if leftMostChild >= len(h.heap) {
			return
		}

		sentinel := leftMostChild + h.d
		if sentinel > len(h.heap) {
			sentinel = len(h.heap)
		}

		smallest := leftMostChild
		for i := leftMostChild + 1; i < sentinel; i++ {
			if h.less(i, smallest) {
				smallest = i
			}
		}

		if !h.less(smallest, index) {
			return
		}
		h.swap(index, smallest)
		index = smallest
	}
}

func (h *MinHeap[T]) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.heap[i].itemPos = i
	h.heap[j].itemPos = j
}

func (h *MinHeap[T]) IsEmpty() bool {
	return len(h.heap) == 0
}

func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}

// Clear. keeps the backing array so the heap can be reused by the next query.
func (h *MinHeap[T]) Clear() {
	for i := range h.heap {
		h.heap[i] = nil
	}
	h.heap = h.heap[:0]
	h.nextSeq = 0
}

func (h *MinHeap[T]) GetMin() (*PriorityQueueNode[T], error) {
	if h.IsEmpty() {
		return nil, ErrEmptyHeap
	}
	return h.heap[0], nil
}

func (h *MinHeap[T]) GetMinRank() float64 {
	if h.IsEmpty() {
		return 2 * pkg.INF_WEIGHT
	}
	return h.heap[0].rank
}

func (h *MinHeap[T]) Insert(key *PriorityQueueNode[T]) {
	key.seq = h.nextSeq
	h.nextSeq++
	h.heap = append(h.heap, key)
	index := len(h.heap) - 1
	key.itemPos = index
	h.heapifyUp(index)
}

// ExtractMin. pops the minimum. O(d log_d N).
func (h *MinHeap[T]) ExtractMin() (*PriorityQueueNode[T], error) {
	if h.IsEmpty() {
		return nil, ErrEmptyHeap
	}
	root := h.heap[0]
	last := len(h.heap) - 1
	h.swap(0, last)
	h.heap[last] = nil
	h.heap = h.heap[:last]
	root.itemPos = -1
	if len(h.heap) > 0 {
		h.heapifyDown(0)
	}
	return root, nil
}

// DecreaseKey. lowers the rank of an item still in the heap.
func (h *MinHeap[T]) DecreaseKey(item *PriorityQueueNode[T], rank float64) error {
	itemPos := item.itemPos
	if itemPos < 0 || itemPos >= len(h.heap) || h.heap[itemPos] != item || item.rank < rank {
		return errors.New("invalid index or new value")
	}

	item.rank = rank
	h.heapifyUp(itemPos)
	return nil
}
