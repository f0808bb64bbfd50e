package datastructure

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapOrder(t *testing.T) {
	testCases := []struct {
		name string
		heap *MinHeap[int]
	}{
		{name: "binary", heap: NewBinaryHeap[int]()},
		{name: "four-ary", heap: NewFourAryHeap[int]()},
		{name: "eight-ary", heap: NewdAryHeap[int](8)},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rd := rand.New(rand.NewSource(1))
			ranks := make([]float64, 500)
			for i := range ranks {
				ranks[i] = rd.Float64() * 1000
				tt.heap.Insert(NewPriorityQueueNode(ranks[i], i))
			}
			sort.Float64s(ranks)

			for _, want := range ranks {
				got, err := tt.heap.ExtractMin()
				require.NoError(t, err)
				assert.Equal(t, want, got.GetRank())
			}
			assert.True(t, tt.heap.IsEmpty())

			_, err := tt.heap.ExtractMin()
			assert.ErrorIs(t, err, ErrEmptyHeap)
		})
	}
}

func TestHeapTiesPopInInsertionOrder(t *testing.T) {
	h := NewFourAryHeap[string]()
	for _, item := range []string{"a", "b", "c", "d", "e"} {
		h.Insert(NewPriorityQueueNode(1.0, item))
	}
	got := make([]string, 0, 5)
	for !h.IsEmpty() {
		n, err := h.ExtractMin()
		require.NoError(t, err)
		got = append(got, n.GetItem())
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, got)
}

func TestHeapDecreaseKey(t *testing.T) {
	h := NewFourAryHeap[int]()
	nodes := make([]*PriorityQueueNode[int], 10)
	for i := range nodes {
		nodes[i] = NewPriorityQueueNode(float64(10+i), i)
		h.Insert(nodes[i])
	}

	require.NoError(t, h.DecreaseKey(nodes[7], 1))
	top, err := h.GetMin()
	require.NoError(t, err)
	assert.Equal(t, 7, top.GetItem())
	assert.Equal(t, 1.0, h.GetMinRank())

	// increasing is not allowed
	assert.Error(t, h.DecreaseKey(nodes[3], 100))

	popped, err := h.ExtractMin()
	require.NoError(t, err)
	assert.Equal(t, -1, popped.GetPos())
	assert.Error(t, h.DecreaseKey(popped, 0))

	h.Clear()
	assert.Equal(t, 0, h.Size())
	assert.Greater(t, h.GetMinRank(), 1e15)
}
