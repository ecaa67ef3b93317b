package tategb

import "container/heap"

// pairRecord is a critical pair record: (v, e, i, j) from spec.md §3, plus
// the S-polynomial element s once it has been computed. i == j == -1 marks
// a "rescued element" sentinel (spec.md §9): not a proper S-pair to reduce,
// but a basis element that must be re-inserted after a shrink step.
type pairRecord[T any, E any] struct {
	v int // leading valuation of s
	e int // leading exponent (monomial degree) of s, for tie-breaking
	i int
	j int
	s E
}

// pairLess implements the ordering of spec.md §4.1: lexicographic on
// (valuation, exponent).
func pairLess[T any, E any](a, b pairRecord[T, E]) bool {
	if a.v != b.v {
		return a.v < b.v
	}
	return a.e < b.e
}

// pairQueue is the min-heap priority queue of spec.md §4.1. It may contain
// stale records referencing tombstoned basis slots; the driver is
// responsible for skipping those on pop (spec.md §9).
type pairQueue[T any, E any] struct {
	heap pairHeap[T, E]
}

func newPairQueue[T any, E any]() *pairQueue[T, E] {
	q := &pairQueue[T, E]{}
	heap.Init(&q.heap)
	return q
}

func (q *pairQueue[T, E]) push(r pairRecord[T, E]) {
	heap.Push(&q.heap, r)
}

// popMin removes and returns the pair with smallest (v, e). ok is false if
// the queue is empty.
func (q *pairQueue[T, E]) popMin() (pairRecord[T, E], bool) {
	if q.heap.Len() == 0 {
		var zero pairRecord[T, E]
		return zero, false
	}
	r := heap.Pop(&q.heap).(pairRecord[T, E])
	return r, true
}

func (q *pairQueue[T, E]) empty() bool {
	return q.heap.Len() == 0
}

// pairHeap implements container/heap.Interface over pairRecord.
type pairHeap[T any, E any] []pairRecord[T, E]

func (h pairHeap[T, E]) Len() int { return len(h) }
func (h pairHeap[T, E]) Less(i, j int) bool {
	return pairLess[T, E](h[i], h[j])
}
func (h pairHeap[T, E]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *pairHeap[T, E]) Push(x any) {
	*h = append(*h, x.(pairRecord[T, E]))
}

func (h *pairHeap[T, E]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
