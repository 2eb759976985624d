package huffman

import (
	"container/heap"

	"github.com/egonelbre/exp-huffman-compression/freq"
)

// Build constructs a Huffman tree for the byte counts in table plus a single
// EndOfStream occurrence.
//
// Ties between equal frequencies are broken by construction order: leaves are
// created in ascending symbol order, EndOfStream last, and every internal node
// is created after all leaves. The first node taken from the queue becomes the
// left child. Building the same table always yields the same tree.
func Build(table freq.Table) *Tree {
	q := make(nodeQueue, 0, len(table)+1)
	for _, b := range table.Symbols() {
		q = append(q, &Node{Symbol: Symbol(b), Freq: table[b], order: len(q)})
	}
	q = append(q, &Node{Symbol: EndOfStream, Freq: 1, order: len(q)})

	if len(q) == 1 {
		// A lone leaf would get an empty code, pair it with an unused symbol.
		q = append(q, &Node{Symbol: firstUnused(table), Freq: 0, order: -1})
	}

	heap.Init(&q)
	next := SymbolCount
	for q.Len() > 1 {
		left := heap.Pop(&q).(*Node)
		right := heap.Pop(&q).(*Node)
		heap.Push(&q, &Node{
			Freq:  left.Freq + right.Freq,
			Left:  left,
			Right: right,
			order: next,
		})
		next++
	}

	return &Tree{Root: heap.Pop(&q).(*Node)}
}

func firstUnused(table freq.Table) Symbol {
	for b := 0; b < 256; b++ {
		if _, ok := table[byte(b)]; !ok {
			return Symbol(b)
		}
	}
	// all bytes present means more than one leaf
	panic("huffman: no unused symbol")
}

// nodeQueue is a min-heap ordered by frequency, then construction order.
type nodeQueue []*Node

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].Freq != q[j].Freq {
		return q[i].Freq < q[j].Freq
	}
	return q[i].order < q[j].order
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x any) { *q = append(*q, x.(*Node)) }

func (q *nodeQueue) Pop() any {
	old := *q
	n := old[len(old)-1]
	*q = old[:len(old)-1]
	return n
}
