package rlwt

import (
	"container/heap"

	"github.com/hillbig/rsdic"
)

// wtNode is one node of the wavelet tree. Internal nodes carry a bit
// vector; leaves carry the symbol and have both child links set to -1.
type wtNode struct {
	bits  *rsdic.RSDic
	left  int32
	right int32
	sym   byte
}

func (nd *wtNode) isLeaf() bool {
	return nd.left < 0 && nd.right < 0
}

type huffItem struct {
	weight uint64
	id     int32
	seq    int
}

type huffHeap []huffItem

func (h huffHeap) Len() int { return len(h) }

func (h huffHeap) Less(i, j int) bool {
	if h[i].weight != h[j].weight {
		return h[i].weight < h[j].weight
	}
	return h[i].seq < h[j].seq
}

func (h huffHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *huffHeap) Push(x interface{}) { *h = append(*h, x.(huffItem)) }

func (h *huffHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// buildHuffmanTree returns the node slice of a Huffman tree over the
// symbols with nonzero frequency, ties broken by insertion order so the
// same histogram always yields the same shape. A one-symbol alphabet
// gets a root with a single left child, giving that symbol the code 0.
// root is -1 when the histogram is empty.
func buildHuffmanTree(freqs *[256]uint64) (nodes []wtNode, root int32) {
	h := make(huffHeap, 0, 256)
	for c := 0; c < 256; c++ {
		if freqs[c] == 0 {
			continue
		}
		id := int32(len(nodes))
		nodes = append(nodes, wtNode{left: -1, right: -1, sym: byte(c)})
		h = append(h, huffItem{weight: freqs[c], id: id, seq: len(h)})
	}
	if len(nodes) == 0 {
		return nil, -1
	}
	if len(nodes) == 1 {
		nodes = append(nodes, wtNode{left: 0, right: -1})
		return nodes, 1
	}
	heap.Init(&h)
	seq := len(h)
	for h.Len() > 1 {
		a := heap.Pop(&h).(huffItem)
		b := heap.Pop(&h).(huffItem)
		id := int32(len(nodes))
		nodes = append(nodes, wtNode{left: a.id, right: b.id})
		heap.Push(&h, huffItem{weight: a.weight + b.weight, id: id, seq: seq})
		seq++
	}
	return nodes, h[0].id
}
