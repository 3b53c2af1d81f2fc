package rlwt

import (
	"github.com/hillbig/rsdic"
	"github.com/ugorji/go/codec"
)

// WaveletTree is a Huffman-shaped wavelet tree over a byte string.
// Each internal node of the code tree stores one rank/select dictionary;
// a symbol's occurrences are found by walking its code path. With the
// shape following symbol frequencies, a query touches H0 levels on
// average instead of log(sigma).
type WaveletTree struct {
	nodes []wtNode
	root  int32
	num   uint64

	// per-symbol root-to-leaf route, derived from the topology
	paths [256][]int32
	codes [256][]bool
}

// NewWaveletTree builds a WaveletTree indexing s.
func NewWaveletTree(s []byte) *WaveletTree {
	w := &WaveletTree{num: uint64(len(s))}
	if len(s) == 0 {
		w.root = -1
		return w
	}
	var freqs [256]uint64
	for _, c := range s {
		freqs[c]++
	}
	w.nodes, w.root = buildHuffmanTree(&freqs)
	w.derivePaths()
	for i := range w.nodes {
		if !w.nodes[i].isLeaf() {
			w.nodes[i].bits = rsdic.New()
		}
	}
	for _, c := range s {
		path, code := w.paths[c], w.codes[c]
		for j, id := range path {
			w.nodes[id].bits.PushBack(code[j])
		}
	}
	return w
}

// derivePaths walks the tree once and records, for every symbol, the
// internal nodes on its route and the branch taken at each of them.
func (w *WaveletTree) derivePaths() {
	if w.root < 0 {
		return
	}
	type frame struct {
		id   int32
		path []int32
		code []bool
	}
	stack := []frame{{id: w.root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nd := &w.nodes[f.id]
		if nd.isLeaf() {
			w.paths[nd.sym] = f.path
			w.codes[nd.sym] = f.code
			continue
		}
		if nd.left >= 0 {
			stack = append(stack, frame{
				id:   nd.left,
				path: append(append([]int32{}, f.path...), f.id),
				code: append(append([]bool{}, f.code...), false),
			})
		}
		if nd.right >= 0 {
			stack = append(stack, frame{
				id:   nd.right,
				path: append(append([]int32{}, f.path...), f.id),
				code: append(append([]bool{}, f.code...), true),
			})
		}
	}
}

// Num returns the length of the indexed string.
func (w *WaveletTree) Num() uint64 {
	return w.num
}

// Access returns the k-th byte of the indexed string.
func (w *WaveletTree) Access(k uint64) byte {
	nd := &w.nodes[w.root]
	for !nd.isLeaf() {
		bit := nd.bits.Bit(k)
		k = nd.bits.Rank(k, bit)
		if bit {
			nd = &w.nodes[nd.right]
		} else {
			nd = &w.nodes[nd.left]
		}
	}
	return nd.sym
}

// Rank returns the number of occurrences of c in the first k bytes.
func (w *WaveletTree) Rank(k uint64, c byte) uint64 {
	code := w.codes[c]
	if len(code) == 0 {
		return 0
	}
	for j, id := range w.paths[c] {
		k = w.nodes[id].bits.Rank(k, code[j])
	}
	return k
}

// Select returns the position of the (k+1)-th occurrence of c.
// If there is no such occurrence it returns Num().
func (w *WaveletTree) Select(k uint64, c byte) uint64 {
	code := w.codes[c]
	if len(code) == 0 || k >= w.Rank(w.num, c) {
		return w.num
	}
	path := w.paths[c]
	for j := len(path) - 1; j >= 0; j-- {
		k = w.nodes[path[j]].bits.Select(k, code[j])
	}
	return k
}

// AccessAndRank returns the k-th byte c together with Rank(k, c).
// Faster than Access followed by Rank: one descent serves both.
func (w *WaveletTree) AccessAndRank(k uint64) (byte, uint64) {
	nd := &w.nodes[w.root]
	for !nd.isLeaf() {
		bit := nd.bits.Bit(k)
		k = nd.bits.Rank(k, bit)
		if bit {
			nd = &w.nodes[nd.right]
		} else {
			nd = &w.nodes[nd.left]
		}
	}
	return nd.sym, k
}

// AllocSize returns the allocated size in bytes.
func (w *WaveletTree) AllocSize() int {
	total := 0
	for i := range w.nodes {
		if w.nodes[i].bits != nil {
			total += w.nodes[i].bits.AllocSize()
		}
		total += 16
	}
	return total
}

// MarshalBinary encodes the WaveletTree into a binary form and returns the result.
func (w *WaveletTree) MarshalBinary() (out []byte, err error) {
	var bh codec.MsgpackHandle
	enc := codec.NewEncoderBytes(&out, &bh)
	if err = enc.Encode(w.num); err != nil {
		return
	}
	if err = enc.Encode(w.root); err != nil {
		return
	}
	if err = enc.Encode(len(w.nodes)); err != nil {
		return
	}
	for i := range w.nodes {
		nd := &w.nodes[i]
		if err = enc.Encode(nd.left); err != nil {
			return
		}
		if err = enc.Encode(nd.right); err != nil {
			return
		}
		if err = enc.Encode(nd.sym); err != nil {
			return
		}
		if nd.isLeaf() {
			continue
		}
		if err = enc.Encode(*nd.bits); err != nil {
			return
		}
	}
	return
}

// UnmarshalBinary decodes the WaveletTree from a binary form generated by MarshalBinary.
func (w *WaveletTree) UnmarshalBinary(in []byte) (err error) {
	var bh codec.MsgpackHandle
	dec := codec.NewDecoderBytes(in, &bh)
	if err = dec.Decode(&w.num); err != nil {
		return
	}
	if err = dec.Decode(&w.root); err != nil {
		return
	}
	nodeNum := 0
	if err = dec.Decode(&nodeNum); err != nil {
		return
	}
	w.nodes = make([]wtNode, nodeNum)
	for i := range w.nodes {
		nd := &w.nodes[i]
		if err = dec.Decode(&nd.left); err != nil {
			return
		}
		if err = dec.Decode(&nd.right); err != nil {
			return
		}
		if err = dec.Decode(&nd.sym); err != nil {
			return
		}
		if nd.isLeaf() {
			continue
		}
		nd.bits = rsdic.New()
		if err = dec.Decode(nd.bits); err != nil {
			return
		}
	}
	w.paths = [256][]int32{}
	w.codes = [256][]bool{}
	w.derivePaths()
	return
}
