// Package rlwt provides a run-length compressed wavelet tree over byte
// sequences, supporting access, rank and select in time proportional to
// the zero-order entropy of the input on average.
//
// Two rank/select dictionaries mark the run starts of the input in text
// order (bl) and the images of those starts under the LF-mapping in
// first-column order (bf); a Huffman-shaped wavelet tree indexes only
// the run heads. The structure is intended as the last-column index of
// an FM-style self-index over a Burrows-Wheeler transformed sequence,
// where long equal-symbol runs make r much smaller than n.
package rlwt

import "github.com/hillbig/rsdic"

// RLWT is the run-length compressed wavelet tree. It is built once by
// Build (or loaded by UnmarshalBinary) and is read-only afterwards; any
// number of goroutines may query it concurrently.
type RLWT struct {
	size    uint64
	bl      *rsdic.RSDic // marks run starts in text order, length size
	bf      *rsdic.RSDic // marks LF-images of run starts, length size+1, sentinel at size
	wt      *WaveletTree // indexes the run-head string
	c       [256]uint64  // c[x] = number of bytes smaller than x
	cBfRank [256]uint64  // cBfRank[x] = rank1(bf, c[x])
}

// Num returns the length of the indexed sequence.
func (rl *RLWT) Num() uint64 {
	return rl.size
}

// Empty reports whether the indexed sequence has length zero.
func (rl *RLWT) Empty() bool {
	return rl.size == 0
}

// Access returns S[i].
// i must be in [0, Num()).
func (rl *RLWT) Access(i uint64) byte {
	assertf(i < rl.size, "rlwt: Access position %d out of range [0, %d)", i, rl.size)
	return rl.wt.Access(rl.bl.Rank(i+1, true) - 1)
}

// Rank returns the number of occurrences of c in S[0..i).
// i must be in [0, Num()].
func (rl *RLWT) Rank(i uint64, c byte) uint64 {
	assertf(i <= rl.size, "rlwt: Rank position %d out of range [0, %d]", i, rl.size)
	if i == 0 {
		return 0
	}
	wtEx := rl.bl.Rank(i, true)
	cRuns := rl.wt.Rank(wtEx, c)
	if cRuns == 0 {
		return 0
	}
	if rl.wt.Access(wtEx-1) == c {
		// position i-1 sits inside a run of c: count the full lengths of
		// the first cRuns runs of c, minus the tail of the current run
		// that lies beyond i-1. Consecutive bf marks inside c's
		// first-column block delimit successive runs of c, so the mark
		// distance measures accumulated run length.
		cRunBegin := rl.bl.Select(wtEx-1, true)
		return rl.bf.Select(rl.cBfRank[c]+cRuns-1, true) - rl.c[c] + i - cRunBegin
	}
	// the current run has another symbol: c contributes exactly its
	// first cRuns complete runs.
	return rl.bf.Select(rl.cBfRank[c]+cRuns, true) - rl.c[c]
}

// InverseSelect returns S[i] together with Rank(i, S[i]), descending the
// inner tree once instead of twice.
// i must be in [0, Num()).
func (rl *RLWT) InverseSelect(i uint64) (byte, uint64) {
	assertf(i < rl.size, "rlwt: InverseSelect position %d out of range [0, %d)", i, rl.size)
	if i == 0 {
		return rl.wt.Access(0), 0
	}
	wtEx := rl.bl.Rank(i+1, true)
	c, rHeads := rl.wt.AccessAndRank(wtEx - 1)
	cRuns := rHeads + 1
	if cRuns == 0 {
		// cRuns is rHeads+1 and cannot be zero here; kept for symmetry
		// with Rank.
		return c, 0
	}
	if rl.wt.Access(wtEx-1) == c {
		// c is the head of the run containing i, so this arm is always
		// the one taken; the branch shape mirrors Rank.
		cRunBegin := rl.bl.Select(wtEx-1, true)
		return c, rl.bf.Select(rl.cBfRank[c]+cRuns-1, true) - rl.c[c] + i - cRunBegin
	}
	return c, rl.bf.Select(rl.cBfRank[c]+cRuns, true) - rl.c[c]
}

// Select returns the position of the i-th occurrence of c, with i
// starting at 1.
// i must be in [1, Rank(Num(), c)].
func (rl *RLWT) Select(i uint64, c byte) uint64 {
	assertf(i > 0, "rlwt: Select occurrence index must be positive, got %d", i)
	if debugChecks {
		assertf(i <= rl.Rank(rl.size, c),
			"rlwt: Select occurrence %d of %#x exceeds count", i, c)
	}
	// index (within c's runs) of the run holding the i-th occurrence,
	// then the offset of that occurrence inside the run.
	cRuns := rl.bf.Rank(rl.c[c]+i, true) - rl.cBfRank[c]
	offset := rl.c[c] + i - 1 - rl.bf.Select(cRuns+rl.cBfRank[c]-1, true)
	return rl.bl.Select(rl.wt.Select(cRuns-1, c), true) + offset
}

// AllocSize returns the allocated size in bytes.
func (rl *RLWT) AllocSize() int {
	total := 2 * 256 * 8
	if rl.bl != nil {
		total += rl.bl.AllocSize()
	}
	if rl.bf != nil {
		total += rl.bf.AllocSize()
	}
	if rl.wt != nil {
		total += rl.wt.AllocSize()
	}
	return total
}
