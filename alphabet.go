package rlwt

import "github.com/hillbig/rsdic"

// toCumulative turns a byte histogram into its exclusive prefix sums in
// place, so that afterwards freqs[c] is the number of bytes strictly
// smaller than c. The running previous value is kept in a temporary to
// avoid a second array.
func toCumulative(freqs *[256]uint64) {
	sum := uint64(0)
	for i := 0; i < 256; i++ {
		t := freqs[i]
		freqs[i] = sum
		sum += t
	}
}

// cBfRankTable precomputes rank1(bf, C[c]) for every symbol: the number
// of run marks in bf strictly before symbol c's first-column block.
func cBfRankTable(bf *rsdic.RSDic, c *[256]uint64) (out [256]uint64) {
	for i := 0; i < 256; i++ {
		out[i] = bf.Rank(c[i], true)
	}
	return out
}
