package rlwt

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/hillbig/rsdic"
	"github.com/pkg/errors"
)

// bitBuf is a plain word-addressed bit buffer used while the two passes
// run. The rank/select dictionaries are append-only, and bf is marked
// in first-column order rather than append order, so both vectors are
// staged here and replayed into their dictionaries at finalization.
type bitBuf []uint64

func newBitBuf(n uint64) bitBuf {
	return make(bitBuf, (n+63)/64)
}

func (b bitBuf) set(i uint64) {
	b[i>>6] |= 1 << (i & 63)
}

func (b bitBuf) get(i uint64) bool {
	return b[i>>6]&(1<<(i&63)) != 0
}

func (b bitBuf) replay(n uint64) *rsdic.RSDic {
	rs := rsdic.New()
	for i := uint64(0); i < n; i++ {
		rs.PushBack(b.get(i))
	}
	return rs
}

// Build constructs an RLWT over the first size bytes of r. The input is
// read twice; r must be seekable back to its start. Pass one marks the
// run starts, counts symbol frequencies and spills the run heads to a
// temporary file; pass two walks the LF cursor and marks where each
// run's image starts in the first-column order. The temporary file is
// removed on every path out of this function.
func Build(r io.ReadSeeker, size uint64) (*RLWT, error) {
	heads, err := os.CreateTemp("", "rlwt-heads-*")
	if err != nil {
		return nil, errors.Wrap(err, "rlwt: create run-head store")
	}
	defer func() {
		heads.Close()
		os.Remove(heads.Name())
	}()

	// pass 1: bl, histogram, run-head stream
	bl := newBitBuf(size)
	var freqs [256]uint64
	runs := uint64(0)
	hw := bufio.NewWriter(heads)
	br := bufio.NewReaderSize(r, 1<<16)
	last := byte(0)
	for i := uint64(0); i < size; i++ {
		c, err := br.ReadByte()
		if err != nil {
			return nil, shortInput(err, i, size)
		}
		if i == 0 || c != last {
			bl.set(i)
			hw.WriteByte(c)
			runs++
		}
		freqs[c]++
		last = c
	}
	if err := hw.Flush(); err != nil {
		return nil, errors.Wrap(err, "rlwt: write run-head store")
	}

	c := freqs
	toCumulative(&c)

	// pass 2: bf via the LF cursor
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "rlwt: rewind input")
	}
	bf := newBitBuf(size + 1)
	bf.set(size)
	lfMap := c
	br.Reset(r)
	for i := uint64(0); i < size; i++ {
		ch, err := br.ReadByte()
		if err != nil {
			return nil, shortInput(err, i, size)
		}
		if bl.get(i) {
			bf.set(lfMap[ch])
		}
		lfMap[ch]++
	}

	// finalization: inner tree from the run heads, dictionaries, tables
	if _, err := heads.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "rlwt: rewind run-head store")
	}
	headBytes := make([]byte, runs)
	if _, err := io.ReadFull(heads, headBytes); err != nil {
		return nil, errors.Wrap(err, "rlwt: read run-head store")
	}

	rl := &RLWT{
		size: size,
		bl:   bl.replay(size),
		bf:   bf.replay(size + 1),
		wt:   NewWaveletTree(headBytes),
		c:    c,
	}
	rl.cBfRank = cBfRankTable(rl.bf, &rl.c)
	return rl, nil
}

// BuildBytes constructs an RLWT over s.
func BuildBytes(s []byte) (*RLWT, error) {
	return Build(bytes.NewReader(s), uint64(len(s)))
}

// BuildFile constructs an RLWT over the whole content of the named file.
func BuildFile(path string) (*RLWT, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "rlwt: open %s", path)
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "rlwt: stat %s", path)
	}
	return Build(f, uint64(fi.Size()))
}

func shortInput(err error, got, want uint64) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Errorf("rlwt: input ended at byte %d, expected %d", got, want)
	}
	return errors.Wrapf(err, "rlwt: read input at byte %d of %d", got, want)
}
