package rlwt

import (
	"github.com/hillbig/rsdic"
	"github.com/ugorji/go/codec"
)

// MarshalBinary encodes the RLWT into a binary form and returns the
// result. Fields are written in a fixed order (size, bl, bf, wt, C,
// CBfRank) so identical inputs always produce identical bytes; the
// rank/select directories travel inside their dictionaries.
func (rl *RLWT) MarshalBinary() (out []byte, err error) {
	var bh codec.MsgpackHandle
	enc := codec.NewEncoderBytes(&out, &bh)
	if err = enc.Encode(rl.size); err != nil {
		return
	}
	if err = enc.Encode(*rl.bl); err != nil {
		return
	}
	if err = enc.Encode(*rl.bf); err != nil {
		return
	}
	var wtBytes []byte
	if wtBytes, err = rl.wt.MarshalBinary(); err != nil {
		return
	}
	if err = enc.Encode(wtBytes); err != nil {
		return
	}
	if err = enc.Encode(rl.c); err != nil {
		return
	}
	if err = enc.Encode(rl.cBfRank); err != nil {
		return
	}
	return
}

// UnmarshalBinary decodes the RLWT from a binary form generated by
// MarshalBinary.
func (rl *RLWT) UnmarshalBinary(in []byte) (err error) {
	var bh codec.MsgpackHandle
	dec := codec.NewDecoderBytes(in, &bh)
	if err = dec.Decode(&rl.size); err != nil {
		return
	}
	rl.bl = rsdic.New()
	if err = dec.Decode(rl.bl); err != nil {
		return
	}
	rl.bf = rsdic.New()
	if err = dec.Decode(rl.bf); err != nil {
		return
	}
	var wtBytes []byte
	if err = dec.Decode(&wtBytes); err != nil {
		return
	}
	rl.wt = new(WaveletTree)
	if err = rl.wt.UnmarshalBinary(wtBytes); err != nil {
		return
	}
	if err = dec.Decode(&rl.c); err != nil {
		return
	}
	if err = dec.Decode(&rl.cBfRank); err != nil {
		return
	}
	return
}
