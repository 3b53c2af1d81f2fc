package rlwt

import (
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func testWaveletTreeHelper(w *WaveletTree, s []byte) {
	So(w.Num(), ShouldEqual, uint64(len(s)))
	var counts [256]uint64
	for _, c := range s {
		counts[c]++
	}
	for i := uint64(0); i < uint64(len(s)); i++ {
		So(w.Access(i), ShouldEqual, s[i])
		c, rank := w.AccessAndRank(i)
		So(c, ShouldEqual, s[i])
		So(rank, ShouldEqual, naiveRank(s, i, s[i]))
	}
	for x := 0; x < 256; x++ {
		c := byte(x)
		if counts[c] == 0 {
			continue
		}
		for i := uint64(0); i <= uint64(len(s)); i++ {
			So(w.Rank(i, c), ShouldEqual, naiveRank(s, i, c))
		}
		for k := uint64(0); k < counts[c]; k++ {
			So(w.Select(k, c), ShouldEqual, naiveSelect(s, k+1, c))
		}
		So(w.Select(counts[c], c), ShouldEqual, w.Num())
	}
}

func TestWaveletTree(t *testing.T) {
	Convey("When the string is empty", t, func() {
		w := NewWaveletTree(nil)
		So(w.Num(), ShouldEqual, 0)
		So(w.Rank(0, 'a'), ShouldEqual, 0)
		So(w.Select(0, 'a'), ShouldEqual, 0)
	})
	Convey("When the string has one distinct symbol", t, func() {
		s := []byte("kkkkkkk")
		w := NewWaveletTree(s)
		testWaveletTreeHelper(w, s)
	})
	Convey("When the string is small and skewed", t, func() {
		s := []byte("abracadabra")
		w := NewWaveletTree(s)
		testWaveletTreeHelper(w, s)
		Convey("An absent symbol ranks to zero and selects to Num", func() {
			So(w.Rank(11, 'z'), ShouldEqual, 0)
			So(w.Select(0, 'z'), ShouldEqual, 11)
		})
	})
	Convey("When the string is random over a wide alphabet", t, func() {
		rnd := rand.New(rand.NewSource(3))
		s := make([]byte, 5000)
		for i := range s {
			// skewed distribution so the code tree has uneven depths
			v := int(rnd.ExpFloat64() * 16)
			if v > 255 {
				v = 255
			}
			s[i] = byte(v)
		}
		w := NewWaveletTree(s)
		testWaveletTreeHelper(w, s)
	})
	Convey("When the tree is marshaled and unmarshaled", t, func() {
		rnd := rand.New(rand.NewSource(11))
		s := make([]byte, 2000)
		for i := range s {
			s[i] = byte(rnd.Intn(32))
		}
		before := NewWaveletTree(s)
		out, err := before.MarshalBinary()
		So(err, ShouldBeNil)
		w := new(WaveletTree)
		So(w.UnmarshalBinary(out), ShouldBeNil)
		testWaveletTreeHelper(w, s)
	})
}
