package template

import (
	"fmt"
	"strings"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var alphabetIndex = func() [256]int8 {
	var index [256]int8
	for i := range index {
		index[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		index[alphabet[i]] = int8(i)
	}
	return index
}()

// bitReader consumes a template's characters as a little-endian bit stream:
// each character contributes six bits, least significant first.
type bitReader struct {
	bits []bool
	pos  int
}

func newBitReader(code string) (*bitReader, error) {
	bits := make([]bool, 0, len(code)*6)
	for i := 0; i < len(code); i++ {
		v := alphabetIndex[code[i]]
		if v < 0 {
			return nil, fmt.Errorf("invalid character %q at %d", code[i], i)
		}
		for b := 0; b < 6; b++ {
			bits = append(bits, v&(1<<b) != 0)
		}
	}
	return &bitReader{bits: bits}, nil
}

// read returns the next n bits as an unsigned value, least significant bit first.
func (r *bitReader) read(n int) (int, error) {
	if r.pos+n > len(r.bits) {
		return 0, fmt.Errorf("unexpected end of template at bit %d", r.pos)
	}
	value := 0
	for i := 0; i < n; i++ {
		if r.bits[r.pos+i] {
			value |= 1 << i
		}
	}
	r.pos += n
	return value, nil
}

type bitWriter struct {
	bits []bool
}

func (w *bitWriter) write(value, n int) {
	for i := 0; i < n; i++ {
		w.bits = append(w.bits, value&(1<<i) != 0)
	}
}

// String pads the stream with zero bits to a whole character.
func (w *bitWriter) String() string {
	var sb strings.Builder
	for i := 0; i < len(w.bits); i += 6 {
		v := 0
		for b := 0; b < 6 && i+b < len(w.bits); b++ {
			if w.bits[i+b] {
				v |= 1 << b
			}
		}
		sb.WriteByte(alphabet[v])
	}
	return sb.String()
}

// bitLength returns the number of bits needed to represent v (0 for 0).
func bitLength(v int) int {
	n := 0
	for v > 0 {
		n++
		v >>= 1
	}
	return n
}
