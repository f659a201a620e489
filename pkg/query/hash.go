package query

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// hasher feeds a node's type tag and components into xxh3.
// Strings are length-prefixed so adjacent components cannot collide.
type hasher struct {
	h   *xxh3.Hasher
	buf [8]byte
}

func newHasher(tag string) *hasher {
	h := &hasher{h: xxh3.New()}
	h.str(tag)
	return h
}

func (h *hasher) u64(v uint64) *hasher {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	_, _ = h.h.Write(h.buf[:])
	return h
}

func (h *hasher) str(s string) *hasher {
	h.u64(uint64(len(s)))
	_, _ = h.h.WriteString(s)
	return h
}

func (h *hasher) node(n Node) *hasher {
	if isNil(n) {
		return h.u64(0)
	}
	return h.u64(n.Hash())
}

func (h *hasher) sum() uint64 {
	return h.h.Sum64()
}
