// Package source implements a global byte-position space and a registry of
// loaded source files, so that the rest of a compiler front end can carry
// positions and spans as small value types instead of (file, offset) pairs.
package source

import "fmt"

// Pos is an opaque byte offset into the global position space owned by a
// SourceMap. Position 0 is reserved: it never belongs to any loaded file and
// is used as the dummy value meaning "no source location".
type Pos uint32

// PosFromU32 wraps n as a Pos. This is a sharp edge: nothing stops a caller
// from passing an offset that was never actually allocated by a SourceMap.
// It exists for tests and for code that has already done the bookkeeping
// (e.g. a SourceMap computing a new file's start position) and is
// deliberately a free function rather than a method, so that a call like
// source.PosFromU32(11) stands out at its call site.
func PosFromU32(n uint32) Pos {
	return Pos(n)
}

// ToU32 returns the underlying offset.
func (p Pos) ToU32() uint32 {
	return uint32(p)
}

// ToUsize returns the underlying offset as an int, for indexing into Go
// slices and strings.
func (p Pos) ToUsize() int {
	return int(p)
}

// IsDummy reports whether p is the reserved dummy position.
func (p Pos) IsDummy() bool {
	return p == 0
}

// Offset returns p shifted by delta, which may be negative. Offsetting the
// dummy position is a programmer error and panics, since there is no
// meaningful "dummy plus one".
func (p Pos) Offset(delta int) Pos {
	if p.IsDummy() {
		panic("source: cannot offset the dummy position")
	}
	next := int64(p) + int64(delta)
	if next < 0 {
		panic(fmt.Sprintf("source: position underflow: %d + %d", p, delta))
	}
	return Pos(next)
}

func (p Pos) String() string {
	if p.IsDummy() {
		return "<dummy>"
	}
	return fmt.Sprintf("%d", uint32(p))
}
