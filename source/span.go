package source

import "fmt"

// Span is a half-open byte range [start, end) in the global position space,
// or the reserved dummy span (0, 0) denoting "no source location".
type Span struct {
	start, end Pos
}

// New constructs a Span from start and end. It panics if exactly one of
// start/end is the dummy position, or if start > end: both are programmer
// errors, not conditions a caller can usefully recover from.
//
// Unlike the Rust implementation this package is ported from (which asserts
// that *neither* endpoint may be dummy, so (0, 0) can only be produced by
// Dummy), New accepts (0, 0) as well, following this package's own
// specification literally: only a (non-zero, 0) or (0, non-zero) pairing is
// rejected. See DESIGN.md for the reasoning.
func New(start, end Pos) Span {
	if start.IsDummy() != end.IsDummy() {
		panic(fmt.Sprintf("source: span endpoints must both be dummy or both be real, got (%v, %v)", start, end))
	}
	if start > end {
		panic(fmt.Sprintf("source: span start must not be after end, got (%v, %v)", start, end))
	}
	return Span{start, end}
}

// Dummy returns the reserved span meaning "no source location".
func Dummy() Span {
	return Span{}
}

// IsDummy reports whether s is the reserved dummy span.
func (s Span) IsDummy() bool {
	return s.start == 0 && s.end == 0
}

// Start returns the span's start position.
func (s Span) Start() Pos {
	return s.start
}

// End returns the span's end position.
func (s Span) End() Pos {
	return s.end
}

// Across returns the smallest span covering both s and other. Dummy spans
// are not special-cased: merging a real span with the dummy span yields a
// span starting at 0, which is almost never what a caller wants.
// Callers must not pass a dummy span to Across; doing so is their
// responsibility to avoid, not this package's to guard against.
func (s Span) Across(other Span) Span {
	start := s.start
	if other.start < start {
		start = other.start
	}
	end := s.end
	if other.end > end {
		end = other.end
	}
	return Span{start, end}
}

// Contains reports whether pos falls within s, inclusive of both endpoints.
func (s Span) Contains(pos Pos) bool {
	return s.start <= pos && pos <= s.end
}

// FromBytes builds a Span from a half-open byte range given as plain
// integers, the Go analogue of constructing a Span from a Range<usize> in
// the original implementation.
func FromBytes(start, end int) Span {
	return New(PosFromU32(uint32(start)), PosFromU32(uint32(end)))
}

func (s Span) String() string {
	return fmt.Sprintf("%v..%v", s.start, s.end)
}
