package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kkshinkai/kona-diagnostic/source"
)

func TestPosDummy(t *testing.T) {
	assert.True(t, source.PosFromU32(0).IsDummy())
	assert.False(t, source.PosFromU32(1).IsDummy())
}

func TestPosOffset(t *testing.T) {
	p := source.PosFromU32(10)
	assert.Equal(t, source.PosFromU32(13), p.Offset(3))
	assert.Equal(t, source.PosFromU32(7), p.Offset(-3))
}

func TestPosOffsetDummyPanics(t *testing.T) {
	assert.Panics(t, func() {
		source.PosFromU32(0).Offset(1)
	})
}

func TestSpanNewRejectsMixedDummy(t *testing.T) {
	assert.Panics(t, func() {
		source.New(source.PosFromU32(0), source.PosFromU32(5))
	})
	assert.Panics(t, func() {
		source.New(source.PosFromU32(5), source.PosFromU32(0))
	})
}

func TestSpanNewRejectsBackwards(t *testing.T) {
	assert.Panics(t, func() {
		source.New(source.PosFromU32(5), source.PosFromU32(2))
	})
}

func TestSpanNewAcceptsDummyPair(t *testing.T) {
	// This package's New deviates from the upstream Rust implementation,
	// which only lets Dummy construct (0, 0); see DESIGN.md.
	s := source.New(source.PosFromU32(0), source.PosFromU32(0))
	assert.True(t, s.IsDummy())
}

func TestSpanAcross(t *testing.T) {
	a := source.FromBytes(2, 5)
	b := source.FromBytes(8, 10)
	assert.Equal(t, source.FromBytes(2, 10), a.Across(b))

	c := source.FromBytes(3, 9)
	d := source.FromBytes(8, 15)
	assert.Equal(t, source.FromBytes(3, 15), c.Across(d))
}

func TestSpanAcrossCommutative(t *testing.T) {
	a := source.FromBytes(2, 5)
	b := source.FromBytes(8, 10)
	assert.Equal(t, a.Across(b), b.Across(a))
}

func TestSpanAcrossAssociative(t *testing.T) {
	a := source.FromBytes(1, 3)
	b := source.FromBytes(2, 6)
	c := source.FromBytes(5, 9)
	assert.Equal(t, a.Across(b).Across(c), a.Across(b.Across(c)))
}

func TestSpanContains(t *testing.T) {
	s := source.FromBytes(5, 10)
	assert.True(t, s.Contains(source.PosFromU32(5)))
	assert.True(t, s.Contains(source.PosFromU32(10)))
	assert.True(t, s.Contains(source.PosFromU32(7)))
	assert.False(t, s.Contains(source.PosFromU32(4)))
	assert.False(t, s.Contains(source.PosFromU32(11)))
}
