// Package width measures the number of terminal cells a rune or string is
// expected to occupy when printed, for use by the diagnostic renderer's
// gutter and caret alignment.
//
// Unlike a byte or rune count, this must account for East Asian wide
// characters (two cells), zero-width combining marks (zero cells), and
// tabstops (which justify to the next multiple of a configured width).
// Measurement is delegated to github.com/rivo/uniseg, which implements the
// Unicode text segmentation algorithms this requires; hand-rolling a East
// Asian Width table here would just reimplement a subset of what uniseg
// already does correctly.
package width

import "github.com/rivo/uniseg"

// RuneWidth returns the number of terminal cells r occupies, not accounting
// for tabstops. A tab should be measured with Ruler.Measure or Width
// instead, since its width depends on the current column.
func RuneWidth(r rune) int {
	return uniseg.StringWidth(string(r))
}

// Width measures the rendered width of s, treating tab as advancing to the
// next column that is a multiple of tabstop.
func Width(s string, tabstop int) int {
	var r Ruler
	r.tabstop = tabstop
	for _, ch := range s {
		r.Measure(ch)
	}
	return r.width
}

// Ruler tracks the running width of a string as it is measured one rune at a
// time, so that callers (such as the line-scanning pass in package source)
// can interleave width measurement with other per-byte bookkeeping instead
// of measuring the whole line in one pass.
//
// A zero Ruler is ready to use and treats tab as advancing by a single
// cell; construct one with NewRuler instead to configure a wider tabstop,
// since the tabstop can only be set at construction, not changed on an
// existing Ruler.
type Ruler struct {
	tabstop int
	width   int
}

// NewRuler returns a Ruler that treats tab as justifying to the next column
// that is a multiple of tabstop.
func NewRuler(tabstop int) Ruler {
	return Ruler{tabstop: tabstop}
}

// Measure pushes ch onto the running tally and returns the ruler's total
// width after including it.
func (r *Ruler) Measure(ch rune) int {
	if ch == '\t' {
		tabstop := r.tabstop
		if tabstop <= 0 {
			tabstop = 1
		}
		r.width += tabstop - r.width%tabstop
	} else {
		r.width += RuneWidth(ch)
	}
	return r.width
}

// Width returns the total width measured so far.
func (r *Ruler) Width() int {
	return r.width
}
