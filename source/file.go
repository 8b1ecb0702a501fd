package source

import (
	"slices"
	"unicode/utf8"

	"github.com/kkshinkai/kona-diagnostic/internal/width"
)

// SourceFile is one immutable unit of source text registered with a
// SourceMap, together with the tables needed to answer line/column queries
// against it without rescanning the text on every lookup.
//
// A SourceFile is never mutated after construction; multiple goroutines may
// hold and read the same *SourceFile concurrently without synchronization.
type SourceFile struct {
	path SourcePath
	src  string
	span Span

	// lines[i] is the global position of the first byte of the (i+1)-th
	// line (0-indexed). lines[0] equals span.start for a non-empty file; an
	// empty file has no entries. If src ends with a newline, the position
	// just past it is not recorded here.
	lines []Pos

	multiByteChars []multiByteChar
	nonNarrowChars []nonNarrowChar
}

type multiByteChar struct {
	pos Pos
	len uint8 // UTF-8 encoded length of the character: 2, 3, or 4.
}

type nonNarrowCharKind uint8

const (
	zeroWidth nonNarrowCharKind = iota
	wide
	tab
)

type nonNarrowChar struct {
	pos  Pos
	kind nonNarrowCharKind
}

// width returns the display-column advance of this character, used by
// lookupLineColAndColDisplay.
func (c nonNarrowChar) width() int {
	switch c.kind {
	case zeroWidth:
		return 0
	case wide:
		return 2
	case tab:
		return 4
	default:
		panic("source: unreachable non-narrow char kind")
	}
}

// newSourceFile builds a SourceFile for src, whose first byte is assigned
// the global position start. Only a SourceMap should call this, since it is
// responsible for making sure start was actually reserved via
// allocatePosSpace.
func newSourceFile(path SourcePath, src string, start Pos) *SourceFile {
	span := New(start, start.Offset(len(src)))
	lines, multiByteChars, nonNarrowChars := analyze(src, start)
	return &SourceFile{
		path:           path,
		src:            src,
		span:           span,
		lines:          lines,
		multiByteChars: multiByteChars,
		nonNarrowChars: nonNarrowChars,
	}
}

// Path returns the identity this file was registered under.
func (f *SourceFile) Path() SourcePath {
	return f.path
}

// Src returns the file's full, immutable source text.
func (f *SourceFile) Src() string {
	return f.src
}

// Span returns the file's assigned range in the global position space.
func (f *SourceFile) Span() Span {
	return f.span
}

// Name renders this file's path the way a diagnostic should display it.
func (f *SourceFile) Name() string {
	return f.path.ReadableName()
}

func (f *SourceFile) isEmpty() bool {
	return f.span.start == f.span.end
}

func (f *SourceFile) contains(pos Pos) bool {
	return pos >= f.span.start && pos <= f.span.end
}

// analyze performs the single scanning pass over src described in this
// package's specification: it records every line start, every multi-byte
// UTF-8 character, and every character whose display width is not 1.
func analyze(src string, start Pos) ([]Pos, []multiByteChar, []nonNarrowChar) {
	lines := []Pos{start}
	var multiByteChars []multiByteChar
	var nonNarrowChars []nonNarrowChar

	offset := start.ToUsize()
	bytes := []byte(src)

	idx := 0
	for idx < len(bytes) {
		b := bytes[idx]
		charLen := 1

		switch {
		case b < 0x20:
			pos := PosFromU32(uint32(idx + offset))
			switch {
			case b == '\n':
				lines = append(lines, pos.Offset(1))
			case b == '\r' && (idx+1 >= len(bytes) || bytes[idx+1] != '\n'):
				lines = append(lines, pos.Offset(1))
			case b == '\t':
				nonNarrowChars = append(nonNarrowChars, nonNarrowChar{pos, tab})
			default:
				nonNarrowChars = append(nonNarrowChars, nonNarrowChar{pos, zeroWidth})
			}
		case b >= 0x7F:
			r, size := utf8.DecodeRuneInString(src[idx:])
			charLen = size

			pos := PosFromU32(uint32(idx + offset))
			if charLen > 1 {
				multiByteChars = append(multiByteChars, multiByteChar{pos, uint8(charLen)})
			}

			switch w := width.RuneWidth(r); {
			case w == 0:
				nonNarrowChars = append(nonNarrowChars, nonNarrowChar{pos, zeroWidth})
			case w != 1:
				nonNarrowChars = append(nonNarrowChars, nonNarrowChar{pos, wide})
			}
		}

		idx += charLen
	}

	if last := lines[len(lines)-1]; last == PosFromU32(uint32(len(bytes)+offset)) {
		lines = lines[:len(lines)-1]
	}

	return lines, multiByteChars, nonNarrowChars
}

// lookupLine finds the index into f.lines of the line containing pos. The
// bool result is false if the file is empty or pos precedes its first
// line, matching this package's binary-search-with-saturating-fallback
// convention.
func (f *SourceFile) lookupLine(pos Pos) (int, bool) {
	idx, exact := slices.BinarySearch(f.lines, pos)
	if exact {
		return idx, true
	}
	if idx == 0 {
		return 0, false
	}
	return idx - 1, true
}

// lookupLineSpan returns the span of the given 0-based line index.
func (f *SourceFile) lookupLineSpan(lineIndex int) Span {
	if f.isEmpty() {
		return Span{f.span.start, f.span.end}
	}
	if lineIndex == len(f.lines)-1 {
		return Span{f.lines[lineIndex], f.span.end}
	}
	return Span{f.lines[lineIndex], f.lines[lineIndex+1]}
}

// lookupLineSource returns the source text of the given 0-based line index,
// including its trailing line terminator if any.
func (f *SourceFile) lookupLineSource(lineIndex int) string {
	span := f.lookupLineSpan(lineIndex)
	start := span.start.ToUsize() - f.span.start.ToUsize()
	end := span.end.ToUsize() - f.span.start.ToUsize()
	return f.src[start:end]
}

// lookupLineAndCol returns the 1-based line number and 1-based column of
// pos. If pos precedes the file's first line, both are 0.
func (f *SourceFile) lookupLineAndCol(pos Pos) (line, col int) {
	idx, ok := f.lookupLine(pos)
	if !ok {
		return 0, 0
	}

	lineStart := f.lines[idx]
	startIdx := searchMultiByteChars(f.multiByteChars, lineStart)
	extra := 0
	for _, c := range f.multiByteChars[startIdx:] {
		if c.pos >= pos {
			break
		}
		extra += int(c.len) - 1
	}

	col = pos.ToUsize() - lineStart.ToUsize() - extra + 1
	return idx + 1, col
}

// lookupLineColAndColDisplay returns the 1-based line, 1-based column, and
// 0-based display column of pos, the last accounting for tabs and East
// Asian Width.
func (f *SourceFile) lookupLineColAndColDisplay(pos Pos) (line, col, colDisplay int) {
	line, col = f.lookupLineAndCol(pos)
	if line == 0 {
		return 0, 0, 0
	}

	lineStart := f.lines[line-1]
	startIdx := searchNonNarrowChars(f.nonNarrowChars, lineStart)

	width := 0
	count := 0
	for _, c := range f.nonNarrowChars[startIdx:] {
		if c.pos >= pos {
			break
		}
		width += c.width()
		count++
	}

	colDisplay = (col - 1) + width - count
	return line, col, colDisplay
}

func searchMultiByteChars(xs []multiByteChar, target Pos) int {
	idx, _ := slices.BinarySearchFunc(xs, target, func(x multiByteChar, target Pos) int {
		return comparePos(x.pos, target)
	})
	return idx
}

func searchNonNarrowChars(xs []nonNarrowChar, target Pos) int {
	idx, _ := slices.BinarySearchFunc(xs, target, func(x nonNarrowChar, target Pos) int {
		return comparePos(x.pos, target)
	})
	return idx
}

func comparePos(a, b Pos) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
