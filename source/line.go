package source

// SourceLine identifies a single line within a loaded SourceFile by its
// 0-based index into that file's line table.
type SourceLine struct {
	file *SourceFile
	line uint32
}

// File returns the file this line belongs to.
func (l SourceLine) File() *SourceFile {
	return l.file
}

// LineNumber returns the 1-based line number.
func (l SourceLine) LineNumber() uint32 {
	return l.line + 1
}

// Source returns this line's text, including its trailing line terminator
// if it has one.
func (l SourceLine) Source() string {
	return l.file.lookupLineSource(int(l.line))
}

// Span returns this line's span within the global position space.
func (l SourceLine) Span() Span {
	return l.file.lookupLineSpan(int(l.line))
}

// PosInfo is the human-readable resolution of a Pos: which file it falls
// in, its 1-based line and column, and its 0-based display column.
type PosInfo struct {
	File       *SourceFile
	Line       int
	Col        int
	ColDisplay int
}

// Name returns the readable name of the owning file.
func (i PosInfo) Name() string {
	return i.File.Name()
}
