// Package report implements the diagnostic engine: level-tagged, labelled
// diagnostic records and a terminal renderer that annotates source snippets
// with carets, using the source package's position registry to resolve
// spans to lines and columns.
package report

import "github.com/kkshinkai/kona-diagnostic/source"

// Level is a diagnostic's severity.
type Level int8

const (
	// LevelError marks a compilation error. Kona has no error-recovery
	// mechanism: callers typically treat the first Error as fatal.
	LevelError Level = iota
	// LevelWarn marks a warning or lint.
	LevelWarn
	// LevelNote marks an informational message.
	LevelNote
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warning"
	case LevelNote:
		return "note"
	default:
		return "unknown"
	}
}

// Label attaches a message to a span: either the primary annotation of a
// Diagnostic or one of its sublabels.
type Label struct {
	Span    source.Span
	Message string
}

// Diagnostic is a single level-tagged compiler message, with one primary
// label, any number of sublabels, and any number of free-form notes (plain
// strings with no associated span, such as a stack trace attached by
// DiagnosticEngine.CatchICE). The primary label's span is also treated as
// the diagnostic's own span.
type Diagnostic struct {
	Level        Level
	Message      string
	PrimaryLabel Label
	Sublabels    []Label
	Notes        []string
}

// Span returns the diagnostic's span, which is its primary label's span.
func (d *Diagnostic) Span() source.Span {
	return d.PrimaryLabel.Span
}
