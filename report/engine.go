package report

import (
	"sync"

	"github.com/kkshinkai/kona-diagnostic/source"
)

// Emitter renders diagnostics somewhere: a terminal, a JSON stream, a test
// buffer. Not all emitters need a SourceMap — one that reports only byte
// offsets, for instance, has no use for one.
type Emitter interface {
	EmitDiagnostic(diag *Diagnostic)
	SourceMap() *source.SourceMap
}

// DiagnosticEngine owns exactly one Emitter behind a mutex, so diagnostics
// are handed to it one at a time even when multiple goroutines create and
// emit builders concurrently. The builders themselves are single-owner and
// not shared.
type DiagnosticEngine struct {
	mu      sync.Mutex
	emitter Emitter
}

// WithEmitter returns an engine that renders diagnostics with emitter.
func WithEmitter(emitter Emitter) *DiagnosticEngine {
	return &DiagnosticEngine{emitter: emitter}
}

// WithTTYEmitter returns an engine that renders diagnostics to the terminal,
// annotating snippets using sm.
func WithTTYEmitter(sm *source.SourceMap, opts TTYOptions) *DiagnosticEngine {
	return WithEmitter(NewTTYEmitter(sm, opts))
}

// CreateDiagnostic returns a builder for a new diagnostic at the given
// level, with a dummy primary span ready to be populated.
func (e *DiagnosticEngine) CreateDiagnostic(level Level, msg string) *DiagnosticBuilder {
	return newBuilder(e, Diagnostic{
		Level:        level,
		Message:      msg,
		PrimaryLabel: Label{Span: source.Dummy()},
	})
}

// CreateErr is shorthand for CreateDiagnostic(LevelError, msg).
func (e *DiagnosticEngine) CreateErr(msg string) *DiagnosticBuilder {
	return e.CreateDiagnostic(LevelError, msg)
}

// CreateWarn is shorthand for CreateDiagnostic(LevelWarn, msg).
func (e *DiagnosticEngine) CreateWarn(msg string) *DiagnosticBuilder {
	return e.CreateDiagnostic(LevelWarn, msg)
}

// CreateNote is shorthand for CreateDiagnostic(LevelNote, msg).
func (e *DiagnosticEngine) CreateNote(msg string) *DiagnosticBuilder {
	return e.CreateDiagnostic(LevelNote, msg)
}

func (e *DiagnosticEngine) emitDiagnostic(diag *Diagnostic) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.emitter.EmitDiagnostic(diag)
}
