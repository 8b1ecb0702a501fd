package report

import (
	"fmt"
	"runtime"

	"github.com/kkshinkai/kona-diagnostic/source"
)

// DiagnosticBuilder is a linear-use builder for a Diagnostic: it must be
// disposed of by exactly one terminal call to Emit or Cancel. Dropping one
// without calling either is a programmer bug.
//
// Go has no destructors, so this contract is enforced two ways: first, a
// consumed flag makes a second Emit/Cancel panic immediately; second, a
// finalizer registered at construction panics if the builder is garbage
// collected while still unconsumed, which is the closest this language
// gets to the Rust original's Drop bomb. The finalizer is a backstop, not
// the primary mechanism — it only fires at the next GC cycle, possibly long
// after the bug was introduced. Prefer WithBuilder, which disposes of the
// builder deterministically via a closure.
type DiagnosticBuilder struct {
	engine     *DiagnosticEngine
	diagnostic Diagnostic
	consumed   bool
}

func newBuilder(engine *DiagnosticEngine, diagnostic Diagnostic) *DiagnosticBuilder {
	b := &DiagnosticBuilder{engine: engine, diagnostic: diagnostic}
	runtime.SetFinalizer(b, func(b *DiagnosticBuilder) {
		if !b.consumed {
			panic("report: DiagnosticBuilder was garbage collected without being emitted or cancelled")
		}
	})
	return b
}

func (b *DiagnosticBuilder) checkNotConsumed() {
	if b.consumed {
		panic("report: DiagnosticBuilder was already emitted or cancelled")
	}
}

// SetPrimaryLabel sets the diagnostic's primary span and message.
func (b *DiagnosticBuilder) SetPrimaryLabel(span source.Span, msg string) *DiagnosticBuilder {
	b.checkNotConsumed()
	b.diagnostic.PrimaryLabel = Label{Span: span, Message: msg}
	return b
}

// SetPrimarySpan sets the diagnostic's primary span without a message. It
// panics if a primary span has already been set, since a diagnostic has
// exactly one primary label.
func (b *DiagnosticBuilder) SetPrimarySpan(span source.Span) *DiagnosticBuilder {
	b.checkNotConsumed()
	if !b.diagnostic.PrimaryLabel.Span.IsDummy() {
		panic("report: primary span already set")
	}
	b.diagnostic.PrimaryLabel.Span = span
	return b
}

// AddSublabel appends a secondary span with a message.
func (b *DiagnosticBuilder) AddSublabel(span source.Span, msg string) *DiagnosticBuilder {
	b.checkNotConsumed()
	b.diagnostic.Sublabels = append(b.diagnostic.Sublabels, Label{Span: span, Message: msg})
	return b
}

// AddSubspan appends a secondary span without a message.
func (b *DiagnosticBuilder) AddSubspan(span source.Span) *DiagnosticBuilder {
	return b.AddSublabel(span, "")
}

// AddNote appends a free-form note with no associated span.
func (b *DiagnosticBuilder) AddNote(note string) *DiagnosticBuilder {
	b.checkNotConsumed()
	b.diagnostic.Notes = append(b.diagnostic.Notes, note)
	return b
}

// Emit hands the built Diagnostic to the engine and consumes the builder.
// Calling Emit or Cancel again afterwards panics.
func (b *DiagnosticBuilder) Emit() {
	b.checkNotConsumed()
	b.consumed = true
	runtime.SetFinalizer(b, nil)
	b.engine.emitDiagnostic(&b.diagnostic)
}

// Cancel consumes the builder without emitting its diagnostic.
func (b *DiagnosticBuilder) Cancel() {
	b.checkNotConsumed()
	b.consumed = true
	runtime.SetFinalizer(b, nil)
}

// WithBuilder is the closure-form alternative to holding a DiagnosticBuilder
// directly: fn is called with a fresh builder, and if fn returns without
// calling Emit or Cancel on it, WithBuilder cancels it automatically. This
// gives callers a way to satisfy the linear-use contract without relying on
// the finalizer's GC-timed backstop.
func WithBuilder(engine *DiagnosticEngine, level Level, msg string, fn func(*DiagnosticBuilder)) {
	b := engine.CreateDiagnostic(level, msg)
	defer func() {
		if !b.consumed {
			b.Cancel()
		}
	}()
	fn(b)
}

func (b *DiagnosticBuilder) String() string {
	return fmt.Sprintf("DiagnosticBuilder(%s: %s)", b.diagnostic.Level, b.diagnostic.Message)
}
