package report

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// CatchICE recovers a panic as an internal compiler error (an "ICE") and
// emits it through the engine as an Error diagnostic instead of letting it
// reach the runtime's default crash handler. Call it in a defer statement:
//
//	defer engine.CatchICE(false, nil)
//
// If diagnose is non-nil, it is called with the builder before the stack
// trace is appended, giving the caller a chance to attach a primary span or
// sublabels pointing at whatever was being processed when the panic
// happened. If resume is true, the panic is re-raised after the diagnostic
// has been emitted; otherwise it is fully swallowed.
//
// This is the module's one exception to "no logging, diagnostics are the
// output channel": an ICE is reported through the same diagnostic engine
// as everything else, as a stack trace appended to the diagnostic's Notes,
// rather than through a side-channel logger.
func (e *DiagnosticEngine) CatchICE(resume bool, diagnose func(*DiagnosticBuilder)) {
	panicked := recover()
	if panicked == nil {
		return
	}

	b := e.CreateErr(fmt.Sprintf("internal compiler error: %v", panicked))
	if diagnose != nil {
		diagnose(b)
	}

	b.AddNote("")
	b.AddNote("stack trace:")
	for _, line := range stackTrace() {
		b.AddNote(line)
	}
	b.Emit()

	if resume {
		panic(panicked)
	}
}

// stackTrace returns debug.Stack(), split into lines with the goroutine
// header and the frames of debug.Stack and stackTrace itself trimmed off, so
// the notes start at CatchICE's own frame, which is followed by the runtime's
// panic frame and then the frame that panicked.
func stackTrace() []string {
	lines := strings.Split(strings.TrimSpace(string(debug.Stack())), "\n")
	const framesToSkip = 5
	if len(lines) > framesToSkip {
		return lines[framesToSkip:]
	}
	return lines
}
