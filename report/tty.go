package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/kkshinkai/kona-diagnostic/source"
)

// TTYOptions configures a TTYEmitter. There is no configuration-file
// binding for these: they are plain fields, set by whatever constructs the
// engine, the same way protocompile's Renderer is a plain struct.
type TTYOptions struct {
	// Out is where rendered diagnostics are written. Defaults to os.Stderr
	// if nil.
	Out io.Writer
	// Color selects when ANSI color is used. Defaults to ColorAuto.
	Color ColorChoice
}

// TTYEmitter renders diagnostics as colored terminal snippets, using a
// SourceMap to resolve spans to file names, lines, and carets.
//
// The gutter uses " .- " / " | " / " '- " rather than the more familiar
// "-->", deliberately: a VS Code problem matcher
// ("^[\s->=]*(.*?):(\d*):(\d*)\s*$") would otherwise mistake this output
// for a Rustc error.
type TTYEmitter struct {
	sm     *source.SourceMap
	out    io.Writer
	styles styleSheet
}

// NewTTYEmitter returns a TTYEmitter that resolves spans against sm.
func NewTTYEmitter(sm *source.SourceMap, opts TTYOptions) *TTYEmitter {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	colorize := false
	switch opts.Color {
	case ColorAlways:
		colorize = true
	case ColorNever:
		colorize = false
	case ColorAuto:
		if f, ok := out.(*os.File); ok {
			colorize = term.IsTerminal(int(f.Fd()))
		}
	}

	return &TTYEmitter{
		sm:     sm,
		out:    out,
		styles: newStyleSheet(colorize),
	}
}

// SourceMap implements Emitter.
func (e *TTYEmitter) SourceMap() *source.SourceMap {
	return e.sm
}

// EmitDiagnostic implements Emitter. I/O failures while writing to the
// underlying stream are a programmer/environment problem this reference
// implementation cannot meaningfully recover from, so it panics; a
// production emitter embedding TTYEmitter in a larger pipeline should
// prefer an io.Writer that cannot fail (a buffer), or wrap this type to
// surface the error instead.
func (e *TTYEmitter) EmitDiagnostic(diag *Diagnostic) {
	if err := e.tryEmitDiagnostic(diag); err != nil {
		panic(fmt.Sprintf("report: failed to emit diagnostic: %v", err))
	}
}

func (e *TTYEmitter) tryEmitDiagnostic(diag *Diagnostic) error {
	levelName := diag.Level.String()
	levelColor := e.styles.levelColor(diag.Level)
	markChar := byte('^')
	if diag.Level == LevelNote {
		markChar = '-'
	}

	if _, err := fmt.Fprintf(e.out, "%s%s%s: %s\n", levelColor, levelName, e.styles.reset, diag.Message); err != nil {
		return err
	}

	if e.sm == nil || diag.Span().IsDummy() {
		return e.emitNotes(diag)
	}

	lines, err := e.sm.LookupLinesAtSpan(diag.Span())
	if err != nil || len(lines) == 0 {
		return e.emitNotes(diag)
	}

	indent := len(fmt.Sprintf("%d", lines[len(lines)-1].LineNumber()))

	startInfo, err := e.sm.LookupPosInfo(diag.Span().Start())
	if err != nil {
		return e.emitNotes(diag)
	}
	endInfo, err := e.sm.LookupPosInfo(diag.Span().End())
	if err != nil {
		return e.emitNotes(diag)
	}

	gutter := e.styles.gutterColor()

	if _, err := fmt.Fprintf(e.out, "%s%*s .- %s%s:%d:%d\n",
		gutter, indent, "", e.styles.reset, startInfo.Name(), startInfo.Line, startInfo.Col); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(e.out, "%s%*s |%s\n", gutter, indent, "", e.styles.reset); err != nil {
		return err
	}

	for idx, line := range lines {
		if _, err := fmt.Fprintf(e.out, "%s%*d | %s", gutter, indent, line.LineNumber(), e.styles.reset); err != nil {
			return err
		}
		if _, err := fmt.Fprint(e.out, line.Source()); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(e.out, "%s%*s | %s", gutter, indent, "", e.styles.reset); err != nil {
			return err
		}

		markStart := 0
		if idx == 0 {
			markStart = startInfo.ColDisplay
		}

		markEnd := endInfo.ColDisplay
		if idx != len(lines)-1 {
			lineEndInfo, err := e.sm.LookupPosInfo(line.Span().End().Offset(-1))
			if err != nil {
				return e.emitNotes(diag)
			}
			markEnd = lineEndInfo.ColDisplay
		}

		marksLine := strings.Repeat(" ", markStart) +
			strings.Repeat(string(markChar), max(markEnd-markStart, 0))
		if idx == len(lines)-1 && diag.PrimaryLabel.Message != "" {
			marksLine += " " + diag.PrimaryLabel.Message
		}
		if _, err := fmt.Fprintf(e.out, "%s%s%s\n", levelColor, marksLine, e.styles.reset); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(e.out, "%s%*s '-%s\n", gutter, indent, "", e.styles.reset); err != nil {
		return err
	}

	return e.emitNotes(diag)
}

// emitNotes prints diag's free-form notes (such as the stack trace attached
// by DiagnosticEngine.CatchICE), one per line, after the snippet.
func (e *TTYEmitter) emitNotes(diag *Diagnostic) error {
	for _, note := range diag.Notes {
		if _, err := fmt.Fprintf(e.out, "note: %s\n", note); err != nil {
			return err
		}
	}
	return nil
}
