package report

import (
	"encoding/json"
	"io"

	"github.com/kkshinkai/kona-diagnostic/source"
)

// jsonLabel is the wire shape of a Label: a byte-offset span plus message,
// with the span's file resolved to a readable name so a consumer never has
// to load the SourceMap itself.
type jsonLabel struct {
	File    string `json:"file,omitempty"`
	Start   uint32 `json:"start"`
	End     uint32 `json:"end"`
	Message string `json:"message,omitempty"`
}

// jsonDiagnostic is the wire shape of a Diagnostic emitted by JSONEmitter.
type jsonDiagnostic struct {
	Level     string      `json:"level"`
	Message   string      `json:"message"`
	Primary   jsonLabel   `json:"primary"`
	Sublabels []jsonLabel `json:"sublabels,omitempty"`
	Notes     []string    `json:"notes,omitempty"`
}

// JSONEmitter renders each diagnostic as one JSON object per line, for
// consumption by an editor or another tool rather than a human at a
// terminal. It demonstrates that Emitter has more than one implementation:
// anything that can turn a Diagnostic into bytes can sit behind a
// DiagnosticEngine.
//
// encoding/json is used here on purpose rather than left as a gap: no
// example in this codebase's dependency corpus pulls in a third-party JSON
// library for simple struct encoding, and the standard encoder is already
// what streaming, one-object-per-line output calls for.
type JSONEmitter struct {
	sm  *source.SourceMap
	out *json.Encoder
}

// NewJSONEmitter returns a JSONEmitter that writes newline-delimited JSON
// diagnostics to w, resolving spans against sm. sm may be nil, in which
// case every label's File field is left empty and Start/End report dummy
// positions as zero.
func NewJSONEmitter(sm *source.SourceMap, w io.Writer) *JSONEmitter {
	return &JSONEmitter{sm: sm, out: json.NewEncoder(w)}
}

// SourceMap implements Emitter.
func (e *JSONEmitter) SourceMap() *source.SourceMap {
	return e.sm
}

// EmitDiagnostic implements Emitter. An encoding failure (a broken pipe, a
// write to a closed file) is treated the same way TTYEmitter treats one:
// as an environment problem the caller should have guarded against, not a
// value the Emitter interface has any way to hand back.
func (e *JSONEmitter) EmitDiagnostic(diag *Diagnostic) {
	sublabels := make([]jsonLabel, len(diag.Sublabels))
	for i, l := range diag.Sublabels {
		sublabels[i] = e.toJSONLabel(l)
	}

	record := jsonDiagnostic{
		Level:     diag.Level.String(),
		Message:   diag.Message,
		Primary:   e.toJSONLabel(diag.PrimaryLabel),
		Sublabels: sublabels,
		Notes:     diag.Notes,
	}

	if err := e.out.Encode(record); err != nil {
		panic("report: failed to encode diagnostic as JSON: " + err.Error())
	}
}

func (e *JSONEmitter) toJSONLabel(l Label) jsonLabel {
	jl := jsonLabel{
		Start:   l.Span.Start().ToU32(),
		End:     l.Span.End().ToU32(),
		Message: l.Message,
	}
	if e.sm != nil && !l.Span.IsDummy() {
		if file, err := e.sm.LookupFileAtSpan(l.Span); err == nil {
			jl.File = file.Name()
		}
	}
	return jl
}
