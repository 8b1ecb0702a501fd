package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kkshinkai/kona-diagnostic/report"
	"github.com/kkshinkai/kona-diagnostic/source"
)

type recordingEmitter struct {
	sm   *source.SourceMap
	diag []*report.Diagnostic
}

func (e *recordingEmitter) EmitDiagnostic(diag *report.Diagnostic) {
	e.diag = append(e.diag, diag)
}

func (e *recordingEmitter) SourceMap() *source.SourceMap {
	return e.sm
}

func TestBuilderEmitRecordsDiagnostic(t *testing.T) {
	emitter := &recordingEmitter{}
	engine := report.WithEmitter(emitter)

	engine.CreateErr("unexpected token").SetPrimaryLabel(source.Dummy(), "here").Emit()

	if assert.Len(t, emitter.diag, 1) {
		assert.Equal(t, report.LevelError, emitter.diag[0].Level)
		assert.Equal(t, "unexpected token", emitter.diag[0].Message)
		assert.Equal(t, "here", emitter.diag[0].PrimaryLabel.Message)
	}
}

func TestBuilderCancelDoesNotEmit(t *testing.T) {
	emitter := &recordingEmitter{}
	engine := report.WithEmitter(emitter)

	engine.CreateWarn("unused binding").Cancel()

	assert.Empty(t, emitter.diag)
}

func TestBuilderDoubleEmitPanics(t *testing.T) {
	emitter := &recordingEmitter{}
	engine := report.WithEmitter(emitter)

	b := engine.CreateNote("fyi")
	b.Emit()

	assert.Panics(t, func() { b.Emit() })
}

func TestBuilderEmitAfterCancelPanics(t *testing.T) {
	emitter := &recordingEmitter{}
	engine := report.WithEmitter(emitter)

	b := engine.CreateErr("oops")
	b.Cancel()

	assert.Panics(t, func() { b.Emit() })
}

func TestBuilderCancelAfterEmitPanics(t *testing.T) {
	emitter := &recordingEmitter{}
	engine := report.WithEmitter(emitter)

	b := engine.CreateErr("oops")
	b.Emit()

	assert.Panics(t, func() { b.Cancel() })
}

func TestBuilderSetPrimarySpanTwicePanics(t *testing.T) {
	emitter := &recordingEmitter{}
	engine := report.WithEmitter(emitter)

	b := engine.CreateErr("oops")
	b.SetPrimarySpan(source.FromBytes(1, 2))

	assert.Panics(t, func() { b.SetPrimarySpan(source.FromBytes(2, 3)) })

	b.Cancel()
}

func TestWithBuilderAutoCancelsUnconsumed(t *testing.T) {
	emitter := &recordingEmitter{}
	engine := report.WithEmitter(emitter)

	report.WithBuilder(engine, report.LevelNote, "scratch note", func(b *report.DiagnosticBuilder) {
		b.SetPrimaryLabel(source.Dummy(), "unused")
		// fn returns without calling Emit or Cancel.
	})

	assert.Empty(t, emitter.diag)
}

func TestWithBuilderHonorsExplicitEmit(t *testing.T) {
	emitter := &recordingEmitter{}
	engine := report.WithEmitter(emitter)

	report.WithBuilder(engine, report.LevelError, "explicit emit", func(b *report.DiagnosticBuilder) {
		b.Emit()
	})

	assert.Len(t, emitter.diag, 1)
}

func TestAddSublabelAppends(t *testing.T) {
	emitter := &recordingEmitter{}
	engine := report.WithEmitter(emitter)

	engine.CreateErr("mismatched types").
		SetPrimaryLabel(source.FromBytes(10, 20), "expected int").
		AddSublabel(source.FromBytes(1, 5), "declared here").
		AddSubspan(source.FromBytes(30, 35)).
		Emit()

	if assert.Len(t, emitter.diag, 1) {
		assert.Len(t, emitter.diag[0].Sublabels, 2)
		assert.Equal(t, "declared here", emitter.diag[0].Sublabels[0].Message)
		assert.Equal(t, "", emitter.diag[0].Sublabels[1].Message)
	}
}
