package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kkshinkai/kona-diagnostic/report"
	"github.com/kkshinkai/kona-diagnostic/source"
)

func TestTTYEmitterRendersSnippet(t *testing.T) {
	sm := source.NewSourceMap()
	name := "ex.sml"
	file := sm.LoadVirtualFile(&name, "val x = 1\nval y = 2\n")

	var buf bytes.Buffer
	engine := report.WithTTYEmitter(sm, report.TTYOptions{Out: &buf, Color: report.ColorNever})

	_ = file
	engine.CreateErr("expected semicolon").
		SetPrimaryLabel(source.FromBytes(11, 12), "expected semicolon").
		Emit()

	out := buf.String()
	lines := strings.Split(out, "\n")

	assert.Equal(t, "error: expected semicolon", lines[0])

	var sawSourceLine, sawCaretLine bool
	for _, l := range lines {
		if strings.Contains(l, "2 | val y = 2") {
			sawSourceLine = true
		}
		trimmed := strings.TrimLeft(l, " |")
		if strings.HasPrefix(trimmed, "^") && strings.Contains(trimmed, "expected semicolon") {
			sawCaretLine = true
		}
	}
	assert.True(t, sawSourceLine, "expected rendered output to contain the source line, got:\n%s", out)
	assert.True(t, sawCaretLine, "expected rendered output to contain a caret line, got:\n%s", out)
}

func TestTTYEmitterSkipsSnippetForDummySpan(t *testing.T) {
	sm := source.NewSourceMap()

	var buf bytes.Buffer
	engine := report.WithTTYEmitter(sm, report.TTYOptions{Out: &buf, Color: report.ColorNever})

	engine.CreateWarn("no location available").Emit()

	out := buf.String()
	assert.Equal(t, "warning: no location available\n", out)
}

func TestTTYEmitterUsesLevelColorWhenEnabled(t *testing.T) {
	sm := source.NewSourceMap()

	var buf bytes.Buffer
	engine := report.WithTTYEmitter(sm, report.TTYOptions{Out: &buf, Color: report.ColorAlways})

	engine.CreateErr("boom").Emit()

	assert.Contains(t, buf.String(), "\033[")
}

func TestTTYEmitterNeverColorsWhenDisabled(t *testing.T) {
	sm := source.NewSourceMap()

	var buf bytes.Buffer
	engine := report.WithTTYEmitter(sm, report.TTYOptions{Out: &buf, Color: report.ColorNever})

	engine.CreateErr("boom").Emit()

	assert.NotContains(t, buf.String(), "\033[")
}
