package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(mode Mode, isTTY bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode  Mode
		isTTY bool
		want  Mode
	}{
		{ModeAuto, true, ModeText},
		{ModeAuto, false, ModeMarkdown},
		{"", false, ModeMarkdown},
		{ModeText, false, ModeText},
		{ModeMarkdown, true, ModeMarkdown},
		{ModeJSON, true, ModeJSON},
		{ModeYAML, false, ModeYAML},
	}
	for _, tt := range tests {
		r, _, _ := newTestRenderer(tt.mode, tt.isTTY)
		assert.Equal(t, tt.want, r.EffectiveMode(), "mode=%q tty=%v", tt.mode, tt.isTTY)
	}
}

func TestModeValid(t *testing.T) {
	assert.True(t, Mode("").Valid())
	assert.True(t, ModeYAML.Valid())
	assert.False(t, Mode("xml").Valid())
}

func TestNewRenderer_NonFileIsNotTTY(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestTable(t *testing.T) {
	header := []string{"Name", "Mode"}
	rows := [][]string{{"expr", "parse"}, {"num", "text"}}

	r, out, _ := newTestRenderer(ModeMarkdown, false)
	r.Table(header, rows)
	assert.Contains(t, out.String(), "| Name | Mode |")
	assert.Contains(t, out.String(), "| expr | parse |")

	r, out, _ = newTestRenderer(ModeText, false)
	r.Table(header, rows)
	assert.Contains(t, out.String(), "┌")
	assert.Contains(t, out.String(), "expr")
	assert.NotContains(t, out.String(), "| Name |")
}

func TestStructured(t *testing.T) {
	v := map[string]any{"name": "expr", "alters": 2}

	r, out, _ := newTestRenderer(ModeJSON, false)
	require.NoError(t, r.JSON(v))
	assert.JSONEq(t, `{"name":"expr","alters":2}`, out.String())

	r, out, _ = newTestRenderer(ModeYAML, false)
	require.NoError(t, r.YAML(v))
	assert.YAMLEq(t, "name: expr\nalters: 2\n", out.String())
}

func TestMessagesGoToErrOut(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeMarkdown, false)
	r.Error("boom")
	r.Warning("careful")
	r.Success("done")
	r.Muted("psst")

	assert.Empty(t, out.String())
	assert.Equal(t, "Error: boom\nWarning: careful\ndone\npsst\n", errOut.String())
}

func TestHeader(t *testing.T) {
	r, out, _ := newTestRenderer(ModeMarkdown, false)
	r.Header(2, "Rules")
	assert.Equal(t, "## Rules\n", out.String())

	r, out, _ = newTestRenderer(ModeText, false)
	r.Header(1, "Rules")
	assert.Equal(t, "Rules\n", out.String())
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(0, "Title"))
	assert.Equal(t, "### Title", FormatHeader(3, "Title"))
	assert.Equal(t, "**Mode:** text", FormatKeyValue("Mode", "text"))
}

func TestTerminalStyles_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	styles := TerminalStyles(&bytes.Buffer{})
	assert.Equal(t, "boom", styles.Error.Render("boom"))
	assert.Equal(t, "Rules", styles.Header1.Render("Rules"))
}
