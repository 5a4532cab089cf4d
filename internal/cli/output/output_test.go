package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTest(mode Mode, tty bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, tty, mode), out, errOut
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode Mode
		tty  bool
		want Mode
	}{
		{ModeAuto, true, ModeText},
		{ModeAuto, false, ModeMarkdown},
		{"", false, ModeMarkdown},
		{"bogus", true, ModeText},
		{ModeText, false, ModeText},
		{ModeMarkdown, true, ModeMarkdown},
		{ModeJSON, true, ModeJSON},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r, _, _ := newTest(tt.mode, tt.tty)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestNewRenderer_BufferIsNotTTY(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestTable(t *testing.T) {
	header := []string{"Name", "Shared"}
	rows := [][]string{{"customer", "yes"}, {"region", "no"}}

	t.Run("markdown", func(t *testing.T) {
		r, out, _ := newTest(ModeMarkdown, false)
		r.Table(header, rows)
		assert.Contains(t, out.String(), "| Name | Shared |")
		assert.Contains(t, out.String(), "| customer | yes |")
	})

	t.Run("text", func(t *testing.T) {
		r, out, _ := newTest(ModeText, false)
		r.Table(header, rows)
		assert.Contains(t, out.String(), "┌")
		assert.Contains(t, out.String(), "customer")
		assert.NotContains(t, out.String(), "\x1b[")
	})
}

func TestStatusLines(t *testing.T) {
	r, out, errOut := newTest(ModeMarkdown, false)
	r.Success("saved")
	r.Warning("careful")
	r.Error("broken")

	assert.Equal(t, "✓ saved\n", out.String())
	assert.Equal(t, "! careful\n✗ broken\n", errOut.String())
}

func TestStatusLines_ColoredOnTTY(t *testing.T) {
	r, out, _ := newTest(ModeText, true)
	r.Success("saved")
	assert.Contains(t, out.String(), "✓")
	assert.Contains(t, out.String(), "saved")
}

func TestHeaderAndKeyValues(t *testing.T) {
	r, out, _ := newTest(ModeMarkdown, false)
	r.Header(2, "Group customer")
	r.KeyValues("Shared", "true", "Description", "", "Annotations", "3")

	assert.Equal(t, "## Group customer\n\n- **Shared:** true\n- **Annotations:** 3\n", out.String())
}

func TestJSON(t *testing.T) {
	r, out, _ := newTest(ModeJSON, false)
	require.NoError(t, r.JSON(map[string]int{"count": 2}))
	assert.JSONEq(t, `{"count": 2}`, out.String())
}

func TestFormatHeader(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(0, "Title"))
	assert.Equal(t, "### Title", FormatHeader(3, "Title"))
}
