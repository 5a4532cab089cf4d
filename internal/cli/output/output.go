// Package output renders command results for terminals, agents and scripts.
//
// In auto mode a terminal gets styled text and anything else gets Markdown,
// which reads well both for people and for tools consuming piped output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
)

// Mode selects the output format.
type Mode string

// OutputMode is an alias kept for readability at call sites.
type OutputMode = Mode

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Modes lists the accepted --output values.
var Modes = []string{string(ModeAuto), string(ModeText), string(ModeMarkdown), string(ModeJSON)}

// Renderer writes command output in the effective mode.
type Renderer struct {
	w     io.Writer
	errW  io.Writer
	isTTY bool
	mode  Mode
}

// NewRenderer creates a renderer, detecting whether w is a terminal.
func NewRenderer(w, errW io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(w, errW, isTerminal(w), mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal flag.
func NewRendererWithTTY(w, errW io.Writer, isTTY bool, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{w: w, errW: errW, isTTY: isTTY, mode: mode}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// EffectiveMode resolves auto to text or markdown.
func (r *Renderer) EffectiveMode() Mode {
	switch r.mode {
	case ModeText, ModeMarkdown, ModeJSON:
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether the output is a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Writer returns the standard output writer.
func (r *Renderer) Writer() io.Writer { return r.w }

// Println writes a line.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.w, a...)
}

// Printf writes formatted output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.w, format, a...)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) colored() bool {
	return r.isTTY && r.EffectiveMode() == ModeText
}

// Header writes a section header.
func (r *Renderer) Header(level int, title string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatHeader(level, title))
		r.Println()
		return
	}
	if r.colored() {
		title = text.Colors{text.Bold, text.FgCyan}.Sprint(title)
	}
	r.Println(title)
}

// Success writes a success status line to stdout.
func (r *Renderer) Success(msg string) {
	r.status(r.w, "✓", text.FgGreen, msg)
}

// Warning writes a warning status line to stderr.
func (r *Renderer) Warning(msg string) {
	r.status(r.errW, "!", text.FgYellow, msg)
}

// Error writes an error status line to stderr.
func (r *Renderer) Error(msg string) {
	r.status(r.errW, "✗", text.FgRed, msg)
}

func (r *Renderer) status(w io.Writer, mark string, color text.Color, msg string) {
	if r.colored() {
		mark = color.Sprint(mark)
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", mark, msg)
}

// Table writes rows under header: a box-drawn table in text mode and a
// Markdown table otherwise.
func (r *Renderer) Table(header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)

	hr := make(table.Row, len(header))
	for i, h := range header {
		hr[i] = h
	}
	t.AppendHeader(hr)
	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, v := range row {
			tr[i] = v
		}
		t.AppendRow(tr)
	}

	if r.EffectiveMode() == ModeText {
		t.SetStyle(table.StyleLight)
		if !r.isTTY {
			t.Style().Color = table.ColorOptions{}
		}
		t.Render()
		return
	}
	t.RenderMarkdown()
}

// KeyValues writes aligned key/value pairs, skipping empty values.
func (r *Renderer) KeyValues(pairs ...string) {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		if r.EffectiveMode() == ModeMarkdown {
			r.Println(FormatKeyValue(pairs[i], pairs[i+1]))
			continue
		}
		r.Printf("%-14s %s\n", pairs[i]+":", pairs[i+1])
	}
}

// FormatHeader returns a Markdown header.
func FormatHeader(level int, title string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + title
}

// FormatKeyValue returns a Markdown list item with a bold key.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s:** %s", key, value)
}
