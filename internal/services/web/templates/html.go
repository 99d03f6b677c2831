package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Writer streams HTML fragments and keeps the first write error.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w for component rendering.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup.
func (hw *Writer) Raw(markup string) *Writer {
	if hw.err != nil {
		return hw
	}
	_, hw.err = io.WriteString(hw.w, markup)
	return hw
}

// Text writes escaped text content.
func (hw *Writer) Text(value string) *Writer {
	return hw.Raw(templ.EscapeString(value))
}

// Attr writes ` name="value"` with value escaped.
func (hw *Writer) Attr(name string, value string) *Writer {
	return hw.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// Component renders a nested component into the same stream.
func (hw *Writer) Component(ctx context.Context, c templ.Component) *Writer {
	if hw.err != nil || c == nil {
		return hw
	}
	hw.err = c.Render(ctx, hw.w)
	return hw
}

// Err returns the first write or render error.
func (hw *Writer) Err() error {
	return hw.err
}
