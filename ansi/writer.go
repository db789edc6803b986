// Package ansi is a Render Sink that lays visual blocks out for a terminal
// and writes them as ANSI styled text.
//
// Example:
//
//	w := ansi.NewWriter(os.Stdout, 80, ansi.WithDarkMode(true))
//	err := mdview.Render(mdview.RenderRequest{
//		Reader:  strings.NewReader("# Hello\n\nMarkdown in, ANSI out.\n"),
//		Sink:    w,
//		Options: []mdview.RenderOption{mdview.WithDarkMode(true)},
//	})
package ansi

import (
	"bufio"
	"io"
	"strconv"

	"pkt.systems/mdview"
	"pkt.systems/mdview/internal/layout"
	"pkt.systems/mdview/internal/palette"
)

const (
	csi   = "\x1b["
	reset = "\x1b[0m"
)

// Option configures a Writer.
type Option func(*config)

type config struct {
	dark   bool
	boring bool
}

// WithDarkMode selects the dark palette for adapter-owned colors such as
// rules and list markers.
func WithDarkMode(enabled bool) Option {
	return func(cfg *config) {
		cfg.dark = enabled
	}
}

// WithBoring disables all escape sequences.
func WithBoring(enabled bool) Option {
	return func(cfg *config) {
		cfg.boring = enabled
	}
}

// Writer is a mdview.Sink writing styled lines to an io.Writer.
type Writer struct {
	out     *bufio.Writer
	builder *layout.Builder
	boring  bool
	scratch []byte
}

// NewWriter returns a Writer wrapping lines at width cells. A width of zero
// or less uses layout.DefaultWidth.
func NewWriter(w io.Writer, width int, opts ...Option) *Writer {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Writer{
		out:     bufio.NewWriter(w),
		builder: layout.NewBuilder(width, palette.For(cfg.dark)),
		boring:  cfg.boring,
	}
}

// Emit writes the lines of v.
func (w *Writer) Emit(v mdview.VisualBlock) error {
	for _, line := range w.builder.Add(v) {
		if err := w.writeLine(line); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes any buffered output.
func (w *Writer) Flush() error {
	return w.out.Flush()
}

func (w *Writer) writeLine(line layout.Line) error {
	buf := w.scratch[:0]
	for _, seg := range line.Segments {
		if w.boring || seg.Attr == (layout.Attr{}) {
			buf = append(buf, seg.Text...)
			continue
		}
		buf = appendSGR(buf, seg.Attr)
		buf = append(buf, seg.Text...)
		buf = append(buf, reset...)
	}
	buf = append(buf, '\n')
	w.scratch = buf
	_, err := w.out.Write(buf)
	return err
}

// appendSGR appends the select-graphic-rendition sequence for attr.
func appendSGR(buf []byte, attr layout.Attr) []byte {
	buf = append(buf, csi...)
	first := true
	code := func(s string) {
		if !first {
			buf = append(buf, ';')
		}
		buf = append(buf, s...)
		first = false
	}
	if attr.Bold {
		code("1")
	}
	if attr.Dim {
		code("2")
	}
	if attr.Italic {
		code("3")
	}
	if attr.Strike {
		code("9")
	}
	if attr.HasFG {
		code("38;2;" + rgb(attr.FG))
	}
	if attr.HasBG {
		code("48;2;" + rgb(attr.BG))
	}
	if first {
		code("0")
	}
	return append(buf, 'm')
}

func rgb(c palette.Color) string {
	return strconv.Itoa(int(c.R)) + ";" + strconv.Itoa(int(c.G)) + ";" + strconv.Itoa(int(c.B))
}
