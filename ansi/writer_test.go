package ansi

import (
	"bytes"
	"strings"
	"testing"

	reflowansi "github.com/muesli/reflow/ansi"

	"pkt.systems/mdview"
	"pkt.systems/mdview/internal/layout"
)

func render(t *testing.T, src string, width int, opts ...Option) string {
	t.Helper()
	var out bytes.Buffer
	w := NewWriter(&out, width, opts...)
	err := mdview.Render(mdview.RenderRequest{
		Reader: strings.NewReader(src),
		Sink:   w,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out.String()
}

func TestWriterBoringOutput(t *testing.T) {
	got := render(t, "# Hi\n\nText\n", 20, WithBoring(true))
	want := "Hi\n" + strings.Repeat("─", 20) + "\n\nText\n"
	if got != want {
		t.Fatalf("want %q got %q", want, got)
	}
}

func TestWriterStylesHeading(t *testing.T) {
	got := render(t, "# Hi\n", 20)
	if !strings.HasPrefix(got, "\x1b[1;38;2;51;51;51mHi\x1b[0m\n") {
		t.Fatalf("unexpected heading escape sequence %q", got)
	}
}

func TestWriterStylesInlineCode(t *testing.T) {
	got := render(t, "`go`\n", 20)
	if !strings.Contains(got, "\x1b[38;2;34;34;34;48;2;240;240;240m go \x1b[0m") {
		t.Fatalf("expected inline code background in %q", got)
	}
}

func TestWriterDarkModeUsesDarkSeparator(t *testing.T) {
	got := render(t, "***\n", 10, WithDarkMode(true))
	if !strings.Contains(got, "\x1b[38;2;90;90;90m") {
		t.Fatalf("expected dark separator color in %q", got)
	}
}

func TestWriterKeepsLinesWithinWidth(t *testing.T) {
	src := "# A heading that is long enough to wrap\n\n" +
		"Paragraph text that runs well past the width of the terminal it is shown in.\n\n" +
		"```\nsome code that is much wider than the panel can show\n```\n\n" +
		"- a bullet that also needs wrapping across lines\n"
	const width = 24
	for _, line := range strings.Split(strings.TrimSuffix(render(t, src, width), "\n"), "\n") {
		if w := reflowansi.PrintableRuneWidth(line); w > width {
			t.Fatalf("line wider than %d (%d): %q", width, w, line)
		}
	}
}

func TestAppendSGR(t *testing.T) {
	tests := []struct {
		name string
		attr layout.Attr
		want string
	}{
		{name: "empty", want: "\x1b[0m"},
		{name: "bold dim", attr: layout.Attr{Bold: true, Dim: true}, want: "\x1b[1;2m"},
		{name: "italic strike", attr: layout.Attr{Italic: true, Strike: true}, want: "\x1b[3;9m"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := string(appendSGR(nil, tc.attr)); got != tc.want {
				t.Fatalf("want %q got %q", tc.want, got)
			}
		})
	}
}
