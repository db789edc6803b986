package mdview

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func readSample(t testing.TB) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/sample.md")
	if err != nil {
		t.Fatalf("read sample.md: %v", err)
	}
	return data
}

func TestParseDocumentSplitsFrontMatter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		src       string
		delimiter string
		title     string
		body      string
	}{
		{
			name:      "yaml",
			src:       "---\ntitle: Post\ndate: 2026-02-09\n---\n\n# Hello\n",
			delimiter: "---",
			title:     "Post",
			body:      "\n# Hello\n",
		},
		{
			name:      "toml",
			src:       "+++\ntitle = \"Post\"\n+++\n# Hello\n",
			delimiter: "+++",
			body:      "# Hello\n",
		},
		{
			name:      "json",
			src:       ";;;\n{\"title\": \"Post\"}\n;;;\n# Hello\n",
			delimiter: ";;;",
			title:     "Post",
			body:      "# Hello\n",
		},
		{
			name:      "crlf",
			src:       "---\r\ntitle: Post\r\n---\r\nBody\r\n",
			delimiter: "---",
			title:     "Post",
			body:      "Body\r\n",
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			doc, err := ParseDocument([]byte(tc.src))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if doc.FrontMatter == nil {
				t.Fatalf("expected front matter")
			}
			if doc.FrontMatter.Delimiter != tc.delimiter {
				t.Fatalf("delimiter: want %q got %q", tc.delimiter, doc.FrontMatter.Delimiter)
			}
			if got := doc.Title(); got != tc.title {
				t.Fatalf("title: want %q got %q", tc.title, got)
			}
			if string(doc.Body) != tc.body {
				t.Fatalf("body: want %q got %q", tc.body, doc.Body)
			}
			if string(doc.Source) != tc.src {
				t.Fatalf("source not preserved: %q", doc.Source)
			}
		})
	}
}

func TestParseDocumentKeepsNonFrontMatter(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"thematic break": "---\n\nText after a rule\n",
		"unclosed":       "---\ntitle: Post\n# Hello\n",
		"not at start":   "# Intro\n\n---\ntitle: Keep\n---\n",
		"plain":          "Just text\n",
	}
	for name, src := range tests {
		doc, err := ParseDocument([]byte(src))
		if err != nil {
			t.Fatalf("%s: parse: %v", name, err)
		}
		if doc.FrontMatter != nil {
			t.Fatalf("%s: unexpected front matter %q", name, doc.FrontMatter.Raw)
		}
		if string(doc.Body) != src {
			t.Fatalf("%s: body changed: %q", name, doc.Body)
		}
	}
}

func TestParseDocumentBadYAMLStillStripped(t *testing.T) {
	doc, err := ParseDocument([]byte("---\ntitle: [unclosed\n---\nBody\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.FrontMatter == nil || doc.Meta != nil {
		t.Fatalf("expected raw front matter without metadata, got %+v", doc)
	}
	if string(doc.Body) != "Body\n" {
		t.Fatalf("unexpected body %q", doc.Body)
	}
}

func TestFrontMatterIsNotRendered(t *testing.T) {
	doc, err := ParseDocument(readSample(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var c Collector
	if err := RenderDocument(doc, &c); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, b := range c.Blocks {
		if strings.Contains(b.Content, "title:") {
			t.Fatalf("front matter leaked into %s", b)
		}
	}
	if doc.Title() != "Sample" {
		t.Fatalf("expected sample title, got %q", doc.Title())
	}
}

func TestParseDocumentDecodesByteOrderMarks(t *testing.T) {
	utf16le := []byte{0xFF, 0xFE}
	utf16be := []byte{0xFE, 0xFF}
	for _, r := range "# Hi\n" {
		utf16le = append(utf16le, byte(r), 0x00)
		utf16be = append(utf16be, 0x00, byte(r))
	}
	tests := map[string][]byte{
		"utf-8":    append([]byte{0xEF, 0xBB, 0xBF}, "# Hi\n"...),
		"utf-16le": utf16le,
		"utf-16be": utf16be,
	}
	for name, raw := range tests {
		doc, err := ParseDocument(raw)
		if err != nil {
			t.Fatalf("%s: parse: %v", name, err)
		}
		if string(doc.Source) != "# Hi\n" {
			t.Fatalf("%s: unexpected source %q", name, doc.Source)
		}
	}
}

func TestParseDocumentNormalizesText(t *testing.T) {
	doc, err := ParseDocument([]byte("Cafe\u0301 a\x01b\tc\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if want := "Caf\u00e9 ab\tc\n"; string(doc.Source) != want {
		t.Fatalf("want %q got %q", want, doc.Source)
	}
}

func TestLoadDocumentRejectsBadInput(t *testing.T) {
	if _, err := LoadDocument(bytes.NewReader([]byte{'a', 0xC0, 'b'})); !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
	if _, err := LoadDocument(bytes.NewReader([]byte("a\x00b"))); !errors.Is(err, ErrBinaryInput) {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
	if _, err := LoadDocument(nil); err == nil {
		t.Fatalf("expected error for nil reader")
	}
}

func TestDocumentEventsAreIndependent(t *testing.T) {
	doc, err := ParseDocument([]byte("para\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	first, second := doc.Events(), doc.Events()
	a, _ := first.Next()
	b, _ := second.Next()
	if a != b || a.Kind != EventStart {
		t.Fatalf("expected both sources to start fresh, got %s and %s", a, b)
	}
}

func TestRenderRequestValidation(t *testing.T) {
	if err := Render(RenderRequest{Sink: &Collector{}}); err == nil || !strings.Contains(err.Error(), "reader is nil") {
		t.Fatalf("expected reader error, got %v", err)
	}
	if err := Render(RenderRequest{Reader: strings.NewReader("x")}); err == nil || !strings.Contains(err.Error(), "sink is nil") {
		t.Fatalf("expected sink error, got %v", err)
	}
	if err := RenderDocument(nil, &Collector{}); err == nil {
		t.Fatalf("expected error for nil document")
	}
}

func TestRenderFromReader(t *testing.T) {
	var c Collector
	err := Render(RenderRequest{
		Reader: strings.NewReader("# Hi\n"),
		Sink:   &c,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(c.Blocks) != 5 || c.Blocks[1].Content != "Hi" {
		t.Fatalf("unexpected blocks %v", blockStrings(c.Blocks))
	}
}
