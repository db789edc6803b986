// Package layout turns visual blocks into width-bound lines of styled
// segments. It is shared by the ANSI writer and the interactive viewer.
package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"pkt.systems/mdview"
	"pkt.systems/mdview/internal/palette"
)

// DefaultWidth is used when no positive width is given.
const DefaultWidth = 80

const (
	minWidth    = 8
	bulletGlyph = "•"
	quoteGlyph  = "▌"
	ruleGlyph   = "─"
	tabWidth    = 4
	codeInset   = 1
)

// Attr is the style of a segment.
type Attr struct {
	FG, BG       palette.Color
	HasFG, HasBG bool
	Bold         bool
	Italic       bool
	Strike       bool
	Dim          bool
}

// Segment is a run of text sharing one style.
type Segment struct {
	Text string
	Attr Attr
}

// Line is one output row.
type Line struct {
	Segments []Segment
}

// Plain returns the line text without styling.
func (l Line) Plain() string {
	var b strings.Builder
	for _, s := range l.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Width returns the number of terminal cells the line occupies.
func (l Line) Width() int {
	w := 0
	for _, s := range l.Segments {
		w += runewidth.StringWidth(s.Text)
	}
	return w
}

// Builder lays out visual blocks one at a time. Runs of spacers collapse to
// a single blank line, and no blank line is produced before the first
// content.
type Builder struct {
	width   int
	palette palette.Palette
	started bool
	blank   bool
}

// NewBuilder returns a Builder for the given width and palette.
func NewBuilder(width int, p palette.Palette) *Builder {
	if width <= 0 {
		width = DefaultWidth
	}
	if width < minWidth {
		width = minWidth
	}
	return &Builder{width: width, palette: p}
}

// Width returns the layout width.
func (b *Builder) Width() int {
	return b.width
}

// Add returns the lines for v.
func (b *Builder) Add(v mdview.VisualBlock) []Line {
	if v.Kind == mdview.VisualSpacer {
		if b.started {
			b.blank = true
		}
		return nil
	}
	var out []Line
	if b.blank {
		out = append(out, Line{})
		b.blank = false
	}
	b.started = true
	switch v.Kind {
	case mdview.VisualStyledText:
		out = append(out, b.styledText(v)...)
	case mdview.VisualSeparator:
		out = append(out, b.rule(b.width, b.palette.Separator))
	case mdview.VisualCodeLanguageLabel:
		out = append(out, b.wrapped(v.Content, Attr{FG: v.Color, HasFG: true, Dim: true}, 0)...)
	case mdview.VisualCodePanel:
		out = append(out, b.codePanel(v)...)
	case mdview.VisualListBullet:
		out = append(out, b.bullet(v)...)
	case mdview.VisualBlockQuoteMarker:
		out = append(out, Line{Segments: []Segment{{Text: quoteGlyph, Attr: Attr{FG: b.palette.QuoteMarker, HasFG: true}}}})
	}
	return out
}

func (b *Builder) styledText(v mdview.VisualBlock) []Line {
	attr := Attr{
		FG:     v.Color,
		HasFG:  true,
		Bold:   v.Bold(),
		Italic: v.Italic,
		Strike: v.Strikethrough,
	}
	if v.HasBackground {
		attr.BG = v.Background
		attr.HasBG = true
		return b.wrapped(" "+v.Content+" ", attr, 0)
	}
	return b.wrapped(v.Content, attr, 0)
}

// wrapped word-wraps text to the width left after indent cells, hard
// breaking words that do not fit on a line of their own.
func (b *Builder) wrapped(text string, attr Attr, indent int) []Line {
	limit := b.width - indent
	if limit < 1 {
		limit = 1
	}
	body := wrap.String(wordwrap.String(text, limit), limit)
	rows := strings.Split(body, "\n")
	out := make([]Line, 0, len(rows))
	for _, row := range rows {
		if !attr.HasBG {
			row = strings.TrimRight(row, " ")
		}
		if row == "" {
			out = append(out, Line{})
			continue
		}
		out = append(out, Line{Segments: []Segment{{Text: row, Attr: attr}}})
	}
	return out
}

func (b *Builder) rule(width int, color palette.Color) Line {
	return Line{Segments: []Segment{{
		Text: strings.Repeat(ruleGlyph, width),
		Attr: Attr{FG: color, HasFG: true},
	}}}
}

func (b *Builder) bullet(v mdview.VisualBlock) []Line {
	lead := strings.Repeat("  ", v.IndentLevel)
	marker := lead + bulletGlyph + " "
	hang := strings.Repeat(" ", runewidth.StringWidth(marker))
	markerAttr := Attr{FG: b.palette.ListMarker, HasFG: true, Bold: true}
	textAttr := Attr{FG: v.Color, HasFG: true}
	rows := b.wrapped(v.Content, textAttr, len(hang))
	for i := range rows {
		prefix := Segment{Text: hang}
		if i == 0 {
			prefix = Segment{Text: marker, Attr: markerAttr}
		}
		rows[i].Segments = append([]Segment{prefix}, rows[i].Segments...)
	}
	return rows
}

// codePanel frames the code in a box filled with the panel color. Lines
// wider than the box are truncated, never wrapped.
func (b *Builder) codePanel(v mdview.VisualBlock) []Line {
	inner := b.width - 2 - 2*codeInset
	border := Attr{FG: v.Border, HasFG: true, BG: v.Fill, HasBG: true}
	body := Attr{FG: v.Color, HasFG: true, BG: v.Fill, HasBG: true}
	pad := strings.Repeat(" ", codeInset)

	content := strings.TrimRight(v.Content, "\n")
	content = strings.ReplaceAll(content, "\t", strings.Repeat(" ", tabWidth))
	rows := strings.Split(content, "\n")

	out := make([]Line, 0, len(rows)+2)
	out = append(out, Line{Segments: []Segment{{Text: "┌" + strings.Repeat(ruleGlyph, b.width-2) + "┐", Attr: border}}})
	for _, row := range rows {
		row = strings.TrimRight(row, "\r")
		if runewidth.StringWidth(row) > inner {
			row = truncate.StringWithTail(row, uint(inner), "…")
		}
		fill := inner - runewidth.StringWidth(row)
		if fill < 0 {
			fill = 0
		}
		out = append(out, Line{Segments: []Segment{
			{Text: "│" + pad, Attr: border},
			{Text: row + strings.Repeat(" ", fill), Attr: body},
			{Text: pad + "│", Attr: border},
		}})
	}
	out = append(out, Line{Segments: []Segment{{Text: "└" + strings.Repeat(ruleGlyph, b.width-2) + "┘", Attr: border}}})
	return out
}

// Page is a Sink that keeps every laid-out line.
type Page struct {
	Lines   []Line
	builder *Builder
}

// NewPage returns an empty page of the given width.
func NewPage(width int, p palette.Palette) *Page {
	return &Page{builder: NewBuilder(width, p)}
}

// Emit lays out v and appends its lines.
func (p *Page) Emit(v mdview.VisualBlock) error {
	p.Lines = append(p.Lines, p.builder.Add(v)...)
	return nil
}

// Flush does nothing.
func (p *Page) Flush() error { return nil }

// PlainLines lays out raw text without markdown interpretation, wrapping
// each source line.
func PlainLines(src string, width int, p palette.Palette) []Line {
	b := NewBuilder(width, p)
	attr := Attr{FG: p.Text, HasFG: true}
	src = strings.ReplaceAll(strings.TrimRight(src, "\n"), "\t", strings.Repeat(" ", tabWidth))
	var out []Line
	for _, row := range strings.Split(src, "\n") {
		out = append(out, b.wrapped(strings.TrimRight(row, "\r"), attr, 0)...)
	}
	return out
}
