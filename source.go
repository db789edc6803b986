package mdview

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const tableCellSeparator = " | "

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.Strikethrough,
			extension.Table,
			extension.TaskList,
			extension.Linkify,
			extension.Footnote,
		),
	)
}

// MarkdownSource is an EventSource over a parsed markdown document. The
// document is parsed once up front; events are produced lazily by walking
// the syntax tree one node at a time.
type MarkdownSource struct {
	source   []byte
	root     ast.Node
	node     ast.Node
	entering bool
	done     bool

	pending []Event
	head    int
}

// NewMarkdownSource parses src and returns a source positioned before its
// first event. src must not be modified while the source is in use.
func NewMarkdownSource(src []byte) *MarkdownSource {
	root := newMarkdown().Parser().Parse(text.NewReader(src))
	return &MarkdownSource{
		source:   src,
		root:     root,
		node:     root,
		entering: true,
		pending:  make([]Event, 0, 4),
	}
}

// Next returns the next event or io.EOF.
func (s *MarkdownSource) Next() (Event, error) {
	for s.head >= len(s.pending) {
		if s.done {
			return Event{}, io.EOF
		}
		s.pending = s.pending[:0]
		s.head = 0
		s.step()
	}
	ev := s.pending[s.head]
	s.head++
	return ev, nil
}

func (s *MarkdownSource) step() {
	n, entering := s.node, s.entering
	descend := s.visit(n, entering)
	if entering {
		if descend && n.FirstChild() != nil {
			s.node = n.FirstChild()
			return
		}
		s.entering = false
		return
	}
	if n == s.root {
		s.done = true
		return
	}
	if next := n.NextSibling(); next != nil {
		s.node = next
		s.entering = true
		return
	}
	s.node = n.Parent()
}

func (s *MarkdownSource) push(events ...Event) {
	s.pending = append(s.pending, events...)
}

func (s *MarkdownSource) bracket(entering bool, b BlockKind) {
	if entering {
		s.push(StartBlock(b))
	} else {
		s.push(EndBlock(b))
	}
}

// visit queues the events for one side of n and reports whether n's
// children should be walked.
func (s *MarkdownSource) visit(n ast.Node, entering bool) bool {
	switch node := n.(type) {
	case *ast.Heading:
		s.bracket(entering, Heading(node.Level))
	case *ast.Paragraph:
		s.bracket(entering, Paragraph)
	case *ast.FencedCodeBlock:
		lang := ""
		if node.Info != nil {
			lang = string(node.Language(s.source))
		}
		s.codeBlock(entering, CodeBlock(lang), node.Lines())
		return false
	case *ast.CodeBlock:
		s.codeBlock(entering, CodeBlock(""), node.Lines())
		return false
	case *ast.List:
		s.bracket(entering, List)
	case *ast.ListItem:
		s.bracket(entering, ListItem)
	case *ast.Blockquote:
		s.bracket(entering, BlockQuote)
	case *ast.ThematicBreak:
		if entering {
			s.push(StartBlock(Rule), EndBlock(Rule))
		}
	case *ast.Emphasis:
		if node.Level >= 2 {
			s.bracket(entering, Strong)
		} else {
			s.bracket(entering, Emphasis)
		}
	case *east.Strikethrough:
		s.bracket(entering, Strikethrough)
	case *ast.CodeSpan:
		if entering {
			s.push(InlineCode(s.codeSpanText(node)))
		}
		return false
	case *ast.Text:
		if entering {
			s.text(node)
		}
	case *ast.String:
		if entering {
			s.push(Text(string(node.Value)))
		}
	case *ast.AutoLink:
		if entering {
			s.push(Text(string(node.Label(s.source))))
		}
	case *ast.RawHTML:
		if entering {
			s.push(Text(segmentsText(node.Segments, s.source)))
		}
	case *ast.HTMLBlock:
		if entering {
			s.htmlBlock(node)
		}
		return false
	case *east.TableHeader, *east.TableRow:
		if entering {
			s.tableRow(n)
		}
		return false
	case *east.FootnoteLink:
		if entering {
			s.push(Text("[^" + strconv.Itoa(node.Index) + "]"))
		}
		return false
	case *east.FootnoteBacklink:
		return false
	case *east.TaskCheckBox:
		if entering {
			if node.IsChecked {
				s.push(Text("[x] "))
			} else {
				s.push(Text("[ ] "))
			}
		}
	}
	return true
}

func (s *MarkdownSource) codeBlock(entering bool, b BlockKind, lines *text.Segments) {
	if !entering {
		s.push(EndBlock(b))
		return
	}
	s.push(StartBlock(b))
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		s.push(Text(string(seg.Value(s.source))))
	}
}

func (s *MarkdownSource) text(node *ast.Text) {
	s.push(Text(s.textValue(node)))
	switch {
	case node.HardLineBreak():
		s.push(HardBreak())
	case node.SoftLineBreak():
		s.push(SoftBreak())
	}
}

func (s *MarkdownSource) textValue(node *ast.Text) string {
	v := node.Segment.Value(s.source)
	if node.IsRaw() {
		return string(v)
	}
	return string(unescape(v))
}

func unescape(v []byte) []byte {
	return util.UnescapePunctuations(util.ResolveNumericReferences(util.ResolveEntityNames(v)))
}

func (s *MarkdownSource) codeSpanText(node *ast.CodeSpan) string {
	var b strings.Builder
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(s.source))
		case *ast.String:
			b.Write(t.Value)
		}
	}
	return strings.ReplaceAll(b.String(), "\n", " ")
}

func (s *MarkdownSource) htmlBlock(node *ast.HTMLBlock) {
	body := segmentsText(node.Lines(), s.source)
	if node.HasClosure() {
		body += string(node.ClosureLine.Value(s.source))
	}
	body = strings.TrimRight(body, "\n")
	if body == "" {
		return
	}
	s.push(StartBlock(Paragraph), Text(body), EndBlock(Paragraph))
}

// tableRow flattens a table row into a paragraph of cell texts.
func (s *MarkdownSource) tableRow(row ast.Node) {
	cells := make([]string, 0, row.ChildCount())
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		cells = append(cells, strings.TrimSpace(s.plainText(c)))
	}
	s.push(StartBlock(Paragraph), Text(strings.Join(cells, tableCellSeparator)), EndBlock(Paragraph))
}

// plainText concatenates the inline text below n.
func (s *MarkdownSource) plainText(n ast.Node) string {
	var b bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.WriteString(s.textValue(t))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.CodeSpan:
			b.WriteString(s.codeSpanText(t))
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			b.Write(t.Label(s.source))
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func segmentsText(segs *text.Segments, source []byte) string {
	var b strings.Builder
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}
