package mdview

import (
	"fmt"
	"io"
	"strconv"
)

// EventKind identifies the variant of an Event.
type EventKind uint8

const (
	// EventStart opens a block.
	EventStart EventKind = iota + 1
	// EventEnd closes the most recently opened block of the same kind.
	EventEnd
	// EventText carries inline text.
	EventText
	// EventInlineCode carries the content of an inline code span.
	EventInlineCode
	// EventSoftBreak is a line break inside a paragraph that renders as a space.
	EventSoftBreak
	// EventHardBreak is a forced line break.
	EventHardBreak
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventEnd:
		return "end"
	case EventText:
		return "text"
	case EventInlineCode:
		return "inline-code"
	case EventSoftBreak:
		return "soft-break"
	case EventHardBreak:
		return "hard-break"
	default:
		return "event(" + strconv.Itoa(int(k)) + ")"
	}
}

// Kind identifies the variant of a BlockKind.
type Kind uint8

const (
	KindHeading Kind = iota + 1
	KindParagraph
	KindCodeBlock
	KindList
	KindListItem
	KindEmphasis
	KindStrong
	KindStrikethrough
	KindBlockQuote
	// KindRule is a thematic break.
	KindRule
	// KindOther is a construct the renderer does not understand. It is
	// ignored so grammar extensions never break a pass.
	KindOther
)

var kindNames = [...]string{
	KindHeading:       "heading",
	KindParagraph:     "paragraph",
	KindCodeBlock:     "code-block",
	KindList:          "list",
	KindListItem:      "list-item",
	KindEmphasis:      "emphasis",
	KindStrong:        "strong",
	KindStrikethrough: "strikethrough",
	KindBlockQuote:    "block-quote",
	KindRule:          "rule",
	KindOther:         "other",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// BlockKind describes a bracketing construct. Level is set for headings,
// Lang for code blocks and Name for KindOther.
type BlockKind struct {
	Kind  Kind
	Level int
	Lang  string
	Name  string
}

// Parameterless block kinds.
var (
	Paragraph     = BlockKind{Kind: KindParagraph}
	List          = BlockKind{Kind: KindList}
	ListItem      = BlockKind{Kind: KindListItem}
	Emphasis      = BlockKind{Kind: KindEmphasis}
	Strong        = BlockKind{Kind: KindStrong}
	Strikethrough = BlockKind{Kind: KindStrikethrough}
	BlockQuote    = BlockKind{Kind: KindBlockQuote}
	Rule          = BlockKind{Kind: KindRule}
)

// Heading returns the block kind of a heading at level.
func Heading(level int) BlockKind {
	return BlockKind{Kind: KindHeading, Level: level}
}

// CodeBlock returns the block kind of a code block. An empty lang means the
// block carries no language tag.
func CodeBlock(lang string) BlockKind {
	return BlockKind{Kind: KindCodeBlock, Lang: lang}
}

// Other returns a block kind the renderer ignores.
func Other(name string) BlockKind {
	return BlockKind{Kind: KindOther, Name: name}
}

func (b BlockKind) String() string {
	switch b.Kind {
	case KindHeading:
		return "heading(" + strconv.Itoa(b.Level) + ")"
	case KindCodeBlock:
		if b.Lang == "" {
			return "code-block"
		}
		return "code-block(" + b.Lang + ")"
	case KindOther:
		return "other(" + b.Name + ")"
	default:
		return b.Kind.String()
	}
}

// Event is one structural or textual token of a markdown document.
type Event struct {
	Kind  EventKind
	Block BlockKind
	Text  string
}

// StartBlock returns an event opening b.
func StartBlock(b BlockKind) Event { return Event{Kind: EventStart, Block: b} }

// EndBlock returns an event closing b.
func EndBlock(b BlockKind) Event { return Event{Kind: EventEnd, Block: b} }

// Text returns an inline text event.
func Text(s string) Event { return Event{Kind: EventText, Text: s} }

// InlineCode returns an inline code event.
func InlineCode(s string) Event { return Event{Kind: EventInlineCode, Text: s} }

// SoftBreak returns a soft line break event.
func SoftBreak() Event { return Event{Kind: EventSoftBreak} }

// HardBreak returns a hard line break event.
func HardBreak() Event { return Event{Kind: EventHardBreak} }

func (e Event) String() string {
	switch e.Kind {
	case EventStart, EventEnd:
		return fmt.Sprintf("%s %s", e.Kind, e.Block)
	case EventText, EventInlineCode:
		return fmt.Sprintf("%s %q", e.Kind, e.Text)
	default:
		return e.Kind.String()
	}
}

// EventSource produces a document's events in order, one per call. Next
// returns io.EOF once the sequence is exhausted. Sources are forward-only
// and cannot be rewound.
type EventSource interface {
	Next() (Event, error)
}

// Events returns an EventSource replaying events in order.
func Events(events ...Event) EventSource {
	return &sliceSource{events: events}
}

type sliceSource struct {
	events []Event
	pos    int
}

func (s *sliceSource) Next() (Event, error) {
	if s.pos >= len(s.events) {
		return Event{}, io.EOF
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, nil
}
