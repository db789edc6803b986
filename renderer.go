package mdview

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"pkt.systems/mdview/internal/palette"
)

// ErrMalformedStream reports an event sequence that is not well nested.
var ErrMalformedStream = errors.New("malformed event stream")

// Vertical spacing, in points, between rendered blocks.
const (
	headingLeadSpace  = 20.0
	headingTrailSpace = 10.0
	headingRuleSpace  = 5.0
	paragraphSpace    = 8.0
	codeBlockSpace    = 10.0
	listSpace         = 8.0
	quoteSpace        = 8.0
	ruleSpace         = 8.0
)

const (
	codeFencePrefix = "```"
	// Headings up to this level are underlined with a separator.
	ruledHeadingLevel = 2
)

// State is a snapshot of a Renderer's pass state.
type State struct {
	Text          string
	Code          string
	InCodeBlock   bool
	CodeLanguage  string
	Emphasis      bool
	Strong        bool
	Strikethrough bool
	ListDepth     int
	InsideList    bool
}

// Renderer turns a markdown event sequence into visual blocks in a single
// pass. A Renderer is good for one pass over one document.
type Renderer struct {
	sink    Sink
	palette palette.Palette
	log     *slog.Logger

	text       []byte
	code       []byte
	inCode     bool
	codeLang   string
	emphasis   bool
	strong     bool
	strike     bool
	listDepth  int
	insideList bool

	// open holds the kinds of currently open blocks, innermost last.
	open []Kind

	events  int
	emitted int
	failed  error
}

// NewRenderer returns a Renderer emitting to sink.
func NewRenderer(sink Sink, opts ...RenderOption) *Renderer {
	cfg := buildConfig(opts)
	return &Renderer{
		sink:    sink,
		palette: *cfg.palette,
		log:     cfg.logger,
	}
}

// State returns a snapshot of the pass state.
func (r *Renderer) State() State {
	return State{
		Text:          string(r.text),
		Code:          string(r.code),
		InCodeBlock:   r.inCode,
		CodeLanguage:  r.codeLang,
		Emphasis:      r.emphasis,
		Strong:        r.strong,
		Strikethrough: r.strike,
		ListDepth:     r.listDepth,
		InsideList:    r.insideList,
	}
}

// Handle consumes one event. After Handle returns an error the Renderer
// refuses further events.
func (r *Renderer) Handle(ev Event) error {
	if r.failed != nil {
		return r.failed
	}
	r.events++
	var err error
	switch ev.Kind {
	case EventStart:
		err = r.start(ev.Block)
	case EventEnd:
		err = r.end(ev.Block)
	case EventText:
		r.appendText(ev.Text)
	case EventInlineCode:
		err = r.emit(VisualBlock{
			Kind:          VisualStyledText,
			Content:       ev.Text,
			Size:          BodySize,
			Color:         r.palette.Text,
			Monospace:     true,
			Background:    r.palette.InlineCodeBg,
			HasBackground: true,
		})
	case EventSoftBreak:
		r.appendText(" ")
	case EventHardBreak:
		r.appendText("\n")
	default:
		err = fmt.Errorf("%w: unknown event %s", ErrMalformedStream, ev.Kind)
	}
	if err != nil {
		r.failed = err
	}
	return err
}

// appendText routes s to the code buffer while a code block is open and to
// the text buffer otherwise.
func (r *Renderer) appendText(s string) {
	if r.inCode {
		r.code = append(r.code, s...)
		return
	}
	r.text = append(r.text, s...)
}

// Close ends the pass. It reports blocks left open and flushes the sink.
func (r *Renderer) Close() error {
	if r.failed != nil {
		return r.failed
	}
	if len(r.open) > 0 {
		r.failed = fmt.Errorf("%w: %s still open at end of stream", ErrMalformedStream, r.open[len(r.open)-1])
		return r.failed
	}
	r.log.Debug("render pass complete", "events", r.events, "blocks", r.emitted)
	if err := r.sink.Flush(); err != nil {
		return fmt.Errorf("flush sink: %w", err)
	}
	return nil
}

func (r *Renderer) emit(v VisualBlock) error {
	if err := r.sink.Emit(v); err != nil {
		return fmt.Errorf("emit %s: %w", v.Kind, err)
	}
	r.emitted++
	return nil
}

func (r *Renderer) spacer(height float64) error {
	return r.emit(Spacer(height))
}

func (r *Renderer) start(b BlockKind) error {
	switch b.Kind {
	case KindHeading:
		r.text = r.text[:0]
		r.open = append(r.open, b.Kind)
		return r.spacer(headingLeadSpace)
	case KindParagraph:
		r.text = r.text[:0]
		r.open = append(r.open, b.Kind)
		if r.insideList {
			return nil
		}
		return r.spacer(paragraphSpace)
	case KindCodeBlock:
		r.inCode = true
		r.code = r.code[:0]
		r.codeLang = b.Lang
		r.open = append(r.open, b.Kind)
		if err := r.spacer(codeBlockSpace); err != nil {
			return err
		}
		if b.Lang == "" {
			return nil
		}
		return r.emit(VisualBlock{
			Kind:      VisualCodeLanguageLabel,
			Content:   codeFencePrefix + b.Lang,
			Size:      LabelSize,
			Color:     r.palette.CodeLabel,
			Monospace: true,
		})
	case KindList:
		if err := r.flushParentItem(); err != nil {
			return err
		}
		r.listDepth++
		r.insideList = true
		r.open = append(r.open, b.Kind)
		return r.spacer(listSpace)
	case KindListItem:
		r.text = r.text[:0]
		r.open = append(r.open, b.Kind)
	case KindEmphasis:
		r.emphasis = true
		r.open = append(r.open, b.Kind)
	case KindStrong:
		r.strong = true
		r.open = append(r.open, b.Kind)
	case KindStrikethrough:
		r.strike = true
		r.open = append(r.open, b.Kind)
	case KindBlockQuote:
		r.open = append(r.open, b.Kind)
		if err := r.spacer(quoteSpace); err != nil {
			return err
		}
		return r.emit(Separator())
	case KindRule:
		r.open = append(r.open, b.Kind)
		if err := r.spacer(ruleSpace); err != nil {
			return err
		}
		return r.emit(Separator())
	default:
		r.log.Debug("ignoring block start", "block", b.String())
	}
	return nil
}

// flushParentItem emits the text an enclosing list item accumulated before a
// nested list opens, so that text is not cleared by the nested items.
func (r *Renderer) flushParentItem() error {
	if len(r.open) == 0 || r.open[len(r.open)-1] != KindListItem || len(r.text) == 0 {
		return nil
	}
	err := r.emitBullet()
	r.text = r.text[:0]
	return err
}

func (r *Renderer) emitBullet() error {
	indent := r.listDepth - 1
	if indent < 0 {
		indent = 0
	}
	return r.emit(VisualBlock{
		Kind:        VisualListBullet,
		IndentLevel: indent,
		Content:     string(r.text),
		Color:       r.palette.Text,
	})
}

func (r *Renderer) close(b BlockKind) error {
	if len(r.open) == 0 {
		return fmt.Errorf("%w: end %s with no open block", ErrMalformedStream, b)
	}
	top := r.open[len(r.open)-1]
	if top != b.Kind {
		return fmt.Errorf("%w: end %s while %s is open", ErrMalformedStream, b, top)
	}
	r.open = r.open[:len(r.open)-1]
	return nil
}

func (r *Renderer) end(b BlockKind) error {
	switch b.Kind {
	case KindHeading, KindParagraph, KindCodeBlock, KindList, KindListItem,
		KindEmphasis, KindStrong, KindStrikethrough, KindBlockQuote, KindRule:
		if err := r.close(b); err != nil {
			return err
		}
	default:
		r.log.Debug("ignoring block end", "block", b.String())
		return nil
	}

	switch b.Kind {
	case KindHeading:
		return r.endHeading(b.Level)
	case KindParagraph:
		return r.endParagraph()
	case KindCodeBlock:
		return r.endCodeBlock()
	case KindList:
		r.listDepth--
		r.insideList = r.listDepth > 0
		return r.spacer(listSpace)
	case KindListItem:
		if len(r.text) > 0 {
			if err := r.emitBullet(); err != nil {
				return err
			}
		}
		r.text = r.text[:0]
	case KindEmphasis:
		r.emphasis = false
	case KindStrong:
		r.strong = false
	case KindStrikethrough:
		r.strike = false
	case KindBlockQuote:
		return r.spacer(quoteSpace)
	}
	return nil
}

func (r *Renderer) endHeading(level int) error {
	defer func() { r.text = r.text[:0] }()
	if len(r.text) > 0 {
		level = clampLevel(level)
		err := r.emit(VisualBlock{
			Kind:    VisualStyledText,
			Content: string(r.text),
			Size:    headingSizes[level-1],
			Weight:  WeightBold,
			Color:   r.palette.Heading[level-1],
		})
		if err != nil {
			return err
		}
		if level <= ruledHeadingLevel {
			if err := r.emit(Separator()); err != nil {
				return err
			}
			if err := r.spacer(headingRuleSpace); err != nil {
				return err
			}
		}
	}
	return r.spacer(headingTrailSpace)
}

func (r *Renderer) endParagraph() error {
	defer func() { r.text = r.text[:0] }()
	if len(r.text) == 0 {
		return nil
	}
	v := VisualBlock{
		Kind:          VisualStyledText,
		Content:       string(r.text),
		Size:          BodySize,
		Color:         r.palette.Text,
		Italic:        r.emphasis,
		Strikethrough: r.strike,
	}
	if r.strong {
		v.Weight = WeightBold
	}
	if err := r.emit(v); err != nil {
		return err
	}
	if r.insideList {
		return nil
	}
	return r.spacer(paragraphSpace)
}

func (r *Renderer) endCodeBlock() error {
	content := string(r.code)
	r.inCode = false
	r.code = r.code[:0]
	r.codeLang = ""
	if content == "" {
		return nil
	}
	err := r.emit(VisualBlock{
		Kind:    VisualCodePanel,
		Content: content,
		Color:   r.palette.CodePanelText,
		Fill:    r.palette.CodePanelFill,
		Border:  r.palette.CodePanelBorder,
	})
	if err != nil {
		return err
	}
	return r.spacer(codeBlockSpace)
}

// RenderEvents runs one rendering pass over src, emitting to sink. On a
// malformed stream the pass stops at the offending event; blocks emitted
// before it stay emitted and the sink is flushed.
func RenderEvents(src EventSource, sink Sink, opts ...RenderOption) error {
	if src == nil {
		return fmt.Errorf("render events: source is nil")
	}
	if sink == nil {
		return fmt.Errorf("render events: sink is nil")
	}
	r := NewRenderer(sink, opts...)
	for {
		ev, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			_ = sink.Flush()
			return fmt.Errorf("render events: source: %w", err)
		}
		if err := r.Handle(ev); err != nil {
			_ = sink.Flush()
			return fmt.Errorf("render events: event %d (%s): %w", r.events, ev, err)
		}
	}
	if err := r.Close(); err != nil {
		if errors.Is(err, ErrMalformedStream) {
			_ = sink.Flush()
		}
		return fmt.Errorf("render events: %w", err)
	}
	return nil
}
