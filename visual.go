package mdview

import (
	"strconv"
	"strings"

	"pkt.systems/mdview/internal/palette"
)

// Color is a 24-bit RGB color.
type Color = palette.Color

// VisualKind identifies the variant of a VisualBlock.
type VisualKind uint8

const (
	// VisualStyledText is a run of text with size, weight and color.
	VisualStyledText VisualKind = iota + 1
	// VisualSpacer is vertical whitespace of Height.
	VisualSpacer
	// VisualSeparator is a horizontal rule.
	VisualSeparator
	// VisualCodeLanguageLabel is the fence label shown above a code panel.
	VisualCodeLanguageLabel
	// VisualCodePanel is a framed block of preformatted text.
	VisualCodePanel
	// VisualListBullet is a bullet glyph followed by item text.
	VisualListBullet
	// VisualBlockQuoteMarker is the bar drawn beside quoted content.
	VisualBlockQuoteMarker
)

func (k VisualKind) String() string {
	switch k {
	case VisualStyledText:
		return "StyledText"
	case VisualSpacer:
		return "Spacer"
	case VisualSeparator:
		return "Separator"
	case VisualCodeLanguageLabel:
		return "CodeLanguageLabel"
	case VisualCodePanel:
		return "CodePanel"
	case VisualListBullet:
		return "ListBullet"
	case VisualBlockQuoteMarker:
		return "BlockQuoteMarker"
	default:
		return "Visual(" + strconv.Itoa(int(k)) + ")"
	}
}

// Weight is a font weight.
type Weight uint8

const (
	WeightRegular Weight = iota
	WeightBold
)

// Point sizes of rendered text.
const (
	BodySize  = 14.0
	LabelSize = 12.0
)

// headingSizes is indexed by level-1 and never increases with level.
var headingSizes = [6]float64{28, 24, 20, 18, 16, 14}

// HeadingSize returns the text size of a heading at level. Levels outside
// 1..6 are sized as level 6.
func HeadingSize(level int) float64 {
	return headingSizes[clampLevel(level)-1]
}

func clampLevel(level int) int {
	if level < 1 || level > 6 {
		return 6
	}
	return level
}

// VisualBlock is an abstract rendering instruction. Which fields are
// meaningful depends on Kind:
//
//   - StyledText: Content, Size, Weight, Color, Italic, Strikethrough,
//     Monospace, Background (when HasBackground)
//   - Spacer: Height
//   - CodeLanguageLabel: Content, Size, Color
//   - CodePanel: Content, Color, Fill, Border
//   - ListBullet: IndentLevel, Content, Color
type VisualBlock struct {
	Kind          VisualKind
	Content       string
	Size          float64
	Weight        Weight
	Color         Color
	Italic        bool
	Strikethrough bool
	Monospace     bool
	Background    Color
	HasBackground bool
	Height        float64
	IndentLevel   int
	Fill          Color
	Border        Color
}

// Spacer returns vertical whitespace of height points.
func Spacer(height float64) VisualBlock {
	return VisualBlock{Kind: VisualSpacer, Height: height}
}

// Separator returns a horizontal rule.
func Separator() VisualBlock {
	return VisualBlock{Kind: VisualSeparator}
}

// Bold reports whether the block is drawn with a bold weight.
func (v VisualBlock) Bold() bool {
	return v.Weight == WeightBold
}

// String renders the block in a compact, stable form used by tests and the
// --dump output of the CLI.
func (v VisualBlock) String() string {
	switch v.Kind {
	case VisualSpacer:
		return "Spacer(" + formatFloat(v.Height) + ")"
	case VisualSeparator, VisualBlockQuoteMarker:
		return v.Kind.String()
	case VisualCodeLanguageLabel, VisualCodePanel:
		return v.Kind.String() + "(" + strconv.Quote(v.Content) + ")"
	case VisualListBullet:
		return "ListBullet(" + strconv.Itoa(v.IndentLevel) + ", " + strconv.Quote(v.Content) + ")"
	case VisualStyledText:
		var b strings.Builder
		b.WriteString("StyledText(")
		b.WriteString(strconv.Quote(v.Content))
		b.WriteString(" size=")
		b.WriteString(formatFloat(v.Size))
		if v.Bold() {
			b.WriteString(" bold")
		}
		if v.Italic {
			b.WriteString(" italic")
		}
		if v.Strikethrough {
			b.WriteString(" strike")
		}
		if v.Monospace {
			b.WriteString(" mono")
		}
		b.WriteString(" color=")
		b.WriteString(v.Color.Hex())
		if v.HasBackground {
			b.WriteString(" bg=")
			b.WriteString(v.Background.Hex())
		}
		b.WriteByte(')')
		return b.String()
	default:
		return v.Kind.String()
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
