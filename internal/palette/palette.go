// Package palette holds the RGB colors used for light and dark rendering.
package palette

import "fmt"

// Color is an opaque 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// RGB returns a Color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Gray returns a neutral color with all components set to v.
func Gray(v uint8) Color {
	return Color{R: v, G: v, B: v}
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette is the full set of colors one rendering pass may apply.
type Palette struct {
	Text            Color
	Heading         [6]Color
	CodeLabel       Color
	CodePanelFill   Color
	CodePanelBorder Color
	CodePanelText   Color
	InlineCodeBg    Color
	Separator       Color
	ListMarker      Color
	QuoteMarker     Color
	Background      Color
}

// Light darkens headings toward the top level: level 1 is the darkest gray.
var Light = Palette{
	Text: Gray(34),
	Heading: [6]Color{
		Gray(51),
		Gray(68),
		Gray(85),
		Gray(102),
		Gray(119),
		Gray(136),
	},
	CodeLabel:       Gray(160),
	CodePanelFill:   Gray(248),
	CodePanelBorder: Gray(200),
	CodePanelText:   Gray(40),
	InlineCodeBg:    Gray(240),
	Separator:       Gray(200),
	ListMarker:      Gray(85),
	QuoteMarker:     Gray(160),
	Background:      Gray(255),
}

// Dark brightens headings toward the top level: level 1 is white.
var Dark = Palette{
	Text: Gray(220),
	Heading: [6]Color{
		Gray(255),
		Gray(230),
		Gray(210),
		Gray(190),
		Gray(190),
		Gray(190),
	},
	CodeLabel:       Gray(160),
	CodePanelFill:   Gray(30),
	CodePanelBorder: Gray(200),
	CodePanelText:   Gray(220),
	InlineCodeBg:    Gray(45),
	Separator:       Gray(90),
	ListMarker:      Gray(190),
	QuoteMarker:     Gray(110),
	Background:      Gray(18),
}

// For returns the dark palette when dark is set and the light one otherwise.
func For(dark bool) Palette {
	if dark {
		return Dark
	}
	return Light
}
