// Package mdview turns Markdown into a sequence of visual blocks.
//
// A rendering pass pulls structural events (block starts and ends, text,
// inline code, breaks) from an EventSource and emits VisualBlocks to a
// Sink in order: styled text, spacers, separators, code labels, code
// panels and list bullets. The pass keeps only the state of the block it
// is in; nothing is buffered beyond the current text and code.
//
// Core properties:
//   - One pass per document; rendering twice emits the same blocks
//   - Headings sized 28 down to 14 points, levels 1 and 2 ruled
//   - Code blocks framed in a panel with an optional language label
//   - Light and dark palettes
//
// Example:
//
//	var blocks mdview.Collector
//	err := mdview.Render(mdview.RenderRequest{
//		Reader:  strings.NewReader("# Hello\n\nMarkdown in, blocks out.\n"),
//		Sink:    &blocks,
//		Options: []mdview.RenderOption{mdview.WithDarkMode(true)},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// The ansi package provides a Sink that writes to a terminal.
package mdview
