package mdview

import (
	"fmt"
	"io"
)

// RenderRequest configures Render.
type RenderRequest struct {
	Reader  io.Reader
	Sink    Sink
	Options []RenderOption
}

// Render loads a markdown document from Reader and renders it to Sink in a
// single pass.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: reader is nil")
	}
	if req.Sink == nil {
		return fmt.Errorf("render: sink is nil")
	}
	doc, err := LoadDocument(req.Reader)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return RenderDocument(doc, req.Sink, req.Options...)
}

// RenderDocument renders a loaded document to sink. Every call is an
// independent pass; rendering the same document twice emits the same
// blocks.
func RenderDocument(doc *Document, sink Sink, opts ...RenderOption) error {
	if doc == nil {
		return fmt.Errorf("render: document is nil")
	}
	if err := RenderEvents(doc.Events(), sink, opts...); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
