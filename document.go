package mdview

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a loaded markdown document: clean UTF-8 text with any front
// matter split off. A Document is immutable once loaded.
type Document struct {
	// Source is the full decoded text, front matter included.
	Source []byte
	// Body is the markdown after the front matter.
	Body        []byte
	FrontMatter *FrontMatter
	// Meta holds decoded YAML (or JSON) front matter; nil otherwise.
	Meta map[string]any
}

// LoadDocument reads all of r and prepares it for rendering.
func LoadDocument(r io.Reader) (*Document, error) {
	if r == nil {
		return nil, fmt.Errorf("load document: reader is nil")
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("load document: read: %w", err)
	}
	return ParseDocument(raw)
}

// ParseDocument prepares raw document bytes for rendering. raw is not
// retained.
func ParseDocument(raw []byte) (*Document, error) {
	decoded, err := decodeText(raw)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if err := ValidateInput(decoded); err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	src := cleanText(decoded)
	doc := &Document{Source: src, Body: src}
	doc.FrontMatter, doc.Body = splitFrontMatter(src)
	if doc.FrontMatter != nil && doc.FrontMatter.Delimiter != "+++" {
		// Undecodable metadata is still kept out of the body.
		meta := map[string]any{}
		if err := yaml.Unmarshal(doc.FrontMatter.Raw, &meta); err == nil {
			doc.Meta = meta
		}
	}
	return doc, nil
}

// Title returns the front matter title, if any.
func (d *Document) Title() string {
	if d == nil || d.Meta == nil {
		return ""
	}
	if title, ok := d.Meta["title"].(string); ok {
		return strings.TrimSpace(title)
	}
	return ""
}

// Events returns a fresh event source over the document body. Each call
// starts a new, independent sequence.
func (d *Document) Events() EventSource {
	return NewMarkdownSource(d.Body)
}
