package mdview

import "bytes"

// FrontMatter is a metadata block at the very start of a document, delimited
// by ---, +++ or ;;; lines.
type FrontMatter struct {
	Delimiter string
	Raw       []byte
}

// splitFrontMatter separates a leading front matter block from src. When
// src does not start with one, fm is nil and body is src.
func splitFrontMatter(src []byte) (fm *FrontMatter, body []byte) {
	open, next, ok := nextLine(src, 0)
	if !ok {
		return nil, src
	}
	delim, ok := frontMatterDelimiter(open)
	if !ok {
		return nil, src
	}
	first, _, ok := nextLine(src, next)
	if !ok || !frontMatterMetadataLikely(first) {
		return nil, src
	}
	for idx := next; idx < len(src); {
		line, after, ok := nextLine(src, idx)
		if !ok {
			break
		}
		if bytes.Equal(bytes.TrimSpace(line), delim) {
			return &FrontMatter{Delimiter: string(delim), Raw: src[next:idx]}, src[after:]
		}
		idx = after
	}
	return nil, src
}

// nextLine returns the line starting at start without its line ending and
// the offset of the following line.
func nextLine(src []byte, start int) ([]byte, int, bool) {
	if start >= len(src) {
		return nil, start, false
	}
	i := bytes.IndexByte(src[start:], '\n')
	if i < 0 {
		return trimCR(src[start:]), len(src), true
	}
	return trimCR(src[start : start+i]), start + i + 1, true
}

func frontMatterDelimiter(line []byte) ([]byte, bool) {
	trimmed := bytes.TrimSpace(line)
	for _, d := range [...]string{"---", "+++", ";;;"} {
		if string(trimmed) == d {
			return []byte(d), true
		}
	}
	return nil, false
}

// frontMatterMetadataLikely tells a metadata line apart from the text of a
// document that merely opens with a thematic break.
func frontMatterMetadataLikely(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return true
	}
	return bytes.ContainsAny(trimmed, ":=")
}

func trimCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}
