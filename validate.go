package mdview

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrInvalidUTF8 reports input that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports input that appears to be binary.
	ErrBinaryInput = errors.New("binary input detected")
)

const (
	minBinarySample = 64
	maxControlPct   = 2
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// ValidateInput returns an error if src is not valid UTF-8 or appears to be
// binary: it holds a NUL byte, or at least maxControlPct percent of a
// sufficiently long input are control characters.
func ValidateInput(src []byte) error {
	if !utf8.Valid(src) {
		return ErrInvalidUTF8
	}
	if bytes.IndexByte(src, 0x00) >= 0 {
		return ErrBinaryInput
	}
	if len(src) < minBinarySample {
		return nil
	}
	control := 0
	for _, b := range src {
		if isControlByte(b) {
			control++
		}
	}
	if control*100 >= len(src)*maxControlPct {
		return ErrBinaryInput
	}
	return nil
}

// decodeText converts BOM-marked input to plain UTF-8.
func decodeText(src []byte) ([]byte, error) {
	var endian unicode.Endianness
	switch {
	case bytes.HasPrefix(src, bomUTF8):
		return src[len(bomUTF8):], nil
	case bytes.HasPrefix(src, bomUTF16LE):
		endian = unicode.LittleEndian
	case bytes.HasPrefix(src, bomUTF16BE):
		endian = unicode.BigEndian
	default:
		return src, nil
	}
	out, err := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder().Bytes(src)
	if err != nil {
		return nil, fmt.Errorf("decode utf-16: %w", err)
	}
	return out, nil
}

// cleanText drops control characters other than tab and line endings and
// composes the text to NFC.
func cleanText(src []byte) []byte {
	out := make([]byte, 0, len(src))
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		if !isControlRune(r) {
			out = append(out, src[i:i+size]...)
		}
		i += size
	}
	return norm.NFC.Bytes(out)
}

func isControlByte(b byte) bool {
	return b < 0x09 || (b > 0x0D && b < 0x20) || b == 0x7F
}

func isControlRune(r rune) bool {
	switch r {
	case '\n', '\r', '\t':
		return false
	}
	return r < 0x20 || r == 0x7F
}
