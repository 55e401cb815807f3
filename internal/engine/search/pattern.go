package search

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPatternSyntax indicates hex-stream text with a non-hex character.
var ErrPatternSyntax = errors.New("invalid hex pattern")

// ParseHex converts hex-stream text like "dead be ef" to bytes.
// Whitespace is ignored; an odd trailing digit is padded with a low zero
// nibble, matching the behavior of the find dialog.
func ParseHex(s string) ([]byte, error) {
	var compact strings.Builder
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t':
			continue
		case isHexDigit(r):
			compact.WriteRune(r)
		default:
			return nil, fmt.Errorf("%w: %q", ErrPatternSyntax, r)
		}
	}

	text := compact.String()
	if len(text)%2 != 0 {
		text += "0"
	}

	out := make([]byte, 0, len(text)/2)
	for i := 0; i < len(text); i += 2 {
		out = append(out, hexValue(text[i])<<4|hexValue(text[i+1]))
	}
	return out, nil
}

// FromASCII converts an ASCII literal to a search pattern.
func FromASCII(s string) []byte {
	return []byte(s)
}

// FormatHex renders a pattern as compact hex-stream text, the inverse of
// ParseHex. Used when persisting the last search.
func FormatHex(pattern []byte) string {
	var b strings.Builder
	for _, c := range pattern {
		fmt.Fprintf(&b, "%02x", c)
	}
	return b.String()
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
