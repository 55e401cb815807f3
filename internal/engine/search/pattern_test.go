package search

import (
	"bytes"
	"errors"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{"deadbeef", []byte{0xDE, 0xAD, 0xBE, 0xEF}},
		{"de ad be ef", []byte{0xDE, 0xAD, 0xBE, 0xEF}},
		{"DEAD\tbeEF", []byte{0xDE, 0xAD, 0xBE, 0xEF}},
		{"00", []byte{0x00}},
		{"", []byte{}},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if err != nil {
			t.Errorf("ParseHex(%q): %v", tt.in, err)
			continue
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("ParseHex(%q) = % x, want % x", tt.in, got, tt.want)
		}
	}
}

func TestParseHexOddDigitPadded(t *testing.T) {
	// A dangling digit becomes the high nibble, matching the find dialog.
	got, err := ParseHex("abc")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{0xAB, 0xC0}) {
		t.Errorf("ParseHex(\"abc\") = % x, want ab c0", got)
	}
}

func TestParseHexRejectsNonHex(t *testing.T) {
	if _, err := ParseHex("12g4"); !errors.Is(err, ErrPatternSyntax) {
		t.Errorf("err = %v, want ErrPatternSyntax", err)
	}
}

func TestFormatHexRoundTrip(t *testing.T) {
	pattern := []byte{0x00, 0xFF, 0x1A}
	got, err := ParseHex(FormatHex(pattern))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, pattern) {
		t.Errorf("round trip = % x, want % x", got, pattern)
	}
}

func TestFromASCII(t *testing.T) {
	if !bytes.Equal(FromASCII("AB"), []byte{0x41, 0x42}) {
		t.Error("FromASCII mangled the literal")
	}
}
