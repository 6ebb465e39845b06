// Package codec implements the text encoding used by the NAS protocol:
// standard base64 with the padding character '=' replaced by '*', so values
// can be placed in a query string without escaping.
package codec

import (
	"encoding/base64"
	"strings"
)

const (
	// padding is the standard base64 padding character.
	padding = "="
	// wirePadding replaces padding on the wire.
	wirePadding = "*"
)

// Encode encodes raw bytes into the wire form.
func Encode(b []byte) string {
	return strings.ReplaceAll(base64.StdEncoding.EncodeToString(b), padding, wirePadding)
}

// EncodeString encodes a string into the wire form.
func EncodeString(s string) string {
	return Encode([]byte(s))
}

// DecodeStrict decodes the wire form, failing on malformed input.
func DecodeStrict(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(strings.ReplaceAll(s, wirePadding, padding))
}

// Decode decodes the wire form without failing.
//
// Well-formed input decodes exactly as DecodeStrict. Otherwise the console's
// alternate alphabet is mapped back ('>' to '+', '?' and '-' to '/'), every
// other character outside the base64 alphabet is skipped, padding included,
// and what remains is decoded. A dangling single character is dropped.
func Decode(s string) []byte {
	if b, err := DecodeStrict(s); err == nil {
		return b
	}

	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if c := fromAlternate(s[i]); isAlphabet(c) {
			buf = append(buf, c)
		}
	}
	if len(buf)%4 == 1 {
		buf = buf[:len(buf)-1]
	}

	b := make([]byte, base64.RawStdEncoding.DecodedLen(len(buf)))
	n, err := base64.RawStdEncoding.Decode(b, buf)
	if err != nil {
		// unreachable for alphabet-only input of valid length
		return nil
	}
	return b[:n]
}

// DecodeString is Decode returning a string.
func DecodeString(s string) string {
	return string(Decode(s))
}

// IsEncoded reports whether s only uses characters Encode can produce.
func IsEncoded(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isAlphabet(s[i]) && s[i] != wirePadding[0] {
			return false
		}
	}
	return true
}

// fromAlternate maps the characters some clients send in place of '+' and '/'.
func fromAlternate(c byte) byte {
	switch c {
	case '>':
		return '+'
	case '?', '-':
		return '/'
	}
	return c
}

func isAlphabet(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '+' || c == '/':
		return true
	}
	return false
}
