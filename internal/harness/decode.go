package harness

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// DecodeLenient decodes UTF-8 output, replacing every invalid byte sequence
// with U+FFFD instead of failing.
func DecodeLenient(b []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(out)
}

// decodeDropInvalid decodes key files, silently dropping invalid sequences.
func decodeDropInvalid(b []byte) string {
	return strings.ToValidUTF8(string(b), "")
}

// StripCR removes every carriage return so CRLF and LF endings compare equal.
func StripCR(s string) string {
	return strings.ReplaceAll(s, "\r", "")
}
