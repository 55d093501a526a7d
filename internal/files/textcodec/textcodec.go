// Package textcodec converts project source files between their on-disk
// legacy single-byte encoding (ISO-8859-1) and Go strings.
package textcodec

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Latin1 is the encoding Automation Studio uses for program and configuration files.
var Latin1 encoding.Encoding = charmap.ISO8859_1

// Decode converts ISO-8859-1 bytes to a string.
// Every byte value maps to a code point, so decoding never fails;
// the error return only guards against a misbehaving transformer.
func Decode(data []byte) (string, error) {
	out, err := Latin1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode ISO-8859-1 content: %w", err)
	}
	return string(out), nil
}

// DecodeLenient is Decode for callers that treat undecodable input as empty.
func DecodeLenient(data []byte) string {
	s, err := Decode(data)
	if err != nil {
		return ""
	}
	return s
}

// Encode converts a string back to ISO-8859-1 without a byte-order mark.
// Characters outside the code page are replaced with the encoding's
// substitute byte rather than failing the write.
func Encode(s string) ([]byte, error) {
	out, err := encoding.ReplaceUnsupported(Latin1.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("failed to encode ISO-8859-1 content: %w", err)
	}
	return out, nil
}
