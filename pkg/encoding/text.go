// Package encoding normalizes the text encodings of mesh files.
//
// Exporters on Windows commonly write a UTF-8 byte order mark or emit
// UTF-16; both are decoded to plain UTF-8 before parsing.
package encoding

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewTextReader returns a reader that yields UTF-8. A UTF-8 or UTF-16 byte
// order mark selects the source encoding and is stripped; input without a
// BOM is passed through as UTF-8.
func NewTextReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// DecodeText converts data to a UTF-8 string using the same BOM rules as
// NewTextReader. Returns the original bytes if decoding fails.
func DecodeText(data []byte) string {
	result, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}
