package wld

import (
	"fmt"
	"io"
)

// Decode reads a WLD document from r. The reader is drained and the
// bytes handed to [Parse]; see Parse for the structure expected and the
// errors that come back. ParseOption values pass through unchanged.
//
// Decode exists for callers holding a reader rather than a byte slice,
// such as an archive member or a network handle. The format declares
// sizes ahead of the data they describe, so parsing needs the whole
// input in memory either way.
func Decode(r io.Reader, opts ...ParseOption) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("wld: read: %w", err)
	}
	return Parse(data, opts...)
}
