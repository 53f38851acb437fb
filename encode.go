package wld

import (
	"fmt"
	"io"
)

// Encode writes doc to w in wire form. It is [Document.Encode] plus the
// write; the byte layout is fully determined by the document, so there
// are no options to pass.
func Encode(w io.Writer, doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrValidation)
	}
	data, err := doc.Encode()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
