package wld

import (
	"errors"
	"fmt"
)

var (
	ErrBadMagic           = errors.New("wld: bad magic")
	ErrUnsupportedVersion = errors.New("wld: unsupported version")
	ErrTruncated          = errors.New("wld: truncated input")
	ErrUnknownFragment    = errors.New("wld: unknown fragment type")
	ErrFragment           = errors.New("wld: fragment decode failed")
	ErrStringEncoding     = errors.New("wld: string not representable in Windows-1252")
	ErrTooLarge           = errors.New("wld: size exceeds limit")
	ErrValidation         = errors.New("wld: invalid document")
)

// FragmentError reports a fragment whose body could not be decoded. It
// locates the fragment in the input and retains the raw body for
// inspection. errors.Is matches both ErrFragment and the underlying
// cause, so callers can test for the category or for a specific failure
// such as ErrTruncated or ErrUnknownFragment.
type FragmentError struct {
	Index  int    // 1-based fragment position in the document
	Type   uint32 // wire type code
	Offset int64  // absolute byte offset of the fragment header
	Body   []byte // raw body bytes as read
	Err    error
}

func (e *FragmentError) Error() string {
	return fmt.Sprintf("wld: fragment %d type 0x%02x at offset %d: %v",
		e.Index, e.Type, e.Offset, e.Err)
}

func (e *FragmentError) Unwrap() []error {
	return []error{ErrFragment, e.Err}
}
