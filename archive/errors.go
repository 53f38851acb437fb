package archive

import "errors"

var (
	ErrBadMagic           = errors.New("archive: bad magic")
	ErrUnsupportedVersion = errors.New("archive: unsupported version")
	ErrTruncated          = errors.New("archive: truncated input")
	ErrCorrupt            = errors.New("archive: corrupt archive")
	ErrChecksum           = errors.New("archive: filename hash mismatch")
	ErrTooLarge           = errors.New("archive: size exceeds limit")
	ErrNotFound           = errors.New("archive: no such file")
)
