package archive

import "fmt"

// Limits bounds the sizes an archive declares about itself, so a
// corrupted or hostile index cannot drive allocations. A zero field
// means the default for that field.
type Limits struct {
	MaxFiles    int // member count the index may declare
	MaxFileSize int // uncompressed bytes in a single member
}

func defaultLimits() Limits {
	return Limits{
		MaxFiles:    1 << 16,
		MaxFileSize: 1 << 28, // 256 MiB
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxFiles == 0 {
		l.MaxFiles = d.MaxFiles
	}
	if l.MaxFileSize == 0 {
		l.MaxFileSize = d.MaxFileSize
	}
	return l
}

func (l Limits) validate() error {
	if l.MaxFiles < 0 || l.MaxFileSize < 0 {
		return fmt.Errorf("%w: negative limit", ErrTooLarge)
	}
	return nil
}

type decodeConfig struct {
	limits Limits
}

// DecodeOption adjusts how Decode reads an archive.
type DecodeOption func(*decodeConfig)

// WithLimits overrides the default size limits applied while decoding.
// Zero fields keep their defaults.
func WithLimits(l Limits) DecodeOption {
	return func(c *decodeConfig) { c.limits = l }
}
