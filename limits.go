package wld

import "fmt"

// Limits bounds the sizes a document declares about itself, so a
// corrupted or hostile header cannot drive allocations. A zero field
// means the default for that field.
type Limits struct {
	MaxFragments      int // fragment count declared by the header
	MaxFragmentSize   int // bytes in a single fragment body
	MaxStringPoolSize int // bytes in the scrambled string block
}

func defaultLimits() Limits {
	return Limits{
		MaxFragments:      1 << 20,
		MaxFragmentSize:   1 << 28, // 256 MiB
		MaxStringPoolSize: 1 << 28,
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxFragments == 0 {
		l.MaxFragments = d.MaxFragments
	}
	if l.MaxFragmentSize == 0 {
		l.MaxFragmentSize = d.MaxFragmentSize
	}
	if l.MaxStringPoolSize == 0 {
		l.MaxStringPoolSize = d.MaxStringPoolSize
	}
	return l
}

func (l Limits) validate() error {
	if l.MaxFragments < 0 || l.MaxFragmentSize < 0 || l.MaxStringPoolSize < 0 {
		return fmt.Errorf("%w: negative limit", ErrTooLarge)
	}
	return nil
}
