package wld

type parseConfig struct {
	limits Limits
}

type ParseOption func(*parseConfig)

// WithLimits overrides the default size limits applied while parsing.
// Zero fields keep their defaults.
func WithLimits(l Limits) ParseOption {
	return func(c *parseConfig) { c.limits = l }
}
