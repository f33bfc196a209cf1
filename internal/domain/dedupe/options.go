package dedupe

const defaultMaxSize = 50000

type config struct {
	maxSize int
}

// Option configures the in-memory deduper.
type Option func(*config)

// WithMaxSize sets how many ids are remembered. Once full, the oldest id is
// evicted. maxSize <= 0 means unbounded.
func WithMaxSize(maxSize int) Option {
	return func(c *config) {
		c.maxSize = maxSize
	}
}
