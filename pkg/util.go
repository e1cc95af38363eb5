package pkg

// Option is a functional option that returns a modified copy of T.
type Option[T any] func(T) T

// Apply applies each of the given options to cfg in order and returns the
// result. Nil options are skipped.
func Apply[T any](cfg T, opts ...Option[T]) T {
	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	return cfg
}
