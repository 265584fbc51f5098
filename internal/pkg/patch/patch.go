package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Map converts an optional value, keeping nil as nil.
func Map[T, U any](ptr *T, fn func(T) (U, error)) (*U, error) {
	if ptr == nil {
		return nil, nil
	}
	v, err := fn(*ptr)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
