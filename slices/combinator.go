package slices

// ParseLengthPrefixed reads a CompactSize n followed by n bytes, and returns
// the n-byte subslice (without its CompactSize prefix) together with the
// unconsumed remainder. No copy is made; the returned slice aliases b.
func ParseLengthPrefixed(b []byte) (data []byte, rest []byte, err error) {
	size, rest, err := ParseCompactSize(b)
	if err != nil {
		return nil, nil, err
	}

	n := size.Value
	if uint64(len(rest)) < n {
		return nil, nil, errEOF("ParseLengthPrefixed", size.Encoded)
	}

	return rest[:n:n], rest[n:], nil
}

// elementParser parses one element of a vector from the front of b, returning
// the parsed value and the remainder.
type elementParser[T any] func(b []byte) (T, []byte, error)

// parseVector reads a CompactSize count n, then parses exactly n consecutive
// elements of type T. hook, if non-nil, is invoked once per element with its
// zero-based index; hook suppression (the Break control-flow value) is the
// caller's responsibility, not the combinator's - parseVector always calls
// hook for every element it parses.
//
// There is no explicit upper bound on n: each element must consume at least
// one byte, so an oversized count exhausts the buffer and fails with
// ErrUnexpectedEOF rather than looping unboundedly.
func parseVector[T any](b []byte, parse elementParser[T], hook func(index int, item *T)) ([]T, []byte, error) {
	size, rest, err := ParseCompactSize(b)
	if err != nil {
		return nil, nil, err
	}

	n := size.Value
	items := make([]T, 0, clampPrealloc(n))
	for i := uint64(0); i < n; i++ {
		item, next, err := parse(rest)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)
		if hook != nil {
			hook(int(i), &items[len(items)-1])
		}
		rest = next
	}

	return items, rest, nil
}

// clampPrealloc bounds a pre-allocation hint so a maliciously large count
// field cannot itself force a large allocation before any bytes are read.
func clampPrealloc(n uint64) uint64 {
	const maxPrealloc = 4096
	if n > maxPrealloc {
		return maxPrealloc
	}
	return n
}
