package slices

// Witness is a zero-copy view of the witness stack for a single SegWit
// input: an ordered sequence of length-prefixed byte items. An empty witness
// (no items) is encoded as a single CompactSize(0) and is legal even though
// it makes the enclosing transaction non-canonical.
type Witness struct {
	raw   []byte
	items [][]byte
}

// ParseWitness reads a CompactSize item count followed by that many
// length-prefixed byte items from the front of b.
func ParseWitness(b []byte) (Witness, []byte, error) {
	start := len(b)

	size, rest, err := ParseCompactSize(b)
	if err != nil {
		return Witness{}, nil, err
	}

	n := size.Value
	out := make([][]byte, 0, clampPrealloc(n))
	for i := uint64(0); i < n; i++ {
		item, next, err := ParseLengthPrefixed(rest)
		if err != nil {
			return Witness{}, nil, err
		}
		out = append(out, item)
		rest = next
	}

	consumed := start - len(rest)
	return Witness{raw: b[:consumed:consumed], items: out}, rest, nil
}

// Len returns the number of witness items.
func (w Witness) Len() int { return len(w.items) }

// Item returns the i'th witness item without re-scanning items 0..i.
func (w Witness) Item(i int) []byte { return w.items[i] }

// Bytes returns the exact byte range this witness was parsed from,
// including its item-count CompactSize prefix.
func (w Witness) Bytes() []byte { return w.raw }
