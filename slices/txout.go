package slices

// TxOut is a zero-copy view of a transaction output: a satoshi value and an
// opaque locking script.
type TxOut struct {
	raw    []byte
	value  uint64
	script []byte
}

// ParseTxOut reads an 8-byte little-endian value and a length-prefixed
// script from the front of b.
func ParseTxOut(b []byte) (TxOut, []byte, error) {
	start := len(b)

	value, err := readU64(b, "ParseTxOut", 0)
	if err != nil {
		return TxOut{}, nil, err
	}
	rest := b[8:]

	script, rest, err := ParseLengthPrefixed(rest)
	if err != nil {
		return TxOut{}, nil, err
	}

	consumed := start - len(rest)
	return TxOut{
		raw:    b[:consumed:consumed],
		value:  value,
		script: script,
	}, rest, nil
}

// Value returns the output value in satoshis.
func (t TxOut) Value() uint64 { return t.value }

// Script returns the locking script bytes, without its CompactSize length
// prefix.
func (t TxOut) Script() []byte { return t.script }

// Bytes returns the exact byte range this output was parsed from.
func (t TxOut) Bytes() []byte { return t.raw }
