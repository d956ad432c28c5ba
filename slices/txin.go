package slices

// TxIn is a zero-copy view of a transaction input: a previous outpoint, an
// opaque unlocking script, and a sequence number.
type TxIn struct {
	raw      []byte
	outpoint OutPoint
	script   []byte
	sequence uint32
}

// ParseTxIn reads an OutPoint, a length-prefixed script, and a 4-byte
// sequence number from the front of b.
func ParseTxIn(b []byte) (TxIn, []byte, error) {
	start := len(b)

	outpoint, rest, err := ParseOutPoint(b)
	if err != nil {
		return TxIn{}, nil, err
	}

	script, rest, err := ParseLengthPrefixed(rest)
	if err != nil {
		return TxIn{}, nil, err
	}

	if len(rest) < 4 {
		return TxIn{}, nil, errEOF("ParseTxIn", start-len(rest))
	}
	sequence := endian.Uint32(rest[:4])
	rest = rest[4:]

	consumed := start - len(rest)
	return TxIn{
		raw:      b[:consumed:consumed],
		outpoint: outpoint,
		script:   script,
		sequence: sequence,
	}, rest, nil
}

// OutPoint returns the previous output this input spends.
func (t TxIn) OutPoint() OutPoint { return t.outpoint }

// Script returns the unlocking script bytes, without its CompactSize length
// prefix.
func (t TxIn) Script() []byte { return t.script }

// Sequence returns the input's sequence number.
func (t TxIn) Sequence() uint32 { return t.sequence }

// Bytes returns the exact byte range this input was parsed from.
func (t TxIn) Bytes() []byte { return t.raw }
