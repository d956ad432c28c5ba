package slices

import "github.com/chainkit/slices/bitcoin"

// outPointSize is the fixed wire size of an OutPoint: a 32-byte txid
// followed by a 4-byte little-endian output index.
const outPointSize = 36

// OutPoint is a zero-copy view of a 36-byte previous-output reference.
type OutPoint struct {
	raw []byte
}

// ParseOutPoint reads a fixed 36-byte OutPoint from the front of b.
func ParseOutPoint(b []byte) (OutPoint, []byte, error) {
	if len(b) < outPointSize {
		return OutPoint{}, nil, errEOF("ParseOutPoint", len(b))
	}
	return OutPoint{raw: b[:outPointSize:outPointSize]}, b[outPointSize:], nil
}

// TxID returns the 32-byte previous transaction id, in the byte order it
// appears in the serialization (internal-byte-order, not display order).
func (o OutPoint) TxID() bitcoin.Hash32 {
	var h bitcoin.Hash32
	copy(h[:], o.raw[:32])
	return h
}

// Vout returns the zero-based output index within the previous transaction.
func (o OutPoint) Vout() uint32 {
	return endian.Uint32(o.raw[32:36])
}

// Bytes returns the exact 36-byte subslice this view was parsed from.
func (o OutPoint) Bytes() []byte {
	return o.raw
}
