package slices

import (
	"encoding/binary"
	"fmt"
)

// endian is the byte order used by every fixed-width integer in the
// consensus encoding, matching the convention of tokenized-pkg/wire.
var endian = binary.LittleEndian

const (
	// MaxVarIntPayload is the largest encoded length of a CompactSize.
	MaxVarIntPayload = 9
)

// errNonCanonicalVarInt mirrors the error text used by the teacher repo's
// wire.ReadVarIntN for a non-canonically encoded length prefix.
const errNonCanonicalVarInt = "non-canonical varint %x - discriminant %x must encode a value greater than %x"

// CompactSize is a decoded Bitcoin variable-length integer together with the
// number of bytes its encoding occupied.
type CompactSize struct {
	Value   uint64
	Encoded int // 1, 3, 5, or 9
}

// ParseCompactSize reads a CompactSize from the front of b. It enforces the
// shortest-form rule: a discriminant byte of 0xFD/0xFE/0xFF is only legal
// when the value it introduces could not have fit in a smaller encoding.
func ParseCompactSize(b []byte) (CompactSize, []byte, error) {
	if len(b) < 1 {
		return CompactSize{}, nil, errEOF("ParseCompactSize", 0)
	}

	discriminant := b[0]
	switch discriminant {
	case 0xff:
		if len(b) < 9 {
			return CompactSize{}, nil, errEOF("ParseCompactSize", len(b))
		}
		v := endian.Uint64(b[1:9])
		const min = uint64(0x100000000)
		if v < min {
			return CompactSize{}, nil, newParseError("ParseCompactSize", ErrNonCanonicalVarInt, 9,
				fmtNonCanonical(v, discriminant, min))
		}
		return CompactSize{Value: v, Encoded: 9}, b[9:], nil

	case 0xfe:
		if len(b) < 5 {
			return CompactSize{}, nil, errEOF("ParseCompactSize", len(b))
		}
		v := endian.Uint32(b[1:5])
		const min = uint32(0x10000)
		if v < min {
			return CompactSize{}, nil, newParseError("ParseCompactSize", ErrNonCanonicalVarInt, 5,
				fmtNonCanonical(uint64(v), discriminant, uint64(min)))
		}
		return CompactSize{Value: uint64(v), Encoded: 5}, b[5:], nil

	case 0xfd:
		if len(b) < 3 {
			return CompactSize{}, nil, errEOF("ParseCompactSize", len(b))
		}
		v := endian.Uint16(b[1:3])
		const min = uint16(0xfd)
		if v < min {
			return CompactSize{}, nil, newParseError("ParseCompactSize", ErrNonCanonicalVarInt, 3,
				fmtNonCanonical(uint64(v), discriminant, uint64(min)))
		}
		return CompactSize{Value: uint64(v), Encoded: 3}, b[3:], nil

	default:
		return CompactSize{Value: uint64(discriminant), Encoded: 1}, b[1:], nil
	}
}

func fmtNonCanonical(v uint64, discriminant byte, min uint64) string {
	return fmt.Sprintf(errNonCanonicalVarInt, v, discriminant, min)
}

// CompactSizeLen returns the number of bytes val would occupy if encoded as
// a canonical CompactSize. Useful for SerializeSize-style bookkeeping.
func CompactSizeLen(val uint64) int {
	switch {
	case val < 0xfd:
		return 1
	case val <= 0xffff:
		return 3
	case val <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

func readU32(b []byte, fn string, offset int) (uint32, error) {
	if len(b) < 4 {
		return 0, errEOF(fn, offset)
	}
	return endian.Uint32(b[:4]), nil
}

func readU64(b []byte, fn string, offset int) (uint64, error) {
	if len(b) < 8 {
		return 0, errEOF(fn, offset)
	}
	return endian.Uint64(b[:8]), nil
}

func readI32(b []byte, fn string, offset int) (int32, error) {
	v, err := readU32(b, fn, offset)
	return int32(v), err
}
