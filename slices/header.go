package slices

import (
	"crypto/sha256"

	"github.com/chainkit/slices/bitcoin"
)

// blockHeaderSize is the fixed wire size of a block header: three 32-bit
// fields (version, time, bits), two hashes, and a 32-bit nonce.
const blockHeaderSize = 80

// BlockHeader is a zero-copy view of the fixed 80-byte block header.
type BlockHeader struct {
	raw []byte
}

// ParseBlockHeader reads a fixed 80-byte header from the front of b.
func ParseBlockHeader(b []byte) (BlockHeader, []byte, error) {
	if len(b) < blockHeaderSize {
		return BlockHeader{}, nil, errEOF("ParseBlockHeader", len(b))
	}
	return BlockHeader{raw: b[:blockHeaderSize:blockHeaderSize]}, b[blockHeaderSize:], nil
}

// Version returns the block's version field.
func (h BlockHeader) Version() int32 {
	return int32(endian.Uint32(h.raw[0:4]))
}

// PrevBlock returns the hash of the previous block, in internal byte order.
func (h BlockHeader) PrevBlock() bitcoin.Hash32 {
	var out bitcoin.Hash32
	copy(out[:], h.raw[4:36])
	return out
}

// MerkleRoot returns the header's merkle root, in internal byte order.
func (h BlockHeader) MerkleRoot() bitcoin.Hash32 {
	var out bitcoin.Hash32
	copy(out[:], h.raw[36:68])
	return out
}

// Timestamp returns the block's declared Unix timestamp.
func (h BlockHeader) Timestamp() uint32 {
	return endian.Uint32(h.raw[68:72])
}

// Bits returns the compact target representation.
func (h BlockHeader) Bits() uint32 {
	return endian.Uint32(h.raw[72:76])
}

// Nonce returns the proof-of-work nonce.
func (h BlockHeader) Nonce() uint32 {
	return endian.Uint32(h.raw[76:80])
}

// Bytes returns the 80-byte serialization this header was parsed from.
func (h BlockHeader) Bytes() []byte { return h.raw }

// Hash returns the double-SHA256 of the header, in internal byte order, the
// value used as the block's identity (reversed for the usual display form).
func (h BlockHeader) Hash() bitcoin.Hash32 {
	first := sha256.Sum256(h.raw)
	return bitcoin.Hash32(sha256.Sum256(first[:]))
}
