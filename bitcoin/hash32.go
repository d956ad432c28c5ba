package bitcoin

import (
	"bytes"
	"database/sql/driver"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

const (
	Hash32Size = 32
)

// ErrWrongSize is returned when a byte slice or hex string does not decode
// to exactly Hash32Size bytes.
var ErrWrongSize = errors.New("wrong size")

// Hash32 is a 32 byte hash in internal (little endian, as serialized)
// byte order. Its String/MarshalJSON/MarshalText forms use display order
// (reversed), matching how txids and block hashes are conventionally shown.
type Hash32 [Hash32Size]byte

func NewHash32(b []byte) (*Hash32, error) {
	if len(b) != Hash32Size {
		return nil, errors.Wrapf(ErrWrongSize, "got %d, want %d", len(b), Hash32Size)
	}
	result := Hash32{}
	copy(result[:], b)
	return &result, nil
}

// NewHash32FromStr creates a hash from its display-order (big endian) hex
// string.
func NewHash32FromStr(s string) (*Hash32, error) {
	result := &Hash32{}
	if err := result.SetString(s); err != nil {
		return nil, err
	}
	return result, nil
}

// Sha256 sets the value of this hash to the SHA256 of itself.
func (h *Hash32) Sha256() {
	copy(h[:], Sha256(h[:]))
}

// Bytes returns the data for the hash, in internal byte order.
func (h Hash32) Bytes() []byte {
	return h[:]
}

// Value returns a value that can be handled by a database driver to put values in the database.
func (h Hash32) Value() (driver.Value, error) {
	return h.Bytes(), nil
}

// ReverseBytes returns the bytes in reverse (display) order.
func (h Hash32) ReverseBytes() []byte {
	b := make([]byte, Hash32Size)
	reverse32(b, h[:])
	return b
}

// SetBytes sets the value of the hash from internal byte order.
func (h *Hash32) SetBytes(b []byte) error {
	if len(b) != Hash32Size {
		return errors.Wrapf(ErrWrongSize, "got %d, want %d", len(b), Hash32Size)
	}
	copy(h[:], b)
	return nil
}

// SetString sets the hash from a display-order (big endian) hex string.
func (h *Hash32) SetString(s string) error {
	if len(s) != 2*Hash32Size {
		return errors.Wrapf(ErrWrongSize, "hex: got %d, want %d", len(s), Hash32Size*2)
	}

	b := make([]byte, Hash32Size)
	if _, err := hex.Decode(b, []byte(s)); err != nil {
		return err
	}
	reverse32(h[:], b)
	return nil
}

// String returns the display-order (big endian) hex encoding of the hash.
func (h Hash32) String() string {
	return hex.EncodeToString(h.ReverseBytes())
}

// Equal returns true if the parameter has the same value.
func (h *Hash32) Equal(o *Hash32) bool {
	if h == nil {
		return o == nil
	}
	if o == nil {
		return false
	}
	return bytes.Equal(h[:], o[:])
}

func (h Hash32) Copy() Hash32 {
	var c Hash32
	copy(c[:], h[:])
	return c
}

func (h Hash32) IsZero() bool {
	var zero Hash32
	return h.Equal(&zero)
}

// Serialize writes the hash into a writer, in internal byte order.
func (h Hash32) Serialize(w io.Writer) error {
	_, err := w.Write(h[:])
	return err
}

func (h *Hash32) Deserialize(r io.Reader) error {
	if _, err := io.ReadFull(r, h[:]); err != nil {
		return err
	}
	return nil
}

// DeserializeHash32 reads a hash from a reader, in internal byte order.
func DeserializeHash32(r io.Reader) (*Hash32, error) {
	result := Hash32{}
	_, err := io.ReadFull(r, result[:])
	if err != nil {
		return nil, err
	}

	return &result, err
}

// MarshalJSON converts to json, using display order.
func (h Hash32) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", h)), nil
}

// UnmarshalJSON converts from json, using display order.
func (h *Hash32) UnmarshalJSON(data []byte) error {
	b, err := ConvertJSONHexToReverseBytes(data)
	if err != nil {
		return errors.Wrap(err, "hex")
	}

	if len(b) == 0 {
		return nil
	}

	return h.SetBytes(b)
}

// MarshalText returns the display-order text encoding of the hash.
func (h Hash32) MarshalText() ([]byte, error) {
	result := h.String()
	return []byte(result), nil
}

// UnmarshalText parses a display-order hex encoded hash.
func (h *Hash32) UnmarshalText(text []byte) error {
	return h.SetString(string(text))
}

func (h Hash32) MarshalBinaryFixedSize() int {
	return 32
}

// MarshalBinary returns the binary encoding of the hash, in internal byte order.
func (h Hash32) MarshalBinary() ([]byte, error) {
	return h.Bytes(), nil
}

// UnmarshalBinary parses a binary encoded hash, in internal byte order.
func (h *Hash32) UnmarshalBinary(data []byte) error {
	return h.SetBytes(data)
}

// Scan converts from a database column.
func (h *Hash32) Scan(data interface{}) error {
	b, ok := data.([]byte)
	if !ok {
		return errors.New("Hash32 db column not bytes")
	}

	return h.SetBytes(b)
}

// ConvertJSONHexToReverseBytes decodes a quoted display-order hex string
// into internal byte order.
func ConvertJSONHexToReverseBytes(js []byte) ([]byte, error) {
	b, err := ConvertJSONHexToBytes(js)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}

	reversed := make([]byte, len(b))
	for i, v := range b {
		reversed[len(b)-1-i] = v
	}
	return reversed, nil
}

func reverse32(h, rh []byte) {
	i := Hash32Size - 1
	for _, b := range rh[:] {
		h[i] = b
		i--
	}
}
