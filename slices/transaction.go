package slices

import (
	"crypto/sha256"
	"hash"

	"github.com/chainkit/slices/bitcoin"
)

// HashProvider constructs the hash.Hash used for the first SHA-256 round of
// TxID; the core feeds it the legacy preimage's byte ranges and reads back
// Sum, the same shape tokenized-pkg/wire uses (sha256.New() in msgtx.go and
// msgparseblock.go). The second TxID round, WTxID and BlockHeader.Hash call
// crypto/sha256 directly and do not use the provider.
type HashProvider func() hash.Hash

// DefaultHashProvider is crypto/sha256, the teacher's choice.
var DefaultHashProvider HashProvider = sha256.New

// segWitMarker and segWitFlag are the two sentinel bytes that follow the
// version field of a SegWit-encoded transaction.
const (
	segWitMarker = 0x00
	segWitFlag   = 0x01
)

// Transaction is a zero-copy view of a Bitcoin transaction, legacy or
// SegWit. Byte ranges for the legacy preimage are precomputed during parse
// so txid/wtxid never re-scan the transaction.
type Transaction struct {
	raw []byte

	version  int32
	isSegWit bool
	inputs   []TxIn
	outputs  []TxOut
	// witnesses[i] is the witness for inputs[i]; nil (len 0) for legacy.
	witnesses []Witness
	lockTime  uint32

	inputsStart int
	outputsEnd  int
	lockTimeOff int
}

// ParseTransaction parses a transaction from the front of b. If v is
// non-nil, its OnTxIn/OnTxOut/OnWitness hooks fire once per element in
// index order, and OnTransaction fires last with the fully parsed view, per
// the visitor contract in spec §4.7 ("after", returning a control-flow
// value).
func ParseTransaction(b []byte, v *Visitor) (Transaction, []byte, error) {
	return parseTransactionIndexed(b, v, 0, true)
}

// parseTransactionIndexed is the shared implementation behind
// ParseTransaction and Block parsing, which needs to pass a real index into
// OnTransaction.
func parseTransactionIndexed(b []byte, v *Visitor, index int, fireTx bool) (Transaction, []byte, error) {
	start := len(b)

	version, err := readI32(b, "ParseTransaction", 0)
	if err != nil {
		return Transaction{}, nil, err
	}
	rest := b[4:]

	isSegWit := false
	if len(rest) >= 1 && rest[0] == segWitMarker {
		if len(rest) < 2 || rest[1] != segWitFlag {
			return Transaction{}, nil, newParseError("ParseTransaction", ErrInvalidSegWitFlag,
				start-len(rest), "marker 0x00 not followed by flag 0x01")
		}
		isSegWit = true
		rest = rest[2:]
	}

	inputsStart := start - len(rest)

	inputs, rest, err := parseVector(rest, ParseTxIn, nil)
	if err != nil {
		return Transaction{}, nil, err
	}

	if isSegWit && len(inputs) == 0 {
		return Transaction{}, nil, newParseError("ParseTransaction", ErrInvalidSegWitInputs,
			start-len(rest), "zero inputs immediately after marker/flag")
	}

	outputs, rest, err := parseVector(rest, ParseTxOut, nil)
	if err != nil {
		return Transaction{}, nil, err
	}

	outputsEnd := start - len(rest)

	var witnesses []Witness
	if isSegWit {
		witnesses = make([]Witness, len(inputs))
		for i := range inputs {
			w, next, err := ParseWitness(rest)
			if err != nil {
				return Transaction{}, nil, err
			}
			witnesses[i] = w
			rest = next
		}
	}

	lockTimeOff := start - len(rest)
	if len(rest) < 4 {
		return Transaction{}, nil, errEOF("ParseTransaction", lockTimeOff)
	}
	lockTime := endian.Uint32(rest[:4])
	rest = rest[4:]

	consumed := start - len(rest)
	tx := Transaction{
		raw:         b[:consumed:consumed],
		version:     version,
		isSegWit:    isSegWit,
		inputs:      inputs,
		outputs:     outputs,
		witnesses:   witnesses,
		lockTime:    lockTime,
		inputsStart: inputsStart,
		outputsEnd:  outputsEnd,
		lockTimeOff: lockTimeOff,
	}

	for i := range tx.inputs {
		v.fireTxIn(i, &tx.inputs[i])
	}
	for i := range tx.outputs {
		v.fireTxOut(i, &tx.outputs[i])
	}
	for i := range tx.witnesses {
		v.fireWitness(i, &tx.witnesses[i])
	}
	if fireTx {
		v.fireTransaction(index, &tx)
	}

	return tx, rest, nil
}

// Version returns the transaction's two's-complement version field.
func (tx Transaction) Version() int32 { return tx.version }

// IsSegWit reports whether the transaction carries the SegWit marker/flag
// and a per-input witness section.
func (tx Transaction) IsSegWit() bool { return tx.isSegWit }

// Inputs returns the transaction's inputs in index order.
func (tx Transaction) Inputs() []TxIn { return tx.inputs }

// Outputs returns the transaction's outputs in index order.
func (tx Transaction) Outputs() []TxOut { return tx.outputs }

// Witness returns the witness stack for input i. It panics if the
// transaction is not SegWit or i is out of range, mirroring slice indexing.
func (tx Transaction) Witness(i int) Witness { return tx.witnesses[i] }

// LockTime returns the transaction's locktime field.
func (tx Transaction) LockTime() uint32 { return tx.lockTime }

// Bytes returns the transaction's full serialization: for SegWit
// transactions this includes the marker, flag, and witness data.
func (tx Transaction) Bytes() []byte { return tx.raw }

// WriteLegacyPreimage feeds w the legacy (non-witness) preimage:
// version ∥ inputs ∥ outputs ∥ locktime. For a legacy transaction this is
// exactly the full serialization; for SegWit it skips the marker/flag and
// witness sections without ever materializing a contiguous copy.
func (tx Transaction) WriteLegacyPreimage(w interface{ Write([]byte) (int, error) }) error {
	if !tx.isSegWit {
		_, err := w.Write(tx.raw)
		return err
	}

	if _, err := w.Write(tx.raw[:4]); err != nil {
		return err
	}
	if _, err := w.Write(tx.raw[tx.inputsStart:tx.outputsEnd]); err != nil {
		return err
	}
	_, err := w.Write(tx.raw[tx.lockTimeOff : tx.lockTimeOff+4])
	return err
}

// TxID returns the double-SHA256 of the legacy preimage, in
// internal-byte-order (the order present in the serialization, not display
// order).
func (tx Transaction) TxID() bitcoin.Hash32 {
	h := DefaultHashProvider()
	_ = tx.WriteLegacyPreimage(h)
	first := h.Sum(nil)
	return bitcoin.Hash32(sha256.Sum256(first))
}

// WTxID returns the double-SHA256 of the full serialization. For a legacy
// transaction this equals TxID.
func (tx Transaction) WTxID() bitcoin.Hash32 {
	if !tx.isSegWit {
		return tx.TxID()
	}
	return bitcoin.Hash32(sha256.Sum256(bitcoin.Sha256(tx.raw)))
}
