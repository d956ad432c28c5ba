package slices

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
)

func u32le(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func u64le(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func TestParseCompactSizeSingleByte(t *testing.T) {
	cs, rest, err := ParseCompactSize([]byte{0xfc, 0xaa})
	if err != nil {
		t.Fatalf("ParseCompactSize failed : %s", err)
	}
	if cs.Value != 0xfc || cs.Encoded != 1 {
		t.Fatalf("Wrong value : got %+v, want {252 1}", cs)
	}
	if !bytes.Equal(rest, []byte{0xaa}) {
		t.Fatalf("Wrong remainder : got %x", rest)
	}
}

func TestParseCompactSizeNonCanonical(t *testing.T) {
	// 0xfd introduces a 2-byte value; 252 fits in a single byte, so this is
	// a non-canonical encoding and must be rejected.
	b := append([]byte{0xfd}, 0xfc, 0x00)
	if _, _, err := ParseCompactSize(b); err == nil {
		t.Fatalf("Expected non-canonical varint error")
	}
}

func TestParseCompactSizeCanonicalBoundary(t *testing.T) {
	// 253 is the smallest value that legitimately needs the 0xfd form.
	b := append([]byte{0xfd}, 0xfd, 0x00)
	cs, rest, err := ParseCompactSize(b)
	if err != nil {
		t.Fatalf("ParseCompactSize failed : %s", err)
	}
	if cs.Value != 253 || cs.Encoded != 3 {
		t.Fatalf("Wrong value : got %+v, want {253 3}", cs)
	}
	if len(rest) != 0 {
		t.Fatalf("Expected no remainder, got %d bytes", len(rest))
	}
}

func TestParseCompactSizeTruncated(t *testing.T) {
	if _, _, err := ParseCompactSize([]byte{0xfe, 0x01, 0x00}); err == nil {
		t.Fatalf("Expected unexpected EOF error")
	}
}

func TestParseOutPoint(t *testing.T) {
	var b []byte
	txid := bytes.Repeat([]byte{0x11}, 32)
	b = append(b, txid...)
	b = append(b, u32le(7)...)
	b = append(b, 0xff) // trailing byte, not part of outpoint

	out, rest, err := ParseOutPoint(b)
	if err != nil {
		t.Fatalf("ParseOutPoint failed : %s", err)
	}
	if out.Vout() != 7 {
		t.Fatalf("Wrong vout : got %d, want 7", out.Vout())
	}
	if !bytes.Equal(out.TxID().Bytes(), txid) {
		t.Fatalf("Wrong txid : got %x, want %x", out.TxID().Bytes(), txid)
	}
	if !bytes.Equal(rest, []byte{0xff}) {
		t.Fatalf("Wrong remainder : got %x", rest)
	}
}

// buildLegacyTx assembles a minimal one-input, one-output legacy transaction.
func buildLegacyTx() []byte {
	var b []byte
	b = append(b, u32le(1)...) // version

	b = append(b, 0x01) // input count
	b = append(b, bytes.Repeat([]byte{0x00}, 32)...)
	b = append(b, u32le(0xffffffff)...) // vout
	b = append(b, 0x00)                 // empty script
	b = append(b, u32le(0xffffffff)...) // sequence

	b = append(b, 0x01)                 // output count
	b = append(b, u64le(5000000000)...) // value
	b = append(b, 0x01, 0x51)           // 1-byte script: OP_TRUE
	b = append(b, u32le(0)...)          // locktime
	return b
}

func TestParseTransactionLegacy(t *testing.T) {
	raw := buildLegacyTx()

	tx, rest, err := ParseTransaction(raw, nil)
	if err != nil {
		t.Fatalf("ParseTransaction failed : %s", err)
	}
	if len(rest) != 0 {
		t.Fatalf("Expected no remainder, got %d bytes", len(rest))
	}
	if tx.IsSegWit() {
		t.Fatalf("Did not expect SegWit")
	}
	if tx.Version() != 1 {
		t.Fatalf("Wrong version : got %d, want 1", tx.Version())
	}
	if len(tx.Inputs()) != 1 || len(tx.Outputs()) != 1 {
		t.Fatalf("Wrong input/output count : got %d/%d, want 1/1", len(tx.Inputs()), len(tx.Outputs()))
	}
	if tx.Outputs()[0].Value() != 5000000000 {
		t.Fatalf("Wrong output value : got %d, want 5000000000", tx.Outputs()[0].Value())
	}
	if tx.WTxID() != tx.TxID() {
		t.Fatalf("Legacy tx must have WTxID == TxID")
	}
	if !bytes.Equal(tx.Bytes(), raw) {
		t.Fatalf("Bytes() did not round-trip the input")
	}
}

// buildSegWitTx assembles a minimal one-input, one-output SegWit transaction
// whose single input carries a two-item witness.
func buildSegWitTx() []byte {
	var b []byte
	b = append(b, u32le(2)...) // version
	b = append(b, 0x00, 0x01)  // marker, flag

	b = append(b, 0x01) // input count
	b = append(b, bytes.Repeat([]byte{0x22}, 32)...)
	b = append(b, u32le(0)...)
	b = append(b, 0x00) // empty script
	b = append(b, u32le(0xffffffff)...)

	b = append(b, 0x01)           // output count
	b = append(b, u64le(1234)...) // value
	b = append(b, 0x01, 0x51)     // 1-byte script

	b = append(b, 0x02)       // witness item count
	b = append(b, 0x01, 0xaa) // item 0
	b = append(b, 0x01, 0xbb) // item 1

	b = append(b, u32le(0)...) // locktime
	return b
}

func TestParseTransactionSegWit(t *testing.T) {
	raw := buildSegWitTx()

	tx, rest, err := ParseTransaction(raw, nil)
	if err != nil {
		t.Fatalf("ParseTransaction failed : %s", err)
	}
	if len(rest) != 0 {
		t.Fatalf("Expected no remainder, got %d bytes", len(rest))
	}
	if !tx.IsSegWit() {
		t.Fatalf("Expected SegWit")
	}

	w := tx.Witness(0)
	if w.Len() != 2 {
		t.Fatalf("Wrong witness item count : got %d, want 2", w.Len())
	}
	if !bytes.Equal(w.Item(0), []byte{0xaa}) || !bytes.Equal(w.Item(1), []byte{0xbb}) {
		t.Fatalf("Wrong witness items : got %x / %x", w.Item(0), w.Item(1))
	}

	if tx.WTxID() == tx.TxID() {
		t.Fatalf("SegWit tx must have WTxID != TxID")
	}

	// The legacy preimage must equal the same transaction serialized
	// without marker/flag/witness, so a from-scratch legacy encode of the
	// same input/output/locktime must hash to the same TxID.
	legacy := buildLegacyTxLike(tx)
	legacyTx, _, err := ParseTransaction(legacy, nil)
	if err != nil {
		t.Fatalf("ParseTransaction(legacy) failed : %s", err)
	}
	if legacyTx.TxID() != tx.TxID() {
		t.Fatalf("TxID mismatch between segwit and equivalent legacy encodings")
	}
}

// buildLegacyTxLike re-encodes tx's input/output/locktime fields without
// the marker/flag/witness sections, to check TxID independence from the
// witness data.
func buildLegacyTxLike(tx Transaction) []byte {
	var b []byte
	b = append(b, u32le(uint32(tx.Version()))...)
	b = append(b, 0x01) // input count
	for _, in := range tx.Inputs() {
		b = append(b, in.OutPoint().Bytes()...)
		b = append(b, 0x00, in.Script()...)
		b = append(b, u32le(in.Sequence())...)
	}
	b = append(b, 0x01) // output count
	for _, out := range tx.Outputs() {
		b = append(b, u64le(out.Value())...)
		b = append(b, byte(len(out.Script())))
		b = append(b, out.Script()...)
	}
	b = append(b, u32le(tx.LockTime())...)
	return b
}

func TestParseTransactionSegWitZeroInputsRejected(t *testing.T) {
	var b []byte
	b = append(b, u32le(2)...)
	b = append(b, 0x00, 0x01) // marker, flag
	b = append(b, 0x00)       // zero inputs - ambiguous, must be rejected
	b = append(b, 0x00)       // zero outputs
	b = append(b, u32le(0)...)

	if _, _, err := ParseTransaction(b, nil); err == nil {
		t.Fatalf("Expected zero-input SegWit transaction to be rejected")
	}
}

func TestVisitorBreakSuppressesSameKindOnly(t *testing.T) {
	raw := buildLegacyTx()

	var outCalls, txCalls int
	v := &Visitor{
		OnTxOut: func(index int, out *TxOut) ControlFlow {
			outCalls++
			return Break
		},
		OnTransaction: func(index int, tx *Transaction) ControlFlow {
			txCalls++
			return Continue
		},
	}

	if _, _, err := ParseTransaction(raw, v); err != nil {
		t.Fatalf("ParseTransaction failed : %s", err)
	}

	if outCalls != 1 {
		t.Fatalf("Wrong OnTxOut call count : got %d, want 1", outCalls)
	}
	if txCalls != 1 {
		t.Fatalf("Breaking OnTxOut must not suppress OnTransaction : got %d calls, want 1", txCalls)
	}
}

// TestParseTransactionRoundTrip checks that parsing a transaction, taking
// its raw bytes back out, and re-parsing those bytes produces a
// structurally identical view - spec §8 invariant 1.
func TestParseTransactionRoundTrip(t *testing.T) {
	deep.CompareUnexportedFields = true
	defer func() { deep.CompareUnexportedFields = false }()

	for _, raw := range [][]byte{buildLegacyTx(), buildSegWitTx()} {
		tx, _, err := ParseTransaction(raw, nil)
		if err != nil {
			t.Fatalf("ParseTransaction failed : %s", err)
		}

		again, _, err := ParseTransaction(tx.Bytes(), nil)
		if err != nil {
			t.Fatalf("re-parse failed : %s", err)
		}

		if diff := deep.Equal(tx, again); diff != nil {
			t.Fatalf("Round trip changed the parsed view : %s\ngot: %s", diff, spew.Sdump(again))
		}
	}
}

func TestOwnedTransactionSurvivesSourceMutation(t *testing.T) {
	raw := buildLegacyTx()

	tx, _, err := ParseTransaction(raw, nil)
	if err != nil {
		t.Fatalf("ParseTransaction failed : %s", err)
	}

	owned, err := NewOwnedTransaction(tx)
	if err != nil {
		t.Fatalf("NewOwnedTransaction failed : %s", err)
	}

	wantTxID := owned.Value().TxID()

	for i := range raw {
		raw[i] = 0xff
	}

	if owned.Value().TxID() != wantTxID {
		t.Fatalf("Owned transaction changed after its source buffer was mutated")
	}
}
