// Package btcdwire is an owned-conversion collaborator (spec §6): it converts a borrowed
// slices.Transaction/slices.BlockHeader view into btcsuite/btcd's own fully-decoded wire types by
// re-deserializing the view's raw bytes with that independent implementation. Nothing in the
// slices package imports this package or btcd; the dependency runs one way, from adapter to core.
package btcdwire

import (
	"bytes"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/pkg/errors"

	"github.com/chainkit/slices/slices"
)

// ToMsgTx re-decodes tx's raw bytes with btcd's own wire.MsgTx, giving the round-trip property
// test (spec §8 invariant 1) an external decoder to compare against.
func ToMsgTx(tx slices.Transaction) (*wire.MsgTx, error) {
	msgTx := &wire.MsgTx{}
	if err := msgTx.Deserialize(bytes.NewReader(tx.Bytes())); err != nil {
		return nil, errors.Wrap(err, "btcd deserialize tx")
	}
	return msgTx, nil
}

// ToBlockHeader re-decodes h's raw 80 bytes with btcd's own wire.BlockHeader.
func ToBlockHeader(h slices.BlockHeader) (*wire.BlockHeader, error) {
	hdr := &wire.BlockHeader{}
	if err := hdr.Deserialize(bytes.NewReader(h.Bytes())); err != nil {
		return nil, errors.Wrap(err, "btcd deserialize header")
	}
	return hdr, nil
}

// CompareTxID reports whether btcd's independently computed txid for msgTx agrees with the
// zero-copy view's own TxID. Both are compared in internal byte order.
func CompareTxID(tx slices.Transaction, msgTx *wire.MsgTx) bool {
	var want chainhash.Hash
	copy(want[:], tx.TxID().Bytes())
	return msgTx.TxHash() == want
}

// FormatValue renders a TxOut's satoshi value the way a human-facing dump wants it: btcutil.Amount
// formats as "X.XXXXXXXX BTC" rather than a bare integer. This is display formatting only and does
// not interpret or validate the output's locking script (spec §1/§5 non-goals).
func FormatValue(satoshis uint64) btcutil.Amount {
	return btcutil.Amount(int64(satoshis))
}
