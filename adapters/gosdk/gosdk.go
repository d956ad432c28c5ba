// Package gosdk is a second owned-conversion collaborator (spec §6), independent of btcdwire: it
// re-decodes a borrowed slices.Transaction's raw bytes with bitcoin-sv/go-sdk's own transaction
// package. Having two unrelated third-party decoders agree with the core's own TxID computation is
// a stronger oracle for the round-trip property (spec §8 invariant 1) than either alone.
package gosdk

import (
	"github.com/bitcoin-sv/go-sdk/transaction"
	"github.com/pkg/errors"

	"github.com/chainkit/slices/slices"
)

// ToTransaction re-parses tx's raw bytes with go-sdk's transaction.NewTransactionFromBytes.
func ToTransaction(tx slices.Transaction) (*transaction.Transaction, error) {
	sdkTx, err := transaction.NewTransactionFromBytes(tx.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "go-sdk parse tx")
	}
	return sdkTx, nil
}

// CompareTxID reports whether go-sdk's own txid computation for sdkTx agrees with the zero-copy
// view's TxID, comparing display-order hex strings.
func CompareTxID(tx slices.Transaction, sdkTx *transaction.Transaction) bool {
	return sdkTx.TxID() == tx.TxID().String()
}
