package slices

// Block is a zero-copy view of a full block: a fixed header followed by a
// CompactSize transaction count and that many transactions.
type Block struct {
	raw          []byte
	header       BlockHeader
	transactions []Transaction
}

// ParseBlock parses a full block from the front of b. Hooks on v fire in
// document order: OnBlockBegin, OnBlockHeader, OnTxCount, then for each
// transaction its OnTxIn/OnTxOut/OnWitness hooks followed by OnTransaction,
// per spec §4.7.
func ParseBlock(b []byte, v *Visitor) (Block, []byte, error) {
	start := len(b)
	v.fireBlockBegin(start)

	header, rest, err := ParseBlockHeader(b)
	if err != nil {
		return Block{}, nil, err
	}
	v.fireBlockHeader(&header)

	count, rest, err := ParseCompactSize(rest)
	if err != nil {
		return Block{}, nil, err
	}
	v.fireTxCount(count.Value)

	n := count.Value
	transactions := make([]Transaction, 0, clampPrealloc(n))
	for i := uint64(0); i < n; i++ {
		tx, next, err := parseTransactionIndexed(rest, v, int(i), true)
		if err != nil {
			return Block{}, nil, err
		}
		transactions = append(transactions, tx)
		rest = next
	}

	consumed := start - len(rest)
	blk := Block{
		raw:          b[:consumed:consumed],
		header:       header,
		transactions: transactions,
	}
	return blk, rest, nil
}

// Header returns the block's header view.
func (blk Block) Header() BlockHeader { return blk.header }

// Transactions returns the block's transactions in index order.
func (blk Block) Transactions() []Transaction { return blk.transactions }

// Bytes returns the full serialization this block was parsed from.
func (blk Block) Bytes() []byte { return blk.raw }
