package slices

// view is satisfied by every borrowed view type in this package: each
// exposes the exact byte range it was parsed from.
type view interface {
	Bytes() []byte
}

// Owned holds a single heap-allocated copy of a view's backing bytes
// together with a view re-parsed over that copy. Promotion to Owned is the
// only path that copies input bytes; the parsers themselves do allocate the
// slices that hold child views (inputs, outputs, witness items, block
// transactions). Copying or moving an Owned value keeps its view valid
// because the buffer travels with it.
type Owned[T view] struct {
	buf   []byte
	value T
}

// Value returns the view into the owned buffer.
func (o Owned[T]) Value() T { return o.value }

// Bytes returns the owned buffer.
func (o Owned[T]) Bytes() []byte { return o.buf }

func newOwned[T view](src T, reparse func([]byte) (T, []byte, error)) (Owned[T], error) {
	b := src.Bytes()
	buf := make([]byte, len(b))
	copy(buf, b)

	v, _, err := reparse(buf)
	if err != nil {
		return Owned[T]{}, err
	}
	return Owned[T]{buf: buf, value: v}, nil
}

// NewOwnedTransaction promotes a borrowed Transaction view to an owned one.
func NewOwnedTransaction(tx Transaction) (Owned[Transaction], error) {
	return newOwned(tx, func(b []byte) (Transaction, []byte, error) {
		return ParseTransaction(b, nil)
	})
}

// NewOwnedBlockHeader promotes a borrowed BlockHeader view to an owned one.
func NewOwnedBlockHeader(h BlockHeader) (Owned[BlockHeader], error) {
	return newOwned(h, ParseBlockHeader)
}

// NewOwnedBlock promotes a borrowed Block view to an owned one.
func NewOwnedBlock(blk Block) (Owned[Block], error) {
	return newOwned(blk, func(b []byte) (Block, []byte, error) {
		return ParseBlock(b, nil)
	})
}
