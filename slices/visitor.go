package slices

// ControlFlow is the value every visitor hook returns to signal whether its
// kind of hook should keep firing for the rest of the current parse.
type ControlFlow int

const (
	// Continue lets subsequent hooks of the same kind fire normally.
	Continue ControlFlow = iota

	// Break suppresses further hooks of the same kind for the remainder
	// of the parse. Parsing itself always completes structurally: the
	// enclosing object's byte range is not known until the whole object
	// has been scanned, so returning Break cannot and does not abort the
	// scan, only the callbacks.
	Break
)

// Visitor is a capability set of optional observation hooks fired during a
// single parse pass, in deterministic document order: block, then header,
// then the transaction count, then for each transaction by index its inputs,
// outputs and witnesses by index, followed by OnTransaction for that
// transaction once it is fully parsed. Every field defaults to nil, which the parser
// treats as a no-op that never suppresses anything. Compose a Visitor out of
// only the hooks a caller needs rather than implementing an interface with
// every method.
type Visitor struct {
	OnBlockBegin  func(totalBytes int) ControlFlow
	OnBlockHeader func(h *BlockHeader) ControlFlow
	OnTxCount     func(n uint64) ControlFlow
	OnTransaction func(index int, tx *Transaction) ControlFlow
	OnTxIn        func(index int, in *TxIn) ControlFlow
	OnTxOut       func(index int, out *TxOut) ControlFlow
	OnWitness     func(inputIndex int, w *Witness) ControlFlow

	blockBeginBroken  bool
	blockHeaderBroken bool
	txCountBroken     bool
	txBroken          bool
	txInBroken        bool
	txOutBroken       bool
	witnessBroken     bool
}

func (v *Visitor) fireBlockBegin(totalBytes int) {
	if v == nil || v.OnBlockBegin == nil || v.blockBeginBroken {
		return
	}
	if v.OnBlockBegin(totalBytes) == Break {
		v.blockBeginBroken = true
	}
}

func (v *Visitor) fireBlockHeader(h *BlockHeader) {
	if v == nil || v.OnBlockHeader == nil || v.blockHeaderBroken {
		return
	}
	if v.OnBlockHeader(h) == Break {
		v.blockHeaderBroken = true
	}
}

func (v *Visitor) fireTxCount(n uint64) {
	if v == nil || v.OnTxCount == nil || v.txCountBroken {
		return
	}
	if v.OnTxCount(n) == Break {
		v.txCountBroken = true
	}
}

func (v *Visitor) fireTransaction(index int, tx *Transaction) {
	if v == nil || v.OnTransaction == nil || v.txBroken {
		return
	}
	if v.OnTransaction(index, tx) == Break {
		v.txBroken = true
	}
}

func (v *Visitor) fireTxIn(index int, in *TxIn) {
	if v == nil || v.OnTxIn == nil || v.txInBroken {
		return
	}
	if v.OnTxIn(index, in) == Break {
		v.txInBroken = true
	}
}

func (v *Visitor) fireTxOut(index int, out *TxOut) {
	if v == nil || v.OnTxOut == nil || v.txOutBroken {
		return
	}
	if v.OnTxOut(index, out) == Break {
		v.txOutBroken = true
	}
}

func (v *Visitor) fireWitness(inputIndex int, w *Witness) {
	if v == nil || v.OnWitness == nil || v.witnessBroken {
		return
	}
	if v.OnWitness(inputIndex, w) == Break {
		v.witnessBroken = true
	}
}
