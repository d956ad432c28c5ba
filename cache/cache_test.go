package cache

import (
	"encoding/binary"
	"testing"

	"github.com/chainkit/slices/slices"
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

// buildTx assembles a minimal legacy transaction whose locktime makes it
// distinct from any other buildTx(n) value, so each call produces a
// different txid.
func buildTx(t *testing.T, lockTime uint32) slices.Owned[slices.Transaction] {
	t.Helper()

	var b []byte
	b = append(b, u32le(1)...)
	b = append(b, 0x01) // input count
	b = append(b, make([]byte, 32)...)
	b = append(b, u32le(0xffffffff)...)
	b = append(b, 0x00)
	b = append(b, u32le(0xffffffff)...)
	b = append(b, 0x01) // output count
	b = append(b, u64le(1)...)
	b = append(b, 0x00)
	b = append(b, u32le(lockTime)...)

	tx, _, err := slices.ParseTransaction(b, nil)
	if err != nil {
		t.Fatalf("ParseTransaction failed : %s", err)
	}

	owned, err := slices.NewOwnedTransaction(tx)
	if err != nil {
		t.Fatalf("NewOwnedTransaction failed : %s", err)
	}
	return owned
}

func TestTxCacheGetPutMiss(t *testing.T) {
	c := NewTxCache(2)
	owned := buildTx(t, 1)

	if _, ok := c.Get(owned.Value().TxID()); ok {
		t.Fatalf("Expected miss on empty cache")
	}

	c.Put(owned)

	got, ok := c.Get(owned.Value().TxID())
	if !ok {
		t.Fatalf("Expected hit after Put")
	}
	if got.Value().TxID() != owned.Value().TxID() {
		t.Fatalf("Wrong entry returned")
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Size != 1 {
		t.Fatalf("Wrong stats : got %+v", stats)
	}
}

func TestTxCacheEvictsOldestOnCapacity(t *testing.T) {
	c := NewTxCache(2)

	first := buildTx(t, 1)
	second := buildTx(t, 2)
	third := buildTx(t, 3)

	c.Put(first)
	c.Put(second)
	c.Put(third) // evicts first

	if _, ok := c.Get(first.Value().TxID()); ok {
		t.Fatalf("Expected oldest entry to be evicted")
	}
	if _, ok := c.Get(second.Value().TxID()); !ok {
		t.Fatalf("Expected second entry to remain")
	}
	if _, ok := c.Get(third.Value().TxID()); !ok {
		t.Fatalf("Expected third entry to remain")
	}
	if c.Len() != 2 {
		t.Fatalf("Wrong cache size : got %d, want 2", c.Len())
	}

	stats := c.Stats()
	if stats.Evictions != 1 {
		t.Fatalf("Wrong eviction count : got %d, want 1", stats.Evictions)
	}
}

func TestTxCacheReinsertDoesNotChangeEvictionOrder(t *testing.T) {
	c := NewTxCache(2)

	first := buildTx(t, 1)
	second := buildTx(t, 2)
	third := buildTx(t, 3)

	c.Put(first)
	c.Put(second)
	c.Put(first) // re-insert, should not move to back
	c.Put(third) // must still evict first, not second

	if _, ok := c.Get(first.Value().TxID()); ok {
		t.Fatalf("Expected first entry to still be evicted despite re-insertion")
	}
	if _, ok := c.Get(second.Value().TxID()); !ok {
		t.Fatalf("Expected second entry to survive")
	}
}
