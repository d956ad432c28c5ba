// Package redisstore implements the optional database key/value collaborator of spec §6 on top of
// Redis, the way tokenized-pkg/storage's RedisStorage wraps a redigo connection for its own
// key/value backend.
package redisstore

import (
	"context"
	"fmt"

	"github.com/gomodule/redigo/redis"
	"github.com/pkg/errors"

	"github.com/chainkit/slices/bitcoin"
	"github.com/chainkit/slices/slices"
)

// ErrNotFound is returned by Get when no value exists for a key.
var ErrNotFound = errors.New("not found")

// ErrUnknownPayload is returned if Redis returns a payload in a shape this store doesn't expect.
var ErrUnknownPayload = errors.New("unknown payload")

const keyPrefix = "tx:"

// Store persists Owned[Transaction] values in Redis, keyed by txid. Encoding is the view's own raw
// bytes (spec §6: "Encoding is the view's own underlying slice; decoding calls the parser.").
type Store struct {
	Conn redis.Conn
}

// New wraps an existing redigo connection.
func New(conn redis.Conn) *Store {
	return &Store{Conn: conn}
}

func redisKey(txid bitcoin.Hash32) string {
	return fmt.Sprintf("%s%x", keyPrefix, txid.Bytes())
}

// Get fetches a transaction by txid, re-parsing the stored bytes with slices.ParseTransaction.
func (s *Store) Get(ctx context.Context, txid bitcoin.Hash32) (slices.Owned[slices.Transaction], error) {
	resp, err := s.Conn.Do("GET", redisKey(txid))
	if err != nil {
		return slices.Owned[slices.Transaction]{}, errors.Wrap(err, "redis get")
	}
	if resp == nil {
		return slices.Owned[slices.Transaction]{}, ErrNotFound
	}

	b, ok := resp.([]byte)
	if !ok {
		return slices.Owned[slices.Transaction]{}, ErrUnknownPayload
	}

	tx, _, err := slices.ParseTransaction(b, nil)
	if err != nil {
		return slices.Owned[slices.Transaction]{}, errors.Wrap(err, "parse")
	}

	owned, err := slices.NewOwnedTransaction(tx)
	if err != nil {
		return slices.Owned[slices.Transaction]{}, errors.Wrap(err, "promote")
	}

	return owned, nil
}

// Put stores owned's raw bytes under its own txid.
func (s *Store) Put(ctx context.Context, owned slices.Owned[slices.Transaction]) error {
	txid := owned.Value().TxID()

	if _, err := s.Conn.Do("SET", redisKey(txid), owned.Bytes()); err != nil {
		return errors.Wrap(err, "redis set")
	}

	return s.Conn.Flush()
}

// Remove deletes the entry for txid, if any.
func (s *Store) Remove(ctx context.Context, txid bitcoin.Hash32) error {
	if _, err := s.Conn.Do("DEL", redisKey(txid)); err != nil {
		return errors.Wrap(err, "redis del")
	}

	return s.Conn.Flush()
}
