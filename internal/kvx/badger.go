// Package kvx holds helpers for the Badger-backed document repositories:
// opening the store, JSON documents under prefixed keys, and transaction
// retries.
package kvx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/filex"
)

// Open opens a Badger store in dir, or an in-memory store when dir is empty.
func Open(dir string) (*badger.DB, error) {
	if dir != "" {
		abs, err := filex.EnsureDataDir(dir)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
		}
		dir = abs
	}

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: open badger: %w", common.ErrStoreUnavailable, err)
	}
	return db, nil
}

// Update runs fn in a read-write transaction, retrying once when the commit
// loses a conflict with a concurrent writer.
func Update(db *badger.DB, fn func(txn *badger.Txn) error) error {
	err := db.Update(fn)
	if errors.Is(err, badger.ErrConflict) {
		err = db.Update(fn)
	}
	return Wrap(err)
}

// View runs fn in a read-only transaction.
func View(db *badger.DB, fn func(txn *badger.Txn) error) error {
	return Wrap(db.View(fn))
}

// Wrap marks errors that mean the store itself is unusable, or did not
// answer before the deadline, with common.ErrStoreUnavailable. Other errors
// pass through unchanged.
func Wrap(err error) error {
	if errors.Is(err, badger.ErrDBClosed) || errors.Is(err, badger.ErrBlockedWrites) ||
		errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
	}
	return err
}

// GetJSON decodes the document at key into v. A missing key yields
// common.ErrNotFound.
func GetJSON(txn *badger.Txn, key []byte, v any) error {
	item, err := txn.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return common.ErrNotFound
		}
		return err
	}
	return item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, v); err != nil {
			return fmt.Errorf("unmarshal %s: %w", key, err)
		}
		return nil
	})
}

// SetJSON encodes v and stores it at key.
func SetJSON(txn *badger.Txn, key []byte, v any) error {
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return txn.Set(key, encoded)
}

// Exists reports whether key is present.
func Exists(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return false, nil
	default:
		return false, err
	}
}

// KeysWithPrefix returns copies of every key starting with prefix, in key
// order, without fetching values.
func KeysWithPrefix(txn *badger.Txn, prefix []byte) [][]byte {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	var keys [][]byte
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	return keys
}
