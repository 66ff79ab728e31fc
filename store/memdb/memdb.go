// Package memdb implements an in-memory Readable/Writable backend for the
// store package, suitable for tests and for any deployment that does not
// need the transaction log and batch semantics of a real persistence
// engine (out of scope here; see DESIGN.md).
//
// Grounded on the teacher's rawdb.MemoryKVStore
// (pkg/core/rawdb/key_value_store.go): a mutex-guarded map[string][]byte
// with the same "copy bytes in, copy bytes out" discipline so callers
// cannot mutate stored values through an aliased slice.
package memdb

import (
	"sync"

	"github.com/eth2030/blockvalidator/store"
)

// DB is an in-memory, keyspace-partitioned key-value backend. A single DB
// can back many Store[K,V] instances, each bound to its own store.Handle.
type DB struct {
	mu   sync.RWMutex
	data map[store.Handle]map[string][]byte
}

// New creates an empty DB.
func New() *DB {
	return &DB{data: make(map[store.Handle]map[string][]byte)}
}

// Txn is a transaction over DB. It satisfies both store.Readable and
// store.Writable; there is no isolation beyond DB's own mutex — reads and
// writes take effect immediately, matching the single-actor model the
// block validator runs under (see DESIGN.md).
type Txn struct {
	db *DB
}

var (
	_ store.Readable = (*Txn)(nil)
	_ store.Writable = (*Txn)(nil)
)

// Begin starts a transaction against db.
func (db *DB) Begin() *Txn { return &Txn{db: db} }

// Read implements store.Readable.
func (t *Txn) Read(handle store.Handle, key []byte) ([]byte, error) {
	t.db.mu.RLock()
	defer t.db.mu.RUnlock()
	bucket, ok := t.db.data[handle]
	if !ok {
		return nil, nil
	}
	v, ok := bucket[string(key)]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

// Write implements store.Writable.
func (t *Txn) Write(handle store.Handle, key, value []byte) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	bucket, ok := t.db.data[handle]
	if !ok {
		bucket = make(map[string][]byte)
		t.db.data[handle] = bucket
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	bucket[string(key)] = cp
	return nil
}

// Delete removes key from handle's keyspace, a no-op if absent.
func (t *Txn) Delete(handle store.Handle, key []byte) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	bucket, ok := t.db.data[handle]
	if !ok {
		return nil
	}
	delete(bucket, string(key))
	return nil
}

// Len returns the number of entries stored under handle.
func (db *DB) Len(handle store.Handle) int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.data[handle])
}
