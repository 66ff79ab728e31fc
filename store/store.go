// Package store implements a generic typed get/put layer over a
// transactional key-value handle, with a symmetric encode/decode codec
// boundary and capability-parameterized transactions.
//
// Grounded on original_source's execution_engine Store trait
// (execution_engine/src/storage/store/mod.rs): the same get/put shape
// generic over a key type K and value type V, dispatched through a
// Readable/Writable transaction capability rather than a concrete
// database handle, with the codec boundary (there ToBytes/FromBytes, here
// Codec[V]) kept separate from the transaction mechanics. The teacher's
// core/rawdb.KVStore (pkg/core/rawdb/key_value_store.go) supplies the Go
// idiom for the underlying byte-oriented interface these generics sit on
// top of.
package store

import "errors"

// ErrNotFound is returned by Get when no value exists for the given key.
var ErrNotFound = errors.New("store: key not found")

// Handle identifies which underlying keyspace (table, column family,
// bucket) a Store reads and writes within a shared transactional backend.
type Handle string

// Readable is the capability a transaction must provide to back a Get.
// Parameterizing on Handle, rather than requiring a concrete database
// transaction type, lets the same Store[K,V] run against any backend that
// can satisfy this narrow read capability.
type Readable interface {
	Read(handle Handle, key []byte) ([]byte, error)
}

// Writable is the capability a transaction must provide to back a Put.
type Writable interface {
	Write(handle Handle, key, value []byte) error
}

// ReadWriter satisfies both Readable and Writable, the capability StoreExt
// bulk operations require.
type ReadWriter interface {
	Readable
	Writable
}

// Codec converts between a Store's value type and its on-disk bytes. The
// codec boundary is kept separate from the transaction mechanics so the
// same Store can serve RLP-encoded, JSON-encoded, or raw-bytes values
// without changing how transactions are acquired or committed.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// KeyBytes converts a key into its canonical byte representation for
// storage. Most key types are fixed-width and can implement this trivially.
type KeyBytes interface {
	Bytes() []byte
}

// Store provides typed Get/Put over a single keyspace within an
// underlying transactional handle.
type Store[K KeyBytes, V any] struct {
	handle Handle
	codec  Codec[V]
}

// New constructs a Store bound to the given keyspace handle and value
// codec.
func New[K KeyBytes, V any](handle Handle, codec Codec[V]) *Store[K, V] {
	return &Store[K, V]{handle: handle, codec: codec}
}

// Handle returns the underlying keyspace this Store reads and writes.
func (s *Store[K, V]) Handle() Handle { return s.handle }

// Get reads and decodes the value for key through txn, a capability
// satisfying Readable. It returns ErrNotFound if no value is stored at
// key, distinguishing "found but fails to decode" from "absent".
func (s *Store[K, V]) Get(txn Readable, key K) (V, error) {
	var zero V
	raw, err := txn.Read(s.handle, key.Bytes())
	if err != nil {
		return zero, err
	}
	if raw == nil {
		return zero, ErrNotFound
	}
	return s.codec.Decode(raw)
}

// Put encodes and writes value at key through txn, a capability
// satisfying Writable.
func (s *Store[K, V]) Put(txn Writable, key K, value V) error {
	raw, err := s.codec.Encode(value)
	if err != nil {
		return err
	}
	return txn.Write(s.handle, key.Bytes(), raw)
}

// GetRaw reads the undecoded bytes stored at key through txn, bypassing the
// codec. Callers that only need to move or inspect bytes (a replication
// pump, a size check) can use this to avoid paying for a decode/re-encode
// round trip. Returns ErrNotFound if no value is stored at key.
func (s *Store[K, V]) GetRaw(txn Readable, key K) ([]byte, error) {
	raw, err := txn.Read(s.handle, key.Bytes())
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ErrNotFound
	}
	return raw, nil
}

// PutRaw writes value verbatim at key through txn, bypassing the codec. The
// caller is responsible for value already being in the Store's on-disk
// encoding; PutRaw does not validate it decodes cleanly.
func (s *Store[K, V]) PutRaw(txn Writable, key K, value []byte) error {
	return txn.Write(s.handle, key.Bytes(), value)
}
