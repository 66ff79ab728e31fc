package store

// BulkResult pairs a requested key with its lookup outcome so callers can
// tell "absent" apart from a decode failure without losing the key.
type BulkResult[K KeyBytes, V any] struct {
	Key   K
	Value V
	Err   error // nil, ErrNotFound, or a decode error
}

// GetMany reads every key in keys through a single transaction, preserving
// request order. Unlike PutMany (below) this never fails the whole batch:
// each key's own error (including ErrNotFound) is reported independently,
// so a caller can tell exactly which keys are missing, not merely that
// some are.
func GetMany[K KeyBytes, V any](s *Store[K, V], txn Readable, keys []K) []BulkResult[K, V] {
	results := make([]BulkResult[K, V], len(keys))
	for i, k := range keys {
		v, err := s.Get(txn, k)
		results[i] = BulkResult[K, V]{Key: k, Value: v, Err: err}
	}
	return results
}

// PutMany writes every (key, value) pair through a single transaction with
// all-or-nothing semantics: the first encode or write failure aborts and
// returns immediately, leaving it to the caller's transaction to decide
// whether partial writes already applied are rolled back. PutMany itself
// performs no rollback; it is a convenience wrapper, not a new guarantee.
func PutMany[K KeyBytes, V any](s *Store[K, V], txn Writable, keys []K, values []V) error {
	if len(keys) != len(values) {
		panic("store: PutMany keys and values length mismatch")
	}
	for i := range keys {
		if err := s.Put(txn, keys[i], values[i]); err != nil {
			return err
		}
	}
	return nil
}
