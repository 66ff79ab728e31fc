package store_test

import (
	"errors"
	"testing"

	"github.com/eth2030/blockvalidator/store"
	"github.com/eth2030/blockvalidator/store/memdb"
	"github.com/eth2030/blockvalidator/types"
)

type record struct {
	SizeBytes uint64
	ChainName string
}

func TestStore_PutThenGet(t *testing.T) {
	db := memdb.New()
	txn := db.Begin()
	s := store.New[types.Hash, record]("deploy_info", store.RLPCodec[record]{})

	key := types.BytesToHash([]byte{0x01})
	want := record{SizeBytes: 42, ChainName: "testnet"}

	if err := s.Put(txn, key, want); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get(txn, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestStore_GetMissingReturnsErrNotFound(t *testing.T) {
	db := memdb.New()
	txn := db.Begin()
	s := store.New[types.Hash, record]("deploy_info", store.RLPCodec[record]{})

	_, err := s.Get(txn, types.BytesToHash([]byte{0x99}))
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_KeyspacesAreIsolated(t *testing.T) {
	db := memdb.New()
	txn := db.Begin()
	a := store.New[types.Hash, record]("a", store.RLPCodec[record]{})
	b := store.New[types.Hash, record]("b", store.RLPCodec[record]{})

	key := types.BytesToHash([]byte{0x01})
	if err := a.Put(txn, key, record{SizeBytes: 1}); err != nil {
		t.Fatalf("Put a: %v", err)
	}
	if _, err := b.Get(txn, key); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected keyspace b to be empty, got %v", err)
	}
}

func TestStoreExt_GetManyPreservesOrderAndIndependentErrors(t *testing.T) {
	db := memdb.New()
	txn := db.Begin()
	s := store.New[types.Hash, record]("deploy_info", store.RLPCodec[record]{})

	present := types.BytesToHash([]byte{0x01})
	absent := types.BytesToHash([]byte{0x02})
	if err := s.Put(txn, present, record{SizeBytes: 7}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	results := store.GetMany(s, txn, []types.Hash{present, absent})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Err != nil || results[0].Value.SizeBytes != 7 {
		t.Fatalf("unexpected result[0]: %+v", results[0])
	}
	if !errors.Is(results[1].Err, store.ErrNotFound) {
		t.Fatalf("expected result[1] ErrNotFound, got %v", results[1].Err)
	}
}

func TestStore_GetRawPutRawBypassCodec(t *testing.T) {
	db := memdb.New()
	txn := db.Begin()
	s := store.New[types.Hash, record]("deploy_info", store.RLPCodec[record]{})

	key := types.BytesToHash([]byte{0x01})
	want := record{SizeBytes: 42, ChainName: "testnet"}
	if err := s.Put(txn, key, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	raw, err := s.GetRaw(txn, key)
	if err != nil {
		t.Fatalf("GetRaw: %v", err)
	}

	other := types.BytesToHash([]byte{0x02})
	if err := s.PutRaw(txn, other, raw); err != nil {
		t.Fatalf("PutRaw: %v", err)
	}
	got, err := s.Get(txn, other)
	if err != nil {
		t.Fatalf("Get after PutRaw: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestStore_GetRawMissingReturnsErrNotFound(t *testing.T) {
	db := memdb.New()
	txn := db.Begin()
	s := store.New[types.Hash, record]("deploy_info", store.RLPCodec[record]{})

	if _, err := s.GetRaw(txn, types.BytesToHash([]byte{0x99})); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreExt_PutManyAllOrNothingLengthMismatch(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on mismatched keys/values length")
		}
	}()
	db := memdb.New()
	txn := db.Begin()
	s := store.New[types.Hash, record]("deploy_info", store.RLPCodec[record]{})
	_ = store.PutMany(s, txn, []types.Hash{types.BytesToHash([]byte{0x01})}, nil)
}
