package candidate

import (
	"math/big"
	"testing"
	"time"

	"github.com/eth2030/blockvalidator/types"
)

func approval() types.Approval {
	return types.Approval{
		Signer: types.Address{0x01},
		V:      big.NewInt(27),
		R:      big.NewInt(1),
		S:      big.NewInt(2),
	}
}

func TestProposed_EntriesAndTimestamp(t *testing.T) {
	ts := time.Unix(500, 0)
	h := types.BytesToHash([]byte{0x01})
	entries := []Entry{
		{Hash: types.TypedHash{Role: types.RoleDeploy, Hash: h}, Approvals: types.ApprovalSet{approval()}},
	}
	p := &Proposed{BlockTimestamp: ts, Items: entries, EncodedKey: NewKey(ts.UnixNano(), entries)}

	if !p.Timestamp().Equal(ts) {
		t.Fatalf("timestamp mismatch")
	}
	if len(p.Entries()) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(p.Entries()))
	}
}

func TestFinalized_EntriesSplitByRole(t *testing.T) {
	ts := time.Unix(500, 0)
	f := &Finalized{
		BlockTimestamp: ts,
		DeployHashes:   []types.Hash{types.BytesToHash([]byte{0x01}), types.BytesToHash([]byte{0x02})},
		TransferHashes: []types.Hash{types.BytesToHash([]byte{0x03})},
	}
	entries := f.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Hash.Role != types.RoleDeploy || entries[2].Hash.Role != types.RoleTransfer {
		t.Fatalf("role assignment wrong: %+v", entries)
	}
	// Finalized blocks never carry an authoritative approval set; the
	// fetched transaction's own approvals are used instead.
	for _, e := range entries {
		if e.Approvals != nil {
			t.Fatalf("finalized entry should have nil approvals, got %v", e.Approvals)
		}
	}
}

func TestNewKey_Deterministic(t *testing.T) {
	ts := int64(1000)
	h := types.BytesToHash([]byte{0xaa})
	entries := []Entry{{Hash: types.TypedHash{Role: types.RoleDeploy, Hash: h}}}

	k1 := NewKey(ts, entries)
	k2 := NewKey(ts, entries)
	if k1 != k2 {
		t.Fatalf("NewKey not deterministic: %x != %x", k1, k2)
	}

	other := NewKey(ts, []Entry{{Hash: types.TypedHash{Role: types.RoleTransfer, Hash: h}}})
	if k1 == other {
		t.Fatalf("keys for different roles must differ")
	}
}

func TestCandidate_KeyCoalescesIdenticalProposals(t *testing.T) {
	ts := time.Unix(1000, 0)
	h := types.BytesToHash([]byte{0x7})
	entries := []Entry{{Hash: types.TypedHash{Role: types.RoleDeploy, Hash: h}}}

	a := &Proposed{BlockTimestamp: ts, Items: entries, EncodedKey: NewKey(ts.UnixNano(), entries)}
	b := &Proposed{BlockTimestamp: ts, Items: entries, EncodedKey: NewKey(ts.UnixNano(), entries)}

	if a.Key() != b.Key() {
		t.Fatalf("independently constructed identical candidates must share a key")
	}
}
