package candidate

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/eth2030/blockvalidator/types"
)

// rlpEntry mirrors Entry in a form rlp can encode: Approvals may be nil in
// Entry (unknown), which rlp.Encode cannot represent directly, so absence is
// signaled by an empty slice plus a separate boolean flag.
type rlpEntry struct {
	Role      uint8
	Hash      types.Hash
	HasApprov bool
	Approvals types.ApprovalSet
}

// NewKey derives a Key from a block timestamp (as unix nanoseconds) and its
// entries, RLP-encoding them into a single canonical byte string. Two
// candidate blocks built independently from identical wire content produce
// byte-identical keys, satisfying the request-coalescing requirement that
// concurrent validations of "the same" block share one in-flight fetch.
func NewKey(timestampUnixNano int64, entries []Entry) Key {
	encoded := make([]rlpEntry, len(entries))
	for i, e := range entries {
		encoded[i] = rlpEntry{
			Role:      uint8(e.Hash.Role),
			Hash:      e.Hash.Hash,
			HasApprov: e.Approvals != nil,
			Approvals: e.Approvals,
		}
	}
	// rlp has no encoding for signed integers, so the timestamp is carried
	// as the uint64 bit pattern of the int64 value.
	payload := struct {
		Timestamp uint64
		Entries   []rlpEntry
	}{Timestamp: uint64(timestampUnixNano), Entries: encoded}

	b, err := rlp.EncodeToBytes(payload)
	if err != nil {
		// Entry fields are all fixed-shape RLP-encodable types; encoding can
		// only fail here on programmer error (e.g. a negative *big.Int inside
		// an Approval), which NewKey callers must not produce.
		panic("candidate: rlp encode of key payload failed: " + err.Error())
	}
	return Key(b)
}
