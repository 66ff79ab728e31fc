// Package candidate provides a uniform, tagged-variant view over the two
// shapes of block a validation request can carry: a block already finalized
// elsewhere (Finalized), or a block freshly proposed for validation
// (Proposed). Both go through the same structural admission.
//
// Grounded on original_source's ValidatingBlock enum
// (node/src/components/block_validator.rs), which plays the same role: a
// Rust enum over Block/ProposedBlock with timestamp()/deploy_hashes()/
// transfer_hashes()/deploys_and_transfers_iter() methods dispatching on the
// variant. Go has no sum types, so the tag is carried as an interface
// implemented by two distinct structs rather than inheritance — the teacher's
// own core/types package favors small concrete structs behind narrow
// interfaces over a class hierarchy.
package candidate

import (
	"time"

	"github.com/eth2030/blockvalidator/types"
)

// Entry pairs a typed transaction hash with the approval set known at
// candidate-construction time, if any. A nil ApprovalSet means none was
// supplied with the block and the fetched transaction's own (derived)
// approvals must be used instead.
type Entry struct {
	Hash      types.TypedHash
	Approvals types.ApprovalSet // nil if not yet known (authoritative set absent)
}

// Candidate is the uniform view the block validator operates against,
// regardless of whether the underlying block is Proposed or Finalized.
type Candidate interface {
	// Timestamp is the block's own declared timestamp, used as the
	// reference point for per-transaction TTL bounds checking.
	Timestamp() time.Time

	// Entries returns every deploy- and transfer-role transaction hash the
	// block references, each paired with its authoritative approval set
	// when the candidate carries one.
	Entries() []Entry

	// Key returns a value usable as a comparable map key identifying this
	// candidate block, for request coalescing. Two Candidates referencing
	// the same underlying block content must produce equal keys.
	Key() Key
}

// Key is the comparable identity of a Candidate, used to coalesce
// concurrent validation requests for the same block. It is derived from
// the RLP encoding of the block's entries plus its timestamp, so that two
// Candidate values built independently from the same wire bytes compare
// equal.
type Key string

// Proposed is a block that has not yet been finalized: a fresh proposal
// whose referenced transactions must be fetched and whose approval sets are
// authoritative if and only if supplied by the proposer.
type Proposed struct {
	BlockTimestamp time.Time
	Items          []Entry
	EncodedKey     Key
}

var _ Candidate = (*Proposed)(nil)

func (p *Proposed) Timestamp() time.Time { return p.BlockTimestamp }
func (p *Proposed) Entries() []Entry     { return p.Items }
func (p *Proposed) Key() Key             { return p.EncodedKey }

// Finalized is a block already agreed upon elsewhere (e.g. received over
// the wire as part of a finalized chain sync) that still must pass through
// structural admission to reconstruct its AppendableBlock view, but whose
// approval sets are never authoritative — each referenced transaction's own
// carried approvals are used instead.
type Finalized struct {
	BlockTimestamp time.Time
	DeployHashes   []types.Hash
	TransferHashes []types.Hash
	EncodedKey     Key
}

var _ Candidate = (*Finalized)(nil)

func (f *Finalized) Timestamp() time.Time { return f.BlockTimestamp }

func (f *Finalized) Entries() []Entry {
	entries := make([]Entry, 0, len(f.DeployHashes)+len(f.TransferHashes))
	for _, h := range f.DeployHashes {
		entries = append(entries, Entry{Hash: types.TypedHash{Role: types.RoleDeploy, Hash: h}})
	}
	for _, h := range f.TransferHashes {
		entries = append(entries, Entry{Hash: types.TypedHash{Role: types.RoleTransfer, Hash: h}})
	}
	return entries
}

func (f *Finalized) Key() Key { return f.EncodedKey }
