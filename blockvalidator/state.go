package blockvalidator

import (
	"github.com/eth2030/blockvalidator/appendable"
	"github.com/eth2030/blockvalidator/types"
)

// validationState tracks the progress of validating one candidate block:
// which transactions are still outstanding, the structural accumulator
// they're being admitted into, and who is waiting on the final verdict.
//
// Grounded on original_source's BlockValidationState. The original's
// missing_deploys maps a transaction hash to Option<approvals>: Some means
// the block itself supplied an authoritative approval set (a proposed
// block), None means the fetched transaction's own approvals should be
// used (a finalized block). Go has no Option<T>, so authoritativeApprovals
// being nil carries the same "use the derived set instead" meaning — an
// authoritative-but-empty set is represented as a non-nil, zero-length
// ApprovalSet, which is why callers must not collapse the two.
type validationState struct {
	appendableBlock *appendable.AppendableBlock
	missing         map[types.TypedHash]types.ApprovalSet
	authoritative   map[types.TypedHash]bool
	responders      []chan<- bool
}

func newValidationState(ab *appendable.AppendableBlock, entries []entryApprovals) *validationState {
	missing := make(map[types.TypedHash]types.ApprovalSet, len(entries))
	authoritative := make(map[types.TypedHash]bool, len(entries))
	for _, e := range entries {
		missing[e.hash] = e.approvals
		authoritative[e.hash] = e.hasApprovals
	}
	return &validationState{
		appendableBlock: ab,
		missing:         missing,
		authoritative:   authoritative,
	}
}

// respond notifies every responder waiting on this validation state and
// clears the list; it must only be called once a state is being retired.
func (vs *validationState) respond(value bool) {
	for _, ch := range vs.responders {
		ch <- value
		close(ch)
	}
	vs.responders = nil
}

// entryApprovals is the candidate.Entry shape reduced to what
// newValidationState needs: a typed hash plus whether an authoritative
// approval set was supplied with it.
type entryApprovals struct {
	hash         types.TypedHash
	approvals    types.ApprovalSet
	hasApprovals bool
}
