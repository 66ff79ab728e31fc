package blockvalidator

import (
	"github.com/eth2030/blockvalidator/candidate"
	"github.com/eth2030/blockvalidator/fetcher"
	"github.com/eth2030/blockvalidator/types"
)

// event is the block validator's internal event alphabet. Grounded on
// original_source's Event<I> enum (block_validator.rs): a request made of
// the component, a successful fetch, a timed-out fetch, and an
// unconvertible response. The run loop consuming these is the component's
// only goroutine; everything else (network fetches) happens concurrently
// and reports back as one of these four event shapes.
type event interface{ isEvent() }

type requestEvent struct {
	candidate  candidate.Candidate
	sender     fetcher.PeerID
	responseCh chan<- bool
}

func (requestEvent) isEvent() {}

type deployFoundEvent struct {
	hash             types.TypedHash
	approvalsFromNet types.ApprovalSet
	info             types.DeployInfo
}

func (deployFoundEvent) isEvent() {}

type deployMissingEvent struct {
	hash types.TypedHash
}

func (deployMissingEvent) isEvent() {}

type cannotConvertEvent struct {
	hash types.TypedHash
}

func (cannotConvertEvent) isEvent() {}
