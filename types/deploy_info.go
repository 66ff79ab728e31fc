package types

import (
	"time"

	"github.com/holiman/uint256"
)

// DeployInfo is the structural descriptor extracted from a fetched
// transaction: enough to answer AppendableBlock's admission question
// without holding the full transaction payload.
type DeployInfo struct {
	// SizeBytes is the serialized size of the transaction.
	SizeBytes uint64
	// GasCost is the transaction's declared gas limit.
	GasCost *uint256.Int
	// Payment is the amount the transaction pays (fee budget), informational
	// for callers beyond AppendableBlock but part of the structural
	// descriptor per the data model.
	Payment *uint256.Int
	// Timestamp is the transaction's own header timestamp.
	Timestamp time.Time
	// TTL is the transaction's time-to-live.
	TTL time.Duration
	// Dependencies lists other deploy hashes this transaction depends on.
	Dependencies []Hash
	// ChainName is the chain-name header field.
	ChainName string
	// Approvals are the approvals carried by the fetched transaction
	// itself (the "derived" approval set, used only when no authoritative
	// set was supplied with the candidate block).
	Approvals ApprovalSet
}
