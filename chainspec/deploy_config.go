// Package chainspec holds the immutable chain configuration consumed by
// AppendableBlock. The chainspec loader itself (reading this from disk or
// genesis) is an external collaborator, out of scope per spec.md §1; this
// package only defines the shape of the constants and sane defaults.
package chainspec

import (
	"time"

	"github.com/holiman/uint256"
)

// DeployConfig enumerates the structural limits that govern whether a set
// of transactions can be appended to a block.
type DeployConfig struct {
	// MaxBlockSizeBytes caps the aggregate serialized size of all admitted
	// transactions.
	MaxBlockSizeBytes uint64
	// MaxDeployCount caps the number of deploy-role transactions.
	MaxDeployCount int
	// MaxTransferCount caps the number of transfer-role transactions.
	MaxTransferCount int
	// MaxGasLimit caps the aggregate gas cost of all admitted transactions.
	MaxGasLimit *uint256.Int
	// MaxApprovalsPerBlock caps the total number of approvals across all
	// admitted transactions.
	MaxApprovalsPerBlock int
	// MaxTTL is the maximum time-to-live a single transaction may declare.
	MaxTTL time.Duration
	// MinTTL is the minimum time-to-live a single transaction may declare.
	MinTTL time.Duration
	// MaxDependencies caps the number of dependency hashes a single
	// transaction may declare.
	MaxDependencies int
	// ChainName is the expected chain-name header field; transactions
	// declaring any other chain name are rejected.
	ChainName string
}

// DefaultDeployConfig returns conservative production-sized limits,
// matching the scenario constants used throughout the block validator's
// test suite (§8 of the spec): 1MB blocks, 2 deploys, 2 transfers, gas cap
// 10, 10 approvals, TTL between 1 minute and 1 hour.
func DefaultDeployConfig() DeployConfig {
	return DeployConfig{
		MaxBlockSizeBytes:    1 << 20,
		MaxDeployCount:       2,
		MaxTransferCount:     2,
		MaxGasLimit:          uint256.NewInt(10),
		MaxApprovalsPerBlock: 10,
		MaxTTL:               time.Hour,
		MinTTL:               time.Minute,
		MaxDependencies:      10,
		ChainName:            "",
	}
}

// Chainspec is the immutable, shared-read-only configuration reference the
// BlockValidator is constructed with. A missing required field is a
// programmer error; there is no fallible construction path here (the
// chainspec is a required constructor argument elsewhere, so no
// construction can itself fail — see spec.md §7).
type Chainspec struct {
	DeployConfig DeployConfig
}

// New constructs a Chainspec from an already-validated DeployConfig.
func New(cfg DeployConfig) *Chainspec {
	return &Chainspec{DeployConfig: cfg}
}
