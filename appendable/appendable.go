// Package appendable implements AppendableBlock, a pure structural
// accumulator for a proposed set of transactions, constrained by a
// chainspec deploy-config and a fixed block timestamp.
//
// Grounded on the teacher's focil.InclusionListValidator.ValidateList
// (pkg/focil/list_validator.go), which performs the same shape of
// incremental admission — duplicate check, per-item cap, aggregate-total
// cap — against a fork-choice inclusion list.
package appendable

import (
	"errors"
	"fmt"
	"time"

	"github.com/holiman/uint256"

	"github.com/eth2030/blockvalidator/chainspec"
	"github.com/eth2030/blockvalidator/types"
)

// Rejection reasons. Callers distinguish category with errors.Is; the
// wrapped detail (via %w) carries the offending value for logging.
var (
	ErrDuplicateHash        = errors.New("appendable: duplicate hash within block")
	ErrCountExceeded        = errors.New("appendable: per-role count exceeded")
	ErrSizeExceeded         = errors.New("appendable: aggregate size exceeded")
	ErrGasExceeded          = errors.New("appendable: aggregate gas exceeded")
	ErrApprovalsExceeded    = errors.New("appendable: total approvals exceeded")
	ErrTTLOutOfBounds       = errors.New("appendable: ttl out of bounds")
	ErrTimestampOutOfRange  = errors.New("appendable: timestamp out of range")
	ErrDependenciesExceeded = errors.New("appendable: dependency count exceeded")
	ErrChainMismatch        = errors.New("appendable: chain name mismatch")
)

// DeployWithApprovals pairs an admitted transaction hash with the
// approval set it was admitted with.
type DeployWithApprovals struct {
	Hash      types.Hash
	Approvals types.ApprovalSet
}

// AppendableBlock accumulates deploys and transfers under chainspec caps.
// It carries no global mutable state and performs no I/O; once an add_*
// call rejects, the block's state is not rewindable (fail-fast, per
// spec.md §4.5 "Key design choices").
type AppendableBlock struct {
	config    chainspec.DeployConfig
	timestamp time.Time

	seen      map[types.Hash]struct{}
	deploys   []DeployWithApprovals
	transfers []DeployWithApprovals

	totalSize      uint64
	totalGas       *uint256.Int
	totalApprovals int
}

// New creates an AppendableBlock seeded from the given chainspec
// deploy-config and the candidate's own timestamp.
func New(config chainspec.DeployConfig, timestamp time.Time) *AppendableBlock {
	return &AppendableBlock{
		config:    config,
		timestamp: timestamp,
		seen:      make(map[types.Hash]struct{}),
		totalGas:  uint256.NewInt(0),
	}
}

// Deploys returns the transactions admitted to the deploy role, in
// admission order.
func (ab *AppendableBlock) Deploys() []DeployWithApprovals { return ab.deploys }

// Transfers returns the transactions admitted to the transfer role, in
// admission order.
func (ab *AppendableBlock) Transfers() []DeployWithApprovals { return ab.transfers }

// AddDeploy attempts to admit hash into the deploy role.
func (ab *AppendableBlock) AddDeploy(hash types.Hash, approvals types.ApprovalSet, info types.DeployInfo) error {
	if err := ab.check(len(ab.deploys), ab.config.MaxDeployCount, hash, approvals, info); err != nil {
		return err
	}
	ab.commit(hash, approvals, info)
	ab.deploys = append(ab.deploys, DeployWithApprovals{Hash: hash, Approvals: approvals})
	return nil
}

// AddTransfer attempts to admit hash into the transfer role.
func (ab *AppendableBlock) AddTransfer(hash types.Hash, approvals types.ApprovalSet, info types.DeployInfo) error {
	if err := ab.check(len(ab.transfers), ab.config.MaxTransferCount, hash, approvals, info); err != nil {
		return err
	}
	ab.commit(hash, approvals, info)
	ab.transfers = append(ab.transfers, DeployWithApprovals{Hash: hash, Approvals: approvals})
	return nil
}

// check runs the admission rules in the fixed, deterministic order spec.md
// §4.3 requires so tests can assert a specific rejection.
func (ab *AppendableBlock) check(roleCount, roleMax int, hash types.Hash, approvals types.ApprovalSet, info types.DeployInfo) error {
	if _, dup := ab.seen[hash]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateHash, hash.Hex())
	}
	if roleCount >= roleMax {
		return fmt.Errorf("%w: got %d, max %d", ErrCountExceeded, roleCount+1, roleMax)
	}
	if ab.totalSize+info.SizeBytes > ab.config.MaxBlockSizeBytes {
		return fmt.Errorf("%w: got %d, max %d", ErrSizeExceeded, ab.totalSize+info.SizeBytes, ab.config.MaxBlockSizeBytes)
	}
	gas := info.GasCost
	if gas == nil {
		gas = uint256.NewInt(0)
	}
	if new(uint256.Int).Add(ab.totalGas, gas).Cmp(ab.config.MaxGasLimit) > 0 {
		return fmt.Errorf("%w: tx gas %s pushes total over max %s", ErrGasExceeded, gas, ab.config.MaxGasLimit)
	}
	if ab.totalApprovals+len(approvals) > ab.config.MaxApprovalsPerBlock {
		return fmt.Errorf("%w: got %d, max %d", ErrApprovalsExceeded, ab.totalApprovals+len(approvals), ab.config.MaxApprovalsPerBlock)
	}
	if info.TTL < ab.config.MinTTL || info.TTL > ab.config.MaxTTL {
		return fmt.Errorf("%w: ttl %s, bounds [%s, %s]", ErrTTLOutOfBounds, info.TTL, ab.config.MinTTL, ab.config.MaxTTL)
	}
	earliest := ab.timestamp.Add(-info.TTL)
	if info.Timestamp.Before(earliest) || info.Timestamp.After(ab.timestamp) {
		return fmt.Errorf("%w: tx timestamp %s, block window [%s, %s]", ErrTimestampOutOfRange, info.Timestamp, earliest, ab.timestamp)
	}
	if len(info.Dependencies) > ab.config.MaxDependencies {
		return fmt.Errorf("%w: got %d, max %d", ErrDependenciesExceeded, len(info.Dependencies), ab.config.MaxDependencies)
	}
	if ab.config.ChainName != "" && info.ChainName != ab.config.ChainName {
		return fmt.Errorf("%w: got %q, want %q", ErrChainMismatch, info.ChainName, ab.config.ChainName)
	}
	return nil
}

func (ab *AppendableBlock) commit(hash types.Hash, approvals types.ApprovalSet, info types.DeployInfo) {
	ab.seen[hash] = struct{}{}
	ab.totalSize += info.SizeBytes
	if info.GasCost != nil {
		ab.totalGas.Add(ab.totalGas, info.GasCost)
	}
	ab.totalApprovals += len(approvals)
}
