// Package types defines the data model shared by the block validator:
// typed transaction hashes, approval sets, and the structural descriptor
// extracted from a fetched transaction.
package types

import "fmt"

// HashLength is the width of a transaction hash in bytes.
const HashLength = 32

// AddressLength is the width of a signer address in bytes.
const AddressLength = 20

// Hash is an opaque fixed-width transaction identifier.
type Hash [HashLength]byte

// BytesToHash converts b to a Hash, left-padding if shorter than HashLength
// and truncating from the left if longer.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// SetBytes sets h from b, left-padding if necessary.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// Bytes returns the byte representation of the hash.
func (h Hash) Bytes() []byte { return h[:] }

// IsZero reports whether the hash is all zeros.
func (h Hash) IsZero() bool { return h == Hash{} }

// Hex returns the 0x-prefixed hex representation of the hash.
func (h Hash) Hex() string { return fmt.Sprintf("0x%x", h[:]) }

// String implements fmt.Stringer.
func (h Hash) String() string { return h.Hex() }

// Address is a 20-byte account identifier, used as the signer of an Approval.
type Address [AddressLength]byte

// BytesToAddress converts b to an Address, left-padding if shorter.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// Hex returns the 0x-prefixed hex representation of the address.
func (a Address) Hex() string { return fmt.Sprintf("0x%x", a[:]) }

// String implements fmt.Stringer.
func (a Address) String() string { return a.Hex() }
