package primitives

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// DomainType is the 4-byte tag naming the purpose of a signature.
type DomainType [4]byte

// Domain is the 32-byte value mixed into a signing root: the domain type
// followed by the leading bytes of the fork data root.
type Domain []byte

// String returns the 0x-prefixed hex encoding of the domain type.
func (d DomainType) String() string {
	return hexutil.Encode(d[:])
}

// Type returns the 4-byte domain type prefix.
func (d Domain) Type() DomainType {
	var t DomainType
	copy(t[:], d)
	return t
}
