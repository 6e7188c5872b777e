package primitives

// ValidatorIndex in the validator registry. The index is the validator's
// permanent identifier.
type ValidatorIndex uint64

// CommitteeIndex of a beacon committee within a slot.
type CommitteeIndex uint64

// Gwei is the integer balance unit.
type Gwei uint64
