package state

import "github.com/pkg/errors"

var (
	// ErrNilInnerState is returned when the state container is missing.
	ErrNilInnerState = errors.New("nil inner state")
	// ErrIndexOutOfRange is returned when a mutator or getter addresses an index
	// outside the registry or a ring buffer.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrBalancesLength is returned when validators and balances differ in length.
	ErrBalancesLength = errors.New("validators and balances length mismatch")
	// ErrRingBufferLength is returned when a ring buffer is empty or mis-sized.
	ErrRingBufferLength = errors.New("invalid ring buffer length")
	// ErrBalanceOverflow is returned when a balance increase overflows uint64.
	ErrBalanceOverflow = errors.New("balance overflow")
	// ErrJustificationBitsLength is returned when the justification bits are not a single byte.
	ErrJustificationBitsLength = errors.New("invalid justification bits length")
	// ErrNilValidator is returned when appending a nil validator.
	ErrNilValidator = errors.New("nil validator")
)
