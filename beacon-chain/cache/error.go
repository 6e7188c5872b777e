package cache

import "github.com/pkg/errors"

var (
	// ErrNotFound for cache fetches that return a nil value.
	ErrNotFound = errors.New("not found in cache")
	// ErrNotCommittee will be returned when a cache object is not a pointer to
	// a Committees struct.
	ErrNotCommittee = errors.New("object is not a committee struct")
	// ErrNotProposerIndex will be returned when a cache object is not a validator index.
	ErrNotProposerIndex = errors.New("object is not a proposer index")
)
