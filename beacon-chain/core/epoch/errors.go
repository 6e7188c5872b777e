package epoch

import "github.com/pkg/errors"

// ErrEpochOutOfRange is returned when attestations are requested for an epoch
// other than the current or previous one.
var ErrEpochOutOfRange = errors.New("epoch is neither the current nor the previous epoch")
