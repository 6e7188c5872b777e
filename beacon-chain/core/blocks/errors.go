package blocks

import "github.com/pkg/errors"

// Consensus rejections of a block header. A block failing with any of these
// is invalid and must not be retried unmodified.
var (
	ErrSlotMismatch       = errors.New("block slot does not match state slot")
	ErrParentRootMismatch = errors.New("parent root does not match the latest block header signing root")
	ErrSlashedProposer    = errors.New("proposer is slashed")
	ErrInvalidSignature   = errors.New("block signature did not verify")
	ErrNilBlock           = errors.New("nil block or block body")
)
