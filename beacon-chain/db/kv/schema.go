package kv

// The schema will define how to store and retrieve data from the db.
// States are stored as state root -> snappy compressed state, chain metadata
// and checkpoints under fixed keys.
var (
	stateBucket         = []byte("state")
	chainMetadataBucket = []byte("chain-metadata")
	checkpointBucket    = []byte("check-point")

	// Chain metadata keys.
	headRootKey            = []byte("head-root")
	justifiedCheckpointKey = []byte("justified-checkpoint")
	finalizedCheckpointKey = []byte("finalized-checkpoint")
)
