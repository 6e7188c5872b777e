//go:build !minimal

package field_params

const (
	Preset                          = "mainnet"
	BlockRootsLength                = 8192  // SLOTS_PER_HISTORICAL_ROOT
	StateRootsLength                = 8192  // SLOTS_PER_HISTORICAL_ROOT
	RandaoMixesLength               = 65536 // EPOCHS_PER_HISTORICAL_VECTOR
	SlashingsLength                 = 8192  // EPOCHS_PER_SLASHINGS_VECTOR
	Eth1DataVotesLength             = 2048  // SLOTS_PER_ETH1_VOTING_PERIOD
	PreviousEpochAttestationsLength = 4096  // MAX_ATTESTATIONS * SLOTS_PER_EPOCH
	CurrentEpochAttestationsLength  = 4096  // MAX_ATTESTATIONS * SLOTS_PER_EPOCH
)
