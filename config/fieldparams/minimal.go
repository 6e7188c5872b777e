//go:build minimal

package field_params

const (
	Preset                          = "minimal"
	BlockRootsLength                = 64   // SLOTS_PER_HISTORICAL_ROOT
	StateRootsLength                = 64   // SLOTS_PER_HISTORICAL_ROOT
	RandaoMixesLength               = 64   // EPOCHS_PER_HISTORICAL_VECTOR
	SlashingsLength                 = 64   // EPOCHS_PER_SLASHINGS_VECTOR
	Eth1DataVotesLength             = 32   // SLOTS_PER_ETH1_VOTING_PERIOD
	PreviousEpochAttestationsLength = 1024 // MAX_ATTESTATIONS * SLOTS_PER_EPOCH
	CurrentEpochAttestationsLength  = 1024 // MAX_ATTESTATIONS * SLOTS_PER_EPOCH
)
