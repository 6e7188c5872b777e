package params

import (
	"math"

	fieldparams "github.com/sgryphon/cortex/config/fieldparams"
)

// MainnetConfig returns the configuration to be used in the main network.
func MainnetConfig() *BeaconChainConfig {
	return mainnetBeaconConfig.Copy()
}

var mainnetBeaconConfig = &BeaconChainConfig{
	// Constants (Non-configurable)
	FarFutureEpoch:           math.MaxUint64,
	BaseRewardsPerEpoch:      4,
	DepositContractTreeDepth: 32,
	JustificationBitsLength:  fieldparams.JustificationBitsLength,
	BLSSecretKeyLength:       fieldparams.BLSSecretKeyLength,
	BLSPubkeyLength:          fieldparams.BLSPubkeyLength,

	// Misc constant.
	PresetBase:                     "mainnet",
	ConfigName:                     ConfigNames[Mainnet],
	MaxCommitteesPerSlot:           64,
	TargetCommitteeSize:            128,
	MaxValidatorsPerCommittee:      2048,
	MinPerEpochChurnLimit:          4,
	ChurnLimitQuotient:             1 << 16,
	ShuffleRoundCount:              90,
	MinGenesisActiveValidatorCount: 16384,
	MinGenesisTime:                 1606824000,
	HysteresisQuotient:             4,
	HysteresisDownwardMultiplier:   1,
	HysteresisUpwardMultiplier:     5,

	// Gwei value constants.
	MinDepositAmount:          1 * 1e9,
	MaxEffectiveBalance:       32 * 1e9,
	EjectionBalance:           16 * 1e9,
	EffectiveBalanceIncrement: 1 * 1e9,

	// Initial value constants.
	GenesisForkVersion:      []byte{0, 0, 0, 0},
	BLSWithdrawalPrefixByte: byte(0),

	// Time parameter constants.
	GenesisDelay:                     604800, // 1 week.
	MinAttestationInclusionDelay:     1,
	SecondsPerSlot:                   12,
	SlotsPerEpoch:                    32,
	SqrRootSlotsPerEpoch:             5,
	MinSeedLookahead:                 1,
	MaxSeedLookahead:                 4,
	EpochsPerEth1VotingPeriod:        64,
	SlotsPerHistoricalRoot:           8192,
	MinValidatorWithdrawabilityDelay: 256,
	ShardCommitteePeriod:             256,
	MinEpochsToInactivityPenalty:     4,

	// State list length constants.
	EpochsPerHistoricalVector: 65536,
	EpochsPerSlashingsVector:  8192,
	HistoricalRootsLimit:      fieldparams.HistoricalRootsLength,
	ValidatorRegistryLimit:    fieldparams.ValidatorRegistryLimit,

	// Reward and penalty quotients constants.
	BaseRewardFactor:               64,
	WhistleBlowerRewardQuotient:    512,
	ProposerRewardQuotient:         8,
	InactivityPenaltyQuotient:      1 << 26,
	MinSlashingPenaltyQuotient:     128,
	ProportionalSlashingMultiplier: 1,

	// Max operations per block constants.
	MaxProposerSlashings: fieldparams.MaxProposerSlashings,
	MaxAttesterSlashings: fieldparams.MaxAttesterSlashings,
	MaxAttestations:      fieldparams.MaxAttestations,
	MaxDeposits:          fieldparams.MaxDeposits,
	MaxVoluntaryExits:    fieldparams.MaxVoluntaryExits,

	// BLS domain values.
	DomainBeaconProposer:    [4]byte{0, 0, 0, 0},
	DomainBeaconAttester:    [4]byte{1, 0, 0, 0},
	DomainRandao:            [4]byte{2, 0, 0, 0},
	DomainDeposit:           [4]byte{3, 0, 0, 0},
	DomainVoluntaryExit:     [4]byte{4, 0, 0, 0},
	DomainSelectionProof:    [4]byte{5, 0, 0, 0},
	DomainAggregateAndProof: [4]byte{6, 0, 0, 0},

	// Client constants.
	GenesisSlot:  0,
	GenesisEpoch: 0,
	GweiPerEth:   1000000000,
}
