package params

// E2ETestConfig retrieves the configuration used by the local devnet runner:
// the minimal preset with short slots so that epochs, justification and
// finality are observable within minutes.
//
// WARNING: This config is only for testing, it is not meant for use outside of E2E.
func E2ETestConfig() *BeaconChainConfig {
	e2eConfig := MinimalSpecConfig()

	// Misc.
	e2eConfig.MinGenesisActiveValidatorCount = 256
	e2eConfig.GenesisDelay = 10 // 10 seconds so the devnet has enough time to get started.

	// Time parameters.
	e2eConfig.SecondsPerSlot = 2
	e2eConfig.SlotsPerEpoch = 6
	e2eConfig.SqrRootSlotsPerEpoch = 2
	e2eConfig.EpochsPerEth1VotingPeriod = 2
	e2eConfig.ShardCommitteePeriod = 4
	e2eConfig.MaxSeedLookahead = 1

	e2eConfig.ConfigName = ConfigNames[EndToEnd]
	e2eConfig.GenesisForkVersion = []byte{0, 0, 0, 253}

	return e2eConfig
}
