package params

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	"github.com/sgryphon/cortex/math"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// LoadChainConfigFile loads a chain config file, converts hex values into
// valid param yaml format and unmarshals it on top of the preset it declares
// (mainnet unless the file names the minimal preset).
func LoadChainConfigFile(chainConfigFileName string) (*BeaconChainConfig, error) {
	yamlFile, err := os.ReadFile(chainConfigFileName) // #nosec G304
	if err != nil {
		return nil, errors.Wrap(err, "could not read chain config file")
	}
	return UnmarshalConfig(yamlFile)
}

// UnmarshalConfig parses the yaml contents of a chain config.
func UnmarshalConfig(yamlFile []byte) (*BeaconChainConfig, error) {
	// Default to using mainnet.
	conf := MainnetConfig()
	// To track if config name is defined inside config file.
	hasConfigName := false
	// Convert 0x hex inputs to fixed bytes arrays
	lines := strings.Split(string(yamlFile), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "CONFIG_NAME") {
			hasConfigName = true
		}
		if strings.HasPrefix(line, "PRESET_BASE: 'minimal'") ||
			strings.HasPrefix(line, `PRESET_BASE: "minimal"`) ||
			strings.HasPrefix(line, "PRESET_BASE: minimal") ||
			strings.HasPrefix(line, "# Minimal preset") {
			conf = MinimalSpecConfig()
		}
		if !strings.HasPrefix(line, "#") && strings.Contains(line, "0x") {
			parts, err := ReplaceHexStringWithYAMLFormat(line)
			if err != nil {
				return nil, errors.Wrapf(err, "could not convert hex value on line %d", i+1)
			}
			lines[i] = strings.Join(parts, "\n")
		}
	}
	yamlFile = []byte(strings.Join(lines, "\n"))
	// Unknown keys and mistyped values surface as *yaml.TypeError and are rejected too.
	if err := yaml.UnmarshalStrict(yamlFile, conf); err != nil {
		return nil, errors.Wrap(err, "could not parse chain config yaml")
	}
	if !hasConfigName {
		conf.ConfigName = "devnet"
	}
	// recompute SqrRootSlotsPerEpoch constant to handle non-standard values of SlotsPerEpoch
	conf.SqrRootSlotsPerEpoch = types.Slot(math.IntegerSquareRoot(uint64(conf.SlotsPerEpoch)))
	log.Debugf("Config file values: %+v", conf)
	return conf, nil
}

// ReplaceHexStringWithYAMLFormat will replace hex strings that the yaml parser will understand.
func ReplaceHexStringWithYAMLFormat(line string) ([]string, error) {
	parts := strings.Split(line, "0x")
	value := strings.Fields(parts[1])
	if len(value) == 0 {
		return nil, errors.New("empty hex value")
	}
	decoded, err := hexutil.Decode("0x" + value[0])
	if err != nil {
		return nil, err
	}
	var fixed interface{}
	switch l := len(decoded); {
	case l == 1:
		fixed = decoded[0]
	case l > 1 && l <= 4:
		var arr [4]byte
		copy(arr[:], decoded)
		fixed = arr
	case l > 4 && l <= 8:
		var arr [8]byte
		copy(arr[:], decoded)
		fixed = arr
	case l > 8 && l <= 20:
		var arr [20]byte
		copy(arr[:], decoded)
		fixed = arr
	case l > 20 && l <= 32:
		var arr [32]byte
		copy(arr[:], decoded)
		fixed = arr
	case l > 32 && l <= 48:
		var arr [48]byte
		copy(arr[:], decoded)
		fixed = arr
	case l > 48 && l <= 96:
		var arr [96]byte
		copy(arr[:], decoded)
		fixed = arr
	default:
		return nil, fmt.Errorf("unsupported hex value length %d", l)
	}
	fixedByte, err := yaml.Marshal(fixed)
	if err != nil {
		return nil, errors.Wrap(err, "could not marshal config value")
	}
	if len(decoded) == 1 {
		parts[0] += string(fixedByte)
		return parts[:1], nil
	}
	parts[1] = string(fixedByte)
	return parts, nil
}

// ConfigToYaml takes a provided config and outputs its contents
// in yaml. This allows custom configs to be read by other clients.
func ConfigToYaml(cfg *BeaconChainConfig) []byte {
	lines := []string{}
	lines = append(lines, fmt.Sprintf("PRESET_BASE: '%s'", cfg.PresetBase))
	lines = append(lines, fmt.Sprintf("CONFIG_NAME: '%s'", cfg.ConfigName))
	lines = append(lines, fmt.Sprintf("MAX_COMMITTEES_PER_SLOT: %d", cfg.MaxCommitteesPerSlot))
	lines = append(lines, fmt.Sprintf("TARGET_COMMITTEE_SIZE: %d", cfg.TargetCommitteeSize))
	lines = append(lines, fmt.Sprintf("MAX_VALIDATORS_PER_COMMITTEE: %d", cfg.MaxValidatorsPerCommittee))
	lines = append(lines, fmt.Sprintf("MIN_PER_EPOCH_CHURN_LIMIT: %d", cfg.MinPerEpochChurnLimit))
	lines = append(lines, fmt.Sprintf("CHURN_LIMIT_QUOTIENT: %d", cfg.ChurnLimitQuotient))
	lines = append(lines, fmt.Sprintf("SHUFFLE_ROUND_COUNT: %d", cfg.ShuffleRoundCount))
	lines = append(lines, fmt.Sprintf("MIN_GENESIS_ACTIVE_VALIDATOR_COUNT: %d", cfg.MinGenesisActiveValidatorCount))
	lines = append(lines, fmt.Sprintf("MIN_GENESIS_TIME: %d", cfg.MinGenesisTime))
	lines = append(lines, fmt.Sprintf("MIN_DEPOSIT_AMOUNT: %d", cfg.MinDepositAmount))
	lines = append(lines, fmt.Sprintf("MAX_EFFECTIVE_BALANCE: %d", cfg.MaxEffectiveBalance))
	lines = append(lines, fmt.Sprintf("EJECTION_BALANCE: %d", cfg.EjectionBalance))
	lines = append(lines, fmt.Sprintf("EFFECTIVE_BALANCE_INCREMENT: %d", cfg.EffectiveBalanceIncrement))
	lines = append(lines, fmt.Sprintf("GENESIS_FORK_VERSION: %#x", cfg.GenesisForkVersion))
	lines = append(lines, fmt.Sprintf("BLS_WITHDRAWAL_PREFIX: %#x", []byte{cfg.BLSWithdrawalPrefixByte}))
	lines = append(lines, fmt.Sprintf("GENESIS_DELAY: %d", cfg.GenesisDelay))
	lines = append(lines, fmt.Sprintf("SECONDS_PER_SLOT: %d", cfg.SecondsPerSlot))
	lines = append(lines, fmt.Sprintf("MIN_ATTESTATION_INCLUSION_DELAY: %d", cfg.MinAttestationInclusionDelay))
	lines = append(lines, fmt.Sprintf("SLOTS_PER_EPOCH: %d", cfg.SlotsPerEpoch))
	lines = append(lines, fmt.Sprintf("MIN_SEED_LOOKAHEAD: %d", cfg.MinSeedLookahead))
	lines = append(lines, fmt.Sprintf("MAX_SEED_LOOKAHEAD: %d", cfg.MaxSeedLookahead))
	lines = append(lines, fmt.Sprintf("EPOCHS_PER_ETH1_VOTING_PERIOD: %d", cfg.EpochsPerEth1VotingPeriod))
	lines = append(lines, fmt.Sprintf("SLOTS_PER_HISTORICAL_ROOT: %d", cfg.SlotsPerHistoricalRoot))
	lines = append(lines, fmt.Sprintf("MIN_VALIDATOR_WITHDRAWABILITY_DELAY: %d", cfg.MinValidatorWithdrawabilityDelay))
	lines = append(lines, fmt.Sprintf("SHARD_COMMITTEE_PERIOD: %d", cfg.ShardCommitteePeriod))
	lines = append(lines, fmt.Sprintf("MIN_EPOCHS_TO_INACTIVITY_PENALTY: %d", cfg.MinEpochsToInactivityPenalty))
	lines = append(lines, fmt.Sprintf("EPOCHS_PER_HISTORICAL_VECTOR: %d", cfg.EpochsPerHistoricalVector))
	lines = append(lines, fmt.Sprintf("EPOCHS_PER_SLASHINGS_VECTOR: %d", cfg.EpochsPerSlashingsVector))
	lines = append(lines, fmt.Sprintf("HISTORICAL_ROOTS_LIMIT: %d", cfg.HistoricalRootsLimit))
	lines = append(lines, fmt.Sprintf("VALIDATOR_REGISTRY_LIMIT: %d", cfg.ValidatorRegistryLimit))
	lines = append(lines, fmt.Sprintf("BASE_REWARD_FACTOR: %d", cfg.BaseRewardFactor))
	lines = append(lines, fmt.Sprintf("WHISTLEBLOWER_REWARD_QUOTIENT: %d", cfg.WhistleBlowerRewardQuotient))
	lines = append(lines, fmt.Sprintf("PROPOSER_REWARD_QUOTIENT: %d", cfg.ProposerRewardQuotient))
	lines = append(lines, fmt.Sprintf("INACTIVITY_PENALTY_QUOTIENT: %d", cfg.InactivityPenaltyQuotient))
	lines = append(lines, fmt.Sprintf("MIN_SLASHING_PENALTY_QUOTIENT: %d", cfg.MinSlashingPenaltyQuotient))
	lines = append(lines, fmt.Sprintf("PROPORTIONAL_SLASHING_MULTIPLIER: %d", cfg.ProportionalSlashingMultiplier))
	lines = append(lines, fmt.Sprintf("MAX_PROPOSER_SLASHINGS: %d", cfg.MaxProposerSlashings))
	lines = append(lines, fmt.Sprintf("MAX_ATTESTER_SLASHINGS: %d", cfg.MaxAttesterSlashings))
	lines = append(lines, fmt.Sprintf("MAX_ATTESTATIONS: %d", cfg.MaxAttestations))
	lines = append(lines, fmt.Sprintf("MAX_DEPOSITS: %d", cfg.MaxDeposits))
	lines = append(lines, fmt.Sprintf("MAX_VOLUNTARY_EXITS: %d", cfg.MaxVoluntaryExits))
	lines = append(lines, fmt.Sprintf("DOMAIN_BEACON_PROPOSER: %s", cfg.DomainBeaconProposer))
	lines = append(lines, fmt.Sprintf("DOMAIN_BEACON_ATTESTER: %s", cfg.DomainBeaconAttester))
	lines = append(lines, fmt.Sprintf("DOMAIN_RANDAO: %s", cfg.DomainRandao))
	lines = append(lines, fmt.Sprintf("DOMAIN_DEPOSIT: %s", cfg.DomainDeposit))
	lines = append(lines, fmt.Sprintf("DOMAIN_VOLUNTARY_EXIT: %s", cfg.DomainVoluntaryExit))
	lines = append(lines, fmt.Sprintf("DOMAIN_SELECTION_PROOF: %s", cfg.DomainSelectionProof))
	lines = append(lines, fmt.Sprintf("DOMAIN_AGGREGATE_AND_PROOF: %s", cfg.DomainAggregateAndProof))

	yamlFile := []byte(strings.Join(lines, "\n"))
	return yamlFile
}
