package params_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sgryphon/cortex/config/params"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	"github.com/sgryphon/cortex/testing/assert"
	"github.com/sgryphon/cortex/testing/require"
)

func TestLoadConfigFile_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		cfg  *params.BeaconChainConfig
	}{
		{name: "mainnet", cfg: params.MainnetConfig()},
		{name: "minimal", cfg: params.MinimalSpecConfig()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(file, params.ConfigToYaml(tt.cfg), 0600))

			loaded, err := params.LoadChainConfigFile(file)
			require.NoError(t, err)
			assert.DeepEqual(t, tt.cfg, loaded)
		})
	}
}

func TestUnmarshalConfig_MinimalPresetBase(t *testing.T) {
	cfg, err := params.UnmarshalConfig([]byte("PRESET_BASE: 'minimal'\nCONFIG_NAME: 'local'\nSLOTS_PER_EPOCH: 16\n"))
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.ConfigName)
	assert.Equal(t, uint64(10), cfg.ShuffleRoundCount, "Expected minimal shuffle round count")
	assert.Equal(t, types.Slot(16), cfg.SlotsPerEpoch)
	assert.Equal(t, types.Slot(4), cfg.SqrRootSlotsPerEpoch)
}

func TestUnmarshalConfig_DefaultsToDevnetName(t *testing.T) {
	cfg, err := params.UnmarshalConfig([]byte("SECONDS_PER_SLOT: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, "devnet", cfg.ConfigName)
	assert.Equal(t, uint64(3), cfg.SecondsPerSlot)
	assert.Equal(t, "mainnet", cfg.PresetBase)
}

func TestUnmarshalConfig_HexDomains(t *testing.T) {
	cfg, err := params.UnmarshalConfig([]byte("DOMAIN_RANDAO: 0x02000001\nGENESIS_FORK_VERSION: 0x0000000a\nBLS_WITHDRAWAL_PREFIX: 0x00\n"))
	require.NoError(t, err)
	assert.Equal(t, types.DomainType{2, 0, 0, 1}, cfg.DomainRandao)
	assert.DeepEqual(t, []byte{0, 0, 0, 10}, cfg.GenesisForkVersion)
	assert.Equal(t, byte(0), cfg.BLSWithdrawalPrefixByte)
}

func TestUnmarshalConfig_UnknownField(t *testing.T) {
	cfg, err := params.UnmarshalConfig([]byte("NOT_A_FIELD: 1\n"))
	assert.ErrorContains(t, "could not parse chain config yaml", err)
	assert.ErrorContains(t, "NOT_A_FIELD", err)
	if cfg != nil {
		t.Error("Expected no config for an unknown field")
	}
}

func TestUnmarshalConfig_MistypedValue(t *testing.T) {
	_, err := params.UnmarshalConfig([]byte("SLOTS_PER_EPOCH: many\n"))
	assert.ErrorContains(t, "could not parse chain config yaml", err)
}

func TestLoadChainConfigFile_UnknownField(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("PRESET_BASE: 'minimal'\nSLOTS_PER_EPOCH_TYPO: 4\n"), 0600))
	_, err := params.LoadChainConfigFile(file)
	assert.ErrorContains(t, "could not parse chain config yaml", err)
}

func TestReplaceHexStringWithYAMLFormat(t *testing.T) {
	parts, err := params.ReplaceHexStringWithYAMLFormat("DOMAIN_DEPOSIT: 0x03000000")
	require.NoError(t, err)
	assert.DeepEqual(t, []string{"DOMAIN_DEPOSIT: ", "- 3\n- 0\n- 0\n- 0\n"}, parts)

	_, err = params.ReplaceHexStringWithYAMLFormat("DOMAIN_DEPOSIT: 0xzz")
	assert.NotNil(t, err)
}

func TestByName(t *testing.T) {
	cfg, err := params.ByName("minimal")
	require.NoError(t, err)
	assert.Equal(t, types.Slot(8), cfg.SlotsPerEpoch)

	_, err = params.ByName("pyrmont")
	assert.ErrorIs(t, err, params.ErrUnknownConfig)
}

func TestPresets_GenesisConstants(t *testing.T) {
	for _, cfg := range []*params.BeaconChainConfig{params.MainnetConfig(), params.MinimalSpecConfig(), params.E2ETestConfig()} {
		assert.Equal(t, types.Epoch(0), cfg.GenesisEpoch)
		assert.Equal(t, types.Slot(0), cfg.GenesisSlot)
		assert.Equal(t, byte(0), cfg.BLSWithdrawalPrefixByte)
		assert.Equal(t, types.Epoch(1<<64-1), cfg.FarFutureEpoch)
	}
}

func TestCopy_IsIndependent(t *testing.T) {
	cfg := params.MainnetConfig()
	cfg.GenesisForkVersion[3] = 9
	cfg.SlotsPerEpoch = 4
	fresh := params.MainnetConfig()
	assert.Equal(t, byte(0), fresh.GenesisForkVersion[3])
	assert.Equal(t, types.Slot(32), fresh.SlotsPerEpoch)
}
