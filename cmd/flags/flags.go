// Package flags defines the command line flags of the state transition tools.
package flags

import (
	"strings"
	"time"

	"github.com/sgryphon/cortex/config/params"
	"github.com/urfave/cli/v2"
)

var (
	// VerbosityFlag defines the logrus configuration.
	VerbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity (trace, debug, info=default, warn, error, fatal, panic)",
		Value: "info",
	}
	// DataDirFlag defines a path on disk.
	DataDirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "Data directory for the state database",
		Value: DefaultDataDir(),
	}
	// LogFormat specifies the log output format.
	LogFormat = &cli.StringFlag{
		Name:  "log-format",
		Usage: "Specify log formatting. Supports: text, json, fluentd, journald.",
		Value: "text",
	}
	// LogFileName specifies the log output file name.
	LogFileName = &cli.StringFlag{
		Name:  "log-file",
		Usage: "Specify log file name, relative or absolute",
	}
	// ConfigFileFlag specifies the filepath to load flag values.
	ConfigFileFlag = &cli.StringFlag{
		Name:  "config-file",
		Usage: "The filepath to a yaml file with flag values",
	}
	// ChainConfigFileFlag specifies the filepath to load chain config values.
	ChainConfigFileFlag = &cli.StringFlag{
		Name:  "chain-config-file",
		Usage: "The path to a YAML file with chain config values. Takes precedence over --config-name",
	}
	// ConfigNameFlag selects one of the built in chain config presets.
	ConfigNameFlag = EnumValue{
		Name:  "config-name",
		Usage: "Chain config preset: " + strings.Join(presetNames(), ", "),
		Enum:  presetNames(),
		Value: params.ConfigNames[params.Minimal],
	}.GenericFlag()
	// EnableTracingFlag defines a flag to enable request tracing.
	EnableTracingFlag = &cli.BoolFlag{
		Name:  "enable-tracing",
		Usage: "Enable request tracing.",
	}
	// TracingProcessNameFlag defines a flag to specify a process name.
	TracingProcessNameFlag = &cli.StringFlag{
		Name:  "tracing-process-name",
		Usage: "The name to apply to tracing tag \"process_name\"",
		Value: "beacon-transition",
	}
	// TracingEndpointFlag flag defines the http endpoint for serving traces to Jaeger.
	TracingEndpointFlag = &cli.StringFlag{
		Name:  "tracing-endpoint",
		Usage: "Tracing endpoint defines where state transition traces are exposed to Jaeger.",
		Value: "http://127.0.0.1:14268/api/traces",
	}
	// TraceSampleFractionFlag defines a flag to indicate what fraction of
	// transitions are sampled for tracing.
	TraceSampleFractionFlag = &cli.Float64Flag{
		Name:  "trace-sample-fraction",
		Usage: "Indicate what fraction of state transitions are sampled for tracing.",
		Value: 0.20,
	}
	// MonitoringHostFlag defines the host used to serve prometheus metrics.
	MonitoringHostFlag = &cli.StringFlag{
		Name:  "monitoring-host",
		Usage: "Host used for listening and responding metrics for prometheus.",
		Value: "127.0.0.1",
	}
	// MonitoringPortFlag defines the http port used to serve prometheus metrics.
	MonitoringPortFlag = &cli.IntFlag{
		Name:  "monitoring-port",
		Usage: "Port used to listening and respond metrics for prometheus.",
		Value: 8080,
	}
	// DisableMonitoringFlag defines a flag to disable the metrics collection.
	DisableMonitoringFlag = &cli.BoolFlag{
		Name:  "disable-monitoring",
		Usage: "Disable monitoring service.",
	}
	// ForceClearDB removes any previously stored data at the data directory.
	ForceClearDB = &cli.BoolFlag{
		Name:  "force-clear-db",
		Usage: "Clear any previously stored data at the data directory",
	}
)

var (
	// InteropNumValidatorsFlag specifies number of genesis validators for state generation.
	InteropNumValidatorsFlag = &cli.Uint64Flag{
		Name:  "interop-num-validators",
		Usage: "Number of deterministic genesis validators to generate",
		Value: 64,
	}
	// InteropGenesisTimeFlag specifies genesis time for state generation.
	InteropGenesisTimeFlag = &cli.Uint64Flag{
		Name:  "interop-genesis-time",
		Usage: "Genesis time for the generated state. Zero means now",
	}
	// SlotsFlag is the number of empty slots to process.
	SlotsFlag = &cli.Uint64Flag{
		Name:  "slots",
		Usage: "Number of slots to advance the head state by",
		Value: 1,
	}
	// SlotFlag is the slot of the block to propose.
	SlotFlag = &cli.Uint64Flag{
		Name:  "slot",
		Usage: "Slot of the proposed block. Zero means the slot after the head state",
	}
	// SkipStateRootValidationFlag applies blocks without comparing the post state root.
	SkipStateRootValidationFlag = &cli.BoolFlag{
		Name:  "skip-state-root-validation",
		Usage: "Apply blocks without checking the post state root they commit to",
	}
	// SlotDurationFlag overrides the interval between blocks of the devnet loop.
	SlotDurationFlag = &cli.DurationFlag{
		Name:  "slot-duration",
		Usage: "Interval between proposed blocks. Zero uses SECONDS_PER_SLOT of the chain config",
	}
	// MaxSlotsFlag stops the devnet loop after the head reaches this slot.
	MaxSlotsFlag = &cli.Uint64Flag{
		Name:  "max-slot",
		Usage: "Stop the devnet loop once the head reaches this slot. Zero runs until interrupted",
	}
)

// SlotDuration returns the flag value or the configured slot time.
func SlotDuration(ctx *cli.Context, cfg *params.BeaconChainConfig) time.Duration {
	if d := ctx.Duration(SlotDurationFlag.Name); d > 0 {
		return d
	}
	return time.Duration(cfg.SecondsPerSlot) * time.Second
}

func presetNames() []string {
	return []string{
		params.ConfigNames[params.Mainnet],
		params.ConfigNames[params.Minimal],
		params.ConfigNames[params.EndToEnd],
	}
}
