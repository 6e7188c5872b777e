// Package main is the entrypoint of beacon-transition, a tool that builds an
// interop genesis state and drives the state transition engine over it.
package main

import (
	"os"

	"github.com/sgryphon/cortex/cmd/flags"
	"github.com/sgryphon/cortex/io/logs"
	"github.com/sgryphon/cortex/monitoring/prometheus"
	"github.com/sgryphon/cortex/monitoring/tracing"
	_ "github.com/sgryphon/cortex/runtime/maxprocs"
	"github.com/sgryphon/cortex/runtime/version"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

var log = logrus.WithField("prefix", "main")

var appFlags = []cli.Flag{
	flags.DataDirFlag,
	flags.ConfigNameFlag,
	flags.ChainConfigFileFlag,
	flags.VerbosityFlag,
	flags.LogFormat,
	flags.LogFileName,
	flags.EnableTracingFlag,
	flags.TracingProcessNameFlag,
	flags.TracingEndpointFlag,
	flags.TraceSampleFractionFlag,
	flags.MonitoringHostFlag,
	flags.MonitoringPortFlag,
	flags.DisableMonitoringFlag,
	flags.ForceClearDB,
	flags.ConfigFileFlag,
}

func init() {
	appFlags = flags.WrapFlags(appFlags)
}

func newApp() *cli.App {
	var stopTracing func()
	app := &cli.App{
		Name:     "beacon-transition",
		Usage:    "builds an interop beacon state and applies slots, epochs and signed blocks to it",
		Version:  version.Version(),
		Flags:    appFlags,
		Commands: commands,
	}
	app.Before = func(ctx *cli.Context) error {
		// Load any flags from file, if specified.
		if ctx.IsSet(flags.ConfigFileFlag.Name) {
			if err := altsrc.InitInputSourceWithContext(
				appFlags,
				altsrc.NewYamlSourceFromFlagFunc(flags.ConfigFileFlag.Name),
			)(ctx); err != nil {
				return err
			}
		}

		level, err := logrus.ParseLevel(ctx.String(flags.VerbosityFlag.Name))
		if err != nil {
			return err
		}
		logrus.SetLevel(level)

		logFileName := ctx.String(flags.LogFileName.Name)
		format := ctx.String(flags.LogFormat.Name)
		// If persistent log files are written, the log messages coloring is
		// disabled because ANSI codes are seen as gibberish in the log files.
		if err := logs.ConfigureFormatter(format, logFileName != ""); err != nil {
			return err
		}
		if logFileName != "" {
			fileFormat := format
			if fileFormat == "journald" {
				fileFormat = "text"
			}
			if err := logs.ConfigurePersistentLogging(logFileName, fileFormat); err != nil {
				log.WithError(err).Error("Failed to configuring logging to disk.")
			}
		}

		stopTracing, err = tracing.Setup(
			ctx.String(flags.TracingProcessNameFlag.Name),
			ctx.String(flags.TracingEndpointFlag.Name),
			ctx.Float64(flags.TraceSampleFractionFlag.Name),
			ctx.Bool(flags.EnableTracingFlag.Name),
		)
		return err
	}
	app.After = func(*cli.Context) error {
		if stopTracing != nil {
			stopTracing()
		}
		return nil
	}
	return app
}

func main() {
	logrus.AddHook(prometheus.NewLogrusCollector())
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
