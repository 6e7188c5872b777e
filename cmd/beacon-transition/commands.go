package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/k0kubun/go-ansi"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/sgryphon/cortex/beacon-chain/core/helpers"
	"github.com/sgryphon/cortex/beacon-chain/core/transition"
	"github.com/sgryphon/cortex/cmd/flags"
	"github.com/sgryphon/cortex/config/params"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	"github.com/sgryphon/cortex/runtime/interop"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var commands = []*cli.Command{
	{
		Name:  "genesis",
		Usage: "writes a deterministic interop genesis state to the database and marks it as head",
		Flags: []cli.Flag{
			flags.InteropNumValidatorsFlag,
			flags.InteropGenesisTimeFlag,
		},
		Action: genesisAction,
	},
	{
		Name:  "advance",
		Usage: "processes empty slots on top of the head state",
		Flags: []cli.Flag{
			flags.SlotsFlag,
		},
		Action: advanceAction,
	},
	{
		Name:  "propose",
		Usage: "builds, signs and applies a block on top of the head state",
		Flags: []cli.Flag{
			flags.SlotFlag,
			flags.SkipStateRootValidationFlag,
		},
		Action: proposeAction,
	},
	{
		Name:  "run",
		Usage: "runs a single proposer devnet that applies one block per slot until interrupted",
		Flags: []cli.Flag{
			flags.SlotDurationFlag,
			flags.MaxSlotsFlag,
			flags.SkipStateRootValidationFlag,
		},
		Action: runAction,
	},
	{
		Name:   "print-config",
		Usage:  "prints the selected chain config as yaml",
		Action: printConfigAction,
	},
}

func genesisAction(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	c, err := openChain(cliCtx)
	if err != nil {
		return err
	}
	defer c.close()

	numValidators := cliCtx.Uint64(flags.InteropNumValidatorsFlag.Name)
	if numValidators < c.cfg.MinGenesisActiveValidatorCount {
		log.Warnf("Generating %d validators, below the minimum genesis count of %d", numValidators, c.cfg.MinGenesisActiveValidatorCount)
	}
	genesisTime := cliCtx.Uint64(flags.InteropGenesisTimeFlag.Name)
	if genesisTime == 0 {
		genesisTime = uint64(time.Now().Unix())
	}
	st, _, err := interop.GenerateGenesisState(ctx, c.cfg, genesisTime, numValidators)
	if err != nil {
		return errors.Wrap(err, "could not generate genesis state")
	}
	root, err := c.saveHead(ctx, st)
	if err != nil {
		return err
	}
	total, err := helpers.TotalActiveBalance(c.cfg, st)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"validators":            humanize.Comma(int64(numValidators)),
		"totalActiveBalanceEth": humanize.Comma(int64(total / c.cfg.GweiPerEth)),
		"genesisTime":           humanize.Time(time.Unix(int64(genesisTime), 0)),
		"stateRoot":             hexutil.Encode(root[:]),
	}).Info("Generated genesis state")
	return nil
}

func advanceAction(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	c, err := openChain(cliCtx)
	if err != nil {
		return err
	}
	defer c.close()

	st, err := c.headState(ctx)
	if err != nil {
		return err
	}
	slots := cliCtx.Uint64(flags.SlotsFlag.Name)
	target := st.Slot() + types.Slot(slots)
	bar := initializeProgressBar(int(slots), fmt.Sprintf("Processing slots %d to %d", st.Slot(), target))
	start := time.Now()
	for st.Slot() < target {
		if err := c.engine.ProcessSlots(ctx, st, st.Slot()+1); err != nil {
			return errors.Wrapf(err, "could not process slot %d", st.Slot())
		}
		if err := bar.Add(1); err != nil {
			log.WithError(err).Debug("Could not update progress bar")
		}
	}
	root, err := c.saveHead(ctx, st)
	if err != nil {
		return err
	}
	logHead(c.cfg, st.Slot(), root, time.Since(start)).Info("Advanced head state")
	return nil
}

func proposeAction(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	c, err := openChain(cliCtx)
	if err != nil {
		return err
	}
	defer c.close()

	st, err := c.headState(ctx)
	if err != nil {
		return err
	}
	slot := types.Slot(cliCtx.Uint64(flags.SlotFlag.Name))
	if slot == 0 {
		slot = st.Slot() + 1
	}
	keys, _, err := interop.DeterministicallyGenerateKeys(0, uint64(st.NumValidators()))
	if err != nil {
		return errors.Wrap(err, "could not derive validator keys")
	}
	start := time.Now()
	blk, err := interop.NewSignedBlock(ctx, transition.NewEngine(c.cfg), st, keys, slot)
	if err != nil {
		return errors.Wrap(err, "could not build block")
	}
	validateStateRoot := !cliCtx.Bool(flags.SkipStateRootValidationFlag.Name)
	if _, err := c.engine.ExecuteStateTransition(ctx, st, blk, validateStateRoot); err != nil {
		return errors.Wrap(err, "could not apply block")
	}
	root, err := c.saveHead(ctx, st)
	if err != nil {
		return err
	}
	blockRoot, err := blk.SigningRoot()
	if err != nil {
		return err
	}
	logHead(c.cfg, st.Slot(), root, time.Since(start)).
		WithField("blockRoot", hexutil.Encode(blockRoot[:])).
		Info("Applied block")
	return nil
}

func printConfigAction(cliCtx *cli.Context) error {
	cfg, err := loadConfig(cliCtx)
	if err != nil {
		return err
	}
	_, err = cliCtx.App.Writer.Write(params.ConfigToYaml(cfg))
	return err
}

func logHead(cfg *params.BeaconChainConfig, slot types.Slot, root [32]byte, took time.Duration) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"slot":      slot,
		"epoch":     helpers.SlotToEpoch(cfg, slot),
		"stateRoot": hexutil.Encode(root[:]),
		"took":      took,
	})
}

func initializeProgressBar(numItems int, msg string) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		numItems,
		progressbar.OptionFullWidth(),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() { fmt.Println() }),
		progressbar.OptionSetDescription(msg),
	)
}
