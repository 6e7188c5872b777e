package main

import (
	"context"

	"github.com/pkg/errors"
	statefeed "github.com/sgryphon/cortex/beacon-chain/core/feed/state"
	"github.com/sgryphon/cortex/beacon-chain/core/transition"
	"github.com/sgryphon/cortex/beacon-chain/db/kv"
	"github.com/sgryphon/cortex/beacon-chain/state"
	"github.com/sgryphon/cortex/cmd/flags"
	"github.com/sgryphon/cortex/config/params"
	"github.com/urfave/cli/v2"
)

var errNoHeadState = errors.New("no head state in database, run the genesis command first")

// chain bundles the configuration, database and engine shared by commands.
type chain struct {
	cfg      *params.BeaconChainConfig
	db       *kv.Store
	engine   *transition.Engine
	notifier *statefeed.FeedNotifier
}

func loadConfig(cliCtx *cli.Context) (*params.BeaconChainConfig, error) {
	if f := cliCtx.String(flags.ChainConfigFileFlag.Name); f != "" {
		return params.LoadChainConfigFile(f)
	}
	return params.ByName(cliCtx.String(flags.ConfigNameFlag.Name))
}

func openChain(cliCtx *cli.Context) (*chain, error) {
	cfg, err := loadConfig(cliCtx)
	if err != nil {
		return nil, errors.Wrap(err, "could not load chain config")
	}
	dataDir := cliCtx.String(flags.DataDirFlag.Name)
	if dataDir == "" {
		return nil, errors.New("no data directory, set --" + flags.DataDirFlag.Name)
	}
	db, err := kv.NewKVStore(dataDir)
	if err != nil {
		return nil, errors.Wrap(err, "could not open database")
	}
	if cliCtx.Bool(flags.ForceClearDB.Name) {
		log.Warn("Removing database")
		if err := db.Close(); err != nil {
			return nil, errors.Wrap(err, "could not close db prior to clearing")
		}
		if err := db.ClearDB(); err != nil {
			return nil, errors.Wrap(err, "could not clear database")
		}
		if db, err = kv.NewKVStore(dataDir); err != nil {
			return nil, errors.Wrap(err, "could not reopen database")
		}
	}
	notifier := statefeed.NewNotifier()
	return &chain{
		cfg:      cfg,
		db:       db,
		engine:   transition.NewEngine(cfg, transition.WithStateNotifier(notifier)),
		notifier: notifier,
	}, nil
}

func (c *chain) close() {
	if err := c.db.Close(); err != nil {
		log.WithError(err).Error("Could not close database")
	}
}

func (c *chain) headState(ctx context.Context) (*state.BeaconState, error) {
	st, err := c.db.HeadState(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "could not load head state")
	}
	if st == nil {
		return nil, errNoHeadState
	}
	return st, nil
}

// saveHead stores st, marks it as head and records its checkpoints.
func (c *chain) saveHead(ctx context.Context, st *state.BeaconState) ([32]byte, error) {
	root, err := c.db.SaveState(ctx, st)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not save state")
	}
	if err := c.db.SaveHeadRoot(ctx, root); err != nil {
		return [32]byte{}, errors.Wrap(err, "could not save head root")
	}
	if err := c.db.SaveJustifiedCheckpoint(ctx, st.CurrentJustifiedCheckpoint()); err != nil {
		return [32]byte{}, errors.Wrap(err, "could not save justified checkpoint")
	}
	if err := c.db.SaveFinalizedCheckpoint(ctx, st.FinalizedCheckpoint()); err != nil {
		return [32]byte{}, errors.Wrap(err, "could not save finalized checkpoint")
	}
	return root, nil
}
