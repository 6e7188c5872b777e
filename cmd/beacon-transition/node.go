package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/sgryphon/cortex/async"
	"github.com/sgryphon/cortex/beacon-chain/core/feed"
	statefeed "github.com/sgryphon/cortex/beacon-chain/core/feed/state"
	"github.com/sgryphon/cortex/beacon-chain/core/transition"
	"github.com/sgryphon/cortex/beacon-chain/state"
	"github.com/sgryphon/cortex/cmd/flags"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	"github.com/sgryphon/cortex/crypto/bls"
	"github.com/sgryphon/cortex/monitoring/prometheus"
	"github.com/sgryphon/cortex/runtime"
	"github.com/sgryphon/cortex/runtime/interop"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// producer proposes and applies one block per period on top of the head
// state, persisting every post state as the new head.
type producer struct {
	ctx               context.Context
	cancel            context.CancelFunc
	chain             *chain
	builder           *transition.Engine
	keys              []bls.SecretKey
	period            time.Duration
	maxSlot           types.Slot
	validateStateRoot bool

	lock     sync.Mutex
	head     *state.BeaconState
	lastErr  error
	done     <-chan struct{}
	finished chan struct{}
	stopOnce sync.Once
}

func newProducer(
	ctx context.Context,
	c *chain,
	head *state.BeaconState,
	keys []bls.SecretKey,
	period time.Duration,
	maxSlot types.Slot,
	validateStateRoot bool,
) *producer {
	ctx, cancel := context.WithCancel(ctx)
	return &producer{
		ctx:               ctx,
		cancel:            cancel,
		chain:             c,
		builder:           transition.NewEngine(c.cfg),
		keys:              keys,
		period:            period,
		maxSlot:           maxSlot,
		validateStateRoot: validateStateRoot,
		head:              head,
		finished:          make(chan struct{}),
	}
}

// Start the block production loop.
func (p *producer) Start() {
	log.WithFields(logrus.Fields{
		"period":   p.period,
		"headSlot": p.headSlot(),
	}).Info("Starting block producer")
	p.lock.Lock()
	defer p.lock.Unlock()
	p.done = async.RunEvery(p.ctx, "proposeNextBlock", p.period, p.proposeNext)
}

// Stop the loop and wait for the block in flight to be applied.
func (p *producer) Stop() error {
	p.cancel()
	p.lock.Lock()
	done := p.done
	p.lock.Unlock()
	if done != nil {
		<-done
	}
	log.Info("Stopped block producer")
	return nil
}

// Status returns the last block production failure, if any.
func (p *producer) Status() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.lastErr
}

// Finished is closed once the head reaches the configured maximum slot.
func (p *producer) Finished() <-chan struct{} {
	return p.finished
}

func (p *producer) headSlot() types.Slot {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.head.Slot()
}

func (p *producer) proposeNext(ctx context.Context) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	slot := p.head.Slot() + 1
	if p.maxSlot > 0 && slot > p.maxSlot {
		p.stopOnce.Do(func() { close(p.finished) })
		return nil
	}
	blk, err := interop.NewSignedBlock(ctx, p.builder, p.head, p.keys, slot)
	if err != nil {
		p.lastErr = err
		return errors.Wrapf(err, "could not build block for slot %d", slot)
	}
	post, err := p.chain.engine.ExecuteStateTransitionNoMutate(ctx, p.head, blk, p.validateStateRoot)
	if err != nil {
		p.lastErr = err
		return errors.Wrapf(err, "could not apply block for slot %d", slot)
	}
	root, err := p.chain.saveHead(ctx, post)
	if err != nil {
		p.lastErr = err
		return err
	}
	p.head = post
	p.lastErr = nil
	log.WithFields(logrus.Fields{
		"slot":      slot,
		"stateRoot": hexutil.Encode(root[:]),
	}).Debug("Saved new head")
	return nil
}

// logEvents reports checkpoint changes and block progress from the state
// feed until the subscription is closed.
func logEvents(ch <-chan *feed.Event, sub interface{ Err() <-chan error }) {
	var blocks uint64
	for {
		select {
		case ev := <-ch:
			switch data := ev.Data.(type) {
			case *statefeed.BlockProcessedData:
				blocks++
				log.WithFields(logrus.Fields{
					"slot":          data.Slot,
					"proposerIndex": data.ProposerIndex,
					"blocks":        humanize.Comma(int64(blocks)),
				}).Info("Block processed")
			case *statefeed.CheckpointData:
				kind := "justified"
				if ev.Type == statefeed.CheckpointFinalized {
					kind = "finalized"
				}
				log.WithFields(logrus.Fields{
					"epoch":           data.Epoch,
					"checkpointEpoch": data.Checkpoint.Epoch,
					"checkpointRoot":  hexutil.Encode(data.Checkpoint.Root),
				}).Infof("New %s checkpoint", kind)
			}
		case <-sub.Err():
			return
		}
	}
}

func runAction(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	c, err := openChain(cliCtx)
	if err != nil {
		return err
	}
	defer c.close()

	head, err := c.headState(ctx)
	if err != nil {
		return err
	}
	keys, _, err := interop.DeterministicallyGenerateKeys(0, uint64(head.NumValidators()))
	if err != nil {
		return errors.Wrap(err, "could not derive validator keys")
	}

	registry := runtime.NewServiceRegistry()
	if !cliCtx.Bool(flags.DisableMonitoringFlag.Name) {
		addr := fmt.Sprintf("%s:%d", cliCtx.String(flags.MonitoringHostFlag.Name), cliCtx.Int(flags.MonitoringPortFlag.Name))
		if err := registry.RegisterService(prometheus.NewService(addr, registry)); err != nil {
			return err
		}
	}
	prod := newProducer(
		ctx,
		c,
		head,
		keys,
		flags.SlotDuration(cliCtx, c.cfg),
		types.Slot(cliCtx.Uint64(flags.MaxSlotsFlag.Name)),
		!cliCtx.Bool(flags.SkipStateRootValidationFlag.Name),
	)
	if err := registry.RegisterService(prod); err != nil {
		return err
	}

	ch := make(chan *feed.Event, 64)
	sub := c.notifier.StateFeed().Subscribe(ch)
	go logEvents(ch, sub)

	registry.StartAll()
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigc)
	select {
	case <-sigc:
		log.Info("Got interrupt, shutting down...")
	case <-prod.Finished():
		log.WithField("slot", prod.headSlot()).Info("Reached max slot, shutting down...")
	case <-ctx.Done():
	}
	err = registry.StopAll()
	sub.Unsubscribe()
	if err != nil {
		return err
	}
	return prod.Status()
}
