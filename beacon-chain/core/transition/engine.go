// Package transition implements the state transition engine: per slot root
// bookkeeping, epoch processing at the last slot of every epoch and block
// application. All operations mutate the given state in place.
package transition

import (
	"github.com/sgryphon/cortex/beacon-chain/core/feed"
	statefeed "github.com/sgryphon/cortex/beacon-chain/core/feed/state"
	"github.com/sgryphon/cortex/beacon-chain/core/signing"
	"github.com/sgryphon/cortex/config/params"
)

// Engine runs state transitions under a single chain configuration.
type Engine struct {
	cfg      *params.BeaconChainConfig
	verifier signing.Verifier
	notifier statefeed.Notifier
}

// Option configures an Engine.
type Option func(*Engine)

// WithVerifier sets the verifier used for block proposer signatures.
func WithVerifier(v signing.Verifier) Option {
	return func(e *Engine) {
		e.verifier = v
	}
}

// WithoutSignatureVerification disables proposer signature checks. Only
// meant for building blocks whose signature does not exist yet.
func WithoutSignatureVerification() Option {
	return func(e *Engine) {
		e.verifier = nil
	}
}

// WithStateNotifier publishes transition events to the notifier's feed.
func WithStateNotifier(n statefeed.Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// NewEngine returns an engine for cfg. Signatures are verified with BLS
// unless an option says otherwise.
func NewEngine(cfg *params.BeaconChainConfig, opts ...Option) *Engine {
	if cfg == nil {
		cfg = params.MainnetConfig()
	}
	e := &Engine{
		cfg:      cfg,
		verifier: signing.BLSVerifier{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the chain configuration of the engine.
func (e *Engine) Config() *params.BeaconChainConfig {
	return e.cfg
}

func (e *Engine) notify(typ feed.EventType, data interface{}) {
	if e.notifier == nil {
		return
	}
	e.notifier.StateFeed().Send(&feed.Event{
		Type: typ,
		Data: data,
	})
}
