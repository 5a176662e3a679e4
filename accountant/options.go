// SPDX-License-Identifier: MIT

package accountant

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/dpchain/ledger"
)

// Ledger receives every commit before it takes effect.
type Ledger interface {
	Append(ctx context.Context, e ledger.Entry) error
}

// Option configures an Accountant.
type Option func(*config)

type config struct {
	logger     *zap.Logger
	ledger     Ledger
	compose    any
	sequential bool
	id         uuid.UUID
}

// WithLogger sets the logger. Defaults to zap.NewNop. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("accountant: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}

// WithLedger records every commit in l. A failed append rejects the admission.
func WithLedger(l Ledger) Option {
	if l == nil {
		panic("accountant: WithLedger(nil)")
	}
	return func(c *config) { c.ledger = l }
}

// WithComposer overrides the measure's composition rule. Q must be the
// accountant's loss type or construction fails. Panics on nil fn.
func WithComposer[Q any](fn func(losses []Q) (Q, error)) Option {
	if fn == nil {
		panic("accountant: WithComposer(nil)")
	}
	return func(c *config) { c.compose = fn }
}

// WithSequentialAccess rejects spending by a child once anything admitted
// after it has been charged.
func WithSequentialAccess() Option {
	return func(c *config) { c.sequential = true }
}

// WithID sets the identifier recorded in logs and the ledger. Defaults to a
// random UUID.
func WithID(id uuid.UUID) Option {
	return func(c *config) { c.id = id }
}

func gatherOptions(opts []Option) config {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.id == uuid.Nil {
		cfg.id = uuid.New()
	}
	return cfg
}
