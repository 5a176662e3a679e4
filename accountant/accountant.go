// SPDX-License-Identifier: MIT
// Package: dpchain/accountant
//
// accountant.go: filters and odometers over one sensitive dataset.
//
// Contract:
//   - A filter never admits a query whose composed loss exceeds its cap.
//   - An odometer has no cap; Limit may later turn it into a filter.
//   - Every charge runs against the whole lineage, root first, and either
//     commits at every level or leaves every level unchanged.
//   - Under sequential access only the most recent child may be charged.
//
// Complexity:
//   - Admit is O(d*k) in lineage depth d and per-level query count k, since
//     each level recomposes its loss list.
//
// Errors:
//   - ErrBudgetExceeded (InvalidDistance) when a cap would be crossed.
//   - FailedRelation when a charge targets a superseded sequential entry.
//   - MakeMeasurement on construction with an unsupported output measure.

package accountant

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/dpchain/core"
	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/ledger"
)

// ErrBudgetExceeded indicates an admission that would push a running total
// past a cap.
var ErrBudgetExceeded = errs.New(errs.InvalidDistance, "accountant: privacy budget exceeded")

// Accountant tracks the privacy loss of measurements adaptively released on
// one dataset. TI is the dataset type, QI the input distance type and QO the
// loss type of the output measure.
type Accountant[TI, QI, QO any] struct {
	mu sync.Mutex

	id            uuid.UUID
	data          TI
	inputDomain   core.Domain[TI]
	inputMetric   core.Metric
	outputMeasure core.Measure
	dIn           QI

	cap    QO
	capped bool

	// losses holds one entry per admitted measurement or spawned child;
	// total is their composition.
	losses []QO
	labels []string
	total  QO
	active int

	compose    func([]QO) (QO, error)
	sequential bool
	logger     *zap.Logger
	ledger     Ledger

	parent *Accountant[TI, QI, QO]
	slot   int
}

// NewFilter returns an accountant that refuses any admission pushing the
// composed loss past dOut. This is concurrent composition with budget
// (dIn, dOut).
func NewFilter[TI, QI, QO any](
	data TI,
	inputDomain core.Domain[TI],
	inputMetric core.Metric,
	outputMeasure core.Measure,
	dIn QI,
	dOut QO,
	opts ...Option,
) (*Accountant[TI, QI, QO], error) {
	a, err := newAccountant[TI, QI, QO](data, inputDomain, inputMetric, outputMeasure, dIn, opts)
	if err != nil {
		return nil, err
	}
	if err := core.ValidateDistance(dOut); err != nil {
		return nil, errs.Wrap(errs.InvalidDistance, "d_out", err)
	}
	a.cap, a.capped = dOut, true
	return a, nil
}

// NewOdometer returns an uncapped accountant that only reports the composed
// loss of what it admitted.
func NewOdometer[TI, QI, QO any](
	data TI,
	inputDomain core.Domain[TI],
	inputMetric core.Metric,
	outputMeasure core.Measure,
	dIn QI,
	opts ...Option,
) (*Accountant[TI, QI, QO], error) {
	return newAccountant[TI, QI, QO](data, inputDomain, inputMetric, outputMeasure, dIn, opts)
}

func newAccountant[TI, QI, QO any](
	data TI,
	inputDomain core.Domain[TI],
	inputMetric core.Metric,
	outputMeasure core.Measure,
	dIn QI,
	opts []Option,
) (*Accountant[TI, QI, QO], error) {
	if inputDomain == nil || inputMetric == nil || outputMeasure == nil {
		return nil, errs.New(errs.MakeMeasurement, "domain, metric and measure must be non-nil")
	}
	if err := core.CheckMetricSpace(inputDomain, inputMetric); err != nil {
		return nil, err
	}
	if err := core.ValidateDistance(dIn); err != nil {
		return nil, errs.Wrap(errs.InvalidDistance, "d_in", err)
	}
	ok, err := inputDomain.Member(data)
	if err != nil {
		return nil, errs.Wrap(errs.FailedFunction, "dataset membership", err)
	}
	if !ok {
		return nil, errs.Errorf(errs.FailedFunction, "dataset is not a member of %s", inputDomain)
	}

	cfg := gatherOptions(opts)
	compose, err := resolveComposer[QO](outputMeasure, cfg.compose)
	if err != nil {
		return nil, err
	}
	a := &Accountant[TI, QI, QO]{
		id:            cfg.id,
		data:          data,
		inputDomain:   inputDomain,
		inputMetric:   inputMetric,
		outputMeasure: outputMeasure,
		dIn:           dIn,
		compose:       compose,
		sequential:    cfg.sequential,
		logger:        cfg.logger,
		ledger:        cfg.ledger,
		active:        -1,
	}
	if a.total, err = compose(nil); err != nil {
		return nil, err
	}
	return a, nil
}

func resolveComposer[Q any](measure core.Measure, override any) (func([]Q) (Q, error), error) {
	if override != nil {
		fn, ok := override.(func([]Q) (Q, error))
		if !ok {
			return nil, errs.Errorf(errs.MakeMeasurement, "composer %T does not compose %T", override, *new(Q))
		}
		return fn, nil
	}
	c, ok := measure.(core.Composer[Q])
	if !ok {
		return nil, errs.Errorf(errs.MakeMeasurement, "%s has no composition rule", measure)
	}
	return c.Compose, nil
}

// ID identifies the accountant in logs and the ledger.
func (a *Accountant[TI, QI, QO]) ID() uuid.UUID { return a.id }

func (a *Accountant[TI, QI, QO]) InputDomain() core.Domain[TI] { return a.inputDomain }
func (a *Accountant[TI, QI, QO]) InputMetric() core.Metric     { return a.inputMetric }
func (a *Accountant[TI, QI, QO]) OutputMeasure() core.Measure  { return a.outputMeasure }
func (a *Accountant[TI, QI, QO]) DIn() QI                      { return a.dIn }

// Consumed returns the composed loss committed so far.
func (a *Accountant[TI, QI, QO]) Consumed() QO {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}

// Cap returns the hard cap of a filter.
func (a *Accountant[TI, QI, QO]) Cap() (QO, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cap, a.capped
}

// Len returns the number of admissions and children charged so far.
func (a *Accountant[TI, QI, QO]) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.losses)
}

// Limit caps an odometer at dOut, turning it into a filter. It fails with
// ErrBudgetExceeded if more than dOut has already been consumed, and
// refuses to loosen an existing cap.
func (a *Accountant[TI, QI, QO]) Limit(dOut QO) error {
	if err := core.ValidateDistance(dOut); err != nil {
		return errs.Wrap(errs.InvalidDistance, "d_out", err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.capped {
		ok, err := core.LessEqual(dOut, a.cap)
		if err != nil {
			return err
		}
		if !ok {
			return errs.Errorf(errs.FailedRelation, "cannot raise cap %v to %v", a.cap, dOut)
		}
	}
	ok, err := core.LessEqual(a.total, dOut)
	if err != nil {
		return err
	}
	if !ok {
		return errs.Wrap(errs.InvalidDistance, fmt.Sprintf("consumed %v exceeds %v", a.total, dOut), ErrBudgetExceeded)
	}
	a.cap, a.capped = dOut, true
	return nil
}

// SpawnFilter returns a child filter capped at dOut. Its running total is
// charged to a as one entry.
func (a *Accountant[TI, QI, QO]) SpawnFilter(dOut QO, opts ...Option) (*Accountant[TI, QI, QO], error) {
	if err := core.ValidateDistance(dOut); err != nil {
		return nil, errs.Wrap(errs.InvalidDistance, "d_out", err)
	}
	child, err := a.spawn(opts)
	if err != nil {
		return nil, err
	}
	child.cap, child.capped = dOut, true
	return child, nil
}

// SpawnOdometer returns an uncapped child charged to a as one entry.
func (a *Accountant[TI, QI, QO]) SpawnOdometer(opts ...Option) (*Accountant[TI, QI, QO], error) {
	return a.spawn(opts)
}

func (a *Accountant[TI, QI, QO]) spawn(opts []Option) (*Accountant[TI, QI, QO], error) {
	cfg := gatherOptions(append([]Option{WithLogger(a.logger)}, opts...))
	compose := a.compose
	if cfg.compose != nil {
		var err error
		if compose, err = resolveComposer[QO](a.outputMeasure, cfg.compose); err != nil {
			return nil, err
		}
	}
	if cfg.ledger == nil {
		cfg.ledger = a.ledger
	}
	child := &Accountant[TI, QI, QO]{
		id:            cfg.id,
		data:          a.data,
		inputDomain:   a.inputDomain,
		inputMetric:   a.inputMetric,
		outputMeasure: a.outputMeasure,
		dIn:           a.dIn,
		compose:       compose,
		sequential:    cfg.sequential,
		logger:        cfg.logger,
		ledger:        cfg.ledger,
		parent:        a,
		active:        -1,
	}
	empty, err := compose(nil)
	if err != nil {
		return nil, err
	}
	child.total = empty

	label := "child:" + child.id.String()
	slot, err := a.charge(context.Background(), -1, empty, label)
	if err != nil {
		return nil, err
	}
	child.slot = slot
	a.logger.Debug("spawned child accountant",
		zap.String("accountant", a.id.String()),
		zap.String("child", child.id.String()),
		zap.Int("slot", slot),
		zap.Bool("capped", child.capped))
	return child, nil
}

// lineage returns a and its ancestors, child first. parent links never
// change after spawn, so no lock is needed.
func (a *Accountant[TI, QI, QO]) lineage() []*Accountant[TI, QI, QO] {
	var chain []*Accountant[TI, QI, QO]
	for n := a; n != nil; n = n.parent {
		chain = append(chain, n)
	}
	return chain
}

type pending[TI, QI, QO any] struct {
	node   *Accountant[TI, QI, QO]
	slot   int
	losses []QO
	labels []string
	total  QO
}

// charge sets the loss of a's entry at slot (appending when slot < 0) and
// propagates the new total to every ancestor. Either every level passes its
// cap and the change is committed everywhere, or nothing changes.
func (a *Accountant[TI, QI, QO]) charge(ctx context.Context, slot int, loss QO, label string) (int, error) {
	chain := a.lineage()
	for _, n := range chain {
		n.mu.Lock()
	}
	defer func() {
		for i := len(chain) - 1; i >= 0; i-- {
			chain[i].mu.Unlock()
		}
	}()

	plan := make([]pending[TI, QI, QO], 0, len(chain))
	curSlot, curLoss, curLabel := slot, loss, label
	for _, n := range chain {
		if n.sequential && curSlot >= 0 && curSlot < n.active {
			return 0, errs.Errorf(errs.FailedRelation,
				"non-sequential access: entry %d of %s was superseded by entry %d", curSlot, n.id, n.active)
		}
		losses := slices.Clone(n.losses)
		labels := slices.Clone(n.labels)
		at := curSlot
		if at < 0 {
			at = len(losses)
			losses = append(losses, curLoss)
			labels = append(labels, curLabel)
		} else {
			losses[at] = curLoss
		}
		total, err := n.compose(losses)
		if err != nil {
			return 0, errs.Wrap(errs.FailedRelation, "compose", err)
		}
		if n.capped {
			ok, err := core.LessEqual(total, n.cap)
			if err != nil {
				return 0, err
			}
			if !ok {
				n.logger.Warn("admission rejected",
					zap.String("accountant", n.id.String()),
					zap.Any("total", total),
					zap.Any("cap", n.cap))
				return 0, errs.Wrap(errs.InvalidDistance,
					fmt.Sprintf("total %v would exceed %v on %s", total, n.cap, n.id), ErrBudgetExceeded)
			}
		}
		plan = append(plan, pending[TI, QI, QO]{node: n, slot: at, losses: losses, labels: labels, total: total})
		curSlot, curLoss, curLabel = n.slot, total, "child:"+n.id.String()
	}

	if a.ledger != nil {
		e := ledger.Entry{
			AccountantID: a.id.String(),
			Sequence:     plan[0].slot,
			Measurement:  label,
			Cost:         fmt.Sprint(loss),
			Total:        fmt.Sprint(plan[0].total),
			RecordedAt:   time.Now().UTC(),
		}
		if a.parent != nil {
			e.ParentID = a.parent.id.String()
		}
		if err := a.ledger.Append(ctx, e); err != nil {
			return 0, errs.Wrap(errs.FailedFunction, "ledger", err)
		}
	}

	for _, p := range plan {
		p.node.losses = p.losses
		p.node.labels = p.labels
		p.node.total = p.total
		p.node.active = max(p.node.active, p.slot)
	}
	return plan[0].slot, nil
}
