// SPDX-License-Identifier: MIT

package accountant

import (
	"context"

	"go.uber.org/zap"

	"github.com/katalvlaran/dpchain/core"
	"github.com/katalvlaran/dpchain/errs"
)

// Admit charges m against acc and, once committed, releases m on acc's
// dataset. See AdmitContext.
func Admit[TI, TO, QI, QO any](acc *Accountant[TI, QI, QO], m core.Measurement[TI, TO, QI, QO]) (TO, error) {
	return AdmitContext(context.Background(), acc, m)
}

// AdmitContext is Admit with a context for the ledger append.
//
// The measurement must share acc's input domain, input metric and output
// measure. Its cost is m.Map(d_in). A rejected admission leaves every total
// unchanged; a measurement that fails after its cost was committed keeps
// the charge.
func AdmitContext[TI, TO, QI, QO any](ctx context.Context, acc *Accountant[TI, QI, QO], m core.Measurement[TI, TO, QI, QO]) (TO, error) {
	var zero TO
	if acc == nil {
		return zero, errs.New(errs.FailedFunction, "accountant is nil")
	}
	if !acc.inputDomain.Equal(m.InputDomain()) {
		return zero, errs.New(errs.DomainMismatch, core.MismatchMessage("input domain", acc.inputDomain, m.InputDomain()))
	}
	if !acc.inputMetric.Equal(m.InputMetric()) {
		return zero, errs.New(errs.MetricMismatch, core.MismatchMessage("input metric", acc.inputMetric, m.InputMetric()))
	}
	if !acc.outputMeasure.Equal(m.OutputMeasure()) {
		return zero, errs.New(errs.MeasureMismatch, core.MismatchMessage("output measure", acc.outputMeasure, m.OutputMeasure()))
	}

	cost, err := m.Map(acc.dIn)
	if err != nil {
		return zero, err
	}
	if err := core.ValidateDistance(cost); err != nil {
		return zero, errs.Wrap(errs.FailedRelation, "measurement cost", err)
	}

	slot, err := acc.charge(ctx, -1, cost, m.OutputDomain().String())
	if err != nil {
		return zero, err
	}
	acc.logger.Debug("admitted measurement",
		zap.String("accountant", acc.id.String()),
		zap.Int("slot", slot),
		zap.Any("cost", cost))

	out, err := m.Invoke(acc.data)
	if err != nil {
		acc.logger.Warn("admitted measurement failed; cost remains charged",
			zap.String("accountant", acc.id.String()),
			zap.Int("slot", slot),
			zap.Error(err))
		return zero, err
	}
	return out, nil
}

// Check reports whether m could be admitted now without exceeding any cap.
// Nothing is committed.
func Check[TI, TO, QI, QO any](acc *Accountant[TI, QI, QO], m core.Measurement[TI, TO, QI, QO]) (bool, error) {
	cost, err := m.Map(acc.dIn)
	if err != nil {
		return false, err
	}
	chain := acc.lineage()
	for _, n := range chain {
		n.mu.Lock()
	}
	defer func() {
		for i := len(chain) - 1; i >= 0; i-- {
			chain[i].mu.Unlock()
		}
	}()
	curSlot, curLoss := -1, cost
	for _, n := range chain {
		if n.sequential && curSlot >= 0 && curSlot < n.active {
			return false, nil
		}
		losses := append([]QO(nil), n.losses...)
		if curSlot < 0 {
			losses = append(losses, curLoss)
		} else {
			losses[curSlot] = curLoss
		}
		total, err := n.compose(losses)
		if err != nil {
			return false, err
		}
		if n.capped {
			ok, err := core.LessEqual(total, n.cap)
			if err != nil || !ok {
				return false, err
			}
		}
		curSlot, curLoss = n.slot, total
	}
	return true, nil
}
