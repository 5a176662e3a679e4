// SPDX-License-Identifier: MIT

package ffi

import (
	"context"
	"sync"

	"github.com/katalvlaran/dpchain/accountant"
	"github.com/katalvlaran/dpchain/erased"
)

type erasedAccountant = accountant.Accountant[*erased.Object, *erased.Object, *erased.Object]

var ledgerMu sync.RWMutex
var sharedLedger accountant.Ledger

// SetLedger records the commits of accountants created afterwards in l.
// nil stops recording.
func SetLedger(l accountant.Ledger) {
	ledgerMu.Lock()
	defer ledgerMu.Unlock()
	sharedLedger = l
}

func accountantOptions() []accountant.Option {
	opts := []accountant.Option{accountant.WithLogger(log())}
	ledgerMu.RLock()
	defer ledgerMu.RUnlock()
	if sharedLedger != nil {
		opts = append(opts, accountant.WithLedger(sharedLedger))
	}
	return opts
}

type accountantArgs struct {
	data    *erased.Object
	domain  *erased.Domain
	metric  *erased.Metric
	measure *erased.Measure
	dIn     *erased.Object
}

func resolveAccountantArgs(data, domain, metric, measure, dIn Handle) (accountantArgs, error) {
	var a accountantArgs
	var err error
	if a.data, err = get[*erased.Object](data); err != nil {
		return a, err
	}
	if a.domain, err = get[*erased.Domain](domain); err != nil {
		return a, err
	}
	if a.metric, err = get[*erased.Metric](metric); err != nil {
		return a, err
	}
	if a.measure, err = get[*erased.Measure](measure); err != nil {
		return a, err
	}
	a.dIn, err = get[*erased.Object](dIn)
	return a, err
}

// AccountantFilter binds a privacy filter with budget (dIn, dOut) to data.
func AccountantFilter(data, domain, metric, measure, dIn, dOut Handle) Result[Handle] {
	a, err := resolveAccountantArgs(data, domain, metric, measure, dIn)
	if err != nil {
		return fail[Handle]("accountant_filter", err)
	}
	out, err := get[*erased.Object](dOut)
	if err != nil {
		return fail[Handle]("accountant_filter", err)
	}
	acc, err := accountant.NewFilter(a.data, a.domain, a.metric, a.measure, a.dIn, out, accountantOptions()...)
	return result("accountant_filter", acc, err)
}

// AccountantOdometer binds an uncapped privacy odometer to data.
func AccountantOdometer(data, domain, metric, measure, dIn Handle) Result[Handle] {
	a, err := resolveAccountantArgs(data, domain, metric, measure, dIn)
	if err != nil {
		return fail[Handle]("accountant_odometer", err)
	}
	acc, err := accountant.NewOdometer[*erased.Object, *erased.Object, *erased.Object](
		a.data, a.domain, a.metric, a.measure, a.dIn, accountantOptions()...)
	return result("accountant_odometer", acc, err)
}

// AccountantSpawnFilter returns a child filter capped at dOut.
func AccountantSpawnFilter(acc, dOut Handle) Result[Handle] {
	a, err := get[*erasedAccountant](acc)
	if err != nil {
		return fail[Handle]("accountant_spawn_filter", err)
	}
	out, err := get[*erased.Object](dOut)
	if err != nil {
		return fail[Handle]("accountant_spawn_filter", err)
	}
	child, err := a.SpawnFilter(out)
	return result("accountant_spawn_filter", child, err)
}

// AccountantSpawnOdometer returns an uncapped child.
func AccountantSpawnOdometer(acc Handle) Result[Handle] {
	a, err := get[*erasedAccountant](acc)
	if err != nil {
		return fail[Handle]("accountant_spawn_odometer", err)
	}
	child, err := a.SpawnOdometer()
	return result("accountant_spawn_odometer", child, err)
}

// AccountantAdmit charges the measurement behind m and releases it on the
// accountant's data.
func AccountantAdmit(acc, m Handle) Result[Handle] {
	a, err := get[*erasedAccountant](acc)
	if err != nil {
		return fail[Handle]("accountant_admit", err)
	}
	me, err := get[erased.Measurement](m)
	if err != nil {
		return fail[Handle]("accountant_admit", err)
	}
	out, err := accountant.AdmitContext(context.Background(), a, me)
	return result("accountant_admit", out, err)
}

// AccountantCheck reports whether m could be admitted without exceeding a cap.
func AccountantCheck(acc, m Handle) Result[bool] {
	a, err := get[*erasedAccountant](acc)
	if err != nil {
		return fail[bool]("accountant_check", err)
	}
	me, err := get[erased.Measurement](m)
	if err != nil {
		return fail[bool]("accountant_check", err)
	}
	ok, err := accountant.Check(a, me)
	return value("accountant_check", ok, err)
}

// AccountantConsumed returns a new object handle holding the consumed loss.
func AccountantConsumed(acc Handle) Result[Handle] {
	a, err := get[*erasedAccountant](acc)
	if err != nil {
		return fail[Handle]("accountant_consumed", err)
	}
	return result("accountant_consumed", a.Consumed(), nil)
}

// AccountantLimit caps an odometer at dOut.
func AccountantLimit(acc, dOut Handle) *ErrorRecord {
	a, err := get[*erasedAccountant](acc)
	if err != nil {
		return record("accountant_limit", err)
	}
	out, err := get[*erased.Object](dOut)
	if err != nil {
		return record("accountant_limit", err)
	}
	if err := a.Limit(out); err != nil {
		return record("accountant_limit", err)
	}
	return nil
}

// AccountantFree releases an accountant handle. Children stay valid.
func AccountantFree(h Handle) *ErrorRecord { return release[*erasedAccountant](h) }
