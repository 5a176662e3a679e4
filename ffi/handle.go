// SPDX-License-Identifier: MIT
// Package: dpchain/ffi
//
// handle.go: the process-wide table of opaque handles.
//
// Contract:
//   - Handles are never reused; zero is never issued.
//   - The table is safe for concurrent use.
//   - A freed handle is gone for every typed accessor.
//
// Complexity:
//   - put, get and remove are O(1) under one mutex.
//
// Errors:
//   - FFI for unknown handles or a handle of the wrong kind.

package ffi

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/katalvlaran/dpchain/erased"
	"github.com/katalvlaran/dpchain/errs"
)

// Handle is an opaque reference to an object in the handle table. The zero
// Handle is never issued.
type Handle uint64

type table struct {
	mu   sync.Mutex
	next Handle
	objs map[Handle]any
}

var handles = &table{objs: make(map[Handle]any)}

func (t *table) put(v any) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.objs[t.next] = v
	return t.next
}

func (t *table) get(h Handle) (any, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.objs[h]
	return v, ok
}

func (t *table) remove(h Handle) (any, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.objs[h]
	delete(t.objs, h)
	return v, ok
}

// Len returns the number of live handles.
func Len() int {
	handles.mu.Lock()
	defer handles.mu.Unlock()
	return len(handles.objs)
}

func unknown(h Handle) error {
	return errs.Errorf(errs.FFI, "unknown handle %d", h)
}

func get[T any](h Handle) (T, error) {
	var zero T
	v, ok := handles.get(h)
	if !ok {
		return zero, unknown(h)
	}
	x, ok := v.(T)
	if !ok {
		return zero, errs.Errorf(errs.FFI, "handle %d is a %s, expected %s", h, kindOf(v), kindOf(zero))
	}
	return x, nil
}

func release[T any](h Handle) *ErrorRecord {
	if _, err := get[T](h); err != nil {
		return record("free", err)
	}
	handles.remove(h)
	log().Debug("handle freed", zap.Uint64("handle", uint64(h)))
	return nil
}

// Free releases h whatever its kind.
func Free(h Handle) *ErrorRecord {
	if _, ok := handles.remove(h); !ok {
		return record("free", unknown(h))
	}
	log().Debug("handle freed", zap.Uint64("handle", uint64(h)))
	return nil
}

func kindOf(v any) string {
	if _, ok := v.(*erasedAccountant); ok {
		return "Accountant"
	}
	if k := erased.Kind(v); k != "unknown" {
		return k
	}
	return fmt.Sprintf("%T", v)
}

// Kind names the kind of object behind h.
func Kind(h Handle) Result[string] {
	v, ok := handles.get(h)
	if !ok {
		return fail[string]("kind", unknown(h))
	}
	return okay(kindOf(v))
}

// Register stores an erased object built in Go and returns its handle.
func Register(v any) Result[Handle] {
	switch v.(type) {
	case *erased.Object, *erased.Domain, *erased.Metric, *erased.Measure,
		erased.Transformation, erased.Measurement, erased.Postprocessor, *erasedAccountant:
		return okay(handles.put(v))
	}
	return fail[Handle]("register", errs.Errorf(errs.FFI, "cannot register %T", v))
}

// Lookup returns the object behind h.
func Lookup(h Handle) Result[any] {
	v, ok := handles.get(h)
	if !ok {
		return fail[any]("lookup", unknown(h))
	}
	return okay(v)
}
