// SPDX-License-Identifier: MIT

// Package ffi is the boundary through which callers that cannot name Go
// types drive dpchain.
//
// Every erased object lives in a process-wide handle table and is referred
// to by an opaque Handle. Each handle must be released exactly once with the
// Free function of its kind, or with Free; the table does not track
// ownership beyond that.
//
// Every entry point returns a Result: a tagged union holding either the
// success value or an ErrorRecord. ErrorRecord is the wire form of
// *errs.Error; a variant name this build does not know decodes to
// errs.NotImplemented.
//
// Generic constructors are exposed once per family and dispatched by type
// descriptor through closed tables, one entry per supported carrier:
//
//	h := ffi.MakeClamp("float64", 0.0, 1.0, 4)
//	s := ffi.MakeSizedBoundedSum("float64", 4, 0.0, 1.0)
//	l := ffi.MakeLaplace("float64", 1.0)
//
// Unsupported descriptors fail with errs.TypeParse.
package ffi
