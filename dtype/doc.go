// SPDX-License-Identifier: MIT

// Package dtype maps Go carrier types to runtime type descriptors.
//
// A descriptor is the string a caller on the far side of the C boundary uses
// to name a concrete shape: "float64", "[]int32", "[]any". Parse accepts only
// shapes in the closed registry (scalars and one level of slice), so every
// descriptor it returns has a precompiled instantiation behind it in package
// ffi. Anything else fails with errs.TypeParse.
package dtype
