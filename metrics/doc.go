// SPDX-License-Identifier: MIT

// Package metrics provides the input and output metrics of the library.
//
// Dataset metrics count how many records two datasets differ by and use
// uint32 distances:
//
//	SymmetricDistance    - size of the multiset symmetric difference.
//	InsertDeleteDistance - insertions and deletions, order preserved.
//	ChangeOneDistance    - record substitutions; sized vectors only.
//	HammingDistance      - differing positions; sized vectors only.
//
// Sensitivity metrics bound how far two aggregates can be, with distance type Q:
//
//	AbsoluteDistance[Q] - |a − b| between scalars.
//	L1Distance[Q]       - Σ|aᵢ − bᵢ| between numeric vectors.
//	L2Distance[Q]       - √Σ(aᵢ − bᵢ)² between numeric vectors.
//
// DiscreteDistance is 0 when two scalars are equal and 1 otherwise.
//
// Every metric implements core.SpaceChecker to declare which domains it is
// valid over.
package metrics
