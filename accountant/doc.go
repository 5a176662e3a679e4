// SPDX-License-Identifier: MIT

// Package accountant implements adaptive privacy accounting: concurrent
// composition, privacy filters and privacy odometers.
//
// An Accountant is bound to one dataset, its input domain and metric, an
// output measure and an input distance d_in. Measurements are admitted one at
// a time, each possibly chosen after seeing earlier releases. On every
// admission the accountant
//
//  1. checks that the measurement's input domain, input metric and output
//     measure match its own,
//  2. evaluates the measurement's privacy map at d_in,
//  3. composes the new cost with every committed cost under the measure's
//     composition rule and compares the total with its cap and the cap of
//     every ancestor,
//  4. commits the cost (to the optional ledger first, then in memory), and
//  5. invokes the measurement on the dataset.
//
// Steps 3 and 4 run while holding the locks of the accountant and all of its
// ancestors, acquired child first, so concurrent admissions can never both
// pass the check against a stale total. A rejected admission commits
// nothing. A measurement that fails during step 5 has still been charged.
//
// A filter (NewFilter, SpawnFilter) has a hard cap. An odometer (NewOdometer,
// SpawnOdometer) has none and reports what it has consumed; Limit turns it
// into a filter. Children spawned from an accountant are charged to it as a
// single entry whose loss is the child's running total. WithSequentialAccess
// forbids spending in a child once a later child or measurement has been
// admitted.
//
// Accountant is the only mutable type in dpchain.
package accountant
