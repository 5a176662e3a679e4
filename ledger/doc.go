// SPDX-License-Identifier: MIT

// Package ledger persists the commits of privacy accountants in SQLite
// (modernc.org/sqlite, no cgo).
//
// Every admission an accountant commits is appended as one Entry before the
// accountant's running total changes; if the append fails the admission is
// rejected. Entries can be listed per accountant to audit how a budget was
// spent.
package ledger
