// SPDX-License-Identifier: MIT

package core

// Composer is implemented by measures with a composition rule: the total
// loss of releasing the outputs of several mechanisms, given their
// individual losses.
type Composer[Q any] interface {
	Compose(losses []Q) (Q, error)
}

// Amplifier is implemented by measures with a privacy amplification bound
// for running a mechanism on a random subset of the population.
// fraction is in (0, 1).
type Amplifier[Q any] interface {
	Amplify(loss Q, fraction float64) (Q, error)
}
