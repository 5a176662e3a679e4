// SPDX-License-Identifier: MIT

// Package measures provides the privacy measures of the library and their
// composition and amplification rules.
//
//	MaxDivergence[Q]              - pure ε-DP; distance Q; losses add.
//	FixedSmoothedMaxDivergence[Q] - (ε, δ)-DP; distance EpsDelta[Q]; ε and δ add.
//	SmoothedMaxDivergence[Q]      - approximate DP as a curve δ ↦ ε; distance PrivacyCurve[Q].
//	ZeroConcentratedDivergence[Q] - ρ-zCDP; distance Q; losses add.
//
// A measure with a composition rule implements core.Composer; one with an
// amplification-by-subsampling bound implements core.Amplifier. All
// arithmetic rounds toward +∞.
package measures
