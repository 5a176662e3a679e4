// SPDX-License-Identifier: MIT

package combinators

// CompositionOption configures MakeBasicComposition.
type CompositionOption[Q any] func(*compositionConfig[Q])

type compositionConfig[Q any] struct {
	compose func([]Q) (Q, error)
}

// WithComposer overrides the measure's composition rule. Panics on nil fn.
func WithComposer[Q any](fn func(losses []Q) (Q, error)) CompositionOption[Q] {
	if fn == nil {
		panic("combinators: WithComposer(nil)")
	}
	return func(c *compositionConfig[Q]) { c.compose = fn }
}
