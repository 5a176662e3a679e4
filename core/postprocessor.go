// SPDX-License-Identifier: MIT

package core

import "github.com/katalvlaran/dpchain/errs"

// Postprocessor transforms the release of a measurement. It carries no
// relation: postprocessing cannot increase privacy loss.
type Postprocessor[TI, TO any] struct {
	inputDomain  Domain[TI]
	outputDomain Domain[TO]
	function     Function[TI, TO]
}

// NewPostprocessor builds a Postprocessor.
func NewPostprocessor[TI, TO any](inputDomain Domain[TI], outputDomain Domain[TO], function Function[TI, TO]) (Postprocessor[TI, TO], error) {
	if inputDomain == nil || outputDomain == nil {
		return Postprocessor[TI, TO]{}, errs.New(errs.MakeTransformation, "domains must be non-nil")
	}
	return Postprocessor[TI, TO]{inputDomain: inputDomain, outputDomain: outputDomain, function: function}, nil
}

func (p Postprocessor[TI, TO]) InputDomain() Domain[TI]    { return p.inputDomain }
func (p Postprocessor[TI, TO]) OutputDomain() Domain[TO]   { return p.outputDomain }
func (p Postprocessor[TI, TO]) Function() Function[TI, TO] { return p.function }

// Invoke applies the function.
func (p Postprocessor[TI, TO]) Invoke(arg TI) (TO, error) {
	return p.function.Eval(arg)
}
