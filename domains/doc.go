// SPDX-License-Identifier: MIT

// Package domains provides the concrete domains of the library:
// AtomDomain for scalars and VectorDomain for sequences of atoms.
//
// Both are immutable values with structural equality. Metrics in package
// metrics declare validity against the accessor interfaces defined here
// (Atom, Vector, Sized), not against concrete types, so erased or
// user-defined domains participate as long as they expose the same shape.
package domains
