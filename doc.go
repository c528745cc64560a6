// Package thermostate provides a library for resolving thermodynamic states of
// pure substances. A state is a single equilibrium point fixed by two
// independent intensive properties (e.g. temperature and pressure) from which
// every other supported property and the phase label are derived.
//
// Specifically, the package validates the pair of properties a caller supplies
// against a Catalog of independent pairs, checks that each value carries the
// physical dimension expected of its property, normalises both values to
// canonical SI units, and then queries an equation-of-state Provider for the
// remaining properties.
//
// The package does not implement an equation of state, nor does it parse unit
// strings. Both concerns are delegated to collaborators that implement the
// Provider and Units interfaces respectively. The tabulated sub-package offers a
// Provider backed by tables of precomputed points, and providertest checks other
// Provider implementations.
//
// Resolved states can be exchanged as Records, answered to requests arriving
// over a pubsub subscription (see NewResolverProcedure), and persisted with the
// neo4jstore sub-package.
package thermostate
