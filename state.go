package thermostate

import (
	"math"
)

// Phase is the label an equation of state assigns to a state, e.g. liquid or
// two-phase.
type Phase string

const (
	PhaseLiquid              Phase = "liquid"
	PhaseGas                 Phase = "gas"
	PhaseTwoPhase            Phase = "twophase"
	PhaseSupercritical       Phase = "supercritical"
	PhaseSupercriticalGas    Phase = "supercritical_gas"
	PhaseSupercriticalLiquid Phase = "supercritical_liquid"
	PhaseCriticalPoint       Phase = "critical_point"
	PhaseUnknown             Phase = "unknown"
	PhaseNotImposed          Phase = "not_imposed"
)

// State is a thermodynamic equilibrium state of a pure substance.
//
// A State is either empty, holding only its substance, or resolved, holding the
// two properties that fixed it and the values of every other property (all in
// canonical units) and the phase. Obtain resolved states from a Resolver; the
// zero State is empty and has no substance.
//
// A State is immutable; copies share nothing with each other or with the
// inputs they were resolved from.
type State struct {
	substance Substance
	inputs    Pair // empty while unresolved

	values  [numProperties]float64
	defined [numProperties]bool
	phase   Phase
}

// NewState returns the empty State of the given substance: the substance has
// been chosen, the point has not been fixed. It returns a *ValidationError for
// an unknown substance.
func NewState(substance string) (State, error) {
	sub, err := ParseSubstance(substance)
	if err != nil {
		return State{}, err
	}
	return State{substance: sub}, nil
}

// Substance returns the substance of the state.
func (s State) Substance() Substance { return s.substance }

// Resolved reports whether the state's properties have been resolved.
func (s State) Resolved() bool { return s.inputs != "" }

// Inputs returns the pair of properties that fixed the state, in the order they
// were supplied. It is empty for an unresolved state.
func (s State) Inputs() Pair { return s.inputs }

// Get returns the value of property p in its canonical unit.
//
// It returns ErrUnresolved if the state is not resolved, and ErrUndefined when
// p is the quality of a state outside the two-phase region. Get panics if p is
// not a known property.
func (s State) Get(p Property) (Quantity, error) {
	i := p.index()
	if i < 0 {
		panic("thermostate: unknown property " + string(p))
	}
	if !s.Resolved() {
		return Quantity{}, ErrUnresolved
	}
	if !s.defined[i] {
		return Quantity{}, ErrUndefined
	}
	return Quantity{Magnitude: s.values[i], Unit: CanonicalUnitOf(p)}, nil
}

func (s State) Temperature() (Quantity, error)    { return s.Get(T) }
func (s State) Pressure() (Quantity, error)       { return s.Get(P) }
func (s State) SpecificVolume() (Quantity, error) { return s.Get(V) }
func (s State) InternalEnergy() (Quantity, error) { return s.Get(U) }
func (s State) Enthalpy() (Quantity, error)       { return s.Get(H) }
func (s State) Entropy() (Quantity, error)        { return s.Get(S) }
func (s State) Quality() (Quantity, error)        { return s.Get(X) }
func (s State) Cp() (Quantity, error)             { return s.Get(Cp) }
func (s State) Cv() (Quantity, error)             { return s.Get(Cv) }

// Phase returns the phase label of the state, or ErrUnresolved.
func (s State) Phase() (Phase, error) {
	if !s.Resolved() {
		return "", ErrUnresolved
	}
	return s.phase, nil
}

// Pair returns the values of both properties of p, in order. Any pair allowed
// by DefaultCatalog may be requested, whichever pair fixed the state, and so may
// the pair that fixed it (in either order) even if only a custom Catalog allows
// it.
//
// It returns a *ValidationError for any other pair, and the errors of Get
// otherwise.
func (s State) Pair(p Pair) (Quantity, Quantity, error) {
	own := s.inputs != "" && (p == s.inputs || (len(p) == 2 && p.Reverse() == s.inputs))
	if len(p) != 2 || !(own || DefaultCatalog().Allowed(p)) {
		return Quantity{}, Quantity{}, &ValidationError{Reason: "property pair " + string(p) + " is not one of the allowed pairs"}
	}
	a, b := p.Split()
	qa, err := s.Get(a)
	if err != nil {
		return Quantity{}, Quantity{}, err
	}
	qb, err := s.Get(b)
	if err != nil {
		return Quantity{}, Quantity{}, err
	}
	return qa, qb, nil
}

// relTolerance is the relative tolerance of Equal.
const relTolerance = 1e-9

// Equal reports whether s and o denote the same state: both are resolved, and
// their temperatures and specific volumes are close within a small relative
// tolerance. Temperature and density are the independent variables most
// equations of state are written in.
//
// Equal returns false if either state is unresolved.
func (s State) Equal(o State) bool {
	if !s.Resolved() || !o.Resolved() {
		return false
	}
	ti, vi := T.index(), V.index()
	return isClose(s.values[ti], o.values[ti]) && isClose(s.values[vi], o.values[vi])
}

// Compare always returns ErrNoOrdering: thermodynamic states have no total
// order, so neither less-than nor greater-than is meaningful.
func (s State) Compare(State) (int, error) {
	return 0, ErrNoOrdering
}

func isClose(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= relTolerance*math.Max(math.Abs(a), math.Abs(b))
}

// set stores the canonical value of p; set is only called while resolving.
func (s *State) set(p Property, v float64) {
	i := p.index()
	s.values[i] = v
	s.defined[i] = true
}
