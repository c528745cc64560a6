package thermostate

import "fmt"

// Record is the exported representation of a State, suitable for encoding
// (e.g. with gob) and for persistence.
//
// Values holds the canonical magnitude of every defined property. An undefined
// quality is absent from Values. An empty Inputs denotes an unresolved state,
// in which case Values and Phase are empty too.
type Record struct {
	Substance Substance
	Inputs    Pair
	Values    map[Property]float64
	Phase     Phase
}

// Record returns the exported representation of s.
func (s State) Record() Record {
	r := Record{Substance: s.substance, Inputs: s.inputs, Phase: s.phase}
	if !s.Resolved() {
		return r
	}
	r.Values = make(map[Property]float64, numProperties)
	for _, p := range allProperties {
		if i := p.index(); s.defined[i] {
			r.Values[p] = s.values[i]
		}
	}
	return r
}

// State reconstructs the State represented by r.
//
// It returns a *ValidationError if the substance is not allowed, if the input
// pair is not two distinct base properties or is denied, or if a property other
// than quality is missing from Values. The pair is not checked against any
// Catalog, so states resolved under a custom Catalog survive the round trip.
func (r Record) State() (State, error) {
	sub, err := ParseSubstance(string(r.Substance))
	if err != nil {
		return State{}, err
	}
	s := State{substance: sub}
	if r.Inputs == "" {
		return s, nil
	}
	if !isInputPair(r.Inputs) {
		return State{}, &ValidationError{Reason: "record of " + string(sub) + " has a disallowed input pair " + string(r.Inputs)}
	}
	s.inputs = r.Inputs
	s.phase = r.Phase
	for _, p := range allProperties {
		v, ok := r.Values[p]
		if !ok {
			if p == X && !r.Inputs.Contains(X) {
				continue
			}
			return State{}, &ValidationError{Reason: fmt.Sprintf("record of %s is missing property %s", sub, p)}
		}
		s.set(p, v)
	}
	return s, nil
}

// isInputPair reports whether p is formed by two distinct base properties and
// is not denied, that is whether some Catalog may allow it.
func isInputPair(p Pair) bool {
	if len(p) != 2 {
		return false
	}
	a, b := p.Split()
	return a != b && a.IsBase() && b.IsBase() && !IsDenied(p)
}
