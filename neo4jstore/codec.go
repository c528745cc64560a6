package neo4jstore

import (
	"fmt"
	"reflect"

	"github.com/go-thermostate/go-thermostate"
)

// Node properties other than the values of the state's properties, which are
// keyed by their property code (e.g. "T" or "cp").
const (
	substanceKey = "substance"
	inputsKey    = "inputs"
	phaseKey     = "phase"
)

// formatState returns the node properties representing st.
func formatState(st thermostate.State) map[string]any {
	r := st.Record()
	props := map[string]any{
		substanceKey: string(r.Substance),
		inputsKey:    string(r.Inputs),
		phaseKey:     string(r.Phase),
	}
	for p, v := range r.Values {
		props[string(p)] = v
	}
	return props
}

// parseState reconstructs the state represented by the given node properties.
// Properties it does not know, such as timestamps, are ignored.
func parseState(props map[string]any) (thermostate.State, error) {
	var r thermostate.Record
	var err error
	if r.Substance, err = stringProp[thermostate.Substance](props, substanceKey); err != nil {
		return thermostate.State{}, err
	}
	if r.Inputs, err = stringProp[thermostate.Pair](props, inputsKey); err != nil {
		return thermostate.State{}, err
	}
	if r.Phase, err = stringProp[thermostate.Phase](props, phaseKey); err != nil {
		return thermostate.State{}, err
	}

	if r.Inputs != "" {
		r.Values = make(map[thermostate.Property]float64)
		for _, p := range thermostate.Properties() {
			prop, ok := props[string(p)]
			if !ok {
				continue // Record.State reports what is missing
			}
			v, ok := prop.(float64)
			if !ok {
				return thermostate.State{}, fmt.Errorf("property %v: %w", p, unexpectedPropertyTypeError{Type: reflect.TypeOf(prop)})
			}
			r.Values[p] = v
		}
	}
	return r.State()
}

func stringProp[T ~string](props map[string]any, key string) (T, error) {
	prop, ok := props[key]
	if !ok {
		return "", fmt.Errorf("%v: %w", key, errPropertyNotFound)
	}
	s, ok := prop.(string)
	if !ok {
		return "", fmt.Errorf("%v: %w", key, unexpectedPropertyTypeError{Type: reflect.TypeOf(prop)})
	}
	return T(s), nil
}
