package thermostate

import (
	"slices"
	"strings"
)

// Substance identifies a pure substance whose states can be resolved. The set of
// substances is closed; use ParseSubstance to obtain a valid Substance from
// arbitrary input.
type Substance string

const (
	Air       Substance = "AIR"
	Ammonia   Substance = "AMMONIA"
	Water     Substance = "WATER"
	Propane   Substance = "PROPANE"
	R134a     Substance = "R134A"
	R22       Substance = "R22"
	Isobutane Substance = "ISOBUTANE"
)

var substances = []Substance{Air, Ammonia, Water, Propane, R134a, R22, Isobutane}

// Substances returns the allowed substances in their canonical (upper-case)
// spelling.
func Substances() []Substance {
	return slices.Clone(substances)
}

// ParseSubstance normalises the given name (surrounding whitespace and letter
// case are ignored) and returns the matching Substance. It returns a
// *ValidationError if the name does not denote an allowed substance.
func ParseSubstance(name string) (Substance, error) {
	s := Substance(strings.ToUpper(strings.TrimSpace(name)))
	if !slices.Contains(substances, s) {
		return "", &ValidationError{Reason: name + " is not an allowed substance; choose one of " + joinSubstances()}
	}
	return s, nil
}

func joinSubstances() string {
	names := make([]string, len(substances))
	for i, s := range substances {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
