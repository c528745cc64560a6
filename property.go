package thermostate

import (
	"fmt"
	"slices"
	"strings"
)

// Property is the code of an intensive property of a thermodynamic state. The
// seven base properties (T, p, v, u, h, s and x) are identified by single-letter
// codes and may be used as inputs. The specific heats (cp and cv) can only be
// derived.
type Property string

const (
	T  Property = "T"  // temperature
	P  Property = "p"  // pressure
	V  Property = "v"  // mass-specific volume
	U  Property = "u"  // mass-specific internal energy
	H  Property = "h"  // mass-specific enthalpy
	S  Property = "s"  // mass-specific entropy
	X  Property = "x"  // quality (vapour mass fraction)
	Cp Property = "cp" // mass-specific heat capacity at constant pressure
	Cv Property = "cv" // mass-specific heat capacity at constant volume
)

// baseProperties lists the properties that may fix a state, in the order their
// single-letter codes are permuted to build pairs.
var baseProperties = [...]Property{T, P, V, U, H, S, X}

// derivedProperties can never be inputs.
var derivedProperties = [...]Property{Cp, Cv}

// allProperties lists base then derived properties, in the order a State
// stores their values.
var allProperties = [...]Property{T, P, V, U, H, S, X, Cp, Cv}

const numProperties = len(allProperties)

// Properties returns the codes of every property of a State: the base
// properties followed by the specific heats.
func Properties() []Property {
	return slices.Clone(allProperties[:])
}

// IsBase reports whether p is one of the seven properties that may be supplied
// as an input.
func (p Property) IsBase() bool {
	for _, b := range baseProperties {
		if p == b {
			return true
		}
	}
	return false
}

// index returns the position of p within a State's value arrays, or -1.
func (p Property) index() int {
	for i, x := range allProperties {
		if p == x {
			return i
		}
	}
	return -1
}

// Dimension describes the physical dimension of a quantity as the exponents of
// its base dimensions. The zero value is dimensionless.
//
// Dimension values are comparable with ==.
type Dimension struct {
	Mass        int
	Length      int
	Time        int
	Temperature int
	Amount      int
	Current     int
}

// Dimensionless reports whether d has no base dimensions.
func (d Dimension) Dimensionless() bool {
	return d == Dimension{}
}

func (d Dimension) String() string {
	if d.Dimensionless() {
		return "dimensionless"
	}
	var num, den []string
	for _, f := range []struct {
		name string
		exp  int
	}{
		{"[mass]", d.Mass},
		{"[length]", d.Length},
		{"[time]", d.Time},
		{"[temperature]", d.Temperature},
		{"[substance]", d.Amount},
		{"[current]", d.Current},
	} {
		switch {
		case f.exp == 1:
			num = append(num, f.name)
		case f.exp > 1:
			num = append(num, fmt.Sprintf("%s^%d", f.name, f.exp))
		case f.exp == -1:
			den = append(den, f.name)
		case f.exp < -1:
			den = append(den, fmt.Sprintf("%s^%d", f.name, -f.exp))
		}
	}
	s := strings.Join(num, "*")
	if s == "" {
		s = "1"
	}
	for _, x := range den {
		s += "/" + x
	}
	return s
}

var (
	energyPerMass       = Dimension{Length: 2, Time: -2}
	energyPerMassKelvin = Dimension{Length: 2, Time: -2, Temperature: -1}
)

// dimensions maps every property to its physical dimension.
var dimensions = map[Property]Dimension{
	T:  {Temperature: 1},
	P:  {Mass: 1, Length: -1, Time: -2},
	V:  {Length: 3, Mass: -1},
	U:  energyPerMass,
	H:  energyPerMass,
	S:  energyPerMassKelvin,
	X:  {},
	Cp: energyPerMassKelvin,
	Cv: energyPerMassKelvin,
}

// canonicalUnits maps every property to the unit all values are normalised to
// before being handed to a Provider.
var canonicalUnits = map[Property]string{
	T:  "kelvin",
	P:  "pascal",
	V:  "meter**3/kilogram",
	U:  "joule/kilogram",
	H:  "joule/kilogram",
	S:  "joule/(kilogram*kelvin)",
	X:  "dimensionless",
	Cp: "joule/(kilogram*kelvin)",
	Cv: "joule/(kilogram*kelvin)",
}

// DimensionOf returns the physical dimension values of property p must have.
//
// It panics if p is not a known property; property codes are fixed at compile
// time, so an unknown code is a programming error.
func DimensionOf(p Property) Dimension {
	d, ok := dimensions[p]
	if !ok {
		panic("thermostate: dimension of unknown property " + string(p))
	}
	return d
}

// CanonicalUnitOf returns the unit values of property p are stored in.
//
// It panics if p is not a known property.
func CanonicalUnitOf(p Property) string {
	u, ok := canonicalUnits[p]
	if !ok {
		panic("thermostate: canonical unit of unknown property " + string(p))
	}
	return u
}

// Pair is the two-letter key of a pair of base properties, e.g. "Tp". The order
// of the letters matters only for lookups and for the order values are returned
// in; a pair and its reverse denote the same independent set.
type Pair string

// MakePair returns the Pair formed by a followed by b. It does not check that
// the pair is allowed; see Catalog.
func MakePair(a, b Property) Pair {
	return Pair(string(a) + string(b))
}

// Split returns the two properties of the pair, in order. Split panics if p is
// not formed by two single-letter codes.
func (p Pair) Split() (Property, Property) {
	if len(p) != 2 {
		panic("thermostate: malformed property pair " + string(p))
	}
	return Property(p[0:1]), Property(p[1:2])
}

// Reverse returns the pair with its two properties swapped.
func (p Pair) Reverse() Pair {
	a, b := p.Split()
	return MakePair(b, a)
}

// Contains reports whether prop is one of the pair's properties.
func (p Pair) Contains(prop Property) bool {
	if len(p) != 2 {
		return false
	}
	a, b := p.Split()
	return prop == a || prop == b
}
