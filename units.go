package thermostate

import (
	"fmt"
	"strconv"
)

// Quantity is a magnitude expressed in a unit. The unit is an opaque string
// interpreted by a Units implementation (e.g. "kelvin", "kPa", "kJ/(kg*K)").
type Quantity struct {
	Magnitude float64
	Unit      string
}

// Q is shorthand for Quantity{Magnitude: magnitude, Unit: unit}.
func Q(magnitude float64, unit string) Quantity {
	return Quantity{Magnitude: magnitude, Unit: unit}
}

func (q Quantity) String() string {
	return strconv.FormatFloat(q.Magnitude, 'g', -1, 64) + " " + q.Unit
}

// Units parses physical quantities to report their dimension and converts them
// between compatible units. It is the unit-registry collaborator of a Resolver;
// the package itself holds no conversion tables.
//
// Implementations must be safe for concurrent use if states are resolved
// concurrently.
type Units interface {
	// Dimensionality returns the physical dimension of q's unit, or an error if
	// the unit is unknown.
	Dimensionality(q Quantity) (Dimension, error)
	// Convert returns q expressed in the given unit. It fails if the units are
	// incompatible.
	Convert(q Quantity, unit string) (Quantity, error)
}

// CanonicalQuantity checks that q has the dimension of property p and returns it
// converted to p's canonical unit.
//
// The dimension is checked before converting, so a value of the wrong dimension
// is never converted. A mismatch, an unknown unit, or a failed conversion is
// reported as a *DimensionError.
func CanonicalQuantity(units Units, p Property, q Quantity) (Quantity, error) {
	want := DimensionOf(p)
	got, err := units.Dimensionality(q)
	if err != nil {
		return Quantity{}, &DimensionError{Property: p, Want: want, Err: err}
	}
	if got != want {
		return Quantity{}, &DimensionError{Property: p, Want: want, Got: got}
	}
	c, err := units.Convert(q, CanonicalUnitOf(p))
	if err != nil {
		return Quantity{}, &DimensionError{Property: p, Want: want, Got: got, Err: fmt.Errorf("convert %v: %w", q, err)}
	}
	return c, nil
}
