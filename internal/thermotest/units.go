package thermotest

import (
	"fmt"

	"github.com/go-thermostate/go-thermostate"
)

// unit defines how to convert magnitudes of a unit to the SI base unit of its
// dimension: base = magnitude*factor + offset.
type unit struct {
	factor    float64
	offset    float64
	dimension thermostate.Dimension
}

var (
	temperature       = thermostate.Dimension{Temperature: 1}
	pressure          = thermostate.Dimension{Mass: 1, Length: -1, Time: -2}
	specificVolume    = thermostate.Dimension{Length: 3, Mass: -1}
	density           = thermostate.Dimension{Mass: 1, Length: -3}
	specificEnergy    = thermostate.Dimension{Length: 2, Time: -2}
	specificEntropy   = thermostate.Dimension{Length: 2, Time: -2, Temperature: -1}
	molarEnergy       = thermostate.Dimension{Mass: 1, Length: 2, Time: -2, Amount: -1}
	dimensionlessUnit = thermostate.Dimension{}
)

var registry = map[string]unit{
	"kelvin": {1, 0, temperature},
	"K":      {1, 0, temperature},
	"degC":   {1, 273.15, temperature},
	"degF":   {5.0 / 9.0, 273.15 - 32*5.0/9.0, temperature},

	"pascal": {1, 0, pressure},
	"Pa":     {1, 0, pressure},
	"kPa":    {1e3, 0, pressure},
	"MPa":    {1e6, 0, pressure},
	"bar":    {1e5, 0, pressure},
	"atm":    {101325, 0, pressure},

	"meter**3/kilogram": {1, 0, specificVolume},
	"m^3/kg":            {1, 0, specificVolume},
	"L/kg":              {1e-3, 0, specificVolume},
	"cm^3/g":            {1e-3, 0, specificVolume},

	"kg/m^3": {1, 0, density},

	"joule/kilogram": {1, 0, specificEnergy},
	"J/kg":           {1, 0, specificEnergy},
	"kJ/kg":          {1e3, 0, specificEnergy},

	"joule/(kilogram*kelvin)": {1, 0, specificEntropy},
	"J/(kg*K)":                {1, 0, specificEntropy},
	"kJ/(kg*K)":               {1e3, 0, specificEntropy},

	"J/mol": {1, 0, molarEnergy},

	"dimensionless": {1, 0, dimensionlessUnit},
	"":              {1, 0, dimensionlessUnit},
	"percent":       {0.01, 0, dimensionlessUnit},
	"pct":           {0.01, 0, dimensionlessUnit},
}

// Units implements thermostate.Units for a fixed set of unit spellings, e.g.
// "K", "degC", "kPa", "kJ/kg", "kJ/(kg*K)" and "percent", alongside the
// canonical units of every property.
//
// The zero value is ready to use and safe for concurrent use.
type Units struct{}

func (Units) Dimensionality(q thermostate.Quantity) (thermostate.Dimension, error) {
	u, ok := registry[q.Unit]
	if !ok {
		return thermostate.Dimension{}, fmt.Errorf("undefined unit %q", q.Unit)
	}
	return u.dimension, nil
}

func (Units) Convert(q thermostate.Quantity, target string) (thermostate.Quantity, error) {
	from, ok := registry[q.Unit]
	if !ok {
		return thermostate.Quantity{}, fmt.Errorf("undefined unit %q", q.Unit)
	}
	to, ok := registry[target]
	if !ok {
		return thermostate.Quantity{}, fmt.Errorf("undefined unit %q", target)
	}
	if from.dimension != to.dimension {
		return thermostate.Quantity{}, fmt.Errorf("cannot convert from %q (%v) to %q (%v)", q.Unit, from.dimension, target, to.dimension)
	}
	base := q.Magnitude*from.factor + from.offset
	return thermostate.Q((base-to.offset)/to.factor, target), nil
}
