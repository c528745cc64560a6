package thermostate

import "context"

// Provider evaluates an equation of state. Given a fluid and two known inputs,
// each identified by its native name (see below), it returns the value of any
// other property or the phase label.
//
// All values are exchanged in the provider's native SI convention: kelvin,
// pascal, kg/m^3 for density, J/kg and J/(kg*K) for mass-specific energies, and
// a vapour fraction between 0 and 1. The native names are:
//
//	T       temperature
//	P       pressure
//	DMASS   mass density (the reciprocal of specific volume)
//	UMASS   mass-specific internal energy
//	HMASS   mass-specific enthalpy
//	SMASS   mass-specific entropy
//	Q       vapour fraction; -1 when the state is not two-phase
//	CPMASS  mass-specific heat capacity at constant pressure
//	CVMASS  mass-specific heat capacity at constant volume
//
// Translating between a State's properties and these names is the job of the
// Resolver. Providers must be safe for concurrent use if states are resolved
// concurrently; they are treated as pure functions of their inputs.
type Provider interface {
	// Phase returns the phase label of the state fixed by the two inputs.
	//
	// When the inputs are a temperature and a pressure that lie on the
	// saturation curve, Phase returns an error that wraps ErrSaturation.
	Phase(ctx context.Context, name1 string, value1 float64, name2 string, value2 float64, fluid string) (string, error)
	// Property returns the value of the output property of the state fixed by
	// the two inputs.
	Property(ctx context.Context, output string, name1 string, value1 float64, name2 string, value2 float64, fluid string) (float64, error)
}

// InputPairLister is the interface implemented by Provider types that advertise
// which input pairs they accept, using the naming convention of
// NativeInputPairs.
//
// A Resolver whose Catalog is nil builds its Catalog from the advertised pairs;
// otherwise it uses DefaultCatalog.
type InputPairLister interface {
	InputPairs() []string
}

// qualitySentinel is the vapour fraction a Provider reports for states outside
// the two-phase region.
const qualitySentinel = -1.0

// nativeNames maps each property to the name a Provider knows it by.
var nativeNames = map[Property]string{
	T:  "T",
	P:  "P",
	V:  "DMASS",
	U:  "UMASS",
	H:  "HMASS",
	S:  "SMASS",
	X:  "Q",
	Cp: "CPMASS",
	Cv: "CVMASS",
}

// NativeName returns the name a Provider knows property p by. Specific volume is
// exchanged as mass density, and quality as vapour fraction.
//
// It panics if p is not a known property.
func NativeName(p Property) string {
	n, ok := nativeNames[p]
	if !ok {
		panic("thermostate: native name of unknown property " + string(p))
	}
	return n
}

// toNative translates a canonical value of p into the value a Provider expects.
func toNative(p Property, v float64) float64 {
	if p == V {
		return 1 / v
	}
	return v
}

// fromNative translates a value reported by a Provider for p into its
// canonical value.
func fromNative(p Property, v float64) float64 {
	if p == V {
		return 1 / v
	}
	return v
}
