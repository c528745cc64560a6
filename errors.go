package thermostate

import (
	"errors"
	"strings"
)

var (
	// ErrUnresolved is returned by the accessors of a State that holds only a
	// substance, i.e. whose point has not been fixed.
	ErrUnresolved = errors.New("state is not resolved")
	// ErrUndefined is returned when reading the quality of a state outside the
	// two-phase region, where quality has no meaning.
	ErrUndefined = errors.New("quality is undefined outside the two-phase region")
	// ErrNoOrdering is returned by State.Compare; thermodynamic states have no
	// total order.
	ErrNoOrdering = errors.New("states cannot be ordered")
	// ErrSaturation is wrapped by Provider implementations to report that a
	// temperature and pressure lie on the saturation curve.
	ErrSaturation = errors.New("saturation pressure")
)

// A ValidationError reports a caller mistake in the request to resolve a state:
// an unknown substance, the wrong number of properties, a property that may not
// be an input, or a pair of properties that cannot fix a state.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "thermostate: " + e.Reason
}

// A DimensionError reports that a value does not have the physical dimension of
// the property it was supplied for.
//
// Got is the zero Dimension when the dimension could not be determined; Err
// then holds the cause.
type DimensionError struct {
	Property Property
	Want     Dimension
	Got      Dimension
	Err      error
}

func (e *DimensionError) Error() string {
	msg := "thermostate: the dimensions for " + string(e.Property) + " must be " + e.Want.String()
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg + "; got " + e.Got.String()
}

func (e *DimensionError) Unwrap() error { return e.Err }

// An IndependenceError reports that two dimensionally valid values do not fix a
// state because they are not independent at that point; temperature and
// pressure on the saturation curve, for example.
type IndependenceError struct {
	Pair Pair
	Err  error
}

func (e *IndependenceError) Error() string {
	a, b := e.Pair.Split()
	return "thermostate: the given values for " + string(a) + " and " + string(b) + " are not independent"
}

func (e *IndependenceError) Unwrap() error { return e.Err }

// A ProviderError wraps any failure of the equation-of-state Provider. The
// original error is available through errors.Unwrap (and errors.Is/As).
type ProviderError struct {
	Op       string   // "phase" or "property"
	Property Property // the queried property; empty for phase queries
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Property != "" {
		return "thermostate: provider " + e.Op + " " + string(e.Property) + ": " + e.Err.Error()
	}
	return "thermostate: provider " + e.Op + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsSaturationCondition reports whether err is the Provider's way of saying
// that temperature and pressure inputs lie on the saturation curve. Providers
// should wrap ErrSaturation; errors whose message mentions a saturation pressure
// are recognised as well, for providers that only report text.
func IsSaturationCondition(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrSaturation) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "saturation pressure")
}
