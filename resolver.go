package thermostate

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/danielorbach/go-component"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Input names the value of one base property supplied to fix a state.
type Input struct {
	Property Property
	Value    Quantity
}

// In is shorthand for Input{Property: p, Value: q}.
func In(p Property, q Quantity) Input {
	return Input{Property: p, Value: q}
}

// Resolver resolves thermodynamic states from two independent properties by
// querying an equation-of-state Provider.
//
// The zero value is not usable; Units and Provider must be set, and must not
// change once the Resolver is in use. A Resolver may be used concurrently as
// long as its Units and Provider may. A Resolver must not be copied after first
// use.
type Resolver struct {
	Units    Units
	Provider Provider
	// Catalog decides which pairs of properties may fix a state. If nil, the
	// Catalog is derived from the Provider's advertised input pairs (see
	// InputPairLister) on first use, falling back to DefaultCatalog.
	Catalog *Catalog
	// Concurrency bounds the number of states ResolveAll resolves at once. Zero
	// or negative means no bound.
	Concurrency int

	deriveOnce sync.Once
	derived    *Catalog
}

func (r *Resolver) catalog() *Catalog {
	if r.Catalog != nil {
		return r.Catalog
	}
	r.deriveOnce.Do(func() {
		if l, ok := r.Provider.(InputPairLister); ok {
			r.derived = NewCatalog(l.InputPairs())
			return
		}
		r.derived = DefaultCatalog()
	})
	return r.derived
}

// Resolve returns the State of the substance fixed by the given inputs.
//
// With no inputs, Resolve returns the empty State of the substance. With two
// inputs, it validates their pair against the Catalog, checks the dimension of
// each value and converts it to its canonical unit, then queries the Provider
// for every other property and the phase.
//
// Errors are one of *ValidationError (unknown substance, not exactly zero or two
// inputs, a property that may not be an input, a pair that is not allowed, a
// value that is not finite or a specific volume that is not positive),
// *DimensionError, *IndependenceError (temperature and pressure on the
// saturation curve), or *ProviderError. Nothing is retried.
func (r *Resolver) Resolve(ctx context.Context, substance string, inputs ...Input) (s State, err error) {
	ctx, span := tracer.Start(ctx, "Resolve", trace.WithAttributes(
		attribute.String("thermostate.substance", substance),
		attribute.Int("thermostate.inputs", len(inputs)),
	))
	defer span.End()

	var sub Substance
	defer func(start time.Time) {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		measureResolution(ctx, sub, err == nil, time.Since(start))
	}(time.Now())

	sub, err = ParseSubstance(substance)
	if err != nil {
		return State{}, err
	}

	if len(inputs) == 0 {
		return State{substance: sub}, nil
	}
	if len(inputs) != 2 {
		return State{}, &ValidationError{Reason: fmt.Sprintf("incorrect number of properties specified; must be 2 or 0, got %d", len(inputs))}
	}
	for _, in := range inputs {
		if !in.Property.IsBase() {
			return State{}, &ValidationError{Reason: "the property " + string(in.Property) + " is not allowed as an input"}
		}
	}

	a, b := inputs[0], inputs[1]
	pair := MakePair(a.Property, b.Property)
	if a.Property == b.Property {
		return State{}, &ValidationError{Reason: "the property " + string(a.Property) + " was specified twice"}
	}
	if IsDenied(pair) {
		return State{}, &ValidationError{Reason: "the pair of input properties entered (" + string(pair) + ") isn't supported yet"}
	}
	if !r.catalog().Allowed(pair) {
		return State{}, &ValidationError{Reason: fmt.Sprintf("the supplied pair of properties, %s and %s, is not an implemented set of independent properties", a.Property, b.Property)}
	}
	span.SetAttributes(attribute.String("thermostate.pair", string(pair)))

	return r.resolve(ctx, sub, a, b)
}

// resolve fixes the state of sub from two inputs whose pair is allowed.
func (r *Resolver) resolve(ctx context.Context, sub Substance, a, b Input) (State, error) {
	pair := MakePair(a.Property, b.Property)
	logger := component.Logger(ctx).With("substance", sub, "pair", pair)

	ca, err := CanonicalQuantity(r.Units, a.Property, a.Value)
	if err != nil {
		return State{}, err
	}
	cb, err := CanonicalQuantity(r.Units, b.Property, b.Value)
	if err != nil {
		return State{}, err
	}
	if err := checkCanonical(a.Property, ca); err != nil {
		return State{}, err
	}
	if err := checkCanonical(b.Property, cb); err != nil {
		return State{}, err
	}

	k := known{
		name1:  NativeName(a.Property),
		value1: toNative(a.Property, ca.Magnitude),
		name2:  NativeName(b.Property),
		value2: toNative(b.Property, cb.Magnitude),
		fluid:  string(sub),
	}

	if RequiresIndependenceCheck(pair) {
		logger.Debug("Checking temperature and pressure against the saturation curve...")
		if _, err := r.Provider.Phase(ctx, k.name1, k.value1, k.name2, k.value2, k.fluid); err != nil {
			if IsSaturationCondition(err) {
				return State{}, &IndependenceError{Pair: pair, Err: err}
			}
			return State{}, &ProviderError{Op: "phase", Err: err}
		}
	}

	s := State{substance: sub, inputs: pair}
	s.set(a.Property, ca.Magnitude)
	s.set(b.Property, cb.Magnitude)

	logger.Debug("Querying the provider for the unknown properties...")
	for _, p := range unknownProperties(pair) {
		v, err := r.Provider.Property(ctx, NativeName(p), k.name1, k.value1, k.name2, k.value2, k.fluid)
		if err != nil {
			return State{}, &ProviderError{Op: "property", Property: p, Err: err}
		}
		if p == X && v == qualitySentinel {
			// Left undefined: the state is not two-phase.
			continue
		}
		s.set(p, fromNative(p, v))
	}

	phase, err := r.Provider.Phase(ctx, k.name1, k.value1, k.name2, k.value2, k.fluid)
	if err != nil {
		return State{}, &ProviderError{Op: "phase", Err: err}
	}
	s.phase = Phase(phase)

	logger.Debug("State resolved", "phase", phase)
	return s, nil
}

// checkCanonical rejects canonical values no state can have. Specific volume is
// exchanged as its inverse, so it must be strictly positive.
func checkCanonical(p Property, q Quantity) error {
	if math.IsNaN(q.Magnitude) || math.IsInf(q.Magnitude, 0) {
		return &ValidationError{Reason: fmt.Sprintf("the value of %s must be finite, got %v", p, q)}
	}
	if p == V && q.Magnitude <= 0 {
		return &ValidationError{Reason: fmt.Sprintf("the specific volume must be positive, got %v", q)}
	}
	return nil
}

// known holds the two inputs of a state in the provider's native convention.
type known struct {
	name1  string
	value1 float64
	name2  string
	value2 float64
	fluid  string
}

// unknownProperties returns the base properties not in pair, followed by the
// derived properties.
func unknownProperties(pair Pair) []Property {
	props := make([]Property, 0, numProperties-2)
	for _, p := range baseProperties {
		if !pair.Contains(p) {
			props = append(props, p)
		}
	}
	return append(props, derivedProperties[:]...)
}
