package providertest

import (
	"context"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/go-thermostate/go-thermostate"
)

// inputs are the two known values a provider is queried with.
type inputs struct {
	name1, name2   string
	value1, value2 float64
}

func (in inputs) String() string {
	return fmt.Sprintf("%v=%g, %v=%g", in.name1, in.value1, in.name2, in.value2)
}

// A check is any function that returns unexpected problems with the answers of
// the provider for the given inputs.
type check func(ctx context.Context, p thermostate.Provider, fluid string, in inputs) (problem string)

// Checks that the provider reports the fixture's phase and the fixture's value
// of every output.
//
// Values are compared with a relative tolerance well below the accuracy of any
// equation of state, but above the rounding of a density computed from a
// tabulated specific volume.
func reproduces(f Fixture) check {
	return func(ctx context.Context, p thermostate.Provider, fluid string, in inputs) string {
		phase, err := p.Phase(ctx, in.name1, in.value1, in.name2, in.value2, fluid)
		if err != nil {
			return fmt.Sprintf("Phase(%v) failed: %v", in, err)
		}
		if phase != f.Phase {
			return fmt.Sprintf("Phase(%v) = %q, want %q", in, phase, f.Phase)
		}

		got := make(map[string]float64, len(outputs))
		for _, out := range outputs {
			v, err := p.Property(ctx, out, in.name1, in.value1, in.name2, in.value2, fluid)
			if err != nil {
				return fmt.Sprintf("Property(%v, %v) failed: %v", out, in, err)
			}
			got[out] = v
		}
		if diff := cmp.Diff(f.Values, got, cmpopts.EquateApprox(1e-6, 1e-9)); diff != "" {
			return fmt.Sprintf("Property(%v) mismatch (-want +got):\n%v", in, diff)
		}
		return ""
	}
}

// Checks that the provider refuses to fix a state with a temperature and a
// pressure on the saturation curve.
func saturated() check {
	return func(ctx context.Context, p thermostate.Provider, fluid string, in inputs) string {
		phase, err := p.Phase(ctx, in.name1, in.value1, in.name2, in.value2, fluid)
		if err == nil {
			return fmt.Sprintf("Phase(%v) = %q, want a saturation condition", in, phase)
		}
		if !thermostate.IsSaturationCondition(err) {
			return fmt.Sprintf("Phase(%v) failed with %v, want a saturation condition", in, err)
		}
		return ""
	}
}
