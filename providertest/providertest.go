// Package providertest checks that a thermostate.Provider behaves the way a
// thermostate.Resolver relies on.
//
// Provider implementations call Run from their own tests, passing the reference
// states they are expected to reproduce.
package providertest

import (
	"context"
	"fmt"
	"runtime"
	"testing"

	"github.com/go-thermostate/go-thermostate"
)

// A Fixture is a reference state of a fluid: the value of every native property
// and the phase label the provider under test must report for it.
type Fixture struct {
	// Name identifies the fixture in test output.
	Name  string
	Fluid string
	// Values holds the value of every property by its native name (T, P, DMASS,
	// UMASS, HMASS, SMASS, Q, CPMASS and CVMASS). Q is -1 outside the two-phase
	// region.
	Values map[string]float64
	Phase  string
	// Location points at the declaration of the fixture, see Here.
	Location string
}

// Here returns the file and line of its caller. Set Fixture.Location with it to
// guide developers to the fixture of a failing case.
func Here() string {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		panic("runtime.Caller failed")
	}
	return fmt.Sprintf("%v:%v", file, line)
}

// outputs are the native names of every property a Resolver queries.
var outputs = []string{"T", "P", "DMASS", "UMASS", "HMASS", "SMASS", "Q", "CPMASS", "CVMASS"}

// Run checks the provider against every fixture, fixing each fixture's state
// with every pair of inputs allowed by thermostate.DefaultCatalog.
//
// For every pair, the provider must report the fixture's value of every output
// and its phase. Quality only fixes states inside the two-phase region, so pairs
// that include quality are skipped for other fixtures. Temperature and pressure
// do not fix a two-phase state; there the provider must report a saturation
// condition instead (see thermostate.IsSaturationCondition).
//
// We use the background context because this suite checks the correctness of
// providers, not how they react to deadlines or cancellation.
func Run(t *testing.T, provider thermostate.Provider, fixtures []Fixture) {
	t.Helper()
	ctx := context.Background()

	for _, f := range fixtures {
		t.Run(f.Name, func(t *testing.T) {
			if f.Location != "" {
				t.Logf("Read the source for fixture %v at %v", f.Name, f.Location)
			}
			for _, pair := range thermostate.DefaultCatalog().Pairs() {
				a, b := pair.Split()
				in := inputs{
					name1:  thermostate.NativeName(a),
					name2:  thermostate.NativeName(b),
					value1: f.Values[thermostate.NativeName(a)],
					value2: f.Values[thermostate.NativeName(b)],
				}
				if pair.Contains(thermostate.X) && f.Values["Q"] < 0 {
					continue
				}

				var c check
				if thermostate.RequiresIndependenceCheck(pair) && f.Phase == string(thermostate.PhaseTwoPhase) {
					c = saturated()
				} else {
					c = reproduces(f)
				}
				if problem := c(ctx, provider, f.Fluid, in); problem != "" {
					t.Errorf("Pair %v: %v", pair, problem)
				}
			}
		})
	}
}
