package thermostate_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/go-thermostate/go-thermostate"
	"github.com/go-thermostate/go-thermostate/internal/thermotest"
	"github.com/go-thermostate/go-thermostate/tabulated"
)

// This example resolves the state of water from its temperature and pressure,
// using a table of reference points as the equation of state.
func ExampleResolver_Resolve() {
	ctx := context.Background()

	// A real program would open a table that was filled beforehand, or use a
	// Provider wrapping a full equation of state.
	dir, err := os.MkdirTemp("", "thermostate")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)
	table, err := tabulated.Open(ctx, dir+"/points.db")
	if err != nil {
		log.Fatal(err)
	}
	defer table.Close()
	if err := table.Insert(ctx, thermotest.Water()...); err != nil {
		log.Fatal(err)
	}

	r := &thermostate.Resolver{Units: thermotest.Units{}, Provider: table}
	s, err := r.Resolve(ctx, "water",
		thermostate.In(thermostate.T, thermostate.Q(126.85, "degC")),
		thermostate.In(thermostate.P, thermostate.Q(1, "atm")),
	)
	if err != nil {
		log.Fatal(err)
	}

	phase, _ := s.Phase()
	h, _ := s.Enthalpy()
	v, _ := s.SpecificVolume()
	fmt.Println(phase)
	fmt.Printf("h = %.5g %s\n", h.Magnitude, h.Unit)
	fmt.Printf("v = %.5g %s\n", v.Magnitude, v.Unit)

	// Quality has no meaning outside the two-phase region.
	_, err = s.Quality()
	fmt.Println(errors.Is(err, thermostate.ErrUndefined))

	// At the boiling point, temperature and pressure do not fix the state.
	_, err = r.Resolve(ctx, "water",
		thermostate.In(thermostate.T, thermostate.Q(100, "degC")),
		thermostate.In(thermostate.P, thermostate.Q(1, "atm")),
	)
	var ierr *thermostate.IndependenceError
	fmt.Println(errors.As(err, &ierr))

	// Output:
	// gas
	// h = 2.7303e+06 joule/kilogram
	// v = 1.8034 meter**3/kilogram
	// true
	// true
}

func ExampleDefaultCatalog() {
	c := thermostate.DefaultCatalog()
	fmt.Println(c.IsAllowed(thermostate.P, thermostate.H))
	fmt.Println(c.IsAllowed(thermostate.H, thermostate.P))
	fmt.Println(c.IsAllowed(thermostate.T, thermostate.H))
	// Output:
	// true
	// true
	// false
}
