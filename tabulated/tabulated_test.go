package tabulated_test

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-thermostate/go-thermostate"
	"github.com/go-thermostate/go-thermostate/internal/thermotest"
	"github.com/go-thermostate/go-thermostate/providertest"
	"github.com/go-thermostate/go-thermostate/tabulated"
)

func fixture(name string, pt tabulated.Point, location string) providertest.Fixture {
	return providertest.Fixture{
		Name:  name,
		Fluid: pt.Fluid,
		Values: map[string]float64{
			"T":      pt.T,
			"P":      pt.P,
			"DMASS":  pt.Rho,
			"UMASS":  pt.U,
			"HMASS":  pt.H,
			"SMASS":  pt.S,
			"Q":      pt.Q,
			"CPMASS": pt.Cp,
			"CVMASS": pt.Cv,
		},
		Phase:    pt.Phase,
		Location: location,
	}
}

func TestTable(t *testing.T) {
	table := thermotest.NewTable(t)
	providertest.Run(t, table, []providertest.Fixture{
		fixture("water-liquid", thermotest.WaterLiquid, providertest.Here()),
		fixture("water-saturated-liquid", thermotest.WaterSaturatedLiquid, providertest.Here()),
		fixture("water-mixture", thermotest.WaterMixture, providertest.Here()),
		fixture("water-saturated-vapour", thermotest.WaterSaturatedVapour, providertest.Here()),
		fixture("water-vapour", thermotest.WaterVapour, providertest.Here()),
		fixture("air-ambient", thermotest.AirAmbient, providertest.Here()),
	})
}

func TestTable_Points(t *testing.T) {
	table := thermotest.NewTable(t)
	got, err := table.Points(context.Background(), "water")
	if err != nil {
		t.Fatalf("Points() failed: %v", err)
	}
	if diff := cmp.Diff(thermotest.Water(), got); diff != "" {
		t.Errorf("Points() mismatch (-want +got):\n%v", diff)
	}
}

func TestTable_Insert(t *testing.T) {
	ctx := context.Background()
	table, err := tabulated.Open(ctx, filepath.Join(t.TempDir(), "points.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer table.Close()

	pt := thermotest.AirAmbient
	pt.Fluid = "air"
	if err := table.Insert(ctx, pt); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	got, err := table.Points(ctx, "AIR")
	if err != nil {
		t.Fatalf("Points() failed: %v", err)
	}
	if diff := cmp.Diff([]tabulated.Point{thermotest.AirAmbient}, got); diff != "" {
		t.Errorf("Points() mismatch (-want +got):\n%v", diff)
	}
}

func TestTable_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "points.db")

	table, err := tabulated.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := table.Insert(ctx, thermotest.Water()...); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	if err := table.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	// The schema already exists; opening again must keep the points.
	table, err = tabulated.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open() again failed: %v", err)
	}
	defer table.Close()
	got, err := table.Points(ctx, "WATER")
	if err != nil {
		t.Fatalf("Points() failed: %v", err)
	}
	if len(got) != len(thermotest.Water()) {
		t.Errorf("len(Points()) = %d, want %d", len(got), len(thermotest.Water()))
	}
}

func TestTable_NoPoint(t *testing.T) {
	table := thermotest.NewTable(t)
	ctx := context.Background()

	// Air was never tabulated inside its two-phase region.
	_, err := table.Property(ctx, "HMASS", "T", 300, "Q", 0.5, "AIR")
	if !errors.Is(err, tabulated.ErrNoPoint) {
		t.Errorf("Property() error = %v, want %v", err, tabulated.ErrNoPoint)
	}
	_, err = table.Phase(ctx, "T", 300, "P", 101325, "PROPANE")
	if !errors.Is(err, tabulated.ErrNoPoint) {
		t.Errorf("Phase() error = %v, want %v", err, tabulated.ErrNoPoint)
	}
}

func TestTable_Unsupported(t *testing.T) {
	table := thermotest.NewTable(t)
	ctx := context.Background()

	tests := []struct {
		name             string
		output, in1, in2 string
	}{
		{name: "unknown output", output: "GMASS", in1: "T", in2: "P"},
		{name: "derived input", output: "HMASS", in1: "CPMASS", in2: "P"},
		{name: "unknown input", output: "HMASS", in1: "T", in2: "Dmolar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := table.Property(ctx, tt.output, tt.in1, 300, tt.in2, 101325, "WATER")
			if err == nil {
				t.Fatal("Property() succeeded, want error")
			}
			if errors.Is(err, tabulated.ErrNoPoint) {
				t.Errorf("Property() error = %v, must not be %v", err, tabulated.ErrNoPoint)
			}
		})
	}
}

func TestTable_NonFinite(t *testing.T) {
	table := thermotest.NewTable(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		in1, in2 string
		v1, v2   float64
	}{
		{name: "infinite density", in1: "T", v1: 300, in2: "DMASS", v2: math.Inf(1)},
		{name: "negative infinite enthalpy", in1: "HMASS", v1: math.Inf(-1), in2: "P", v2: 101325},
		{name: "NaN pressure", in1: "T", v1: 300, in2: "P", v2: math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if v, err := table.Property(ctx, "HMASS", tt.in1, tt.v1, tt.in2, tt.v2, "WATER"); err == nil {
				t.Errorf("Property() = %v, want error", v)
			}
			if phase, err := table.Phase(ctx, tt.in1, tt.v1, tt.in2, tt.v2, "WATER"); err == nil {
				t.Errorf("Phase() = %v, want error", phase)
			}
		})
	}
}

func TestTable_Saturation(t *testing.T) {
	table := thermotest.NewTable(t)
	_, err := table.Phase(context.Background(), "P", 101325, "T", 373.15, "WATER")
	if !errors.Is(err, thermostate.ErrSaturation) {
		t.Errorf("Phase() error = %v, want %v", err, thermostate.ErrSaturation)
	}
}

func TestTable_InputPairs(t *testing.T) {
	table := thermotest.NewTable(t)
	got := thermostate.NewCatalog(table.InputPairs()).Pairs()
	want := thermostate.DefaultCatalog().Pairs()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NewCatalog(InputPairs()) mismatch (-want +got):\n%v", diff)
	}
}
