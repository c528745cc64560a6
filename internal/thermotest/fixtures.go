package thermotest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-thermostate/go-thermostate"
	"github.com/go-thermostate/go-thermostate/tabulated"
)

// point builds a tabulated point from its specific volume rather than its
// density, the way property tables list them.
func point(fluid thermostate.Substance, t, p, v, u, h, s, q, cp, cv float64, phase thermostate.Phase) tabulated.Point {
	return tabulated.Point{
		Fluid: string(fluid),
		T:     t,
		P:     p,
		Rho:   1 / v,
		U:     u,
		H:     h,
		S:     s,
		Q:     q,
		Cp:    cp,
		Cv:    cv,
		Phase: string(phase),
	}
}

// Reference points of water at atmospheric pressure.
var (
	// WaterLiquid is compressed liquid water at 300 K.
	WaterLiquid = point(thermostate.Water, 300, 101325, 0.0010035, 112565, 112666.7, 393.1, -1, 4180.6, 4130.2, thermostate.PhaseLiquid)
	// WaterSaturatedLiquid is water at its normal boiling point with no vapour.
	WaterSaturatedLiquid = point(thermostate.Water, 373.15, 101325, 0.0010435, 418940, 419045.7, 1306.9, 0, 4215.7, 3767.8, thermostate.PhaseTwoPhase)
	// WaterMixture is water at its normal boiling point, half of its mass
	// evaporated.
	WaterMixture = point(thermostate.Water, 373.15, 101325, 0.83642175, 1462720, 1547522.85, 4330.75, 0.5, 3130.4, 2649.7, thermostate.PhaseTwoPhase)
	// WaterSaturatedVapour is water at its normal boiling point, fully
	// evaporated.
	WaterSaturatedVapour = point(thermostate.Water, 373.15, 101325, 1.6718, 2506500, 2675900, 7354.6, 1, 2080.4, 1551.7, thermostate.PhaseTwoPhase)
	// WaterVapour is superheated steam at 400 K.
	WaterVapour = point(thermostate.Water, 400, 101325, 1.8034, 2547600, 2730330, 7496.4, -1, 2021.4, 1538.6, thermostate.PhaseGas)
)

// AirAmbient is air at 300 K and atmospheric pressure, well above its critical
// temperature.
var AirAmbient = point(thermostate.Air, 300, 101325, 0.84992, 340310, 426430, 3876.0, -1, 1006.9, 719.3, thermostate.PhaseSupercriticalGas)

// Water returns the tabulated points of water.
func Water() []tabulated.Point {
	return []tabulated.Point{WaterLiquid, WaterSaturatedLiquid, WaterMixture, WaterSaturatedVapour, WaterVapour}
}

// Air returns the tabulated points of air.
func Air() []tabulated.Point {
	return []tabulated.Point{AirAmbient}
}

// NewTable returns a tabulated.Table stored in a temporary directory and
// loaded with the given points, or with the points of Water and Air if none
// are given. The table is closed when the test completes.
func NewTable(tb testing.TB, points ...tabulated.Point) *tabulated.Table {
	tb.Helper()
	if len(points) == 0 {
		points = append(Water(), Air()...)
	}

	ctx := context.Background()
	table, err := tabulated.Open(ctx, filepath.Join(tb.TempDir(), "points.db"))
	if err != nil {
		tb.Fatalf("Open table: %v", err)
	}
	tb.Cleanup(func() {
		if err := table.Close(); err != nil {
			tb.Errorf("Close table: %v", err)
		}
	})
	if err := table.Insert(ctx, points...); err != nil {
		tb.Fatalf("Insert points: %v", err)
	}
	return table
}

// NewResolver returns a Resolver converting units with Units and querying a
// table created by NewTable with the given points.
func NewResolver(tb testing.TB, points ...tabulated.Point) *thermostate.Resolver {
	tb.Helper()
	return &thermostate.Resolver{
		Units:    Units{},
		Provider: NewTable(tb, points...),
	}
}
