package thermostate

import (
	"errors"
	"testing"
)

// resolvedState returns a state of water fixed by T and v with the given values
// and every other property set to zero.
func resolvedState(temperature, volume float64) State {
	s := State{substance: Water, inputs: "Tv", phase: PhaseGas}
	for _, p := range allProperties {
		if p != X {
			s.set(p, 0)
		}
	}
	s.set(T, temperature)
	s.set(V, volume)
	return s
}

func TestNewState(t *testing.T) {
	s, err := NewState(" water ")
	if err != nil {
		t.Fatalf("NewState() failed: %v", err)
	}
	if s.Substance() != Water {
		t.Errorf("Substance() = %v, want %v", s.Substance(), Water)
	}
	if s.Resolved() {
		t.Error("Resolved() = true, want false")
	}
	if s.Inputs() != "" {
		t.Errorf("Inputs() = %q, want empty", s.Inputs())
	}

	var verr *ValidationError
	if _, err := NewState("helium"); !errors.As(err, &verr) {
		t.Errorf("NewState(helium) error = %v, want a *ValidationError", err)
	}
}

func TestState_Unresolved(t *testing.T) {
	s, _ := NewState("AIR")
	accessors := map[string]func() (Quantity, error){
		"Temperature":    s.Temperature,
		"Pressure":       s.Pressure,
		"SpecificVolume": s.SpecificVolume,
		"InternalEnergy": s.InternalEnergy,
		"Enthalpy":       s.Enthalpy,
		"Entropy":        s.Entropy,
		"Quality":        s.Quality,
		"Cp":             s.Cp,
		"Cv":             s.Cv,
	}
	for name, get := range accessors {
		if _, err := get(); !errors.Is(err, ErrUnresolved) {
			t.Errorf("%v() error = %v, want %v", name, err, ErrUnresolved)
		}
	}
	if _, err := s.Phase(); !errors.Is(err, ErrUnresolved) {
		t.Errorf("Phase() error = %v, want %v", err, ErrUnresolved)
	}
	if _, _, err := s.Pair("Tp"); !errors.Is(err, ErrUnresolved) {
		t.Errorf("Pair(Tp) error = %v, want %v", err, ErrUnresolved)
	}
}

func TestState_Get(t *testing.T) {
	s := resolvedState(400, 1.8)
	got, err := s.Get(V)
	if err != nil {
		t.Fatalf("Get(v) failed: %v", err)
	}
	if want := Q(1.8, "meter**3/kilogram"); got != want {
		t.Errorf("Get(v) = %v, want %v", got, want)
	}
	if _, err := s.Quality(); !errors.Is(err, ErrUndefined) {
		t.Errorf("Quality() error = %v, want %v", err, ErrUndefined)
	}
}

func TestState_GetUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Get(\"g\") did not panic")
		}
	}()
	_, _ = resolvedState(400, 1.8).Get("g")
}

func TestState_Pair(t *testing.T) {
	s := resolvedState(400, 1.8)
	a, b, err := s.Pair("vT")
	if err != nil {
		t.Fatalf("Pair(vT) failed: %v", err)
	}
	if a.Magnitude != 1.8 || b.Magnitude != 400 {
		t.Errorf("Pair(vT) = %v, %v; want 1.8, 400", a, b)
	}

	var verr *ValidationError
	for _, p := range []Pair{"Th", "uh", "T", ""} {
		if _, _, err := s.Pair(p); !errors.As(err, &verr) {
			t.Errorf("Pair(%q) error = %v, want a *ValidationError", p, err)
		}
	}
	if _, _, err := s.Pair("xT"); !errors.Is(err, ErrUndefined) {
		t.Errorf("Pair(xT) error = %v, want %v", err, ErrUndefined)
	}
}

func TestState_Equal(t *testing.T) {
	empty, _ := NewState("WATER")
	tests := []struct {
		Name        string
		Left, Right State
		Want        bool
	}{
		{Name: "same", Left: resolvedState(400, 1.8), Right: resolvedState(400, 1.8), Want: true},
		{Name: "within tolerance", Left: resolvedState(400, 1.8), Right: resolvedState(400*(1+1e-12), 1.8), Want: true},
		{Name: "different temperature", Left: resolvedState(400, 1.8), Right: resolvedState(401, 1.8), Want: false},
		{Name: "different volume", Left: resolvedState(400, 1.8), Right: resolvedState(400, 1.9), Want: false},
		{Name: "unresolved", Left: empty, Right: resolvedState(400, 1.8), Want: false},
		{Name: "both unresolved", Left: empty, Right: empty, Want: false},
	}
	for _, tt := range tests {
		if got := tt.Left.Equal(tt.Right); got != tt.Want {
			t.Errorf("%v: Equal() = %v, want %v", tt.Name, got, tt.Want)
		}
		if got := tt.Right.Equal(tt.Left); got != tt.Want {
			t.Errorf("%v: reversed Equal() = %v, want %v", tt.Name, got, tt.Want)
		}
	}
}

func TestState_Compare(t *testing.T) {
	a, b := resolvedState(400, 1.8), resolvedState(300, 0.001)
	if _, err := a.Compare(b); !errors.Is(err, ErrNoOrdering) {
		t.Errorf("Compare() error = %v, want %v", err, ErrNoOrdering)
	}
}
