package thermostate

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsSaturationCondition(t *testing.T) {
	tests := []struct {
		Name string
		Err  error
		Want bool
	}{
		{Name: "nil", Err: nil, Want: false},
		{Name: "sentinel", Err: ErrSaturation, Want: true},
		{Name: "wrapped", Err: fmt.Errorf("lookup: %w", ErrSaturation), Want: true},
		{Name: "message", Err: errors.New("Saturation pressure [101325 Pa] corresponds to T [373.124 K]"), Want: true},
		{Name: "other", Err: errors.New("temperature out of range"), Want: false},
	}
	for _, tt := range tests {
		if got := IsSaturationCondition(tt.Err); got != tt.Want {
			t.Errorf("IsSaturationCondition(%v) = %v, want %v", tt.Name, got, tt.Want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	cause := errors.New("out of range")
	tests := []struct {
		Err  error
		Want string
	}{
		{
			Err:  &ValidationError{Reason: "bogus"},
			Want: "thermostate: bogus",
		},
		{
			Err:  &DimensionError{Property: T, Want: DimensionOf(T), Got: DimensionOf(P)},
			Want: "thermostate: the dimensions for T must be [temperature]; got [mass]/[length]/[time]^2",
		},
		{
			Err:  &DimensionError{Property: T, Want: DimensionOf(T), Err: cause},
			Want: "thermostate: the dimensions for T must be [temperature]: out of range",
		},
		{
			Err:  &IndependenceError{Pair: "pT", Err: ErrSaturation},
			Want: "thermostate: the given values for p and T are not independent",
		},
		{
			Err:  &ProviderError{Op: "property", Property: H, Err: cause},
			Want: "thermostate: provider property h: out of range",
		},
		{
			Err:  &ProviderError{Op: "phase", Err: cause},
			Want: "thermostate: provider phase: out of range",
		},
	}
	for _, tt := range tests {
		if got := tt.Err.Error(); got != tt.Want {
			t.Errorf("Error() = %q, want %q", got, tt.Want)
		}
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("out of range")
	if err := error(&ProviderError{Op: "phase", Err: cause}); !errors.Is(err, cause) {
		t.Errorf("errors.Is(%v, cause) = false, want true", err)
	}
	if err := error(&IndependenceError{Pair: "Tp", Err: ErrSaturation}); !errors.Is(err, ErrSaturation) {
		t.Errorf("errors.Is(%v, ErrSaturation) = false, want true", err)
	}
	if err := error(&DimensionError{Property: T, Err: cause}); !errors.Is(err, cause) {
		t.Errorf("errors.Is(%v, cause) = false, want true", err)
	}
}
