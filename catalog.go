package thermostate

import (
	"slices"
	"strings"
	"sync"
)

// NativeInputPairs lists the input pairs understood by CoolProp-compatible
// equation-of-state providers, by their native names. Molar variants are listed
// for completeness; NewCatalog excludes them because every State is mass-specific.
var NativeInputPairs = []string{
	"QT_INPUTS", "PQ_INPUTS", "QSmolar_INPUTS", "QSmass_INPUTS",
	"HmolarQ_INPUTS", "HmassQ_INPUTS", "DmolarQ_INPUTS", "DmassQ_INPUTS",
	"PT_INPUTS", "DmassT_INPUTS", "DmolarT_INPUTS", "HmolarT_INPUTS",
	"HmassT_INPUTS", "SmolarT_INPUTS", "SmassT_INPUTS", "TUmolar_INPUTS",
	"TUmass_INPUTS", "DmassP_INPUTS", "DmolarP_INPUTS", "HmassP_INPUTS",
	"HmolarP_INPUTS", "PSmass_INPUTS", "PSmolar_INPUTS", "PUmass_INPUTS",
	"PUmolar_INPUTS", "HmassSmass_INPUTS", "HmolarSmolar_INPUTS", "SmassUmass_INPUTS",
	"SmolarUmolar_INPUTS", "DmassHmass_INPUTS", "DmolarHmolar_INPUTS", "DmassSmass_INPUTS",
	"DmolarSmolar_INPUTS", "DmassUmass_INPUTS", "DmolarUmolar_INPUTS",
}

// deniedPairs are known not to be independent (or not to be solvable by the
// provider) regardless of what the provider advertises. Reverses are denied too.
var deniedPairs = []Pair{"Tu", "Th", "us"}

// IsDenied reports whether p (or its reverse) is on the fixed denylist of pairs
// that are never accepted as inputs.
func IsDenied(p Pair) bool {
	if len(p) != 2 {
		return false
	}
	return slices.Contains(deniedPairs, p) || slices.Contains(deniedPairs, p.Reverse())
}

// RequiresIndependenceCheck reports whether the values of pair p must be checked
// against the saturation curve before p can fix a state. Only temperature and
// pressure are dependent on each other there (e.g. at the boiling point).
func RequiresIndependenceCheck(p Pair) bool {
	return p == MakePair(T, P) || p == MakePair(P, T)
}

// A Catalog knows which pairs of base properties are allowed to fix a state.
//
// A Catalog is immutable once built and safe for concurrent use.
type Catalog struct {
	allowed map[Pair]struct{}
}

// NewCatalog derives the allowed pairs from the given native input-pair names of
// a provider (see NativeInputPairs for the naming convention). Names of molar
// pairs, and names that do not translate to two distinct base properties, are
// ignored.
//
// The allowed set is every permutation of the base properties representable by
// a native pair (in either order), minus the denied pairs.
func NewCatalog(native []string) *Catalog {
	representable := make(map[Pair]struct{}, 2*len(native))
	for _, name := range native {
		p, ok := translateNativePair(name)
		if !ok {
			continue
		}
		representable[p] = struct{}{}
		representable[p.Reverse()] = struct{}{}
	}

	c := &Catalog{allowed: make(map[Pair]struct{}, len(representable))}
	for _, a := range baseProperties {
		for _, b := range baseProperties {
			if a == b {
				continue
			}
			p := MakePair(a, b)
			if _, ok := representable[p]; !ok || IsDenied(p) {
				continue
			}
			c.allowed[p] = struct{}{}
		}
	}
	return c
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	return NewCatalog(NativeInputPairs)
})

// DefaultCatalog returns the Catalog built from NativeInputPairs. It is built
// once and shared by all callers.
func DefaultCatalog() *Catalog {
	return defaultCatalog()
}

// translateNativePair turns a native input-pair name (e.g. "DmassT_INPUTS") into
// a Pair (e.g. "vT"). Density is translated to specific volume and vapour
// fraction to quality.
func translateNativePair(name string) (Pair, bool) {
	if strings.Contains(name, "molar") {
		return "", false
	}
	s := strings.TrimSuffix(name, "_INPUTS")
	s = strings.ReplaceAll(s, "mass", "")
	s = strings.NewReplacer("D", "V", "Q", "X").Replace(s)
	s = strings.ReplaceAll(strings.ToLower(s), "t", "T")
	if len(s) != 2 {
		return "", false
	}
	p := Pair(s)
	a, b := p.Split()
	if a == b || !a.IsBase() || !b.IsBase() {
		return "", false
	}
	return p, true
}

// Allowed reports whether p may fix a state.
func (c *Catalog) Allowed(p Pair) bool {
	_, ok := c.allowed[p]
	return ok
}

// IsAllowed reports whether properties a and b, in either order, may fix a
// state.
func (c *Catalog) IsAllowed(a, b Property) bool {
	return c.Allowed(MakePair(a, b))
}

// Pairs returns every allowed pair (both orders of each) sorted lexically.
func (c *Catalog) Pairs() []Pair {
	pairs := make([]Pair, 0, len(c.allowed))
	for p := range c.allowed {
		pairs = append(pairs, p)
	}
	slices.Sort(pairs)
	return pairs
}
