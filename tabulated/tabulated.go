// Package tabulated provides a thermostate.Provider backed by tables of
// precomputed property points stored in SQLite.
//
// Each point records every property of one state of a fluid in the provider's
// native SI convention. A query is answered by looking up the point whose two
// input columns match the query's inputs within a relative tolerance; there is
// no interpolation between points. Tables are typically loaded from published
// property tables (e.g. steam tables) or from the output of a full equation of
// state, and serve tests and offline tools where such an equation is not
// available.
package tabulated

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/go-thermostate/go-thermostate"
)

// DefaultTolerance is the relative tolerance within which an input matches a
// tabulated value.
const DefaultTolerance = 1e-6

// ErrNoPoint is returned when no tabulated point matches a query's inputs.
var ErrNoPoint = errors.New("no tabulated point matches the inputs")

// Point is a single tabulated state of a fluid. Values are in the native SI
// convention of thermostate.Provider; Q is -1 for points outside the two-phase
// region.
type Point struct {
	Fluid string  `db:"fluid"`
	T     float64 `db:"t"`
	P     float64 `db:"p"`
	Rho   float64 `db:"rho"`
	U     float64 `db:"u"`
	H     float64 `db:"h"`
	S     float64 `db:"s"`
	Q     float64 `db:"q"`
	Cp    float64 `db:"cp"`
	Cv    float64 `db:"cv"`
	Phase string  `db:"phase"`
}

// columns maps the native property names to the columns storing them.
var columns = map[string]string{
	"T":      "t",
	"P":      "p",
	"DMASS":  "rho",
	"UMASS":  "u",
	"HMASS":  "h",
	"SMASS":  "s",
	"Q":      "q",
	"CPMASS": "cp",
	"CVMASS": "cv",
}

// value returns the value of the named native property of pt.
func (pt Point) value(name string) float64 {
	switch name {
	case "T":
		return pt.T
	case "P":
		return pt.P
	case "DMASS":
		return pt.Rho
	case "UMASS":
		return pt.U
	case "HMASS":
		return pt.H
	case "SMASS":
		return pt.S
	case "Q":
		return pt.Q
	case "CPMASS":
		return pt.Cp
	case "CVMASS":
		return pt.Cv
	}
	panic("tabulated: unknown property " + name)
}

// Table is a thermostate.Provider answering queries from tabulated points.
//
// A Table is safe for concurrent use.
type Table struct {
	db *sqlx.DB
	// Tolerance is the relative tolerance within which inputs match tabulated
	// values. Open sets it to DefaultTolerance.
	Tolerance float64
}

// Open opens (or creates) the SQLite database at the given data source name
// and prepares its schema. Use a file path, or "file::memory:" for a private
// in-memory table.
func Open(ctx context.Context, dsn string) (*Table, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Every connection to an in-memory database sees its own database, so all
	// queries go through a single connection.
	db.SetMaxOpenConns(1)

	t := &Table{db: db, Tolerance: DefaultTolerance}
	if err := t.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return t, nil
}

// Close closes the database.
func (t *Table) Close() error {
	return t.db.Close()
}

func (t *Table) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS points (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		fluid TEXT NOT NULL,
		t REAL NOT NULL,
		p REAL NOT NULL,
		rho REAL NOT NULL,
		u REAL NOT NULL,
		h REAL NOT NULL,
		s REAL NOT NULL,
		q REAL NOT NULL,
		cp REAL NOT NULL,
		cv REAL NOT NULL,
		phase TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_points_fluid_t ON points(fluid, t);
	`
	_, err := t.db.ExecContext(ctx, schema)
	return err
}

// Insert adds the given points to the table in a single transaction. Fluid
// names are stored upper-cased.
func (t *Table) Insert(ctx context.Context, points ...Point) error {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, pt := range points {
		pt.Fluid = strings.ToUpper(pt.Fluid)
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO points (fluid, t, p, rho, u, h, s, q, cp, cv, phase)
			VALUES (:fluid, :t, :p, :rho, :u, :h, :s, :q, :cp, :cv, :phase)
		`, pt)
		if err != nil {
			return fmt.Errorf("insert %s point at T=%g P=%g: %w", pt.Fluid, pt.T, pt.P, err)
		}
	}
	return tx.Commit()
}

// Points returns every point of the given fluid, in insertion order.
func (t *Table) Points(ctx context.Context, fluid string) ([]Point, error) {
	var points []Point
	err := t.db.SelectContext(ctx, &points, `
		SELECT fluid, t, p, rho, u, h, s, q, cp, cv, phase
		FROM points WHERE fluid = ? ORDER BY id
	`, strings.ToUpper(fluid))
	if err != nil {
		return nil, fmt.Errorf("select points: %w", err)
	}
	return points, nil
}

// lookup returns the point of fluid matching both inputs.
//
// Temperature and pressure match a two-phase point only on the saturation
// curve, where they do not fix a state; lookup reports that as
// thermostate.ErrSaturation.
func (t *Table) lookup(ctx context.Context, name1 string, value1 float64, name2 string, value2 float64, fluid string) (Point, error) {
	col1, ok := columns[name1]
	if !ok || name1 == "CPMASS" || name1 == "CVMASS" {
		return Point{}, fmt.Errorf("unsupported input %q", name1)
	}
	col2, ok := columns[name2]
	if !ok || name2 == "CPMASS" || name2 == "CVMASS" {
		return Point{}, fmt.Errorf("unsupported input %q", name2)
	}
	// An infinite tolerance would match every row.
	if !isFinite(value1) {
		return Point{}, fmt.Errorf("input %s=%g is not finite", name1, value1)
	}
	if !isFinite(value2) {
		return Point{}, fmt.Errorf("input %s=%g is not finite", name2, value2)
	}

	var points []Point
	err := t.db.SelectContext(ctx, &points, `
		SELECT fluid, t, p, rho, u, h, s, q, cp, cv, phase
		FROM points
		WHERE fluid = ? AND ABS(`+col1+` - ?) <= ? AND ABS(`+col2+` - ?) <= ?
		ORDER BY id
	`, strings.ToUpper(fluid), value1, t.tolerance(value1), value2, t.tolerance(value2))
	if err != nil {
		return Point{}, fmt.Errorf("select point: %w", err)
	}
	if len(points) == 0 {
		return Point{}, fmt.Errorf("%s at %s=%g, %s=%g: %w", fluid, name1, value1, name2, value2, ErrNoPoint)
	}

	if isTemperaturePressure(name1, name2) {
		for _, pt := range points {
			if pt.Phase == string(thermostate.PhaseTwoPhase) {
				return Point{}, fmt.Errorf("%w: %s at T=%g K, P=%g Pa lies on the saturation curve", thermostate.ErrSaturation, fluid, pt.T, pt.P)
			}
		}
	}
	return points[0], nil
}

func (t *Table) tolerance(v float64) float64 {
	return t.Tolerance * math.Max(math.Abs(v), 1)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func isTemperaturePressure(name1, name2 string) bool {
	return (name1 == "T" && name2 == "P") || (name1 == "P" && name2 == "T")
}

// Phase implements thermostate.Provider.
func (t *Table) Phase(ctx context.Context, name1 string, value1 float64, name2 string, value2 float64, fluid string) (string, error) {
	pt, err := t.lookup(ctx, name1, value1, name2, value2, fluid)
	if err != nil {
		return "", err
	}
	return pt.Phase, nil
}

// Property implements thermostate.Provider.
func (t *Table) Property(ctx context.Context, output string, name1 string, value1 float64, name2 string, value2 float64, fluid string) (float64, error) {
	if _, ok := columns[output]; !ok {
		return 0, fmt.Errorf("unsupported output %q", output)
	}
	pt, err := t.lookup(ctx, name1, value1, name2, value2, fluid)
	if err != nil {
		return 0, err
	}
	return pt.value(output), nil
}

// InputPairs implements thermostate.InputPairLister. A table can look up any
// two distinct stored inputs, so it advertises every mass-based native pair.
func (t *Table) InputPairs() []string {
	var pairs []string
	for _, name := range thermostate.NativeInputPairs {
		if !strings.Contains(name, "molar") {
			pairs = append(pairs, name)
		}
	}
	return pairs
}
