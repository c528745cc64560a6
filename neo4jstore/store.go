package neo4jstore

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/danielorbach/go-component"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-thermostate/go-thermostate"
)

const (
	stateLabel   = "State"
	processLabel = "PROCESS"
)

// ErrNotFound is returned when a named state does not exist in the store.
var ErrNotFound = errors.New("state not found")

// ErrNoSubstance is returned when saving a state that has no substance, such as
// the zero State.
var ErrNoSubstance = errors.New("state has no substance")

// A Transition is a process taking a fluid from one named state to another.
type Transition struct {
	From string
	To   string
	// Kind describes the process, e.g. "isentropic compression" or "isobaric
	// heat addition".
	Kind string
}

// Store saves and loads named states, and the transitions between them, in a
// Neo4j database prepared by BootstrapDatabase.
//
// Every operation runs in its own transaction. A Store is safe for concurrent
// use.
type Store struct {
	driver   neo4j.DriverWithContext // Connection to the neo4j server/cluster.
	database string                  // Name of the database holding the states.
}

// NewStore returns a Store keeping states in the given database.
func NewStore(driver neo4j.DriverWithContext, database string) *Store {
	return &Store{driver: driver, database: database}
}

func (s *Store) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database, AccessMode: mode})
}

// Save stores st under the given name, replacing whatever state was stored
// under that name before. Transitions from and to the name are kept. A state
// without a substance could never be loaded back, so Save rejects it with
// ErrNoSubstance.
func (s *Store) Save(ctx context.Context, name string, st thermostate.State) (err error) {
	ctx, span := tracer.Start(ctx, "Save", trace.WithAttributes(
		attribute.String("neo4j.database", s.database),
		attribute.String("state.name", name),
	))
	defer span.End()
	defer func() {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	if st.Substance() == "" {
		return fmt.Errorf("save %q: %w", name, ErrNoSubstance)
	}

	session := s.session(ctx, neo4j.AccessModeWrite)
	defer func() { _ = session.Close(ctx) }()

	_, err = session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, `
			MERGE (n:`+stateLabel+` {name: $name})
			ON CREATE SET n._created_at = datetime()
			WITH n, n._created_at AS created
			SET n = $props, n.name = $name, n._created_at = created, n._last_modified = datetime()
			RETURN count(n) AS nodes
		`, map[string]any{
			"name":  name,
			"props": formatState(st),
		})
		if err != nil {
			return nil, fmt.Errorf("run cypher: %w", err)
		}
		record, err := result.Single(ctx)
		if err != nil {
			return nil, fmt.Errorf("query single result: %w", err)
		}
		nodes, err := getRecordProperty[int64](record, "nodes")
		if err != nil {
			return nil, fmt.Errorf("get nodes: %w", err)
		}
		// The node key constraint guarantees a single node per name.
		if nodes != 1 {
			return nil, fmt.Errorf("save modified %v nodes instead of 1", nodes)
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("execute write: %w", err)
	}
	component.Logger(ctx).Debug("State saved", "neo4j.database", s.database, "state.name", name)
	return nil
}

// Load returns the state stored under the given name, or an error wrapping
// ErrNotFound.
func (s *Store) Load(ctx context.Context, name string) (st thermostate.State, err error) {
	ctx, span := tracer.Start(ctx, "Load", trace.WithAttributes(
		attribute.String("neo4j.database", s.database),
		attribute.String("state.name", name),
	))
	defer span.End()
	defer func() {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	session := s.session(ctx, neo4j.AccessModeRead)
	defer func() { _ = session.Close(ctx) }()

	node, err := neo4j.ExecuteRead(ctx, session, func(tx neo4j.ManagedTransaction) (neo4j.Node, error) {
		result, err := tx.Run(ctx, `
			MATCH (n:`+stateLabel+` {name: $name})
			RETURN n
		`, map[string]any{"name": name})
		if err != nil {
			return neo4j.Node{}, fmt.Errorf("run cypher: %w", err)
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return neo4j.Node{}, fmt.Errorf("collect: %w", err)
		}
		if len(records) == 0 {
			return neo4j.Node{}, fmt.Errorf("%q: %w", name, ErrNotFound)
		}
		return getRecordProperty[neo4j.Node](records[0], "n")
	})
	if err != nil {
		return thermostate.State{}, fmt.Errorf("execute read: %w", err)
	}

	st, err = parseState(node.Props)
	if err != nil {
		invalidStateCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("neo4j.database", s.database)))
		return thermostate.State{}, fmt.Errorf("parse state %q: %w", name, err)
	}
	return st, nil
}

// Delete removes the state stored under the given name and every transition
// from or to it. Deleting a name that does not exist is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	ctx, span := tracer.Start(ctx, "Delete", trace.WithAttributes(
		attribute.String("neo4j.database", s.database),
		attribute.String("state.name", name),
	))
	defer span.End()

	session := s.session(ctx, neo4j.AccessModeWrite)
	defer func() { _ = session.Close(ctx) }()

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, `
			MATCH (n:`+stateLabel+` {name: $name})
			DETACH DELETE n
		`, map[string]any{"name": name})
		return nil, err
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("execute write: %w", err)
	}
	return nil
}

// Link records a process of the given kind taking the fluid from one named
// state to another. Both states must have been saved; otherwise Link returns an
// error wrapping ErrNotFound. Linking the same states with the same kind twice
// records a single transition.
func (s *Store) Link(ctx context.Context, from, to, kind string) (err error) {
	ctx, span := tracer.Start(ctx, "Link", trace.WithAttributes(
		attribute.String("neo4j.database", s.database),
		attribute.String("transition.from", from),
		attribute.String("transition.to", to),
		attribute.String("transition.kind", kind),
	))
	defer span.End()
	defer func() {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	session := s.session(ctx, neo4j.AccessModeWrite)
	defer func() { _ = session.Close(ctx) }()

	_, err = session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, `
			MATCH (a:`+stateLabel+` {name: $from}), (b:`+stateLabel+` {name: $to})
			MERGE (a)-[r:`+processLabel+` {kind: $kind}]->(b)
			ON CREATE SET r._created_at = datetime()
			RETURN count(r) AS edges
		`, map[string]any{"from": from, "to": to, "kind": kind})
		if err != nil {
			return nil, fmt.Errorf("run cypher: %w", err)
		}
		record, err := result.Single(ctx)
		if err != nil {
			return nil, fmt.Errorf("query single result: %w", err)
		}
		edges, err := getRecordProperty[int64](record, "edges")
		if err != nil {
			return nil, fmt.Errorf("get edges: %w", err)
		}
		if edges == 0 {
			return nil, fmt.Errorf("link %q to %q: %w", from, to, ErrNotFound)
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("execute write: %w", err)
	}
	return nil
}

// Transitions returns the processes leaving the named state, ordered by the
// name of their destination and then by kind.
func (s *Store) Transitions(ctx context.Context, from string) (transitions []Transition, err error) {
	ctx, span := tracer.Start(ctx, "Transitions", trace.WithAttributes(
		attribute.String("neo4j.database", s.database),
		attribute.String("transition.from", from),
	))
	defer span.End()
	defer func() {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	session := s.session(ctx, neo4j.AccessModeRead)
	defer func() { _ = session.Close(ctx) }()

	_, err = session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, `
			MATCH (:`+stateLabel+` {name: $from})-[r:`+processLabel+`]->(b:`+stateLabel+`)
			RETURN b.name AS to, r.kind AS kind
			ORDER BY to, kind
		`, map[string]any{"from": from})
		if err != nil {
			return nil, fmt.Errorf("run cypher: %w", err)
		}
		for result.Next(ctx) {
			to, err := getRecordProperty[string](result.Record(), "to")
			if err != nil {
				return nil, fmt.Errorf("get to: %w", err)
			}
			kind, err := getRecordProperty[string](result.Record(), "kind")
			if err != nil {
				return nil, fmt.Errorf("get kind: %w", err)
			}
			transitions = append(transitions, Transition{From: from, To: to, Kind: kind})
		}
		// The cursor is exhausted by now; Err reports what stopped the iteration.
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("iterate transitions: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return nil, fmt.Errorf("execute read: %w", err)
	}
	return transitions, nil
}

var errPropertyNotFound = errors.New("property not found")

// An unexpectedPropertyTypeError occurs when a property of a record has a
// runtime type that is different from the expected type. The error message
// contains the effective type of the property at runtime.
type unexpectedPropertyTypeError struct {
	Type reflect.Type // Effective type encountered at runtime.
}

func (e unexpectedPropertyTypeError) Error() string {
	if e.Type == nil {
		return "unexpected property type: nil"
	}
	return "unexpected property type: " + e.Type.String()
}

// The recordProperty interface lists the types getRecordProperty supports.
type recordProperty interface {
	int64 | float64 | string | neo4j.Node
}

func getRecordProperty[T recordProperty](record *neo4j.Record, key string) (value T, err error) {
	prop, exists := record.Get(key)
	if !exists {
		return value, errPropertyNotFound
	}
	v, ok := prop.(T)
	if !ok {
		return value, unexpectedPropertyTypeError{Type: reflect.TypeOf(prop)}
	}
	return v, nil
}
