package neo4jstore

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("github.com/go-thermostate/go-thermostate/neo4jstore")
var meter = otel.Meter("github.com/go-thermostate/go-thermostate/neo4jstore")

var (
	// invalidStateCounter counts the (:State) nodes that could not be loaded as a
	// thermostate.State, most likely because they were written by hand or by an
	// incompatible version.
	invalidStateCounter metric.Int64Counter
)

func init() {
	// Failing to create an instrument means its options are wrong.
	var err error
	invalidStateCounter, err = meter.Int64Counter(
		"store.invalid_state.count",
		metric.WithDescription("how many stored states could not be loaded"),
	)
	if err != nil {
		panic(fmt.Sprintf("neo4jstore: failed to init 'store.invalid_state.count' instrument: %v", err))
	}
}
