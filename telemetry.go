package thermostate

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("github.com/go-thermostate/go-thermostate")
var meter = otel.Meter("github.com/go-thermostate/go-thermostate")

// ---- resolver.go ----

const (
	// substanceAttr is the attribute key associating each record with the
	// substance whose state was resolved. Unknown substances are recorded with an
	// empty value.
	substanceAttr = "thermostate.substance"
)

var (
	// resolveDuration measures the duration of a single successful resolution,
	// including every query made to the equation-of-state provider.
	//
	// Each record is associated with the substanceAttr.
	resolveDuration metric.Float64Histogram
	// resolveFailures measures the number of failed resolutions, whatever the
	// cause (validation, dimensions, independence, provider).
	//
	// Each record is associated with the substanceAttr.
	resolveFailures metric.Int64Counter
)

func init() {
	var err error
	resolveDuration, err = meter.Float64Histogram(
		"state.resolve.duration",
		metric.WithDescription("The duration of a single state resolution, including every query to the equation-of-state provider."),
		metric.WithUnit("ms"),
	)
	if err != nil {
		panic("thermostate: failed to init 'state.resolve.duration' instrument")
	}

	resolveFailures, err = meter.Int64Counter(
		"state.resolve.failures",
		metric.WithDescription("The number of state resolutions that have failed."),
	)
	if err != nil {
		panic("thermostate: failed to init 'state.resolve.failures' instrument")
	}
}

// measureResolution records the duration of a successful resolution, or counts
// a failed one. Records are labelled with the resolved substance.
func measureResolution(ctx context.Context, substance Substance, succeeded bool, d time.Duration) {
	attrs := attribute.NewSet(attribute.String(substanceAttr, string(substance)))
	if succeeded {
		// Floating-point division keeps sub-millisecond precision.
		duration := float64(d) / float64(time.Millisecond)
		resolveDuration.Record(ctx, duration, metric.WithAttributeSet(attrs))
	} else {
		resolveFailures.Add(ctx, 1, metric.WithAttributeSet(attrs))
	}
}
