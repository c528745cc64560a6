package thermostate

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielorbach/go-component"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gocloud.dev/pubsub"
)

// ResolveRequest asks a resolution service for a state. The ID is echoed in
// the corresponding ResolveResponse so that callers can correlate both.
type ResolveRequest struct {
	ID string
	Request
}

// ResolveResponse answers a ResolveRequest with either the resolved state, as a
// Record, or the reason its resolution failed.
type ResolveResponse struct {
	ID     string
	Record Record
	Err    string // empty on success
}

type resolverProc struct {
	resolver *Resolver
	source   *pubsub.Subscription
	sink     *pubsub.Topic
}

// NewResolverProcedure returns a [component.Procedure] that resolves states on
// request. It consumes gob-encoded ResolveRequest messages from the given source
// and publishes a gob-encoded ResolveResponse for each of them to the given
// sink.
//
// A request that fails to resolve is answered with the failure; it does not
// stop the procedure. Failing to publish a response does.
func NewResolverProcedure(r *Resolver, source *pubsub.Subscription, sink *pubsub.Topic) component.Procedure {
	return resolverProc{
		resolver: r,
		source:   source,
		sink:     sink,
	}
}

func (p resolverProc) Exec(l *component.L) {
	logger := component.Logger(l.Context())
	for l.Continue() {
		msg, err := p.source.Receive(l.GraceContext())
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return
			}
			// Receive only fails with non-retryable errors; without a way to recreate
			// the subscription there is nothing left to do.
			l.Fatal(fmt.Errorf("receive: %w", err))
		}

		if err := p.handleMessage(l.GraceContext(), logger, msg); err != nil {
			// The message is not acknowledged so that it is redelivered once the
			// procedure is restarted.
			logger.Error("Couldn't answer ResolveRequest message", slog.Any("error", err))
			l.Fatal(fmt.Errorf("handle message: %w", err))
		}
		msg.Ack()
	}
}

// handleMessage decodes a single ResolveRequest, resolves it and publishes the
// response. It returns an error only if the response could not be published; a
// message that cannot be decoded is dropped.
func (p resolverProc) handleMessage(ctx context.Context, logger *slog.Logger, msg *pubsub.Message) error {
	ctx, span := tracer.Start(ctx, "resolverProc.handleMessage", trace.WithAttributes(
		attribute.String("msg.id", msg.LoggableID),
	))
	defer span.End()

	var req ResolveRequest
	if err := gob.NewDecoder(bytes.NewReader(msg.Body)).Decode(&req); err != nil {
		// Redelivering a malformed message would fail the same way forever.
		logger.Warn("Dropping undecodable ResolveRequest message", slog.Any("error", err))
		span.SetStatus(codes.Error, err.Error())
		return nil
	}

	logger = logger.With(slog.String("request-id", req.ID), slog.String("substance", req.Substance))
	logger.Debug("Resolving requested state...")
	resp := ResolveResponse{ID: req.ID}
	s, err := p.resolver.Resolve(ctx, req.Substance, req.Inputs...)
	if err != nil {
		logger.Info("Requested state could not be resolved", slog.Any("error", err))
		resp.Err = err.Error()
	} else {
		resp.Record = s.Record()
	}

	var b bytes.Buffer
	if err := gob.NewEncoder(&b).Encode(resp); err != nil {
		err := fmt.Errorf("encode gob: %w", err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	out := &pubsub.Message{Body: b.Bytes(), Metadata: map[string]string{"requestID": req.ID}}
	if err := p.sink.Send(ctx, out); err != nil {
		err := fmt.Errorf("send: %w", err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	logger.Debug("ResolveResponse message sent successfully")
	return nil
}
