package thermostate

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// A Request asks for the state of a substance fixed by the given inputs; it is
// the argument of Resolver.Resolve packed into a value.
type Request struct {
	Substance string
	Inputs    []Input
}

// ResolveAll resolves every request concurrently, bounded by r.Concurrency,
// and returns the states in request order.
//
// The first failure cancels the context of the resolutions still running, and
// ResolveAll returns that failure annotated with the index of its request.
// Units and Provider must be safe for concurrent use.
func (r *Resolver) ResolveAll(ctx context.Context, requests []Request) ([]State, error) {
	states := make([]State, len(requests))
	g, ctx := errgroup.WithContext(ctx)
	if r.Concurrency > 0 {
		g.SetLimit(r.Concurrency)
	}
	for i, req := range requests {
		g.Go(func() error {
			s, err := r.Resolve(ctx, req.Substance, req.Inputs...)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			states[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return states, nil
}
