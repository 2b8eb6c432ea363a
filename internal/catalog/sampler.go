package catalog

import (
	"context"
	"fmt"

	"github.com/leanovate/gopter"
	"golang.org/x/sync/errgroup"

	"github.com/nomagicln/modgen/pkg/arbitrary"
	"github.com/nomagicln/modgen/pkg/filter"
)

// SampleOptions controls a sampling run.
type SampleOptions struct {
	Count   int
	Size    int
	Seed    int64
	Workers int
	// Match, when set, retry-filters every draw. Retries keep the size and
	// the random stream of the draw, so a condition the class can never
	// satisfy runs until ctx is done.
	Match filter.Matcher
}

// SampleN draws opts.Count values of the entry. Sample i is drawn from seed
// opts.Seed+i, so the result does not depend on the number of workers.
func (e Entry) SampleN(ctx context.Context, opts SampleOptions) ([]filter.Subject, error) {
	if opts.Count < 0 {
		return nil, fmt.Errorf("count must not be negative, got %d", opts.Count)
	}

	results := make([]filter.Subject, opts.Count)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for i := range opts.Count {
		g.Go(func() error {
			v, err := e.draw(ctx, arbitrary.Params(opts.Seed+int64(i), opts.Size), opts.Match)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// draw samples until match accepts the value. Every attempt uses params
// unchanged apart from its advancing Rng.
func (e Entry) draw(ctx context.Context, params *gopter.GenParameters, match filter.Matcher) (filter.Subject, error) {
	for {
		if err := ctx.Err(); err != nil {
			return filter.Subject{}, err
		}
		v := e.Sample(params)
		if match == nil || match(v) {
			return v, nil
		}
	}
}
