package pipeloop

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// walkAll runs one walk per starting direction. Attempts share only the
// read-only grid; each goroutine writes its own slot of the result array.
func (w *walker) walkAll(ctx context.Context, g *Grid, start Position) ([len(Directions)]attempt, error) {
	var out [len(Directions)]attempt

	if !w.parallel {
		for i, d := range Directions {
			if err := ctx.Err(); err != nil {
				return out, err
			}
			out[i] = w.attempt(g, start, d)
		}
		return out, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for i, d := range Directions {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			out[i] = w.attempt(g, start, d)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return out, err
	}
	return out, nil
}
