// Package workers runs independent calls concurrently, behind a limit, while
// keeping their results in input order.
package workers

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map calls f for every item, at most limit at a time, and returns the
// results in the same order as items.
//
// The first error cancels the context passed to the remaining calls and is
// returned. Results from calls that succeeded are kept, so callers can
// still use a partial result; ok[i] reports whether results[i] is set.
func Map[T, R any](ctx context.Context, limit int, items []T, f func(context.Context, T) (R, error)) (results []R, ok []bool, err error) {
	results = make([]R, len(items))
	ok = make([]bool, len(items))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := f(ctx, item)
			if err != nil {
				return err
			}
			results[i], ok[i] = result, true
			return nil
		})
	}

	return results, ok, g.Wait()
}

// MapAll is Map without cancellation: every item is attempted even after a
// call fails, so which results are set depends only on which calls fail.
// The returned error belongs to the earliest failing item in input order.
func MapAll[T, R any](ctx context.Context, limit int, items []T, f func(context.Context, T) (R, error)) (results []R, ok []bool, err error) {
	results = make([]R, len(items))
	ok = make([]bool, len(items))
	errs := make([]error, len(items))

	g := new(errgroup.Group)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, item := range items {
		g.Go(func() error {
			result, err := f(ctx, item)
			if err != nil {
				errs[i] = err
				return nil
			}
			results[i], ok[i] = result, true
			return nil
		})
	}
	g.Wait()

	for _, err := range errs {
		if err != nil {
			return results, ok, err
		}
	}
	return results, ok, nil
}

// Each is Map for calls without results.
func Each[T any](ctx context.Context, limit int, items []T, f func(context.Context, T) error) error {
	_, _, err := Map(ctx, limit, items, func(ctx context.Context, item T) (struct{}, error) {
		return struct{}{}, f(ctx, item)
	})
	return err
}
