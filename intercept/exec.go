package intercept

import (
	"context"
	"database/sql/driver"
)

type execContextFuncMiddleware = middleware[execContextFunc]

type execContextFunc func(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error)

// skippedExecContext always returns driver.ErrSkip so that database/sql falls back to prepare.
func skippedExecContext(_ context.Context, _ string, _ []driver.NamedValue) (driver.Result, error) {
	return nil, driver.ErrSkip
}

// execEvents emits an event for every exec.
func execEvents(r eventRecorder, category Category) execContextFuncMiddleware {
	return func(next execContextFunc) execContextFunc {
		return func(ctx context.Context, query string, args []driver.NamedValue) (result driver.Result, err error) {
			end := r.Record(ctx, category, query, args)

			defer func() {
				end(err)
			}()

			return next(ctx, query, args)
		}
	}
}
