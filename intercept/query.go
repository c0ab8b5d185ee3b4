package intercept

import (
	"context"
	"database/sql/driver"
)

type queryContextFuncMiddleware = middleware[queryContextFunc]

type queryContextFunc func(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error)

// skippedQueryContext always returns driver.ErrSkip so that database/sql falls back to prepare.
func skippedQueryContext(_ context.Context, _ string, _ []driver.NamedValue) (driver.Rows, error) {
	return nil, driver.ErrSkip
}

// queryEvents emits an event for every query.
func queryEvents(r eventRecorder, category Category) queryContextFuncMiddleware {
	return func(next queryContextFunc) queryContextFunc {
		return func(ctx context.Context, query string, args []driver.NamedValue) (rows driver.Rows, err error) {
			end := r.Record(ctx, category, query, args)

			defer func() {
				end(err)
			}()

			rows, err = next(ctx, query, args)

			return
		}
	}
}
