package intercept

import (
	"context"
	"database/sql/driver"
)

type beginFuncMiddleware = middleware[beginFunc]

type beginFunc func(ctx context.Context, opts driver.TxOptions) (driver.Tx, error)

func ensureBegin(conn driver.Conn) beginFunc {
	if b, ok := conn.(driver.ConnBeginTx); ok {
		return b.BeginTx
	}

	return func(_ context.Context, _ driver.TxOptions) (driver.Tx, error) {
		return conn.Begin() // nolint: staticcheck
	}
}

// beginEvents emits an event for every begin.
func beginEvents(r eventRecorder) beginFuncMiddleware {
	return func(next beginFunc) beginFunc {
		return func(ctx context.Context, opts driver.TxOptions) (tx driver.Tx, err error) {
			end := r.Record(ctx, CategoryBegin, "", nil)

			defer func() {
				end(err)
			}()

			return next(ctx, opts)
		}
	}
}

func beginWrapTx(r eventRecorder) beginFuncMiddleware {
	return func(next beginFunc) beginFunc {
		return func(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
			tx, err := next(ctx, opts)
			if err != nil {
				return nil, err
			}

			return wrapTx(ctx, tx, r), nil
		}
	}
}

func makeBeginFuncMiddlewares(r eventRecorder) []beginFuncMiddleware {
	return []beginFuncMiddleware{
		beginEvents(r), beginWrapTx(r),
	}
}
