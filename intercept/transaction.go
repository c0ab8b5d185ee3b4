package intercept

import (
	"context"
	"database/sql/driver"
)

var _ driver.Tx = (*tx)(nil)

type txFuncMiddleware = middleware[txFunc]

type txFunc func() error

type tx struct {
	commit   txFunc
	rollback txFunc
}

func (t tx) Commit() error {
	return t.commit()
}

func (t tx) Rollback() error {
	return t.rollback()
}

// wrapTx intercepts commit and rollback. Both are reported under the context of the begin call, without its
// cancellation, because database/sql may roll back after that context is done.
func wrapTx(ctx context.Context, parent driver.Tx, r eventRecorder) driver.Tx {
	ctx = context.WithoutCancel(ctx)

	return &tx{
		commit:   chainMiddlewares([]txFuncMiddleware{txEvents(ctx, r, CategoryCommit)}, parent.Commit),
		rollback: chainMiddlewares([]txFuncMiddleware{txEvents(ctx, r, CategoryRollback)}, parent.Rollback),
	}
}

func txEvents(ctx context.Context, r eventRecorder, category Category) txFuncMiddleware {
	return func(next txFunc) txFunc {
		return func() (err error) {
			end := r.Record(ctx, category, "", nil)

			defer func() {
				end(err)
			}()

			return next()
		}
	}
}
