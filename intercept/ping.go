package intercept

import "context"

type pingFuncMiddleware = middleware[pingFunc]

type pingFunc func(ctx context.Context) error

// nopPing pings nothing.
func nopPing(_ context.Context) error {
	return nil
}

// pingEvents emits an event for every ping.
func pingEvents(r eventRecorder) pingFuncMiddleware {
	return func(next pingFunc) pingFunc {
		return func(ctx context.Context) (err error) {
			end := r.Record(ctx, CategoryPing, "", nil)

			defer func() {
				end(err)
			}()

			return next(ctx)
		}
	}
}
