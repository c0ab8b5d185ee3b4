package intercept

type middleware[T any] func(next T) T

// chainMiddlewares builds an inline middleware stack in the order they are passed.
func chainMiddlewares[T any](middlewares []middleware[T], last T) T {
	if len(middlewares) == 0 {
		return last
	}

	h := middlewares[len(middlewares)-1](last)

	for i := len(middlewares) - 2; i >= 0; i-- {
		h = middlewares[i](h)
	}

	return h
}
