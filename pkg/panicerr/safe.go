package panicerr

import (
	"context"

	"github.com/sourcegraph/conc/panics"
)

// Safe wraps a function that returns an error, catching any panics and returning them as an error.
func Safe(fn func() error) func() error {
	return func() error {
		var (
			catcher panics.Catcher
			err     error
		)
		catcher.Try(func() {
			err = fn()
		})
		if err != nil {
			return err
		}
		return catcher.Recovered().AsError()
	}
}

// Call runs fn and converts a panic into an error. The zero value of T is
// returned alongside a recovered panic.
func Call[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	var (
		result T
		err    error
	)
	recovered := panics.Try(func() {
		result, err = fn(ctx)
	})
	if recovered != nil {
		var zero T
		return zero, recovered.AsError()
	}
	return result, err
}
