package cerr

import (
	"context"
	"errors"
	"net/http"
)

// errNoResult is logged when a handler returned without reporting anything.
var errNoResult = errors.New("handler set neither a response nor an error")

// result is what a handler reports for the middleware to write.
type result struct {
	set      bool
	response any
	err      error
}

type resultKey struct{}

func resultFromContext(ctx context.Context) *result {
	res, _ := ctx.Value(resultKey{}).(*result)
	return res
}

func SetJSONResponse(ctx context.Context, response any) {
	if res := resultFromContext(ctx); res != nil {
		res.set, res.response, res.err = true, response, nil
	}
}

func SetJSONError(ctx context.Context, err error) {
	if res := resultFromContext(ctx); res != nil {
		res.set, res.response, res.err = true, nil, err
	}
}

func SetNewJSONError(ctx context.Context, code Code, msg string, err error) {
	SetJSONError(ctx, NewError(code, msg, err))
}

// SetJSONResult reports err when it is non-nil and response otherwise.
func SetJSONResult(ctx context.Context, response any, err error) {
	if err != nil {
		SetJSONError(ctx, err)
		return
	}
	SetJSONResponse(ctx, response)
}

// NewJSONResponseChiMiddleware lets handlers report a response or error via
// the Set* functions and writes the JSON envelope afterwards. A handler
// that reports nothing yields an internal error rather than an empty 200.
func NewJSONResponseChiMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			res := &result{}
			ctx := context.WithValue(r.Context(), resultKey{}, res)
			next.ServeHTTP(rw, r.WithContext(ctx))
			if !res.set {
				res.err = NewError(Internal, "server error", errNoResult)
			}
			extractToHTTPResponse(ctx, rw, res)
		})
	}
}
