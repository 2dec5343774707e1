package deprecation

import "net/http"

// Wrap returns a function that reports the deprecation and then calls fn.
// The emission is attributed to the returned function's caller.
//
//	var doLogin = deprecation.Wrap(rec, login)
func Wrap(rec *Record, fn func()) func() {
	return func() {
		rec.emitSkip(2)
		fn()
	}
}

// WrapErr is Wrap for functions returning an error.
func WrapErr(rec *Record, fn func() error) func() error {
	return func() error {
		rec.emitSkip(2)
		return fn()
	}
}

// WrapCall is Wrap for single-argument functions. Functions with other
// shapes are wrapped by closing over them:
//
//	wrapped := deprecation.WrapCall(rec, func(in args) (int, error) {
//	    return open(in.path, in.mode)
//	})
func WrapCall[In, Out any](rec *Record, fn func(In) Out) func(In) Out {
	return func(in In) Out {
		rec.emitSkip(2)
		return fn(in)
	}
}

// WrapHandler returns an http.Handler that reports the deprecation on every
// request before delegating to next. Emissions carry no call site, because
// the caller is the HTTP server's serve loop.
func WrapHandler(rec *Record, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rec.emit("", 0)
		next.ServeHTTP(w, req)
	})
}
