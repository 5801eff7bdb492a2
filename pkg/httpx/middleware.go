// Package httpx holds the net/http plumbing shared by the accounts service:
// middleware chaining, cookie transport, authentication, CSRF, CORS and rate
// limiting.
package httpx

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain wraps h with m so that m[0] is the outermost middleware and runs
// first.
func Chain(h http.Handler, m ...Middleware) http.Handler {
	for i := len(m) - 1; i >= 0; i-- {
		h = m[i](h)
	}
	return h
}

// IsSafeMethod reports whether method is one that must not change state.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}
