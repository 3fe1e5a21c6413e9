package httpmetrics

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// UnmatchedRoute labels requests no registered route accepted, keeping label cardinality fixed.
const UnmatchedRoute = "unmatched"

// withRouteContext seeds a chi routing context so the pattern chi matches downstream is visible here.
func withRouteContext(r *http.Request) *http.Request {
	if chi.RouteContext(r.Context()) != nil {
		return r
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, chi.NewRouteContext()))
}

// RouteLabel returns the matched route pattern, or UnmatchedRoute.
func RouteLabel(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return UnmatchedRoute
	}
	pattern := rctx.RoutePattern()
	if pattern == "" || pattern == "/*" {
		return UnmatchedRoute
	}
	return pattern
}
