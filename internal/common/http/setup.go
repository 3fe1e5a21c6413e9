package http

import (
	"net/http"

	"github.com/AlibekovAA/carsle-auth/internal/common/constants"
	"github.com/AlibekovAA/carsle-auth/internal/common/httpmetrics"
	"github.com/AlibekovAA/carsle-auth/internal/common/logger"
)

// BuildBaseHandler wraps the router with the middleware every endpoint shares, outermost first.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	collector := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	return SecurityHeadersMiddleware(TraceIDMiddleware(collector.Wrap(recovery(maxRequestSize(handler)))))
}
