package http

import (
	"net/http"
	"strconv"

	commonerrors "github.com/AlibekovAA/carsle-auth/internal/common/errors"
	"github.com/AlibekovAA/carsle-auth/internal/common/httpmetrics"
	"github.com/AlibekovAA/carsle-auth/internal/common/logger"
	"github.com/AlibekovAA/carsle-auth/internal/observability/metrics"
)

// ErrorWriter writes the failure envelope chosen by a handler and records what was hidden from the client.
type ErrorWriter struct {
	log *logger.Logger
}

func NewErrorWriter(log *logger.Logger) *ErrorWriter {
	return &ErrorWriter{log: log}
}

func (e *ErrorWriter) Write(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	ctx := r.Context()

	fields := logger.Fields{
		"status": status,
		"path":   r.URL.Path,
		"method": r.Method,
	}

	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		fields["error_code"] = domainErr.Code()
		fields["category"] = string(domainErr.Category())
		metrics.DomainErrorsTotal.WithLabelValues(
			string(domainErr.Category()),
			domainErr.Code(),
			strconv.Itoa(status),
		).Inc()
	}

	if status >= http.StatusInternalServerError {
		e.log.WithFields(ctx, fields).Errorf("request failed: %v", err)
	} else if err != nil && e.log.ShouldLog(logger.DEBUG) {
		e.log.WithFields(ctx, fields).Debugf("request rejected: %v", err)
	}

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(status),
		httpmetrics.RouteLabel(r),
		r.Method,
	).Inc()

	WriteError(w, status, message)
}
