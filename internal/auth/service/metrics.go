package service

import (
	"github.com/AlibekovAA/carsle-auth/internal/observability/metrics"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
	outcomeError   = "error"
)

func recordOperation(operation, outcome string) {
	metrics.AuthOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

func incrementOTPGenerated() {
	metrics.OTPGeneratedTotal.Inc()
}
