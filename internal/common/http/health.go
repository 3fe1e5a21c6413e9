package http

import (
	"net/http"

	"github.com/AlibekovAA/carsle-auth/internal/common/constants"
)

type HealthResponse struct {
	Server string `json:"server"`
	Status string `json:"status"`
}

func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, HealthResponse{Server: constants.ServiceName, Status: "OK"})
	}
}
