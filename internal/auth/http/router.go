package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AlibekovAA/carsle-auth/internal/auth/service"
	commonhttp "github.com/AlibekovAA/carsle-auth/internal/common/http"
	"github.com/AlibekovAA/carsle-auth/internal/common/logger"
)

type RouterConfig struct {
	RequestTimeout time.Duration
	AllowedOrigins []string
}

type Handler struct {
	auth   *service.AuthService
	otp    *service.OTPService
	errors *commonhttp.ErrorWriter
	log    *logger.Logger
}

func NewHandler(auth *service.AuthService, otp *service.OTPService, log *logger.Logger, cfg RouterConfig) http.Handler {
	h := &Handler{
		auth:   auth,
		otp:    otp,
		errors: commonhttp.NewErrorWriter(log),
		log:    log,
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Trace-ID"},
		ExposedHeaders: []string{"X-Trace-ID"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.errors.Write(w, r, http.StatusNotFound, "Not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.errors.Write(w, r, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	r.Get("/health", commonhttp.HealthHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Use(commonhttp.WithTimeout(cfg.RequestTimeout))

		r.Get("/signup/health", h.signupHealth)
		r.Post("/signup", h.signup)
		r.Post("/login", h.login)

		r.Get("/me", h.getMe)
		r.Patch("/me", h.updateMe)
		r.Delete("/me", h.deleteMe)

		r.Post("/otp/generate", h.generateOTP)
		r.Post("/otp/verify", h.verifyOTP)
	})

	return r
}
