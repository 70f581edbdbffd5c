package rest

import (
	"log/slog"
	"net/http"

	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/auditlog"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/notification"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/payment"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/transport"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/transport/middleware"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/transport/swagger"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups what the router mounts. Nil handlers leave their routes out.
type Handlers struct {
	Health       *HealthHandler
	Payment      *payment.Handler
	AuditLog     *auditlog.Handler
	Notification *notification.Handler
}

type RouterOptions struct {
	AllowedOrigins string
	// OpenAPI, when set, is served at /openapi.yml and browsed at /swagger/.
	OpenAPI *openapi3.T
	// MetricsPath, when set, exposes the Prometheus registry.
	MetricsPath string
}

func RegisterAllRoutes(router chi.Router, h Handlers, opts RouterOptions, logger *slog.Logger) {
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.Logging)
	router.Use(middleware.Recovery)
	if opts.MetricsPath != "" {
		router.Use(middleware.Metrics)
		router.Handle(opts.MetricsPath, promhttp.Handler())
	}

	if opts.OpenAPI != nil {
		router.Get("/openapi.yml", openAPIHandler(opts.OpenAPI))
		router.Handle("/swagger/*", swagger.Handler("/openapi.yml"))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		transport.NewBaseHandler(logger).WriteJSON(w, http.StatusNotFound, map[string]string{"error": "route not found"})
	})

	router.Route("/api/v1", func(r chi.Router) {
		if h.Health != nil {
			r.Get("/health", h.Health.Health)
			r.Get("/ping", h.Health.Ping)
		}

		if h.Payment != nil {
			r.Route("/payments", func(pr chi.Router) {
				pr.Post("/", h.Payment.CreatePayment)
				pr.Get("/{id}", h.Payment.GetPayment)
				pr.Patch("/{id}/verify", h.Payment.VerifyPayment)
			})
			r.Get("/payers/{payerType}/{payerID}/payments", h.Payment.ListPaymentsByPayer)
		}

		if h.AuditLog != nil {
			r.Get("/users/{userID}/activity-logs", h.AuditLog.ListForUser)
			r.Post("/activity-logs", h.AuditLog.Append)
		}

		if h.Notification != nil {
			r.Get("/users/{userID}/notifications/unread-count", h.Notification.UnreadCount)
			r.Patch("/notifications/{id}/read", h.Notification.MarkAsRead)
		}
	})
}
