package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/auditlog"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/notification"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/payment"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/transport"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/transport/rest"
	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startHTTPServer(cmd.Context())
	},
}

func startHTTPServer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	doc, err := rest.LoadOpenAPISpec(ctx, cfg.API.OpenAPIPath)
	if err != nil {
		a.Close(ctx)
		return err
	}

	metricsPath := ""
	if cfg.Observability.Metrics.Enabled {
		metricsPath = cfg.Observability.Metrics.Path
	}

	base := transport.NewBaseHandler(a.Logger)
	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.Handlers{
		Health:       rest.NewHealthHandler(base, a.DB),
		Payment:      payment.NewHandler(base, a.Ledger),
		AuditLog:     auditlog.NewHandler(base, a.Audit),
		Notification: notification.NewHandler(base, a.Notifications),
	}, rest.RouterOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		OpenAPI:        doc,
		MetricsPath:    metricsPath,
	}, a.Logger)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	serverErrChan := make(chan error, 1)
	go func() {
		a.Logger.Info("starting HTTP server", "address", addr)
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		a.Logger.Info("received signal, shutting down", "signal", sig.String())
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Close(ctx)
			return fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("server shutdown error", "error", err)
	}
	a.Close(shutdownCtx)

	a.Logger.Info("server stopped")
	return nil
}
