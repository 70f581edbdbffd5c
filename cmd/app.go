package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/auditlog"
	auditpg "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/auditlog/postgres"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/core/events"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/notification"
	notificationpg "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/notification/postgres"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/payment"
	paymentpg "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/payment/postgres"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// app holds the wired ledger shared by the server and the operator commands.
type app struct {
	Config *internal.Config
	Logger *slog.Logger
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Bus    *events.EventBus

	Ledger        *payment.Service
	Audit         *auditlog.Service
	Notifications *notification.Service
}

func newApp(cfg *internal.Config) (*app, error) {
	lg := logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gdb, err := initGorm(db, lg)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	bus := events.NewEventBus(lg)

	notifications := notification.NewService(notificationpg.NewNotificationRepository(gdb), lg)
	notification.NewEventHandler(notifications, lg).RegisterEventHandlers(bus)

	ledger := payment.NewService(
		paymentpg.NewUnitOfWork(gdb),
		paymentpg.NewPaymentRepository(gdb),
		bus,
		lg,
		payment.Options{
			Currency:           cfg.Ledger.Currency,
			StrictVerification: cfg.Ledger.StrictVerification,
		},
	)

	audit := auditlog.NewService(auditpg.NewWriter(gdb), auditpg.NewReader(db), lg)

	lg.Info("ledger initialized",
		"env", cfg.Env,
		"currency", cfg.Ledger.Currency,
		"strict_verification", cfg.Ledger.StrictVerification)

	return &app{
		Config:        cfg,
		Logger:        lg,
		DB:            db,
		Gorm:          gdb,
		Bus:           bus,
		Ledger:        ledger,
		Audit:         audit,
		Notifications: notifications,
	}, nil
}

// Close waits for in-flight event handlers, then closes the pool.
func (a *app) Close(ctx context.Context) {
	if err := a.Bus.Drain(ctx); err != nil {
		a.Logger.Warn("event handlers still running at shutdown", "error", err)
	}
	if err := a.DB.Close(); err != nil {
		a.Logger.Error("database close error", "error", err)
	}
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	db, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

// initGorm shares the sqlx pool with GORM so both paths see one set of connections.
func initGorm(db *sqlx.DB, lg *slog.Logger) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormlogger.New(slog.NewLogLogger(lg.Handler(), slog.LevelWarn), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
}
