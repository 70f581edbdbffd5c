// Package testutil opens throwaway SQLite databases carrying the ledger schema.
package testutil

import (
	"fmt"
	"path/filepath"

	activityDatamodel "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/core/datamodel/activitylog"
	notificationDatamodel "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/core/datamodel/notification"
	paymentDatamodel "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/core/datamodel/payment"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type DB struct {
	Gorm *gorm.DB
	Sqlx *sqlx.DB
}

// Close releases the shared connection pool.
func (d *DB) Close() error {
	return d.Sqlx.Close()
}

// OpenSQLite creates a file database under dir. Immediate transactions and a
// busy timeout let concurrent writers queue instead of failing.
func OpenSQLite(dir string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_txlock=immediate&_journal_mode=WAL",
		filepath.Join(dir, "ledger.db"))

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := gdb.AutoMigrate(
		&paymentDatamodel.Payment{},
		&activityDatamodel.ActivityLog{},
		&notificationDatamodel.Notification{},
	); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}

	return &DB{
		Gorm: gdb,
		Sqlx: sqlx.NewDb(sqlDB, "sqlite3"),
	}, nil
}
