// file: database/connect.go
package database

import (
	"fmt"
	"strings"
	"time"

	"MYR/config"
	"MYR/models"

	"github.com/xo/dburl"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"moul.io/zapgorm2"
)

// Dialector picks the gorm driver from DATABASE_URL. mysql://, postgres:// (and the
// legacy postgres scheme used by hosted databases) and sqlite: are supported.
func Dialector(databaseURL string) (gorm.Dialector, error) {
	u, err := dburl.Parse(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	switch u.UnaliasedDriver {
	case "mysql":
		dsn := u.DSN
		if !strings.Contains(dsn, "parseTime") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "charset=utf8mb4&parseTime=True&loc=Local"
		}
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(u.DSN), nil
	case "sqlite3":
		return sqlite.Open(u.DSN), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", u.Driver)
}

// Connect opens the database and configures the pool.
func Connect(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdle)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpen)
	// Recycle connections before MySQL's wait_timeout closes them.
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("database connection established", zap.String("dialect", dialector.Name()))
	return db, nil
}

// NewGormLogger sends gorm's warnings, errors and slow queries to log.
func NewGormLogger(log *zap.Logger) logger.Interface {
	gl := zapgorm2.New(log.Named("gorm"))
	gl.LogLevel = logger.Warn
	gl.SlowThreshold = 200 * time.Millisecond
	gl.IgnoreRecordNotFoundError = true
	return gl
}

// MigrateTables creates or updates every table the app uses.
func MigrateTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.ConfirmedSlot{},
		&models.Notice{},
		&models.ClubEvent{},
		&models.Instrument{},
		&models.InstrumentReservation{},
	)
}

// Close releases the pool.
func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
