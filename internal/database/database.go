package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rohingrover/absuma/config"
	"github.com/rohingrover/absuma/internal/models"
)

// Connect establishes a connection to the database
func Connect(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormLogger := gormlogger.New(
		&logAdapter{},
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Error,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
		// Surface unique/foreign-key violations as gorm.ErrDuplicatedKey etc.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Migrate runs database migrations
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Location{},
		&models.Vehicle{},
		&models.VehicleFinancing{},
		&models.Driver{},
		&models.VehicleDocument{},
		&models.YardLocation{},
		&models.Client{},
		&models.ClientRate{},
		&models.ClientDocument{},
		&models.ClientContact{},
		&models.Vendor{},
		&models.VendorVehicle{},
		&models.Trip{},
	); err != nil {
		return err
	}

	// Soft-deleted entities need partial unique indexes so deleted rows do
	// not block code reuse. AutoMigrate cannot declare these.
	partials := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS udx_yard_code_live ON yard_locations (yard_code) WHERE deleted_at IS NULL AND yard_code IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS udx_yard_name_location_live ON yard_locations (yard_name, location_id) WHERE deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS udx_client_code_live ON clients (client_code) WHERE deleted_at IS NULL`,
	}
	for _, stmt := range partials {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create partial index: %w", err)
		}
	}

	return nil
}

// IsRecordNotFoundError checks if an error is a record not found error
func IsRecordNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKeyError checks if an error is a unique constraint violation
func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// logAdapter adapts the GORM logger to the application logger
type logAdapter struct{}

func (l *logAdapter) Printf(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}
