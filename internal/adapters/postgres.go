package adapters

import (
	"fmt"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresAdapter implements the DatabaseAdapter interface for PostgreSQL
type PostgresAdapter struct {
	gormAdapter
}

// newPostgresAdapter creates a new PostgreSQL database adapter
func newPostgresAdapter() (*PostgresAdapter, error) {
	dsn := viper.GetString("DB_CONNECTION_STRING")

	// Configure the logger
	logLevel := logger.Silent
	if viper.GetString("ENV") == "development" {
		logLevel = logger.Info
	}

	// Open the database connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	// Auto migrate the schema
	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database schema: %v", err)
	}

	return &PostgresAdapter{gormAdapter{db: db}}, nil
}
