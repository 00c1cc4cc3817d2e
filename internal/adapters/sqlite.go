package adapters

import (
	"fmt"

	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteAdapter implements the DatabaseAdapter interface for SQLite
type SQLiteAdapter struct {
	gormAdapter
}

// newSQLiteAdapter creates a new SQLite database adapter
func newSQLiteAdapter() (*SQLiteAdapter, error) {
	dbPath := viper.GetString("DB_CONNECTION_STRING")

	// Configure the logger
	logLevel := logger.Silent
	if viper.GetString("ENV") == "development" {
		logLevel = logger.Info
	}

	// Open the database connection
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	// Auto migrate the schema
	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database schema: %v", err)
	}

	return &SQLiteAdapter{gormAdapter{db: db}}, nil
}
