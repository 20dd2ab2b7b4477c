package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shaibs3/election-api/internal/db_model"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const defaultSQLitePath = "election.db"

// NewSQLiteProvider opens (creating if needed) the database file and bootstraps the schema
func NewSQLiteProvider(config DbProviderConfig, logger *zap.Logger, meter metric.Meter) (*SQLGateway, error) {
	sqliteLogger := logger.Named("sqlite")

	path, _ := config.ExtraDetails["path"].(string)
	if path == "" {
		path = defaultSQLitePath
	}
	sqliteLogger.Info("initializing SQLite provider", zap.String("path", path))

	dbConn, err := sql.Open("sqlite3", path)
	if err != nil {
		sqliteLogger.Error("failed to open SQLite database", zap.Error(err))
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := dbConn.Ping(); err != nil {
		dbConn.Close()
		sqliteLogger.Error("failed to ping SQLite", zap.Error(err))
		return nil, fmt.Errorf("failed to ping SQLite: %w", err)
	}

	if _, err := dbConn.Exec(db_model.SQLiteSchema); err != nil {
		dbConn.Close()
		sqliteLogger.Error("failed to create initial tables", zap.Error(err))
		return nil, fmt.Errorf("failed to create initial tables: %w", err)
	}

	gateway, err := NewSQLGateway(dbConn, DbTypeSQLite, logger, meter)
	if err != nil {
		dbConn.Close()
		return nil, err
	}

	sqliteLogger.Info("SQLite provider initialized successfully")
	return gateway, nil
}
