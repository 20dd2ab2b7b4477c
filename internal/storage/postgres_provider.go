package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/shaibs3/election-api/internal/db_model"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// NewPostgresProvider connects to Postgres and bootstraps the schema
func NewPostgresProvider(config DbProviderConfig, logger *zap.Logger, meter metric.Meter) (*SQLGateway, error) {
	pgLogger := logger.Named("postgres")

	connStr, ok := config.ExtraDetails["conn_str"].(string)
	if !ok || connStr == "" {
		return nil, fmt.Errorf("conn_str is required for Postgres provider")
	}
	pgLogger.Info("initializing Postgres provider")

	dbConn, err := sql.Open("postgres", connStr)
	if err != nil {
		pgLogger.Error("failed to open Postgres connection", zap.Error(err))
		return nil, fmt.Errorf("failed to open Postgres connection: %w", err)
	}

	if err := dbConn.Ping(); err != nil {
		dbConn.Close()
		pgLogger.Error("failed to ping Postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to ping Postgres: %w", err)
	}

	// Automatically create tables if they do not exist
	if _, err := dbConn.Exec(db_model.PostgresSchema); err != nil {
		dbConn.Close()
		pgLogger.Error("failed to create initial tables", zap.Error(err))
		return nil, fmt.Errorf("failed to create initial tables: %w", err)
	}

	gateway, err := NewSQLGateway(dbConn, DbTypePostgres, logger, meter)
	if err != nil {
		dbConn.Close()
		return nil, err
	}

	pgLogger.Info("Postgres provider initialized successfully")
	return gateway, nil
}
