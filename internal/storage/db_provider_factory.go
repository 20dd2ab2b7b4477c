package storage

import (
	"encoding/json"
	"fmt"

	"github.com/shaibs3/election-api/internal/telemetry"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ProviderFactory defines the interface for creating storage gateways
type ProviderFactory interface {
	CreateProvider(configJSON string) (Gateway, error)
}

// DbProviderFactory implements ProviderFactory for the supported engines
type DbProviderFactory struct {
	logger    *zap.Logger
	telemetry *telemetry.Telemetry
}

func NewDbProviderFactory(logger *zap.Logger, tel *telemetry.Telemetry) *DbProviderFactory {
	return &DbProviderFactory{
		logger:    logger.Named("factory"),
		telemetry: tel,
	}
}

func (f *DbProviderFactory) CreateProvider(configJSON string) (Gateway, error) {
	var config DbProviderConfig
	if err := json.Unmarshal([]byte(configJSON), &config); err != nil {
		return nil, fmt.Errorf("failed to parse database configuration JSON: %w", err)
	}

	f.logger.Info("creating database provider", zap.String("db_type", config.DbType.String()))

	if !config.DbType.IsValid() {
		return nil, fmt.Errorf("unsupported database type: %s", config.DbType)
	}

	var meter metric.Meter
	if f.telemetry != nil {
		meter = f.telemetry.Meter
	}

	var (
		gateway *SQLGateway
		err     error
	)
	switch config.DbType {
	case DbTypeSQLite:
		gateway, err = NewSQLiteProvider(config, f.logger, meter)
	case DbTypePostgres:
		gateway, err = NewPostgresProvider(config, f.logger, meter)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", config.DbType)
	}
	if err != nil {
		return nil, err
	}
	return gateway, nil
}
