package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

const (
	opQueryAll = "query_all"
	opQueryOne = "query_one"
	opExecute  = "execute"
)

// SQLGateway implements Gateway on top of database/sql
type SQLGateway struct {
	db      *sql.DB
	dbType  DbType
	logger  *zap.Logger
	metrics *gatewayMetrics
}

type gatewayMetrics struct {
	operations metric.Int64Counter
	duration   metric.Float64Histogram
}

// NewSQLGateway wraps an open database handle. A nil meter disables metrics.
func NewSQLGateway(db *sql.DB, dbType DbType, logger *zap.Logger, meter metric.Meter) (*SQLGateway, error) {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("storage")
	}

	operations, err := meter.Int64Counter("storage_operations_total",
		metric.WithDescription("Number of storage gateway operations"))
	if err != nil {
		return nil, fmt.Errorf("failed to create operations counter: %w", err)
	}
	duration, err := meter.Float64Histogram("storage_operation_duration",
		metric.WithDescription("Duration of storage gateway operations"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &SQLGateway{
		db:     db,
		dbType: dbType,
		logger: logger.Named("gateway"),
		metrics: &gatewayMetrics{
			operations: operations,
			duration:   duration,
		},
	}, nil
}

// QueryAll runs a query and returns every resulting row
func (g *SQLGateway) QueryAll(ctx context.Context, query string, args ...interface{}) ([]Row, error) {
	start := time.Now()
	rows, err := g.query(ctx, query, args)
	g.record(ctx, opQueryAll, start, err)
	if err != nil {
		return nil, g.fail(opQueryAll, query, err)
	}
	return rows, nil
}

// QueryOne runs a query and returns its first row, or nil when there is none
func (g *SQLGateway) QueryOne(ctx context.Context, query string, args ...interface{}) (Row, error) {
	start := time.Now()
	rows, err := g.query(ctx, query, args)
	g.record(ctx, opQueryOne, start, err)
	if err != nil {
		return nil, g.fail(opQueryOne, query, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Execute runs a write statement and reports affected rows and, for inserts, the new id
func (g *SQLGateway) Execute(ctx context.Context, query string, args ...interface{}) (Result, error) {
	start := time.Now()
	res, err := g.exec(ctx, query, args)
	g.record(ctx, opExecute, start, err)
	if err != nil {
		return Result{}, g.fail(opExecute, query, err)
	}
	return res, nil
}

// Close releases the underlying database handle
func (g *SQLGateway) Close() error {
	return g.db.Close()
}

func (g *SQLGateway) query(ctx context.Context, query string, args []interface{}) ([]Row, error) {
	rows, err := g.db.QueryContext(ctx, g.bind(query), normalizeArgs(args)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func (g *SQLGateway) exec(ctx context.Context, query string, args []interface{}) (Result, error) {
	insert := isInsert(query)

	// lib/pq does not support LastInsertId
	if insert && g.dbType == DbTypePostgres {
		var id int64
		err := g.db.QueryRowContext(ctx, g.bind(query)+" RETURNING id", normalizeArgs(args)...).Scan(&id)
		if err != nil {
			return Result{}, err
		}
		return Result{AffectedCount: 1, InsertedID: id}, nil
	}

	res, err := g.db.ExecContext(ctx, g.bind(query), normalizeArgs(args)...)
	if err != nil {
		return Result{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Result{}, err
	}
	result := Result{AffectedCount: affected}
	if insert {
		if result.InsertedID, err = res.LastInsertId(); err != nil {
			return Result{}, err
		}
	}
	return result, nil
}

func (g *SQLGateway) fail(op, query string, err error) error {
	g.logger.Warn("storage operation failed",
		zap.String("op", op),
		zap.String("query", strings.Join(strings.Fields(query), " ")),
		zap.Error(err))
	return &Error{Op: op, Err: err}
}

func (g *SQLGateway) record(ctx context.Context, op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("db_type", g.dbType.String()),
		attribute.String("status", status),
	)
	g.metrics.operations.Add(ctx, 1, attrs)
	g.metrics.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000, attrs)
}

// bind rewrites '?' placeholders into the engine's native form
func (g *SQLGateway) bind(query string) string {
	if g.dbType != DbTypePostgres {
		return query
	}
	var b strings.Builder
	n := 0
	quoted := false
	for _, c := range query {
		switch {
		case c == '\'':
			quoted = !quoted
		case c == '?' && !quoted:
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := make([]Row, 0)
	for rows.Next() {
		values := make([]interface{}, len(cols))
		dest := make([]interface{}, len(cols))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// normalizeArgs converts decoded JSON numbers into driver values
func normalizeArgs(args []interface{}) []interface{} {
	out := make([]interface{}, len(args))
	for i, arg := range args {
		if n, ok := arg.(json.Number); ok {
			if v, err := n.Int64(); err == nil {
				out[i] = v
			} else if f, err := n.Float64(); err == nil {
				out[i] = f
			} else {
				out[i] = n.String()
			}
			continue
		}
		out[i] = arg
	}
	return out
}

func isInsert(query string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "INSERT")
}

// Ensure SQLGateway implements the interface.
var _ Gateway = (*SQLGateway)(nil)
