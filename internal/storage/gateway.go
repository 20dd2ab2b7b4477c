package storage

import (
	"context"
	"fmt"
)

// Row is a single result row keyed by column name
type Row map[string]interface{}

// Int64 returns the column as an int64, false when absent or NULL
func (r Row) Int64(col string) (int64, bool) {
	switch v := r[col].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// NullInt64 returns a pointer to the column value, nil when NULL
func (r Row) NullInt64(col string) *int64 {
	v, ok := r.Int64(col)
	if !ok {
		return nil
	}
	return &v
}

// String returns the column as a string, "" when absent or NULL
func (r Row) String(col string) string {
	s, _ := r[col].(string)
	return s
}

// NullString returns a pointer to the column value, nil when NULL
func (r Row) NullString(col string) *string {
	s, ok := r[col].(string)
	if !ok {
		return nil
	}
	return &s
}

// Bool returns the column as a bool; integer columns are true when non-zero
func (r Row) Bool(col string) bool {
	switch v := r[col].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	default:
		return false
	}
}

// Result carries the metadata of a write statement
type Result struct {
	AffectedCount int64
	InsertedID    int64
}

// Gateway executes parameterized statements against a relational database.
// Statements use '?' placeholders regardless of the underlying engine.
type Gateway interface {
	QueryAll(ctx context.Context, query string, args ...interface{}) ([]Row, error)
	// QueryOne returns nil and no error when the query yields no rows
	QueryOne(ctx context.Context, query string, args ...interface{}) (Row, error)
	Execute(ctx context.Context, query string, args ...interface{}) (Result, error)
	Close() error
}

// Error reports a failure of the storage engine
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
