package storage

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestGateway(t *testing.T) *SQLGateway {
	t.Helper()

	config := DbProviderConfig{
		DbType:       DbTypeSQLite,
		ExtraDetails: map[string]interface{}{"path": filepath.Join(t.TempDir(), "gateway.db")},
	}
	gateway, err := NewSQLiteProvider(config, zap.NewNop(), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = gateway.Close()
	})
	return gateway
}

func TestSQLGateway_ExecuteInsertReturnsID(t *testing.T) {
	g := setupTestGateway(t)
	ctx := context.Background()

	res, err := g.Execute(ctx, "INSERT INTO parties (name) VALUES (?)", "JS Juggernauts")
	require.NoError(t, err)
	require.Equal(t, int64(1), res.AffectedCount)
	require.Equal(t, int64(1), res.InsertedID)

	res, err = g.Execute(ctx, "INSERT INTO parties (name) VALUES (?)", "Heroes of HTML")
	require.NoError(t, err)
	require.Equal(t, int64(2), res.InsertedID)
}

func TestSQLGateway_QueryAllAndOne(t *testing.T) {
	g := setupTestGateway(t)
	ctx := context.Background()

	_, err := g.Execute(ctx, "INSERT INTO parties (name) VALUES (?)", "JS Juggernauts")
	require.NoError(t, err)
	_, err = g.Execute(ctx,
		"INSERT INTO candidates (first_name, last_name, industry_connected, party_id) VALUES (?, ?, ?, ?)",
		"Ronald", "Firbank", true, json.Number("1"))
	require.NoError(t, err)

	rows, err := g.QueryAll(ctx, "SELECT * FROM candidates")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Ronald", rows[0].String("first_name"))
	require.True(t, rows[0].Bool("industry_connected"))
	require.Equal(t, int64(1), *rows[0].NullInt64("party_id"))

	row, err := g.QueryOne(ctx, "SELECT * FROM parties WHERE id = ?", 1)
	require.NoError(t, err)
	require.Equal(t, "JS Juggernauts", row.String("name"))

	row, err = g.QueryOne(ctx, "SELECT * FROM parties WHERE id = ?", 42)
	require.NoError(t, err)
	require.Nil(t, row)
}

func TestSQLGateway_ExecuteReportsAffectedCount(t *testing.T) {
	g := setupTestGateway(t)
	ctx := context.Background()

	res, err := g.Execute(ctx, "DELETE FROM parties WHERE id = ?", 999)
	require.NoError(t, err)
	require.Equal(t, int64(0), res.AffectedCount)
	require.Equal(t, int64(0), res.InsertedID)
}

func TestSQLGateway_ParametersAreNotInterpolated(t *testing.T) {
	g := setupTestGateway(t)
	ctx := context.Background()

	name := "x'); DROP TABLE parties; --"
	_, err := g.Execute(ctx, "INSERT INTO parties (name) VALUES (?)", name)
	require.NoError(t, err)

	row, err := g.QueryOne(ctx, "SELECT name FROM parties WHERE id = ?", 1)
	require.NoError(t, err)
	require.Equal(t, name, row.String("name"))
}

func TestSQLGateway_ErrorsAreStorageErrors(t *testing.T) {
	g := setupTestGateway(t)
	ctx := context.Background()

	_, err := g.QueryAll(ctx, "SELECT * FROM missing_table")
	var storageErr *Error
	require.True(t, errors.As(err, &storageErr))
	require.Equal(t, opQueryAll, storageErr.Op)

	_, err = g.Execute(ctx, "INSERT INTO candidates (first_name) VALUES (?)", "Solo")
	require.True(t, errors.As(err, &storageErr))
	require.Equal(t, opExecute, storageErr.Op)

	require.NoError(t, g.Close())
	_, err = g.QueryOne(ctx, "SELECT * FROM parties")
	require.True(t, errors.As(err, &storageErr))
}

func TestSQLGateway_BindPostgres(t *testing.T) {
	g := &SQLGateway{dbType: DbTypePostgres}
	require.Equal(t,
		"UPDATE candidates SET party_id = $1 WHERE id = $2 AND first_name <> '?'",
		g.bind("UPDATE candidates SET party_id = ? WHERE id = ? AND first_name <> '?'"))

	g = &SQLGateway{dbType: DbTypeSQLite}
	require.Equal(t, "SELECT * FROM parties WHERE id = ?", g.bind("SELECT * FROM parties WHERE id = ?"))
}

func TestNormalizeArgs(t *testing.T) {
	out := normalizeArgs([]interface{}{json.Number("3"), json.Number("2.5"), "a", nil, true})
	require.Equal(t, []interface{}{int64(3), 2.5, "a", nil, true}, out)
}
