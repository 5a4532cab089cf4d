package adapter_test

import (
	"context"
	"testing"

	"github.com/leapstack-labs/leapcube/pkg/adapter"
	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	// Import adapter packages to ensure adapters are registered via init()
	_ "github.com/leapstack-labs/leapcube/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/leapcube/pkg/adapters/mysql"
	_ "github.com/leapstack-labs/leapcube/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/leapcube/pkg/adapters/sqlite"
)

func TestIsRegistered(t *testing.T) {
	tests := []struct {
		name        string
		adapterName string
		expected    bool
	}{
		{"duckdb registered", "duckdb", true},
		{"postgres registered", "postgres", true},
		{"mysql registered", "mysql", true},
		{"sqlite registered", "sqlite", true},
		{"postgresql alias", "postgresql", true},
		{"mariadb alias", "MariaDB", true},
		{"sqlite3 alias", "sqlite3", true},
		{"unknown not registered", "unknown_db", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adapter.IsRegistered(tt.adapterName)
			assert.Equal(t, tt.expected, got, "IsRegistered(%q)", tt.adapterName)
		})
	}
}

func TestNewAdapter_UnknownType(t *testing.T) {
	_, err := adapter.NewAdapter(core.AdapterConfig{Type: "unknown_adapter"}, nil)
	require.Error(t, err, "NewAdapter(unknown_adapter) should fail")

	var unknownErr *adapter.UnknownAdapterError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "unknown_adapter", unknownErr.Type, "error type")
	assert.Contains(t, unknownErr.Available, "duckdb", "Available adapters should include duckdb")
}

func TestIntrospect_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := core.AdapterConfig{Type: "sqlite", Path: t.TempDir() + "/orders.db"}

	adp, err := adapter.NewAdapter(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, adp.Connect(ctx, cfg))
	seeder, ok := adp.(interface {
		Exec(ctx context.Context, sql string) error
	})
	require.True(t, ok)
	require.NoError(t, seeder.Exec(ctx, `CREATE TABLE orders (id INTEGER, customer TEXT, placed DATE)`))
	require.NoError(t, adp.Close())

	meta, err := adapter.Introspect(ctx, cfg, "orders", nil)
	require.NoError(t, err)
	require.Len(t, meta.Columns, 3)
	assert.Equal(t, core.DataTypeInteger, meta.Columns[0].DataType)
	assert.Equal(t, core.DataTypeString, meta.Columns[1].DataType)
	assert.Equal(t, core.DataTypeDate, meta.Columns[2].DataType)
}

func TestTable_Columns(t *testing.T) {
	ctx := context.Background()
	cfg := core.AdapterConfig{Type: "sqlite", Path: t.TempDir() + "/sales.db"}

	adp, err := adapter.NewAdapter(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, adp.Connect(ctx, cfg))
	seeder := adp.(interface {
		Exec(ctx context.Context, sql string) error
	})
	require.NoError(t, seeder.Exec(ctx, `CREATE TABLE sales (region TEXT, amount DECIMAL(10,2))`))
	require.NoError(t, adp.Close())

	table := &adapter.Table{Config: cfg, Schema: "main", Name: "sales"}
	assert.Equal(t, "sales", table.TableName())
	assert.Equal(t, "main", table.SchemaName())

	cols, err := table.Columns(ctx)
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, "amount", cols[1].Name)
	assert.Equal(t, core.DataTypeBigNumber, cols[1].DataType)

	_, err = (&adapter.Table{Config: core.AdapterConfig{Type: "nope"}, Name: "sales"}).Columns(ctx)
	assert.Error(t, err)
}
