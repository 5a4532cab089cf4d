package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_GetTableMetadata(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)
	require.NoError(t, adp.Connect(ctx, core.AdapterConfig{Path: filepath.Join(t.TempDir(), "t.db")}))
	defer func() { _ = adp.Close() }()

	require.NoError(t, adp.Exec(ctx, `CREATE TABLE offices (
		OFFICECODE VARCHAR(10) NOT NULL,
		CITY TEXT,
		HEADCOUNT INTEGER,
		BUDGET DECIMAL(12,2),
		OPENED DATE
	)`))

	meta, err := adp.GetTableMetadata(ctx, "offices")
	require.NoError(t, err)
	assert.Equal(t, "main", meta.Schema)
	require.Len(t, meta.Columns, 5)

	assert.Equal(t, "OFFICECODE", meta.Columns[0].Name)
	assert.Equal(t, 1, meta.Columns[0].Position)
	assert.False(t, meta.Columns[0].Nullable)
	assert.Equal(t, core.DataTypeString, meta.Columns[0].DataType)
	assert.Equal(t, core.DataTypeString, meta.Columns[1].DataType)
	assert.Equal(t, core.DataTypeInteger, meta.Columns[2].DataType)
	assert.Equal(t, core.DataTypeBigNumber, meta.Columns[3].DataType)
	assert.Equal(t, core.DataTypeDate, meta.Columns[4].DataType)
}

func TestAdapter_NotConnected(t *testing.T) {
	adp := New(nil)
	_, err := adp.GetTableMetadata(context.Background(), "offices")
	assert.Error(t, err)
}
