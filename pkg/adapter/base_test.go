package adapter

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseSQLAdapter_Close(t *testing.T) {
	tests := []struct {
		name      string
		setupDB   bool
		expectErr bool
	}{
		{
			name:      "close with nil DB",
			setupDB:   false,
			expectErr: false,
		},
		{
			name:      "close with open DB",
			setupDB:   true,
			expectErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &BaseSQLAdapter{}

			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectClose()
				base.DB = db
			}

			err := base.Close()
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.False(t, base.IsConnected())
		})
	}
}

func TestParseQualifiedName(t *testing.T) {
	tests := []struct {
		table      string
		wantSchema string
		wantName   string
	}{
		{"orders", "public", "orders"},
		{"sales.orders", "sales", "orders"},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			schema, name := ParseQualifiedName(tt.table, "public")
			assert.Equal(t, tt.wantSchema, schema)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestBaseSQLAdapter_GetTableMetadataCommon(t *testing.T) {
	tests := []struct {
		name      string
		setupDB   bool
		setupMock func(mock sqlmock.Sqlmock)
		table     string
		expectErr bool
		errMsg    string
		verify    func(t *testing.T, meta *core.TableMetadata)
	}{
		{
			name:      "without connection",
			setupDB:   false,
			table:     "orders",
			expectErr: true,
			errMsg:    "database connection not established",
		},
		{
			name:    "columns with resolved data types",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "ordinal_position"}).
					AddRow("ORDERNUMBER", "integer", "NO", 1).
					AddRow("CUSTOMERNAME", "character varying", "YES", 2).
					AddRow("ORDERDATE", "timestamp without time zone", "YES", 3).
					AddRow("TOTALPRICE", "numeric", "YES", 4)
				mock.ExpectQuery("SELECT").WithArgs("sales", "orders").WillReturnRows(rows)
			},
			table: "sales.orders",
			verify: func(t *testing.T, meta *core.TableMetadata) {
				assert.Equal(t, "sales", meta.Schema)
				assert.Equal(t, "orders", meta.Name)
				require.Len(t, meta.Columns, 4)
				assert.Equal(t, core.DataTypeInteger, meta.Columns[0].DataType)
				assert.False(t, meta.Columns[0].Nullable)
				assert.Equal(t, core.DataTypeString, meta.Columns[1].DataType)
				assert.Equal(t, core.DataTypeTimestamp, meta.Columns[2].DataType)
				assert.Equal(t, core.DataTypeBigNumber, meta.Columns[3].DataType)
				assert.Equal(t, 4, meta.Columns[3].Position)
			},
		},
		{
			name:    "empty table yields no columns",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "ordinal_position"})
				mock.ExpectQuery("SELECT").WithArgs("public", "missing").WillReturnRows(rows)
			},
			table: "missing",
			verify: func(t *testing.T, meta *core.TableMetadata) {
				assert.Empty(t, meta.Columns)
			},
		},
		{
			name:    "query error",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)
			},
			table:     "orders",
			expectErr: true,
			errMsg:    "failed to query column metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			base := &BaseSQLAdapter{}

			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				defer func() { _ = db.Close() }()

				if tt.setupMock != nil {
					tt.setupMock(mock)
				}
				base.DB = db
			}

			meta, err := base.GetTableMetadataCommon(ctx, tt.table, "public", DollarPlaceholder)
			if tt.expectErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
				return
			}
			require.NoError(t, err)
			if tt.verify != nil {
				tt.verify(t, meta)
			}
		})
	}
}
