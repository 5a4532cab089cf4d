package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leapcube/pkg/core"
)

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close and metadata implementations.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    core.AdapterConfig
	Logger *slog.Logger
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		if b.Logger != nil {
			b.Logger.Debug("closing database connection")
		}
		err := b.DB.Close()
		b.DB = nil
		return err
	}
	return nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// ParseQualifiedName splits a table reference into schema and name.
// Uses defaultSchema if the reference is not qualified.
func ParseQualifiedName(table, defaultSchema string) (schema, name string) {
	if parts := strings.Split(table, "."); len(parts) == 2 {
		return parts[0], parts[1]
	}
	return defaultSchema, table
}

// Placeholder formats the n-th (1-based) bind parameter for a driver.
type Placeholder func(n int) string

// QuestionPlaceholder is used by drivers with positional ? parameters.
func QuestionPlaceholder(int) string { return "?" }

// DollarPlaceholder is used by drivers with numbered $N parameters.
func DollarPlaceholder(n int) string { return fmt.Sprintf("$%d", n) }

// GetTableMetadataCommon provides a shared implementation of GetTableMetadata.
// Uses information_schema.columns with driver-appropriate placeholders and
// resolves each raw column type into a core.DataType.
func (b *BaseSQLAdapter) GetTableMetadataCommon(ctx context.Context, table, defaultSchema string, ph Placeholder) (*core.TableMetadata, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	schema, tableName := ParseQualifiedName(table, defaultSchema)

	//nolint:gosec // Placeholders are safe - they come from the adapter (? or $N)
	query := fmt.Sprintf(`
		SELECT 
			column_name,
			data_type,
			is_nullable,
			ordinal_position
		FROM information_schema.columns 
		WHERE table_schema = %s AND table_name = %s
		ORDER BY ordinal_position
	`, ph(1), ph(2))

	if b.Logger != nil {
		b.Logger.Debug("reading column metadata", slog.String("schema", schema), slog.String("table", tableName))
	}

	rows, err := b.DB.QueryContext(ctx, query, schema, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []core.Column
	for rows.Next() {
		var col core.Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.Type, &nullable, &col.Position); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Nullable = nullable == "YES"
		col.DataType = core.ParseDataType(col.Type)
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}

	return &core.TableMetadata{
		Schema:  schema,
		Name:    tableName,
		Columns: columns,
	}, nil
}
