// Package sqlite provides a SQLite database adapter for leapcube, backed by
// the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapcube/pkg/adapter"
	"github.com/leapstack-labs/leapcube/pkg/core"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// DefaultSchema returns the name SQLite gives the primary database.
func (a *Adapter) DefaultSchema() string {
	return "main"
}

// Connect opens the SQLite database file (":memory:" when empty).
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// Exec executes a statement that returns no rows.
func (a *Adapter) Exec(ctx context.Context, sqlStr string) error {
	if a.DB == nil {
		return fmt.Errorf("database connection not established")
	}
	if _, err := a.DB.ExecContext(ctx, sqlStr); err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}
	return nil
}

// GetTableMetadata reads declared column types through pragma_table_info,
// since SQLite has no information_schema.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	if a.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	schema, tableName := adapter.ParseQualifiedName(table, a.DefaultSchema())

	rows, err := a.DB.QueryContext(ctx,
		`SELECT name, type, "notnull", cid FROM pragma_table_info(?, ?) ORDER BY cid`,
		tableName, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []core.Column
	for rows.Next() {
		var col core.Column
		var notNull int
		if err := rows.Scan(&col.Name, &col.Type, &notNull, &col.Position); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Position++
		col.Nullable = notNull == 0
		col.DataType = core.ParseDataType(col.Type)
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}

	return &core.TableMetadata{Schema: schema, Name: tableName, Columns: columns}, nil
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
