package adapter

import (
	"context"
	"fmt"
	"log/slog"
)

// Introspect opens a connection for cfg, reads the columns of table and
// disconnects. The connection is released on every path, including failures.
func Introspect(ctx context.Context, cfg Config, table string, logger *slog.Logger) (_ *Metadata, err error) {
	adp, err := NewAdapter(cfg, logger)
	if err != nil {
		return nil, err
	}
	return IntrospectWith(ctx, adp, cfg, table)
}

// IntrospectWith is Introspect for an already constructed adapter.
func IntrospectWith(ctx context.Context, adp Adapter, cfg Config, table string) (_ *Metadata, err error) {
	if err := adp.Connect(ctx, cfg); err != nil {
		_ = adp.Close()
		return nil, err
	}
	defer func() {
		if cerr := adp.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close connection: %w", cerr)
		}
	}()

	return adp.GetTableMetadata(ctx, table)
}

// Table is a database table whose columns are read on demand through the
// adapter registry. Each Columns call opens and closes its own connection.
type Table struct {
	Config Config
	Schema string
	Name   string
	Logger *slog.Logger
}

// TableName returns the unqualified table name.
func (t *Table) TableName() string { return t.Name }

// SchemaName returns the schema, or "" for the adapter default.
func (t *Table) SchemaName() string { return t.Schema }

// Columns introspects the table.
func (t *Table) Columns(ctx context.Context) ([]Column, error) {
	name := t.Name
	if t.Schema != "" {
		name = t.Schema + "." + t.Name
	}
	meta, err := Introspect(ctx, t.Config, name, t.Logger)
	if err != nil {
		return nil, err
	}
	return meta.Columns, nil
}
