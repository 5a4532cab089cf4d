package core

import (
	"context"
)

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database.
	Connect(ctx context.Context, cfg AdapterConfig) error

	// Close closes the database connection.
	Close() error

	// GetTableMetadata retrieves metadata for a table.
	GetTableMetadata(ctx context.Context, table string) (*TableMetadata, error)

	// DefaultSchema returns the schema used when a table name is unqualified.
	DefaultSchema() string
}

// AdapterConfig holds configuration for connecting to a database.
type AdapterConfig struct {
	Type     string
	Path     string
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Schema   string
	Options  map[string]string
}

// Column represents a column in a database table or a declared stream field.
type Column struct {
	Name     string
	Type     string // raw type reported by the driver
	DataType DataType
	Nullable bool
	Position int
}

// TableMetadata holds metadata about a database table.
type TableMetadata struct {
	Schema  string
	Name    string
	Columns []Column
}

// Column looks up a column by exact (case-sensitive) name.
func (t *TableMetadata) Column(name string) (Column, bool) {
	if t == nil {
		return Column{}, false
	}
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ConnectionInfo identifies the database a model is built against.
// Name is the server-managed connection name, which is distinct from the
// underlying database name and is what indirect (JNDI style) access refers to.
type ConnectionInfo struct {
	Name    string
	Adapter AdapterConfig
	// Indirect requests that published models reference the connection by
	// name instead of embedding host and credentials.
	Indirect bool
}
