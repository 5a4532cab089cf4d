// Package adapter provides the database adapter contract used by leapcube to
// introspect the tables it builds models from.
//
// Concrete adapter implementations are in pkg/adapters/ subdirectories and
// register themselves with the registry in their init() functions.
package adapter

import (
	"context"

	"github.com/leapstack-labs/leapcube/pkg/core"
)

// Type aliases for the core column vocabulary.
type (
	// Config is an alias for core.AdapterConfig.
	Config = core.AdapterConfig

	// Column is an alias for core.Column.
	Column = core.Column

	// Metadata is an alias for core.TableMetadata.
	Metadata = core.TableMetadata
)

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// GetTableMetadata retrieves the columns of a table. The table may be
	// qualified as schema.table; otherwise DefaultSchema is used.
	GetTableMetadata(ctx context.Context, table string) (*Metadata, error)

	// DefaultSchema returns the schema assumed for unqualified table names.
	DefaultSchema() string
}

var _ core.Adapter = Adapter(nil)
