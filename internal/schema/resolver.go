package schema

import (
	"context"

	"github.com/leapstack-labs/leapcube/pkg/core"
)

// TableResolver supplies the table a schema is retargeted at.
// *adapter.Table resolves a live database table.
type TableResolver interface {
	// TableName is the name written into Table/@name.
	TableName() string
	// Columns introspects the table.
	Columns(ctx context.Context) ([]core.Column, error)
}
