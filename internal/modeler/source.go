package modeler

import (
	"context"
	"slices"

	"github.com/leapstack-labs/leapcube/pkg/core"
)

// TableSource supplies the columns a model is built from.
// *adapter.Table reads them from a live database table.
type TableSource interface {
	TableName() string
	SchemaName() string
	Columns(ctx context.Context) ([]core.Column, error)
}

// StreamSource is the declared output of a transformation: a fixed list of
// fields written to TargetTable.
type StreamSource struct {
	TargetSchema string
	TargetTable  string
	Fields       []core.Column
}

// TableName implements TableSource.
func (s *StreamSource) TableName() string { return s.TargetTable }

// SchemaName implements TableSource.
func (s *StreamSource) SchemaName() string { return s.TargetSchema }

// Columns implements TableSource.
func (s *StreamSource) Columns(context.Context) ([]core.Column, error) {
	return slices.Clone(s.Fields), nil
}
