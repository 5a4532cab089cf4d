package model

import (
	"strings"

	"github.com/leapstack-labs/leapcube/pkg/core"
)

// ColumnKey identifies a physical column for matching across table versions.
// The name is lower-cased and timestamps are folded into dates, so both map
// hashing and == treat (x, date) and (X, timestamp) as the same column.
type ColumnKey struct {
	Name string
	Type core.DataType
}

// NewColumnKey builds the matching key for a target column name and type.
func NewColumnKey(name string, dt core.DataType) ColumnKey {
	if dt == core.DataTypeTimestamp {
		dt = core.DataTypeDate
	}
	return ColumnKey{Name: strings.ToLower(name), Type: dt}
}

// KeyOf returns the matching key of a physical column.
func KeyOf(c *PhysicalColumn) ColumnKey {
	return NewColumnKey(c.TargetColumn, c.DataType)
}

// Equal reports whether two keys identify the same column.
func (k ColumnKey) Equal(other ColumnKey) bool {
	return k == other
}
