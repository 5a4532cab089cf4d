package model

import (
	"slices"

	"github.com/leapstack-labs/leapcube/pkg/core"
)

// LogicalTypeCategory is the type an analysis schema declares on a Level or
// Measure element. Each category accepts a fixed set of physical column types.
type LogicalTypeCategory int

// Logical type categories.
const (
	CategoryString LogicalTypeCategory = iota + 1
	CategoryNumeric
	CategoryBoolean
	CategoryDate
	CategoryTime
	CategoryTimestamp
)

var categoryNames = map[LogicalTypeCategory]string{
	CategoryString:    "String",
	CategoryNumeric:   "Numeric",
	CategoryBoolean:   "Boolean",
	CategoryDate:      "Date",
	CategoryTime:      "Time",
	CategoryTimestamp: "Timestamp",
}

// compatibleTypes is built once and never mutated.
var compatibleTypes = map[LogicalTypeCategory][]core.DataType{
	CategoryString:    {core.DataTypeString},
	CategoryNumeric:   {core.DataTypeBigNumber, core.DataTypeInteger, core.DataTypeNumber},
	CategoryBoolean:   {core.DataTypeBoolean},
	CategoryDate:      {core.DataTypeDate, core.DataTypeTimestamp},
	CategoryTime:      {core.DataTypeDate, core.DataTypeTimestamp},
	CategoryTimestamp: {core.DataTypeDate, core.DataTypeTimestamp},
}

func (c LogicalTypeCategory) String() string {
	return categoryNames[c]
}

// ParseLogicalTypeCategory resolves the exact, case-sensitive category name
// used in analysis schemas ("String", "Numeric", ...).
func ParseLogicalTypeCategory(name string) (LogicalTypeCategory, bool) {
	for c, n := range categoryNames {
		if n == name {
			return c, true
		}
	}
	return 0, false
}

// CompatibleTypes returns a copy of the physical types accepted by c.
func (c LogicalTypeCategory) CompatibleTypes() []core.DataType {
	return slices.Clone(compatibleTypes[c])
}

// Accepts reports whether a column of physical type dt may back c.
func (c LogicalTypeCategory) Accepts(dt core.DataType) bool {
	return slices.Contains(compatibleTypes[c], dt)
}
