package model

import (
	"testing"

	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogicalTypeCategory(t *testing.T) {
	c, ok := ParseLogicalTypeCategory("Numeric")
	require.True(t, ok)
	assert.Equal(t, CategoryNumeric, c)
	assert.Equal(t, "Numeric", c.String())

	_, ok = ParseLogicalTypeCategory("numeric")
	assert.False(t, ok, "category names are case-sensitive")
	_, ok = ParseLogicalTypeCategory("Integer")
	assert.False(t, ok)
}

func TestLogicalTypeCategory_Accepts(t *testing.T) {
	tests := []struct {
		category LogicalTypeCategory
		dataType core.DataType
		want     bool
	}{
		{CategoryString, core.DataTypeString, true},
		{CategoryString, core.DataTypeInteger, false},
		{CategoryNumeric, core.DataTypeInteger, true},
		{CategoryNumeric, core.DataTypeNumber, true},
		{CategoryNumeric, core.DataTypeBigNumber, true},
		{CategoryNumeric, core.DataTypeString, false},
		{CategoryBoolean, core.DataTypeBoolean, true},
		{CategoryDate, core.DataTypeTimestamp, true},
		{CategoryTime, core.DataTypeDate, true},
		{CategoryTimestamp, core.DataTypeDate, true},
		{CategoryTimestamp, core.DataTypeString, false},
	}

	for _, tt := range tests {
		t.Run(tt.category.String()+"/"+tt.dataType.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.Accepts(tt.dataType))
		})
	}
}

func TestCompatibleTypes_ReturnsCopy(t *testing.T) {
	types := CategoryNumeric.CompatibleTypes()
	types[0] = core.DataTypeString

	assert.False(t, CategoryNumeric.Accepts(core.DataTypeString), "table must not be mutable through the returned slice")
}
