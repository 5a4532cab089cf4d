package model

import (
	"testing"

	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestColumnKey_Equality(t *testing.T) {
	tests := []struct {
		name string
		a, b ColumnKey
		want bool
	}{
		{
			name: "case-insensitive name and date folded with timestamp",
			a:    NewColumnKey("x", core.DataTypeDate),
			b:    NewColumnKey("X", core.DataTypeTimestamp),
			want: true,
		},
		{
			name: "different types",
			a:    NewColumnKey("x", core.DataTypeDate),
			b:    NewColumnKey("x", core.DataTypeString),
			want: false,
		},
		{
			name: "different names",
			a:    NewColumnKey("amount", core.DataTypeNumber),
			b:    NewColumnKey("total", core.DataTypeNumber),
			want: false,
		},
		{
			name: "integer is not number",
			a:    NewColumnKey("qty", core.DataTypeInteger),
			b:    NewColumnKey("qty", core.DataTypeNumber),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.a == tt.b)
		})
	}
}

func TestColumnKey_MapLookupFolds(t *testing.T) {
	lookup := map[ColumnKey]string{
		NewColumnKey("ORDERDATE", core.DataTypeTimestamp): "new",
	}

	got, ok := lookup[KeyOf(&PhysicalColumn{TargetColumn: "OrderDate", DataType: core.DataTypeDate})]
	assert.True(t, ok)
	assert.Equal(t, "new", got)
}
