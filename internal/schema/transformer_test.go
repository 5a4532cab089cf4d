package schema

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcube/internal/testutil"
	"github.com/leapstack-labs/leapcube/pkg/core"
)

const ordersSchema = `<?xml version="1.0" encoding="UTF-8"?>
<Schema name="OldModel" description="generated">
  <!-- customer orders -->
  <Cube name='OldModel' cache="true">
    <Table name="old_orders" schema="public"/>
    <Dimension name="Customer">
      <Hierarchy hasAll="true" primaryKey="CUSTOMERNAME">
        <Level name="Customer" column="CUSTOMERNAME" type="String" uniqueMembers="false"/>
        <Level name="Postal Code" column="POSTALCODE"   uniqueMembers="false"/>
      </Hierarchy>
    </Dimension>
    <Dimension name="Time" type="TimeDimension">
      <Hierarchy hasAll="true">
        <Level name="Date" column="ORDERDATE" type="Date" levelType="TimeDays"/>
      </Hierarchy>
    </Dimension>
    <Measure name="Quantity" column="QUANTITYORDERED" aggregator="sum" formatString="#,###"/>
    <Measure name="Price" column="TOTALPRICE" aggregator="sum" type="Numeric"/>
  </Cube>
</Schema>
`

func ordersTable() StaticResolver {
	return StaticResolver{Name: "orders", Fields: []core.Column{
		{Name: "CUSTOMERNAME", DataType: core.DataTypeString},
		{Name: "POSTALCODE", DataType: core.DataTypeString},
		{Name: "ORDERDATE", DataType: core.DataTypeTimestamp},
		{Name: "QUANTITYORDERED", DataType: core.DataTypeInteger},
		{Name: "TOTALPRICE", DataType: core.DataTypeNumber},
	}}
}

type StaticResolver struct {
	Name   string
	Fields []core.Column
}

func (r StaticResolver) TableName() string { return r.Name }

func (r StaticResolver) Columns(context.Context) ([]core.Column, error) { return r.Fields, nil }

type failingResolver struct{ err error }

func (failingResolver) TableName() string { return "orders" }

func (r failingResolver) Columns(context.Context) ([]core.Column, error) { return nil, r.err }

func TestReplaceTableAndSchemaNames(t *testing.T) {
	tr := New(ordersTable(), testutil.NewTestLogger(t))

	got, err := tr.ReplaceTableAndSchemaNames(context.Background(), ordersSchema, "Sales")
	require.NoError(t, err)

	want := strings.NewReplacer(
		`<Schema name="OldModel"`, `<Schema name="Sales"`,
		`<Cube name='OldModel'`, `<Cube name='Sales'`,
		`<Table name="old_orders"`, `<Table name="orders"`,
	).Replace(ordersSchema)
	assert.Equal(t, want, got)
}

func TestReplaceTableAndSchemaNames_EscapesName(t *testing.T) {
	tr := New(ordersTable(), nil)

	got, err := tr.ReplaceTableAndSchemaNames(context.Background(), ordersSchema, `Sales & "Returns"`)
	require.NoError(t, err)

	assert.Contains(t, got, `<Schema name="Sales &amp; &#34;Returns&#34;" description="generated">`)
	assert.Contains(t, got, `<Cube name='Sales &amp; &#34;Returns&#34;' cache="true">`)
}

func TestReplaceTableAndSchemaNames_RepeatedTableName(t *testing.T) {
	schema := `<Schema name="s"><Cube name="c"><Table name="t"/></Cube><Dimension name="d"><Hierarchy><Table name="t"/></Hierarchy></Dimension></Schema>`
	tr := New(StaticResolver{Name: "orders"}, nil)

	got, err := tr.ReplaceTableAndSchemaNames(context.Background(), schema, "m")
	require.NoError(t, err)
	assert.Equal(t, `<Schema name="m"><Cube name="m"><Table name="orders"/></Cube><Dimension name="d"><Hierarchy><Table name="orders"/></Hierarchy></Dimension></Schema>`, got)
}

func TestReplaceTableAndSchemaNames_StructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		message string
	}{
		{
			name:    "two distinct tables",
			schema:  `<Schema name="s"><Cube name="c"><Table name="a"/></Cube><Dimension name="d"><Hierarchy><Table name="b"/></Hierarchy></Dimension></Schema>`,
			message: "exactly one table but references 2",
		},
		{
			name:    "no table",
			schema:  `<Schema name="s"><Cube name="c"/></Schema>`,
			message: "exactly one table but references 0",
		},
		{
			name:    "two cubes",
			schema:  `<Schema name="s"><Cube name="a"><Table name="t"/></Cube><Cube name="b"><Table name="t"/></Cube></Schema>`,
			message: "exactly one cube but contains 2",
		},
		{
			name:    "unterminated attribute",
			schema:  `<Schema name="s`,
			message: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(ordersTable(), nil)
			got, err := tr.ReplaceTableAndSchemaNames(context.Background(), tt.schema, "m")
			require.Error(t, err)
			assert.Empty(t, got)
			assert.True(t, core.IsKind(err, core.KindValidation))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestReplaceTableAndSchemaNames_MissingColumns(t *testing.T) {
	schema := strings.Replace(ordersSchema,
		`<Measure name="Price"`,
		`<Level name="Extra" column="extraLevel"/><Measure name="Extra" column="extraMeasure" aggregator="sum"/><Measure name="Price"`, 1)
	tr := New(ordersTable(), nil)

	_, err := tr.ReplaceTableAndSchemaNames(context.Background(), schema, "Sales")
	require.Error(t, err)

	var merr *core.Error
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, core.KindValidation, merr.Kind)
	assert.Equal(t, []string{"extraLevel", "extraMeasure"}, merr.Missing)
	assert.Empty(t, merr.Mismatched)
	assert.Equal(t, "The following columns were not found in table orders: extraLevel, extraMeasure", merr.Message)
}

func TestReplaceTableAndSchemaNames_TypeMismatch(t *testing.T) {
	schema := strings.Replace(ordersSchema,
		`column="POSTALCODE"`, `column="POSTALCODE" type="Numeric"`, 1)
	tr := New(ordersTable(), nil)

	_, err := tr.ReplaceTableAndSchemaNames(context.Background(), schema, "Sales")
	require.Error(t, err)

	var merr *core.Error
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, []string{"POSTALCODE"}, merr.Mismatched)
	assert.Empty(t, merr.Missing)
	assert.Contains(t, merr.Message, ": POSTALCODE")
}

func TestReplaceTableAndSchemaNames_MissingAndMismatchedTogether(t *testing.T) {
	schema := strings.NewReplacer(
		`column="POSTALCODE"`, `column="POSTALCODE" type="Boolean"`,
		`column="CUSTOMERNAME"`, `column="customername"`,
	).Replace(ordersSchema)
	tr := New(ordersTable(), nil)

	_, err := tr.ReplaceTableAndSchemaNames(context.Background(), schema, "Sales")

	var merr *core.Error
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, []string{"customername"}, merr.Missing, "column lookup is case-sensitive")
	assert.Equal(t, []string{"POSTALCODE"}, merr.Mismatched)
	assert.Len(t, strings.Split(merr.Message, "\n"), 2)
}

func TestReplaceTableAndSchemaNames_ResolverFailure(t *testing.T) {
	tr := New(failingResolver{err: errors.New("connection refused")}, nil)

	_, err := tr.ReplaceTableAndSchemaNames(context.Background(), ordersSchema, "Sales")
	require.Error(t, err)
	assert.True(t, core.IsKind(err, core.KindDataAccess))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSetAttr(t *testing.T) {
	tests := []struct {
		tag     string
		want    string
		changed bool
	}{
		{`<Table name="a"/>`, `<Table name="x"/>`, true},
		{`<Table schema="s" name = 'a' alias="n">`, `<Table schema="s" name = 'x' alias="n">`, true},
		{"<Cube\n\tname=\"a\">", "<Cube\n\tname=\"x\">", true},
		{`<Table alias="name"/>`, `<Table alias="name"/>`, false},
		{`<Table/>`, `<Table/>`, false},
		{`<Table xname="a" name="b">`, `<Table xname="a" name="x">`, true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, changed := setAttr(tt.tag, "name", "x")
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, tt.want, got)
		})
	}
}
