package geo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcube/internal/testutil"
	"github.com/leapstack-labs/leapcube/pkg/annotation"
	"github.com/leapstack-labs/leapcube/pkg/core"
)

func geography(t *testing.T) *Context {
	t.Helper()
	c, err := NewContext("Geography", []Role{
		{Name: "country", Aliases: []string{"nation", "country_name"}},
		{Name: "state", Aliases: []string{"province", "region"}, RequiredParents: []string{"country"}},
		{Name: "city", Aliases: []string{"town"}, RequiredParents: []string{"state"}},
		{Name: "postal_code", Aliases: []string{"zip", "postcode"}},
	})
	require.NoError(t, err)
	return c
}

func attrGroup(dimension string) *annotation.Group {
	return &annotation.Group{Name: "Sales", Annotations: []annotation.Annotation{
		{Type: annotation.TypeCreateMeasure, Properties: map[string]any{"name": "Revenue", "field": "AMOUNT"}},
		{Type: annotation.TypeCreateAttribute, Properties: map[string]any{"name": "Country", "field": "COUNTRY", "dimension": dimension}},
	}}
}

func TestHasConflict(t *testing.T) {
	ctx := geography(t)

	tests := []struct {
		name  string
		ctx   *Context
		group *annotation.Group
		want  bool
	}{
		{"attribute in geography dimension", ctx, attrGroup("Geography"), true},
		{"dimension name ignores case", ctx, attrGroup("GEOGRAPHY"), true},
		{"attribute in another dimension", ctx, attrGroup("Customer"), false},
		{"no attributes", ctx, &annotation.Group{Name: "Sales"}, false},
		{"no geography context", nil, attrGroup("Geography"), false},
		{"no group", ctx, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasConflict(tt.ctx, tt.group))
		})
	}
}

func TestHasConflict_EmptyDimensionName(t *testing.T) {
	ctx, err := NewContext("", []Role{{Name: "country"}})
	require.NoError(t, err)
	assert.False(t, HasConflict(ctx, attrGroup("")))
}

type fakeWorkspace struct{ removed []string }

func (w *fakeWorkspace) RemoveDimension(name string) bool {
	w.removed = append(w.removed, name)
	return true
}

func TestRemoveAutoDimension(t *testing.T) {
	ws := &fakeWorkspace{}
	assert.True(t, RemoveAutoDimension(ws, geography(t)))
	assert.Equal(t, []string{"Geography"}, ws.removed)

	ws = &fakeWorkspace{}
	assert.False(t, RemoveAutoDimension(ws, nil))
	assert.Empty(t, ws.removed)
}

func TestContext_MatchColumn(t *testing.T) {
	ctx := geography(t)

	tests := []struct {
		column string
		role   string
		ok     bool
	}{
		{"COUNTRY", "country", true},
		{"Country_Name", "country", true},
		{"ZIP", "postal_code", true},
		{"PostalCode", "postal_code", true},
		{"postal-code", "postal_code", true},
		{"TOWN", "city", true},
		{"CUSTOMER", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			r, ok := ctx.MatchColumn(tt.column)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.role, r.Name)
		})
	}
}

func TestNewContext_Invalid(t *testing.T) {
	_, err := NewContext("Geography", nil)
	assert.Error(t, err)

	_, err = NewContext("Geography", []Role{{Name: "city"}, {Name: "City"}})
	assert.ErrorContains(t, err, "declared twice")

	_, err = NewContext("Geography", []Role{{Name: "city", RequiredParents: []string{"state"}}})
	assert.ErrorContains(t, err, "unknown parent")
}

func TestContext_RolesAreCopies(t *testing.T) {
	ctx := geography(t)
	roles := ctx.Roles()
	roles[0].Name = "planet"
	roles[0].Aliases[0] = "world"

	r, ok := ctx.Role("country")
	require.True(t, ok)
	assert.Equal(t, "nation", ctx.Roles()[0].Aliases[0])
	assert.Equal(t, "country", r.Name)
}

func TestLoad(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		ctx, ok := Load(nil, testutil.NewTestLogger(t))
		assert.False(t, ok)
		assert.Nil(t, ctx)
	})

	t.Run("invalid is logged", func(t *testing.T) {
		logger, rec := testutil.NewRecordingLogger(t)

		ctx, ok := Load(&core.GeoConfig{
			DimensionName:   "Geography",
			Roles:           []string{"city"},
			RequiredParents: map[string][]string{"city": {"state"}},
		}, logger)

		assert.False(t, ok)
		assert.Nil(t, ctx)
		warnings := rec.Warnings()
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "unknown parent")
	})

	t.Run("valid", func(t *testing.T) {
		ctx, ok := Load(&core.GeoConfig{
			DimensionName: "Geography",
			Roles:         []string{"country", "city"},
			Aliases:       map[string][]string{"COUNTRY": {"nation"}},
		}, nil)

		require.True(t, ok)
		assert.Equal(t, "Geography", ctx.DimensionName())
		r, ok := ctx.MatchColumn("NATION")
		assert.True(t, ok)
		assert.Equal(t, "country", r.Name)
	})
}

func TestReadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "geo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
dimension_name: Geography
roles: [country, state]
aliases:
  state: [province]
required_parents:
  state: [country]
`), 0o600))

	cfg, err := ReadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Geography", cfg.DimensionName)

	ctx, ok := Load(cfg, testutil.NewTestLogger(t))
	require.True(t, ok)
	r, ok := ctx.MatchColumn("PROVINCE")
	require.True(t, ok)
	assert.Equal(t, []string{"country"}, r.RequiredParents)

	_, err = ReadConfigFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
