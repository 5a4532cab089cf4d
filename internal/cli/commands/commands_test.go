package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcube/internal/cli/output"
	"github.com/leapstack-labs/leapcube/internal/cli/testutil"
	"github.com/leapstack-labs/leapcube/internal/workspace"
	"github.com/leapstack-labs/leapcube/pkg/annotation"
)

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		name string
		cmd  *cobra.Command
		subs []string
	}{
		{"model", NewModelCommand(), []string{"create", "update"}},
		{"schema", NewSchemaCommand(), []string{"transform"}},
		{"dimension", NewDimensionCommand(), []string{"list", "show", "save", "delete", "validate"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.cmd.Name())
			assert.NotEmpty(t, tt.cmd.Short)
			var got []string
			for _, c := range tt.cmd.Commands() {
				got = append(got, c.Name())
			}
			assert.ElementsMatch(t, tt.subs, got)
		})
	}

	assert.Contains(t, NewDimensionCommand().Aliases, "dim")
	assert.NotNil(t, NewServeCommand().Flags().Lookup("addr"))
}

func TestModelUpdate_RequiresDomain(t *testing.T) {
	cmd := NewModelCommand()
	cmd.SetArgs([]string{"update", "orders"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"domain" not set`)
}

func TestSchemaTransform_RequiresFlags(t *testing.T) {
	cmd := NewSchemaCommand()
	cmd.SetArgs([]string{"transform", "sales.mondrian.xml"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s)")
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3", "abc123", "2026-01-01")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "leapcube v1.2.3")
	assert.Contains(t, out.String(), "commit abc123, built 2026-01-01")
}

func sampleReport() *workspace.ApplyReport {
	return &workspace.ApplyReport{
		Passes: 2,
		Results: []workspace.Result{
			{Index: 0, Type: annotation.TypeCreateMeasure, Status: workspace.StatusSucceeded},
			{Index: 1, Type: annotation.TypeCreateAttribute, Status: workspace.StatusFailed, Err: errors.New(`column "NOPE" not found`)},
			{Index: 2, Type: annotation.TypeBlank, Status: workspace.StatusNull},
		},
	}
}

func TestRenderApplyReport(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		tr := testutil.NewTestRenderer(output.ModeMarkdown, false)
		renderApplyReport(tr.Renderer, sampleReport())

		out := tr.Output()
		testutil.AssertNoANSI(t, out)
		testutil.AssertValidMarkdown(t, out)
		assert.Contains(t, out, "## Annotations (2 passes)")
		assert.Contains(t, out, "| 0 | create_measure | succeeded |")
		assert.Contains(t, out, `column "NOPE" not found`)
		assert.Contains(t, out, "| 2 | blank | null |")
	})

	t.Run("json", func(t *testing.T) {
		tr := testutil.NewTestRenderer(output.ModeJSON, false)
		renderApplyReport(tr.Renderer, sampleReport())

		var results []map[string]any
		require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &results))
		require.Len(t, results, 3)
		assert.Equal(t, "failed", results[1]["status"])
		assert.Equal(t, `column "NOPE" not found`, results[1]["error"])
		_, hasErr := results[0]["error"]
		assert.False(t, hasErr)
	})

	t.Run("empty", func(t *testing.T) {
		tr := testutil.NewTestRenderer(output.ModeMarkdown, false)
		renderApplyReport(tr.Renderer, &workspace.ApplyReport{})
		renderApplyReport(tr.Renderer, nil)
		assert.Empty(t, tr.Output())
	})
}

func TestRenderValidation(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		tr := testutil.NewTestRenderer(output.ModeText, false)
		renderValidation(tr.Renderer, "customer", nil)
		assert.Contains(t, tr.Output(), "customer is valid")
		assert.Empty(t, tr.ErrorOutput())
	})

	t.Run("invalid", func(t *testing.T) {
		tr := testutil.NewTestRenderer(output.ModeText, false)
		renderValidation(tr.Renderer, "broken", []string{annotation.MsgNoKey, annotation.MsgWrongType})
		assert.Contains(t, tr.ErrorOutput(), annotation.MsgNoKey)
		assert.Contains(t, tr.ErrorOutput(), annotation.MsgWrongType)
	})

	t.Run("json", func(t *testing.T) {
		tr := testutil.NewTestRenderer(output.ModeJSON, false)
		renderValidation(tr.Renderer, "customer", nil)
		assert.JSONEq(t, `{"group":"customer","valid":true,"errors":[]}`, tr.Output())
	})
}

func TestWriteOutput(t *testing.T) {
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, writeOutput(cmd, "", []byte("a")))
	require.NoError(t, writeOutput(cmd, "-", []byte("b")))
	assert.Equal(t, "ab", out.String())

	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, writeOutput(cmd, path, []byte("c")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "c", string(data))
	assert.Equal(t, "ab", out.String())
}

func TestDefaultConfig(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	c := NewCommandContext(cmd)
	require.NotNil(t, c.Cfg)
	assert.Equal(t, "duckdb", c.Cfg.Target.Type)
	assert.Equal(t, "main", c.Cfg.Target.Schema)
	assert.NotNil(t, c.Logger)
}
