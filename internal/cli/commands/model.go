package commands

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcube/internal/cli/output"
	"github.com/leapstack-labs/leapcube/internal/modeler"
	"github.com/leapstack-labs/leapcube/internal/workspace"
	"github.com/leapstack-labs/leapcube/pkg/adapter"
	"github.com/leapstack-labs/leapcube/pkg/annotation"
	"github.com/leapstack-labs/leapcube/pkg/model"
)

// NewModelCommand creates the model command group.
func NewModelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Create and update analysis models",
	}
	cmd.AddCommand(newModelCreateCommand(), newModelUpdateCommand())
	return cmd
}

func newModelCreateCommand() *cobra.Command {
	var (
		name        string
		schemaName  string
		annotations string
		out         string
	)

	cmd := &cobra.Command{
		Use:   "create <table>",
		Short: "Generate a model for a table",
		Long: `Introspect a table on the configured target and generate a model for it:
a reporting model with one column per table column, and an analysis model
with measures for numeric columns and dimensions for the rest.

An annotation group file refines the generated analysis model. Annotations
that cannot be applied are reported and skipped.`,
		Example: `  # Generate a model and print it as YAML
  leapcube model create orders --name Sales

  # Apply annotations and write the model to a file
  leapcube model create public.orders --name Sales --annotations sales.yaml --out sales.domain.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)

			var group *annotation.Group
			if annotations != "" {
				g, err := annotation.ReadFile(annotations)
				if err != nil {
					return err
				}
				group = g
			}

			store, cleanup, err := c.OpenStore()
			if err != nil {
				return err
			}
			defer cleanup()

			schemaName, table := adapter.ParseQualifiedName(args[0], schemaName)
			if name == "" {
				name = table
			}
			conn := c.Cfg.Connection()
			domain, report, err := modeler.NewSynthesizer(c.Logger).CreateModel(cmd.Context(), modeler.CreateRequest{
				ModelName:   name,
				Source:      &adapter.Table{Config: conn.Adapter, Schema: schemaName, Name: table, Logger: c.Logger},
				Connection:  conn,
				Strategy:    c.Strategy(),
				Annotations: group,
				Groups:      store,
				Geo:         c.Cfg.Geo,
			})
			if err != nil {
				return err
			}

			if err := writeDomain(cmd, out, domain); err != nil {
				return err
			}
			if out != "" && out != "-" {
				renderApplyReport(c.Renderer, report)
				c.Renderer.Success(fmt.Sprintf("Model %s written to %s", name, out))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Model name (default: table name)")
	cmd.Flags().StringVar(&schemaName, "schema", "", "Schema of the table (default: target schema)")
	cmd.Flags().StringVarP(&annotations, "annotations", "a", "", "Annotation group file to apply")
	cmd.Flags().StringVar(&out, "out", "", "Write the model to this file instead of stdout")
	return cmd
}

func newModelUpdateCommand() *cobra.Command {
	var (
		name       string
		schemaName string
		domainFile string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "update <table>",
		Short: "Retarget an existing model at a table",
		Long: `Re-introspect a table and rebind an existing model to it. Every column the
model uses must still exist in the table; analysis metadata is kept and the
model is renamed.`,
		Example: `  leapcube model update orders_v2 --domain sales.domain.yaml --name "Sales 2025" --out sales.domain.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)

			f, err := os.Open(domainFile)
			if err != nil {
				return fmt.Errorf("failed to open model: %w", err)
			}
			domain, err := model.DecodeDomain(f)
			_ = f.Close()
			if err != nil {
				return fmt.Errorf("failed to read model %s: %w", domainFile, err)
			}

			schemaName, table := adapter.ParseQualifiedName(args[0], schemaName)
			if name == "" {
				name = domain.ID
			}
			domain, err = modeler.NewSynthesizer(c.Logger).UpdateModel(cmd.Context(), name, domain, c.Cfg.Connection(), schemaName, table)
			if err != nil {
				return err
			}

			if err := writeDomain(cmd, out, domain); err != nil {
				return err
			}
			if out != "" && out != "-" {
				c.Renderer.Success(fmt.Sprintf("Model %s now reads %s", name, table))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New model name (default: current name)")
	cmd.Flags().StringVar(&schemaName, "schema", "", "Schema of the table (default: target schema)")
	cmd.Flags().StringVar(&domainFile, "domain", "", "Model file to update")
	cmd.Flags().StringVar(&out, "out", "", "Write the model to this file instead of stdout")
	_ = cmd.MarkFlagRequired("domain")
	return cmd
}

func writeDomain(cmd *cobra.Command, out string, domain *model.Domain) error {
	var buf bytes.Buffer
	if err := model.EncodeDomain(&buf, domain); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	return writeOutput(cmd, out, buf.Bytes())
}

func renderApplyReport(r *output.Renderer, report *workspace.ApplyReport) {
	if report == nil || len(report.Results) == 0 {
		return
	}
	type result struct {
		Index  int    `json:"index"`
		Type   string `json:"type"`
		Status string `json:"status"`
		Error  string `json:"error,omitempty"`
	}
	results := make([]result, 0, len(report.Results))
	rows := make([][]string, 0, len(report.Results))
	for _, res := range report.Results {
		msg := ""
		if res.Err != nil {
			msg = res.Err.Error()
		}
		results = append(results, result{res.Index, string(res.Type), string(res.Status), msg})
		rows = append(rows, []string{strconv.Itoa(res.Index), string(res.Type), string(res.Status), msg})
	}
	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(results)
		return
	}

	r.Header(2, fmt.Sprintf("Annotations (%d passes)", report.Passes))
	r.Table([]string{"#", "Type", "Status", "Error"}, rows)
}
