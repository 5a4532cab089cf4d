package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcube/internal/messages"
	"github.com/leapstack-labs/leapcube/internal/schema"
	"github.com/leapstack-labs/leapcube/pkg/adapter"
)

// NewSchemaCommand creates the schema command group.
func NewSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Work with analysis schema documents",
	}
	cmd.AddCommand(newSchemaTransformCommand())
	return cmd
}

func newSchemaTransformCommand() *cobra.Command {
	var (
		name       string
		table      string
		schemaName string
		out        string
		locale     string
	)

	cmd := &cobra.Command{
		Use:   "transform <schema.xml>",
		Short: "Retarget an analysis schema at another table",
		Long: `Point an existing analysis schema at a table on the configured target.

The schema must reference exactly one table and contain exactly one cube.
Every level and measure column must exist in the new table with a compatible
type; all offending columns are reported at once. The document is otherwise
left byte for byte as it was.`,
		Example: `  leapcube schema transform sales.mondrian.xml --table orders_2025 --name "Sales 2025" --out sales2025.mondrian.xml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read schema: %w", err)
			}

			schemaName, table := adapter.ParseQualifiedName(table, schemaName)
			if locale == "" {
				locale = os.Getenv("LANG")
			}
			if i := strings.IndexByte(locale, '.'); i >= 0 {
				locale = locale[:i]
			}
			printer := messages.NewPrinter(messages.ParseLocale(locale))

			src := &adapter.Table{Config: c.Cfg.Target.ToAdapterConfig(), Schema: schemaName, Name: table, Logger: c.Logger}
			result, err := schema.New(src, c.Logger, schema.WithPrinter(printer)).
				ReplaceTableAndSchemaNames(cmd.Context(), string(data), name)
			if err != nil {
				return err
			}
			return writeOutput(cmd, out, []byte(result))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New model name")
	cmd.Flags().StringVar(&table, "table", "", "Table the schema should read")
	cmd.Flags().StringVar(&schemaName, "schema", "", "Schema of the table (default: target schema)")
	cmd.Flags().StringVar(&out, "out", "", "Write the schema to this file instead of stdout")
	cmd.Flags().StringVar(&locale, "locale", "", "Locale for messages (default: $LANG)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("table")
	return cmd
}
