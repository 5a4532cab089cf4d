package commands

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcube/internal/cli/output"
	"github.com/leapstack-labs/leapcube/pkg/annotation"
	"github.com/leapstack-labs/leapcube/pkg/core"
)

// NewDimensionCommand creates the dimension command group, which manages the
// annotation groups stored in the metastore.
func NewDimensionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dimension",
		Aliases: []string{"dim"},
		Short:   "Manage shared dimensions and other annotation groups",
	}
	cmd.AddCommand(
		newDimensionListCommand(),
		newDimensionShowCommand(),
		newDimensionSaveCommand(),
		newDimensionDeleteCommand(),
		newDimensionValidateCommand(),
	)
	return cmd
}

func newDimensionListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored annotation groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := NewCommandContext(cmd)
			store, cleanup, err := c.OpenStore()
			if err != nil {
				return err
			}
			defer cleanup()

			groups, err := store.ListGroups(cmd.Context())
			if err != nil {
				return err
			}

			r := c.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(groups)
			}
			r.Header(1, fmt.Sprintf("Annotation groups (%d)", len(groups)))
			if len(groups) == 0 {
				r.Println("No annotation groups stored.")
				return nil
			}
			rows := make([][]string, 0, len(groups))
			for _, g := range groups {
				rows = append(rows, []string{
					g.Name,
					strconv.FormatBool(g.Shared),
					strconv.Itoa(g.Annotations),
					g.UpdatedAt.Local().Format("2006-01-02 15:04"),
					g.Description,
				})
			}
			r.Table([]string{"Name", "Shared", "Annotations", "Updated", "Description"}, rows)
			return nil
		},
	}
}

func newDimensionShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a stored annotation group as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			store, cleanup, err := c.OpenStore()
			if err != nil {
				return err
			}
			defer cleanup()

			g, err := store.GetGroup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if c.Renderer.EffectiveMode() == output.ModeJSON {
				return c.Renderer.JSON(g)
			}
			var buf bytes.Buffer
			if err := annotation.Encode(&buf, g); err != nil {
				return err
			}
			return writeOutput(cmd, "", buf.Bytes())
		},
	}
}

func newDimensionSaveCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save <group.yaml>",
		Short: "Store an annotation group",
		Long: `Read an annotation group file and store it in the metastore, replacing any
group of the same name. Groups marked shared must pass shared-dimension
validation before they are stored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)

			g, err := annotation.ReadFile(args[0])
			if err != nil {
				return err
			}
			if name != "" {
				g.Name = name
			}
			if err := g.Validate(); err != nil {
				return core.WrapError(core.KindValidation, err, "invalid annotation group %s", args[0])
			}
			if v := annotation.ValidateSharedDimension(g); v.HasErrors() {
				renderValidation(c.Renderer, g.Name, v.Errors())
				return core.Errorf(core.KindValidation, "shared dimension %s is not valid", g.Name)
			}

			store, cleanup, err := c.OpenStore()
			if err != nil {
				return err
			}
			defer cleanup()

			info, err := store.SaveGroup(cmd.Context(), g)
			if err != nil {
				return err
			}
			c.Renderer.Success(fmt.Sprintf("Saved %s (%d annotations)", info.Name, info.Annotations))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Store under this name instead of the file's")
	return cmd
}

func newDimensionDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored annotation group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			store, cleanup, err := c.OpenStore()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := store.DeleteGroup(cmd.Context(), args[0]); err != nil {
				return err
			}
			c.Renderer.Success("Deleted " + args[0])
			return nil
		},
	}
}

func newDimensionValidateCommand() *cobra.Command {
	var stored bool

	cmd := &cobra.Command{
		Use:   "validate <group.yaml|name>",
		Short: "Check an annotation group against the shared-dimension rules",
		Long: `Validate an annotation group file, or with --stored a group from the
metastore. A shared dimension needs exactly one dimension key, may contain
only key and attribute annotations, and must name a single dimension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)

			var g *annotation.Group
			if stored {
				store, cleanup, err := c.OpenStore()
				if err != nil {
					return err
				}
				defer cleanup()
				if g, err = store.GetGroup(cmd.Context(), args[0]); err != nil {
					return err
				}
			} else {
				var err error
				if g, err = annotation.ReadFile(args[0]); err != nil {
					return err
				}
			}

			if !g.Shared {
				c.Renderer.Warning(fmt.Sprintf("%s is not marked shared; shared-dimension rules are not checked", g.Name))
			}
			errs := annotation.ValidateSharedDimension(g).Errors()
			renderValidation(c.Renderer, g.Name, errs)
			if len(errs) > 0 {
				return errValidationFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&stored, "stored", false, "Validate a stored group by name")
	return cmd
}

var errValidationFailed = errors.New("validation failed")

func renderValidation(r *output.Renderer, name string, errs []string) {
	if r.EffectiveMode() == output.ModeJSON {
		if errs == nil {
			errs = []string{}
		}
		_ = r.JSON(map[string]any{"group": name, "valid": len(errs) == 0, "errors": errs})
		return
	}
	if len(errs) == 0 {
		r.Success(name + " is valid")
		return
	}
	for _, e := range errs {
		r.Error(e)
	}
}
