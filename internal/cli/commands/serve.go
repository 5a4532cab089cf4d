package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcube/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the modeling API over HTTP",
		Long: `Start an HTTP server exposing annotation-group management, shared-dimension
validation, schema transformation and model creation for the configured target.
The server stops on interrupt.`,
		Example: `  leapcube serve --addr :8766`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := NewCommandContext(cmd)
			store, cleanup, err := c.OpenStore()
			if err != nil {
				return err
			}
			defer cleanup()

			srv := server.New(server.Config{
				Addr:       c.Cfg.Server.Addr,
				Store:      store,
				Connection: c.Cfg.Connection(),
				Strategy:   c.Strategy(),
				Geo:        c.Cfg.Geo,
				Logger:     c.Logger,
			})
			c.Renderer.Println("Serving on http://" + c.Cfg.Server.Addr)
			return srv.Serve(cmd.Context())
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default: server.addr)")
	return cmd
}
