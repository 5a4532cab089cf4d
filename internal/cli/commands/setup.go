// Package commands implements the leapcube subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcube/internal/cli/output"
	"github.com/leapstack-labs/leapcube/internal/config"
	"github.com/leapstack-labs/leapcube/internal/modeler"
	"github.com/leapstack-labs/leapcube/internal/state"
	"github.com/leapstack-labs/leapcube/pkg/core"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the config, logger and renderer stored on the
// command's context by the root command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		cfg = defaultConfig()
	}
	mode := output.Mode(cfg.OutputFormat)
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}

// defaultConfig is used when a command runs without the root command, e.g. in tests.
func defaultConfig() *config.Config {
	target := &config.TargetConfig{Type: config.DefaultTargetType}
	config.ApplyTargetDefaults(target)
	return &config.Config{
		Target:       target,
		StatePath:    config.DefaultStateFile,
		Environment:  config.DefaultEnv,
		OutputFormat: config.DefaultOutput,
		Server:       core.ServerConfig{Addr: config.DefaultServerAddr},
	}
}

// OpenStore opens the metastore. The returned cleanup closes it.
func (c *CommandContext) OpenStore() (*state.SQLiteStore, func(), error) {
	store := state.NewSQLiteStore(c.Logger)
	if err := store.Open(c.Cfg.StatePath); err != nil {
		return nil, nil, fmt.Errorf("failed to open metastore: %w", err)
	}
	return store, func() { _ = store.Close() }, nil
}

// Strategy returns the configured import strategy.
func (c *CommandContext) Strategy() modeler.ImportStrategy {
	return modeler.DefaultImportStrategy{
		PrettyNames: c.Cfg.Import.PrettyNames,
		Exclude:     c.Cfg.Import.Exclude,
	}
}

// writeOutput writes data to path, or to the command's stdout when path is
// empty or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
