package geo

import (
	"fmt"
	"log/slog"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/leapstack-labs/leapcube/pkg/core"
)

// Load builds a Context from an optional configuration block. Geography
// modeling is optional: when the block is absent or invalid the failure is
// logged and ok is false.
func Load(cfg *core.GeoConfig, logger *slog.Logger) (ctx *Context, ok bool) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg == nil || len(cfg.Roles) == 0 {
		logger.Debug("no geography configuration, skipping geography modeling")
		return nil, false
	}
	c, err := FromConfig(*cfg)
	if err != nil {
		logger.Warn("invalid geography configuration, skipping geography modeling", "error", err)
		return nil, false
	}
	return c, true
}

// ReadConfigFile reads a geography configuration from a standalone YAML
// file holding the same keys as the geo block of the project configuration.
func ReadConfigFile(path string) (*core.GeoConfig, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to read geography configuration %s: %w", path, err)
	}
	var cfg core.GeoConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode geography configuration %s: %w", path, err)
	}
	return &cfg, nil
}
