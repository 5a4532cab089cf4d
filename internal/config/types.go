// Package config loads leapcube project configuration.
//
// Values are layered with koanf: built-in defaults, then leapcube.yaml, then
// LEAPCUBE_* environment variables, then explicitly set command-line flags.
package config

import (
	"github.com/leapstack-labs/leapcube/pkg/core"
)

// TargetConfig is an alias for the shared target configuration.
type TargetConfig = core.TargetConfig

// Config holds all project configuration options.
type Config struct {
	Target              *TargetConfig        `koanf:"target"`
	ConnectionName      string               `koanf:"connection_name"`
	IndirectConnections bool                 `koanf:"indirect_connections"`
	StatePath           string               `koanf:"state_path"`
	Import              core.ImportConfig    `koanf:"import"`
	Geo                 *core.GeoConfig      `koanf:"geo"`
	GeoFile             string               `koanf:"geo_file"`
	Server              core.ServerConfig    `koanf:"server"`
	Environment         string               `koanf:"environment"`
	Verbose             bool                 `koanf:"verbose"`
	OutputFormat        string               `koanf:"output"`
	Environments        map[string]EnvConfig `koanf:"environments"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
	// ConfigFile is the config file that was loaded, if any.
	ConfigFile string `koanf:"-"`
}

// EnvConfig holds environment-specific configuration overrides.
type EnvConfig struct {
	ConnectionName string        `koanf:"connection_name"`
	Target         *TargetConfig `koanf:"target"`
}

// Connection returns the connection the modeler builds against.
// When no connection name is configured the database name stands in for it.
func (c *Config) Connection() core.ConnectionInfo {
	info := core.ConnectionInfo{
		Name:     c.ConnectionName,
		Adapter:  c.Target.ToAdapterConfig(),
		Indirect: c.IndirectConnections,
	}
	if info.Name == "" {
		info.Name = info.Adapter.Database
	}
	return info
}
