package core

// TargetConfig holds database target configuration.
type TargetConfig struct {
	Type string `koanf:"type"` // duckdb, postgres, mysql, sqlite

	// File-based databases (DuckDB, SQLite)
	Database string `koanf:"database"` // file path or database name

	// Network databases
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	// Common
	Schema string `koanf:"schema"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options"`
}

// ToAdapterConfig converts the target into the adapter connection config.
func (t *TargetConfig) ToAdapterConfig() AdapterConfig {
	if t == nil {
		return AdapterConfig{}
	}
	return AdapterConfig{
		Type:     t.Type,
		Path:     t.Database,
		Host:     t.Host,
		Port:     t.Port,
		Database: t.Database,
		Username: t.User,
		Password: t.Password,
		Schema:   t.Schema,
		Options:  t.Options,
	}
}

// ImportConfig controls which physical columns become logical columns.
type ImportConfig struct {
	PrettyNames bool     `koanf:"pretty_names"`
	Exclude     []string `koanf:"exclude"`
}

// GeoConfig is the raw geography configuration block.
// Roles are ordered from the coarsest to the finest grain.
type GeoConfig struct {
	DimensionName   string              `koanf:"dimension_name"`
	Roles           []string            `koanf:"roles"`
	Aliases         map[string][]string `koanf:"aliases"`
	RequiredParents map[string][]string `koanf:"required_parents"`
}

// ServerConfig holds configuration for the HTTP surface.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}
