package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapcube/pkg/adapter"
)

// Default configuration values.
const (
	DefaultTargetType = "duckdb"
	DefaultStateFile  = ".leapcube/state.db"
	DefaultEnv        = "dev"
	DefaultOutput     = "auto" // TTY=text, non-TTY=markdown
	DefaultServerAddr = "127.0.0.1:8766"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "leapcube.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "leapcube.yml"

// DefaultSchemaForType returns the schema an adapter assumes for unqualified
// table names, or "main" when the type is not registered.
func DefaultSchemaForType(dbType string) string {
	if factory, ok := adapter.Get(strings.ToLower(dbType)); ok {
		if s := factory(nil).DefaultSchema(); s != "" {
			return s
		}
	}
	return "main"
}

// ApplyTargetDefaults applies default values to a TargetConfig based on its type.
func ApplyTargetDefaults(t *TargetConfig) {
	if t == nil {
		return
	}
	t.Type = strings.ToLower(t.Type)
	if name, ok := adapter.Canonical(t.Type); ok {
		t.Type = name
	}
	switch t.Type {
	case "postgres":
		if t.Port == 0 {
			t.Port = 5432
		}
	case "mysql":
		if t.Port == 0 {
			t.Port = 3306
		}
		// MySQL schemas are databases.
		if t.Schema == "" {
			t.Schema = t.Database
		}
	}
	if t.Schema == "" {
		t.Schema = DefaultSchemaForType(t.Type)
	}
}

// ValidateTarget checks that the target names a registered adapter.
func ValidateTarget(t *TargetConfig) error {
	if t == nil || t.Type == "" {
		return fmt.Errorf("target type is required")
	}
	if !adapter.IsRegistered(strings.ToLower(t.Type)) {
		return &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.ListAdapters(),
		}
	}
	return nil
}

// MergeTargetConfig merges two target configs, with override taking precedence.
func MergeTargetConfig(base, override *TargetConfig) *TargetConfig {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := *base
	merged.Options = make(map[string]string, len(base.Options)+len(override.Options))
	for k, v := range base.Options {
		merged.Options[k] = v
	}

	if override.Type != "" {
		merged.Type = override.Type
	}
	if override.Database != "" {
		merged.Database = override.Database
	}
	if override.Host != "" {
		merged.Host = override.Host
	}
	if override.Port != 0 {
		merged.Port = override.Port
	}
	if override.User != "" {
		merged.User = override.User
	}
	if override.Password != "" {
		merged.Password = override.Password
	}
	if override.Schema != "" {
		merged.Schema = override.Schema
	}
	for k, v := range override.Options {
		merged.Options[k] = v
	}
	return &merged
}
