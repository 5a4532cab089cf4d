package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/leapcube/internal/geo"
)

// EnvPrefix is the prefix of environment variables read into the config.
const EnvPrefix = "LEAPCUBE_"

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// flagKeys maps the flags that override configuration onto config keys.
// Other flags are command options and are not loaded.
var flagKeys = map[string]string{
	"state":           "state_path",
	"database":        "target.database",
	"db-type":         "target.type",
	"indirect":        "indirect_connections",
	"addr":            "server.addr",
	"env":             "environment",
	"connection-name": "connection_name",
	"verbose":         "verbose",
	"output":          "output",
}

// nestedEnvSections are the config sections whose env vars address a nested key,
// e.g. LEAPCUBE_TARGET_HOST -> target.host.
var nestedEnvSections = []string{"target", "server", "import", "geo"}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// configExistsIn returns the config file in dir, or "" if there is none.
func configExistsIn(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// FindProjectRoot searches upward from startDir for a directory containing a
// leapcube config file. Returns "" if none is found.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if configExistsIn(dir) != "" {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
//
// cfgFile may be empty, in which case leapcube.yaml is searched for upward from
// the working directory. envOverride selects an entry of environments instead
// of the configured environment.
func LoadConfig(cfgFile, envOverride string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	cwd, _ := os.Getwd()
	if cwd == "" {
		cwd = "."
	}
	projectRoot := cwd
	if cfgFile != "" {
		if abs, err := filepath.Abs(cfgFile); err == nil {
			cfgFile = abs
			projectRoot = filepath.Dir(abs)
		}
	} else if root := FindProjectRoot(cwd); root != "" {
		projectRoot = root
		cfgFile = configExistsIn(root)
	}

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"target.type": DefaultTargetType,
		"state_path":  DefaultStateFile,
		"environment": DefaultEnv,
		"server.addr": DefaultServerAddr,
		"verbose":     false,
		"output":      DefaultOutput,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// 3. Environment variables
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	var flagState string
	if flags != nil {
		if f := flags.Lookup("state"); f != nil && f.Changed {
			flagState, _ = filepath.Abs(f.Value.String())
		}
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ProjectRoot = projectRoot
	cfg.ConfigFile = cfgFile

	if flagState != "" {
		cfg.StatePath = flagState
	} else {
		cfg.StatePath = resolvePathRelativeTo(cfg.StatePath, projectRoot)
	}

	if cfg.Geo == nil && cfg.GeoFile != "" {
		cfg.GeoFile = resolvePathRelativeTo(cfg.GeoFile, projectRoot)
		geoCfg, err := geo.ReadConfigFile(cfg.GeoFile)
		if err != nil {
			return nil, err
		}
		cfg.Geo = geoCfg
	}

	envName := cfg.Environment
	if envOverride != "" {
		envName = envOverride
	}
	if envCfg, ok := cfg.Environments[envName]; ok {
		if envCfg.Target != nil {
			cfg.Target = MergeTargetConfig(cfg.Target, envCfg.Target)
		}
		if envCfg.ConnectionName != "" {
			cfg.ConnectionName = envCfg.ConnectionName
		}
	}

	if cfg.Target == nil {
		cfg.Target = &TargetConfig{Type: DefaultTargetType}
	}
	ApplyTargetDefaults(cfg.Target)
	expandTargetEnvVars(cfg.Target)
	cfg.ConnectionName = expandEnvVars(cfg.ConnectionName)

	switch cfg.Target.Type {
	case "duckdb", "sqlite":
		cfg.Target.Database = resolvePathRelativeTo(cfg.Target.Database, projectRoot)
	}

	if err := ValidateTarget(cfg.Target); err != nil {
		return nil, fmt.Errorf("invalid target configuration: %w", err)
	}
	return &cfg, nil
}

// envKey turns LEAPCUBE_TARGET_HOST into target.host and LEAPCUBE_STATE_PATH
// into state_path.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range nestedEnvSections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + rest
		}
	}
	return key
}

// expandEnvVars expands ${VAR} patterns with environment variable values.
// Unset variables are left as written.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if val := os.Getenv(match[2 : len(match)-1]); val != "" {
			return val
		}
		return match
	})
}

// expandTargetEnvVars expands environment variables in credential fields.
func expandTargetEnvVars(t *TargetConfig) {
	if t == nil {
		return
	}
	t.Password = expandEnvVars(t.Password)
	t.User = expandEnvVars(t.User)
	t.Host = expandEnvVars(t.Host)
	t.Database = expandEnvVars(t.Database)
}

// loggerKey is used to store the logger in a context.
type loggerKey struct{}

// configKey is used to store the config in a context.
type configKey struct{}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from ctx, or a discard logger.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// WithConfig returns a context carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from ctx, or nil.
func FromContext(ctx context.Context) *Config {
	c, _ := ctx.Value(configKey{}).(*Config)
	return c
}
