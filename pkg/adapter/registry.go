package adapter

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Factory creates an unconnected adapter. A nil logger discards.
type Factory func(*slog.Logger) Adapter

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	aliases    = make(map[string]string)
)

// Register adds an adapter factory under name and any aliases, e.g.
// "postgres" with "postgresql" and "pg". Names are case-insensitive.
// Adapter packages call it from init().
func Register(name string, factory Factory, alias ...string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	name = strings.ToLower(name)
	factories[name] = factory
	for _, a := range alias {
		aliases[strings.ToLower(a)] = name
	}
}

// Canonical returns the registered name for a target type or one of its
// aliases, and false when nothing is registered under it.
func Canonical(name string) (string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return canonical(name)
}

func canonical(name string) (string, bool) {
	name = strings.ToLower(name)
	if _, ok := factories[name]; ok {
		return name, true
	}
	if target, ok := aliases[name]; ok {
		return target, true
	}
	return name, false
}

// Get returns the factory registered for name or an alias of it.
func Get(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	name, ok := canonical(name)
	if !ok {
		return nil, false
	}
	return factories[name], true
}

// NewAdapter creates an unconnected adapter for cfg.Type.
func NewAdapter(cfg Config, logger *slog.Logger) (Adapter, error) {
	if cfg.Type == "" {
		return nil, fmt.Errorf("adapter type not specified")
	}
	factory, ok := Get(cfg.Type)
	if !ok {
		return nil, &UnknownAdapterError{Type: cfg.Type, Available: ListAdapters()}
	}
	return factory(logger), nil
}

// ListAdapters returns the registered adapter names, sorted. Aliases are not
// listed.
func ListAdapters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(factories))
}

// IsRegistered reports whether name or an alias of it is registered.
func IsRegistered(name string) bool {
	_, ok := Canonical(name)
	return ok
}

// UnknownAdapterError is returned when a target names no registered adapter.
type UnknownAdapterError struct {
	Type      string
	Available []string
}

func (e *UnknownAdapterError) Error() string {
	return fmt.Sprintf("unknown adapter type %q\nAvailable adapters: %v\nHint: Check your target.type in leapcube.yaml", e.Type, e.Available)
}
