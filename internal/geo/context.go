// Package geo describes the geography hierarchy used to recognize location
// columns and resolves clashes between the auto-discovered geography
// dimension and one declared by annotations.
package geo

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapcube/pkg/core"
)

// Role is one geographic grain, such as country or city.
type Role struct {
	Name            string
	Aliases         []string
	RequiredParents []string
}

// Context is a read-only geography configuration. Roles are ordered from the
// coarsest to the finest grain.
type Context struct {
	dimensionName string
	roles         []Role
}

// NewContext validates and builds a Context.
func NewContext(dimensionName string, roles []Role) (*Context, error) {
	if len(roles) == 0 {
		return nil, errors.New("geography configuration declares no roles")
	}
	seen := make(map[string]bool, len(roles))
	for _, r := range roles {
		key := strings.ToLower(r.Name)
		if key == "" {
			return nil, errors.New("geography role name is empty")
		}
		if seen[key] {
			return nil, fmt.Errorf("geography role %q declared twice", r.Name)
		}
		seen[key] = true
	}
	for _, r := range roles {
		for _, p := range r.RequiredParents {
			if !seen[strings.ToLower(p)] {
				return nil, fmt.Errorf("geography role %q requires unknown parent %q", r.Name, p)
			}
		}
	}

	c := &Context{dimensionName: dimensionName, roles: make([]Role, len(roles))}
	for i, r := range roles {
		c.roles[i] = Role{
			Name:            r.Name,
			Aliases:         slices.Clone(r.Aliases),
			RequiredParents: slices.Clone(r.RequiredParents),
		}
	}
	return c, nil
}

// FromConfig builds a Context from a configuration block.
func FromConfig(cfg core.GeoConfig) (*Context, error) {
	roles := make([]Role, 0, len(cfg.Roles))
	for _, name := range cfg.Roles {
		roles = append(roles, Role{
			Name:            name,
			Aliases:         lookup(cfg.Aliases, name),
			RequiredParents: lookup(cfg.RequiredParents, name),
		})
	}
	return NewContext(cfg.DimensionName, roles)
}

// lookup reads a per-role list; config loaders may lower-case map keys.
func lookup(m map[string][]string, role string) []string {
	if v, ok := m[role]; ok {
		return v
	}
	for k, v := range m {
		if strings.EqualFold(k, role) {
			return v
		}
	}
	return nil
}

// DimensionName is the name of the geography dimension.
func (c *Context) DimensionName() string {
	if c == nil {
		return ""
	}
	return c.dimensionName
}

// Roles returns a copy of the roles, coarsest first.
func (c *Context) Roles() []Role {
	if c == nil {
		return nil
	}
	return slices.Clone(c.roles)
}

// Role finds a role by name, ignoring case.
func (c *Context) Role(name string) (Role, bool) {
	if c == nil {
		return Role{}, false
	}
	for _, r := range c.roles {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return Role{}, false
}

// MatchColumn returns the role whose name or alias matches a column name.
// Matching ignores case, spaces, dashes and underscores.
func (c *Context) MatchColumn(column string) (Role, bool) {
	if c == nil {
		return Role{}, false
	}
	key := normalize(column)
	for _, r := range c.roles {
		if normalize(r.Name) == key {
			return r, true
		}
		for _, a := range r.Aliases {
			if normalize(a) == key {
				return r, true
			}
		}
	}
	return Role{}, false
}

func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return r
	}, strings.ToLower(s))
}
