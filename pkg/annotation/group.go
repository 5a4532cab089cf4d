package annotation

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Group is an ordered set of annotations applied together to one model.
type Group struct {
	Name          string         `yaml:"name" json:"name"`
	Shared        bool           `yaml:"shared,omitempty" json:"shared,omitempty"`
	Description   string         `yaml:"description,omitempty" json:"description,omitempty"`
	DataProviders []DataProvider `yaml:"data_providers,omitempty" json:"data_providers,omitempty"`
	Annotations   []Annotation   `yaml:"annotations" json:"annotations"`
}

// DataProvider is an external table a shared dimension reads its members from.
type DataProvider struct {
	Name       string   `yaml:"name" json:"name"`
	Connection string   `yaml:"connection,omitempty" json:"connection,omitempty"`
	SchemaName string   `yaml:"schema,omitempty" json:"schema,omitempty"`
	TableName  string   `yaml:"table" json:"table"`
	KeyColumn  string   `yaml:"key_column,omitempty" json:"key_column,omitempty"`
	Columns    []string `yaml:"columns,omitempty" json:"columns,omitempty"`
}

// Directives decodes every annotation of the group.
func (g *Group) Directives() ([]Directive, error) {
	out := make([]Directive, 0, len(g.Annotations))
	for i, a := range g.Annotations {
		d, err := a.Directive()
		if err != nil {
			return nil, fmt.Errorf("annotation %d: %w", i+1, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// Validate checks the group name and every directive's properties.
// All problems are returned joined.
func (g *Group) Validate() error {
	var errs []error
	if g.Name == "" {
		errs = append(errs, errors.New("group name is required"))
	}
	for i, a := range g.Annotations {
		d, err := a.Directive()
		if err != nil {
			errs = append(errs, fmt.Errorf("annotation %d: %w", i+1, err))
			continue
		}
		if err := d.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("annotation %d: %w", i+1, err))
		}
	}
	return errors.Join(errs...)
}

// Decode reads a group from YAML.
func Decode(r io.Reader) (*Group, error) {
	var g Group
	if err := yaml.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("failed to parse annotation group: %w", err)
	}
	return &g, nil
}

// Encode writes a group as YAML.
func Encode(w io.Writer, g *Group) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("failed to encode annotation group: %w", err)
	}
	return enc.Close()
}

// ReadFile loads a group from a YAML file.
func ReadFile(path string) (*Group, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open annotation group: %w", err)
	}
	defer func() { _ = f.Close() }()

	g, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
