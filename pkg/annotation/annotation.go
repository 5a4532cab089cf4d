package annotation

import (
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Type is the discriminant of an annotation.
type Type string

// Annotation types.
const (
	TypeCreateAttribute        Type = "create_attribute"
	TypeCreateMeasure          Type = "create_measure"
	TypeCreateDimensionKey     Type = "create_dimension_key"
	TypeLinkDimension          Type = "link_dimension"
	TypeCreateCalculatedMember Type = "create_calculated_member"
	TypeBlank                  Type = "blank"
)

// ErrUnknownType is returned when an annotation's type has no directive.
var ErrUnknownType = errors.New("unknown annotation type")

// Annotation is a single model directive as written in a group file.
type Annotation struct {
	Type       Type           `yaml:"type" json:"type"`
	Properties map[string]any `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// Directive is the typed form of an annotation.
type Directive interface {
	Type() Type
	// Validate reports missing or malformed properties.
	Validate() error
}

// Directive decodes the annotation's properties into its typed directive.
func (a Annotation) Directive() (Directive, error) {
	var d Directive
	switch a.Type {
	case TypeCreateAttribute:
		d = &CreateAttribute{}
	case TypeCreateMeasure:
		d = &CreateMeasure{}
	case TypeCreateDimensionKey:
		d = &CreateDimensionKey{}
	case TypeLinkDimension:
		d = &LinkDimension{}
	case TypeCreateCalculatedMember:
		d = &CreateCalculatedMember{}
	case TypeBlank, "":
		return Blank{}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownType, a.Type)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           d,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(a.Properties); err != nil {
		return nil, fmt.Errorf("failed to decode %s properties: %w", a.Type, err)
	}
	return d, nil
}

// CreateAttribute adds a level to a dimension hierarchy.
type CreateAttribute struct {
	Name            string `mapstructure:"name"`
	Field           string `mapstructure:"field"`
	Dimension       string `mapstructure:"dimension"`
	Hierarchy       string `mapstructure:"hierarchy"`
	ParentAttribute string `mapstructure:"parent_attribute"`
	OrdinalField    string `mapstructure:"ordinal_field"`
	CaptionField    string `mapstructure:"caption_field"`
	TimeType        string `mapstructure:"time_type"`
	TimeFormat      string `mapstructure:"time_format"`
	GeoType         string `mapstructure:"geo_type"`
	Unique          bool   `mapstructure:"unique"`
	Description     string `mapstructure:"description"`
	Hidden          bool   `mapstructure:"hidden"`
}

// Type implements Directive.
func (*CreateAttribute) Type() Type { return TypeCreateAttribute }

// Validate implements Directive.
func (d *CreateAttribute) Validate() error {
	if d.Name == "" {
		return errors.New("create_attribute: name is required")
	}
	if d.Field == "" {
		return fmt.Errorf("create_attribute %s: field is required", d.Name)
	}
	if d.Dimension == "" {
		return fmt.Errorf("create_attribute %s: dimension is required", d.Name)
	}
	if d.ParentAttribute != "" && d.ParentAttribute == d.Name {
		return fmt.Errorf("create_attribute %s: attribute cannot be its own parent", d.Name)
	}
	return nil
}

// HierarchyName returns the hierarchy the attribute belongs to, defaulting to
// the dimension name.
func (d *CreateAttribute) HierarchyName() string {
	if d.Hierarchy != "" {
		return d.Hierarchy
	}
	return d.Dimension
}

// CreateMeasure adds a measure to the cube.
type CreateMeasure struct {
	Name         string `mapstructure:"name"`
	Field        string `mapstructure:"field"`
	Aggregation  string `mapstructure:"aggregation"`
	FormatString string `mapstructure:"format_string"`
	Description  string `mapstructure:"description"`
	Hidden       bool   `mapstructure:"hidden"`
}

// Type implements Directive.
func (*CreateMeasure) Type() Type { return TypeCreateMeasure }

// Validate implements Directive.
func (d *CreateMeasure) Validate() error {
	if d.Name == "" {
		return errors.New("create_measure: name is required")
	}
	if d.Field == "" {
		return fmt.Errorf("create_measure %s: field is required", d.Name)
	}
	return nil
}

// CreateDimensionKey marks the column that keys a dimension.
type CreateDimensionKey struct {
	Field     string `mapstructure:"field"`
	Dimension string `mapstructure:"dimension"`
}

// Type implements Directive.
func (*CreateDimensionKey) Type() Type { return TypeCreateDimensionKey }

// Validate implements Directive.
func (d *CreateDimensionKey) Validate() error {
	if d.Dimension == "" {
		return errors.New("create_dimension_key: dimension is required")
	}
	if d.Field == "" {
		return fmt.Errorf("create_dimension_key %s: field is required", d.Dimension)
	}
	return nil
}

// LinkDimension joins a fact column to a published shared dimension.
type LinkDimension struct {
	Name            string `mapstructure:"name"`
	Field           string `mapstructure:"field"`
	SharedDimension string `mapstructure:"shared_dimension"`
}

// Type implements Directive.
func (*LinkDimension) Type() Type { return TypeLinkDimension }

// Validate implements Directive.
func (d *LinkDimension) Validate() error {
	if d.Name == "" {
		return errors.New("link_dimension: name is required")
	}
	if d.Field == "" {
		return fmt.Errorf("link_dimension %s: field is required", d.Name)
	}
	if d.SharedDimension == "" {
		return fmt.Errorf("link_dimension %s: shared_dimension is required", d.Name)
	}
	return nil
}

// CreateCalculatedMember adds an MDX calculated member to the cube.
type CreateCalculatedMember struct {
	Name               string `mapstructure:"name"`
	Dimension          string `mapstructure:"dimension"`
	Formula            string `mapstructure:"formula"`
	FormatString       string `mapstructure:"format_string"`
	Description        string `mapstructure:"description"`
	Hidden             bool   `mapstructure:"hidden"`
	CalculateSubtotals bool   `mapstructure:"calculate_subtotals"`
}

// Type implements Directive.
func (*CreateCalculatedMember) Type() Type { return TypeCreateCalculatedMember }

// Validate implements Directive.
func (d *CreateCalculatedMember) Validate() error {
	if d.Name == "" {
		return errors.New("create_calculated_member: name is required")
	}
	if d.Formula == "" {
		return fmt.Errorf("create_calculated_member %s: formula is required", d.Name)
	}
	return nil
}

// Blank is an annotation that does nothing.
type Blank struct{}

// Type implements Directive.
func (Blank) Type() Type { return TypeBlank }

// Validate implements Directive.
func (Blank) Validate() error { return nil }
