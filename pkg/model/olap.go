package model

import (
	"slices"
	"strings"
)

// AggregationType is how a measure rolls up.
type AggregationType string

// Aggregation types.
const (
	AggNone          AggregationType = "NONE"
	AggSum           AggregationType = "SUM"
	AggAverage       AggregationType = "AVERAGE"
	AggCount         AggregationType = "COUNT"
	AggCountDistinct AggregationType = "COUNT_DISTINCT"
	AggMinimum       AggregationType = "MINIMUM"
	AggMaximum       AggregationType = "MAXIMUM"
)

var aggregationAliases = map[string]AggregationType{
	"none":           AggNone,
	"sum":            AggSum,
	"average":        AggAverage,
	"avg":            AggAverage,
	"count":          AggCount,
	"count_distinct": AggCountDistinct,
	"distinct_count": AggCountDistinct,
	"minimum":        AggMinimum,
	"min":            AggMinimum,
	"maximum":        AggMaximum,
	"max":            AggMaximum,
}

// ParseAggregationType accepts canonical names and common aliases in any case.
func ParseAggregationType(s string) (AggregationType, bool) {
	a, ok := aggregationAliases[strings.ToLower(strings.TrimSpace(s))]
	return a, ok
}

// Dimension types.
const (
	DimensionStandard = "StandardDimension"
	DimensionTime     = "TimeDimension"
)

// OlapDimension is a dimension of an analysis model.
type OlapDimension struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	KeyColumnID string `yaml:"key_column,omitempty"`

	// SharedDimension names the shared annotation group a linked dimension
	// comes from; ForeignKeyColumnID is the fact column joining to it.
	SharedDimension    string           `yaml:"shared_dimension,omitempty"`
	ForeignKeyColumnID string           `yaml:"foreign_key,omitempty"`
	AutoGenerated      bool             `yaml:"auto_generated,omitempty"`
	Hierarchies        []*OlapHierarchy `yaml:"hierarchies"`
}

// OlapHierarchy is an ordered list of levels within a dimension.
type OlapHierarchy struct {
	Name   string                `yaml:"name"`
	HasAll bool                  `yaml:"has_all"`
	Levels []*OlapHierarchyLevel `yaml:"levels"`
}

// OlapHierarchyLevel is one level of a hierarchy, bound to a logical column.
type OlapHierarchyLevel struct {
	Name            string `yaml:"name"`
	ColumnID        string `yaml:"column"`
	OrdinalColumnID string `yaml:"ordinal_column,omitempty"`
	CaptionColumnID string `yaml:"caption_column,omitempty"`
	UniqueMembers   bool   `yaml:"unique_members,omitempty"`
	LevelType       string `yaml:"level_type,omitempty"`
	FormatString    string `yaml:"format_string,omitempty"`
	GeoRole         string `yaml:"geo_role,omitempty"`
	Description     string `yaml:"description,omitempty"`
	Hidden          bool   `yaml:"hidden,omitempty"`
}

// OlapCube is the fact table view of an analysis model.
type OlapCube struct {
	Name              string                  `yaml:"name"`
	LogicalTableID    string                  `yaml:"logical_table"`
	DimensionUsages   []*OlapDimensionUsage   `yaml:"dimension_usages"`
	Measures          []*OlapMeasure          `yaml:"measures"`
	CalculatedMembers []*OlapCalculatedMember `yaml:"calculated_members,omitempty"`
}

// OlapDimensionUsage places a dimension in a cube.
type OlapDimensionUsage struct {
	Name      string `yaml:"name"`
	Dimension string `yaml:"dimension"`
}

// OlapMeasure is an aggregated fact column.
type OlapMeasure struct {
	Name          string          `yaml:"name"`
	ColumnID      string          `yaml:"column"`
	Aggregation   AggregationType `yaml:"aggregation"`
	FormatString  string          `yaml:"format_string,omitempty"`
	Description   string          `yaml:"description,omitempty"`
	Hidden        bool            `yaml:"hidden,omitempty"`
	AutoGenerated bool            `yaml:"auto_generated,omitempty"`
}

// OlapCalculatedMember is an MDX formula evaluated in a dimension.
type OlapCalculatedMember struct {
	Name               string `yaml:"name"`
	Dimension          string `yaml:"dimension"`
	Formula            string `yaml:"formula"`
	FormatString       string `yaml:"format_string,omitempty"`
	Hidden             bool   `yaml:"hidden,omitempty"`
	CalculateSubtotals bool   `yaml:"calculate_subtotals,omitempty"`
}

// Dimension finds a dimension by name, ignoring case.
func (lm *LogicalModel) Dimension(name string) *OlapDimension {
	for _, d := range lm.Dimensions {
		if strings.EqualFold(d.Name, name) {
			return d
		}
	}
	return nil
}

// RemoveDimension drops a dimension (matched ignoring case) and its usages.
// It reports whether a dimension was removed.
func (lm *LogicalModel) RemoveDimension(name string) bool {
	n := len(lm.Dimensions)
	lm.Dimensions = slices.DeleteFunc(lm.Dimensions, func(d *OlapDimension) bool {
		return strings.EqualFold(d.Name, name)
	})
	for _, c := range lm.Cubes {
		c.DimensionUsages = slices.DeleteFunc(c.DimensionUsages, func(u *OlapDimensionUsage) bool {
			return strings.EqualFold(u.Dimension, name)
		})
	}
	return len(lm.Dimensions) != n
}

// Hierarchy finds a hierarchy by name, ignoring case.
func (d *OlapDimension) Hierarchy(name string) *OlapHierarchy {
	for _, h := range d.Hierarchies {
		if strings.EqualFold(h.Name, name) {
			return h
		}
	}
	return nil
}

// Level finds a level by name, ignoring case.
func (h *OlapHierarchy) Level(name string) (int, *OlapHierarchyLevel) {
	for i, l := range h.Levels {
		if strings.EqualFold(l.Name, name) {
			return i, l
		}
	}
	return -1, nil
}

// Measure finds a measure by name, ignoring case.
func (c *OlapCube) Measure(name string) *OlapMeasure {
	for _, m := range c.Measures {
		if strings.EqualFold(m.Name, name) {
			return m
		}
	}
	return nil
}
