// Package workspace holds an in-progress model while it is being built:
// auto-modeling of the reporting and analysis views, geography discovery and
// application of annotation groups.
package workspace

import (
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapcube/internal/geo"
	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/model"
)

// DefaultGeographyDimension names the geography dimension when the
// geography configuration does not.
const DefaultGeographyDimension = "Geography"

// Workspace wraps a Domain whose first physical model holds the modeled table
// and whose first logical model is the reporting view of it.
type Workspace struct {
	domain    *model.Domain
	modelName string
	geo       *geo.Context
	logger    *slog.Logger

	reporting *model.LogicalModel
	analysis  *model.LogicalModel

	dimensions []*model.OlapDimension
	cube       *model.OlapCube
}

// New creates a workspace over domain. geoCtx may be nil.
func New(domain *model.Domain, modelName string, geoCtx *geo.Context, logger *slog.Logger) *Workspace {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ws := &Workspace{
		domain:    domain,
		modelName: modelName,
		geo:       geoCtx,
		logger:    logger,
	}
	if len(domain.LogicalModels) > 0 {
		ws.reporting = domain.LogicalModels[0]
	}
	return ws
}

// Domain returns the domain being modeled.
func (ws *Workspace) Domain() *model.Domain { return ws.domain }

// Reporting returns the reporting logical model.
func (ws *Workspace) Reporting() *model.LogicalModel { return ws.reporting }

// Analysis returns the analysis logical model, nil before AutoModelOLAP.
func (ws *Workspace) Analysis() *model.LogicalModel { return ws.analysis }

// Dimensions returns the dimensions in the workspace.
func (ws *Workspace) Dimensions() []*model.OlapDimension { return ws.dimensions }

// Cube returns the cube, nil before AutoModelOLAP.
func (ws *Workspace) Cube() *model.OlapCube { return ws.cube }

// Dimension finds a workspace dimension by name, ignoring case.
func (ws *Workspace) Dimension(name string) *model.OlapDimension {
	for _, d := range ws.dimensions {
		if strings.EqualFold(d.Name, name) {
			return d
		}
	}
	return nil
}

// AutoModelFlat completes the reporting model: a single category named
// after the table holding every imported column.
func (ws *Workspace) AutoModelFlat() error {
	if ws.reporting == nil || len(ws.reporting.Tables) == 0 {
		return core.Errorf(core.KindConfiguration, "model %s has no reporting table", ws.modelName)
	}
	lt := ws.reporting.Tables[0]
	ids := make([]string, 0, len(lt.Columns))
	for _, c := range lt.Columns {
		ids = append(ids, c.ID)
	}
	ws.reporting.Categories = []*model.Category{{
		ID:        model.ID("CAT", lt.Name.String()),
		Name:      model.NewLocalizedString(lt.Name.String()),
		ColumnIDs: ids,
	}}
	ws.logger.Debug("reporting model built", "table", lt.Name.String(), "columns", len(ids))
	return nil
}

// AutoModelOLAP creates the analysis model next to the reporting model and
// derives default dimensions and measures: numeric columns become summed
// measures, geographic columns are gathered into the geography dimension and
// every other column becomes a single-level dimension.
func (ws *Workspace) AutoModelOLAP() error {
	if ws.reporting == nil || len(ws.reporting.Tables) == 0 {
		return core.Errorf(core.KindConfiguration, "model %s has no reporting table", ws.modelName)
	}
	src := ws.reporting.Tables[0]

	lt := &model.LogicalTable{
		ID:   model.ID("LT_OLAP", src.Name.String()),
		Name: model.NewLocalizedString(src.Name.String()),
	}
	lt.Bind(src.PhysicalTable)
	var ids model.IDSet
	for _, c := range src.Columns {
		lc := &model.LogicalColumn{
			ID:          ids.ID("LC_OLAP", src.Name.String(), c.PhysicalColumn.TargetColumn),
			Name:        cloneName(c.Name),
			DataType:    c.DataType,
			Aggregation: c.Aggregation,
			FormatMask:  c.FormatMask,
			Hidden:      c.Hidden,
		}
		lc.Bind(c.PhysicalColumn)
		lt.Columns = append(lt.Columns, lc)
	}

	ws.analysis = &model.LogicalModel{
		ID:     "OLAP",
		Name:   model.NewLocalizedString(ws.modelName),
		Tables: []*model.LogicalTable{lt},
	}
	ws.analysis.Bind(ws.reporting.PhysicalModel)
	ws.domain.LogicalModels = append(ws.domain.LogicalModels, ws.analysis)

	ws.cube = &model.OlapCube{Name: ws.modelName, LogicalTableID: lt.ID}
	ws.dimensions = nil

	geoLevels := make(map[string]*model.LogicalColumn)
	for _, c := range lt.Columns {
		if role, ok := ws.geo.MatchColumn(c.PhysicalColumn.TargetColumn); ok {
			if _, dup := geoLevels[role.Name]; !dup {
				geoLevels[role.Name] = c
				continue
			}
		}
		if c.DataType.IsNumeric() {
			ws.cube.Measures = append(ws.cube.Measures, &model.OlapMeasure{
				Name:          c.Name.String(),
				ColumnID:      c.ID,
				Aggregation:   defaultAggregation(c),
				FormatString:  c.FormatMask,
				AutoGenerated: true,
			})
			continue
		}
		ws.dimensions = append(ws.dimensions, autoDimension(c))
	}
	ws.addGeographyDimension(geoLevels)

	ws.logger.Debug("analysis model built",
		"dimensions", len(ws.dimensions),
		"measures", len(ws.cube.Measures))
	return nil
}

// addGeographyDimension builds one hierarchy from the matched geographic
// columns, coarsest role first. A role is only used when all its required
// parents were matched too; otherwise its column becomes a plain dimension.
func (ws *Workspace) addGeographyDimension(matched map[string]*model.LogicalColumn) {
	if len(matched) == 0 {
		return
	}
	name := ws.geo.DimensionName()
	if name == "" {
		name = DefaultGeographyDimension
	}
	h := &model.OlapHierarchy{Name: name, HasAll: true}
	for _, role := range ws.geo.Roles() {
		c, ok := matched[role.Name]
		if !ok {
			continue
		}
		if !hasParents(role, matched) {
			ws.logger.Debug("geographic column lacks required parents", "column", c.Name.String(), "role", role.Name)
			ws.dimensions = append(ws.dimensions, autoDimension(c))
			continue
		}
		h.Levels = append(h.Levels, &model.OlapHierarchyLevel{
			Name:     c.Name.String(),
			ColumnID: c.ID,
			GeoRole:  role.Name,
		})
	}
	if len(h.Levels) == 0 {
		return
	}
	ws.dimensions = append(ws.dimensions, &model.OlapDimension{
		Name:          name,
		Type:          model.DimensionStandard,
		AutoGenerated: true,
		Hierarchies:   []*model.OlapHierarchy{h},
	})
}

func hasParents(role geo.Role, matched map[string]*model.LogicalColumn) bool {
	for _, p := range role.RequiredParents {
		found := false
		for name := range matched {
			if strings.EqualFold(name, p) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func autoDimension(c *model.LogicalColumn) *model.OlapDimension {
	name := c.Name.String()
	level := &model.OlapHierarchyLevel{Name: name, ColumnID: c.ID}
	dim := &model.OlapDimension{
		Name:          name,
		Type:          model.DimensionStandard,
		AutoGenerated: true,
		Hierarchies:   []*model.OlapHierarchy{{Name: name, HasAll: true, Levels: []*model.OlapHierarchyLevel{level}}},
	}
	if c.DataType.IsTemporal() {
		dim.Type = model.DimensionTime
		level.LevelType = "TimeDays"
	}
	return dim
}

func defaultAggregation(c *model.LogicalColumn) model.AggregationType {
	if c.Aggregation != "" && c.Aggregation != model.AggNone {
		return c.Aggregation
	}
	return model.AggSum
}

func cloneName(s model.LocalizedString) model.LocalizedString {
	return maps.Clone(s)
}

// RemoveDimension drops a workspace dimension, ignoring case.
func (ws *Workspace) RemoveDimension(name string) bool {
	n := len(ws.dimensions)
	ws.dimensions = slices.DeleteFunc(ws.dimensions, func(d *model.OlapDimension) bool {
		return strings.EqualFold(d.Name, name)
	})
	if len(ws.dimensions) == n {
		return false
	}
	ws.logger.Debug("dimension removed", "dimension", name)
	return true
}

// Populate writes the workspace dimensions and cube onto the analysis
// model. Every dimension is used by the cube.
func (ws *Workspace) Populate() error {
	if ws.analysis == nil {
		return core.Errorf(core.KindConfiguration, "model %s has no analysis model to populate", ws.modelName)
	}
	ws.cube.DimensionUsages = nil
	for _, d := range ws.dimensions {
		ws.cube.DimensionUsages = append(ws.cube.DimensionUsages, &model.OlapDimensionUsage{Name: d.Name, Dimension: d.Name})
	}
	ws.analysis.Dimensions = slices.Clone(ws.dimensions)
	ws.analysis.Cubes = []*model.OlapCube{ws.cube}
	return nil
}

// column finds an analysis column by its physical column name, then by its
// display name, ignoring case.
func (ws *Workspace) column(field string) *model.LogicalColumn {
	if ws.analysis == nil {
		return nil
	}
	lt := ws.analysis.Tables[0]
	for _, c := range lt.Columns {
		if strings.EqualFold(c.PhysicalColumn.TargetColumn, field) {
			return c
		}
	}
	for _, c := range lt.Columns {
		if strings.EqualFold(c.Name.String(), field) {
			return c
		}
	}
	return nil
}
