package workspace

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapcube/pkg/annotation"
	"github.com/leapstack-labs/leapcube/pkg/model"
)

// GroupReader reads published shared dimension groups.
type GroupReader interface {
	GetGroup(ctx context.Context, name string) (*annotation.Group, error)
}

// Status is the outcome of applying one annotation.
type Status string

// Apply statuses.
const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusNull      Status = "null"
)

// Result is the outcome of one annotation of a group.
type Result struct {
	Index  int
	Type   annotation.Type
	Status Status
	Err    error
}

// ApplyReport lists the outcome of every annotation, in group order.
type ApplyReport struct {
	Results []Result
	Passes  int
}

// ByStatus returns the results with the given status.
func (r *ApplyReport) ByStatus(s Status) []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status == s {
			out = append(out, res)
		}
	}
	return out
}

// Counts returns the number of results per status.
func (r *ApplyReport) Counts() map[Status]int {
	out := make(map[Status]int, 3)
	for _, res := range r.Results {
		out[res.Status]++
	}
	return out
}

var (
	errNoAnalysis     = errors.New("analysis model has not been built")
	errParentNotFound = errors.New("parent attribute not found")
	errNoGroupReader  = errors.New("no shared dimension store configured")
)

// ApplyAnnotations applies group to the workspace in passes. An annotation
// that fails is retried in the next pass, since it may depend on one applied
// later in the group (an attribute listed before its parent). Passes stop
// once everything applied or a pass made no progress; what is left is
// reported failed. Blank annotations are reported null. Failures are logged,
// not returned, and the workspace is populated afterwards.
func (ws *Workspace) ApplyAnnotations(ctx context.Context, group *annotation.Group, reader GroupReader) *ApplyReport {
	report := &ApplyReport{}
	if group == nil {
		return report
	}
	if ws.analysis == nil {
		if err := ws.AutoModelOLAP(); err != nil {
			for i, a := range group.Annotations {
				report.Results = append(report.Results, Result{Index: i, Type: a.Type, Status: StatusFailed, Err: err})
			}
			return report
		}
	}

	type pendingItem struct {
		index     int
		directive annotation.Directive
	}
	var pending []pendingItem
	for i, a := range group.Annotations {
		d, err := a.Directive()
		if err == nil {
			err = d.Validate()
		}
		switch {
		case err != nil:
			report.Results = append(report.Results, Result{Index: i, Type: a.Type, Status: StatusFailed, Err: err})
		case d.Type() == annotation.TypeBlank:
			report.Results = append(report.Results, Result{Index: i, Type: annotation.TypeBlank, Status: StatusNull})
		default:
			pending = append(pending, pendingItem{index: i, directive: d})
		}
	}

	lastErr := make(map[int]error)
	for len(pending) > 0 {
		report.Passes++
		var retry []pendingItem
		for _, p := range pending {
			if err := ws.apply(ctx, p.directive, reader); err != nil {
				lastErr[p.index] = err
				retry = append(retry, p)
				continue
			}
			report.Results = append(report.Results, Result{Index: p.index, Type: p.directive.Type(), Status: StatusSucceeded})
		}
		if len(retry) == len(pending) {
			pending = retry
			break
		}
		pending = retry
	}
	for _, p := range pending {
		report.Results = append(report.Results, Result{Index: p.index, Type: p.directive.Type(), Status: StatusFailed, Err: lastErr[p.index]})
	}

	slices.SortFunc(report.Results, func(a, b Result) int { return a.Index - b.Index })
	for _, r := range report.Results {
		if r.Status == StatusFailed {
			ws.logger.Warn("annotation not applied", "group", group.Name, "index", r.Index+1, "type", r.Type, "error", r.Err)
		}
	}

	if err := ws.Populate(); err != nil {
		ws.logger.Warn("failed to populate analysis model", "error", err)
	}
	return report
}

func (ws *Workspace) apply(ctx context.Context, d annotation.Directive, reader GroupReader) error {
	if ws.analysis == nil {
		return errNoAnalysis
	}
	switch d := d.(type) {
	case *annotation.CreateMeasure:
		return ws.createMeasure(d)
	case *annotation.CreateAttribute:
		return ws.createAttribute(d)
	case *annotation.CreateDimensionKey:
		return ws.createDimensionKey(d)
	case *annotation.LinkDimension:
		return ws.linkDimension(ctx, d, reader)
	case *annotation.CreateCalculatedMember:
		return ws.createCalculatedMember(d)
	}
	return fmt.Errorf("unsupported annotation %s", d.Type())
}

func (ws *Workspace) mustColumn(field string) (*model.LogicalColumn, error) {
	c := ws.column(field)
	if c == nil {
		return nil, fmt.Errorf("column %q not found", field)
	}
	return c, nil
}

func (ws *Workspace) createMeasure(d *annotation.CreateMeasure) error {
	c, err := ws.mustColumn(d.Field)
	if err != nil {
		return err
	}
	agg := model.AggSum
	if d.Aggregation != "" {
		var ok bool
		if agg, ok = model.ParseAggregationType(d.Aggregation); !ok {
			return fmt.Errorf("unknown aggregation %q", d.Aggregation)
		}
	}

	m := &model.OlapMeasure{
		Name:         d.Name,
		ColumnID:     c.ID,
		Aggregation:  agg,
		FormatString: d.FormatString,
		Description:  d.Description,
		Hidden:       d.Hidden,
	}
	ws.cube.Measures = slices.DeleteFunc(ws.cube.Measures, func(x *model.OlapMeasure) bool {
		return strings.EqualFold(x.Name, d.Name) || (x.AutoGenerated && x.ColumnID == c.ID)
	})
	ws.cube.Measures = append(ws.cube.Measures, m)
	return nil
}

func (ws *Workspace) createAttribute(d *annotation.CreateAttribute) error {
	c, err := ws.mustColumn(d.Field)
	if err != nil {
		return err
	}
	level := &model.OlapHierarchyLevel{
		Name:          d.Name,
		ColumnID:      c.ID,
		UniqueMembers: d.Unique,
		LevelType:     d.TimeType,
		FormatString:  d.TimeFormat,
		GeoRole:       d.GeoType,
		Description:   d.Description,
		Hidden:        d.Hidden,
	}
	if d.OrdinalField != "" {
		oc, err := ws.mustColumn(d.OrdinalField)
		if err != nil {
			return err
		}
		level.OrdinalColumnID = oc.ID
	}
	if d.CaptionField != "" {
		cc, err := ws.mustColumn(d.CaptionField)
		if err != nil {
			return err
		}
		level.CaptionColumnID = cc.ID
	}

	// A declared attribute takes over an auto-generated dimension of the
	// same name.
	dim := ws.Dimension(d.Dimension)
	replaceAuto := dim != nil && dim.AutoGenerated
	var h *model.OlapHierarchy
	if dim != nil && !replaceAuto {
		h = dim.Hierarchy(d.HierarchyName())
	}
	if d.ParentAttribute != "" {
		if h == nil {
			return fmt.Errorf("%w: %s", errParentNotFound, d.ParentAttribute)
		}
		if idx, _ := h.Level(d.ParentAttribute); idx < 0 {
			return fmt.Errorf("%w: %s", errParentNotFound, d.ParentAttribute)
		}
	}

	if replaceAuto {
		ws.RemoveDimension(dim.Name)
		dim = nil
	}
	if dim == nil {
		dim = &model.OlapDimension{Name: d.Dimension, Type: model.DimensionStandard}
		ws.dimensions = append(ws.dimensions, dim)
	}
	if d.TimeType != "" {
		dim.Type = model.DimensionTime
	}
	if h == nil {
		h = &model.OlapHierarchy{Name: d.HierarchyName(), HasAll: true}
		dim.Hierarchies = append(dim.Hierarchies, h)
	}
	insertLevel(h, level, d.ParentAttribute)
	ws.removeAutoLevels(c.ID)
	return nil
}

// insertLevel places level directly below its parent, or last when it has
// none. A level of the same name is replaced.
func insertLevel(h *model.OlapHierarchy, level *model.OlapHierarchyLevel, parent string) {
	if idx, _ := h.Level(level.Name); idx >= 0 {
		h.Levels = slices.Delete(h.Levels, idx, idx+1)
	}
	if parent == "" {
		h.Levels = append(h.Levels, level)
		return
	}
	idx, _ := h.Level(parent)
	h.Levels = slices.Insert(h.Levels, idx+1, level)
}

// removeAutoLevels drops auto-generated levels bound to columnID, and any
// auto-generated dimension left empty by that.
func (ws *Workspace) removeAutoLevels(columnID string) {
	ws.dimensions = slices.DeleteFunc(ws.dimensions, func(dim *model.OlapDimension) bool {
		if !dim.AutoGenerated {
			return false
		}
		dim.Hierarchies = slices.DeleteFunc(dim.Hierarchies, func(h *model.OlapHierarchy) bool {
			h.Levels = slices.DeleteFunc(h.Levels, func(l *model.OlapHierarchyLevel) bool {
				return l.ColumnID == columnID
			})
			return len(h.Levels) == 0
		})
		return len(dim.Hierarchies) == 0
	})
}

func (ws *Workspace) createDimensionKey(d *annotation.CreateDimensionKey) error {
	c, err := ws.mustColumn(d.Field)
	if err != nil {
		return err
	}
	dim := ws.Dimension(d.Dimension)
	if dim == nil {
		dim = &model.OlapDimension{Name: d.Dimension, Type: model.DimensionStandard}
		ws.dimensions = append(ws.dimensions, dim)
	}
	dim.KeyColumnID = c.ID
	return nil
}

// linkDimension adds a dimension defined by a published shared dimension
// group. Its levels name columns of the shared dimension's own table, so they
// carry the group's field names rather than ids of this model.
func (ws *Workspace) linkDimension(ctx context.Context, d *annotation.LinkDimension, reader GroupReader) error {
	if reader == nil {
		return errNoGroupReader
	}
	fk, err := ws.mustColumn(d.Field)
	if err != nil {
		return err
	}
	g, err := reader.GetGroup(ctx, d.SharedDimension)
	if err != nil {
		return fmt.Errorf("failed to read shared dimension %s: %w", d.SharedDimension, err)
	}
	if !g.Shared {
		return fmt.Errorf("group %s is not a shared dimension", g.Name)
	}
	if v := annotation.ValidateSharedDimension(g); v.HasErrors() {
		return fmt.Errorf("shared dimension %s is invalid: %s", g.Name, strings.Join(v.Errors(), "; "))
	}

	dim := &model.OlapDimension{
		Name:               d.Name,
		Type:               model.DimensionStandard,
		SharedDimension:    g.Name,
		ForeignKeyColumnID: fk.ID,
	}
	var attrs []*annotation.CreateAttribute
	for _, a := range g.Annotations {
		sd, err := a.Directive()
		if err != nil {
			return err
		}
		switch sd := sd.(type) {
		case *annotation.CreateDimensionKey:
			dim.KeyColumnID = sd.Field
		case *annotation.CreateAttribute:
			attrs = append(attrs, sd)
		}
	}
	if err := buildSharedHierarchies(dim, attrs); err != nil {
		return fmt.Errorf("shared dimension %s: %w", g.Name, err)
	}

	ws.RemoveDimension(d.Name)
	ws.removeAutoLevels(fk.ID)
	ws.dimensions = append(ws.dimensions, dim)
	return nil
}

// buildSharedHierarchies orders attributes under their parents, in as many
// passes as the parent chain needs.
func buildSharedHierarchies(dim *model.OlapDimension, attrs []*annotation.CreateAttribute) error {
	for len(attrs) > 0 {
		var retry []*annotation.CreateAttribute
		for _, a := range attrs {
			h := dim.Hierarchy(a.HierarchyName())
			if a.ParentAttribute != "" {
				if h == nil {
					retry = append(retry, a)
					continue
				}
				if idx, _ := h.Level(a.ParentAttribute); idx < 0 {
					retry = append(retry, a)
					continue
				}
			}
			if h == nil {
				h = &model.OlapHierarchy{Name: a.HierarchyName(), HasAll: true}
				dim.Hierarchies = append(dim.Hierarchies, h)
			}
			insertLevel(h, &model.OlapHierarchyLevel{
				Name:          a.Name,
				ColumnID:      a.Field,
				UniqueMembers: a.Unique,
				LevelType:     a.TimeType,
				FormatString:  a.TimeFormat,
				GeoRole:       a.GeoType,
				Description:   a.Description,
				Hidden:        a.Hidden,
			}, a.ParentAttribute)
		}
		if len(retry) == len(attrs) {
			return fmt.Errorf("%w: %s", errParentNotFound, retry[0].ParentAttribute)
		}
		attrs = retry
	}
	return nil
}

func (ws *Workspace) createCalculatedMember(d *annotation.CreateCalculatedMember) error {
	dimension := d.Dimension
	if dimension == "" {
		dimension = "Measures"
	}
	m := &model.OlapCalculatedMember{
		Name:               d.Name,
		Dimension:          dimension,
		Formula:            d.Formula,
		FormatString:       d.FormatString,
		Hidden:             d.Hidden,
		CalculateSubtotals: d.CalculateSubtotals,
	}
	ws.cube.CalculatedMembers = slices.DeleteFunc(ws.cube.CalculatedMembers, func(x *model.OlapCalculatedMember) bool {
		return strings.EqualFold(x.Name, d.Name)
	})
	ws.cube.CalculatedMembers = append(ws.cube.CalculatedMembers, m)
	return nil
}
