// Package modeler builds analysis models from tables and keeps them in step
// with their tables.
//
// CreateModel generates a reporting and an analysis model for a table and
// applies an annotation group to it. UpdateModel retargets an existing model
// at a re-introspected table, matching every modeled column to a column of
// the new table and failing when one no longer exists.
package modeler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leapcube/internal/geo"
	"github.com/leapstack-labs/leapcube/internal/messages"
	"github.com/leapstack-labs/leapcube/internal/workspace"
	"github.com/leapstack-labs/leapcube/pkg/adapter"
	"github.com/leapstack-labs/leapcube/pkg/annotation"
	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/model"
)

// Synthesizer creates and updates models. It keeps no per-call state.
type Synthesizer struct {
	logger *slog.Logger
}

// NewSynthesizer creates a Synthesizer. If logger is nil, a discard logger is used.
func NewSynthesizer(logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Synthesizer{logger: logger}
}

// CreateRequest holds the inputs of CreateModel.
type CreateRequest struct {
	ModelName  string
	Source     TableSource
	Connection core.ConnectionInfo
	Strategy   ImportStrategy

	// Annotations is applied after auto-modeling; may be nil.
	Annotations *annotation.Group
	// Groups resolves shared dimensions referenced by link annotations.
	Groups workspace.GroupReader
	// Geo is the optional geography configuration.
	Geo *core.GeoConfig
}

// CreateModel builds a new domain for the table of req.Source.
//
// A table without columns fails with core.KindConfiguration before any
// modeling. Annotations that cannot be applied are listed in the report and
// logged; they do not fail the call.
func (s *Synthesizer) CreateModel(ctx context.Context, req CreateRequest) (*model.Domain, *workspace.ApplyReport, error) {
	tableName := req.Source.TableName()
	cols, err := req.Source.Columns(ctx)
	if err != nil {
		return nil, nil, core.WrapError(core.KindDataAccess, err, "failed to read columns of %s", tableName)
	}
	if len(cols) == 0 {
		return nil, nil, core.Errorf(core.KindConfiguration, "%s", messages.Sprintf(messages.NoData, tableName))
	}

	domain := GenerateDomain(req.ModelName, req.Connection, req.Source.SchemaName(), tableName, cols, req.Strategy)

	geoCtx, _ := geo.Load(req.Geo, s.logger)
	ws := workspace.New(domain, req.ModelName, geoCtx, s.logger)
	if err := ws.AutoModelFlat(); err != nil {
		return nil, nil, err
	}
	if err := ws.AutoModelOLAP(); err != nil {
		return nil, nil, err
	}
	if geo.HasConflict(geoCtx, req.Annotations) {
		geo.RemoveAutoDimension(ws, geoCtx)
		s.logger.Debug("annotated geography replaces auto-discovered dimension", "dimension", geoCtx.DimensionName())
	}
	if err := ws.Populate(); err != nil {
		return nil, nil, err
	}

	analysis := ws.Analysis()
	analysis.SetProperty(model.PropertyGeneratedSchema, "true")
	analysis.SetProperty(model.PropertyWizardGenerated, "true")
	analysis.SetProperty(model.PropertyCatalogRef, NormalizeCatalogName(req.ModelName))

	if cats := ws.Reporting().Categories; len(cats) == 1 {
		cats[0].Name.SetAll(req.ModelName)
	}

	report := ws.ApplyAnnotations(ctx, req.Annotations, req.Groups)
	if req.Annotations != nil {
		counts := report.Counts()
		s.logger.Info("annotations applied",
			"group", req.Annotations.Name,
			"succeeded", counts[workspace.StatusSucceeded],
			"failed", counts[workspace.StatusFailed],
			"null", counts[workspace.StatusNull])
	}

	if req.Connection.Indirect {
		RewriteConnectionAccess(domain.PhysicalModels[0], req.Connection.Name)
	}

	s.logger.Info("model created", "model", req.ModelName, "table", tableName, "columns", len(cols))
	return domain, report, nil
}

// UpdateModel re-introspects schemaName.tableName through conn and retargets
// domain at it. See UpdateModelFrom.
func (s *Synthesizer) UpdateModel(ctx context.Context, modelName string, domain *model.Domain, conn core.ConnectionInfo, schemaName, tableName string) (*model.Domain, error) {
	src := &adapter.Table{Config: conn.Adapter, Schema: schemaName, Name: tableName, Logger: s.logger}
	return s.UpdateModelFrom(ctx, modelName, domain, conn, src)
}

// UpdateModelFrom replaces the physical models of domain with one built from
// src and rebinds every logical model to it. OLAP metadata is kept; logical
// models, their single category and their cube are renamed to modelName.
//
// Models spanning several tables, or carrying a catalog reference without
// exactly one cube, fail with core.KindUnsupportedModel. Columns without a
// counterpart in the table fail with core.KindColumnMismatch. On failure the
// domain is left unchanged.
func (s *Synthesizer) UpdateModelFrom(ctx context.Context, modelName string, domain *model.Domain, conn core.ConnectionInfo, src TableSource) (*model.Domain, error) {
	for _, lm := range domain.LogicalModels {
		if len(lm.Tables) > 1 {
			return nil, core.Errorf(core.KindUnsupportedModel, "%s",
				messages.Sprintf(messages.MultipleTablesIn, lm.Name.String(), len(lm.Tables)))
		}
		if _, ok := lm.Property(model.PropertyCatalogRef); ok && len(lm.Cubes) != 1 {
			return nil, core.Errorf(core.KindUnsupportedModel, "%s",
				messages.Sprintf(messages.CubeCount, lm.Name.String(), len(lm.Cubes)))
		}
	}

	tableName := src.TableName()
	cols, err := src.Columns(ctx)
	if err != nil {
		return nil, core.WrapError(core.KindDataAccess, err, "failed to read columns of %s", tableName)
	}
	if len(cols) == 0 {
		return nil, core.Errorf(core.KindConfiguration, "%s", messages.Sprintf(messages.NoData, tableName))
	}

	pm := PhysicalModel(conn, src.SchemaName(), tableName, cols)
	pt := pm.Tables[0]

	binds := make([]func(), 0, len(domain.LogicalModels))
	for _, lm := range domain.LogicalModels {
		bind, err := planReconcile(lm, pt)
		if err != nil {
			return nil, err
		}
		binds = append(binds, bind)
	}

	domain.PhysicalModels = []*model.PhysicalModel{pm}
	for i, lm := range domain.LogicalModels {
		lm.Bind(pm)
		binds[i]()
	}
	RewriteConnectionAccess(pm, conn.Name)

	for _, lm := range domain.LogicalModels {
		lm.Name.SetAll(modelName)
		if _, ok := lm.Property(model.PropertyCatalogRef); ok {
			lm.Cubes[0].Name = modelName
			lm.SetProperty(model.PropertyCatalogRef, NormalizeCatalogName(modelName))
		}
		if len(lm.Categories) == 1 {
			lm.Categories[0].Name.SetAll(modelName)
		}
	}
	domain.ID = modelName

	s.logger.Info("model updated", "model", modelName, "table", tableName, "logical_models", len(domain.LogicalModels))
	return domain, nil
}

var catalogSuffixes = []string{".mondrian.xml", ".xmi"}

// NormalizeCatalogName strips the file suffixes publishing appends to a
// model name, so the catalog reference matches the published analysis
// schema.
func NormalizeCatalogName(name string) string {
	for {
		trimmed := false
		for _, suffix := range catalogSuffixes {
			if len(name) > len(suffix) && strings.EqualFold(name[len(name)-len(suffix):], suffix) {
				name = name[:len(name)-len(suffix)]
				trimmed = true
			}
		}
		if !trimmed {
			return name
		}
	}
}
