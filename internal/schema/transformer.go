package schema

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/antchfx/xmlquery"
	"golang.org/x/text/message"

	"github.com/leapstack-labs/leapcube/internal/messages"
	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/model"
)

// Transformer validates analysis schemas against a table and renames them.
// A Transformer holds no per-call state and may be shared.
type Transformer struct {
	resolver TableResolver
	printer  *message.Printer
	logger   *slog.Logger
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithPrinter localizes validation messages.
func WithPrinter(p *message.Printer) Option {
	return func(t *Transformer) { t.printer = p }
}

// New creates a Transformer that validates against the table of resolver.
func New(resolver TableResolver, logger *slog.Logger, opts ...Option) *Transformer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	t := &Transformer{
		resolver: resolver,
		printer:  messages.NewPrinter(messages.ParseLocale("")),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ReplaceTableAndSchemaNames validates schemaXML and returns it with
// Table/@name set to the resolved table and Schema/@name and Cube/@name set
// to newModelName.
//
// Structural and column problems fail with core.KindValidation; failures to
// read the table fail with core.KindDataAccess. Nothing is rewritten unless
// every check passes.
func (t *Transformer) ReplaceTableAndSchemaNames(ctx context.Context, schemaXML, newModelName string) (string, error) {
	doc, err := xmlquery.Parse(strings.NewReader(schemaXML))
	if err != nil {
		return "", core.WrapError(core.KindValidation, err, "invalid analysis schema")
	}

	if err := t.checkSingleTable(doc); err != nil {
		return "", err
	}
	if cubes := xmlquery.Find(doc, "//Cube"); len(cubes) != 1 {
		return "", core.Errorf(core.KindValidation, "%s", t.printer.Sprintf(messages.MultipleCubes, len(cubes)))
	}

	columns, err := t.resolver.Columns(ctx)
	if err != nil {
		return "", core.WrapError(core.KindDataAccess, err, "failed to read columns of %s", t.resolver.TableName())
	}
	if err := t.checkColumns(doc, columns); err != nil {
		return "", err
	}

	tableName := t.resolver.TableName()
	out, err := renameAttribute(schemaXML, map[string]string{
		"Table":  tableName,
		"Schema": newModelName,
		"Cube":   newModelName,
	})
	if err != nil {
		return "", core.WrapError(core.KindValidation, err, "invalid analysis schema")
	}

	t.logger.Debug("analysis schema retargeted", "table", tableName, "model", newModelName)
	return out, nil
}

func (t *Transformer) checkSingleTable(doc *xmlquery.Node) error {
	var names []string
	for _, n := range xmlquery.Find(doc, "//Table[@name]") {
		name := n.SelectAttr("name")
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	if len(names) != 1 {
		return core.Errorf(core.KindValidation, "%s", t.printer.Sprintf(messages.MultipleTables, len(names)))
	}
	return nil
}

// checkColumns accumulates every missing and type-mismatched Level or Measure
// column so that all of them are reported at once.
func (t *Transformer) checkColumns(doc *xmlquery.Node, columns []core.Column) error {
	byName := make(map[string]core.Column, len(columns))
	for _, c := range columns {
		byName[c.Name] = c
	}

	var missing, mismatched []string
	for _, n := range xmlquery.Find(doc, "//*[@column]") {
		if n.Data != "Level" && n.Data != "Measure" {
			continue
		}
		name := n.SelectAttr("column")
		col, ok := byName[name]
		if !ok {
			if !slices.Contains(missing, name) {
				missing = append(missing, name)
			}
			continue
		}
		category, ok := model.ParseLogicalTypeCategory(n.SelectAttr("type"))
		if !ok {
			continue
		}
		if !category.Accepts(col.DataType) && !slices.Contains(mismatched, name) {
			mismatched = append(mismatched, name)
		}
	}
	if len(missing) == 0 && len(mismatched) == 0 {
		return nil
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, t.printer.Sprintf(messages.ColumnsNotFound, t.resolver.TableName(), strings.Join(missing, ", ")))
	}
	if len(mismatched) > 0 {
		parts = append(parts, t.printer.Sprintf(messages.ColumnsWrongType, strings.Join(mismatched, ", ")))
	}
	return &core.Error{
		Kind:       core.KindValidation,
		Message:    strings.Join(parts, "\n"),
		Missing:    missing,
		Mismatched: mismatched,
	}
}
