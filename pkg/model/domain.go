package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapcube/pkg/core"
)

// DefaultLocale is the locale used for names created by the modeler.
const DefaultLocale = "en_US"

// Logical model properties read by the BI server.
const (
	PropertyGeneratedSchema = "AGILE_BI_GENERATED_SCHEMA"
	PropertyWizardGenerated = "WIZARD_GENERATED_SCHEMA"
	PropertyCatalogRef      = "MondrianCatalogRef"
)

// LocalizedString maps a locale to text.
type LocalizedString map[string]string

// NewLocalizedString returns a string with a single DefaultLocale entry.
func NewLocalizedString(s string) LocalizedString {
	return LocalizedString{DefaultLocale: s}
}

// String returns the DefaultLocale text, or any text when that locale is absent.
func (l LocalizedString) String() string {
	if s, ok := l[DefaultLocale]; ok {
		return s
	}
	locales := l.Locales()
	if len(locales) == 0 {
		return ""
	}
	return l[locales[0]]
}

// Locales returns the locales present, sorted.
func (l LocalizedString) Locales() []string {
	out := make([]string, 0, len(l))
	for k := range l {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SetAll replaces the text of every locale (DefaultLocale if there are none).
func (l *LocalizedString) SetAll(s string) {
	if len(*l) == 0 {
		*l = NewLocalizedString(s)
		return
	}
	for k := range *l {
		(*l)[k] = s
	}
}

// AccessType is how a server reaches a datasource.
type AccessType string

// Access types.
const (
	AccessNative AccessType = "NATIVE"
	AccessJNDI   AccessType = "JNDI"
)

// Datasource describes the database behind a physical model.
type Datasource struct {
	DatabaseName string     `yaml:"database_name"`
	DatabaseType string     `yaml:"database_type"`
	AccessType   AccessType `yaml:"access_type"`
	Host         string     `yaml:"host,omitempty"`
	Port         int        `yaml:"port,omitempty"`
	Username     string     `yaml:"username,omitempty"`
	Password     string     `yaml:"password,omitempty"`
}

// Domain is a set of physical models and the logical models built on them.
type Domain struct {
	ID             string           `yaml:"id"`
	PhysicalModels []*PhysicalModel `yaml:"physical_models"`
	LogicalModels  []*LogicalModel  `yaml:"logical_models"`
}

// PhysicalModel is a SQL datasource and the tables read from it.
type PhysicalModel struct {
	ID         string           `yaml:"id"`
	Name       LocalizedString  `yaml:"name"`
	Datasource *Datasource      `yaml:"datasource,omitempty"`
	Tables     []*PhysicalTable `yaml:"tables"`
}

// PhysicalTable is a database table.
type PhysicalTable struct {
	ID           string            `yaml:"id"`
	Name         LocalizedString   `yaml:"name"`
	TargetSchema string            `yaml:"target_schema,omitempty"`
	TargetTable  string            `yaml:"target_table"`
	Columns      []*PhysicalColumn `yaml:"columns"`
}

// PhysicalColumn is a database column.
type PhysicalColumn struct {
	ID           string          `yaml:"id"`
	Name         LocalizedString `yaml:"name"`
	TargetColumn string          `yaml:"target_column"`
	DataType     core.DataType   `yaml:"data_type"`
	Aggregation  AggregationType `yaml:"aggregation,omitempty"`
}

// LogicalModel is a business view bound to a single physical model.
type LogicalModel struct {
	ID              string            `yaml:"id"`
	Name            LocalizedString   `yaml:"name"`
	PhysicalModelID string            `yaml:"physical_model"`
	PhysicalModel   *PhysicalModel    `yaml:"-"`
	Tables          []*LogicalTable   `yaml:"tables"`
	Categories      []*Category       `yaml:"categories,omitempty"`
	Properties      map[string]string `yaml:"properties,omitempty"`
	Dimensions      []*OlapDimension  `yaml:"dimensions,omitempty"`
	Cubes           []*OlapCube       `yaml:"cubes,omitempty"`
}

// LogicalTable is a business view of one physical table.
type LogicalTable struct {
	ID              string           `yaml:"id"`
	Name            LocalizedString  `yaml:"name"`
	PhysicalTableID string           `yaml:"physical_table"`
	PhysicalTable   *PhysicalTable   `yaml:"-"`
	Columns         []*LogicalColumn `yaml:"columns"`
}

// LogicalColumn is a business column bound to a physical column.
type LogicalColumn struct {
	ID               string          `yaml:"id"`
	Name             LocalizedString `yaml:"name"`
	PhysicalColumnID string          `yaml:"physical_column"`
	PhysicalColumn   *PhysicalColumn `yaml:"-"`
	DataType         core.DataType   `yaml:"data_type"`
	Aggregation      AggregationType `yaml:"aggregation,omitempty"`
	FormatMask       string          `yaml:"format_mask,omitempty"`
	Hidden           bool            `yaml:"hidden,omitempty"`
}

// Category groups logical columns for reporting tools.
type Category struct {
	ID        string          `yaml:"id"`
	Name      LocalizedString `yaml:"name"`
	ColumnIDs []string        `yaml:"columns"`
}

// Bind attaches the logical model to a physical model.
func (lm *LogicalModel) Bind(pm *PhysicalModel) {
	lm.PhysicalModel = pm
	lm.PhysicalModelID = pm.ID
}

// Bind attaches the logical table to a physical table.
func (lt *LogicalTable) Bind(pt *PhysicalTable) {
	lt.PhysicalTable = pt
	lt.PhysicalTableID = pt.ID
}

// Bind attaches the logical column to a physical column.
func (lc *LogicalColumn) Bind(pc *PhysicalColumn) {
	lc.PhysicalColumn = pc
	lc.PhysicalColumnID = pc.ID
}

// Property returns a logical model property and whether it is set.
func (lm *LogicalModel) Property(key string) (string, bool) {
	v, ok := lm.Properties[key]
	return v, ok
}

// SetProperty sets a logical model property.
func (lm *LogicalModel) SetProperty(key, value string) {
	if lm.Properties == nil {
		lm.Properties = make(map[string]string)
	}
	lm.Properties[key] = value
}

// IsAnalysis reports whether the model carries OLAP metadata.
func (lm *LogicalModel) IsAnalysis() bool {
	_, ok := lm.Property(PropertyCatalogRef)
	return ok || len(lm.Cubes) > 0
}

// Column finds a logical column by id across all tables.
func (lm *LogicalModel) Column(id string) *LogicalColumn {
	for _, lt := range lm.Tables {
		if c := lt.Column(id); c != nil {
			return c
		}
	}
	return nil
}

// Column finds a logical column by id.
func (lt *LogicalTable) Column(id string) *LogicalColumn {
	for _, c := range lt.Columns {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// ColumnByTarget finds a physical column by target column name, ignoring case.
func (pt *PhysicalTable) ColumnByTarget(name string) *PhysicalColumn {
	for _, c := range pt.Columns {
		if strings.EqualFold(c.TargetColumn, name) {
			return c
		}
	}
	return nil
}

// Column finds a physical column by id.
func (pt *PhysicalTable) Column(id string) *PhysicalColumn {
	for _, c := range pt.Columns {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Table finds a physical table by id.
func (pm *PhysicalModel) Table(id string) *PhysicalTable {
	for _, t := range pm.Tables {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// PhysicalModel finds a physical model by id.
func (d *Domain) PhysicalModel(id string) *PhysicalModel {
	for _, pm := range d.PhysicalModels {
		if pm.ID == id {
			return pm
		}
	}
	return nil
}

// ReportingModel returns the first logical model without OLAP metadata.
func (d *Domain) ReportingModel() *LogicalModel {
	for _, lm := range d.LogicalModels {
		if !lm.IsAnalysis() {
			return lm
		}
	}
	return nil
}

// AnalysisModel returns the first logical model carrying OLAP metadata.
func (d *Domain) AnalysisModel() *LogicalModel {
	for _, lm := range d.LogicalModels {
		if lm.IsAnalysis() {
			return lm
		}
	}
	return nil
}

// Link resolves id references into pointers after a Domain has been decoded.
// Ids must be unique in their scope, otherwise a reference could resolve to
// the wrong object.
func (d *Domain) Link() error {
	if err := d.checkUniqueIDs(); err != nil {
		return err
	}
	for _, lm := range d.LogicalModels {
		pm := d.PhysicalModel(lm.PhysicalModelID)
		if pm == nil {
			return fmt.Errorf("logical model %s references unknown physical model %q", lm.ID, lm.PhysicalModelID)
		}
		lm.PhysicalModel = pm
		for _, lt := range lm.Tables {
			pt := pm.Table(lt.PhysicalTableID)
			if pt == nil {
				return fmt.Errorf("logical table %s references unknown physical table %q", lt.ID, lt.PhysicalTableID)
			}
			lt.PhysicalTable = pt
			for _, lc := range lt.Columns {
				pc := pt.Column(lc.PhysicalColumnID)
				if pc == nil {
					return fmt.Errorf("logical column %s references unknown physical column %q", lc.ID, lc.PhysicalColumnID)
				}
				lc.PhysicalColumn = pc
			}
		}
	}
	return nil
}

// checkUniqueIDs rejects duplicate ids among physical models, the tables of
// a physical model, the columns of a table, logical models, and the tables
// and columns of a logical model.
func (d *Domain) checkUniqueIDs() error {
	pms := make(map[string]bool, len(d.PhysicalModels))
	for _, pm := range d.PhysicalModels {
		if pms[pm.ID] {
			return fmt.Errorf("duplicate physical model id %q", pm.ID)
		}
		pms[pm.ID] = true
		tables := make(map[string]bool, len(pm.Tables))
		for _, pt := range pm.Tables {
			if tables[pt.ID] {
				return fmt.Errorf("physical model %s: duplicate table id %q", pm.ID, pt.ID)
			}
			tables[pt.ID] = true
			cols := make(map[string]bool, len(pt.Columns))
			for _, pc := range pt.Columns {
				if cols[pc.ID] {
					return fmt.Errorf("physical table %s: duplicate column id %q", pt.ID, pc.ID)
				}
				cols[pc.ID] = true
			}
		}
	}

	lms := make(map[string]bool, len(d.LogicalModels))
	for _, lm := range d.LogicalModels {
		if lms[lm.ID] {
			return fmt.Errorf("duplicate logical model id %q", lm.ID)
		}
		lms[lm.ID] = true
		ids := make(map[string]bool)
		for _, lt := range lm.Tables {
			if ids[lt.ID] {
				return fmt.Errorf("logical model %s: duplicate id %q", lm.ID, lt.ID)
			}
			ids[lt.ID] = true
			for _, lc := range lt.Columns {
				if ids[lc.ID] {
					return fmt.Errorf("logical model %s: duplicate id %q", lm.ID, lc.ID)
				}
				ids[lc.ID] = true
			}
		}
	}
	return nil
}
