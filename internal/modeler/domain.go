package modeler

import (
	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/model"
)

// PhysicalModel describes a table as a physical model bound to the
// connection's database.
func PhysicalModel(conn core.ConnectionInfo, schemaName, tableName string, cols []core.Column) *model.PhysicalModel {
	dbName := conn.Adapter.Database
	if dbName == "" {
		dbName = conn.Name
	}
	pm := &model.PhysicalModel{
		ID:   model.ID("PM", dbName),
		Name: model.NewLocalizedString(dbName),
		Datasource: &model.Datasource{
			DatabaseName: dbName,
			DatabaseType: conn.Adapter.Type,
			AccessType:   model.AccessNative,
			Host:         conn.Adapter.Host,
			Port:         conn.Adapter.Port,
			Username:     conn.Adapter.Username,
			Password:     conn.Adapter.Password,
		},
	}

	pt := &model.PhysicalTable{
		ID:           model.ID("PT", schemaName, tableName),
		Name:         model.NewLocalizedString(tableName),
		TargetSchema: schemaName,
		TargetTable:  tableName,
	}
	var ids model.IDSet
	for _, c := range cols {
		pt.Columns = append(pt.Columns, &model.PhysicalColumn{
			ID:           ids.ID("PC", tableName, c.Name),
			Name:         model.NewLocalizedString(c.Name),
			TargetColumn: c.Name,
			DataType:     c.DataType,
		})
	}
	pm.Tables = []*model.PhysicalTable{pt}
	return pm
}

// GenerateDomain builds a domain holding the physical model of the table and
// a reporting logical model with the columns accepted by strategy.
func GenerateDomain(modelName string, conn core.ConnectionInfo, schemaName, tableName string, cols []core.Column, strategy ImportStrategy) *model.Domain {
	if strategy == nil {
		strategy = DefaultImportStrategy{}
	}
	pm := PhysicalModel(conn, schemaName, tableName, cols)
	pt := pm.Tables[0]

	lt := &model.LogicalTable{
		ID:   model.ID("LT", tableName),
		Name: model.NewLocalizedString(tableName),
	}
	lt.Bind(pt)
	var ids model.IDSet
	for i, c := range cols {
		if !strategy.Accept(c) {
			continue
		}
		pc := pt.Columns[i]
		lc := &model.LogicalColumn{
			ID:       ids.ID("LC", tableName, c.Name),
			Name:     model.NewLocalizedString(strategy.DisplayName(c)),
			DataType: c.DataType,
		}
		lc.Bind(pc)
		lt.Columns = append(lt.Columns, lc)
	}

	lm := &model.LogicalModel{
		ID:     model.ID("BV", modelName),
		Name:   model.NewLocalizedString(modelName),
		Tables: []*model.LogicalTable{lt},
	}
	lm.Bind(pm)

	return &model.Domain{
		ID:             modelName,
		PhysicalModels: []*model.PhysicalModel{pm},
		LogicalModels:  []*model.LogicalModel{lm},
	}
}
