package modeler

import (
	"github.com/leapstack-labs/leapcube/internal/messages"
	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/model"
)

// ReconcileColumns rebinds the single logical table of lm, and each of its
// columns, to table. Columns are matched by ColumnKey, so reordered or
// recreated tables keep working while renamed or retyped columns fail.
//
// The model is left untouched unless every column matches.
func ReconcileColumns(lm *model.LogicalModel, table *model.PhysicalTable) error {
	bind, err := planReconcile(lm, table)
	if err != nil {
		return err
	}
	bind()
	return nil
}

// planReconcile matches every column and returns the rebinding to perform.
func planReconcile(lm *model.LogicalModel, table *model.PhysicalTable) (func(), error) {
	if len(lm.Tables) > 1 {
		return nil, core.Errorf(core.KindUnsupportedModel, "%s",
			messages.Sprintf(messages.MultipleTablesIn, lm.Name.String(), len(lm.Tables)))
	}
	if len(lm.Tables) == 0 {
		return func() {}, nil
	}

	byKey := make(map[model.ColumnKey]*model.PhysicalColumn, len(table.Columns))
	for _, pc := range table.Columns {
		byKey[model.KeyOf(pc)] = pc
	}

	lt := lm.Tables[0]
	targets := make([]*model.PhysicalColumn, len(lt.Columns))
	for i, lc := range lt.Columns {
		old := lc.PhysicalColumn
		if old == nil {
			return nil, core.Errorf(core.KindColumnMismatch, "logical column %s is not bound to a physical column", lc.ID)
		}
		pc, ok := byKey[model.KeyOf(old)]
		if !ok {
			return nil, &core.Error{
				Kind:    core.KindColumnMismatch,
				Message: messages.Sprintf(messages.ColumnMismatch, old.TargetColumn, old.DataType, table.TargetTable),
				Column:  old.TargetColumn,
				Type:    old.DataType,
			}
		}
		targets[i] = pc
	}

	return func() {
		lt.Bind(table)
		for i, lc := range lt.Columns {
			lc.Bind(targets[i])
		}
	}, nil
}
