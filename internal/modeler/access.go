package modeler

import "github.com/leapstack-labs/leapcube/pkg/model"

// RewriteConnectionAccess turns the embedded datasource of pm into a
// reference to the server-managed connection connectionName. Host, port and
// credentials are cleared; the server resolves them at query time.
func RewriteConnectionAccess(pm *model.PhysicalModel, connectionName string) {
	if pm == nil || pm.Datasource == nil {
		return
	}
	ds := pm.Datasource
	ds.AccessType = model.AccessJNDI
	ds.DatabaseName = connectionName
	ds.Host = ""
	ds.Port = 0
	ds.Username = ""
	ds.Password = ""
}
