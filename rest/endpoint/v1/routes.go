package endpoint

import (
	"net/http"
	"path"

	"github.com/julienschmidt/httprouter"

	"github.com/datastax/bigtable-admin-apis/config"
	"github.com/datastax/bigtable-admin-apis/log"
	"github.com/datastax/bigtable-admin-apis/rpc"
	"github.com/datastax/bigtable-admin-apis/types"
)

type routeList struct {
	admin  rpc.TableAdmin
	ops    rpc.Operations
	cfg    config.Config
	logger log.Logger
	params func(*http.Request, string) string
}

func httprouterParams(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}

// Routes returns the v1 routes. Mutations that are not part of operations are left out.
func Routes(prefix string, operations config.SchemaOperations, cfg config.Config,
	admin rpc.TableAdmin, ops rpc.Operations) []types.Route {
	rl := routeList{
		admin:  admin,
		ops:    ops,
		cfg:    cfg,
		logger: cfg.Logger(),
		params: httprouterParams,
	}

	route := func(method, pattern string, handler http.HandlerFunc) types.Route {
		return types.Route{Method: method, Pattern: path.Join(prefix, pattern), Handler: handler}
	}

	routes := []types.Route{
		route(http.MethodGet, "/v1/tables", rl.GetTables),
		route(http.MethodGet, "/v1/tables/:tableName", rl.GetTable),
		route(http.MethodGet, "/v1/tables/:tableName/families", rl.GetFamilies),
		route(http.MethodGet, "/v1/tables/:tableName/families/:familyName", rl.GetFamily),
		route(http.MethodPost, "/v1/tables/:tableName/consistency-token", rl.GenerateConsistencyToken),
		route(http.MethodPost, "/v1/tables/:tableName/consistency", rl.CheckConsistency),
		route(http.MethodGet, "/v1/clusters/:clusterName/snapshots", rl.GetSnapshots),
		route(http.MethodGet, "/v1/clusters/:clusterName/snapshots/:snapshotName", rl.GetSnapshot),
		route(http.MethodGet, "/v1/operations", rl.GetOperations),
		route(http.MethodGet, "/v1/operations/*operationName", rl.GetOperation),
	}

	if operations.IsSupported(config.TableCreate) {
		routes = append(routes, route(http.MethodPost, "/v1/tables", rl.AddTable))
	}
	if operations.IsSupported(config.TableDrop) {
		routes = append(routes, route(http.MethodDelete, "/v1/tables/:tableName", rl.DeleteTable))
	}
	if operations.IsSupported(config.FamilyModify) {
		routes = append(routes,
			route(http.MethodPost, "/v1/tables/:tableName/families", rl.AddFamily),
			route(http.MethodPut, "/v1/tables/:tableName/families/:familyName", rl.UpdateFamily),
			route(http.MethodDelete, "/v1/tables/:tableName/families/:familyName", rl.DeleteFamily))
	}
	if operations.IsSupported(config.RowRangeDrop) {
		routes = append(routes, route(http.MethodPost, "/v1/tables/:tableName/rows/drop", rl.DropRows))
	}
	if operations.IsSupported(config.SnapshotCreate) {
		routes = append(routes, route(http.MethodPost, "/v1/tables/:tableName/snapshots", rl.AddSnapshot))
	}
	if operations.IsSupported(config.SnapshotDelete) {
		routes = append(routes, route(http.MethodDelete, "/v1/clusters/:clusterName/snapshots/:snapshotName", rl.DeleteSnapshot))
	}
	if operations.IsSupported(config.SnapshotRestore) {
		routes = append(routes, route(http.MethodPost, "/v1/clusters/:clusterName/snapshots/:snapshotName/restore", rl.RestoreSnapshot))
	}
	if operations.IsSupported(config.OperationCancel) {
		routes = append(routes,
			route(http.MethodPost, "/v1/operations/*operationName", rl.CancelOperation),
			route(http.MethodDelete, "/v1/operations/*operationName", rl.DeleteOperation))
	}
	return routes
}
