package graphql

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/graphql-go/graphql"
	"github.com/mitchellh/mapstructure"
	"google.golang.org/grpc/codes"

	"cloud.google.com/go/bigtable/admin/apiv2/adminpb"
	"cloud.google.com/go/longrunning/autogen/longrunningpb"
	"github.com/datastax/bigtable-admin-apis/auth"
	m "github.com/datastax/bigtable-admin-apis/rest/models"
	t "github.com/datastax/bigtable-admin-apis/rest/translator"
	"github.com/datastax/bigtable-admin-apis/rpc"
	"github.com/datastax/bigtable-admin-apis/types"
	"github.com/datastax/bigtable-admin-apis/wire"
)

var errMissingToken = errors.New("expected a bearer token in the authorization header")

func (sg *SchemaGenerator) context(params graphql.ResolveParams) (context.Context, error) {
	ctx := params.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if sg.cfg.UseUserOrRoleAuth() && auth.ContextToken(ctx) == "" {
		return nil, errMissingToken
	}
	return ctx, nil
}

func (sg *SchemaGenerator) translator(table string) t.APITranslator {
	return t.APITranslator{InstanceName: sg.cfg.InstanceName(), TableID: table}
}

func (sg *SchemaGenerator) tableName(id string) string {
	return rpc.FormatTableName(sg.cfg.InstanceName(), id)
}

func (sg *SchemaGenerator) clusterName(id string) string {
	return sg.cfg.InstanceName() + "/clusters/" + id
}

// decodeArgs copies the field arguments into a request model. Durations are
// received as strings such as "72h".
func decodeArgs(args interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(args)
}

func stringArg(params graphql.ResolveParams, name string) string {
	value, _ := params.Args[name].(string)
	return value
}

func listOptions(params graphql.ResolveParams) (types.ListOptions, error) {
	var opts types.ListOptions
	err := decodeArgs(params.Args, &opts)
	return opts, err
}

func (sg *SchemaGenerator) resolveTables(params graphql.ResolveParams) (interface{}, error) {
	ctx, err := sg.context(params)
	if err != nil {
		return nil, err
	}
	opts, err := listOptions(params)
	if err != nil {
		return nil, err
	}
	view, err := types.ParseView(opts.View)
	if err != nil {
		return nil, err
	}

	resp, err := sg.admin.ListTables(ctx, &adminpb.ListTablesRequest{
		Parent:    sg.cfg.InstanceName(),
		View:      view,
		PageSize:  opts.PageSize,
		PageToken: opts.PageToken,
	})
	if err != nil {
		return nil, err
	}

	values := make([]interface{}, 0, len(resp.GetTables()))
	for _, table := range resp.GetTables() {
		values = append(values, tableObject(table))
	}
	return types.ListResult{NextPageToken: resp.GetNextPageToken(), Values: values}, nil
}

func (sg *SchemaGenerator) getTable(ctx context.Context, id string, view adminpb.Table_View) (*adminpb.Table, error) {
	if view == adminpb.Table_VIEW_UNSPECIFIED {
		view = adminpb.Table_SCHEMA_VIEW
	}
	return sg.admin.GetTable(ctx, &adminpb.GetTableRequest{Name: sg.tableName(id), View: view})
}

func (sg *SchemaGenerator) resolveTable(params graphql.ResolveParams) (interface{}, error) {
	ctx, err := sg.context(params)
	if err != nil {
		return nil, err
	}
	view, err := types.ParseView(stringArg(params, "view"))
	if err != nil {
		return nil, err
	}
	table, err := sg.getTable(ctx, stringArg(params, "id"), view)
	if err != nil {
		return nil, err
	}
	return tableObject(table), nil
}

func (sg *SchemaGenerator) resolveFamilies(params graphql.ResolveParams) (interface{}, error) {
	ctx, err := sg.context(params)
	if err != nil {
		return nil, err
	}
	table, err := sg.getTable(ctx, stringArg(params, "table"), adminpb.Table_SCHEMA_VIEW)
	if err != nil {
		return nil, err
	}
	return types.ToFamilies(table), nil
}

func (sg *SchemaGenerator) resolveCheckConsistency(params graphql.ResolveParams) (interface{}, error) {
	ctx, err := sg.context(params)
	if err != nil {
		return nil, err
	}
	resp, err := sg.admin.CheckConsistency(ctx, &adminpb.CheckConsistencyRequest{
		Name:             sg.tableName(stringArg(params, "table")),
		ConsistencyToken: stringArg(params, "consistencyToken"),
	})
	if err != nil {
		return nil, err
	}
	return resp.GetConsistent(), nil
}

func (sg *SchemaGenerator) resolveGenerateConsistencyToken(params graphql.ResolveParams) (interface{}, error) {
	ctx, err := sg.context(params)
	if err != nil {
		return nil, err
	}
	resp, err := sg.admin.GenerateConsistencyToken(ctx, &adminpb.GenerateConsistencyTokenRequest{
		Name: sg.tableName(stringArg(params, "table")),
	})
	if err != nil {
		return nil, err
	}
	return resp.GetConsistencyToken(), nil
}

func (sg *SchemaGenerator) resolveCreateTable(params graphql.ResolveParams) (interface{}, error) {
	ctx, err := sg.context(params)
	if err != nil {
		return nil, err
	}
	var tableAdd m.TableAdd
	if err := decodeArgs(params.Args, &tableAdd); err != nil {
		return nil, err
	}
	req, err := sg.translator("").ToCreateTableRequest(tableAdd)
	if err != nil {
		return nil, err
	}
	table, err := sg.admin.CreateTable(ctx, req)
	if err != nil {
		return nil, err
	}
	return tableObject(table), nil
}

func (sg *SchemaGenerator) resolveDropTable(params graphql.ResolveParams) (interface{}, error) {
	ctx, err := sg.context(params)
	if err != nil {
		return nil, err
	}
	if _, err := sg.admin.DeleteTable(ctx, &adminpb.DeleteTableRequest{Name: sg.tableName(stringArg(params, "id"))}); err != nil {
		return false, err
	}
	return true, nil
}

func (sg *SchemaGenerator) modifyFamily(ctx context.Context, req *adminpb.ModifyColumnFamiliesRequest, name string) (interface{}, error) {
	table, err := sg.admin.ModifyColumnFamilies(ctx, req)
	if err != nil {
		return nil, err
	}
	family, ok := table.GetColumnFamilies()[name]
	if !ok {
		return nil, fmt.Errorf("family '%s' is missing from the modified table", name)
	}
	return types.ToFamily(name, family), nil
}

func (sg *SchemaGenerator) resolveCreateFamily(params graphql.ResolveParams) (interface{}, error) {
	ctx, err := sg.context(params)
	if err != nil {
		return nil, err
	}
	var def m.FamilyDefinition
	if err := decodeArgs(params.Args["family"], &def); err != nil {
		return nil, err
	}
	req, err := sg.translator(stringArg(params, "table")).ToCreateFamily(def)
	if err != nil {
		return nil, err
	}
	return sg.modifyFamily(ctx, req, def.Name)
}

func (sg *SchemaGenerator) resolveUpdateFamily(params graphql.ResolveParams) (interface{}, error) {
	ctx, err := sg.context(params)
	if err != nil {
		return nil, err
	}
	var update m.FamilyUpdate
	if err := decodeArgs(params.Args, &update); err != nil {
		return nil, err
	}
	name := stringArg(params, "name")
	req, err := sg.translator(stringArg(params, "table")).ToUpdateFamily(name, update)
	if err != nil {
		return nil, err
	}
	return sg.modifyFamily(ctx, req, name)
}

func (sg *SchemaGenerator) resolveDropFamily(params graphql.ResolveParams) (interface{}, error) {
	ctx, err := sg.context(params)
	if err != nil {
		return nil, err
	}
	req, err := sg.translator(stringArg(params, "table")).ToDropFamily(stringArg(params, "name"))
	if err != nil {
		return false, err
	}
	if _, err := sg.admin.ModifyColumnFamilies(ctx, req); err != nil {
		return false, err
	}
	return true, nil
}

func (sg *SchemaGenerator) resolveDropRowRange(params graphql.ResolveParams) (interface{}, error) {
	ctx, err := sg.context(params)
	if err != nil {
		return nil, err
	}
	var drop m.RowRangeDrop
	if err := decodeArgs(params.Args, &drop); err != nil {
		return false, err
	}
	req, err := sg.translator(stringArg(params, "table")).ToDropRowRangeRequest(drop)
	if err != nil {
		return false, err
	}
	if _, err := sg.admin.DropRowRange(ctx, req); err != nil {
		return false, err
	}
	return true, nil
}

// wait polls op until it is done when the wait argument is set.
func (sg *SchemaGenerator) wait(ctx context.Context, params graphql.ResolveParams, op *longrunningpb.Operation) (interface{}, error) {
	if wait, _ := params.Args["wait"].(bool); wait {
		done, err := rpc.WaitOperation(ctx, sg.ops, op, sg.cfg.OperationPollInterval())
		if err != nil {
			return nil, err
		}
		op = done
	}
	return operationObject(op)
}

func (sg *SchemaGenerator) resolveSnapshotTable(params graphql.ResolveParams) (interface{}, error) {
	ctx, err := sg.context(params)
	if err != nil {
		return nil, err
	}
	var snapshot m.SnapshotAdd
	if err := decodeArgs(params.Args, &snapshot); err != nil {
		return nil, err
	}
	req, err := sg.translator(stringArg(params, "table")).ToSnapshotTableRequest(snapshot)
	if err != nil {
		return nil, err
	}
	op, err := sg.admin.SnapshotTable(ctx, req)
	if err != nil {
		return nil, err
	}
	return sg.wait(ctx, params, op)
}

func (sg *SchemaGenerator) resolveSnapshots(params graphql.ResolveParams) (interface{}, error) {
	ctx, err := sg.context(params)
	if err != nil {
		return nil, err
	}
	opts, err := listOptions(params)
	if err != nil {
		return nil, err
	}
	resp, err := sg.admin.ListSnapshots(ctx, &adminpb.ListSnapshotsRequest{
		Parent:    sg.clusterName(stringArg(params, "cluster")),
		PageSize:  opts.PageSize,
		PageToken: opts.PageToken,
	})
	if err != nil {
		return nil, err
	}

	values := make([]interface{}, 0, len(resp.GetSnapshots()))
	for _, snapshot := range resp.GetSnapshots() {
		values = append(values, snapshotObject(snapshot))
	}
	return types.ListResult{NextPageToken: resp.GetNextPageToken(), Values: values}, nil
}

func (sg *SchemaGenerator) snapshotName(params graphql.ResolveParams) (string, error) {
	return rpc.FormatSnapshotName(sg.clusterName(stringArg(params, "cluster")), stringArg(params, "id"))
}

func (sg *SchemaGenerator) resolveSnapshot(params graphql.ResolveParams) (interface{}, error) {
	ctx, err := sg.context(params)
	if err != nil {
		return nil, err
	}
	name, err := sg.snapshotName(params)
	if err != nil {
		return nil, err
	}
	snapshot, err := sg.admin.GetSnapshot(ctx, &adminpb.GetSnapshotRequest{Name: name})
	if err != nil {
		return nil, err
	}
	return snapshotObject(snapshot), nil
}

func (sg *SchemaGenerator) resolveDeleteSnapshot(params graphql.ResolveParams) (interface{}, error) {
	ctx, err := sg.context(params)
	if err != nil {
		return nil, err
	}
	name, err := sg.snapshotName(params)
	if err != nil {
		return false, err
	}
	if _, err := sg.admin.DeleteSnapshot(ctx, &adminpb.DeleteSnapshotRequest{Name: name}); err != nil {
		return false, err
	}
	return true, nil
}

func (sg *SchemaGenerator) resolveRestoreSnapshot(params graphql.ResolveParams) (interface{}, error) {
	ctx, err := sg.context(params)
	if err != nil {
		return nil, err
	}
	req, err := sg.translator("").ToCreateTableFromSnapshotRequest(
		stringArg(params, "cluster"), stringArg(params, "id"), m.SnapshotRestore{TableID: stringArg(params, "tableId")})
	if err != nil {
		return nil, err
	}
	op, err := sg.admin.CreateTableFromSnapshot(ctx, req)
	if err != nil {
		return nil, err
	}
	return sg.wait(ctx, params, op)
}

func (sg *SchemaGenerator) resolveOperations(params graphql.ResolveParams) (interface{}, error) {
	ctx, err := sg.context(params)
	if err != nil {
		return nil, err
	}
	opts, err := listOptions(params)
	if err != nil {
		return nil, err
	}
	resp, err := sg.ops.ListOperations(ctx, &longrunningpb.ListOperationsRequest{
		Name:      "operations/" + sg.cfg.InstanceName(),
		Filter:    opts.Filter,
		PageSize:  opts.PageSize,
		PageToken: opts.PageToken,
	})
	if err != nil {
		return nil, err
	}

	values := make([]interface{}, 0, len(resp.GetOperations()))
	for _, op := range resp.GetOperations() {
		value, err := operationObject(op)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return types.ListResult{NextPageToken: resp.GetNextPageToken(), Values: values}, nil
}

func (sg *SchemaGenerator) resolveOperation(params graphql.ResolveParams) (interface{}, error) {
	ctx, err := sg.context(params)
	if err != nil {
		return nil, err
	}
	op, err := sg.ops.GetOperation(ctx, &longrunningpb.GetOperationRequest{Name: stringArg(params, "name")})
	if err != nil {
		return nil, err
	}
	return operationObject(op)
}

func (sg *SchemaGenerator) resolveCancelOperation(params graphql.ResolveParams) (interface{}, error) {
	ctx, err := sg.context(params)
	if err != nil {
		return nil, err
	}
	if _, err := sg.ops.CancelOperation(ctx, &longrunningpb.CancelOperationRequest{Name: stringArg(params, "name")}); err != nil {
		return false, err
	}
	return true, nil
}

func (sg *SchemaGenerator) resolveDeleteOperation(params graphql.ResolveParams) (interface{}, error) {
	ctx, err := sg.context(params)
	if err != nil {
		return nil, err
	}
	if _, err := sg.ops.DeleteOperation(ctx, &longrunningpb.DeleteOperationRequest{Name: stringArg(params, "name")}); err != nil {
		return false, err
	}
	return true, nil
}

func tableObject(table *adminpb.Table) map[string]interface{} {
	if table == nil {
		return nil
	}
	_, _, id, _ := rpc.ParseTableName(table.GetName())

	clusters := make([]string, 0, len(table.GetClusterStates()))
	for cluster := range table.GetClusterStates() {
		clusters = append(clusters, cluster)
	}
	sort.Strings(clusters)
	states := make([]map[string]interface{}, 0, len(clusters))
	for _, cluster := range clusters {
		states = append(states, map[string]interface{}{
			"cluster":          cluster,
			"replicationState": table.GetClusterStates()[cluster].GetReplicationState().String(),
		})
	}

	return map[string]interface{}{
		"name":          table.GetName(),
		"id":            id,
		"granularity":   table.GetGranularity().String(),
		"families":      types.ToFamilies(table),
		"clusterStates": states,
	}
}

func snapshotObject(snapshot *adminpb.Snapshot) map[string]interface{} {
	return map[string]interface{}{
		"name":          snapshot.GetName(),
		"sourceTable":   tableObject(snapshot.GetSourceTable()),
		"dataSizeBytes": snapshot.GetDataSizeBytes(),
		"createTime":    snapshot.GetCreateTime(),
		"deleteTime":    snapshot.GetDeleteTime(),
		"state":         snapshot.GetState().String(),
		"description":   snapshot.GetDescription(),
	}
}

func operationObject(op *longrunningpb.Operation) (map[string]interface{}, error) {
	body, err := wire.MarshalJSON(op)
	if err != nil {
		return nil, err
	}

	result := map[string]interface{}{
		"name":         op.GetName(),
		"done":         op.GetDone(),
		"metadataType": op.GetMetadata().GetTypeUrl(),
		"responseType": op.GetResponse().GetTypeUrl(),
		"json":         string(body),
	}
	if s := op.GetError(); s != nil {
		result["error"] = s.GetMessage()
		result["errorCode"] = codes.Code(s.GetCode()).String()
	}
	return result, nil
}
