package graphql

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/status"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"

	"cloud.google.com/go/bigtable/admin/apiv2/adminpb"
	"cloud.google.com/go/longrunning/autogen/longrunningpb"
	"github.com/datastax/bigtable-admin-apis/config"
	"github.com/datastax/bigtable-admin-apis/gcrule"
	"github.com/datastax/bigtable-admin-apis/internal/testutil"
	"github.com/datastax/bigtable-admin-apis/log"
	"github.com/datastax/bigtable-admin-apis/types"
	"github.com/datastax/bigtable-admin-apis/wire"
)

const (
	instance  = "projects/p/instances/i"
	usersName = instance + "/tables/users"
)

type response struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type fixture struct {
	admin  *testutil.AdminClientMock
	ops    *testutil.OperationsClientMock
	routes []types.Route
}

func newConfig(ops config.SchemaOperations, useAuth bool) *config.ConfigMock {
	cfg := config.NewConfigMock()
	cfg.On("InstanceName").Return(instance)
	cfg.On("SupportedOperations").Return(ops)
	cfg.On("OperationPollInterval").Return(time.Millisecond)
	cfg.On("UseUserOrRoleAuth").Return(useAuth)
	cfg.On("Logger").Return(log.NewZapLogger(zap.NewNop()))
	return cfg
}

func newFixture(t *testing.T, ops config.SchemaOperations, useAuth bool) *fixture {
	f := &fixture{admin: testutil.NewAdminClientMock(), ops: testutil.NewOperationsClientMock()}
	routes, err := NewRouteGenerator(f.admin, f.ops, newConfig(ops, useAuth)).RoutesSchemaManagement("/graphql-schema", ops)
	require.NoError(t, err)
	f.routes = routes
	return f
}

func allOperations() config.SchemaOperations {
	ops, _ := config.Ops("TableCreate", "TableDrop", "FamilyModify", "RowRangeDrop",
		"SnapshotCreate", "SnapshotDelete", "SnapshotRestore", "OperationCancel")
	return ops
}

func (f *fixture) route(method string) http.Handler {
	for _, route := range f.routes {
		if route.Method == method {
			return route.Handler
		}
	}
	return nil
}

func (f *fixture) post(t *testing.T, body RequestBody, header ...string) response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/graphql-schema", strings.NewReader(string(buf)))
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	return f.serve(t, req)
}

func (f *fixture) get(t *testing.T, query string) response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/graphql-schema?query="+url.QueryEscape(query), nil)
	return f.serve(t, req)
}

func (f *fixture) serve(t *testing.T, req *http.Request) response {
	t.Helper()
	rec := httptest.NewRecorder()
	f.route(req.Method).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func field(t *testing.T, resp response, name string, v interface{}) {
	t.Helper()
	require.Empty(t, resp.Errors)
	require.NoError(t, json.Unmarshal(resp.Data[name], v))
}

func fieldNames(fields graphql.FieldDefinitionMap) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	return names
}

func TestBuildSchemaGatesMutations(t *testing.T) {
	sg := NewSchemaGenerator(testutil.NewAdminClientMock(), testutil.NewOperationsClientMock(), newConfig(0, false))

	schema, err := sg.BuildSchema(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"generateConsistencyToken"}, fieldNames(schema.MutationType().Fields()))
	assert.Contains(t, schema.QueryType().Fields(), "tables")
	assert.Contains(t, schema.QueryType().Fields(), "operation")

	schema, err = sg.BuildSchema(config.TableCreate | config.SnapshotCreate)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"generateConsistencyToken", "createTable", "snapshotTable"},
		fieldNames(schema.MutationType().Fields()))

	schema, err = sg.BuildSchema(allOperations())
	require.NoError(t, err)
	assert.Len(t, schema.MutationType().Fields(), 12)
}

func TestQueryTables(t *testing.T) {
	f := newFixture(t, 0, false)
	f.admin.On("ListTables", testutil.ProtoEq(&adminpb.ListTablesRequest{Parent: instance, PageSize: 2})).
		Return(&adminpb.ListTablesResponse{
			Tables:        []*adminpb.Table{{Name: usersName, Granularity: adminpb.Table_MILLIS}},
			NextPageToken: "next",
		}, nil)

	resp := f.get(t, `{ tables(pageSize: 2) { nextPageToken values { id name granularity } } }`)

	var tables struct {
		NextPageToken string
		Values        []map[string]string
	}
	field(t, resp, "tables", &tables)
	assert.Equal(t, "next", tables.NextPageToken)
	assert.Equal(t, []map[string]string{{"id": "users", "name": usersName, "granularity": "MILLIS"}}, tables.Values)
}

func TestQueryTableNotFound(t *testing.T) {
	f := newFixture(t, 0, false)
	f.admin.On("GetTable", testutil.ProtoEq(&adminpb.GetTableRequest{Name: usersName, View: adminpb.Table_SCHEMA_VIEW})).
		Return(nil, grpcstatus.Error(codes.NotFound, "table users not found"))

	resp := f.get(t, `{ table(id: "users") { name } }`)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0].Message, "table users not found")
}

func TestQueryInvalidView(t *testing.T) {
	f := newFixture(t, 0, false)
	resp := f.get(t, `{ table(id: "users", view: "everything") { name } }`)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0].Message, "invalid table view")
	f.admin.AssertNotCalled(t, "GetTable", mock.Anything)
}

func TestCreateTable(t *testing.T) {
	f := newFixture(t, config.TableCreate, false)
	rule, err := gcrule.FromPolicy(gcrule.Policy{Age: 72 * time.Hour, Versions: 2})
	require.NoError(t, err)

	f.admin.On("CreateTable", mock.MatchedBy(func(req *adminpb.CreateTableRequest) bool {
		cf := req.GetTable().GetColumnFamilies()["cf"]
		return req.Parent == instance && req.TableId == "users" &&
			gcrule.String(cf.GetGcRule()) == gcrule.String(rule)
	})).Return(&adminpb.Table{
		Name:           usersName,
		ColumnFamilies: map[string]*adminpb.ColumnFamily{"cf": {GcRule: rule}},
	}, nil)

	resp := f.post(t, RequestBody{
		Query: `mutation create($families: [FamilyInput]) {
  createTable(tableId: "users", families: $families) {
    name
    families { name gcRule policy { age versions } }
  }
}`,
		Variables: map[string]interface{}{
			"families": []interface{}{
				map[string]interface{}{"name": "cf", "policy": map[string]interface{}{"age": "72h", "versions": 2}},
			},
		},
	})

	var table struct {
		Name     string
		Families []struct {
			Name   string
			GcRule string
			Policy struct {
				Age      string
				Versions int
			}
		}
	}
	field(t, resp, "createTable", &table)
	assert.Equal(t, usersName, table.Name)
	require.Len(t, table.Families, 1)
	assert.Equal(t, "(age() > 72h0m0s && versions() > 2)", table.Families[0].GcRule)
	assert.Equal(t, "72h0m0s", table.Families[0].Policy.Age)
	assert.Equal(t, 2, table.Families[0].Policy.Versions)
}

func TestCreateTableValidation(t *testing.T) {
	f := newFixture(t, config.TableCreate, false)
	resp := f.post(t, RequestBody{Query: `mutation { createTable(tableId: "-bad") { name } }`})
	require.Len(t, resp.Errors, 1)
	f.admin.AssertNotCalled(t, "CreateTable", mock.Anything)
}

func TestGatedMutationIsRejected(t *testing.T) {
	f := newFixture(t, config.TableCreate, false)
	resp := f.post(t, RequestBody{Query: `mutation { dropTable(id: "users") }`})
	require.NotEmpty(t, resp.Errors)
	f.admin.AssertNotCalled(t, "DeleteTable", mock.Anything)
}

func TestFamilies(t *testing.T) {
	f := newFixture(t, config.FamilyModify, false)
	f.admin.On("ModifyColumnFamilies", mock.MatchedBy(func(req *adminpb.ModifyColumnFamiliesRequest) bool {
		return req.Name == usersName && wire.Which(req.Modifications[0], "mod") == "update"
	})).Return(&adminpb.Table{ColumnFamilies: map[string]*adminpb.ColumnFamily{"cf": {GcRule: gcrule.MaxVersions(3)}}}, nil).Once()
	f.admin.On("ModifyColumnFamilies", mock.MatchedBy(func(req *adminpb.ModifyColumnFamiliesRequest) bool {
		return req.Modifications[0].GetDrop()
	})).Return(&adminpb.Table{}, nil).Once()

	resp := f.post(t, RequestBody{Query: `mutation { updateFamily(table: "users", name: "cf", policy: {versions: 3}) { name gcRule } }`})
	var family map[string]string
	field(t, resp, "updateFamily", &family)
	assert.Equal(t, map[string]string{"name": "cf", "gcRule": "versions() > 3"}, family)

	resp = f.post(t, RequestBody{Query: `mutation { dropFamily(table: "users", name: "cf") }`})
	var dropped bool
	field(t, resp, "dropFamily", &dropped)
	assert.True(t, dropped)
	f.admin.AssertExpectations(t)
}

func TestConsistency(t *testing.T) {
	f := newFixture(t, 0, false)
	f.admin.On("GenerateConsistencyToken", testutil.ProtoEq(&adminpb.GenerateConsistencyTokenRequest{Name: usersName})).
		Return(&adminpb.GenerateConsistencyTokenResponse{ConsistencyToken: "tok"}, nil)
	f.admin.On("CheckConsistency", testutil.ProtoEq(&adminpb.CheckConsistencyRequest{Name: usersName, ConsistencyToken: "tok"})).
		Return(&adminpb.CheckConsistencyResponse{Consistent: true}, nil)

	var token string
	field(t, f.post(t, RequestBody{Query: `mutation { generateConsistencyToken(table: "users") }`}), "generateConsistencyToken", &token)
	assert.Equal(t, "tok", token)

	var consistent bool
	field(t, f.get(t, `{ checkConsistency(table: "users", consistencyToken: "tok") }`), "checkConsistency", &consistent)
	assert.True(t, consistent)
}

func TestSnapshotTableWaits(t *testing.T) {
	f := newFixture(t, config.SnapshotCreate, false)
	f.admin.On("SnapshotTable", mock.MatchedBy(func(req *adminpb.SnapshotTableRequest) bool {
		return req.Name == usersName && req.Cluster == instance+"/clusters/c" &&
			req.SnapshotId == "s" && req.GetTtl().AsDuration() == 24*time.Hour
	})).Return(&longrunningpb.Operation{Name: "operations/snap"}, nil)
	f.ops.On("GetOperation", testutil.ProtoEq(&longrunningpb.GetOperationRequest{Name: "operations/snap"})).
		Return(&longrunningpb.Operation{Name: "operations/snap"}, nil).Once()
	f.ops.On("GetOperation", mock.Anything).
		Return(&longrunningpb.Operation{Name: "operations/snap", Done: true}, nil).Once()

	resp := f.post(t, RequestBody{Query: `mutation {
  snapshotTable(table: "users", cluster: "c", snapshotId: "s", ttl: "24h", wait: true) { name done }
}`})

	var op map[string]interface{}
	field(t, resp, "snapshotTable", &op)
	assert.Equal(t, map[string]interface{}{"name": "operations/snap", "done": true}, op)
	f.ops.AssertNumberOfCalls(t, "GetOperation", 2)
}

func TestSnapshots(t *testing.T) {
	f := newFixture(t, 0, false)
	f.admin.On("ListSnapshots", testutil.ProtoEq(&adminpb.ListSnapshotsRequest{Parent: instance + "/clusters/c"})).
		Return(&adminpb.ListSnapshotsResponse{Snapshots: []*adminpb.Snapshot{{
			Name:          instance + "/clusters/c/snapshots/s",
			SourceTable:   &adminpb.Table{Name: usersName},
			DataSizeBytes: 1 << 40,
			State:         adminpb.Snapshot_READY,
		}}}, nil)

	resp := f.get(t, `{ snapshots(cluster: "c") { values { name dataSizeBytes state sourceTable { id } } } }`)
	var snapshots struct {
		Values []struct {
			Name          string
			DataSizeBytes string
			State         string
			SourceTable   struct{ ID string }
		}
	}
	field(t, resp, "snapshots", &snapshots)
	require.Len(t, snapshots.Values, 1)
	assert.Equal(t, "1099511627776", snapshots.Values[0].DataSizeBytes)
	assert.Equal(t, "READY", snapshots.Values[0].State)
	assert.Equal(t, "users", snapshots.Values[0].SourceTable.ID)
}

func TestOperation(t *testing.T) {
	f := newFixture(t, config.OperationCancel, false)
	f.ops.On("GetOperation", testutil.ProtoEq(&longrunningpb.GetOperationRequest{Name: "operations/x"})).
		Return(&longrunningpb.Operation{
			Name:   "operations/x",
			Done:   true,
			Result: &longrunningpb.Operation_Error{Error: &status.Status{Code: int32(codes.NotFound), Message: "gone"}},
		}, nil)
	f.ops.On("CancelOperation", testutil.ProtoEq(&longrunningpb.CancelOperationRequest{Name: "operations/x"})).Return(nil)

	var op map[string]interface{}
	field(t, f.get(t, `{ operation(name: "operations/x") { name done error errorCode } }`), "operation", &op)
	assert.Equal(t, map[string]interface{}{
		"name": "operations/x", "done": true, "error": "gone", "errorCode": "NotFound",
	}, op)

	var withJSON struct{ JSON string }
	field(t, f.get(t, `{ operation(name: "operations/x") { json } }`), "operation", &withJSON)
	assert.JSONEq(t, `{"name":"operations/x","done":true,"error":{"code":5,"message":"gone"}}`, withJSON.JSON)

	var cancelled bool
	field(t, f.post(t, RequestBody{Query: `mutation { cancelOperation(name: "operations/x") }`}), "cancelOperation", &cancelled)
	assert.True(t, cancelled)
}

func TestUserOrRoleAuth(t *testing.T) {
	f := newFixture(t, 0, true)
	f.admin.On("GenerateConsistencyToken", mock.Anything).
		Return(&adminpb.GenerateConsistencyTokenResponse{ConsistencyToken: "tok"}, nil)
	query := RequestBody{Query: `mutation { generateConsistencyToken(table: "users") }`}

	resp := f.post(t, query)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, errMissingToken.Error(), resp.Errors[0].Message)
	f.admin.AssertNotCalled(t, "GenerateConsistencyToken", mock.Anything)

	var token string
	field(t, f.post(t, query, "Authorization", "Bearer secret"), "generateConsistencyToken", &token)
	assert.Equal(t, "tok", token)
}

func TestInvalidRequestBody(t *testing.T) {
	f := newFixture(t, 0, false)
	rec := httptest.NewRecorder()
	f.route(http.MethodPost).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql-schema", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
