package migrate

import (
	"context"
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cloud.google.com/go/bigtable/admin/apiv2/adminpb"
	"github.com/datastax/bigtable-admin-apis/config"
	"github.com/datastax/bigtable-admin-apis/db"
	"github.com/datastax/bigtable-admin-apis/gcrule"
	"github.com/datastax/bigtable-admin-apis/internal/testutil"
	"github.com/datastax/bigtable-admin-apis/log"
)

const (
	instance   = "projects/p/instances/i"
	booksName  = instance + "/tables/books"
	videosName = instance + "/tables/user_videos"
)

func newPlanner(t *testing.T) (*Planner, *testutil.AdminClientMock) {
	t.Helper()
	session := db.NewSessionMock()
	session.AddKeyspace(db.NewKeyspaceMock("store", map[string][]*gocql.ColumnMetadata{
		"books": db.BooksColumnsMock(),
		"user_videos": {
			db.NewColumnMock("userid", gocql.ColumnPartitionKey, db.NativeTypeMock(gocql.TypeUUID)),
			db.NewColumnMock("ratings", gocql.ColumnRegular, db.CollectionTypeMock(gocql.TypeMap, gocql.TypeText, gocql.TypeInt)),
		},
	}))
	session.On("KeyspaceMetadata", "missing").Return(nil, gocql.ErrKeyspaceDoesNotExist)

	cfg := config.NewConfigMock()
	cfg.On("InstanceName").Return(instance)
	cfg.On("Naming").Return(config.NewDefaultNaming())
	cfg.On("Logger").Return(log.NewZapLogger(zap.NewNop()))

	admin := testutil.NewAdminClientMock()
	return NewPlanner(db.NewDbWithSession(session), admin, cfg), admin
}

// expectExisting serves user_videos on the second page of the listing and
// leaves books out.
func expectExisting(admin *testutil.AdminClientMock) {
	admin.On("ListTables", testutil.ProtoEq(&adminpb.ListTablesRequest{Parent: instance, View: adminpb.Table_SCHEMA_VIEW})).
		Return(&adminpb.ListTablesResponse{
			Tables:        []*adminpb.Table{{Name: instance + "/tables/other"}},
			NextPageToken: "2",
		}, nil)
	admin.On("ListTables", testutil.ProtoEq(&adminpb.ListTablesRequest{Parent: instance, View: adminpb.Table_SCHEMA_VIEW, PageToken: "2"})).
		Return(&adminpb.ListTablesResponse{
			Tables: []*adminpb.Table{{
				Name:           videosName,
				ColumnFamilies: map[string]*adminpb.ColumnFamily{DefaultFamily: {GcRule: gcrule.MaxVersions(1)}},
			}},
		}, nil)
}

func TestPlan(t *testing.T) {
	planner, admin := newPlanner(t)
	expectExisting(admin)

	plan, err := planner.Plan(context.Background(), "store")
	require.NoError(t, err)
	require.Len(t, plan.Tables, 2)
	assert.False(t, plan.Empty())

	books := plan.Tables[0]
	assert.Equal(t, "books", books.TableID)
	assert.Equal(t, "store.books", books.Source)
	assert.True(t, books.Create())
	assert.Equal(t, instance, books.Request.Parent)
	families := books.Request.GetTable().GetColumnFamilies()
	assert.Len(t, families, 2)
	assert.Equal(t, int32(1), families[DefaultFamily].GetGcRule().GetMaxNumVersions())
	assert.Equal(t, int32(1), families["tags"].GetGcRule().GetMaxNumVersions())

	videos := plan.Tables[1]
	assert.False(t, videos.Create())
	assert.Equal(t, []string{"ratings"}, videos.Missing)
}

func TestPlanDiff(t *testing.T) {
	planner, admin := newPlanner(t)
	expectExisting(admin)

	plan, err := planner.Plan(context.Background(), "store")
	require.NoError(t, err)
	assert.Equal(t, `table books (from store.books) [create]
+ family cf1: versions() > 1
+ family tags: versions() > 1
table user_videos (from store.user_videos)
  family cf1: versions() > 1
+ family ratings: versions() > 1
`, plan.Diff())
}

func TestPlanErrors(t *testing.T) {
	planner, admin := newPlanner(t)

	_, err := planner.Plan(context.Background(), "missing")
	assert.ErrorIs(t, err, gocql.ErrKeyspaceDoesNotExist)

	admin.On("ListTables", mock.Anything).Return(nil, status.Error(codes.PermissionDenied, "denied"))
	_, err = planner.Plan(context.Background(), "store")
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestApply(t *testing.T) {
	planner, admin := newPlanner(t)
	expectExisting(admin)
	plan, err := planner.Plan(context.Background(), "store")
	require.NoError(t, err)

	admin.On("CreateTable", plan.Tables[0].Request).Return(&adminpb.Table{Name: booksName}, nil)
	admin.On("ModifyColumnFamilies", mock.MatchedBy(func(req *adminpb.ModifyColumnFamiliesRequest) bool {
		return req.Name == videosName && len(req.Modifications) == 1 &&
			req.Modifications[0].Id == "ratings" && req.Modifications[0].GetCreate() != nil
	})).Return(&adminpb.Table{}, nil)

	result, err := Apply(context.Background(), admin, plan, log.NewZapLogger(zap.NewNop()))
	require.NoError(t, err)
	assert.Equal(t, Result{TablesCreated: 1, FamiliesAdded: 1}, result)
	admin.AssertExpectations(t)
}

func TestApplyUpToDate(t *testing.T) {
	admin := testutil.NewAdminClientMock()
	plan := &Plan{Tables: []*TablePlan{{
		TableID:  "books",
		Request:  &adminpb.CreateTableRequest{Parent: instance, TableId: "books"},
		Existing: &adminpb.Table{Name: booksName},
	}}}
	assert.True(t, plan.Empty())

	result, err := Apply(context.Background(), admin, plan, log.NewZapLogger(zap.NewNop()))
	require.NoError(t, err)
	assert.Equal(t, Result{TablesUpToDate: 1}, result)
	admin.AssertNotCalled(t, "CreateTable", mock.Anything)
}

func TestApplyStopsOnError(t *testing.T) {
	admin := testutil.NewAdminClientMock()
	admin.On("CreateTable", mock.Anything).Return(nil, status.Error(codes.AlreadyExists, "exists"))
	plan := &Plan{Tables: []*TablePlan{
		{TableID: "a", Request: &adminpb.CreateTableRequest{Parent: instance, TableId: "a"}},
		{TableID: "b", Request: &adminpb.CreateTableRequest{Parent: instance, TableId: "b"}},
	}}

	_, err := Apply(context.Background(), admin, plan, log.NewZapLogger(zap.NewNop()))
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
	admin.AssertNumberOfCalls(t, "CreateTable", 1)
}
