package rpc_test

import (
	"context"
	"testing"

	"cloud.google.com/go/bigtable/admin/apiv2/adminpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/datastax/bigtable-admin-apis/internal/testutil"
	"github.com/datastax/bigtable-admin-apis/rpc"
	"github.com/datastax/bigtable-admin-apis/wire"
)

func TestListAllTables(t *testing.T) {
	admin := testutil.NewAdminClientMock()
	admin.On("ListTables", testutil.ProtoEq(&adminpb.ListTablesRequest{Parent: instanceName, View: adminpb.Table_NAME_ONLY})).
		Return(&adminpb.ListTablesResponse{
			Tables:        []*adminpb.Table{{Name: instanceName + "/tables/a"}, {Name: instanceName + "/tables/b"}},
			NextPageToken: "page-2",
		}, nil).Once()
	admin.On("ListTables", testutil.ProtoEq(&adminpb.ListTablesRequest{Parent: instanceName, View: adminpb.Table_NAME_ONLY, PageToken: "page-2"})).
		Return(&adminpb.ListTablesResponse{
			Tables: []*adminpb.Table{{Name: instanceName + "/tables/c"}},
		}, nil).Once()

	req := &adminpb.ListTablesRequest{Parent: instanceName, View: adminpb.Table_NAME_ONLY}
	tables, err := rpc.ListAllTables(context.Background(), admin, req)
	require.NoError(t, err)

	var names []string
	for _, table := range tables {
		names = append(names, table.GetName())
	}
	assert.Equal(t, []string{instanceName + "/tables/a", instanceName + "/tables/b", instanceName + "/tables/c"}, names)
	assert.Empty(t, req.PageToken)
	admin.AssertExpectations(t)
	admin.AssertNumberOfCalls(t, "ListTables", 2)
}

func TestListAllTablesErrors(t *testing.T) {
	_, err := rpc.ListAllTables(context.Background(), testutil.NewAdminClientMock(), nil)
	assert.Equal(t, wire.ErrNilMessage, err)

	admin := testutil.NewAdminClientMock()
	admin.On("ListTables", mock.Anything).
		Return(&adminpb.ListTablesResponse{Tables: []*adminpb.Table{{Name: "a"}}, NextPageToken: "p"}, nil).Once()
	admin.On("ListTables", mock.Anything).Return(nil, status.Error(codes.Unavailable, "down")).Once()

	_, err = rpc.ListAllTables(context.Background(), admin, &adminpb.ListTablesRequest{Parent: instanceName})
	assert.Equal(t, codes.Unavailable, status.Code(err))

	looping := testutil.NewAdminClientMock()
	looping.On("ListTables", mock.Anything).Return(&adminpb.ListTablesResponse{NextPageToken: "same"}, nil)
	_, err = rpc.ListAllTables(context.Background(), looping, &adminpb.ListTablesRequest{Parent: instanceName, PageToken: "same"})
	assert.Error(t, err)
}
