package rpc

import (
	"context"

	"cloud.google.com/go/bigtable/admin/apiv2/adminpb"
	"cloud.google.com/go/longrunning/autogen/longrunningpb"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

// Full names of the services served by this package.
const (
	TableAdminService = "google.bigtable.admin.v2.BigtableTableAdmin"
	OperationsService = "google.longrunning.Operations"
)

// TableAdmin is the client API of the BigtableTableAdmin service.
type TableAdmin interface {
	CreateTable(ctx context.Context, in *adminpb.CreateTableRequest, opts ...grpc.CallOption) (*adminpb.Table, error)
	CreateTableFromSnapshot(ctx context.Context, in *adminpb.CreateTableFromSnapshotRequest, opts ...grpc.CallOption) (*longrunningpb.Operation, error)
	ListTables(ctx context.Context, in *adminpb.ListTablesRequest, opts ...grpc.CallOption) (*adminpb.ListTablesResponse, error)
	GetTable(ctx context.Context, in *adminpb.GetTableRequest, opts ...grpc.CallOption) (*adminpb.Table, error)
	DeleteTable(ctx context.Context, in *adminpb.DeleteTableRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	ModifyColumnFamilies(ctx context.Context, in *adminpb.ModifyColumnFamiliesRequest, opts ...grpc.CallOption) (*adminpb.Table, error)
	DropRowRange(ctx context.Context, in *adminpb.DropRowRangeRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	GenerateConsistencyToken(ctx context.Context, in *adminpb.GenerateConsistencyTokenRequest, opts ...grpc.CallOption) (*adminpb.GenerateConsistencyTokenResponse, error)
	CheckConsistency(ctx context.Context, in *adminpb.CheckConsistencyRequest, opts ...grpc.CallOption) (*adminpb.CheckConsistencyResponse, error)
	SnapshotTable(ctx context.Context, in *adminpb.SnapshotTableRequest, opts ...grpc.CallOption) (*longrunningpb.Operation, error)
	GetSnapshot(ctx context.Context, in *adminpb.GetSnapshotRequest, opts ...grpc.CallOption) (*adminpb.Snapshot, error)
	ListSnapshots(ctx context.Context, in *adminpb.ListSnapshotsRequest, opts ...grpc.CallOption) (*adminpb.ListSnapshotsResponse, error)
	DeleteSnapshot(ctx context.Context, in *adminpb.DeleteSnapshotRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

// Operations is the client API of the google.longrunning.Operations service.
type Operations interface {
	ListOperations(ctx context.Context, in *longrunningpb.ListOperationsRequest, opts ...grpc.CallOption) (*longrunningpb.ListOperationsResponse, error)
	GetOperation(ctx context.Context, in *longrunningpb.GetOperationRequest, opts ...grpc.CallOption) (*longrunningpb.Operation, error)
	DeleteOperation(ctx context.Context, in *longrunningpb.DeleteOperationRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	CancelOperation(ctx context.Context, in *longrunningpb.CancelOperationRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

// TableAdminClient implements TableAdmin over a Transport. It is safe for
// concurrent use when the transport is.
type TableAdminClient struct {
	stub
}

var _ TableAdmin = (*TableAdminClient)(nil)

func NewTableAdminClient(t Transport) *TableAdminClient {
	return &TableAdminClient{stub{transport: t, service: TableAdminService}}
}

// Creates a new table in the specified instance. The table can be created
// with a full set of initial column families, specified in the request.
func (c *TableAdminClient) CreateTable(ctx context.Context, in *adminpb.CreateTableRequest, opts ...grpc.CallOption) (*adminpb.Table, error) {
	out := new(adminpb.Table)
	if err := c.invoke(ctx, "CreateTable", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Creates a new table from the specified snapshot. The returned operation
// carries CreateTableFromSnapshotMetadata and resolves to a Table.
func (c *TableAdminClient) CreateTableFromSnapshot(ctx context.Context, in *adminpb.CreateTableFromSnapshotRequest, opts ...grpc.CallOption) (*longrunningpb.Operation, error) {
	out := new(longrunningpb.Operation)
	if err := c.invoke(ctx, "CreateTableFromSnapshot", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Lists all tables served from a specified instance.
func (c *TableAdminClient) ListTables(ctx context.Context, in *adminpb.ListTablesRequest, opts ...grpc.CallOption) (*adminpb.ListTablesResponse, error) {
	out := new(adminpb.ListTablesResponse)
	if err := c.invoke(ctx, "ListTables", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Gets metadata information about the specified table.
func (c *TableAdminClient) GetTable(ctx context.Context, in *adminpb.GetTableRequest, opts ...grpc.CallOption) (*adminpb.Table, error) {
	out := new(adminpb.Table)
	if err := c.invoke(ctx, "GetTable", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Permanently deletes a specified table and all of its data.
func (c *TableAdminClient) DeleteTable(ctx context.Context, in *adminpb.DeleteTableRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.invoke(ctx, "DeleteTable", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Performs a series of column family modifications on the specified table.
// Either all or none of the modifications will occur before this method
// returns.
func (c *TableAdminClient) ModifyColumnFamilies(ctx context.Context, in *adminpb.ModifyColumnFamiliesRequest, opts ...grpc.CallOption) (*adminpb.Table, error) {
	out := new(adminpb.Table)
	if err := c.invoke(ctx, "ModifyColumnFamilies", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Permanently drop/delete a row range from a specified table.
func (c *TableAdminClient) DropRowRange(ctx context.Context, in *adminpb.DropRowRangeRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.invoke(ctx, "DropRowRange", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Generates a consistency token for a Table, which can be used in
// CheckConsistency. Tokens are available for 90 days.
func (c *TableAdminClient) GenerateConsistencyToken(ctx context.Context, in *adminpb.GenerateConsistencyTokenRequest, opts ...grpc.CallOption) (*adminpb.GenerateConsistencyTokenResponse, error) {
	out := new(adminpb.GenerateConsistencyTokenResponse)
	if err := c.invoke(ctx, "GenerateConsistencyToken", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Checks replication consistency based on a consistency token.
func (c *TableAdminClient) CheckConsistency(ctx context.Context, in *adminpb.CheckConsistencyRequest, opts ...grpc.CallOption) (*adminpb.CheckConsistencyResponse, error) {
	out := new(adminpb.CheckConsistencyResponse)
	if err := c.invoke(ctx, "CheckConsistency", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Creates a new snapshot in the specified cluster from the specified source
// table. The returned operation carries SnapshotTableMetadata and resolves to
// a Snapshot.
func (c *TableAdminClient) SnapshotTable(ctx context.Context, in *adminpb.SnapshotTableRequest, opts ...grpc.CallOption) (*longrunningpb.Operation, error) {
	out := new(longrunningpb.Operation)
	if err := c.invoke(ctx, "SnapshotTable", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Gets metadata information about the specified snapshot.
func (c *TableAdminClient) GetSnapshot(ctx context.Context, in *adminpb.GetSnapshotRequest, opts ...grpc.CallOption) (*adminpb.Snapshot, error) {
	out := new(adminpb.Snapshot)
	if err := c.invoke(ctx, "GetSnapshot", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Lists all snapshots associated with the specified cluster.
func (c *TableAdminClient) ListSnapshots(ctx context.Context, in *adminpb.ListSnapshotsRequest, opts ...grpc.CallOption) (*adminpb.ListSnapshotsResponse, error) {
	out := new(adminpb.ListSnapshotsResponse)
	if err := c.invoke(ctx, "ListSnapshots", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Permanently deletes the specified snapshot.
func (c *TableAdminClient) DeleteSnapshot(ctx context.Context, in *adminpb.DeleteSnapshotRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.invoke(ctx, "DeleteSnapshot", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// OperationsClient implements Operations over a Transport.
type OperationsClient struct {
	stub
}

var _ Operations = (*OperationsClient)(nil)

func NewOperationsClient(t Transport) *OperationsClient {
	return &OperationsClient{stub{transport: t, service: OperationsService}}
}

// Lists operations that match the specified filter in the request.
func (c *OperationsClient) ListOperations(ctx context.Context, in *longrunningpb.ListOperationsRequest, opts ...grpc.CallOption) (*longrunningpb.ListOperationsResponse, error) {
	out := new(longrunningpb.ListOperationsResponse)
	if err := c.invoke(ctx, "ListOperations", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Gets the latest state of a long-running operation.
func (c *OperationsClient) GetOperation(ctx context.Context, in *longrunningpb.GetOperationRequest, opts ...grpc.CallOption) (*longrunningpb.Operation, error) {
	out := new(longrunningpb.Operation)
	if err := c.invoke(ctx, "GetOperation", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Deletes a long-running operation. The server stops tracking it; the
// operation itself is not cancelled.
func (c *OperationsClient) DeleteOperation(ctx context.Context, in *longrunningpb.DeleteOperationRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.invoke(ctx, "DeleteOperation", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Starts asynchronous cancellation on a long-running operation.
func (c *OperationsClient) CancelOperation(ctx context.Context, in *longrunningpb.CancelOperationRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.invoke(ctx, "CancelOperation", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
