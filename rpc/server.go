package rpc

import (
	"context"

	"cloud.google.com/go/bigtable/admin/apiv2/adminpb"
	"cloud.google.com/go/longrunning/autogen/longrunningpb"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// TableAdminServer is the server API of the BigtableTableAdmin service.
type TableAdminServer interface {
	CreateTable(context.Context, *adminpb.CreateTableRequest) (*adminpb.Table, error)
	CreateTableFromSnapshot(context.Context, *adminpb.CreateTableFromSnapshotRequest) (*longrunningpb.Operation, error)
	ListTables(context.Context, *adminpb.ListTablesRequest) (*adminpb.ListTablesResponse, error)
	GetTable(context.Context, *adminpb.GetTableRequest) (*adminpb.Table, error)
	DeleteTable(context.Context, *adminpb.DeleteTableRequest) (*emptypb.Empty, error)
	ModifyColumnFamilies(context.Context, *adminpb.ModifyColumnFamiliesRequest) (*adminpb.Table, error)
	DropRowRange(context.Context, *adminpb.DropRowRangeRequest) (*emptypb.Empty, error)
	GenerateConsistencyToken(context.Context, *adminpb.GenerateConsistencyTokenRequest) (*adminpb.GenerateConsistencyTokenResponse, error)
	CheckConsistency(context.Context, *adminpb.CheckConsistencyRequest) (*adminpb.CheckConsistencyResponse, error)
	SnapshotTable(context.Context, *adminpb.SnapshotTableRequest) (*longrunningpb.Operation, error)
	GetSnapshot(context.Context, *adminpb.GetSnapshotRequest) (*adminpb.Snapshot, error)
	ListSnapshots(context.Context, *adminpb.ListSnapshotsRequest) (*adminpb.ListSnapshotsResponse, error)
	DeleteSnapshot(context.Context, *adminpb.DeleteSnapshotRequest) (*emptypb.Empty, error)
}

// OperationsServer is the server API of the google.longrunning.Operations
// service.
type OperationsServer interface {
	ListOperations(context.Context, *longrunningpb.ListOperationsRequest) (*longrunningpb.ListOperationsResponse, error)
	GetOperation(context.Context, *longrunningpb.GetOperationRequest) (*longrunningpb.Operation, error)
	DeleteOperation(context.Context, *longrunningpb.DeleteOperationRequest) (*emptypb.Empty, error)
	CancelOperation(context.Context, *longrunningpb.CancelOperationRequest) (*emptypb.Empty, error)
}

// UnimplementedTableAdminServer answers every method with codes.Unimplemented.
// Embed it to implement a subset of the service.
type UnimplementedTableAdminServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedTableAdminServer) CreateTable(context.Context, *adminpb.CreateTableRequest) (*adminpb.Table, error) {
	return nil, unimplemented("CreateTable")
}
func (UnimplementedTableAdminServer) CreateTableFromSnapshot(context.Context, *adminpb.CreateTableFromSnapshotRequest) (*longrunningpb.Operation, error) {
	return nil, unimplemented("CreateTableFromSnapshot")
}
func (UnimplementedTableAdminServer) ListTables(context.Context, *adminpb.ListTablesRequest) (*adminpb.ListTablesResponse, error) {
	return nil, unimplemented("ListTables")
}
func (UnimplementedTableAdminServer) GetTable(context.Context, *adminpb.GetTableRequest) (*adminpb.Table, error) {
	return nil, unimplemented("GetTable")
}
func (UnimplementedTableAdminServer) DeleteTable(context.Context, *adminpb.DeleteTableRequest) (*emptypb.Empty, error) {
	return nil, unimplemented("DeleteTable")
}
func (UnimplementedTableAdminServer) ModifyColumnFamilies(context.Context, *adminpb.ModifyColumnFamiliesRequest) (*adminpb.Table, error) {
	return nil, unimplemented("ModifyColumnFamilies")
}
func (UnimplementedTableAdminServer) DropRowRange(context.Context, *adminpb.DropRowRangeRequest) (*emptypb.Empty, error) {
	return nil, unimplemented("DropRowRange")
}
func (UnimplementedTableAdminServer) GenerateConsistencyToken(context.Context, *adminpb.GenerateConsistencyTokenRequest) (*adminpb.GenerateConsistencyTokenResponse, error) {
	return nil, unimplemented("GenerateConsistencyToken")
}
func (UnimplementedTableAdminServer) CheckConsistency(context.Context, *adminpb.CheckConsistencyRequest) (*adminpb.CheckConsistencyResponse, error) {
	return nil, unimplemented("CheckConsistency")
}
func (UnimplementedTableAdminServer) SnapshotTable(context.Context, *adminpb.SnapshotTableRequest) (*longrunningpb.Operation, error) {
	return nil, unimplemented("SnapshotTable")
}
func (UnimplementedTableAdminServer) GetSnapshot(context.Context, *adminpb.GetSnapshotRequest) (*adminpb.Snapshot, error) {
	return nil, unimplemented("GetSnapshot")
}
func (UnimplementedTableAdminServer) ListSnapshots(context.Context, *adminpb.ListSnapshotsRequest) (*adminpb.ListSnapshotsResponse, error) {
	return nil, unimplemented("ListSnapshots")
}
func (UnimplementedTableAdminServer) DeleteSnapshot(context.Context, *adminpb.DeleteSnapshotRequest) (*emptypb.Empty, error) {
	return nil, unimplemented("DeleteSnapshot")
}

// UnimplementedOperationsServer answers every method with codes.Unimplemented.
type UnimplementedOperationsServer struct{}

func (UnimplementedOperationsServer) ListOperations(context.Context, *longrunningpb.ListOperationsRequest) (*longrunningpb.ListOperationsResponse, error) {
	return nil, unimplemented("ListOperations")
}
func (UnimplementedOperationsServer) GetOperation(context.Context, *longrunningpb.GetOperationRequest) (*longrunningpb.Operation, error) {
	return nil, unimplemented("GetOperation")
}
func (UnimplementedOperationsServer) DeleteOperation(context.Context, *longrunningpb.DeleteOperationRequest) (*emptypb.Empty, error) {
	return nil, unimplemented("DeleteOperation")
}
func (UnimplementedOperationsServer) CancelOperation(context.Context, *longrunningpb.CancelOperationRequest) (*emptypb.Empty, error) {
	return nil, unimplemented("CancelOperation")
}

// RegisterTableAdminServer registers srv on s.
func RegisterTableAdminServer(s grpc.ServiceRegistrar, srv TableAdminServer) {
	s.RegisterService(&TableAdminServiceDesc, srv)
}

// RegisterOperationsServer registers srv on s.
func RegisterOperationsServer(s grpc.ServiceRegistrar, srv OperationsServer) {
	s.RegisterService(&OperationsServiceDesc, srv)
}

// unary builds the descriptor of one unary method. call receives the
// registered implementation and the decoded request.
func unary[Req any](service, method string, call func(srv any, ctx context.Context, in *Req) (any, error)) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv, ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// TableAdminServiceDesc describes the BigtableTableAdmin service for
// grpc.Server.RegisterService.
var TableAdminServiceDesc = grpc.ServiceDesc{
	ServiceName: TableAdminService,
	HandlerType: (*TableAdminServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(TableAdminService, "CreateTable", func(srv any, ctx context.Context, in *adminpb.CreateTableRequest) (any, error) {
			return srv.(TableAdminServer).CreateTable(ctx, in)
		}),
		unary(TableAdminService, "CreateTableFromSnapshot", func(srv any, ctx context.Context, in *adminpb.CreateTableFromSnapshotRequest) (any, error) {
			return srv.(TableAdminServer).CreateTableFromSnapshot(ctx, in)
		}),
		unary(TableAdminService, "ListTables", func(srv any, ctx context.Context, in *adminpb.ListTablesRequest) (any, error) {
			return srv.(TableAdminServer).ListTables(ctx, in)
		}),
		unary(TableAdminService, "GetTable", func(srv any, ctx context.Context, in *adminpb.GetTableRequest) (any, error) {
			return srv.(TableAdminServer).GetTable(ctx, in)
		}),
		unary(TableAdminService, "DeleteTable", func(srv any, ctx context.Context, in *adminpb.DeleteTableRequest) (any, error) {
			return srv.(TableAdminServer).DeleteTable(ctx, in)
		}),
		unary(TableAdminService, "ModifyColumnFamilies", func(srv any, ctx context.Context, in *adminpb.ModifyColumnFamiliesRequest) (any, error) {
			return srv.(TableAdminServer).ModifyColumnFamilies(ctx, in)
		}),
		unary(TableAdminService, "DropRowRange", func(srv any, ctx context.Context, in *adminpb.DropRowRangeRequest) (any, error) {
			return srv.(TableAdminServer).DropRowRange(ctx, in)
		}),
		unary(TableAdminService, "GenerateConsistencyToken", func(srv any, ctx context.Context, in *adminpb.GenerateConsistencyTokenRequest) (any, error) {
			return srv.(TableAdminServer).GenerateConsistencyToken(ctx, in)
		}),
		unary(TableAdminService, "CheckConsistency", func(srv any, ctx context.Context, in *adminpb.CheckConsistencyRequest) (any, error) {
			return srv.(TableAdminServer).CheckConsistency(ctx, in)
		}),
		unary(TableAdminService, "SnapshotTable", func(srv any, ctx context.Context, in *adminpb.SnapshotTableRequest) (any, error) {
			return srv.(TableAdminServer).SnapshotTable(ctx, in)
		}),
		unary(TableAdminService, "GetSnapshot", func(srv any, ctx context.Context, in *adminpb.GetSnapshotRequest) (any, error) {
			return srv.(TableAdminServer).GetSnapshot(ctx, in)
		}),
		unary(TableAdminService, "ListSnapshots", func(srv any, ctx context.Context, in *adminpb.ListSnapshotsRequest) (any, error) {
			return srv.(TableAdminServer).ListSnapshots(ctx, in)
		}),
		unary(TableAdminService, "DeleteSnapshot", func(srv any, ctx context.Context, in *adminpb.DeleteSnapshotRequest) (any, error) {
			return srv.(TableAdminServer).DeleteSnapshot(ctx, in)
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: adminpb.File_google_bigtable_admin_v2_bigtable_table_admin_proto.Path(),
}

// OperationsServiceDesc describes the google.longrunning.Operations service.
var OperationsServiceDesc = grpc.ServiceDesc{
	ServiceName: OperationsService,
	HandlerType: (*OperationsServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(OperationsService, "ListOperations", func(srv any, ctx context.Context, in *longrunningpb.ListOperationsRequest) (any, error) {
			return srv.(OperationsServer).ListOperations(ctx, in)
		}),
		unary(OperationsService, "GetOperation", func(srv any, ctx context.Context, in *longrunningpb.GetOperationRequest) (any, error) {
			return srv.(OperationsServer).GetOperation(ctx, in)
		}),
		unary(OperationsService, "DeleteOperation", func(srv any, ctx context.Context, in *longrunningpb.DeleteOperationRequest) (any, error) {
			return srv.(OperationsServer).DeleteOperation(ctx, in)
		}),
		unary(OperationsService, "CancelOperation", func(srv any, ctx context.Context, in *longrunningpb.CancelOperationRequest) (any, error) {
			return srv.(OperationsServer).CancelOperation(ctx, in)
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: longrunningpb.File_google_longrunning_operations_proto.Path(),
}
