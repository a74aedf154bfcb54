package testutil

import (
	"context"
	"net"

	"cloud.google.com/go/bigtable/admin/apiv2/adminpb"
	"cloud.google.com/go/longrunning/autogen/longrunningpb"
	"github.com/datastax/bigtable-admin-apis/rpc"
	"github.com/stretchr/testify/mock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
)

// AdminServerMock is a testify mock of the BigtableTableAdmin service. Each
// method records the request alone, so expectations are set with
// On("GetTable", ProtoEq(req)) or On("GetTable", mock.Anything).
type AdminServerMock struct {
	mock.Mock
}

var _ rpc.TableAdminServer = (*AdminServerMock)(nil)
var _ rpc.TableAdmin = (*AdminClientMock)(nil)

func NewAdminServerMock() *AdminServerMock {
	return &AdminServerMock{}
}

func (o *AdminServerMock) CreateTable(_ context.Context, in *adminpb.CreateTableRequest) (*adminpb.Table, error) {
	args := o.Called(in)
	resp, _ := args.Get(0).(*adminpb.Table)
	return resp, args.Error(1)
}

func (o *AdminServerMock) CreateTableFromSnapshot(_ context.Context, in *adminpb.CreateTableFromSnapshotRequest) (*longrunningpb.Operation, error) {
	args := o.Called(in)
	resp, _ := args.Get(0).(*longrunningpb.Operation)
	return resp, args.Error(1)
}

func (o *AdminServerMock) ListTables(_ context.Context, in *adminpb.ListTablesRequest) (*adminpb.ListTablesResponse, error) {
	args := o.Called(in)
	resp, _ := args.Get(0).(*adminpb.ListTablesResponse)
	return resp, args.Error(1)
}

func (o *AdminServerMock) GetTable(_ context.Context, in *adminpb.GetTableRequest) (*adminpb.Table, error) {
	args := o.Called(in)
	resp, _ := args.Get(0).(*adminpb.Table)
	return resp, args.Error(1)
}

func (o *AdminServerMock) DeleteTable(_ context.Context, in *adminpb.DeleteTableRequest) (*emptypb.Empty, error) {
	args := o.Called(in)
	return emptyOrNil(args), args.Error(0)
}

func (o *AdminServerMock) ModifyColumnFamilies(_ context.Context, in *adminpb.ModifyColumnFamiliesRequest) (*adminpb.Table, error) {
	args := o.Called(in)
	resp, _ := args.Get(0).(*adminpb.Table)
	return resp, args.Error(1)
}

func (o *AdminServerMock) DropRowRange(_ context.Context, in *adminpb.DropRowRangeRequest) (*emptypb.Empty, error) {
	args := o.Called(in)
	return emptyOrNil(args), args.Error(0)
}

func (o *AdminServerMock) GenerateConsistencyToken(_ context.Context, in *adminpb.GenerateConsistencyTokenRequest) (*adminpb.GenerateConsistencyTokenResponse, error) {
	args := o.Called(in)
	resp, _ := args.Get(0).(*adminpb.GenerateConsistencyTokenResponse)
	return resp, args.Error(1)
}

func (o *AdminServerMock) CheckConsistency(_ context.Context, in *adminpb.CheckConsistencyRequest) (*adminpb.CheckConsistencyResponse, error) {
	args := o.Called(in)
	resp, _ := args.Get(0).(*adminpb.CheckConsistencyResponse)
	return resp, args.Error(1)
}

func (o *AdminServerMock) SnapshotTable(_ context.Context, in *adminpb.SnapshotTableRequest) (*longrunningpb.Operation, error) {
	args := o.Called(in)
	resp, _ := args.Get(0).(*longrunningpb.Operation)
	return resp, args.Error(1)
}

func (o *AdminServerMock) GetSnapshot(_ context.Context, in *adminpb.GetSnapshotRequest) (*adminpb.Snapshot, error) {
	args := o.Called(in)
	resp, _ := args.Get(0).(*adminpb.Snapshot)
	return resp, args.Error(1)
}

func (o *AdminServerMock) ListSnapshots(_ context.Context, in *adminpb.ListSnapshotsRequest) (*adminpb.ListSnapshotsResponse, error) {
	args := o.Called(in)
	resp, _ := args.Get(0).(*adminpb.ListSnapshotsResponse)
	return resp, args.Error(1)
}

func (o *AdminServerMock) DeleteSnapshot(_ context.Context, in *adminpb.DeleteSnapshotRequest) (*emptypb.Empty, error) {
	args := o.Called(in)
	return emptyOrNil(args), args.Error(0)
}

// Methods returning Empty are mocked with a single error return value.
func emptyOrNil(args mock.Arguments) *emptypb.Empty {
	if args.Error(0) != nil {
		return nil
	}
	return &emptypb.Empty{}
}

// OperationsServerMock is a testify mock of the Operations service.
type OperationsServerMock struct {
	mock.Mock
}

var _ rpc.OperationsServer = (*OperationsServerMock)(nil)

func NewOperationsServerMock() *OperationsServerMock {
	return &OperationsServerMock{}
}

func (o *OperationsServerMock) ListOperations(_ context.Context, in *longrunningpb.ListOperationsRequest) (*longrunningpb.ListOperationsResponse, error) {
	args := o.Called(in)
	resp, _ := args.Get(0).(*longrunningpb.ListOperationsResponse)
	return resp, args.Error(1)
}

func (o *OperationsServerMock) GetOperation(_ context.Context, in *longrunningpb.GetOperationRequest) (*longrunningpb.Operation, error) {
	args := o.Called(in)
	resp, _ := args.Get(0).(*longrunningpb.Operation)
	return resp, args.Error(1)
}

func (o *OperationsServerMock) DeleteOperation(_ context.Context, in *longrunningpb.DeleteOperationRequest) (*emptypb.Empty, error) {
	args := o.Called(in)
	return emptyOrNil(args), args.Error(0)
}

func (o *OperationsServerMock) CancelOperation(_ context.Context, in *longrunningpb.CancelOperationRequest) (*emptypb.Empty, error) {
	args := o.Called(in)
	return emptyOrNil(args), args.Error(0)
}

// AdminClientMock adapts AdminServerMock to the client interface so gateway
// code can be tested without a connection.
type AdminClientMock struct {
	*AdminServerMock
}

func NewAdminClientMock() *AdminClientMock {
	return &AdminClientMock{NewAdminServerMock()}
}

func (o *AdminClientMock) CreateTable(ctx context.Context, in *adminpb.CreateTableRequest, _ ...grpc.CallOption) (*adminpb.Table, error) {
	return o.AdminServerMock.CreateTable(ctx, in)
}

func (o *AdminClientMock) CreateTableFromSnapshot(ctx context.Context, in *adminpb.CreateTableFromSnapshotRequest, _ ...grpc.CallOption) (*longrunningpb.Operation, error) {
	return o.AdminServerMock.CreateTableFromSnapshot(ctx, in)
}

func (o *AdminClientMock) ListTables(ctx context.Context, in *adminpb.ListTablesRequest, _ ...grpc.CallOption) (*adminpb.ListTablesResponse, error) {
	return o.AdminServerMock.ListTables(ctx, in)
}

func (o *AdminClientMock) GetTable(ctx context.Context, in *adminpb.GetTableRequest, _ ...grpc.CallOption) (*adminpb.Table, error) {
	return o.AdminServerMock.GetTable(ctx, in)
}

func (o *AdminClientMock) DeleteTable(ctx context.Context, in *adminpb.DeleteTableRequest, _ ...grpc.CallOption) (*emptypb.Empty, error) {
	return o.AdminServerMock.DeleteTable(ctx, in)
}

func (o *AdminClientMock) ModifyColumnFamilies(ctx context.Context, in *adminpb.ModifyColumnFamiliesRequest, _ ...grpc.CallOption) (*adminpb.Table, error) {
	return o.AdminServerMock.ModifyColumnFamilies(ctx, in)
}

func (o *AdminClientMock) DropRowRange(ctx context.Context, in *adminpb.DropRowRangeRequest, _ ...grpc.CallOption) (*emptypb.Empty, error) {
	return o.AdminServerMock.DropRowRange(ctx, in)
}

func (o *AdminClientMock) GenerateConsistencyToken(ctx context.Context, in *adminpb.GenerateConsistencyTokenRequest, _ ...grpc.CallOption) (*adminpb.GenerateConsistencyTokenResponse, error) {
	return o.AdminServerMock.GenerateConsistencyToken(ctx, in)
}

func (o *AdminClientMock) CheckConsistency(ctx context.Context, in *adminpb.CheckConsistencyRequest, _ ...grpc.CallOption) (*adminpb.CheckConsistencyResponse, error) {
	return o.AdminServerMock.CheckConsistency(ctx, in)
}

func (o *AdminClientMock) SnapshotTable(ctx context.Context, in *adminpb.SnapshotTableRequest, _ ...grpc.CallOption) (*longrunningpb.Operation, error) {
	return o.AdminServerMock.SnapshotTable(ctx, in)
}

func (o *AdminClientMock) GetSnapshot(ctx context.Context, in *adminpb.GetSnapshotRequest, _ ...grpc.CallOption) (*adminpb.Snapshot, error) {
	return o.AdminServerMock.GetSnapshot(ctx, in)
}

func (o *AdminClientMock) ListSnapshots(ctx context.Context, in *adminpb.ListSnapshotsRequest, _ ...grpc.CallOption) (*adminpb.ListSnapshotsResponse, error) {
	return o.AdminServerMock.ListSnapshots(ctx, in)
}

func (o *AdminClientMock) DeleteSnapshot(ctx context.Context, in *adminpb.DeleteSnapshotRequest, _ ...grpc.CallOption) (*emptypb.Empty, error) {
	return o.AdminServerMock.DeleteSnapshot(ctx, in)
}

// OperationsClientMock adapts OperationsServerMock to rpc.Operations.
type OperationsClientMock struct {
	*OperationsServerMock
}

var _ rpc.Operations = (*OperationsClientMock)(nil)

func NewOperationsClientMock() *OperationsClientMock {
	return &OperationsClientMock{NewOperationsServerMock()}
}

func (o *OperationsClientMock) ListOperations(ctx context.Context, in *longrunningpb.ListOperationsRequest, _ ...grpc.CallOption) (*longrunningpb.ListOperationsResponse, error) {
	return o.OperationsServerMock.ListOperations(ctx, in)
}

func (o *OperationsClientMock) GetOperation(ctx context.Context, in *longrunningpb.GetOperationRequest, _ ...grpc.CallOption) (*longrunningpb.Operation, error) {
	return o.OperationsServerMock.GetOperation(ctx, in)
}

func (o *OperationsClientMock) DeleteOperation(ctx context.Context, in *longrunningpb.DeleteOperationRequest, _ ...grpc.CallOption) (*emptypb.Empty, error) {
	return o.OperationsServerMock.DeleteOperation(ctx, in)
}

func (o *OperationsClientMock) CancelOperation(ctx context.Context, in *longrunningpb.CancelOperationRequest, _ ...grpc.CallOption) (*emptypb.Empty, error) {
	return o.OperationsServerMock.CancelOperation(ctx, in)
}

// ProtoEq matches a recorded request that is proto.Equal to want. Requests
// that crossed a gRPC connection carry internal state, so plain equality does
// not hold for them.
func ProtoEq(want proto.Message) interface{} {
	return mock.MatchedBy(func(got proto.Message) bool {
		return proto.Equal(want, got)
	})
}

// BufconnServer serves the admin and operations services in memory.
type BufconnServer struct {
	listener *bufconn.Listener
	server   *grpc.Server
}

// NewBufconnServer starts a server with admin and ops registered. Either may
// be nil.
func NewBufconnServer(admin rpc.TableAdminServer, ops rpc.OperationsServer, opts ...grpc.ServerOption) *BufconnServer {
	s := &BufconnServer{
		listener: bufconn.Listen(1 << 20),
		server:   grpc.NewServer(opts...),
	}
	if admin != nil {
		rpc.RegisterTableAdminServer(s.server, admin)
	}
	if ops != nil {
		rpc.RegisterOperationsServer(s.server, ops)
	}
	go func() {
		_ = s.server.Serve(s.listener)
	}()
	return s
}

// Target is the address to dial along with DialOption.
const Target = "passthrough:///bufconn"

// DialOption routes connections to the in-memory listener.
func (s *BufconnServer) DialOption() grpc.DialOption {
	return grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return s.listener.DialContext(ctx)
	})
}

// Dial returns a client connection to the server.
func (s *BufconnServer) Dial(opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	return grpc.NewClient(Target, append([]grpc.DialOption{
		s.DialOption(),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts...)...)
}

func (s *BufconnServer) Stop() {
	s.server.Stop()
}
