package rpc

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigtable/admin/apiv2/adminpb"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"

	"github.com/datastax/bigtable-admin-apis/wire"
)

// ListAllTables calls ListTables until the server stops returning a page
// token and returns the tables of every page in order. req is left
// untouched; its PageToken is the first page to read.
func ListAllTables(ctx context.Context, admin TableAdmin, req *adminpb.ListTablesRequest, opts ...grpc.CallOption) ([]*adminpb.Table, error) {
	if req == nil {
		return nil, wire.ErrNilMessage
	}
	var tables []*adminpb.Table
	page := proto.Clone(req).(*adminpb.ListTablesRequest)
	for {
		resp, err := admin.ListTables(ctx, page, opts...)
		if err != nil {
			return nil, err
		}
		tables = append(tables, resp.GetTables()...)

		next := resp.GetNextPageToken()
		if next == "" {
			return tables, nil
		}
		if next == page.GetPageToken() {
			return nil, fmt.Errorf("server repeated page token %q while listing %s", next, req.GetParent())
		}
		page = proto.Clone(page).(*adminpb.ListTablesRequest)
		page.PageToken = next
	}
}
