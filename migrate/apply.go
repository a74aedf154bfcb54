package migrate

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigtable/admin/apiv2/adminpb"
	"github.com/datastax/bigtable-admin-apis/log"
	"github.com/datastax/bigtable-admin-apis/rpc"
)

// Result counts the changes made by Apply.
type Result struct {
	TablesCreated  int
	FamiliesAdded  int
	TablesUpToDate int
}

// Apply creates the missing tables of plan and adds the missing families to
// the existing ones. Families are never dropped. It stops at the first error.
func Apply(ctx context.Context, admin rpc.TableAdmin, plan *Plan, logger log.Logger) (Result, error) {
	var result Result
	for _, t := range plan.Tables {
		switch {
		case t.Create():
			if _, err := admin.CreateTable(ctx, t.Request); err != nil {
				return result, fmt.Errorf("unable to create table %s: %w", t.TableID, err)
			}
			logger.Info("table created", "table", t.TableID, "source", t.Source)
			result.TablesCreated++
		case len(t.Missing) > 0:
			req := &adminpb.ModifyColumnFamiliesRequest{Name: t.Existing.GetName()}
			if req.Name == "" {
				req.Name = rpc.FormatTableName(t.Request.GetParent(), t.TableID)
			}
			for _, name := range t.Missing {
				req.Modifications = append(req.Modifications, &adminpb.ModifyColumnFamiliesRequest_Modification{
					Id:  name,
					Mod: &adminpb.ModifyColumnFamiliesRequest_Modification_Create{Create: t.Request.GetTable().GetColumnFamilies()[name]},
				})
			}
			if _, err := admin.ModifyColumnFamilies(ctx, req); err != nil {
				return result, fmt.Errorf("unable to add families to table %s: %w", t.TableID, err)
			}
			logger.Info("families added", "table", t.TableID, "families", t.Missing)
			result.FamiliesAdded += len(t.Missing)
		default:
			result.TablesUpToDate++
		}
	}
	return result, nil
}
