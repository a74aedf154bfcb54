package rpc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/bigtable/admin/apiv2/adminpb"
	"cloud.google.com/go/longrunning/autogen/longrunningpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/durationpb"
)

const (
	// DefaultReplicationCheckInterval is the delay between two consistency
	// checks in WaitForReplication.
	DefaultReplicationCheckInterval = 5 * time.Second
	// DefaultReplicationTimeout bounds WaitForReplication.
	DefaultReplicationTimeout = 10 * time.Minute
)

// ErrEmptyPrefix is returned by DeleteRows when no prefix is given. Use
// Truncate to delete every row.
var ErrEmptyPrefix = errors.New("a prefix is required to delete rows")

// Table is a handle on one table of an instance.
type Table struct {
	// Name is the full table name.
	Name string

	// ReplicationCheckInterval and ReplicationTimeout tune
	// WaitForReplication. Zero values use the defaults.
	ReplicationCheckInterval time.Duration
	ReplicationTimeout       time.Duration

	admin TableAdmin
}

// NewTable returns a handle on the table id of the instance. id may also be a
// full table name.
func NewTable(admin TableAdmin, instanceName, id string) *Table {
	return &Table{Name: FormatTableName(instanceName, id), admin: admin}
}

// ID returns the last segment of the table name.
func (t *Table) ID() string {
	return t.Name[strings.LastIndexByte(t.Name, '/')+1:]
}

func (t *Table) instanceName() string {
	if i := strings.Index(t.Name, "/tables/"); i >= 0 {
		return t.Name[:i]
	}
	return t.Name
}

// Create creates the table with the given column families and initial split
// keys.
func (t *Table) Create(ctx context.Context, families map[string]*adminpb.ColumnFamily, splits ...[]byte) (*adminpb.Table, error) {
	req := &adminpb.CreateTableRequest{
		Parent:  t.instanceName(),
		TableId: t.ID(),
		Table:   &adminpb.Table{ColumnFamilies: families},
	}
	for _, key := range splits {
		req.InitialSplits = append(req.InitialSplits, &adminpb.CreateTableRequest_Split{Key: key})
	}
	return t.admin.CreateTable(ctx, req)
}

// CreateFromSnapshot creates the table from a snapshot. The returned
// operation resolves to the new table.
func (t *Table) CreateFromSnapshot(ctx context.Context, snapshotName string) (*longrunningpb.Operation, error) {
	return t.admin.CreateTableFromSnapshot(ctx, &adminpb.CreateTableFromSnapshotRequest{
		Parent:         t.instanceName(),
		TableId:        t.ID(),
		SourceSnapshot: snapshotName,
	})
}

// Get returns the table metadata restricted to view.
func (t *Table) Get(ctx context.Context, view adminpb.Table_View) (*adminpb.Table, error) {
	return t.admin.GetTable(ctx, &adminpb.GetTableRequest{Name: t.Name, View: view})
}

// Exists reports whether the table exists.
func (t *Table) Exists(ctx context.Context) (bool, error) {
	_, err := t.Get(ctx, adminpb.Table_NAME_ONLY)
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	return err == nil, err
}

// Families returns the column families of the table.
func (t *Table) Families(ctx context.Context) (map[string]*adminpb.ColumnFamily, error) {
	table, err := t.Get(ctx, adminpb.Table_SCHEMA_VIEW)
	if err != nil {
		return nil, err
	}
	return table.GetColumnFamilies(), nil
}

// ReplicationStates returns the replication state of the table in every
// cluster of the instance, keyed by cluster id.
func (t *Table) ReplicationStates(ctx context.Context) (map[string]adminpb.Table_ClusterState_ReplicationState, error) {
	table, err := t.Get(ctx, adminpb.Table_REPLICATION_VIEW)
	if err != nil {
		return nil, err
	}
	states := make(map[string]adminpb.Table_ClusterState_ReplicationState, len(table.GetClusterStates()))
	for cluster, state := range table.GetClusterStates() {
		states[cluster] = state.GetReplicationState()
	}
	return states, nil
}

// Delete permanently deletes the table and its data.
func (t *Table) Delete(ctx context.Context) error {
	_, err := t.admin.DeleteTable(ctx, &adminpb.DeleteTableRequest{Name: t.Name})
	return err
}

// Modify applies modifications atomically and returns the updated table.
func (t *Table) Modify(ctx context.Context, mods ...*adminpb.ModifyColumnFamiliesRequest_Modification) (*adminpb.Table, error) {
	return t.admin.ModifyColumnFamilies(ctx, &adminpb.ModifyColumnFamiliesRequest{Name: t.Name, Modifications: mods})
}

func (t *Table) modifyFamily(ctx context.Context, mod *adminpb.ModifyColumnFamiliesRequest_Modification) (*adminpb.ColumnFamily, error) {
	table, err := t.Modify(ctx, mod)
	if err != nil {
		return nil, err
	}
	family, ok := table.GetColumnFamilies()[mod.Id]
	if !ok {
		return nil, fmt.Errorf("column family %q missing from modified table %s", mod.Id, t.Name)
	}
	return family, nil
}

// CreateFamily adds a column family. rule may be nil for a family that never
// expires cells.
func (t *Table) CreateFamily(ctx context.Context, id string, rule *adminpb.GcRule) (*adminpb.ColumnFamily, error) {
	return t.modifyFamily(ctx, &adminpb.ModifyColumnFamiliesRequest_Modification{
		Id:  id,
		Mod: &adminpb.ModifyColumnFamiliesRequest_Modification_Create{Create: &adminpb.ColumnFamily{GcRule: rule}},
	})
}

// UpdateFamily replaces the garbage collection rule of a column family.
func (t *Table) UpdateFamily(ctx context.Context, id string, rule *adminpb.GcRule) (*adminpb.ColumnFamily, error) {
	return t.modifyFamily(ctx, &adminpb.ModifyColumnFamiliesRequest_Modification{
		Id:  id,
		Mod: &adminpb.ModifyColumnFamiliesRequest_Modification_Update{Update: &adminpb.ColumnFamily{GcRule: rule}},
	})
}

// DeleteFamily drops a column family and all of its data.
func (t *Table) DeleteFamily(ctx context.Context, id string) error {
	_, err := t.Modify(ctx, &adminpb.ModifyColumnFamiliesRequest_Modification{
		Id:  id,
		Mod: &adminpb.ModifyColumnFamiliesRequest_Modification_Drop{Drop: true},
	})
	return err
}

// DeleteRows deletes every row whose key starts with prefix.
func (t *Table) DeleteRows(ctx context.Context, prefix []byte) error {
	if len(prefix) == 0 {
		return ErrEmptyPrefix
	}
	_, err := t.admin.DropRowRange(ctx, &adminpb.DropRowRangeRequest{
		Name:   t.Name,
		Target: &adminpb.DropRowRangeRequest_RowKeyPrefix{RowKeyPrefix: prefix},
	})
	return err
}

// Truncate deletes every row of the table.
func (t *Table) Truncate(ctx context.Context) error {
	_, err := t.admin.DropRowRange(ctx, &adminpb.DropRowRangeRequest{
		Name:   t.Name,
		Target: &adminpb.DropRowRangeRequest_DeleteAllDataFromTable{DeleteAllDataFromTable: true},
	})
	return err
}

// GenerateConsistencyToken returns a token for CheckConsistency.
func (t *Table) GenerateConsistencyToken(ctx context.Context) (string, error) {
	resp, err := t.admin.GenerateConsistencyToken(ctx, &adminpb.GenerateConsistencyTokenRequest{Name: t.Name})
	if err != nil {
		return "", err
	}
	return resp.GetConsistencyToken(), nil
}

// CheckConsistency reports whether every write issued before token was
// generated has been replicated.
func (t *Table) CheckConsistency(ctx context.Context, token string) (bool, error) {
	resp, err := t.admin.CheckConsistency(ctx, &adminpb.CheckConsistencyRequest{Name: t.Name, ConsistencyToken: token})
	if err != nil {
		return false, err
	}
	return resp.GetConsistent(), nil
}

// WaitForReplication generates a consistency token and checks it until the
// table is consistent. It returns false once ReplicationTimeout elapses
// without the table becoming consistent.
func (t *Table) WaitForReplication(ctx context.Context) (bool, error) {
	interval, timeout := t.ReplicationCheckInterval, t.ReplicationTimeout
	if interval <= 0 {
		interval = DefaultReplicationCheckInterval
	}
	if timeout <= 0 {
		timeout = DefaultReplicationTimeout
	}

	token, err := t.GenerateConsistencyToken(ctx)
	if err != nil {
		return false, err
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		consistent, err := t.CheckConsistency(ctx, token)
		if err != nil || consistent {
			return consistent, err
		}
		retry := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			retry.Stop()
			return false, ctx.Err()
		case <-deadline.C:
			retry.Stop()
			return false, nil
		case <-retry.C:
		}
	}
}

// Snapshot starts a snapshot of the table in cluster. ttl <= 0 leaves the
// expiry to the server. The returned operation resolves to the snapshot.
func (t *Table) Snapshot(ctx context.Context, cluster, snapshotID string, ttl time.Duration, description string) (*longrunningpb.Operation, error) {
	req := &adminpb.SnapshotTableRequest{
		Name:        t.Name,
		Cluster:     cluster,
		SnapshotId:  snapshotID,
		Description: description,
	}
	if ttl > 0 {
		req.Ttl = durationpb.New(ttl)
	}
	return t.admin.SnapshotTable(ctx, req)
}
