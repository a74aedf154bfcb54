package translator

import (
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/bigtable/admin/apiv2/adminpb"
	"github.com/datastax/bigtable-admin-apis/gcrule"
	e "github.com/datastax/bigtable-admin-apis/rest/errors"
	m "github.com/datastax/bigtable-admin-apis/rest/models"
	"github.com/datastax/bigtable-admin-apis/rpc"
	"google.golang.org/protobuf/types/known/durationpb"
)

// APITranslator serves as a translator for going from request objects to admin requests
type APITranslator struct {
	InstanceName string `validate:"required"`
	TableID      string
}

func (a APITranslator) tableName() (string, error) {
	if err := validate.Struct(a); err != nil {
		return "", e.TranslateValidatorError(err, trans)
	}
	if a.TableID == "" {
		return "", errors.New("table id is required")
	}
	return rpc.FormatTableName(a.InstanceName, a.TableID), nil
}

// ToCreateTableRequest will transform a TableAdd into a CreateTable request in the instance.
func (a APITranslator) ToCreateTableRequest(table m.TableAdd) (*adminpb.CreateTableRequest, error) {
	if err := validate.Struct(a); err != nil {
		return nil, e.TranslateValidatorError(err, trans)
	}
	if err := Validate(table); err != nil {
		return nil, err
	}

	families := make(map[string]*adminpb.ColumnFamily, len(table.Families))
	for _, def := range table.Families {
		if _, ok := families[def.Name]; ok {
			return nil, e.NewBadRequestError(fmt.Sprintf("duplicate family: %s", def.Name))
		}
		rule, err := toRule(def.Policy)
		if err != nil {
			return nil, err
		}
		families[def.Name] = &adminpb.ColumnFamily{GcRule: rule}
	}

	req := &adminpb.CreateTableRequest{
		Parent:  a.InstanceName,
		TableId: table.TableID,
		Table:   &adminpb.Table{ColumnFamilies: families},
	}
	if table.Granularity == "MILLIS" {
		req.Table.Granularity = adminpb.Table_MILLIS
	}
	for _, key := range table.InitialSplits {
		req.InitialSplits = append(req.InitialSplits, &adminpb.CreateTableRequest_Split{Key: []byte(key)})
	}
	return req, nil
}

func toRule(policy *gcrule.Policy) (*adminpb.GcRule, error) {
	if policy == nil {
		return nil, nil
	}
	rule, err := gcrule.FromPolicy(*policy)
	if err != nil {
		return nil, e.NewBadRequestError(err.Error())
	}
	return rule, nil
}

// ToCreateFamily will transform a FamilyDefinition into a family creation.
func (a APITranslator) ToCreateFamily(def m.FamilyDefinition) (*adminpb.ModifyColumnFamiliesRequest, error) {
	name, err := a.tableName()
	if err != nil {
		return nil, err
	}
	if err := Validate(def); err != nil {
		return nil, err
	}
	rule, err := toRule(def.Policy)
	if err != nil {
		return nil, err
	}
	return modification(name, &adminpb.ModifyColumnFamiliesRequest_Modification{
		Id:  def.Name,
		Mod: &adminpb.ModifyColumnFamiliesRequest_Modification_Create{Create: &adminpb.ColumnFamily{GcRule: rule}},
	}), nil
}

// ToUpdateFamily will transform a FamilyUpdate into a family update. A missing
// policy clears the rule.
func (a APITranslator) ToUpdateFamily(family string, update m.FamilyUpdate) (*adminpb.ModifyColumnFamiliesRequest, error) {
	name, err := a.tableName()
	if err != nil {
		return nil, err
	}
	rule, err := toRule(update.Policy)
	if err != nil {
		return nil, err
	}
	return modification(name, &adminpb.ModifyColumnFamiliesRequest_Modification{
		Id:  family,
		Mod: &adminpb.ModifyColumnFamiliesRequest_Modification_Update{Update: &adminpb.ColumnFamily{GcRule: rule}},
	}), nil
}

func (a APITranslator) ToDropFamily(family string) (*adminpb.ModifyColumnFamiliesRequest, error) {
	name, err := a.tableName()
	if err != nil {
		return nil, err
	}
	return modification(name, &adminpb.ModifyColumnFamiliesRequest_Modification{
		Id:  family,
		Mod: &adminpb.ModifyColumnFamiliesRequest_Modification_Drop{Drop: true},
	}), nil
}

func modification(table string, mod *adminpb.ModifyColumnFamiliesRequest_Modification) *adminpb.ModifyColumnFamiliesRequest {
	return &adminpb.ModifyColumnFamiliesRequest{
		Name:          table,
		Modifications: []*adminpb.ModifyColumnFamiliesRequest_Modification{mod},
	}
}

// ToDropRowRangeRequest will transform a RowRangeDrop into a DropRowRange request.
// A prefix and DeleteAllData are mutually exclusive.
func (a APITranslator) ToDropRowRangeRequest(drop m.RowRangeDrop) (*adminpb.DropRowRangeRequest, error) {
	name, err := a.tableName()
	if err != nil {
		return nil, err
	}
	if err := Validate(drop); err != nil {
		return nil, err
	}
	if drop.DeleteAllData && drop.RowKeyPrefix != "" {
		return nil, e.NewBadRequestError("rowKeyPrefix and deleteAllData are mutually exclusive")
	}

	req := &adminpb.DropRowRangeRequest{Name: name}
	if drop.DeleteAllData {
		req.Target = &adminpb.DropRowRangeRequest_DeleteAllDataFromTable{DeleteAllDataFromTable: true}
	} else {
		req.Target = &adminpb.DropRowRangeRequest_RowKeyPrefix{RowKeyPrefix: []byte(drop.RowKeyPrefix)}
	}
	return req, nil
}

// ToSnapshotTableRequest will transform a SnapshotAdd into a SnapshotTable request.
func (a APITranslator) ToSnapshotTableRequest(snapshot m.SnapshotAdd) (*adminpb.SnapshotTableRequest, error) {
	name, err := a.tableName()
	if err != nil {
		return nil, err
	}
	if err := Validate(snapshot); err != nil {
		return nil, err
	}

	req := &adminpb.SnapshotTableRequest{
		Name:        name,
		Cluster:     a.InstanceName + "/clusters/" + snapshot.Cluster,
		SnapshotId:  snapshot.SnapshotID,
		Description: snapshot.Description,
	}
	if snapshot.TTL != "" {
		ttl, _ := time.ParseDuration(snapshot.TTL)
		req.Ttl = durationpb.New(ttl)
	}
	return req, nil
}

// ToCreateTableFromSnapshotRequest will transform a SnapshotRestore into a
// request restoring the given snapshot of cluster.
func (a APITranslator) ToCreateTableFromSnapshotRequest(cluster, snapshot string, restore m.SnapshotRestore) (*adminpb.CreateTableFromSnapshotRequest, error) {
	if err := validate.Struct(a); err != nil {
		return nil, e.TranslateValidatorError(err, trans)
	}
	if err := Validate(restore); err != nil {
		return nil, err
	}
	snapshotName, err := rpc.FormatSnapshotName(a.InstanceName+"/clusters/"+cluster, snapshot)
	if err != nil {
		return nil, e.NewBadRequestError(err.Error())
	}
	return &adminpb.CreateTableFromSnapshotRequest{
		Parent:         a.InstanceName,
		TableId:        restore.TableID,
		SourceSnapshot: snapshotName,
	}, nil
}
