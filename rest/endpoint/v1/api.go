package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"cloud.google.com/go/bigtable/admin/apiv2/adminpb"
	"cloud.google.com/go/longrunning/autogen/longrunningpb"
	"github.com/datastax/bigtable-admin-apis/auth"
	e "github.com/datastax/bigtable-admin-apis/rest/errors"
	m "github.com/datastax/bigtable-admin-apis/rest/models"
	t "github.com/datastax/bigtable-admin-apis/rest/translator"
	"github.com/datastax/bigtable-admin-apis/rpc"
	"github.com/datastax/bigtable-admin-apis/types"
)

const cancelSuffix = ":cancel"

func (s *routeList) context(r *http.Request) context.Context {
	ctx := r.Context()
	if s.cfg.UseUserOrRoleAuth() {
		ctx = auth.WithContextToken(ctx, auth.RequestToken(r))
	}
	return ctx
}

func (s *routeList) translator(r *http.Request) t.APITranslator {
	return t.APITranslator{
		InstanceName: s.cfg.InstanceName(),
		TableID:      s.params(r, "tableName"),
	}
}

func (s *routeList) tableName(r *http.Request) string {
	return rpc.FormatTableName(s.cfg.InstanceName(), s.params(r, "tableName"))
}

func (s *routeList) clusterName(r *http.Request) string {
	return s.cfg.InstanceName() + "/clusters/" + s.params(r, "clusterName")
}

// fail logs err unless it is the client's fault and writes it to the response.
func (s *routeList) fail(w http.ResponseWriter, msg string, err error, keyAndValues ...interface{}) {
	code := e.StatusCode(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error(msg, append(keyAndValues, "error", err)...)
	}
	RespondWithError(w, err, code)
}

func (s *routeList) GetTables(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		RespondWithStatusError(w, err)
		return
	}
	view, err := types.ParseView(opts.View)
	if err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}

	resp, err := s.admin.ListTables(s.context(r), &adminpb.ListTablesRequest{
		Parent:    s.cfg.InstanceName(),
		View:      view,
		PageSize:  opts.PageSize,
		PageToken: opts.PageToken,
	})
	if err != nil {
		s.fail(w, "unable to list tables", err)
		return
	}

	values, err := types.ToValues(resp.GetTables())
	if err != nil {
		s.fail(w, "unable to convert tables", err)
		return
	}
	RespondJSONObjectWithCode(w, http.StatusOK, types.ListResult{NextPageToken: resp.GetNextPageToken(), Values: values})
}

func (s *routeList) GetTable(w http.ResponseWriter, r *http.Request) {
	view, err := types.ParseView(r.URL.Query().Get("view"))
	if err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}
	if view == adminpb.Table_VIEW_UNSPECIFIED {
		view = adminpb.Table_SCHEMA_VIEW
	}

	table, err := s.admin.GetTable(s.context(r), &adminpb.GetTableRequest{Name: s.tableName(r), View: view})
	if err != nil {
		s.fail(w, "unable to get table", err, "table", s.params(r, "tableName"))
		return
	}
	RespondJSONObjectWithCode(w, http.StatusOK, table)
}

func (s *routeList) AddTable(w http.ResponseWriter, r *http.Request) {
	var tableAdd m.TableAdd
	if err := parsePayload(&tableAdd, r); err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}

	req, err := s.translator(r).ToCreateTableRequest(tableAdd)
	if err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}

	table, err := s.admin.CreateTable(s.context(r), req)
	if err != nil {
		s.fail(w, "unable to create table", err, "table", tableAdd.TableID)
		return
	}
	RespondJSONObjectWithCode(w, http.StatusCreated, table)
}

func (s *routeList) DeleteTable(w http.ResponseWriter, r *http.Request) {
	_, err := s.admin.DeleteTable(s.context(r), &adminpb.DeleteTableRequest{Name: s.tableName(r)})
	if err != nil {
		s.fail(w, "unable to delete table", err, "table", s.params(r, "tableName"))
		return
	}
	RespondJSONObjectWithCode(w, http.StatusNoContent, nil)
}

func (s *routeList) schema(w http.ResponseWriter, r *http.Request) (*adminpb.Table, bool) {
	table, err := s.admin.GetTable(s.context(r), &adminpb.GetTableRequest{Name: s.tableName(r), View: adminpb.Table_SCHEMA_VIEW})
	if err != nil {
		s.fail(w, "unable to get table", err, "table", s.params(r, "tableName"))
		return nil, false
	}
	return table, true
}

func (s *routeList) GetFamilies(w http.ResponseWriter, r *http.Request) {
	table, ok := s.schema(w, r)
	if !ok {
		return
	}
	RespondJSONObjectWithCode(w, http.StatusOK, types.ToFamilies(table))
}

func (s *routeList) GetFamily(w http.ResponseWriter, r *http.Request) {
	table, ok := s.schema(w, r)
	if !ok {
		return
	}
	name := s.params(r, "familyName")
	family, ok := table.GetColumnFamilies()[name]
	if !ok {
		RespondWithStatusError(w, e.NewNotFoundError("family '"+name+"' not found in table"))
		return
	}
	RespondJSONObjectWithCode(w, http.StatusOK, types.ToFamily(name, family))
}

func (s *routeList) AddFamily(w http.ResponseWriter, r *http.Request) {
	var def m.FamilyDefinition
	if err := parsePayload(&def, r); err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}

	req, err := s.translator(r).ToCreateFamily(def)
	if err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}
	s.modifyFamily(w, r, req, def.Name, http.StatusCreated)
}

func (s *routeList) UpdateFamily(w http.ResponseWriter, r *http.Request) {
	var update m.FamilyUpdate
	if err := parsePayload(&update, r); err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}

	name := s.params(r, "familyName")
	req, err := s.translator(r).ToUpdateFamily(name, update)
	if err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}
	s.modifyFamily(w, r, req, name, http.StatusOK)
}

func (s *routeList) DeleteFamily(w http.ResponseWriter, r *http.Request) {
	name := s.params(r, "familyName")
	req, err := s.translator(r).ToDropFamily(name)
	if err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}
	s.modifyFamily(w, r, req, name, http.StatusNoContent)
}

func (s *routeList) modifyFamily(w http.ResponseWriter, r *http.Request, req *adminpb.ModifyColumnFamiliesRequest, name string, code int) {
	table, err := s.admin.ModifyColumnFamilies(s.context(r), req)
	if err != nil {
		s.fail(w, "unable to modify column family", err,
			"table", s.params(r, "tableName"),
			"family", name)
		return
	}
	if code == http.StatusNoContent {
		RespondJSONObjectWithCode(w, code, nil)
		return
	}
	RespondJSONObjectWithCode(w, code, types.ToFamily(name, table.GetColumnFamilies()[name]))
}

func (s *routeList) DropRows(w http.ResponseWriter, r *http.Request) {
	var drop m.RowRangeDrop
	if err := parsePayload(&drop, r); err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}

	req, err := s.translator(r).ToDropRowRangeRequest(drop)
	if err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}

	if _, err := s.admin.DropRowRange(s.context(r), req); err != nil {
		s.fail(w, "unable to drop row range", err, "table", s.params(r, "tableName"))
		return
	}
	RespondJSONObjectWithCode(w, http.StatusNoContent, nil)
}

func (s *routeList) GenerateConsistencyToken(w http.ResponseWriter, r *http.Request) {
	resp, err := s.admin.GenerateConsistencyToken(s.context(r), &adminpb.GenerateConsistencyTokenRequest{Name: s.tableName(r)})
	if err != nil {
		s.fail(w, "unable to generate consistency token", err, "table", s.params(r, "tableName"))
		return
	}
	RespondJSONObjectWithCode(w, http.StatusOK, m.ConsistencyResponse{ConsistencyToken: resp.GetConsistencyToken()})
}

func (s *routeList) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	var check m.ConsistencyCheck
	if err := parsePayload(&check, r); err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}
	if err := t.Validate(check); err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}

	resp, err := s.admin.CheckConsistency(s.context(r), &adminpb.CheckConsistencyRequest{
		Name:             s.tableName(r),
		ConsistencyToken: check.ConsistencyToken,
	})
	if err != nil {
		s.fail(w, "unable to check consistency", err, "table", s.params(r, "tableName"))
		return
	}
	RespondJSONObjectWithCode(w, http.StatusOK, m.ConsistencyResponse{Consistent: resp.GetConsistent()})
}

func (s *routeList) AddSnapshot(w http.ResponseWriter, r *http.Request) {
	var snapshot m.SnapshotAdd
	if err := parsePayload(&snapshot, r); err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}

	req, err := s.translator(r).ToSnapshotTableRequest(snapshot)
	if err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}

	op, err := s.admin.SnapshotTable(s.context(r), req)
	if err != nil {
		s.fail(w, "unable to snapshot table", err,
			"table", s.params(r, "tableName"),
			"snapshot", snapshot.SnapshotID)
		return
	}
	RespondJSONObjectWithCode(w, http.StatusAccepted, op)
}

func (s *routeList) GetSnapshots(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		RespondWithStatusError(w, err)
		return
	}

	resp, err := s.admin.ListSnapshots(s.context(r), &adminpb.ListSnapshotsRequest{
		Parent:    s.clusterName(r),
		PageSize:  opts.PageSize,
		PageToken: opts.PageToken,
	})
	if err != nil {
		s.fail(w, "unable to list snapshots", err, "cluster", s.params(r, "clusterName"))
		return
	}

	values, err := types.ToValues(resp.GetSnapshots())
	if err != nil {
		s.fail(w, "unable to convert snapshots", err)
		return
	}
	RespondJSONObjectWithCode(w, http.StatusOK, types.ListResult{NextPageToken: resp.GetNextPageToken(), Values: values})
}

func (s *routeList) snapshotName(r *http.Request) (string, error) {
	name, err := rpc.FormatSnapshotName(s.clusterName(r), s.params(r, "snapshotName"))
	if err != nil {
		return "", e.NewBadRequestError(err.Error())
	}
	return name, nil
}

func (s *routeList) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	name, err := s.snapshotName(r)
	if err != nil {
		RespondWithStatusError(w, err)
		return
	}

	snapshot, err := s.admin.GetSnapshot(s.context(r), &adminpb.GetSnapshotRequest{Name: name})
	if err != nil {
		s.fail(w, "unable to get snapshot", err, "snapshot", name)
		return
	}
	RespondJSONObjectWithCode(w, http.StatusOK, snapshot)
}

func (s *routeList) DeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	name, err := s.snapshotName(r)
	if err != nil {
		RespondWithStatusError(w, err)
		return
	}

	if _, err := s.admin.DeleteSnapshot(s.context(r), &adminpb.DeleteSnapshotRequest{Name: name}); err != nil {
		s.fail(w, "unable to delete snapshot", err, "snapshot", name)
		return
	}
	RespondJSONObjectWithCode(w, http.StatusNoContent, nil)
}

func (s *routeList) RestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	var restore m.SnapshotRestore
	if err := parsePayload(&restore, r); err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}

	req, err := s.translator(r).ToCreateTableFromSnapshotRequest(
		s.params(r, "clusterName"), s.params(r, "snapshotName"), restore)
	if err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}

	op, err := s.admin.CreateTableFromSnapshot(s.context(r), req)
	if err != nil {
		s.fail(w, "unable to restore snapshot", err, "snapshot", req.SourceSnapshot)
		return
	}
	RespondJSONObjectWithCode(w, http.StatusAccepted, op)
}

func (s *routeList) GetOperations(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		RespondWithStatusError(w, err)
		return
	}

	resp, err := s.ops.ListOperations(s.context(r), &longrunningpb.ListOperationsRequest{
		Name:      "operations/" + s.cfg.InstanceName(),
		Filter:    opts.Filter,
		PageSize:  opts.PageSize,
		PageToken: opts.PageToken,
	})
	if err != nil {
		s.fail(w, "unable to list operations", err)
		return
	}

	values, err := types.ToValues(resp.GetOperations())
	if err != nil {
		s.fail(w, "unable to convert operations", err)
		return
	}
	RespondJSONObjectWithCode(w, http.StatusOK, types.ListResult{NextPageToken: resp.GetNextPageToken(), Values: values})
}

// Operation names start with "operations/", which is also the route prefix.
func (s *routeList) operationName(r *http.Request) string {
	return "operations/" + strings.TrimPrefix(s.params(r, "operationName"), "/")
}

func (s *routeList) GetOperation(w http.ResponseWriter, r *http.Request) {
	name := s.operationName(r)
	op, err := s.ops.GetOperation(s.context(r), &longrunningpb.GetOperationRequest{Name: name})
	if err != nil {
		s.fail(w, "unable to get operation", err, "operation", name)
		return
	}
	RespondJSONObjectWithCode(w, http.StatusOK, op)
}

// CancelOperation serves POST <operation>:cancel.
func (s *routeList) CancelOperation(w http.ResponseWriter, r *http.Request) {
	name := s.operationName(r)
	if !strings.HasSuffix(name, cancelSuffix) {
		RespondWithStatusError(w, e.NewNotFoundError("unknown operation action"))
		return
	}
	name = strings.TrimSuffix(name, cancelSuffix)

	if _, err := s.ops.CancelOperation(s.context(r), &longrunningpb.CancelOperationRequest{Name: name}); err != nil {
		s.fail(w, "unable to cancel operation", err, "operation", name)
		return
	}
	RespondJSONObjectWithCode(w, http.StatusNoContent, nil)
}

func (s *routeList) DeleteOperation(w http.ResponseWriter, r *http.Request) {
	name := s.operationName(r)
	if _, err := s.ops.DeleteOperation(s.context(r), &longrunningpb.DeleteOperationRequest{Name: name}); err != nil {
		s.fail(w, "unable to delete operation", err, "operation", name)
		return
	}
	RespondJSONObjectWithCode(w, http.StatusNoContent, nil)
}

func listOptions(r *http.Request) (types.ListOptions, error) {
	query := r.URL.Query()
	opts := types.ListOptions{
		PageToken: query.Get("pageToken"),
		View:      query.Get("view"),
		Filter:    query.Get("filter"),
	}
	if value := query.Get("pageSize"); value != "" {
		size, err := strconv.ParseInt(value, 10, 32)
		if err != nil || size < 0 {
			return opts, e.NewBadRequestError("pageSize must be a non-negative integer")
		}
		opts.PageSize = int32(size)
	}
	return opts, nil
}

func parsePayload(obj interface{}, r *http.Request) error {
	if err := json.NewDecoder(r.Body).Decode(obj); err != nil {
		return e.NewBadRequestError("unable to parse payload: " + err.Error())
	}
	return nil
}
