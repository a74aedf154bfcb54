// Package migrate derives Bigtable tables from the tables of a Cassandra
// keyspace and applies them through the table admin API.
package migrate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/gocql/gocql"
	"github.com/sergi/go-diff/diffmatchpatch"

	"cloud.google.com/go/bigtable/admin/apiv2/adminpb"
	"github.com/datastax/bigtable-admin-apis/config"
	"github.com/datastax/bigtable-admin-apis/db"
	"github.com/datastax/bigtable-admin-apis/gcrule"
	"github.com/datastax/bigtable-admin-apis/log"
	"github.com/datastax/bigtable-admin-apis/rpc"
)

// DefaultFamily holds every column that is not a collection.
const DefaultFamily = "cf1"

// TablePlan is the desired state of one table.
type TablePlan struct {
	// Source is the Cassandra table, as "keyspace.table".
	Source  string
	TableID string
	Request *adminpb.CreateTableRequest
	// Existing is nil when the table does not exist yet.
	Existing *adminpb.Table
	// Missing lists the families to add to an existing table, sorted.
	Missing []string
}

// Create reports whether the table has to be created.
func (t *TablePlan) Create() bool {
	return t.Existing == nil
}

type Plan struct {
	Tables []*TablePlan
}

// Empty reports whether applying the plan would change nothing.
func (p *Plan) Empty() bool {
	for _, t := range p.Tables {
		if t.Create() || len(t.Missing) > 0 {
			return false
		}
	}
	return true
}

type Planner struct {
	db           *db.Db
	admin        rpc.TableAdmin
	instanceName string
	naming       config.NamingConvention
	logger       log.Logger
}

func NewPlanner(database *db.Db, admin rpc.TableAdmin, cfg config.Config) *Planner {
	return &Planner{
		db:           database,
		admin:        admin,
		instanceName: cfg.InstanceName(),
		naming:       cfg.Naming(),
		logger:       cfg.Logger(),
	}
}

// Plan compares the tables of keyspace with the tables of the instance.
func (p *Planner) Plan(ctx context.Context, keyspace string) (*Plan, error) {
	ks, err := p.db.Keyspace(keyspace)
	if err != nil {
		return nil, fmt.Errorf("unable to read keyspace %s: %w", keyspace, err)
	}

	names := make([]string, 0, len(ks.Tables))
	for name := range ks.Tables {
		names = append(names, name)
	}
	sort.Strings(names)

	existing, err := p.existingTables(ctx)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Tables: make([]*TablePlan, 0, len(names))}
	for _, name := range names {
		plan.Tables = append(plan.Tables, p.planTable(ks.Tables[name], existing))
	}
	return plan, nil
}

// existingTables lists the tables of the instance with their families, keyed
// by table id.
func (p *Planner) existingTables(ctx context.Context) (map[string]*adminpb.Table, error) {
	tables, err := rpc.ListAllTables(ctx, p.admin, &adminpb.ListTablesRequest{
		Parent: p.instanceName,
		View:   adminpb.Table_SCHEMA_VIEW,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to list tables of %s: %w", p.instanceName, err)
	}
	byID := make(map[string]*adminpb.Table, len(tables))
	for _, table := range tables {
		_, _, id, err := rpc.ParseTableName(table.GetName())
		if err != nil {
			p.logger.Debug("skipping table with unexpected name", "table", table.GetName())
			continue
		}
		byID[id] = table
	}
	return byID, nil
}

func (p *Planner) planTable(source *gocql.TableMetadata, tables map[string]*adminpb.Table) *TablePlan {
	tableID := p.naming.ToTableID(source.Name)
	families := p.families(source)

	plan := &TablePlan{
		Source:  source.Keyspace + "." + source.Name,
		TableID: tableID,
		Request: &adminpb.CreateTableRequest{
			Parent:  p.instanceName,
			TableId: tableID,
			Table:   &adminpb.Table{ColumnFamilies: families},
		},
	}

	existing, ok := tables[tableID]
	if !ok {
		p.logger.Debug("table is missing", "table", tableID, "source", plan.Source)
		return plan
	}

	plan.Existing = existing
	for name := range families {
		if _, ok := existing.GetColumnFamilies()[name]; !ok {
			plan.Missing = append(plan.Missing, name)
		}
	}
	sort.Strings(plan.Missing)
	return plan
}

// families keeps scalar columns in DefaultFamily and gives each collection
// its own family, so that its elements can be stored as separate columns.
func (p *Planner) families(source *gocql.TableMetadata) map[string]*adminpb.ColumnFamily {
	families := map[string]*adminpb.ColumnFamily{
		DefaultFamily: {GcRule: gcrule.MaxVersions(1)},
	}
	for _, column := range source.Columns {
		if isCollection(column.Type) {
			families[p.naming.ToFamilyName(column.Name)] = &adminpb.ColumnFamily{GcRule: gcrule.MaxVersions(1)}
		}
	}
	return families
}

func isCollection(typeInfo gocql.TypeInfo) bool {
	if typeInfo == nil {
		return false
	}
	switch typeInfo.Type() {
	case gocql.TypeList, gocql.TypeSet, gocql.TypeMap:
		return true
	}
	return false
}

// Diff renders, for each table, the families that exist and the ones the
// plan wants as a line diff. Added lines start with "+", removed ones with
// "-".
func (p *Plan) Diff() string {
	var b strings.Builder
	for _, t := range p.Tables {
		fmt.Fprintf(&b, "table %s (from %s)", t.TableID, t.Source)
		if t.Create() {
			b.WriteString(" [create]")
		}
		b.WriteString("\n")
		writeDiff(&b, describe(t.Existing.GetColumnFamilies()), describe(t.Request.GetTable().GetColumnFamilies()))
	}
	return b.String()
}

func describe(families map[string]*adminpb.ColumnFamily) string {
	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "family %s: %s\n", name, gcrule.String(families[name].GetGcRule()))
	}
	return b.String()
}

func writeDiff(b *strings.Builder, existing, desired string) {
	dmp := diffmatchpatch.New()
	a, c, lines := dmp.DiffLinesToChars(existing, desired)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, c, false), lines)

	for _, diff := range diffs {
		prefix := "  "
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.SplitAfter(diff.Text, "\n") {
			if line == "" {
				continue
			}
			b.WriteString(prefix)
			b.WriteString(line)
		}
	}
}
