package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/datastax/bigtable-admin-apis/config"
	"github.com/datastax/bigtable-admin-apis/log"
	"github.com/datastax/bigtable-admin-apis/rpc"
)

type SchemaGenerator struct {
	admin  rpc.TableAdmin
	ops    rpc.Operations
	cfg    config.Config
	logger log.Logger
}

func NewSchemaGenerator(admin rpc.TableAdmin, ops rpc.Operations, cfg config.Config) *SchemaGenerator {
	return &SchemaGenerator{
		admin:  admin,
		ops:    ops,
		cfg:    cfg,
		logger: cfg.Logger(),
	}
}

func nonNullString() *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)}
}

func pageArgs(args graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	args["pageSize"] = &graphql.ArgumentConfig{Type: graphql.Int}
	args["pageToken"] = &graphql.ArgumentConfig{Type: graphql.String}
	return args
}

func (sg *SchemaGenerator) buildQuery() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"tables": &graphql.Field{
				Type: tableListType,
				Args: pageArgs(graphql.FieldConfigArgument{
					"view": &graphql.ArgumentConfig{Type: graphql.String},
				}),
				Resolve: sg.resolveTables,
			},
			"table": &graphql.Field{
				Type: tableType,
				Args: graphql.FieldConfigArgument{
					"id":   nonNullString(),
					"view": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: sg.resolveTable,
			},
			"families": &graphql.Field{
				Type:    graphql.NewList(familyType),
				Args:    graphql.FieldConfigArgument{"table": nonNullString()},
				Resolve: sg.resolveFamilies,
			},
			"checkConsistency": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"table":            nonNullString(),
					"consistencyToken": nonNullString(),
				},
				Resolve: sg.resolveCheckConsistency,
			},
			"snapshots": &graphql.Field{
				Type:    snapshotListType,
				Args:    pageArgs(graphql.FieldConfigArgument{"cluster": nonNullString()}),
				Resolve: sg.resolveSnapshots,
			},
			"snapshot": &graphql.Field{
				Type: snapshotType,
				Args: graphql.FieldConfigArgument{
					"cluster": nonNullString(),
					"id":      nonNullString(),
				},
				Resolve: sg.resolveSnapshot,
			},
			"operations": &graphql.Field{
				Type: operationListType,
				Args: pageArgs(graphql.FieldConfigArgument{
					"filter": &graphql.ArgumentConfig{Type: graphql.String},
				}),
				Resolve: sg.resolveOperations,
			},
			"operation": &graphql.Field{
				Type:    operationType,
				Args:    graphql.FieldConfigArgument{"name": nonNullString()},
				Resolve: sg.resolveOperation,
			},
		},
	})
}

func (sg *SchemaGenerator) buildMutation(ops config.SchemaOperations) *graphql.Object {
	fields := graphql.Fields{
		"generateConsistencyToken": &graphql.Field{
			Type:    graphql.String,
			Args:    graphql.FieldConfigArgument{"table": nonNullString()},
			Resolve: sg.resolveGenerateConsistencyToken,
		},
	}

	if ops.IsSupported(config.TableCreate) {
		fields["createTable"] = &graphql.Field{
			Type: tableType,
			Args: graphql.FieldConfigArgument{
				"tableId":       nonNullString(),
				"families":      &graphql.ArgumentConfig{Type: graphql.NewList(familyInput)},
				"initialSplits": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
				"granularity":   &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: sg.resolveCreateTable,
		}
	}
	if ops.IsSupported(config.TableDrop) {
		fields["dropTable"] = &graphql.Field{
			Type:    graphql.Boolean,
			Args:    graphql.FieldConfigArgument{"id": nonNullString()},
			Resolve: sg.resolveDropTable,
		}
	}
	if ops.IsSupported(config.FamilyModify) {
		fields["createFamily"] = &graphql.Field{
			Type: familyType,
			Args: graphql.FieldConfigArgument{
				"table":  nonNullString(),
				"family": &graphql.ArgumentConfig{Type: graphql.NewNonNull(familyInput)},
			},
			Resolve: sg.resolveCreateFamily,
		}
		fields["updateFamily"] = &graphql.Field{
			Type: familyType,
			Args: graphql.FieldConfigArgument{
				"table":  nonNullString(),
				"name":   nonNullString(),
				"policy": &graphql.ArgumentConfig{Type: policyInput},
			},
			Resolve: sg.resolveUpdateFamily,
		}
		fields["dropFamily"] = &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"table": nonNullString(),
				"name":  nonNullString(),
			},
			Resolve: sg.resolveDropFamily,
		}
	}
	if ops.IsSupported(config.RowRangeDrop) {
		fields["dropRowRange"] = &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"table":         nonNullString(),
				"rowKeyPrefix":  &graphql.ArgumentConfig{Type: graphql.String},
				"deleteAllData": &graphql.ArgumentConfig{Type: graphql.Boolean},
			},
			Resolve: sg.resolveDropRowRange,
		}
	}
	if ops.IsSupported(config.SnapshotCreate) {
		fields["snapshotTable"] = &graphql.Field{
			Type: operationType,
			Args: graphql.FieldConfigArgument{
				"table":       nonNullString(),
				"cluster":     nonNullString(),
				"snapshotId":  nonNullString(),
				"ttl":         &graphql.ArgumentConfig{Type: duration},
				"description": &graphql.ArgumentConfig{Type: graphql.String},
				"wait":        &graphql.ArgumentConfig{Type: graphql.Boolean},
			},
			Resolve: sg.resolveSnapshotTable,
		}
	}
	if ops.IsSupported(config.SnapshotDelete) {
		fields["deleteSnapshot"] = &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"cluster": nonNullString(),
				"id":      nonNullString(),
			},
			Resolve: sg.resolveDeleteSnapshot,
		}
	}
	if ops.IsSupported(config.SnapshotRestore) {
		fields["restoreSnapshot"] = &graphql.Field{
			Type: operationType,
			Args: graphql.FieldConfigArgument{
				"cluster": nonNullString(),
				"id":      nonNullString(),
				"tableId": nonNullString(),
				"wait":    &graphql.ArgumentConfig{Type: graphql.Boolean},
			},
			Resolve: sg.resolveRestoreSnapshot,
		}
	}
	if ops.IsSupported(config.OperationCancel) {
		fields["cancelOperation"] = &graphql.Field{
			Type:    graphql.Boolean,
			Args:    graphql.FieldConfigArgument{"name": nonNullString()},
			Resolve: sg.resolveCancelOperation,
		}
		fields["deleteOperation"] = &graphql.Field{
			Type:    graphql.Boolean,
			Args:    graphql.FieldConfigArgument{"name": nonNullString()},
			Resolve: sg.resolveDeleteOperation,
		}
	}

	return graphql.NewObject(graphql.ObjectConfig{
		Name:   "Mutation",
		Fields: fields,
	})
}

// BuildSchema builds the schema management schema. Mutations outside ops are not exposed.
func (sg *SchemaGenerator) BuildSchema(ops config.SchemaOperations) (graphql.Schema, error) {
	return graphql.NewSchema(
		graphql.SchemaConfig{
			Query:    sg.buildQuery(),
			Mutation: sg.buildMutation(ops),
		},
	)
}
