package graphql

import "github.com/graphql-go/graphql"

var (
	policyType  *graphql.Object
	policyInput *graphql.InputObject
)

// Policies nest, so both types are built once the package variables exist.
func init() {
	policyType = graphql.NewObject(graphql.ObjectConfig{
		Name:        "Policy",
		Description: "A declarative garbage collection policy",
		Fields: (graphql.FieldsThunk)(func() graphql.Fields {
			return graphql.Fields{
				"age":      &graphql.Field{Type: duration},
				"versions": &graphql.Field{Type: graphql.Int},
				"union":    &graphql.Field{Type: graphql.Boolean},
				"rule":     &graphql.Field{Type: policyType},
			}
		}),
	})

	policyInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PolicyInput",
		Fields: (graphql.InputObjectConfigFieldMapThunk)(func() graphql.InputObjectConfigFieldMap {
			return graphql.InputObjectConfigFieldMap{
				"age":      &graphql.InputObjectFieldConfig{Type: duration},
				"versions": &graphql.InputObjectFieldConfig{Type: graphql.Int},
				"union":    &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
				"rule":     &graphql.InputObjectFieldConfig{Type: policyInput},
			}
		}),
	})
}

var familyType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Family",
	Fields: (graphql.FieldsThunk)(func() graphql.Fields {
		return graphql.Fields{
			"name":   &graphql.Field{Type: graphql.String},
			"gcRule": &graphql.Field{Type: graphql.String},
			"policy": &graphql.Field{Type: policyType},
		}
	}),
})

var familyInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "FamilyInput",
	Fields: (graphql.InputObjectConfigFieldMapThunk)(func() graphql.InputObjectConfigFieldMap {
		return graphql.InputObjectConfigFieldMap{
			"name":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"policy": &graphql.InputObjectFieldConfig{Type: policyInput},
		}
	}),
})

var clusterStateType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ClusterState",
	Fields: graphql.Fields{
		"cluster":          &graphql.Field{Type: graphql.String},
		"replicationState": &graphql.Field{Type: graphql.String},
	},
})

var tableType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Table",
	Fields: graphql.Fields{
		"name":          &graphql.Field{Type: graphql.String},
		"id":            &graphql.Field{Type: graphql.String},
		"granularity":   &graphql.Field{Type: graphql.String},
		"families":      &graphql.Field{Type: graphql.NewList(familyType)},
		"clusterStates": &graphql.Field{Type: graphql.NewList(clusterStateType)},
	},
})

var snapshotType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Snapshot",
	Fields: graphql.Fields{
		"name":          &graphql.Field{Type: graphql.String},
		"sourceTable":   &graphql.Field{Type: tableType},
		"dataSizeBytes": &graphql.Field{Type: bigint},
		"createTime":    &graphql.Field{Type: timestamp},
		"deleteTime":    &graphql.Field{Type: timestamp},
		"state":         &graphql.Field{Type: graphql.String},
		"description":   &graphql.Field{Type: graphql.String},
	},
})

var operationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Operation",
	Fields: graphql.Fields{
		"name":         &graphql.Field{Type: graphql.String},
		"done":         &graphql.Field{Type: graphql.Boolean},
		"error":        &graphql.Field{Type: graphql.String},
		"errorCode":    &graphql.Field{Type: graphql.String},
		"metadataType": &graphql.Field{Type: graphql.String},
		"responseType": &graphql.Field{Type: graphql.String},
		"json":         &graphql.Field{Type: graphql.String, Description: "The operation in its JSON form"},
	},
})

func listType(name string, item graphql.Output) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"nextPageToken": &graphql.Field{Type: graphql.String},
			"values":        &graphql.Field{Type: graphql.NewList(item)},
		},
	})
}

var tableListType = listType("TableList", tableType)

var snapshotListType = listType("SnapshotList", snapshotType)

var operationListType = listType("OperationList", operationType)
