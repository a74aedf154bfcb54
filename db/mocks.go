package db

import (
	"sort"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/mock"
)

type SessionMock struct {
	mock.Mock
}

func NewSessionMock() *SessionMock {
	return &SessionMock{}
}

func (o *SessionMock) ExecuteIter(query string, values ...interface{}) (ResultSet, error) {
	args := o.Called(query, values)
	result, _ := args.Get(0).(ResultSet)
	return result, args.Error(1)
}

func (o *SessionMock) KeyspaceMetadata(keyspaceName string) (*gocql.KeyspaceMetadata, error) {
	args := o.Called(keyspaceName)
	keyspace, _ := args.Get(0).(*gocql.KeyspaceMetadata)
	return keyspace, args.Error(1)
}

func (o *SessionMock) Close() {
	o.Called()
}

// AddKeyspace returns keyspace when its metadata is requested.
func (o *SessionMock) AddKeyspace(keyspace *gocql.KeyspaceMetadata) *mock.Call {
	return o.On("KeyspaceMetadata", keyspace.Name).Return(keyspace, nil)
}

type ResultMock struct {
	mock.Mock
}

func (o *ResultMock) Values() []map[string]interface{} {
	args := o.Called()
	return args.Get(0).([]map[string]interface{})
}

// NewKeyspaceMock builds keyspace metadata with one table per entry of tables.
func NewKeyspaceMock(ksName string, tables map[string][]*gocql.ColumnMetadata) *gocql.KeyspaceMetadata {
	tableMetadata := make(map[string]*gocql.TableMetadata, len(tables))
	for tableName, columns := range tables {
		columnMap := make(map[string]*gocql.ColumnMetadata, len(columns))
		for _, column := range columns {
			column.Keyspace = ksName
			column.Table = tableName
			columnMap[column.Name] = column
		}
		tableMetadata[tableName] = &gocql.TableMetadata{
			Keyspace:          ksName,
			Name:              tableName,
			PartitionKey:      createKey(columnMap, gocql.ColumnPartitionKey),
			ClusteringColumns: createKey(columnMap, gocql.ColumnClusteringKey),
			Columns:           columnMap,
		}
	}
	return &gocql.KeyspaceMetadata{
		Name:          ksName,
		DurableWrites: true,
		StrategyClass: "NetworkTopologyStrategy",
		StrategyOptions: map[string]interface{}{
			"dc1": "3",
		},
		Tables: tableMetadata,
	}
}

func NewColumnMock(name string, kind gocql.ColumnKind, typeInfo gocql.TypeInfo) *gocql.ColumnMetadata {
	return &gocql.ColumnMetadata{Name: name, Kind: kind, Type: typeInfo}
}

func NativeTypeMock(typ gocql.Type) gocql.TypeInfo {
	return gocql.NewNativeType(0, typ, "")
}

func CollectionTypeMock(typ gocql.Type, key, elem gocql.Type) gocql.TypeInfo {
	collection := gocql.CollectionType{
		NativeType: gocql.NewNativeType(0, typ, ""),
		Elem:       NativeTypeMock(elem),
	}
	if typ == gocql.TypeMap {
		collection.Key = NativeTypeMock(key)
	}
	return collection
}

// BooksColumnsMock is a table with a partition key, scalar columns and a set.
func BooksColumnsMock() []*gocql.ColumnMetadata {
	return []*gocql.ColumnMetadata{
		{Name: "title", Kind: gocql.ColumnPartitionKey, Type: NativeTypeMock(gocql.TypeText)},
		{Name: "pages", Kind: gocql.ColumnRegular, Type: NativeTypeMock(gocql.TypeInt), ComponentIndex: 1},
		{Name: "first_name", Kind: gocql.ColumnRegular, Type: NativeTypeMock(gocql.TypeText), ComponentIndex: 2},
		{Name: "tags", Kind: gocql.ColumnRegular, Type: CollectionTypeMock(gocql.TypeSet, 0, gocql.TypeText), ComponentIndex: 3},
	}
}

func createKey(columns map[string]*gocql.ColumnMetadata, kind gocql.ColumnKind) []*gocql.ColumnMetadata {
	key := make([]*gocql.ColumnMetadata, 0)
	for _, column := range columns {
		if column.Kind == kind {
			key = append(key, column)
		}
	}

	sort.Slice(key, func(i, j int) bool {
		return key[i].ComponentIndex < key[j].ComponentIndex
	})

	return key
}
