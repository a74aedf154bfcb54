package db

import (
	"errors"
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestKeyspaces(t *testing.T) {
	sessionMock := NewSessionMock()
	resultMock := &ResultMock{}
	resultMock.On("Values").Return([]map[string]interface{}{
		{"keyspace_name": "system"},
		{"keyspace_name": "store"},
		{"keyspace_name": nil},
	})
	sessionMock.On("ExecuteIter", "SELECT keyspace_name FROM system_schema.keyspaces", mock.Anything).
		Return(resultMock, nil)

	keyspaces, err := NewDbWithSession(sessionMock).Keyspaces()
	require.NoError(t, err)
	assert.Equal(t, []string{"system", "store"}, keyspaces)
}

func TestKeyspacesError(t *testing.T) {
	sessionMock := NewSessionMock()
	sessionMock.On("ExecuteIter", mock.Anything, mock.Anything).Return(nil, errors.New("unavailable"))

	_, err := NewDbWithSession(sessionMock).Keyspaces()
	assert.EqualError(t, err, "unavailable")
}

func TestKeyspace(t *testing.T) {
	sessionMock := NewSessionMock()
	sessionMock.AddKeyspace(NewKeyspaceMock("store", map[string][]*gocql.ColumnMetadata{
		"books": BooksColumnsMock(),
	}))

	keyspace, err := NewDbWithSession(sessionMock).Keyspace("store")
	require.NoError(t, err)
	books := keyspace.Tables["books"]
	require.NotNil(t, books)
	assert.Len(t, books.Columns, 4)
	require.Len(t, books.PartitionKey, 1)
	assert.Equal(t, "title", books.PartitionKey[0].Name)
	assert.Equal(t, "books", books.Columns["tags"].Table)
}
