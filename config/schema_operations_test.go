package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaOperationsSetAndClear(t *testing.T) {
	var op SchemaOperations

	assert.Equal(t, op, SchemaOperations(0))
	assert.False(t, op.IsSupported(TableCreate))

	op.Set(TableCreate | TableDrop)
	assert.True(t, op.IsSupported(TableCreate))
	assert.True(t, op.IsSupported(TableDrop))

	op.Clear(TableCreate)
	assert.False(t, op.IsSupported(TableCreate))
	assert.True(t, op.IsSupported(TableDrop))
}

func TestSchemaOperationsAdd(t *testing.T) {
	op, err := Ops("TableCreate", "TableDrop", "FamilyModify", "RowRangeDrop",
		"SnapshotCreate", "SnapshotDelete", "SnapshotRestore", "OperationCancel")
	require.NoError(t, err)
	for _, o := range []SchemaOperations{TableCreate, TableDrop, FamilyModify, RowRangeDrop,
		SnapshotCreate, SnapshotDelete, SnapshotRestore, OperationCancel} {
		assert.True(t, op.IsSupported(o))
	}

	_, err = Ops("TableCreate", "KeyspaceDrop")
	assert.EqualError(t, err, "invalid operation: KeyspaceDrop")
}

func TestSchemaOperationsString(t *testing.T) {
	op, err := Ops("SnapshotCreate", "TableCreate")
	require.NoError(t, err)
	assert.Equal(t, "TableCreate,SnapshotCreate", op.String())
	assert.Equal(t, "", SchemaOperations(0).String())
}
