package config

import (
	"fmt"
	"strings"
)

type SchemaOperations int

const (
	TableCreate SchemaOperations = 1 << iota
	TableDrop
	FamilyModify
	RowRangeDrop
	SnapshotCreate
	SnapshotDelete
	SnapshotRestore
	OperationCancel
)

var operationNames = []struct {
	name string
	op   SchemaOperations
}{
	{"TableCreate", TableCreate},
	{"TableDrop", TableDrop},
	{"FamilyModify", FamilyModify},
	{"RowRangeDrop", RowRangeDrop},
	{"SnapshotCreate", SnapshotCreate},
	{"SnapshotDelete", SnapshotDelete},
	{"SnapshotRestore", SnapshotRestore},
	{"OperationCancel", OperationCancel},
}

func Ops(ops ...string) (SchemaOperations, error) {
	var o SchemaOperations
	err := o.Add(ops...)
	return o, err
}

func (o *SchemaOperations) Set(ops SchemaOperations)             { *o |= ops }
func (o *SchemaOperations) Clear(ops SchemaOperations)           { *o &= ^ops }
func (o SchemaOperations) IsSupported(ops SchemaOperations) bool { return o&ops != 0 }

func (o *SchemaOperations) Add(ops ...string) error {
	for _, op := range ops {
		found := false
		for _, n := range operationNames {
			if n.name == op {
				o.Set(n.op)
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("invalid operation: %s", op)
		}
	}
	return nil
}

// String lists the supported operations, comma separated, in declaration order.
func (o SchemaOperations) String() string {
	var names []string
	for _, n := range operationNames {
		if o.IsSupported(n.op) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, ",")
}
